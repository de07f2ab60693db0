// hilo-local plays one level in the current terminal without the SSH server.
//
// Usage:
//
//	go run ./cmd/hilo-local -level arena -player alice
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dmamonov/hilo/internal/config"
	"github.com/dmamonov/hilo/internal/data"
	"github.com/dmamonov/hilo/internal/game"
	"github.com/dmamonov/hilo/internal/render"
	"github.com/dmamonov/hilo/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "config/server.toml", "server config file")
	levelName := flag.String("level", "", "level name (default from config)")
	playerName := flag.String("player", "", "player to control (default: first)")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *levelName != "" {
		cfg.Game.Level = *levelName
	}

	// The terminal belongs to the screen, so logs go to a file or nowhere.
	log := zap.NewNop()
	if *logPath != "" {
		zapCfg := zap.NewDevelopmentConfig()
		zapCfg.OutputPaths = []string{*logPath}
		zapCfg.ErrorOutputPaths = []string{*logPath}
		if log, err = zapCfg.Build(); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}
	defer log.Sync()

	levels, err := data.LoadLevelTable(cfg.Game.LevelsDir)
	if err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	level := levels.Get(cfg.Game.Level)
	if level == nil {
		return fmt.Errorf("level %q not found", cfg.Game.Level)
	}

	g, err := game.New(game.Options{
		Level:         level,
		ScriptsDir:    cfg.Game.ScriptsDir,
		Seed:          cfg.Game.Seed,
		TeleportDelay: cfg.Game.TeleportDelay,
		Log:           log,
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	defer g.Close()

	player := pickPlayer(g.World(), *playerName)
	if player == nil {
		return fmt.Errorf("level %q has no players", level.Name)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		g.Run(ctx, cfg.Game.TickRate)
	}()
	defer func() {
		cancel()
		<-loopDone
	}()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(cfg.SSH.PollInterval)
	defer ticker.Stop()

	pub := g.Publisher()
	var shown uint64
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				cmd, quit := render.KeyCommand(ev)
				if quit {
					return nil
				}
				if cmd != world.CmdNone {
					g.Submit(player, cmd)
				}
			case *tcell.EventResize:
				screen.Sync()
				shown = 0
			}

		case <-ticker.C:
			snap := pub.Load()
			if snap.Version == shown {
				continue
			}
			shown = snap.Version
			render.Draw(screen, snap)
			screen.Show()
		}
	}
}

// pickPlayer returns the named player, or the first one when name is empty
// or unknown. Called before the game loop starts.
func pickPlayer(w *world.World, name string) *world.Actor {
	players := w.Players()
	if len(players) == 0 {
		return nil
	}
	for _, p := range players {
		if name != "" && p.Name() == name {
			return p
		}
	}
	return players[0]
}
