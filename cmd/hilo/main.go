package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dmamonov/hilo/internal/config"
	"github.com/dmamonov/hilo/internal/data"
	"github.com/dmamonov/hilo/internal/game"
	"github.com/dmamonov/hilo/internal/metrics"
	gonet "github.com/dmamonov/hilo/internal/net"
	"github.com/dmamonov/hilo/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup report ────────────────────────────────────────────────

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// printBanner draws a tiny level: a wall box with the server name inside.
func printBanner(serverName string) {
	title := fmt.Sprintf(" @ hilo: %s $ ", serverName)
	wall := strings.Repeat("W", len([]rune(title))+2)
	fmt.Println()
	fmt.Println("  " + ansiCyan + wall + ansiReset)
	fmt.Println("  " + ansiCyan + "W" + ansiReset + ansiBold + title + ansiReset + ansiCyan + "W" + ansiReset)
	fmt.Println("  " + ansiCyan + wall + ansiReset)
	fmt.Println()
}

func printSection(title string) {
	fmt.Printf("  %s[%s]%s\n", ansiYellow, strings.ToLower(title), ansiReset)
}

func printStat(label string, count int) {
	fmt.Printf("    %-16s %s%6d%s\n", label, ansiGreen, count, ansiReset)
}

// printItem prints one startup line behind a marker: "+" done, ">" running.
func printItem(mark, msg string) {
	fmt.Printf("    %s%s%s %s\n", ansiGreen, mark, ansiReset, msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("HILO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Load levels
	printSection("Data")
	levels, err := data.LoadLevelTable(cfg.Game.LevelsDir)
	if err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	printStat("levels", levels.Count())
	level := levels.Get(cfg.Game.Level)
	if level == nil {
		return fmt.Errorf("level %q not found in %s (have %s)", cfg.Game.Level, cfg.Game.LevelsDir, strings.Join(levels.Names(), ", "))
	}
	fmt.Println()

	// 4. Build the game
	printSection("World")
	m := metrics.New()
	g, err := game.New(game.Options{
		Level:         level,
		ScriptsDir:    cfg.Game.ScriptsDir,
		Seed:          cfg.Game.Seed,
		TeleportDelay: cfg.Game.TeleportDelay,
		Metrics:       m,
		Log:           log,
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	defer g.Close()
	printItem("+", fmt.Sprintf("level %s (%dx%d)", level.Name, g.World().Width(), g.World().Height()))
	printStat("units", g.World().UnitCount())
	printStat("players", len(g.World().Players()))
	if g.Scripts() != nil {
		printItem("+", fmt.Sprintf("lua scripts from %s", filepath.Clean(cfg.Game.ScriptsDir)))
	}
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 5. Metrics endpoint
	if cfg.Metrics.Enabled {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.BindAddress, log); err != nil {
				log.Error("metrics endpoint failed", zap.Error(err))
			}
		}()
	}

	// 6. SSH server
	hostKey, err := gonet.LoadOrCreateHostKey(cfg.SSH.HostKey)
	if err != nil {
		return fmt.Errorf("host key: %w", err)
	}
	netServer, err := gonet.NewServer(gonet.Options{
		BindAddress:   cfg.SSH.BindAddress,
		PollInterval:  cfg.SSH.PollInterval,
		WriteTimeout:  cfg.SSH.WriteTimeout,
		KeysPerSecond: cfg.SSH.KeysPerSecond,
		MaxSessions:   cfg.SSH.MaxSessions,
	}, hostKey, g, g.Publisher(), m, log)
	if err != nil {
		return fmt.Errorf("ssh server: %w", err)
	}
	go netServer.AcceptLoop()
	g.Register(system.NewSessionSystem(netServer, g.World(), log))

	// 7. Start game loop
	printSection("Ready")
	printItem(">", fmt.Sprintf("ssh listening on %s", netServer.Addr().String()))
	if cfg.Metrics.Enabled {
		printItem(">", fmt.Sprintf("metrics on http://%s/metrics", cfg.Metrics.BindAddress))
	}
	printItem(">", fmt.Sprintf("game loop started (tick: %s)", cfg.Game.TickRate))
	fmt.Println()

	g.Run(ctx, cfg.Game.TickRate)

	log.Info("shutdown signal received")
	netServer.Shutdown()
	log.Info("server stopped")
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
