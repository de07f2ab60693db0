package net

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"github.com/dmamonov/hilo/internal/render"
	"github.com/dmamonov/hilo/internal/world"
)

// Session is one SSH shell. Terminal I/O runs in dedicated goroutines; the
// only game state it touches is the bound player pointer, which it passes
// to Submit.
type Session struct {
	ID   uint64
	User string
	IP   string

	conn    *ssh.ServerConn
	channel ssh.Channel
	tty     *channelTty
	server  *Server

	mu      sync.Mutex // protects screen
	screen  tcell.Screen
	started bool

	player atomic.Pointer[world.Actor]
	redraw chan struct{}

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	// Per-second key limiter (readLoop goroutine only, no lock needed)
	keysPerSec int
	keyCount   int
	keyResetAt int64

	log *zap.Logger
}

func newSession(id uint64, conn *ssh.ServerConn, ch ssh.Channel, srv *Server) *Session {
	return &Session{
		ID:         id,
		User:       conn.User(),
		IP:         conn.RemoteAddr().String(),
		conn:       conn,
		channel:    ch,
		tty:        newChannelTty(ch),
		server:     srv,
		redraw:     make(chan struct{}, 1),
		closeCh:    make(chan struct{}),
		keysPerSec: srv.opts.KeysPerSecond,
		log:        srv.log.With(zap.Uint64("session", id)),
	}
}

// Bind attaches the session to a player. Called by the game loop.
func (s *Session) Bind(p *world.Actor) {
	s.player.Store(p)
	if p != nil {
		s.log.Info("session bound", zap.String("player", p.String()))
	}
}

// Player returns the bound player, or nil.
func (s *Session) Player() *world.Actor {
	return s.player.Load()
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// serve handles the channel's requests until the client closes it.
func (s *Session) serve(requests <-chan *ssh.Request) {
	defer s.Close()

	for req := range requests {
		switch req.Type {
		case "pty-req":
			pty, ok := parsePtyRequest(req.Payload)
			if ok {
				s.tty.setTerm(pty.Term)
				s.tty.resize(int(pty.Columns), int(pty.Rows))
			}
			reply(req, ok)
		case "window-change":
			if wc, ok := parseWindowChange(req.Payload); ok {
				s.tty.resize(int(wc.Columns), int(wc.Rows))
			}
			reply(req, true)
		case "env":
			reply(req, true)
		case "shell":
			if err := s.start(); err != nil {
				s.log.Warn("shell start failed", zap.Error(err))
				reply(req, false)
				return
			}
			reply(req, true)
		default:
			reply(req, false)
		}
	}
}

func reply(req *ssh.Request, ok bool) {
	if req.WantReply {
		_ = req.Reply(ok, nil)
	}
}

// start opens the terminal screen and launches the reader and writer.
func (s *Session) start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("shell already started")
	}
	if s.closed.Load() {
		return errors.New("session closed")
	}

	ti, err := tcell.LookupTerminfo(s.tty.Term())
	if err != nil {
		s.log.Debug("unknown terminal, using fallback", zap.String("term", s.tty.Term()))
		if ti, err = tcell.LookupTerminfo(defaultTerm); err != nil {
			return err
		}
	}
	screen, err := tcell.NewTerminfoScreenFromTtyTerminfo(s.tty, ti)
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	s.screen = screen
	s.started = true

	if !s.server.announce(s) {
		go s.Close()
		return nil
	}
	go s.readLoop()
	go s.writeLoop()
	return nil
}

// Close restores the terminal, reports exit status 0 and drops the
// connection. Safe to call more than once and from any goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)

		s.mu.Lock()
		screen := s.screen
		s.mu.Unlock()
		if screen != nil {
			done := make(chan struct{})
			go func() {
				screen.Fini()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(s.server.opts.WriteTimeout):
				s.log.Debug("terminal restore timed out")
			}
		}

		_, _ = s.channel.SendRequest("exit-status", false, ssh.Marshal(exitStatus{}))
		s.channel.Close()
		s.conn.Close()

		s.server.untrack(s)
		s.server.NotifyDead(s.ID)
		s.log.Info("session closed")
	})
}

// readLoop runs in its own goroutine. It turns key events into commands for
// the bound player.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventError:
			if !s.closed.Load() {
				s.log.Debug("read error", zap.Error(ev))
			}
			return
		case *tcell.EventResize:
			s.requestRedraw()
		case *tcell.EventKey:
			cmd, quit := render.KeyCommand(ev)
			if quit {
				return
			}
			if cmd == world.CmdNone || !s.allowKey(time.Now().Unix()) {
				continue
			}
			if p := s.player.Load(); p != nil {
				s.server.submit.Submit(p, cmd)
				s.server.metrics.Actions.WithLabelValues(cmd.String()).Inc()
			}
		}
	}
}

// allowKey counts one key against the per-second budget; now is a unix second.
func (s *Session) allowKey(now int64) bool {
	if s.keysPerSec <= 0 {
		return true
	}
	if now != s.keyResetAt {
		s.keyCount = 0
		s.keyResetAt = now
	}
	s.keyCount++
	if s.keyCount > s.keysPerSec {
		if s.keyCount == s.keysPerSec+1 {
			s.log.Debug("key rate exceeded, dropping keys", zap.Int("kps", s.keysPerSec))
		}
		return false
	}
	return true
}

func (s *Session) requestRedraw() {
	select {
	case s.redraw <- struct{}{}:
	default:
	}
}

// writeLoop runs in its own goroutine. It polls the publisher and repaints
// the screen whenever a newer snapshot is out, or after a resize.
func (s *Session) writeLoop() {
	defer s.Close()

	ticker := time.NewTicker(s.server.opts.PollInterval)
	defer ticker.Stop()

	var last uint64
	drawn := false
	for {
		force := false
		select {
		case <-s.closeCh:
			return
		case <-s.redraw:
			s.screen.Sync()
			force = true
		case <-ticker.C:
		}

		snap := s.server.pub.Load()
		if drawn && !force && snap.Version == last {
			continue
		}
		render.Draw(s.screen, snap)
		s.screen.Show()
		last, drawn = snap.Version, true
	}
}
