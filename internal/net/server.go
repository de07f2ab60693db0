package net

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"github.com/dmamonov/hilo/internal/metrics"
	"github.com/dmamonov/hilo/internal/render"
	"github.com/dmamonov/hilo/internal/world"
)

const handshakeTimeout = 10 * time.Second

// Submitter queues player commands for the game loop. Safe from any goroutine.
type Submitter interface {
	Submit(actor *world.Actor, cmd world.Command)
}

type Options struct {
	BindAddress   string
	PollInterval  time.Duration // how often writers look for a new snapshot
	WriteTimeout  time.Duration // how long a closing session may spend restoring the terminal
	KeysPerSecond int           // 0 = unlimited
	MaxSessions   int           // 0 = unlimited
}

// Server accepts SSH connections and creates Sessions.
// New/dead sessions are communicated to the game loop via channels.
type Server struct {
	listener net.Listener
	config   *ssh.ServerConfig
	opts     Options
	submit   Submitter
	pub      *render.Publisher
	metrics  *metrics.Metrics

	nextID   atomic.Uint64
	mu       sync.Mutex
	sessions map[uint64]*Session
	newConns chan *Session
	deadCh   chan uint64 // session IDs of dead sessions

	log       *zap.Logger
	closeCh   chan struct{}
	closeOnce sync.Once
}

func NewServer(opts Options, hostKey ssh.Signer, submit Submitter, pub *render.Publisher, m *metrics.Metrics, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", opts.BindAddress)
	if err != nil {
		return nil, err
	}
	cfg := &ssh.ServerConfig{NoClientAuth: true}
	cfg.AddHostKey(hostKey)

	return &Server{
		listener: ln,
		config:   cfg,
		opts:     opts,
		submit:   submit,
		pub:      pub,
		metrics:  m,
		sessions: make(map[uint64]*Session),
		newConns: make(chan *Session, 64),
		deadCh:   make(chan uint64, 64),
		log:      log,
		closeCh:  make(chan struct{}),
	}, nil
}

// AcceptLoop runs in its own goroutine until Shutdown.
func (s *Server) AcceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
			}
			s.log.Error("accept failed", zap.Error(err))
			continue
		}
		go s.handleConn(conn)
	}
}

// handleConn runs the SSH handshake and serves the connection's session
// channels. Only "session" channels are accepted.
func (s *Server) handleConn(conn net.Conn) {
	_ = conn.SetDeadline(time.Now().Add(handshakeTimeout))
	sconn, chans, reqs, err := ssh.NewServerConn(conn, s.config)
	if err != nil {
		s.log.Debug("ssh handshake failed", zap.String("ip", conn.RemoteAddr().String()), zap.Error(err))
		conn.Close()
		return
	}
	_ = conn.SetDeadline(time.Time{})
	go ssh.DiscardRequests(reqs)

	for nc := range chans {
		if nc.ChannelType() != "session" {
			_ = nc.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		if s.opts.MaxSessions > 0 && s.Count() >= s.opts.MaxSessions {
			s.log.Warn("session limit reached, rejecting", zap.Int("max", s.opts.MaxSessions))
			_ = nc.Reject(ssh.ResourceShortage, "server full")
			continue
		}
		ch, requests, err := nc.Accept()
		if err != nil {
			s.log.Debug("channel accept failed", zap.Error(err))
			continue
		}

		id := s.nextID.Add(1)
		sess := newSession(id, sconn, ch, s)
		s.track(sess)
		s.log.Info(fmt.Sprintf("player connected  session=%d  user=%s  ip=%s", id, sess.User, sess.IP))
		go sess.serve(requests)
	}
}

func (s *Server) track(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()
	s.metrics.Sessions.Set(float64(n))
}

func (s *Server) untrack(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	n := len(s.sessions)
	s.mu.Unlock()
	s.metrics.Sessions.Set(float64(n))
}

// Count returns the number of open sessions.
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// announce hands a started session to the game loop.
func (s *Server) announce(sess *Session) bool {
	select {
	case s.newConns <- sess:
		return true
	default:
		s.log.Warn("session queue full, dropping connection", zap.Uint64("session", sess.ID))
		return false
	}
}

// NewSessions returns the channel of newly started sessions.
func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// NotifyDead reports a dead session ID to the game loop.
func (s *Server) NotifyDead(sessionID uint64) {
	select {
	case s.deadCh <- sessionID:
	default:
	}
}

// DeadSessions returns the channel of dead session IDs.
func (s *Server) DeadSessions() <-chan uint64 {
	return s.deadCh
}

// Shutdown stops accepting connections and closes every open session.
func (s *Server) Shutdown() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
		s.listener.Close()

		s.mu.Lock()
		open := make([]*Session, 0, len(s.sessions))
		for _, sess := range s.sessions {
			open = append(open, sess)
		}
		s.mu.Unlock()
		for _, sess := range open {
			sess.Close()
		}
	})
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
