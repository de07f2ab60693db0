package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/dmamonov/hilo/internal/core/system"
	"github.com/dmamonov/hilo/internal/net"
	"github.com/dmamonov/hilo/internal/world"
)

// SessionSystem accepts new SSH sessions into the game loop and binds each
// to a player. Phase 0 (PreUpdate).
type SessionSystem struct {
	server  *net.Server
	world   *world.World
	waiting []*net.Session          // started but no player on the grid yet
	claims  map[uint64]*world.Actor // session ID -> bound player
	log     *zap.Logger
}

func NewSessionSystem(server *net.Server, w *world.World, log *zap.Logger) *SessionSystem {
	return &SessionSystem{
		server: server,
		world:  w,
		claims: make(map[uint64]*world.Actor),
		log:    log,
	}
}

func (s *SessionSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *SessionSystem) Update(_ time.Duration) {
	for {
		select {
		case sess := <-s.server.NewSessions():
			s.waiting = append(s.waiting, sess)
		default:
			goto doneNew
		}
	}
doneNew:

	for {
		select {
		case id := <-s.server.DeadSessions():
			delete(s.claims, id)
		default:
			goto doneDead
		}
	}
doneDead:

	if len(s.waiting) == 0 {
		return
	}
	pending := s.waiting[:0]
	for _, sess := range s.waiting {
		if sess.IsClosed() {
			continue
		}
		p := choosePlayer(s.world, sess.User, s.claims)
		if p == nil {
			pending = append(pending, sess)
			continue
		}
		s.claims[sess.ID] = p
		sess.Bind(p)
	}
	s.waiting = pending
}

// choosePlayer picks the player a new session controls: the player bound to
// the user's name, else the first unclaimed player, else the first player.
// Nil when no player is on the grid.
func choosePlayer(w *world.World, user string, claims map[uint64]*world.Actor) *world.Actor {
	if user != "" {
		if named := w.ListNamed(world.KindPlayer, user); len(named) > 0 {
			return named[0].(*world.Actor)
		}
	}
	players := w.Players()
	if len(players) == 0 {
		return nil
	}
	claimed := make(map[*world.Actor]bool, len(claims))
	for _, p := range claims {
		claimed[p] = true
	}
	for _, p := range players {
		if !claimed[p] {
			return p
		}
	}
	return players[0]
}
