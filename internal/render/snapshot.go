package render

import (
	"sync/atomic"

	"github.com/dmamonov/hilo/internal/world"
)

// Snapshot is one published view of the game. It is never modified after
// Publish returns it, so readers may hold it without locking.
type Snapshot struct {
	Version uint64
	Clock   int
	Frame   world.Frame
	Status  []string // player reports, one line each
}

// Publisher hands the latest snapshot from the game loop to session writers.
type Publisher struct {
	current atomic.Pointer[Snapshot]
	version atomic.Uint64
}

func NewPublisher() *Publisher {
	p := &Publisher{}
	p.current.Store(&Snapshot{})
	return p
}

// Publish stores a new snapshot with the next version number.
// Called only from the game loop goroutine.
func (p *Publisher) Publish(clock int, frame world.Frame, status []string) *Snapshot {
	snap := &Snapshot{
		Version: p.version.Add(1),
		Clock:   clock,
		Frame:   frame,
		Status:  status,
	}
	p.current.Store(snap)
	return snap
}

// Load returns the latest snapshot. Safe from any goroutine.
func (p *Publisher) Load() *Snapshot {
	return p.current.Load()
}

// Version returns the version of the latest snapshot.
func (p *Publisher) Version() uint64 {
	return p.current.Load().Version
}

// Capture renders w and the reports of every player on it.
func Capture(w *world.World) (world.Frame, []string) {
	var status []string
	for _, pl := range w.Players() {
		status = append(status, pl.Report()...)
	}
	return w.Render(), status
}
