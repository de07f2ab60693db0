package system

import (
	"fmt"
	"sort"
	"time"
)

// Runner executes systems in phase order each tick.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system once. A panicking system aborts the rest of the
// tick; the panic is returned as an error so the caller can log it and keep
// the loop alive.
func (r *Runner) Tick(dt time.Duration) (err error) {
	r.ensureSorted()
	var current System
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("system %T (%s) panicked: %v", current, current.Phase(), rec)
		}
	}()
	for _, s := range r.systems {
		current = s
		s.Update(dt)
	}
	return nil
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
