package ident

import "fmt"

// ID identifies a unit for the lifetime of the process. Zero is never handed out.
type ID uint64

func (id ID) IsZero() bool { return id == 0 }

func (id ID) String() string { return fmt.Sprintf("#%d", uint64(id)) }

// Allocator hands out monotonically increasing IDs. Unlike a generational pool
// it has no free list: an ID released by a removed unit is never reissued,
// so stale references can always be told apart by value.
// Accessed only from the game loop goroutine.
type Allocator struct {
	next ID
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns a fresh ID.
func (a *Allocator) Next() ID {
	a.next++
	return a.next
}

// Issued reports how many IDs have been handed out so far.
func (a *Allocator) Issued() int {
	return int(a.next)
}
