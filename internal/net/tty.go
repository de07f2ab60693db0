package net

import (
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/crypto/ssh"
)

const (
	defaultTerm = "xterm"
	defaultCols = 80
	defaultRows = 24
)

// channelTty lets a tcell screen drive an SSH session channel. Input is
// pumped through a pipe so Drain can unblock the screen's reader without
// closing the channel; the channel itself is closed by the session.
type channelTty struct {
	ch ssh.Channel
	in *io.PipeReader

	mu       sync.Mutex
	term     string
	size     tcell.WindowSize
	onResize func()
}

var _ tcell.Tty = (*channelTty)(nil)

func newChannelTty(ch ssh.Channel) *channelTty {
	pr, pw := io.Pipe()
	go func() {
		_, err := io.Copy(pw, ch)
		pw.CloseWithError(err)
	}()
	return &channelTty{
		ch:   ch,
		in:   pr,
		term: defaultTerm,
		size: tcell.WindowSize{Width: defaultCols, Height: defaultRows},
	}
}

func (t *channelTty) Read(p []byte) (int, error)  { return t.in.Read(p) }
func (t *channelTty) Write(p []byte) (int, error) { return t.ch.Write(p) }

func (t *channelTty) Start() error { return nil }
func (t *channelTty) Stop() error  { return nil }

// Drain makes a pending Read return; the screen is shutting down.
func (t *channelTty) Drain() error { return t.in.Close() }

func (t *channelTty) Close() error { return nil }

func (t *channelTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	t.mu.Unlock()
}

func (t *channelTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

func (t *channelTty) Term() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term
}

func (t *channelTty) setTerm(term string) {
	if term == "" {
		return
	}
	t.mu.Lock()
	t.term = term
	t.mu.Unlock()
}

// resize records a new window size and tells the screen about it.
func (t *channelTty) resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	t.mu.Lock()
	t.size = tcell.WindowSize{Width: cols, Height: rows}
	cb := t.onResize
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}
