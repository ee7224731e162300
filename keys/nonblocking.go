// Package keys implements the keystroke decoder and a non-blocking input
// helper: converting a raw byte stream into logical key codes, and giving
// the decoder a way to peek ahead with a timeout without blocking the
// editor's single goroutine.
package keys

import (
	"errors"
	"io"
	"sync"
	"time"
)

// ErrPeekTimeout is returned by Source.Peek when no byte arrived within
// the requested timeout.
var ErrPeekTimeout = errors.New("keys: peek timeout")

// Source is what the decoder reads from: a byte-at-a-time reader that can
// also be asked to peek ahead with a timeout.
type Source interface {
	// Read returns the next byte, or io.EOF once the underlying source is
	// exhausted or closed.
	Read() (byte, error)
	// Peek reports what the next byte would be without consuming it,
	// waiting up to timeout. Returns ErrPeekTimeout if nothing arrived in
	// time, io.EOF at end of input.
	Peek(timeout time.Duration) (byte, error)
	// Enabled reports whether this source actually supports non-blocking
	// peek (a plain, unbuffered stdin wrapper might not).
	Enabled() bool
	// Shutdown stops any background goroutine. Idempotent.
	Shutdown()
}

// NonBlocking wraps an io.Reader with a background goroutine that buffers
// one byte at a time in a single-slot cell, guarded by a mutex and a
// condition variable, so the editor thread can peek with a timeout without
// touching the underlying reader directly: one goroutine, a tracked
// lifecycle, explicit shutdown — the slot itself needs a condition
// variable rather than a plain channel because Peek must be able to time
// out without consuming.
type NonBlocking struct {
	mu   sync.Mutex
	cond *sync.Cond

	hasByte bool
	b       byte
	eof     error // sticky once the underlying reader is exhausted

	closed bool
}

// NewNonBlocking starts a background goroutine reading one byte at a time
// from r.
func NewNonBlocking(r io.Reader) *NonBlocking {
	n := &NonBlocking{}
	n.cond = sync.NewCond(&n.mu)
	go n.fill(r)
	return n
}

func (n *NonBlocking) fill(r io.Reader) {
	var one [1]byte
	for {
		cnt, err := r.Read(one[:])
		if cnt > 0 {
			n.mu.Lock()
			for n.hasByte && !n.closed {
				n.cond.Wait()
			}
			if n.closed {
				n.mu.Unlock()
				return
			}
			n.b = one[0]
			n.hasByte = true
			n.cond.Broadcast()
			n.mu.Unlock()
		}
		if err != nil {
			n.mu.Lock()
			n.eof = err
			n.cond.Broadcast()
			n.mu.Unlock()
			return
		}
	}
}

// Read blocks until a byte is available or the source is exhausted/closed.
func (n *NonBlocking) Read() (byte, error) {
	n.mu.Lock()
	for !n.hasByte && n.eof == nil && !n.closed {
		n.cond.Wait()
	}
	if n.hasByte {
		b := n.b
		n.hasByte = false
		n.cond.Broadcast()
		n.mu.Unlock()
		return b, nil
	}
	err := n.eof
	n.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return 0, io.EOF
}

// Peek waits up to timeout for a byte to become available, without
// consuming it. A subsequent Read (or Peek) observes the same byte.
func (n *NonBlocking) Peek(timeout time.Duration) (byte, error) {
	ready := make(chan struct{}, 1)
	go func() {
		n.mu.Lock()
		for !n.hasByte && n.eof == nil && !n.closed {
			n.cond.Wait()
		}
		n.mu.Unlock()
		ready <- struct{}{}
	}()

	select {
	case <-ready:
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.hasByte {
			return n.b, nil
		}
		if n.eof != nil {
			return 0, n.eof
		}
		return 0, io.EOF
	case <-time.After(timeout):
		return 0, ErrPeekTimeout
	}
}

// Enabled always reports true for NonBlocking: it's the whole point of the
// type.
func (n *NonBlocking) Enabled() bool {
	return true
}

// Shutdown marks the helper closed: Read and Peek stop waiting and report
// io.EOF once no buffered byte is left. Idempotent: calling it twice, or
// after the underlying reader already hit EOF, is safe. The background
// goroutine exits when its pending read of the underlying reader returns;
// Shutdown does not interrupt that read.
func (n *NonBlocking) Shutdown() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.cond.Broadcast()
	n.mu.Unlock()
}

// Blocking is the degenerate Source for terminals or pipes where
// non-blocking peek isn't available: Peek always times out immediately and
// Enabled reports false, which gates the controller's ESC disambiguation
// step off entirely.
type Blocking struct {
	r io.Reader
}

// NewBlocking wraps r as a Source with no peek support.
func NewBlocking(r io.Reader) *Blocking {
	return &Blocking{r: r}
}

func (b *Blocking) Read() (byte, error) {
	var one [1]byte
	n, err := b.r.Read(one[:])
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	if n > 0 {
		return one[0], nil
	}
	return 0, err
}

func (b *Blocking) Peek(time.Duration) (byte, error) {
	return 0, ErrPeekTimeout
}

func (b *Blocking) Enabled() bool { return false }

func (b *Blocking) Shutdown() {}
