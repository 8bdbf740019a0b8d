// dmalog/transmitter.go

package dmalog

import (
	"io"
	"sync"
)

// Transmitter is the asynchronous hardware send capability. Transmit must
// accept the span without blocking and must not be called again until the
// completion notification for the previous call has fired. The span stays
// valid until that notification; implementations may send straight out of it.
type Transmitter interface {
	Transmit(p []byte)
}

// CompletionRegistrar is implemented by transmitters that deliver their own
// completion notification (a DMA interrupt on target, a drain goroutine on
// the host). New registers the logger's completion handler with such
// transmitters automatically.
type CompletionRegistrar interface {
	RegisterOnComplete(func())
}

// InterruptProbe reports whether the current call site is executing inside an
// interrupt handler. Starting a transfer from within the transmit peripheral's
// own completion chain is unsafe on most targets, so Kick declines there.
type InterruptProbe interface {
	InInterrupt() bool
}

// InterruptProbeFunc adapts a func to InterruptProbe.
type InterruptProbeFunc func() bool

// InInterrupt implements InterruptProbe.
func (f InterruptProbeFunc) InInterrupt() bool { return f() }

// HostTransmitter stands in for the DMA engine off-target: spans are drained
// on a goroutine, written to w, and acknowledged through the registered
// completion callback. Used by the unit tests, the stress tool and the host
// examples.
type HostTransmitter struct {
	w io.Writer

	mu   sync.Mutex
	done func()

	// One request may be outstanding at a time per the Transmitter contract,
	// so a single-slot channel never blocks the sender.
	reqCh  chan []byte
	closed chan struct{}
	once   sync.Once
}

// NewHostTransmitter returns a started transmitter writing to w.
func NewHostTransmitter(w io.Writer) *HostTransmitter {
	t := &HostTransmitter{
		w:      w,
		reqCh:  make(chan []byte, 1),
		closed: make(chan struct{}),
	}
	go t.drain()
	return t
}

// RegisterOnComplete implements CompletionRegistrar.
func (t *HostTransmitter) RegisterOnComplete(fn func()) {
	t.mu.Lock()
	t.done = fn
	t.mu.Unlock()
}

// Transmit implements Transmitter.
func (t *HostTransmitter) Transmit(p []byte) {
	select {
	case t.reqCh <- p:
	case <-t.closed:
	}
}

// Close stops the drain goroutine. Spans already accepted are still written.
func (t *HostTransmitter) Close() error {
	t.once.Do(func() { close(t.closed) })
	return nil
}

func (t *HostTransmitter) drain() {
	for {
		select {
		case p := <-t.reqCh:
			_, _ = t.w.Write(p) // a lossy sink mirrors the wire
			t.mu.Lock()
			done := t.done
			t.mu.Unlock()
			if done != nil {
				done()
			}
		case <-t.closed:
			return
		}
	}
}
