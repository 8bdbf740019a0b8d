// dmalog/dmalog.go

// Package dmalog provides a non-blocking logger for DMA-driven UART transmit
// paths. Messages are formatted into a caller-local scratch buffer, queued
// into a shared lock-free ring, and drained opportunistically by a transfer
// controller whenever the hardware is idle. Enqueueing never blocks and never
// masks interrupts, so logging is safe from any context, including nested
// interrupt handlers. Under buffer pressure whole messages are dropped and
// counted rather than delaying the caller.
package dmalog

import "time"

// Buffer sizing. A full ring mostly means the buffer is too small for the
// configured baud rate; watch Missed.
const (
	// DefaultBufferSize is the ring capacity used when no option overrides it.
	DefaultBufferSize = 512
	// MaxMessageSize bounds a single formatted message, prefix and line
	// ending included. Longer messages are dropped whole and counted.
	MaxMessageSize = 256
)

type severity uint8

const (
	sevPlain severity = iota
	sevInfo
	sevWarning
	sevError
)

// One prefix per severity; all severities share a single log path.
var sevPrefix = [...]string{
	sevPlain:   "",
	sevInfo:    "Info: ",
	sevWarning: "Warning: ",
	sevError:   "Error: ",
}

// Logger owns a ring and its transfer controller. Construct once at startup
// with New and keep the instance for the process lifetime; one instance per
// transmit peripheral.
type Logger struct {
	ring *Ring
	ctl  *TransferController
}

type config struct {
	bufferSize int
	probe      InterruptProbe
}

// Option configures a Logger at construction time.
type Option func(*config)

// WithBufferSize sets the ring capacity in bytes (default DefaultBufferSize).
func WithBufferSize(n int) Option {
	return func(c *config) { c.bufferSize = n }
}

// WithInterruptProbe overrides the interrupt-context probe. The default is
// the platform probe on target and "never" on the host.
func WithInterruptProbe(p InterruptProbe) Option {
	return func(c *config) { c.probe = p }
}

// New returns a Logger transmitting through tx. If tx delivers its own
// completion notification (CompletionRegistrar), the logger's completion
// handler is registered with it; otherwise the platform glue must invoke
// OnTransferComplete from its completion interrupt.
func New(tx Transmitter, opts ...Option) *Logger {
	cfg := config{bufferSize: DefaultBufferSize, probe: defaultInterruptProbe()}
	for _, opt := range opts {
		opt(&cfg)
	}

	ring := NewRing(cfg.bufferSize)
	l := &Logger{
		ring: ring,
		ctl:  NewTransferController(ring, tx, cfg.probe),
	}
	if reg, ok := tx.(CompletionRegistrar); ok {
		reg.RegisterOnComplete(l.OnTransferComplete)
	}
	return l
}

// Log queues args as a single message, with no header and no line ending.
func (l *Logger) Log(args ...Value) { l.logWith(sevPlain, false, args) }

// Logln queues args as a single line.
func (l *Logger) Logln(args ...Value) { l.logWith(sevPlain, true, args) }

// Info queues args as a line with an "Info: " header.
func (l *Logger) Info(args ...Value) { l.logWith(sevInfo, true, args) }

// Warning queues args as a line with a "Warning: " header.
func (l *Logger) Warning(args ...Value) { l.logWith(sevWarning, true, args) }

// Error queues args as a line with an "Error: " header.
func (l *Logger) Error(args ...Value) { l.logWith(sevError, true, args) }

// logWith is the single send path behind every severity: format into a
// scratch buffer, enqueue, kick the transfer.
func (l *Logger) logWith(sev severity, newline bool, args []Value) {
	var scratch [MaxMessageSize]byte
	buf := append(scratch[:0], sevPrefix[sev]...)
	for _, a := range args {
		buf = appendValue(buf, a)
	}
	if newline {
		buf = append(buf, '\n')
	}
	if len(buf) > MaxMessageSize {
		// Oversized messages cannot occupy a single slot; drop whole.
		l.ring.missed.Add(1)
		return
	}
	l.ring.Enqueue(buf)
	l.ctl.Kick()
}

// Process attempts to start a transfer if data is pending. Poll it from the
// main loop; it covers the window where an enqueueing interrupt could not
// start the transfer itself.
func (l *Logger) Process() { l.ctl.Kick() }

// OnTransferComplete must be invoked, exactly once per transfer, when the
// transmitter reports completion. Transmitters implementing
// CompletionRegistrar call it automatically.
func (l *Logger) OnTransferComplete() { l.ctl.OnComplete() }

// Missed returns the number of messages dropped so far.
func (l *Logger) Missed() uint32 { return l.ring.Missed() }

// Buffered returns the number of bytes queued and not yet handed to the
// transmitter plus those in flight.
func (l *Logger) Buffered() int { return l.ring.Used() }

// Flush blocks until the ring is drained and no transfer is in flight. Host
// convenience for tools and tests; on target the hardware drains on its own.
func (l *Logger) Flush() {
	for l.ring.Used() != 0 || l.ctl.Transmitting() {
		l.Process()
		time.Sleep(50 * time.Microsecond)
	}
}
