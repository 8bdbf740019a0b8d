// dmalog/transfer.go

package dmalog

import "sync/atomic"

// TransferController is the two-state machine between the ring and the
// hardware transmitter: Idle, or Transmitting exactly one physically
// contiguous span. Entry into the start path is claimed with a CAS on the
// sending flag, so at most one agent ever computes a span or touches the
// read cursor, across thread mode and completion interrupts alike.
type TransferController struct {
	ring  *Ring
	tx    Transmitter
	probe InterruptProbe

	sending atomic.Bool

	stats TransferStats
}

// NewTransferController wires a controller to its ring and transmitter.
// A nil probe means "never in interrupt context" (the host case).
func NewTransferController(ring *Ring, tx Transmitter, probe InterruptProbe) *TransferController {
	if probe == nil {
		probe = InterruptProbeFunc(func() bool { return false })
	}
	return &TransferController{ring: ring, tx: tx, probe: probe}
}

// Kick starts a transfer if one can be started from the current call site:
// not from an interrupt handler, and not while a transfer is in flight.
// Every "no" is silent; the next enqueue or the completion callback retries.
func (c *TransferController) Kick() {
	if c.probe.InInterrupt() {
		c.dbgKickInterrupt()
		return
	}
	if !c.sending.CompareAndSwap(false, true) {
		c.dbgKickBusy()
		return
	}
	c.start(false)
}

// start runs with the Transmitting claim held. It either hands a span to the
// transmitter, keeping the claim until OnComplete, or releases the claim.
func (c *TransferController) start(chained bool) {
	r := c.ring
	wr := r.write.Load()
	rd := r.read.Load()

	// Nothing to send, or a producer is still copying into reserved space.
	// The guard check keeps half-written bytes away from the hardware.
	if wr == rd {
		c.sending.Store(false)
		c.dbgStartEmpty()
		return
	}
	if r.guard.Load() != 0 {
		c.sending.Store(false)
		c.dbgStartGuarded()
		return
	}

	var hi uint32
	if wr > rd {
		r.pending.Store(wr)
		hi = wr
	} else {
		// Data wraps past the end: send the tail now, the head on completion.
		r.pending.Store(0)
		hi = r.cap
	}
	c.dbgTransfer(hi-rd, chained)
	c.tx.Transmit(r.buf[rd:hi])
}

// OnComplete is the transfer-completion notification, fired exactly once per
// Transmit, typically from an interrupt-like context. It adopts the recorded
// read cursor and immediately chains into the next transfer when more data is
// already waiting.
func (c *TransferController) OnComplete() {
	c.ring.read.Store(c.ring.pending.Load())
	c.start(true)
}

// Transmitting reports whether a transfer is in flight.
func (c *TransferController) Transmitting() bool {
	return c.sending.Load()
}
