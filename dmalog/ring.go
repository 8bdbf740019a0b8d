// dmalog/ring.go

package dmalog

import "sync/atomic"

// Ring is the circular send buffer shared between message producers and the
// transfer path. Producers reserve space with a lock-free CAS loop and then
// copy their bytes into the region they alone reserved, so any number of
// callers may enqueue concurrently, from thread mode or from nested interrupt
// handlers, without ever blocking or masking interrupts.
//
// Invariants:
//   - write only ever advances, and only by the length of a successful
//     reservation.
//   - read is advanced by the transfer-completion path alone, and only to a
//     value previously recorded in pending.
//   - guard == 0 means every reserved region has been fully copied; the
//     transfer path checks it before handing bytes to the hardware.
//   - One slot is always kept empty, so read == write means empty, never full.
type Ring struct {
	buf []byte
	cap uint32

	write   atomic.Uint32 // next byte to reserve; multi-writer, CAS only
	read    atomic.Uint32 // first unsent byte
	pending atomic.Uint32 // read value to adopt when the in-flight transfer completes
	guard   atomic.Int32  // producers between "reserved" and "copied"
	missed  atomic.Uint32 // messages dropped for lack of space

	stats RingStats
}

// NewRing returns a ring with the given capacity. Usable space is capacity-1
// bytes. Capacity below 2 is a programming error.
func NewRing(capacity int) *Ring {
	if capacity < 2 {
		panic("dmalog: ring capacity must be at least 2")
	}
	return &Ring{buf: make([]byte, capacity), cap: uint32(capacity)}
}

// Enqueue copies p into the ring as a single message. It never blocks: either
// space for the whole message is reserved and the bytes are copied, or nothing
// is written and the miss counter advances. The reservation is a
// read/compute/compare-and-swap loop on the write cursor; a failed swap means
// another context reserved concurrently, and the loop retries with the fresh
// cursor. The returned bool reports acceptance; the logging layer ignores it.
func (r *Ring) Enqueue(p []byte) bool {
	n := uint32(len(p))
	if n == 0 {
		return true
	}

	r.guard.Add(1)

	var wr, next uint32
	for {
		wr = r.write.Load()
		if r.availableSpace(wr) >= n {
			next = r.advance(wr, n)
		} else {
			next = wr // no room: hold position, reservation declined
		}
		if r.write.CompareAndSwap(wr, next) {
			break
		}
		r.dbgReserveRetry()
	}

	ok := next != wr
	if ok {
		if first := r.cap - wr; n > first {
			// Destination crosses the physical end: split into two copies.
			copy(r.buf[wr:], p[:first])
			copy(r.buf, p[first:])
		} else {
			copy(r.buf[wr:wr+n], p)
		}
		r.dbgEnqueued(n)
	} else {
		r.missed.Add(1)
	}

	r.guard.Add(-1)
	return ok
}

// availableSpace reports how many bytes may be reserved at write position w.
func (r *Ring) availableSpace(w uint32) uint32 {
	rd := r.read.Load()
	if w >= rd {
		return r.cap - (w - rd) - 1
	}
	return rd - w - 1
}

// advance moves pos forward by step, wrapping at capacity.
func (r *Ring) advance(pos, step uint32) uint32 {
	return (pos + step) % r.cap
}

// Used returns the number of bytes between the read and write cursors. The
// value is a snapshot; with producers active it is stale by the time it
// returns.
func (r *Ring) Used() int {
	w := r.write.Load()
	rd := r.read.Load()
	if w >= rd {
		return int(w - rd)
	}
	return int(r.cap - rd + w)
}

// Capacity returns the total size of the ring in bytes.
func (r *Ring) Capacity() int {
	return int(r.cap)
}

// Missed returns the number of messages dropped because the ring was full.
// A non-zero value suggests a bigger buffer or a faster drain.
func (r *Ring) Missed() uint32 {
	return r.missed.Load()
}
