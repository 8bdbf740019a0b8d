// dmalog/debug_types.go

//go:build dmalogdebug

package dmalog

import "sync/atomic"

// RingStats holds producer-side counters since the last reset.
type RingStats struct {
	ReserveRetries uint32 // CAS retries caused by concurrent reservations
	Enqueued       uint32 // messages accepted
	EnqueuedBytes  uint32 // bytes accepted
	MaxUsed        uint32 // high-water mark of ring occupancy
}

// TransferStats holds drain-side counters since the last reset.
type TransferStats struct {
	KickInterrupt uint32 // kicks declined in interrupt context
	KickBusy      uint32 // kicks declined while a transfer was in flight
	StartEmpty    uint32 // start attempts with nothing committed to send
	StartGuarded  uint32 // start attempts declined by in-flight reservations
	Transfers     uint32 // spans handed to the transmitter
	TransferBytes uint32 // bytes handed to the transmitter
	Chained       uint32 // transfers started from the completion path
}

func (r *Ring) DebugReset() {
	r.stats = RingStats{}
}

func (r *Ring) DebugStats() RingStats {
	return RingStats{
		ReserveRetries: atomic.LoadUint32(&r.stats.ReserveRetries),
		Enqueued:       atomic.LoadUint32(&r.stats.Enqueued),
		EnqueuedBytes:  atomic.LoadUint32(&r.stats.EnqueuedBytes),
		MaxUsed:        atomic.LoadUint32(&r.stats.MaxUsed),
	}
}

// DebugStats returns both counter sets of a logger's ring and controller.
func (l *Logger) DebugStats() (RingStats, TransferStats) {
	return l.ring.DebugStats(), l.ctl.DebugStats()
}

func (c *TransferController) DebugReset() {
	c.stats = TransferStats{}
}

func (c *TransferController) DebugStats() TransferStats {
	return TransferStats{
		KickInterrupt: atomic.LoadUint32(&c.stats.KickInterrupt),
		KickBusy:      atomic.LoadUint32(&c.stats.KickBusy),
		StartEmpty:    atomic.LoadUint32(&c.stats.StartEmpty),
		StartGuarded:  atomic.LoadUint32(&c.stats.StartGuarded),
		Transfers:     atomic.LoadUint32(&c.stats.Transfers),
		TransferBytes: atomic.LoadUint32(&c.stats.TransferBytes),
		Chained:       atomic.LoadUint32(&c.stats.Chained),
	}
}
