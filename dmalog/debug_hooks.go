// dmalog/debug_hooks.go

//go:build dmalogdebug

package dmalog

import "sync/atomic"

func (r *Ring) dbgReserveRetry() {
	atomic.AddUint32(&r.stats.ReserveRetries, 1)
}

func (r *Ring) dbgEnqueued(n uint32) {
	atomic.AddUint32(&r.stats.Enqueued, 1)
	atomic.AddUint32(&r.stats.EnqueuedBytes, n)
	// track high-water mark
	used := uint32(r.Used())
	for {
		max := atomic.LoadUint32(&r.stats.MaxUsed)
		if used <= max {
			break
		}
		if atomic.CompareAndSwapUint32(&r.stats.MaxUsed, max, used) {
			break
		}
	}
}

func (c *TransferController) dbgKickInterrupt() {
	atomic.AddUint32(&c.stats.KickInterrupt, 1)
}

func (c *TransferController) dbgKickBusy() {
	atomic.AddUint32(&c.stats.KickBusy, 1)
}

func (c *TransferController) dbgStartEmpty() {
	atomic.AddUint32(&c.stats.StartEmpty, 1)
}

func (c *TransferController) dbgStartGuarded() {
	atomic.AddUint32(&c.stats.StartGuarded, 1)
}

func (c *TransferController) dbgTransfer(n uint32, chained bool) {
	atomic.AddUint32(&c.stats.Transfers, 1)
	atomic.AddUint32(&c.stats.TransferBytes, n)
	if chained {
		atomic.AddUint32(&c.stats.Chained, 1)
	}
}
