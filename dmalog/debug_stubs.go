// dmalog/debug_stubs.go

//go:build !dmalogdebug

package dmalog

type RingStats struct{}

func (r *Ring) DebugReset()           {}
func (r *Ring) DebugStats() RingStats { return RingStats{} }

func (r *Ring) dbgReserveRetry()   {}
func (r *Ring) dbgEnqueued(uint32) {}

type TransferStats struct{}

func (l *Logger) DebugStats() (RingStats, TransferStats) { return RingStats{}, TransferStats{} }

func (c *TransferController) DebugReset()               {}
func (c *TransferController) DebugStats() TransferStats { return TransferStats{} }

func (c *TransferController) dbgKickInterrupt()        {}
func (c *TransferController) dbgKickBusy()             {}
func (c *TransferController) dbgStartEmpty()           {}
func (c *TransferController) dbgStartGuarded()         {}
func (c *TransferController) dbgTransfer(uint32, bool) {}
