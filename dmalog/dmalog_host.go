// dmalog/dmalog_host.go

//go:build !stm32f4

package dmalog

// Host builds run in thread mode only.
func defaultInterruptProbe() InterruptProbe {
	return InterruptProbeFunc(func() bool { return false })
}
