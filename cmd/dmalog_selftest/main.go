// On-target self-test: floods the logger in bursts from the main loop, then
// reports the miss counter over the same UART. Flash with tinygo on an
// stm32f4 board with USART2 wired to a serial monitor.

//go:build stm32f4

package main

import (
	"machine"
	"time"

	"github.com/keanight/tinygo-dmalog/dmalog"
)

func main() {
	// Give the monitor time to attach.
	time.Sleep(3 * time.Second)

	uart := machine.UART2
	uart.Configure(machine.UARTConfig{BaudRate: 921600})

	tx := dmalog.NewUSART2Transmitter()
	l := dmalog.New(tx)

	l.Logln(dmalog.Str("dmalog self-test starting"))

	const (
		rounds  = 50
		perLoop = 20
	)
	for round := 0; round < rounds; round++ {
		for i := 0; i < perLoop; i++ {
			l.Logln(dmalog.Str("round "), dmalog.Int(int64(round)),
				dmalog.Str(" msg "), dmalog.Int(int64(i)),
				dmalog.Str(" t="), dmalog.Float(23.5+float64(i)*0.125))
		}
		// Poll from the main loop so transfers deferred by interrupt-context
		// enqueues still start promptly.
		l.Process()
		time.Sleep(10 * time.Millisecond)
	}

	// Let the DMA drain, then report.
	time.Sleep(500 * time.Millisecond)
	l.Process()
	time.Sleep(500 * time.Millisecond)

	l.Logln(dmalog.Str("missed: "), dmalog.Uint(uint64(l.Missed())))

	for {
		time.Sleep(time.Second)
	}
}
