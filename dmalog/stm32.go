// dmalog/stm32.go

//go:build stm32f4

// STM32F4 glue: a DMA-driven transmitter for USART2 TX (DMA1 stream 6,
// channel 4). The USART itself (pins, baud, enable) is expected to be set up
// through the machine package; this file owns only the DMA side and the
// transfer-complete interrupt.
package dmalog

import (
	"device/stm32"
	"runtime/interrupt"
	"unsafe"
)

// USART2Transmitter implements Transmitter over DMA1 stream 6. One span is in
// flight at a time per the Transmitter contract, so the stream is always idle
// when Transmit runs.
type USART2Transmitter struct {
	done func()
}

// The DMA completion ISR needs a stable instance to report into.
var usart2TX USART2Transmitter

// NewUSART2Transmitter enables the DMA1 clock, configures stream 6 for
// memory-to-peripheral byte transfers into USART2->DR and unmasks the
// stream's transfer-complete interrupt.
func NewUSART2Transmitter() *USART2Transmitter {
	t := &usart2TX

	stm32.RCC.AHB1ENR.SetBits(stm32.RCC_AHB1ENR_DMA1EN)

	// The stream must be disabled while reconfigured.
	stm32.DMA1.S6CR.ClearBits(stm32.DMA_S6CR_EN)
	for stm32.DMA1.S6CR.HasBits(stm32.DMA_S6CR_EN) {
	}

	// Channel 4, memory->peripheral, byte wide on both sides, memory
	// increment, transfer-complete interrupt. Half-transfer stays masked.
	stm32.DMA1.S6CR.Set(4<<stm32.DMA_S6CR_CHSEL_Pos |
		1<<stm32.DMA_S6CR_DIR_Pos |
		stm32.DMA_S6CR_MINC |
		stm32.DMA_S6CR_TCIE)
	stm32.DMA1.S6PAR.Set(uint32(uintptr(unsafe.Pointer(&stm32.USART2.DR))))

	stm32.USART2.CR3.SetBits(stm32.USART_CR3_DMAT)

	intr := interrupt.New(stm32.IRQ_DMA1_Stream6, handleDMA1Stream6)
	intr.SetPriority(0x80)
	intr.Enable()

	return t
}

// RegisterOnComplete implements CompletionRegistrar.
func (t *USART2Transmitter) RegisterOnComplete(fn func()) { t.done = fn }

// Transmit implements Transmitter: clear stale stream flags, point the stream
// at the span and enable it.
func (t *USART2Transmitter) Transmit(p []byte) {
	stm32.DMA1.HIFCR.Set(stm32.DMA_HIFCR_CTCIF6 | stm32.DMA_HIFCR_CHTIF6 |
		stm32.DMA_HIFCR_CTEIF6 | stm32.DMA_HIFCR_CDMEIF6 | stm32.DMA_HIFCR_CFEIF6)
	stm32.USART2.SR.ClearBits(stm32.USART_SR_TC)
	stm32.DMA1.S6M0AR.Set(uint32(uintptr(unsafe.Pointer(&p[0]))))
	stm32.DMA1.S6NDTR.Set(uint32(len(p)))
	stm32.DMA1.S6CR.SetBits(stm32.DMA_S6CR_EN)
}

func handleDMA1Stream6(interrupt.Interrupt) {
	if !stm32.DMA1.HISR.HasBits(stm32.DMA_HISR_TCIF6) {
		return
	}
	stm32.DMA1.HIFCR.Set(stm32.DMA_HIFCR_CTCIF6)
	if fn := usart2TX.done; fn != nil {
		fn()
	}
}

// Target builds probe the CPU's active-exception state.
func defaultInterruptProbe() InterruptProbe {
	return InterruptProbeFunc(interrupt.In)
}
