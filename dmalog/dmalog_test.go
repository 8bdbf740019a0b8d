// dmalog/dmalog_test.go

package dmalog

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// syncBuffer is an io.Writer safe to share with the host drain goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(t *testing.T, opts ...Option) (*Logger, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	tx := NewHostTransmitter(out)
	t.Cleanup(func() { tx.Close() })
	return New(tx, opts...), out
}

func TestLoggerSeverityPrefixes(t *testing.T) {
	l, out := newTestLogger(t)

	l.Logln(Str("temperature is "), Float(21.5))
	l.Info(Str("boot in "), Uint(42), Str(" ms"))
	l.Warning(Str("sensor A: "), Int(-7))
	l.Error(Char('Q'), Str(" is not a valid command"))
	l.Log(Str("raw"), Char('!'))
	l.Flush()

	want := "temperature is 21.500\n" +
		"Info: boot in 42 ms\n" +
		"Warning: sensor A: -7\n" +
		"Error: Q is not a valid command\n" +
		"raw!"
	require.Equal(t, want, out.String())
	require.Equal(t, uint32(0), l.Missed())
}

func TestLoggerOversizeMessageDroppedWhole(t *testing.T) {
	l, out := newTestLogger(t)

	l.Logln(Str(strings.Repeat("a", MaxMessageSize)))
	l.Flush()

	require.Equal(t, uint32(1), l.Missed())
	require.Equal(t, "", out.String())

	// The logger still works afterwards.
	l.Logln(Str("ok"))
	l.Flush()
	require.Equal(t, "ok\n", out.String())
}

func TestLoggerFullBufferDropsAndCounts(t *testing.T) {
	// A transmitter that never completes wedges the drain, so the ring fills.
	stuck := &recordTransmitter{}
	l := New(stuck, WithBufferSize(32))

	for i := 0; i < 16; i++ {
		l.Logln(Str("0123456789"))
	}
	require.NotZero(t, l.Missed())
	// What was accepted is intact and bounded by the usable capacity.
	require.LessOrEqual(t, l.Buffered(), 31)
}

func TestLoggerInterruptContextDefersTransfer(t *testing.T) {
	inISR := true
	out := &syncBuffer{}
	tx := NewHostTransmitter(out)
	defer tx.Close()
	l := New(tx, WithInterruptProbe(InterruptProbeFunc(func() bool { return inISR })))

	// Enqueued from "interrupt context": no transfer may start.
	l.Logln(Str("from isr"))
	require.Equal(t, 9, l.Buffered())

	// The main-loop poll picks it up once back in thread mode.
	inISR = false
	l.Process()
	l.Flush()
	require.Equal(t, "from isr\n", out.String())
}

func TestLoggerCompletionRegistration(t *testing.T) {
	// HostTransmitter implements CompletionRegistrar, so New wires the
	// completion path without any manual plumbing.
	l, out := newTestLogger(t)
	for i := 0; i < 64; i++ {
		l.Logln(Str("line "), Int(int64(i)))
	}
	l.Flush()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 64)
	for i, line := range lines {
		require.Equal(t, "line "+string(appendSigned(nil, int64(i))), line)
	}
	require.Equal(t, uint32(0), l.Missed())
}

func BenchmarkLogln(b *testing.B) {
	tx := NewHostTransmitter(&syncBuffer{})
	defer tx.Close()
	l := New(tx, WithBufferSize(1<<16))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Logln(Str("value: "), Int(int64(i)), Char(' '), Float(3.25))
	}
}
