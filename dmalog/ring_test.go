// dmalog/ring_test.go

package dmalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnqueueSequentialLayout(t *testing.T) {
	r := NewRing(16)

	require.True(t, r.Enqueue([]byte("ABCDE")))
	require.True(t, r.Enqueue([]byte("FG")))

	require.Equal(t, uint32(0), r.read.Load())
	require.Equal(t, uint32(7), r.write.Load())
	require.Equal(t, "ABCDEFG", string(r.buf[:7]))
	require.Equal(t, 7, r.Used())
	require.Equal(t, uint32(0), r.Missed())
}

func TestEnqueueEmptyIsNoop(t *testing.T) {
	r := NewRing(16)
	require.True(t, r.Enqueue(nil))
	require.Equal(t, uint32(0), r.write.Load())
	require.Equal(t, 0, r.Used())
}

func TestEnqueueFullBufferCountsMiss(t *testing.T) {
	r := NewRing(16) // 15 usable

	require.True(t, r.Enqueue(make([]byte, 14)))
	before := append([]byte(nil), r.buf...)

	// 14 of 15 used: a 2-byte message must be declined whole.
	require.False(t, r.Enqueue([]byte("XY")))
	require.Equal(t, uint32(1), r.Missed())
	require.Equal(t, uint32(14), r.write.Load())
	require.Equal(t, before, r.buf)

	// The last usable byte is still reservable.
	require.True(t, r.Enqueue([]byte("Z")))
	require.Equal(t, uint32(15), r.write.Load())
}

func TestEnqueueWrapSplitsCopy(t *testing.T) {
	r := NewRing(16)

	// Occupy and release the first 12 bytes so the cursors sit at 12.
	require.True(t, r.Enqueue(make([]byte, 12)))
	r.pending.Store(12)
	r.read.Store(r.pending.Load())

	require.True(t, r.Enqueue([]byte("abcdefg")))
	require.Equal(t, uint32(3), r.write.Load())
	require.Equal(t, "abcd", string(r.buf[12:16]))
	require.Equal(t, "efg", string(r.buf[0:3]))
	require.Equal(t, 7, r.Used())
}

func TestAvailableSpace(t *testing.T) {
	r := NewRing(16)

	cases := []struct {
		name  string
		read  uint32
		write uint32
		want  uint32
	}{
		{"empty", 0, 0, 15},
		{"partial", 0, 7, 8},
		{"almost full", 0, 14, 1},
		{"full", 0, 15, 0},
		{"wrapped", 12, 3, 8},
		{"wrapped full", 12, 11, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r.read.Store(tc.read)
			require.Equal(t, tc.want, r.availableSpace(tc.write))
		})
	}
}

func TestGuardTracksReservations(t *testing.T) {
	r := NewRing(16)
	require.Equal(t, int32(0), r.guard.Load())
	r.Enqueue([]byte("AB"))
	// Enqueue must always restore the guard to zero.
	require.Equal(t, int32(0), r.guard.Load())
	r.Enqueue(make([]byte, 64)) // miss path
	require.Equal(t, int32(0), r.guard.Load())
}

func TestNewRingRejectsTinyCapacity(t *testing.T) {
	require.Panics(t, func() { NewRing(1) })
}
