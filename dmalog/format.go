// dmalog/format.go

package dmalog

import (
	"math"
	"strconv"
)

// The formatters are sequential and reentrant: they touch only the slice they
// are given, so they are safe from any context. They append rather than
// allocate; callers bound the total message size after formatting.

// appendValue renders v onto dst and returns the extended slice.
func appendValue(dst []byte, v Value) []byte {
	switch v.kind {
	case KindInt:
		return appendSigned(dst, int64(v.num))
	case KindUint:
		return appendUnsigned(dst, v.num)
	case KindFloat:
		return appendFixed3(dst, math.Float64frombits(v.num))
	case KindStr:
		return append(dst, v.str...)
	case KindChar:
		return append(dst, byte(v.num))
	}
	return dst
}

// appendUnsigned renders v in decimal. Digits are emitted least significant
// first and reversed in place.
func appendUnsigned(dst []byte, v uint64) []byte {
	start := len(dst)
	for {
		dst = append(dst, byte('0'+v%10))
		v /= 10
		if v == 0 {
			break
		}
	}
	for i, j := start, len(dst)-1; i < j; i, j = i+1, j-1 {
		dst[i], dst[j] = dst[j], dst[i]
	}
	return dst
}

// appendSigned renders v in decimal with a leading '-' when negative.
func appendSigned(dst []byte, v int64) []byte {
	if v < 0 {
		dst = append(dst, '-')
		// uint64(-v) is the correct magnitude even for MinInt64.
		return appendUnsigned(dst, uint64(-v))
	}
	return appendUnsigned(dst, uint64(v))
}

// appendFixed3 renders v with exactly three decimal places, rounding half
// away from zero. Magnitudes beyond the uint64 range fall back to strconv.
func appendFixed3(dst []byte, v float64) []byte {
	if math.IsNaN(v) {
		return append(dst, "nan"...)
	}
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	if v >= 1<<63 {
		return strconv.AppendFloat(dst, v, 'f', 3, 64)
	}

	v += 0.0005 // round the third decimal

	intPart := uint64(v)
	frac := v - float64(intPart)

	dst = appendUnsigned(dst, intPart)
	dst = append(dst, '.')
	for i := 0; i < 3; i++ {
		frac *= 10
		d := byte(frac)
		dst = append(dst, '0'+d)
		frac -= float64(d)
	}
	return dst
}
