// dmalog/value.go

package dmalog

import "math"

// Kind enumerates the value kinds the formatter can render.
type Kind uint8

const (
	// KindInt is a signed integer, rendered in decimal.
	KindInt Kind = iota
	// KindUint is an unsigned integer, rendered in decimal.
	KindUint
	// KindFloat is a floating-point number, rendered with three decimals.
	KindFloat
	// KindStr is a text fragment, copied as-is.
	KindStr
	// KindChar is a single byte.
	KindChar
)

// Value is one typed argument of a log call. Construct with Int, Uint, Float,
// Str or Char; the zero Value renders as the integer 0.
type Value struct {
	kind Kind
	num  uint64
	str  string
}

// Int wraps a signed integer.
func Int(v int64) Value { return Value{kind: KindInt, num: uint64(v)} }

// Uint wraps an unsigned integer.
func Uint(v uint64) Value { return Value{kind: KindUint, num: v} }

// Float wraps a floating-point number.
func Float(v float64) Value { return Value{kind: KindFloat, num: math.Float64bits(v)} }

// Str wraps a text fragment.
func Str(s string) Value { return Value{kind: KindStr, str: s} }

// Char wraps a single byte.
func Char(c byte) Value { return Value{kind: KindChar, num: uint64(c)} }

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }
