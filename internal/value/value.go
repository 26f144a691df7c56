package value

import (
	"math"
	"strconv"
)

type ValueKind int

const (
	NilKind ValueKind = iota
	BoolKind
	NumberKind
	StringKind
)

func (vk ValueKind) String() string {
	switch vk {
	case NilKind:
		return "nil"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	default:
		return "unknown"
	}
}

// Value is both the literal payload carried by tokens and the runtime
// value produced by evaluation. It is always exactly one of Nil, Bool,
// Number or String.
type Value interface {
	Kind() ValueKind
	String() string
	value()
}

type Nil struct{}

type Bool bool

type Number float64

type String string

func (Nil) Kind() ValueKind    { return NilKind }
func (Bool) Kind() ValueKind   { return BoolKind }
func (Number) Kind() ValueKind { return NumberKind }
func (String) Kind() ValueKind { return StringKind }

func (Nil) value()    {}
func (Bool) value()   {}
func (Number) value() {}
func (String) value() {}

func (Nil) String() string { return "nil" }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// String formats the number the shortest way that parses back to the
// same float, never using an exponent.
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (s String) String() string { return string(s) }

// IsTruthy reports whether v counts as true in a condition: nil and false
// are falsy, everything else (including 0 and "") is truthy.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(v)
	}

	return true
}

// Equal compares two values structurally. Values of different kinds are
// never equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	return a == b
}

var (
	_ Value = Nil{}
	_ Value = Bool(false)
	_ Value = Number(0)
	_ Value = String("")
)
