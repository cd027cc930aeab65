// Package value defines the recursive data shape that a transformer tree
// reads and writes: the tagged sum Null/Bool/Int/Float/String/Time/List/Map.
package value

import "time"

// ValueKey is the reserved key under which a text node's body value is
// stored when that node also carries decoded attributes. It is part of
// the public shape contract and must never be reassigned.
const ValueKey = "#value"

// A Value is one node of the recursive data tree that flows across the
// transform boundary. It is a closed sum: Null, Bool, Int, Float, String,
// Time, List, or Map. Dispatch on the concrete type with a type switch,
// the way a caller would switch on any other closed Go sum.
type Value interface {
	isValue()
}

// Null is the absence of a value; it never implies absence of the
// surrounding key, only that a key was present with no content.
type Null struct{}

func (Null) isValue() {}

// Bool is a decoded boolean scalar.
type Bool bool

func (Bool) isValue() {}

// Int is a decoded integer scalar.
type Int int64

func (Int) isValue() {}

// Float is a decoded floating point scalar.
type Float float64

func (Float) isValue() {}

// String is a decoded text scalar, also the carrier for bodies the
// schema marked `text`.
type String string

func (String) isValue() {}

// Time is a decoded date/time scalar, produced by any of the three date
// coders (iso-date, iso-zulu-date, rfc822-email-date).
type Time time.Time

func (Time) isValue() {}

// List holds the ordered decoding of a repeating schema element. A
// mandatory repeating element with zero occurrences is an error at
// decode time (see the xsbe package); an empty List is otherwise valid.
type List []Value

func (List) isValue() {}

// Map holds the decoded fields of an element-node, keyed by each
// child's result_name, plus attribute-derived keys and (when a text
// node also carries attributes) the reserved ValueKey entry.
type Map map[string]Value

func (Map) isValue() {}

// IsNull reports whether v is the Null value, or is itself nil.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// Equal reports whether a and b represent the same value tree. Time
// values compare with time.Time.Equal so that differing but equivalent
// time zone representations of the same instant still match; every
// other kind compares structurally.
func Equal(a, b Value) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Time:
		bv, ok := b.(Time)
		return ok && time.Time(av).Equal(time.Time(bv))
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Map:
		bv, ok := b.(Map)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, present := bv[k]
			if !present || !Equal(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
