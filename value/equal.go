package value

import (
	"bytes"
	"reflect"
	"regexp"
	"time"
)

// Equal reports whether a and b are structurally equal, ignoring the order
// of document fields. Two NaN values are equal to each other and to
// nothing else.
func Equal(a, b any) bool {
	return equal(a, b, false)
}

// EqualOrdered is like Equal but documents must also list their fields in
// the same order. This is the equality every update operator uses.
func EqualOrdered(a, b any) bool {
	return equal(a, b, true)
}

func equal(a, b any, ordered bool) bool {
	if IsNaN(a) || IsNaN(b) {
		return IsNaN(a) && IsNaN(b)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	a, b = canonical(a), canonical(b)

	if fa, ok := ToFloat(a); ok {
		fb, ok := ToFloat(b)
		return ok && fa == fb
	}

	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case Code:
		y, ok := b.(Code)
		return ok && x == y
	case ObjectID:
		y, ok := b.(ObjectID)
		return ok && x == y
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case Binary, []byte:
		if Classify(b) != TagBinary {
			return false
		}
		return bytes.Equal(toBytes(a), toBytes(b))
	case *Regex:
		y, ok := b.(*Regex)
		return ok && (x == y || *x == *y)
	case *regexp.Regexp:
		y, ok := b.(*regexp.Regexp)
		return ok && x.String() == y.String()
	}

	if e, ok := a.(Equatable); ok {
		return e.Equal(b)
	}
	if e, ok := b.(Equatable); ok {
		return e.Equal(a)
	}

	switch x := a.(type) {
	case *Array:
		y, ok := b.(*Array)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if len(x.s) != len(y.s) {
			return false
		}
		for i := range x.s {
			if !equal(x.s[i], y.s[i], ordered) {
				return false
			}
		}
		return true
	case *Document:
		y, ok := b.(*Document)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if x.Len() != y.Len() {
			return false
		}
		if ordered {
			for i, k := range x.keys {
				if y.keys[i] != k || !equal(x.m[k], y.m[k], ordered) {
					return false
				}
			}
			return true
		}
		for k, v := range x.All() {
			w, ok := y.Get(k)
			if !ok || !equal(v, w, ordered) {
				return false
			}
		}
		return true
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	// Maps with non-string keys and other foreign values may not support ==.
	if !reflect.ValueOf(a).Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}
