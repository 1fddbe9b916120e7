package value

import (
	"encoding/hex"
	"fmt"
	"math"
)

// Binary is an opaque byte sequence.
type Binary []byte

// ObjectIDLen is the length of an ObjectID in bytes.
const ObjectIDLen = 12

// ObjectID is an opaque object reference. Its canonical form is the
// lower-case hex encoding, which is also what ordering compares.
type ObjectID [ObjectIDLen]byte

// Hex returns the canonical hex form.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

// String implements fmt.Stringer.
func (id ObjectID) String() string {
	return fmt.Sprintf("ObjectID(%q)", id.Hex())
}

// ObjectIDFromHex parses the canonical hex form.
func ObjectIDFromHex(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) != 2*ObjectIDLen {
		return id, fmt.Errorf("value: invalid ObjectID %q: want %d hex characters", s, 2*ObjectIDLen)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("value: invalid ObjectID %q: %w", s, err)
	}
	return id, nil
}

// Regex is a regular expression. It is treated as immutable: cloning returns
// the same pointer, and it has no ordering.
type Regex struct {
	Pattern string
	Options string
}

// Code is JavaScript code. It can be stored and compared for equality but
// not ordered.
type Code string

// UndefinedType is the type of [Undefined].
type UndefinedType struct{}

// Undefined stands for an absent value in comparisons. It sorts below every
// other value, including null. It is never stored in a document.
var Undefined UndefinedType

// Equatable is implemented by leaf types that define their own equality.
// Equal and EqualOrdered defer to it before falling back to structure.
type Equatable interface {
	Equal(other any) bool
}

// Cloneable is implemented by leaf types that define their own deep copy.
// Clone defers to it for types it does not know.
type Cloneable interface {
	Clone() any
}

// ToFloat returns v as a float64 if it is any Go numeric type.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// IsNumber reports whether v is a number.
func IsNumber(v any) bool {
	_, ok := ToFloat(v)
	return ok
}

// IsNaN reports whether v is a floating point NaN.
func IsNaN(v any) bool {
	switch n := v.(type) {
	case float64:
		return math.IsNaN(n)
	case float32:
		return math.IsNaN(float64(n))
	}
	return false
}

// AddNumbers returns a+b. Operands of the same integer type keep that type;
// everything else is added as float64.
func AddNumbers(a, b any) (any, bool) {
	switch x := a.(type) {
	case int:
		if y, ok := b.(int); ok {
			return x + y, true
		}
	case int32:
		if y, ok := b.(int32); ok {
			return x + y, true
		}
	case int64:
		if y, ok := b.(int64); ok {
			return x + y, true
		}
	}
	fa, ok := ToFloat(a)
	if !ok {
		return nil, false
	}
	fb, ok := ToFloat(b)
	if !ok {
		return nil, false
	}
	return fa + fb, true
}
