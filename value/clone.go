package value

import (
	"slices"
	"time"
)

// Clone returns a deep copy of v.
//
// Primitives, dates, regular expressions, code and object ids are immutable
// and returned as-is. Binary data is copied. Documents and arrays are copied
// recursively, and raw map[string]any and []any values are converted into
// documents and arrays on the way. Types implementing [Cloneable] copy
// themselves; anything else is returned as-is.
func Clone(v any) any {
	if v == nil {
		return nil
	}

	switch val := v.(type) {
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val

	case time.Time, *Regex, Code, ObjectID, UndefinedType:
		return val

	case Binary:
		return Binary(slices.Clone([]byte(val)))
	case []byte:
		return Binary(slices.Clone(val))

	case *Array:
		return val.Clone()
	case *Document:
		return val.Clone()
	case []any, map[string]any:
		return Clone(FromGo(val))

	case Cloneable:
		return val.Clone()

	default:
		return val
	}
}
