package value

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/erraggy/docmod/docerrors"
)

// Compare orders two values, returning a negative number when a < b, zero
// when they are equal and a positive number when a > b.
//
// Values of different kinds are ordered by [Rank]. [Undefined] sorts below
// everything. Within a kind: numbers compare numerically, strings
// lexicographically, object ids by hex form, dates by instant, documents by
// their interleaved key/value sequence, arrays element by element with the
// shorter array first on a common prefix, binaries by length and then
// bytewise, and false sorts before true. Regular expressions and code have
// no ordering and yield a [docerrors.CompareError].
func Compare(a, b any) (int, error) {
	_, aUndef := a.(UndefinedType)
	_, bUndef := b.(UndefinedType)
	switch {
	case aUndef && bUndef:
		return 0, nil
	case aUndef:
		return -1, nil
	case bUndef:
		return 1, nil
	}

	a, b = canonical(a), canonical(b)
	ta, tb := Classify(a), Classify(b)
	if ra, rb := Rank(ta), Rank(tb); ra != rb {
		return cmp.Compare(ra, rb), nil
	}

	switch ta {
	case TagNull:
		return 0, nil
	case TagNumber:
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		return cmp.Compare(fa, fb), nil
	case TagString:
		return strings.Compare(a.(string), b.(string)), nil
	case TagObjectID:
		return strings.Compare(a.(ObjectID).Hex(), b.(ObjectID).Hex()), nil
	case TagDate:
		return a.(time.Time).Compare(b.(time.Time)), nil
	case TagBoolean:
		return compareBools(a.(bool), b.(bool)), nil
	case TagBinary:
		ba, bb := toBytes(a), toBytes(b)
		if len(ba) != len(bb) {
			return cmp.Compare(len(ba), len(bb)), nil
		}
		return bytes.Compare(ba, bb), nil
	case TagArray:
		return compareSequences(a.(*Array).s, b.(*Array).s)
	case TagObject:
		fa, err := flatten(a)
		if err != nil {
			return 0, err
		}
		fb, err := flatten(b)
		if err != nil {
			return 0, err
		}
		return compareSequences(fa, fb)
	case TagRegex:
		return 0, &docerrors.CompareError{Left: ta.String(), Right: tb.String(), Message: "sorting not supported on regular expression"}
	case TagCode:
		return 0, &docerrors.CompareError{Left: ta.String(), Right: tb.String(), Message: "sorting not supported on code"}
	}
	return 0, &docerrors.CompareError{Left: ta.String(), Right: tb.String(), Message: "unknown type to sort"}
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}

func compareSequences(a, b []any) (int, error) {
	for i := 0; ; i++ {
		if i == len(a) {
			if i == len(b) {
				return 0, nil
			}
			return -1, nil
		}
		if i == len(b) {
			return 1, nil
		}
		c, err := Compare(a[i], b[i])
		if err != nil || c != 0 {
			return c, err
		}
	}
}

// flatten turns {k1: v1, k2: v2} into [k1, v1, k2, v2].
func flatten(v any) ([]any, error) {
	d, ok := v.(*Document)
	if !ok {
		return nil, &docerrors.CompareError{Left: "object", Right: "object", Message: fmt.Sprintf("no ordering defined for %T", v)}
	}
	out := make([]any, 0, 2*d.Len())
	for k, fv := range d.All() {
		out = append(out, k, fv)
	}
	return out, nil
}

func toBytes(v any) []byte {
	switch b := v.(type) {
	case Binary:
		return b
	case []byte:
		return b
	}
	return nil
}
