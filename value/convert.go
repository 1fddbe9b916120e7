package value

import (
	"reflect"

	"github.com/erraggy/docmod/internal/maputil"
)

// FromGo converts plain Go values into the document model. Maps with string
// keys become documents with their fields in sorted key order, and slices
// become arrays; both are converted recursively. Values already in the
// document model and leaf values are returned unchanged.
func FromGo(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *Document, *Array, Binary, ObjectID, *Regex, Code, string, bool:
		return v
	case []byte:
		return Binary(x)
	case map[string]any:
		d := &Document{m: make(map[string]any, len(x)), keys: make([]string, 0, len(x))}
		for _, k := range maputil.SortedKeys(x) {
			d.Set(k, FromGo(x[k]))
		}
		return d
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = FromGo(e)
		}
		return &Array{s: out}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		fields := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = iter.Value().Interface()
		}
		return FromGo(fields)
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = FromGo(rv.Index(i).Interface())
		}
		return &Array{s: out}
	}
	return v
}

// ToGo converts documents and arrays into map[string]any and []any,
// recursively. Field order is lost. Leaf values are returned unchanged.
func ToGo(v any) any {
	switch x := v.(type) {
	case *Document:
		if x == nil {
			return nil
		}
		out := make(map[string]any, x.Len())
		for k, fv := range x.All() {
			out[k] = ToGo(fv)
		}
		return out
	case *Array:
		if x == nil {
			return nil
		}
		out := make([]any, x.Len())
		for i, e := range x.All() {
			out[i] = ToGo(e)
		}
		return out
	}
	return v
}

// canonical normalizes raw Go containers so comparison code only has to
// handle *Document and *Array.
func canonical(v any) any {
	switch v.(type) {
	case nil, *Document, *Array, Binary, []byte, ObjectID, string, bool:
		return v
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return FromGo(v)
	}
	return v
}
