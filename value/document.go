package value

import (
	"fmt"
	"iter"
	"slices"
)

// Document is an ordered mapping from field names to values.
//
// Field order is insertion order: Set on a new key appends it, Set on an
// existing key replaces the value in place. The zero value is not usable;
// create documents with [NewDocument] or [D].
type Document struct {
	m    map[string]any
	keys []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{m: make(map[string]any)}
}

// D builds a document from alternating key/value pairs:
//
//	value.D("name", "widget", "tags", value.A("a", "b"))
//
// It panics if pairs has odd length or a key is not a string. It is meant
// for literals in code and tests; use [FromGo] for dynamic input.
func D(pairs ...any) *Document {
	if len(pairs)%2 != 0 {
		panic("value.D: odd number of arguments")
	}
	d := &Document{m: make(map[string]any, len(pairs)/2), keys: make([]string, 0, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("value.D: key at position %d is %T, not string", i, pairs[i]))
		}
		d.Set(k, pairs[i+1])
	}
	return d
}

// Len returns the number of fields. A nil document has no fields.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the field names in order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.keys)
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.m[key]
	return v, ok
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Set stores v under key, appending key if it is new.
func (d *Document) Set(key string, v any) {
	if d.m == nil {
		d.m = make(map[string]any)
	}
	if _, ok := d.m[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.m[key] = v
}

// Remove deletes key and returns the removed value.
func (d *Document) Remove(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.m[key]
	if !ok {
		return nil, false
	}
	delete(d.m, key)
	if i := slices.Index(d.keys, key); i >= 0 {
		d.keys = slices.Delete(d.keys, i, i+1)
	}
	return v, true
}

// Clear removes every field.
func (d *Document) Clear() {
	clear(d.m)
	d.keys = d.keys[:0]
}

// All iterates over fields in order.
func (d *Document) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			if !yield(k, d.m[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{m: make(map[string]any, len(d.keys)), keys: slices.Clone(d.keys)}
	for _, k := range d.keys {
		out.m[k] = Clone(d.m[k])
	}
	return out
}

// String renders the document as compact extended JSON.
func (d *Document) String() string {
	b, err := d.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<document: %v>", err)
	}
	return string(b)
}
