package keypath

import "github.com/erraggy/docmod/value"

// Target is the write location a path resolved to.
//
// For a document container, Field names the field. For an array container,
// Index is the element position and Field its decimal form.
type Target struct {
	State     State
	Container any
	Field     string
	Index     int
}

// IsArray reports whether the container is an array.
func (t *Target) IsArray() bool {
	_, ok := t.Container.(*value.Array)
	return ok
}

// Document returns the container as a document, or nil.
func (t *Target) Document() *value.Document {
	d, _ := t.Container.(*value.Document)
	return d
}

// Get returns the current value of the field and whether it exists. An
// array slot exists when Index is within bounds.
func (t *Target) Get() (any, bool) {
	switch c := t.Container.(type) {
	case *value.Document:
		return c.Get(t.Field)
	case *value.Array:
		if t.Index >= 0 && t.Index < c.Len() {
			return c.Get(t.Index), true
		}
	}
	return nil, false
}

// Set writes v to the field. Writing past the end of an array fills the gap
// with nulls.
func (t *Target) Set(v any) {
	switch c := t.Container.(type) {
	case *value.Document:
		c.Set(t.Field, v)
	case *value.Array:
		c.Set(t.Index, v)
	}
}

// Delete removes a document field. Array slots are set to null instead so
// the array keeps its length.
func (t *Target) Delete() {
	switch c := t.Container.(type) {
	case *value.Document:
		c.Remove(t.Field)
	case *value.Array:
		if t.Index >= 0 && t.Index < c.Len() {
			c.Set(t.Index, nil)
		}
	}
}
