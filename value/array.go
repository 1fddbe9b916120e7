package value

import (
	"fmt"
	"iter"
	"slices"
)

// Array is an ordered sequence of values.
//
// Arrays are reference values: operators that resolve a path into an array
// mutate it in place, and the change is visible through the parent.
type Array struct {
	s []any
}

// NewArray returns an array holding values. The slice is not copied.
func NewArray(values ...any) *Array {
	return &Array{s: values}
}

// A builds an array literal:
//
//	value.A(1, "two", value.D("three", 3))
func A(values ...any) *Array {
	return &Array{s: slices.Clone(values)}
}

// Len returns the number of elements. A nil array is empty.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.s)
}

// Get returns the element at i. It panics if i is out of range.
func (a *Array) Get(i int) any {
	return a.s[i]
}

// Set replaces the element at i. Setting i == Len appends; setting past the
// end fills the gap with nulls first.
func (a *Array) Set(i int, v any) {
	for len(a.s) < i {
		a.s = append(a.s, nil)
	}
	if i == len(a.s) {
		a.s = append(a.s, v)
		return
	}
	a.s[i] = v
}

// Append adds values to the end.
func (a *Array) Append(values ...any) {
	a.s = append(a.s, values...)
}

// Insert inserts values before position pos. A pos beyond the end appends.
func (a *Array) Insert(pos int, values ...any) {
	if pos > len(a.s) {
		pos = len(a.s)
	}
	a.s = slices.Insert(a.s, pos, values...)
}

// RemoveAt deletes the element at i.
func (a *Array) RemoveAt(i int) {
	a.s = slices.Delete(a.s, i, i+1)
}

// Replace swaps the array contents for values.
func (a *Array) Replace(values []any) {
	a.s = values
}

// Values returns a copy of the elements.
func (a *Array) Values() []any {
	if a == nil {
		return nil
	}
	return slices.Clone(a.s)
}

// All iterates over elements in order.
func (a *Array) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		if a == nil {
			return
		}
		for i, v := range a.s {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Sort sorts the array in place with a stable sort. The first comparator
// error stops the sort and is returned; the order is then unspecified.
func (a *Array) Sort(cmp func(x, y any) (int, error)) error {
	var firstErr error
	slices.SortStableFunc(a.s, func(x, y any) int {
		if firstErr != nil {
			return 0
		}
		c, err := cmp(x, y)
		if err != nil {
			firstErr = err
			return 0
		}
		return c
	})
	return firstErr
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	if a == nil {
		return nil
	}
	out := &Array{s: make([]any, len(a.s))}
	for i, v := range a.s {
		out.s[i] = Clone(v)
	}
	return out
}

// String renders the array as compact extended JSON.
func (a *Array) String() string {
	b, err := a.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<array: %v>", err)
	}
	return string(b)
}
