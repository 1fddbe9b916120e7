// Package keypath resolves dotted field paths into write targets inside a
// document tree.
//
// A path is a sequence of non-empty segments separated by '.'. A segment is
// a field name, a decimal array index or the positional placeholder '$',
// which takes its index from the caller-supplied array indices:
//
//	a.b.c      nested field
//	tags.0     first element of tags
//	items.$.n  field n of the element the query matched
//
// Resolution creates missing intermediate structure unless asked not to,
// the way mkdir -p creates directories.
package keypath

import (
	"strconv"
	"strings"

	"github.com/erraggy/docmod/docerrors"
	"github.com/erraggy/docmod/internal/fieldname"
	"github.com/erraggy/docmod/value"
)

// Positional is the segment replaced by the next caller-supplied index.
const Positional = "$"

// Split splits a dotted path into segments. Empty paths and empty segments
// are rejected.
func Split(path string) ([]string, error) {
	if path == "" {
		return nil, &docerrors.PathError{Message: "an empty update path is not valid"}
	}
	segments := strings.Split(path, ".")
	for _, s := range segments {
		if s == "" {
			return nil, &docerrors.PathError{Path: path, Message: "contains an empty field name, which is not allowed"}
		}
	}
	return segments, nil
}

// State describes the outcome of a resolution.
type State int

const (
	// Found means the path resolved to a container and a final field. The
	// field itself may or may not exist yet.
	Found State = iota
	// Missing means an intermediate step does not exist and creation was
	// not allowed.
	Missing
	// ArrayHit means traversal reached an array while arrays were forbidden.
	ArrayHit
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Found:
		return "found"
	case Missing:
		return "missing"
	case ArrayHit:
		return "array"
	}
	return "unknown"
}

// Options control a resolution.
type Options struct {
	// NoCreate reports Missing instead of creating intermediate structure
	// or failing on a non-container step.
	NoCreate bool
	// ForbidArray reports ArrayHit as soon as traversal meets an array.
	ForbidArray bool
	// ArrayIndices feeds positional '$' segments, one index per segment,
	// left to right. Every resolution starts again from the first index.
	ArrayIndices []int
	// MaxArrayIndex, when positive, bounds the index a resolution may pad
	// an array out to. Indices of existing elements are always allowed.
	MaxArrayIndex int
}

// Resolve walks segments from root and returns the container of the final
// segment. Intermediate documents and array slots are created as needed
// unless opts.NoCreate is set.
//
// The final field is not created: the caller reads, writes or deletes it
// through the returned [Target].
func Resolve(root *value.Document, segments []string, opts Options) (*Target, error) {
	path := strings.Join(segments, ".")
	queue := opts.ArrayIndices
	usedPositional := false

	var node any = root
	for i, seg := range segments {
		last := i == len(segments)-1

		if !value.IsIndexable(node) {
			if opts.NoCreate {
				return &Target{State: Missing}, nil
			}
			return nil, &docerrors.PathError{
				Path:        path,
				Segment:     seg,
				Message:     "cannot use the part '" + seg + "' to traverse " + describe(node),
				SetProperty: true,
			}
		}

		switch n := node.(type) {
		case *value.Array:
			if opts.ForbidArray {
				return &Target{State: ArrayHit}, nil
			}

			var idx int
			switch {
			case seg == Positional:
				if usedPositional {
					return nil, &docerrors.PathError{Path: path, Segment: seg, Message: "too many positional (i.e. '$') elements"}
				}
				if len(queue) == 0 {
					return nil, &docerrors.PathError{Path: path, Segment: seg, Message: "the positional operator did not find the match needed from the query"}
				}
				idx, queue = queue[0], queue[1:]
				usedPositional = true
				if idx < 0 {
					return nil, &docerrors.PathError{Path: path, Segment: seg, Message: "positional array index " + strconv.Itoa(idx) + " is negative"}
				}
			case isNumeric(seg):
				parsed, err := strconv.Atoi(seg)
				if err != nil {
					return nil, &docerrors.PathError{Path: path, Segment: seg, Message: "array index " + seg + " is out of range"}
				}
				idx = parsed
			default:
				if opts.NoCreate {
					return &Target{State: Missing}, nil
				}
				return nil, &docerrors.PathError{Path: path, Segment: seg, Message: "can't append to array using string field name [" + seg + "]"}
			}

			if opts.NoCreate && idx >= n.Len() {
				return &Target{State: Missing}, nil
			}
			if opts.MaxArrayIndex > 0 && idx > opts.MaxArrayIndex && idx >= n.Len() {
				return nil, &docerrors.PathError{
					Path:    path,
					Segment: seg,
					Message: "array index " + strconv.Itoa(idx) + " exceeds the limit of " + strconv.Itoa(opts.MaxArrayIndex),
				}
			}
			for n.Len() < idx {
				n.Append(nil)
			}

			if last {
				return &Target{State: Found, Container: n, Field: strconv.Itoa(idx), Index: idx}, nil
			}
			if n.Len() == idx {
				n.Append(value.NewDocument())
			} else if isScalar(n.Get(idx)) {
				return nil, &docerrors.PathError{
					Path:    path,
					Segment: segments[i+1],
					Message: "can't modify field '" + segments[i+1] + "' of list value " + describe(n.Get(idx)),
				}
			}
			node = n.Get(idx)

		case *value.Document:
			if err := fieldname.Validate(seg); err != nil {
				return nil, err
			}
			if !n.Has(seg) {
				if opts.NoCreate {
					return &Target{State: Missing}, nil
				}
				if !last {
					n.Set(seg, value.NewDocument())
				}
			}
			if last {
				return &Target{State: Found, Container: n, Field: seg, Index: -1}, nil
			}
			node, _ = n.Get(seg)
		}
	}
	return nil, &docerrors.PathError{Path: path, Message: "no segments"}
}

// Lookup reads the value at a dotted path without creating anything.
// Numeric segments index arrays; '$' is not supported.
func Lookup(root any, path string) (any, bool) {
	node := root
	for _, seg := range strings.Split(path, ".") {
		switch n := node.(type) {
		case *value.Document:
			v, ok := n.Get(seg)
			if !ok {
				return nil, false
			}
			node = v
		case *value.Array:
			if !isNumeric(seg) {
				return nil, false
			}
			idx, err := strconv.Atoi(seg)
			if err != nil || idx >= n.Len() {
				return nil, false
			}
			node = n.Get(idx)
		default:
			return nil, false
		}
	}
	return node, true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isScalar reports whether an array slot holds a value no field can be
// written into.
func isScalar(v any) bool {
	switch value.Classify(v) {
	case value.TagNumber, value.TagString, value.TagBoolean, value.TagCode:
		return true
	}
	return false
}

func describe(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := value.MarshalJSON(v)
	if err != nil {
		return value.Classify(v).String()
	}
	return string(b)
}
