// Package fieldname validates the names of fields written into documents.
package fieldname

import (
	"strings"

	"github.com/erraggy/docmod/docerrors"
	"github.com/erraggy/docmod/value"
)

// Validate rejects field names that start with '$', contain '.' or contain
// a null byte. When a name breaks more than one rule the first offending
// character wins.
func Validate(key string) error {
	if strings.HasPrefix(key, "$") {
		return &docerrors.FieldNameError{Field: key, Reason: "start with '$'"}
	}
	i := strings.IndexAny(key, ".\x00")
	if i < 0 {
		return nil
	}
	if key[i] == '.' {
		return &docerrors.FieldNameError{Field: key, Reason: "contain '.'"}
	}
	return &docerrors.FieldNameError{Field: key, Reason: "contain null bytes"}
}

// ValidateTree validates every field name in v, descending into nested
// documents and arrays.
func ValidateTree(v any) error {
	switch val := v.(type) {
	case *value.Document:
		for k, fv := range val.All() {
			if err := Validate(k); err != nil {
				return err
			}
			if err := ValidateTree(fv); err != nil {
				return err
			}
		}
	case *value.Array:
		for _, e := range val.All() {
			if err := ValidateTree(e); err != nil {
				return err
			}
		}
	}
	return nil
}
