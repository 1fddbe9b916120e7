package fieldname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/docmod/docerrors"
	"github.com/erraggy/docmod/value"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "plain", input: "name"},
		{name: "empty", input: ""},
		{name: "dollar inside", input: "price$"},
		{name: "unicode", input: "größe"},
		{name: "leading dollar", input: "$set", wantErr: "key $set must not start with '$'"},
		{name: "dot", input: "a.b", wantErr: "key a.b must not contain '.'"},
		{name: "null byte", input: "a\x00b", wantErr: "must not contain null bytes"},
		{name: "dollar wins over dot", input: "$a.b", wantErr: "start with '$'"},
		{name: "first offending character", input: "a\x00.b", wantErr: "contain null bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, docerrors.ErrInvalidFieldName)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateTree(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr bool
	}{
		{name: "scalar", input: 1.0},
		{name: "flat", input: value.D("a", 1, "b", "x")},
		{name: "nested ok", input: value.D("a", value.A(value.D("b", 1)))},
		{name: "top level bad", input: value.D("a.b", 1), wantErr: true},
		{name: "nested in array", input: value.D("a", value.A(1, value.D("$x", 1))), wantErr: true},
		{name: "nested in document", input: value.D("a", value.D("b", value.D("c\x00", 1))), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTree(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, docerrors.ErrInvalidFieldName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
