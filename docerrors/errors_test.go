package docerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifierError(t *testing.T) {
	t.Run("Error message with operator", func(t *testing.T) {
		err := &ModifierError{Operator: "$foo", Message: "operand must be an object"}
		assert.Equal(t, "invalid modifier $foo: operand must be an object", err.Error())
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ModifierError{}
		assert.Equal(t, "invalid modifier", err.Error())
	})

	t.Run("Is matches ErrInvalidModifier only", func(t *testing.T) {
		err := &ModifierError{Message: "test"}
		assert.ErrorIs(t, err, ErrInvalidModifier)
		assert.NotErrorIs(t, err, ErrInvalidPath)
	})
}

func TestPathError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &PathError{Path: "a.b.", Message: "contains an empty field name"}
		assert.Equal(t, "invalid path 'a.b.': contains an empty field name", err.Error())
	})

	t.Run("SetProperty flag", func(t *testing.T) {
		plain := &PathError{Path: "a.b"}
		assert.ErrorIs(t, plain, ErrInvalidPath)
		assert.NotErrorIs(t, plain, ErrSetProperty)

		setProp := &PathError{Path: "a.b", SetProperty: true}
		assert.ErrorIs(t, setProp, ErrInvalidPath)
		assert.ErrorIs(t, setProp, ErrSetProperty)
	})

	t.Run("As extracts PathError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &PathError{Path: "x.$", Segment: "$"})
		var pathErr *PathError
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, "x.$", pathErr.Path)
		assert.Equal(t, "$", pathErr.Segment)
	})
}

func TestFieldNameError(t *testing.T) {
	err := &FieldNameError{Field: "$bad", Reason: "start with '$'"}
	assert.Equal(t, "key $bad must not start with '$'", err.Error())
	assert.ErrorIs(t, err, ErrInvalidFieldName)
}

func TestOperatorErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		sentinel error
		kind     Kind
	}{
		{
			name:     "type mismatch with field",
			err:      &TypeMismatchError{Operator: "$inc", Field: "count", Message: "Cannot apply $inc modifier to non-number"},
			message:  "Cannot apply $inc modifier to non-number for field 'count'",
			sentinel: ErrTypeMismatch,
			kind:     KindTypeMismatch,
		},
		{
			name:     "shape without field",
			err:      &ShapeError{Operator: "$pushAll", Message: "Modifier $pushAll/pullAll allowed for arrays only"},
			message:  "Modifier $pushAll/pullAll allowed for arrays only",
			sentinel: ErrOperatorShape,
			kind:     KindOperatorShape,
		},
		{
			name:     "bit is unsupported",
			err:      &UnsupportedOperatorError{Operator: "$bit", Field: "flags"},
			message:  "$bit is not supported for field 'flags'",
			sentinel: ErrUnsupportedOperator,
			kind:     KindUnsupportedOperator,
		},
		{
			name:     "unknown operator",
			err:      &UnsupportedOperatorError{Operator: "$frob", Unknown: true},
			message:  "invalid modifier specified $frob",
			sentinel: ErrInvalidModifier,
			kind:     KindUnsupportedOperator,
		},
		{
			name:     "compare error",
			err:      &CompareError{Left: "regex", Right: "regex", Message: "sorting not supported on regular expression"},
			message:  "cannot compare regex with regex: sorting not supported on regular expression",
			sentinel: ErrCannotCompare,
			kind:     KindTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.kind, KindOf(fmt.Errorf("modifier: %w", tt.err)))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindInvalidPath, KindOf(&PathError{SetProperty: true}))
	assert.Equal(t, KindInvalidFieldName, KindOf(&FieldNameError{}))
	assert.Equal(t, KindInvalidModifier, KindOf(&ModifierError{}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "InvalidModifierSpec", KindInvalidModifier.String())
	assert.Equal(t, "InvalidPath", KindInvalidPath.String())
	assert.Equal(t, "InvalidFieldName", KindInvalidFieldName.String())
	assert.Equal(t, "OperatorTypeMismatch", KindTypeMismatch.String())
	assert.Equal(t, "OperatorArityOrShape", KindOperatorShape.String())
	assert.Equal(t, "UnsupportedOperator", KindUnsupportedOperator.String())
	assert.Equal(t, "Unknown", KindUnknown.String())
}
