package docerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrInvalidModifier indicates the modifier spec itself is malformed.
	ErrInvalidModifier = errors.New("invalid modifier")

	// ErrInvalidPath indicates a keypath could not be split or traversed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrSetProperty indicates a traversal failed because a property could not
	// be set on a non-container value. Upsert callers special-case it.
	ErrSetProperty = errors.New("cannot set property")

	// ErrInvalidFieldName indicates a field name uses restricted characters.
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrTypeMismatch indicates an operator met a value of the wrong kind.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrOperatorShape indicates an operator argument has an invalid shape.
	ErrOperatorShape = errors.New("invalid operator argument")

	// ErrUnsupportedOperator indicates an operator outside the supported table.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrCannotCompare indicates two values have no defined ordering.
	ErrCannotCompare = errors.New("cannot compare")
)

// Kind classifies an error into one of the failure categories.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors outside this package.
	KindUnknown Kind = iota
	// KindInvalidModifier covers non-document specs, mixed keys and bad operands.
	KindInvalidModifier
	// KindInvalidPath covers empty segments, positional misuse and bad traversal.
	KindInvalidPath
	// KindInvalidFieldName covers restricted characters in field names.
	KindInvalidFieldName
	// KindTypeMismatch covers wrong runtime kinds for an operator.
	KindTypeMismatch
	// KindOperatorShape covers invalid argument combinations.
	KindOperatorShape
	// KindUnsupportedOperator covers $bit and unknown operators.
	KindUnsupportedOperator
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidModifier:
		return "InvalidModifierSpec"
	case KindInvalidPath:
		return "InvalidPath"
	case KindInvalidFieldName:
		return "InvalidFieldName"
	case KindTypeMismatch:
		return "OperatorTypeMismatch"
	case KindOperatorShape:
		return "OperatorArityOrShape"
	case KindUnsupportedOperator:
		return "UnsupportedOperator"
	default:
		return "Unknown"
	}
}

// KindOf reports the category of err, unwrapping as needed.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrUnsupportedOperator):
		return KindUnsupportedOperator
	case errors.Is(err, ErrInvalidModifier):
		return KindInvalidModifier
	case errors.Is(err, ErrInvalidPath):
		return KindInvalidPath
	case errors.Is(err, ErrInvalidFieldName):
		return KindInvalidFieldName
	case errors.Is(err, ErrTypeMismatch), errors.Is(err, ErrCannotCompare):
		return KindTypeMismatch
	case errors.Is(err, ErrOperatorShape):
		return KindOperatorShape
	}
	return KindUnknown
}

func forField(msg, field string) string {
	if field != "" {
		msg += fmt.Sprintf(" for field '%s'", field)
	}
	return msg
}

// ModifierError represents a malformed modifier spec.
type ModifierError struct {
	// Operator is the offending top-level key, if any
	Operator string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *ModifierError) Error() string {
	msg := "invalid modifier"
	if e.Operator != "" {
		msg += " " + e.Operator
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ModifierError) Is(target error) bool {
	return target == ErrInvalidModifier
}

// PathError represents a keypath that could not be split or traversed.
type PathError struct {
	// Path is the full dotted keypath
	Path string
	// Segment is the segment being processed when the failure occurred
	Segment string
	// Message describes the failure
	Message string
	// SetProperty is true when the failure is a "could not set property"
	// traversal through a non-container value
	SetProperty bool
}

// Error returns a human-readable error message.
func (e *PathError) Error() string {
	msg := "invalid path"
	if e.Path != "" {
		msg += fmt.Sprintf(" '%s'", e.Path)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
// Matches ErrInvalidPath, and ErrSetProperty when SetProperty is set.
func (e *PathError) Is(target error) bool {
	if target == ErrInvalidPath {
		return true
	}
	return target == ErrSetProperty && e.SetProperty
}

// FieldNameError represents a field name that uses restricted characters.
type FieldNameError struct {
	// Field is the rejected field name
	Field string
	// Reason completes "must not ...", e.g. "start with '$'"
	Reason string
}

// Error returns a human-readable error message.
func (e *FieldNameError) Error() string {
	return fmt.Sprintf("key %s must not %s", e.Field, e.Reason)
}

// Is reports whether target matches this error type.
func (e *FieldNameError) Is(target error) bool {
	return target == ErrInvalidFieldName
}

// TypeMismatchError represents an operator applied to a value of the wrong kind.
type TypeMismatchError struct {
	// Operator is the update operator, e.g. "$inc"
	Operator string
	// Field is the field being modified
	Field string
	// Message describes the mismatch
	Message string
}

// Error returns a human-readable error message.
func (e *TypeMismatchError) Error() string {
	return forField(e.Message, e.Field)
}

// Is reports whether target matches this error type.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ShapeError represents an operator argument with an invalid shape or
// combination of sub-options.
type ShapeError struct {
	// Operator is the update operator, e.g. "$push"
	Operator string
	// Field is the field being modified
	Field string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *ShapeError) Error() string {
	return forField(e.Message, e.Field)
}

// Is reports whether target matches this error type.
func (e *ShapeError) Is(target error) bool {
	return target == ErrOperatorShape
}

// UnsupportedOperatorError represents an operator that the engine does not
// implement, either deliberately ($bit) or because it is unknown.
type UnsupportedOperatorError struct {
	// Operator is the rejected operator token
	Operator string
	// Field is the field being modified, if the operator got that far
	Field string
	// Unknown is true when the operator is not in the operator table at all
	Unknown bool
}

// Error returns a human-readable error message.
func (e *UnsupportedOperatorError) Error() string {
	if e.Unknown {
		return "invalid modifier specified " + e.Operator
	}
	return forField(e.Operator+" is not supported", e.Field)
}

// Is reports whether target matches this error type.
// Unknown operators also match ErrInvalidModifier.
func (e *UnsupportedOperatorError) Is(target error) bool {
	if target == ErrUnsupportedOperator {
		return true
	}
	return target == ErrInvalidModifier && e.Unknown
}

// CompareError represents an attempt to order values that have no ordering.
type CompareError struct {
	// Left is the type name of the left operand
	Left string
	// Right is the type name of the right operand
	Right string
	// Message describes the failure
	Message string
}

// Error returns a human-readable error message.
func (e *CompareError) Error() string {
	msg := "cannot compare"
	if e.Left != "" && e.Right != "" {
		msg += fmt.Sprintf(" %s with %s", e.Left, e.Right)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *CompareError) Is(target error) bool {
	return target == ErrCannotCompare
}
