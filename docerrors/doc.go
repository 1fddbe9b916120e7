// Package docerrors provides structured error types for the docmod library.
//
// Import path: github.com/erraggy/docmod/docerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between the failure categories of a modify call.
//
// # Error Types
//
//   - [ModifierError]: the modifier spec is not a document, mixes operator and
//     plain keys, or carries an operand that is not a document
//   - [PathError]: empty segments, positional '$' misuse, forbidden array
//     traversal, traversal through a non-container value
//   - [FieldNameError]: field names containing '.', a leading '$' or a null byte
//   - [TypeMismatchError]: wrong runtime kind for an operator, its argument or
//     the existing field
//   - [ShapeError]: invalid argument shapes ($rename onto itself, bad
//     $position/$slice/$sort combinations, non-array $pushAll/$pullAll)
//   - [UnsupportedOperatorError]: $bit and operators outside the table
//   - [CompareError]: ordering a regular expression or code value
//
// # Sentinel Errors
//
//   - [ErrInvalidModifier]: Matches [ModifierError] and unknown operators
//   - [ErrInvalidPath]: Matches any [PathError]
//   - [ErrSetProperty]: Matches [PathError] with SetProperty=true
//   - [ErrInvalidFieldName]: Matches any [FieldNameError]
//   - [ErrTypeMismatch]: Matches any [TypeMismatchError]
//   - [ErrOperatorShape]: Matches any [ShapeError]
//   - [ErrUnsupportedOperator]: Matches any [UnsupportedOperatorError]
//   - [ErrCannotCompare]: Matches any [CompareError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	doc, err := m.Modify(doc, spec)
//	if errors.Is(err, docerrors.ErrSetProperty) {
//	    // path creation failed; an upsert caller may retry differently
//	}
//
// Or get the category as a [Kind]:
//
//	switch docerrors.KindOf(err) {
//	case docerrors.KindInvalidFieldName:
//	    // reject the client payload
//	}
//
// Extract details with errors.As():
//
//	var pathErr *docerrors.PathError
//	if errors.As(err, &pathErr) {
//	    fmt.Printf("bad path %s at segment %q\n", pathErr.Path, pathErr.Segment)
//	}
package docerrors
