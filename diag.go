package main

import "fmt"

// SyntaxError reports the first malformed construct the lexer or parser
// encountered. The message names the expected construct.
type SyntaxError struct {
	Message string
	Span    Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error: %s",
		e.Span.Source, e.Span.StartLine, e.Span.StartCol, e.Message)
}

// Semantic error codes. Each code identifies one violated rule and is stable
// across releases so tooling can match on it.
const (
	ErrUndeclared          = "undeclared-identifier"
	ErrRedeclaration       = "redeclaration"
	ErrConstReassignment   = "const-reassignment"
	ErrTypeMismatch        = "type-mismatch"
	ErrNonBooleanCondition = "non-boolean-condition"
	ErrArithmeticType      = "arithmetic-type"
	ErrComparisonType      = "comparison-type"
	ErrLogicalType         = "logical-type"
	ErrBreakOutsideLoop    = "break-outside-loop"
	ErrContinueOutsideLoop = "continue-outside-loop"
	ErrReservedIdentifier  = "reserved-identifier"
	ErrReturnTypeMismatch  = "return-type-mismatch"
	ErrMissingReturn       = "missing-return"
	ErrReturnOutsideFunc   = "return-outside-function"
	ErrDivisionByZero      = "division-by-zero"
	ErrNotCallable         = "not-callable"
	ErrArityMismatch       = "arity-mismatch"
	ErrArgumentType        = "argument-type"
	ErrNotIndexable        = "not-indexable"
	ErrIndexType           = "index-type"
	ErrDictKeyType         = "dict-key-type"
	ErrUnhashableKey       = "unhashable-key"
	ErrNotAStruct          = "not-a-struct"
	ErrUnknownField        = "unknown-field"
	ErrMissingField        = "missing-field"
	ErrDuplicateField      = "duplicate-field"
	ErrUnknownVariant      = "unknown-variant"
	ErrDuplicateVariant    = "duplicate-variant"
	ErrUnknownMethod       = "unknown-method"
	ErrUnknownType         = "unknown-type"
	ErrInvalidIterable     = "invalid-iterable"
	ErrInvalidCast         = "invalid-cast"
	ErrUnknownImport       = "unknown-import"
	ErrNamespaceValue      = "invalid-namespace-use"
	ErrInvalidAssignment   = "invalid-assignment"
	ErrEmptyLiteral        = "empty-literal"
	ErrListElementType     = "list-element-type"
	ErrDictEntryType       = "dict-entry-type"
)

// SemanticError reports the first semantic rule violation found while
// analyzing a program.
type SemanticError struct {
	Code    string
	Message string
	Span    Span
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		e.Span.Source, e.Span.StartLine, e.Span.StartCol, e.Code, e.Message)
}

func syntaxErrorf(span Span, format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Span: span}
}

func semanticErrorf(code string, span Span, format string, args ...any) *SemanticError {
	return &SemanticError{Code: code, Message: fmt.Sprintf(format, args...), Span: span}
}
