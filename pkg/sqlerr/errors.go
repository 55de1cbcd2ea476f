// Package sqlerr defines the diagnostic model shared by the lexer, parser,
// and the library façade. A diagnostic is a value: it carries a stable kind
// tag, a human-readable message, a 1-based source position, and optional
// structured context for programmatic inspection.
package sqlerr

import (
	"errors"
	"fmt"

	"github.com/queryscope/sqlfront/pkg/token"
)

// Kind is the stable tag identifying a class of diagnostic.
type Kind string

// Diagnostic kinds.
const (
	SyntaxError        Kind = "SYNTAX_ERROR"
	LexicalError       Kind = "LEXICAL_ERROR"
	UnexpectedToken    Kind = "UNEXPECTED_TOKEN"
	UnexpectedEnd      Kind = "UNEXPECTED_END"
	UnterminatedString Kind = "UNTERMINATED_STRING"
	InvalidIdentifier  Kind = "INVALID_IDENTIFIER"
	UnsupportedFeature Kind = "UNSUPPORTED_FEATURE"
	InvalidInput       Kind = "INVALID_INPUT"
	EmptyInput         Kind = "EMPTY_INPUT"
	ValidationError    Kind = "VALIDATION_ERROR"
	UnexpectedError    Kind = "UNEXPECTED_ERROR"
)

// Error is a structured SQL diagnostic.
type Error struct {
	Kind    Kind
	Message string
	Line    int // 1-based, 0 when unknown
	Column  int // 1-based, 0 when unknown
	Context map[string]string
}

// Error implements the error interface. The formatted form appends the
// position when it is set.
func (e *Error) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
	}
	return e.Message
}

// As extracts a *Error from err, returning nil if err does not wrap one.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// New creates a diagnostic of the given kind at a position.
func New(kind Kind, msg string, pos token.Position) *Error {
	return &Error{Kind: kind, Message: msg, Line: pos.Line, Column: pos.Column}
}

// Syntax creates a SYNTAX_ERROR diagnostic.
func Syntax(msg string, pos token.Position) *Error {
	return New(SyntaxError, msg, pos)
}

// Lexical creates a LEXICAL_ERROR diagnostic.
func Lexical(msg string, pos token.Position) *Error {
	return New(LexicalError, msg, pos)
}

// Unexpected creates an UNEXPECTED_TOKEN diagnostic with expected/actual
// context.
func Unexpected(expected, actual string, pos token.Position) *Error {
	e := New(UnexpectedToken, fmt.Sprintf("unexpected token %s, expected %s", actual, expected), pos)
	e.Context = map[string]string{"expected": expected, "actual": actual}
	return e
}

// EndOfInput creates an UNEXPECTED_END diagnostic at the last known position.
func EndOfInput(expected string, pos token.Position) *Error {
	e := New(UnexpectedEnd, fmt.Sprintf("unexpected end of input, expected %s", expected), pos)
	e.Context = map[string]string{"expected": expected}
	return e
}

// Unterminated creates an UNTERMINATED_STRING diagnostic at the opening
// quote.
func Unterminated(pos token.Position) *Error {
	return New(UnterminatedString, "unterminated string literal", pos)
}

// Identifier creates an INVALID_IDENTIFIER diagnostic.
func Identifier(msg string, pos token.Position) *Error {
	return New(InvalidIdentifier, msg, pos)
}

// Unsupported creates an UNSUPPORTED_FEATURE diagnostic.
func Unsupported(feature string, pos token.Position) *Error {
	return New(UnsupportedFeature, fmt.Sprintf("%s is not supported", feature), pos)
}

// Input creates an INVALID_INPUT diagnostic without a position.
func Input(msg string) *Error {
	return &Error{Kind: InvalidInput, Message: msg}
}

// Empty creates an EMPTY_INPUT diagnostic. Empty input is reported at 1:1.
func Empty() *Error {
	return &Error{Kind: EmptyInput, Message: "empty SQL input", Line: 1, Column: 1}
}

// Validation creates a VALIDATION_ERROR diagnostic.
func Validation(msg string) *Error {
	return &Error{Kind: ValidationError, Message: msg}
}

// Internal wraps an unexpected failure as an UNEXPECTED_ERROR diagnostic.
func Internal(v any) *Error {
	return &Error{Kind: UnexpectedError, Message: fmt.Sprintf("unexpected error: %v", v)}
}
