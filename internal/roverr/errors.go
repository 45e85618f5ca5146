// Package roverr defines RoverScript's error taxonomy and formats errors
// with source context, in the style of go-dws's errors.CompilerError: a
// message, the offending source line, and a caret pointing at the
// offending column.
package roverr

import (
	"fmt"
	"strings"

	"github.com/roverscript/roverscript/internal/token"
)

// PositionedError is the common shape every RoverScript error kind embeds:
// a message plus enough source context to render a caret diagnostic.
type PositionedError struct {
	Pos      token.Position
	Message  string
	Source   string // the offending lexeme/line, if any
	FullLine string // the complete source line the error occurred on
}

func (e *PositionedError) Error() string {
	if e.Pos.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Col, e.Message)
}

// Format renders the error with its source line and a caret under the
// offending column, mirroring go-dws's errors.CompilerError.Format.
func (e *PositionedError) Format() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if e.FullLine != "" {
		sb.WriteString("\n")
		sb.WriteString(e.FullLine)
		sb.WriteString("\n")
		col := e.Pos.Col
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", col-1))
		sb.WriteString("^")
	}
	return sb.String()
}

// LexError — unrecognized lexeme, malformed numeric literal, unterminated
// string or block comment.
type LexError struct{ *PositionedError }

// NewLexError constructs a LexError.
func NewLexError(pos token.Position, fullLine, message string) *LexError {
	return &LexError{&PositionedError{Pos: pos, Message: message, FullLine: fullLine}}
}

// ParseError — the current token's kind was not among the predicted set
// for the current production. Carries the offending lexeme and the
// expected kind(s).
type ParseError struct {
	*PositionedError
	Found    string
	Expected []token.Kind
}

// NewParseError constructs a ParseError naming the offending token and the
// terminal(s) that would have been accepted.
func NewParseError(tok token.Token, expected ...token.Kind) *ParseError {
	names := make([]string, len(expected))
	for i, k := range expected {
		names[i] = k.String()
	}
	var msg string
	if len(names) == 1 {
		msg = fmt.Sprintf("expected %s but found %q", names[0], tok.Lexeme)
	} else {
		msg = fmt.Sprintf("expected one of [%s] but found %q", strings.Join(names, ", "), tok.Lexeme)
	}
	if tok.Kind == token.EOF {
		msg = fmt.Sprintf("unexpected end of input, expected %s", strings.Join(names, " or "))
	}
	return &ParseError{
		PositionedError: &PositionedError{Pos: tok.Pos, Message: msg, Source: tok.Lexeme, FullLine: tok.FullLine},
		Found:           tok.Lexeme,
		Expected:        expected,
	}
}

// RedefinedError — the same name was declared twice in one scope.
type RedefinedError struct{ *PositionedError }

// NewRedefinedError constructs a RedefinedError for name.
func NewRedefinedError(pos token.Position, fullLine, name string) *RedefinedError {
	return &RedefinedError{&PositionedError{Pos: pos, Message: fmt.Sprintf("redefined variable %q", name), FullLine: fullLine}}
}

// UndefinedError — a reference to a name not found in any open scope.
type UndefinedError struct{ *PositionedError }

// NewUndefinedError constructs an UndefinedError for name.
func NewUndefinedError(pos token.Position, fullLine, name string) *UndefinedError {
	return &UndefinedError{&PositionedError{Pos: pos, Message: fmt.Sprintf("undefined variable %q", name), FullLine: fullLine}}
}

// TypeMismatchError — an operator, assignment, condition, subscript, or
// print applied to an incompatible type.
type TypeMismatchError struct{ *PositionedError }

// NewTypeMismatchError constructs a TypeMismatchError with a custom message.
func NewTypeMismatchError(pos token.Position, fullLine, message string) *TypeMismatchError {
	return &TypeMismatchError{&PositionedError{Pos: pos, Message: message, FullLine: fullLine}}
}

// InvalidSubscriptError — the subscript count on a Loc exceeds its
// declared array rank.
type InvalidSubscriptError struct{ *PositionedError }

// NewInvalidSubscriptError constructs an InvalidSubscriptError for name.
func NewInvalidSubscriptError(pos token.Position, fullLine, name string) *InvalidSubscriptError {
	return &InvalidSubscriptError{&PositionedError{Pos: pos, Message: fmt.Sprintf("invalid subscript on %q: too many dimensions", name), FullLine: fullLine}}
}

// DivisionByZeroError — runtime division by zero.
type DivisionByZeroError struct{ *PositionedError }

// NewDivisionByZeroError constructs a DivisionByZeroError.
func NewDivisionByZeroError(pos token.Position, fullLine string) *DivisionByZeroError {
	return &DivisionByZeroError{&PositionedError{Pos: pos, Message: "division by zero", FullLine: fullLine}}
}

// IndexOutOfRangeError — an array subscript fell outside its declared
// bound, or was negative.
type IndexOutOfRangeError struct{ *PositionedError }

// NewIndexOutOfRangeError constructs an IndexOutOfRangeError.
func NewIndexOutOfRangeError(pos token.Position, fullLine string, index, size int) *IndexOutOfRangeError {
	return &IndexOutOfRangeError{&PositionedError{
		Pos:      pos,
		Message:  fmt.Sprintf("array index %d out of range [0, %d)", index, size),
		FullLine: fullLine,
	}}
}
