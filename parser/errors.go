package parser

import (
	"strings"

	"github.com/ava12/parselet"
	"github.com/ava12/parselet/lexer"
)

// Error codes used by parser:
const (
	// UnexpectedTokenError indicates that the token at the farthest failure position
	// cannot be accepted by any parselet.
	UnexpectedTokenError = parselet.SyntaxErrors + iota

	// UnexpectedEoiError indicates that the input ended while more tokens were expected.
	UnexpectedEoiError
)

const (
	// UnknownStartError indicates that the start parselet is not defined in the grammar.
	UnknownStartError = parselet.ParserErrors + iota
)

// SyntaxError describes the farthest position where parsing failed.
// Use errors.As to get the underlying *parselet.Error.
type SyntaxError struct {
	Err *parselet.Error
	// Expected contains names of tokens acceptable at the failure position, in order of discovery:
	// token names for tokens and quoted literals for implicit tokens.
	Expected []string
	// Found is the type name of the token at the failure position or lexer.EoiTokenName.
	Found string
	// FoundText is the text of that token, empty at the end of input.
	FoundText string
	// Stack contains names of parselets being expanded when the failure was recorded, outermost first.
	Stack []string
}

func (e *SyntaxError) Error() string {
	return e.Err.Message
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Offset returns byte offset of the failure position.
func (e *SyntaxError) Offset() int {
	return e.Err.Offset
}

func describeExpected(expected []string) string {
	if len(expected) == 0 {
		return "nothing"
	}
	return strings.Join(expected, " or ")
}

func unexpectedTokenError(tok *lexer.Token, expected, stack []string) *SyntaxError {
	return &SyntaxError{
		Err: parselet.FormatErrorPos(tok, UnexpectedTokenError, "unexpected %s %q, expecting %s",
			tok.TypeName(), tok.Text(), describeExpected(expected)),
		Expected:  expected,
		Found:     tok.TypeName(),
		FoundText: tok.Text(),
		Stack:     stack,
	}
}

func unexpectedEoiError(pos parselet.SourcePos, expected, stack []string) *SyntaxError {
	return &SyntaxError{
		Err:      parselet.FormatErrorPos(pos, UnexpectedEoiError, "unexpected end of input, expecting %s", describeExpected(expected)),
		Expected: expected,
		Found:    lexer.EoiTokenName,
		Stack:    stack,
	}
}

func unknownStartError(name string) *parselet.Error {
	return parselet.FormatError(UnknownStartError, "start parselet %q is not defined in grammar", name)
}
