package notation

import (
	"github.com/ava12/parselet"
	"github.com/ava12/parselet/lexer"
)

// Error codes used by notation:
const (
	// UnknownNameError indicates a name that is neither a token nor a parselet.
	UnknownNameError = parselet.NotationErrors + iota
	// TokenPriorityError indicates a binding power given for a token reference.
	TokenPriorityError
	// InvalidLiteralError indicates an empty literal, a malformed escape sequence or an invalid code point.
	InvalidLiteralError
)

func unknownNameError(tok *lexer.Token) *parselet.Error {
	return parselet.FormatErrorPos(tok, UnknownNameError, "unknown token or parselet %q", tok.Text())
}

func tokenPriorityError(tok *lexer.Token) *parselet.Error {
	return parselet.FormatErrorPos(tok, TokenPriorityError, "token %s cannot have binding power", tok.Text())
}

func emptyLiteralError(tok *lexer.Token) *parselet.Error {
	return parselet.FormatErrorPos(tok, InvalidLiteralError, "empty literal")
}

func invalidEscapeError(tok *lexer.Token, seq string) *parselet.Error {
	return parselet.FormatErrorPos(tok, InvalidLiteralError, "invalid escape sequence %q", seq)
}

func invalidRuneError(tok *lexer.Token, code string) *parselet.Error {
	return parselet.FormatErrorPos(tok, InvalidLiteralError, "invalid code point %s", code)
}
