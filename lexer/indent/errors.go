package indent

import (
	"github.com/ava12/parselet"
	"github.com/ava12/parselet/lexer"
)

// Error codes used by layout layer:
const (
	// InvalidIndentError indicates that a line indentation matches no enclosing level
	// or a line starts with a non-space trivia token followed by a significant token.
	InvalidIndentError = parselet.LayerErrors + iota

	// UnknownTokenError indicates that configuration refers to a token not defined in grammar.
	UnknownTokenError

	// MissingTokenError indicates that indent or dedent token is not configured.
	MissingTokenError
)

func invalidIndentError(tok *lexer.Token) *parselet.Error {
	return parselet.FormatErrorPos(tok, InvalidIndentError, "invalid indentation before %s token", tok.TypeName())
}

func unknownTokenError(name string) *parselet.Error {
	return parselet.FormatError(UnknownTokenError, "unknown token %q in layout configuration", name)
}

func missingTokenError(what string) *parselet.Error {
	return parselet.FormatError(MissingTokenError, "%s token is not configured", what)
}
