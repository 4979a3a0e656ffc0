package lexer

import (
	"unicode/utf8"

	"github.com/ava12/parselet"
	"github.com/ava12/parselet/source"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = parselet.LexicalErrors + iota

	// EmptyMatchError indicates that the longest match at current position is empty.
	EmptyMatchError
)

func wrongCharError(s *source.Source, pos int) *parselet.Error {
	r, _ := utf8.DecodeRuneInString(s.Content()[pos:])
	return parselet.FormatErrorPos(source.NewPos(s, pos), WrongCharError, "wrong char %q (u+%x)", r, r)
}

func emptyMatchError(s *source.Source, pos int, pattern string) *parselet.Error {
	return parselet.FormatErrorPos(source.NewPos(s, pos), EmptyMatchError, "pattern /%s/ matched empty string", pattern)
}
