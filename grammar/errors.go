package grammar

import (
	"strings"

	"github.com/ava12/parselet"
	"github.com/ava12/parselet/symbol"
)

// Error codes used by grammar builder:
const (
	// DuplicateNameError indicates that a token or parselet name is already registered.
	DuplicateNameError = parselet.GrammarErrors + iota
	// InvalidNameError indicates an empty name.
	InvalidNameError
	// UnknownTokenError indicates a token identifier allocated by another grammar.
	UnknownTokenError
	// UnknownParseletError indicates a parselet identifier allocated by another grammar.
	UnknownParseletError
	// InvalidPatternError indicates a malformed regular expression, one matching empty string
	// or one starting with \b, \B or multiline ^.
	InvalidPatternError
	// UnresolvedImplicitError indicates a literal that matches no token pattern.
	UnresolvedImplicitError
	// InvalidProductionError indicates a production body that cannot be used for its parselet.
	InvalidProductionError
	// UndefinedParseletError indicates a parselet having no prefix productions.
	UndefinedParseletError
	// GrammarFrozenError indicates an attempt to modify the builder after the grammar is built.
	GrammarFrozenError
	// LeftRecursionError indicates parselets that may reach themselves without consuming a token.
	LeftRecursionError
)

func duplicateTokenError(name string) *parselet.Error {
	return parselet.FormatError(DuplicateNameError, "token %q already defined", name)
}

func duplicateParseletError(name string) *parselet.Error {
	return parselet.FormatError(DuplicateNameError, "parselet %q already defined", name)
}

func invalidNameError() *parselet.Error {
	return parselet.FormatError(InvalidNameError, "empty name")
}

func unknownTokenError(name string) *parselet.Error {
	return parselet.FormatError(UnknownTokenError, "token %q does not belong to this grammar", name)
}

func unknownParseletError(name string) *parselet.Error {
	return parselet.FormatError(UnknownParseletError, "parselet %q does not belong to this grammar", name)
}

func patternError(pattern string, e error) *parselet.Error {
	return parselet.FormatError(InvalidPatternError, "incorrect pattern /%s/ (%s)", pattern, e.Error())
}

func emptyPatternError(pattern string) *parselet.Error {
	return parselet.FormatError(InvalidPatternError, "pattern /%s/ matches empty string", pattern)
}

func lookbehindPatternError(pattern string) *parselet.Error {
	return parselet.FormatError(InvalidPatternError, "pattern /%s/ starts with an assertion on preceding text", pattern)
}

func unresolvedImplicitError(literals []string) *parselet.Error {
	return parselet.FormatError(UnresolvedImplicitError, "no token patterns match literals: %s", strings.Join(literals, ", "))
}

func productionError(owner, body, reason string) *parselet.Error {
	return parselet.FormatError(InvalidProductionError, "invalid production %s := %s: %s", owner, body, reason)
}

func undefinedParseletError(names []string) *parselet.Error {
	return parselet.FormatError(UndefinedParseletError, "parselets having no prefix productions: %s", strings.Join(names, ", "))
}

func frozenError() *parselet.Error {
	return parselet.FormatError(GrammarFrozenError, "grammar is already built")
}

func leftRecursionError(names []string) *parselet.Error {
	return parselet.FormatError(LeftRecursionError, "indirect left recursion in parselets: %s", strings.Join(names, ", "))
}

func parseletKindError(name string, kind symbol.ParseletKind) *parselet.Error {
	return parselet.FormatError(DuplicateNameError, "parselet %q already defined as %s", name, kind)
}
