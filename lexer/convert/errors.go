package convert

import (
	"strings"

	"github.com/ava12/parselet"
)

// Error codes used by conversion layer, placed after layout layer codes:
const (
	// UnknownTokenError indicates that a rule refers to a token not defined in grammar.
	UnknownTokenError = parselet.LayerErrors + 10 + iota

	// InvalidRuleError indicates a rule without texts.
	InvalidRuleError

	// DuplicateTextError indicates a text converted twice for the same input type.
	DuplicateTextError
)

func unknownTokenError(name string) *parselet.Error {
	return parselet.FormatError(UnknownTokenError, "unknown token %q in conversion rule", name)
}

func invalidRuleError(r Rule, reason string) *parselet.Error {
	return parselet.FormatError(InvalidRuleError, "invalid conversion rule (%s -> %s: %s): %s",
		r.Input, r.Output, strings.Join(r.Texts, " "), reason)
}

func duplicateTextError(text, input string) *parselet.Error {
	if input == "" {
		return parselet.FormatError(DuplicateTextError, "text %q is already converted", text)
	}
	return parselet.FormatError(DuplicateTextError, "text %q of %s tokens is already converted", text, input)
}
