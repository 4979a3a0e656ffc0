/*
Package parselet is a runtime-extensible grammar engine: grammars are assembled
from Go values at run time and then used to tokenize and parse source text.

Consists of subpackages:
  - symbol: token and parselet identifiers and the registry that allocates them;
  - combinator: immutable expressions describing production bodies;
  - grammar: grammar builder and the frozen grammar (patterns, trivia, productions);
  - source: source text with line and column lookup;
  - lexer: tokenizer producing a gap-free token sequence including trivia;
  - lexer/indent: layout layer emitting indent/dedent tokens;
  - parser: priority-driven (Pratt) parser producing syntax trees;
  - tree: syntax tree types, traversal, and formatting;
  - notation: textual notation for production bodies;
  - cmd/parselet: console utility tokenizing and parsing files with a grammar described in YAML.

Typical usage is:

1. Create grammar.Builder, register tokens with their patterns, mark trivia tokens.

2. Register parselets and add productions built from combinators (or parsed from notation),
each with a priority.

3. Build the grammar. A built grammar is read-only and may be shared between goroutines.

4. Call parser.Parse (or lexer.Tokenize) for each source text.
*/
package parselet

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors  = 1   // used by grammar
	LexicalErrors  = 101 // used by lexer
	SyntaxErrors   = 201 // used by parser
	ParserErrors   = 301 // used by parser
	LayerErrors    = 401 // used by token layers
	NotationErrors = 501 // used by notation
)

// Error is the error type used by parselet subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int

	// Offset contains absolute byte offset in source file or -1 if error is not bound to a position.
	Offset int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
	// Offset returns absolute byte offset.
	Offset() int
}

// NewError creates new Error structure.
// line and col will be added to error message if provided (non-zero), name is added if not empty.
func NewError(code int, msg, name string, line, col, offset int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col, offset}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0, -1)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col(), pos.Offset())
}

// ErrorCode returns the code of *Error found in e's chain or 0.
func ErrorCode(e error) int {
	var pe *Error
	if errors.As(e, &pe) {
		return pe.Code
	}
	return 0
}
