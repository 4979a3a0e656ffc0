package lexer

import (
	"fmt"

	"github.com/ava12/parselet/source"
	"github.com/ava12/parselet/symbol"
)

// EoiTokenName is the type name reported for the end of input.
const EoiTokenName = "-end-of-input-"

// Token is an immutable lexeme: token type, matched text, and its position in source.
type Token struct {
	tokenType symbol.TokenID
	text      string
	start     int
	trivia    bool
	source    *source.Source
}

// NewToken creates a token starting at byte offset start. src may be nil.
func NewToken(tokenType symbol.TokenID, text string, start int, trivia bool, src *source.Source) *Token {
	return &Token{tokenType, text, start, trivia, src}
}

func (t *Token) Type() symbol.TokenID {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.tokenType.Name()
}

func (t *Token) Text() string {
	return t.text
}

// Start returns byte offset of the first token byte.
func (t *Token) Start() int {
	return t.start
}

// End returns byte offset following the last token byte.
func (t *Token) End() int {
	return t.start + len(t.text)
}

// IsTrivia tells whether the token is skipped by parser.
func (t *Token) IsTrivia() bool {
	return t.trivia
}

// IsNode always returns false, tokens are leaves of syntax trees.
func (t *Token) IsNode() bool {
	return false
}

func (t *Token) Source() *source.Source {
	return t.source
}

func (t *Token) SourceName() string {
	if t.source == nil {
		return ""
	} else {
		return t.source.Name()
	}
}

// Offset is the same as Start.
func (t *Token) Offset() int {
	return t.start
}

func (t *Token) Line() int {
	if t.source == nil {
		return 0
	}
	line, _ := t.source.LineCol(t.start)
	return line
}

func (t *Token) Col() int {
	if t.source == nil {
		return 0
	}
	_, col := t.source.LineCol(t.start)
	return col
}

func (t *Token) String() string {
	return fmt.Sprintf("%s %q [%d:%d]", t.TypeName(), t.text, t.start, t.End())
}
