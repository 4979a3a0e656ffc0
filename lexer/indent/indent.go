/*
Package indent contains layout layer emitting synthesized tokens when source indentation changes
(the off-side rule).

The layer reads tokens from a lexer and passes them through, inserting empty (zero-length)
tokens of the configured types before the first significant (non-trivia) token of each line:

  - NewLine before every line except the first one and once more at the end of input,
    only if NewLine token is configured;
  - Indent when the line is indented deeper than the enclosing level;
  - one Dedent for each enclosing level closed by the line and for each open level at the end of input.

Synthesized token types are usually registered in grammar without patterns.

Indentation is the text of Spaces tokens following the last line break.
An indentation is deeper than the enclosing one only if it starts with the enclosing indentation,
so mixing tabs and spaces inconsistently results in InvalidIndentError.
Lines containing only trivia tokens are ignored. A line starting with a non-space trivia token
(e.g. a comment) followed by a significant token is invalid.
Layout is suspended inside bracket pairs registered with grammar.Builder.AddBrackets.
*/
package indent

import (
	"context"
	"strings"

	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/internal/queue"
	"github.com/ava12/parselet/lexer"
	"github.com/ava12/parselet/source"
	"github.com/ava12/parselet/symbol"
)

// Config contains names of tokens used by layer.
type Config struct {
	// Spaces are types of tokens containing only line breaks and indentation characters.
	Spaces []string
	// Indent and Dedent are required.
	Indent, Dedent string
	// NewLine is optional.
	NewLine string
}

type role byte

const (
	commonRole role = iota
	spaceRole
	asideRole
)

// Layer is a lexer.TokenSource wrapping another one. Layer is not safe for concurrent use.
type Layer struct {
	grammar                 *grammar.Grammar
	src                     lexer.TokenSource
	spaces                  map[symbol.TokenID]bool
	indent, dedent, newLine symbol.TokenID

	pending    *queue.Queue[*lexer.Token]
	levels     []string
	current    string
	lineStart  bool
	asideSeen  bool
	seenCommon bool
	depth      int
	last       *lexer.Token
	done       bool
}

func New(g *grammar.Grammar, src lexer.TokenSource, c Config) (*Layer, error) {
	l := &Layer{
		grammar:   g,
		src:       src,
		spaces:    make(map[symbol.TokenID]bool),
		pending:   queue.New[*lexer.Token](),
		levels:    []string{""},
		lineStart: true,
	}

	lookup := func(name string) (symbol.TokenID, error) {
		id, found := g.Token(name)
		if !found {
			return id, unknownTokenError(name)
		}
		return id, nil
	}

	var e error
	for _, name := range c.Spaces {
		var id symbol.TokenID
		if id, e = lookup(name); e != nil {
			return nil, e
		}
		l.spaces[id] = true
	}

	if c.Indent == "" {
		return nil, missingTokenError("indent")
	}
	if c.Dedent == "" {
		return nil, missingTokenError("dedent")
	}
	if l.indent, e = lookup(c.Indent); e != nil {
		return nil, e
	}
	if l.dedent, e = lookup(c.Dedent); e != nil {
		return nil, e
	}
	if c.NewLine != "" {
		if l.newLine, e = lookup(c.NewLine); e != nil {
			return nil, e
		}
	}

	return l, nil
}

// Next returns the next token or nil at the end of input.
func (l *Layer) Next() (*lexer.Token, error) {
	for l.pending.IsEmpty() {
		if l.done {
			return nil, nil
		}

		tok, e := l.src.Next()
		if e != nil {
			return nil, e
		}

		if tok == nil {
			l.finish()
			l.done = true
		} else if e = l.handle(tok); e != nil {
			return nil, e
		}
	}

	tok, _ := l.pending.First()
	return tok, nil
}

func (l *Layer) role(tok *lexer.Token) role {
	if l.spaces[tok.Type()] {
		return spaceRole
	}
	if tok.IsTrivia() {
		return asideRole
	}
	return commonRole
}

func (l *Layer) handle(tok *lexer.Token) error {
	l.last = tok

	switch l.role(tok) {
	case spaceRole:
		if l.depth > 0 {
			break
		}
		text := tok.Text()
		if i := strings.LastIndexByte(text, '\n'); i >= 0 {
			l.lineStart = true
			l.asideSeen = false
			l.current = text[i+1:]
		} else if l.lineStart {
			l.current += text
		}

	case asideRole:
		if l.depth == 0 && l.lineStart {
			l.asideSeen = true
		}

	default:
		if l.depth == 0 && l.lineStart {
			if e := l.layout(tok); e != nil {
				return e
			}
			l.lineStart = false
		}

		if _, isOpening := l.grammar.ClosingBracket(tok.Type()); isOpening {
			l.depth++
		} else if _, isClosing := l.grammar.OpeningBracket(tok.Type()); isClosing && l.depth > 0 {
			l.depth--
		}
	}

	l.pending.Append(tok)
	return nil
}

func (l *Layer) layout(tok *lexer.Token) error {
	if l.asideSeen {
		return invalidIndentError(tok)
	}

	if l.seenCommon && l.newLine.IsValid() {
		l.pending.Append(synthesize(l.newLine, tok.Start(), tok.Source()))
	}
	l.seenCommon = true

	top := l.levels[len(l.levels)-1]
	switch {
	case l.current == top:

	case len(l.current) > len(top) && strings.HasPrefix(l.current, top):
		l.levels = append(l.levels, l.current)
		l.pending.Append(synthesize(l.indent, tok.Start(), tok.Source()))

	default:
		for len(l.levels) > 1 && len(l.levels[len(l.levels)-1]) > len(l.current) {
			l.levels = l.levels[:len(l.levels)-1]
			l.pending.Append(synthesize(l.dedent, tok.Start(), tok.Source()))
		}
		if l.levels[len(l.levels)-1] != l.current {
			return invalidIndentError(tok)
		}
	}

	return nil
}

func (l *Layer) finish() {
	if l.last == nil {
		return
	}

	end, src := l.last.End(), l.last.Source()
	if l.seenCommon && l.newLine.IsValid() {
		l.pending.Append(synthesize(l.newLine, end, src))
	}
	for len(l.levels) > 1 {
		l.levels = l.levels[:len(l.levels)-1]
		l.pending.Append(synthesize(l.dedent, end, src))
	}
}

func synthesize(id symbol.TokenID, pos int, src *source.Source) *lexer.Token {
	return lexer.NewToken(id, "", pos, false, src)
}

// Tokenize splits source into tokens and applies layout layer.
func Tokenize(ctx context.Context, g *grammar.Grammar, src *source.Source, c Config, opts ...lexer.Option) ([]*lexer.Token, error) {
	l, e := New(g, lexer.New(g, src, opts...), c)
	if e != nil {
		return nil, e
	}
	return lexer.Collect(ctx, l)
}
