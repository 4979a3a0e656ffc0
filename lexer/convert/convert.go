/*
Package convert contains token layer changing types of tokens having specific texts.

The most common use is turning names into keywords:

	convert.Rule{Input: "name", Texts: []string{"if", "else", "while"}}

A rule without Output converts each text to the token type named as the text,
so the grammar above has "if", "else" and "while" tokens registered without patterns
and productions refer to them by name.
Token text and position are never changed, so the resulting token sequence still covers
the whole source without gaps. Trivia tokens are passed through as is.
Rules with empty Input apply to significant tokens of any type,
rules with specific Input take precedence over them.
*/
package convert

import (
	"context"

	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/lexer"
	"github.com/ava12/parselet/source"
	"github.com/ava12/parselet/symbol"
)

// Rule converts tokens of Input type having one of Texts to tokens of Output type.
// Empty Input means any type, empty Output means the type named as token text.
type Rule struct {
	Input  string
	Output string
	Texts  []string
}

type key struct {
	input symbol.TokenID
	text  string
}

// Layer is a lexer.TokenSource wrapping another one. Layer is not safe for concurrent use.
type Layer struct {
	grammar *grammar.Grammar
	src     lexer.TokenSource
	typed   map[key]symbol.TokenID
	untyped map[string]symbol.TokenID
}

func New(g *grammar.Grammar, src lexer.TokenSource, rules ...Rule) (*Layer, error) {
	l := &Layer{
		grammar: g,
		src:     src,
		typed:   make(map[key]symbol.TokenID),
		untyped: make(map[string]symbol.TokenID),
	}

	for _, r := range rules {
		if e := l.addRule(r); e != nil {
			return nil, e
		}
	}
	return l, nil
}

func (l *Layer) addRule(r Rule) error {
	if len(r.Texts) == 0 {
		return invalidRuleError(r, "no texts to convert")
	}

	var input, output symbol.TokenID
	var found bool
	if r.Input != "" {
		if input, found = l.grammar.Token(r.Input); !found {
			return unknownTokenError(r.Input)
		}
	}
	if r.Output != "" {
		if output, found = l.grammar.Token(r.Output); !found {
			return unknownTokenError(r.Output)
		}
	}

	for _, text := range r.Texts {
		if r.Output == "" {
			if output, found = l.grammar.Token(text); !found {
				return unknownTokenError(text)
			}
		}

		if !input.IsValid() {
			if _, has := l.untyped[text]; has {
				return duplicateTextError(text, "")
			}
			l.untyped[text] = output
			continue
		}

		k := key{input, text}
		if _, has := l.typed[k]; has {
			return duplicateTextError(text, r.Input)
		}
		l.typed[k] = output
	}
	return nil
}

// Next returns the next token or nil at the end of input.
func (l *Layer) Next() (*lexer.Token, error) {
	tok, e := l.src.Next()
	if tok == nil || e != nil || tok.IsTrivia() {
		return tok, e
	}

	output, found := l.typed[key{tok.Type(), tok.Text()}]
	if !found {
		output, found = l.untyped[tok.Text()]
	}
	if !found || output == tok.Type() {
		return tok, nil
	}

	return lexer.NewToken(output, tok.Text(), tok.Start(), l.grammar.IsTrivia(output), tok.Source()), nil
}

// Tokenize splits source into tokens and applies conversion rules.
func Tokenize(ctx context.Context, g *grammar.Grammar, src *source.Source, rules []Rule, opts ...lexer.Option) ([]*lexer.Token, error) {
	l, e := New(g, lexer.New(g, src, opts...), rules...)
	if e != nil {
		return nil, e
	}
	return lexer.Collect(ctx, l)
}
