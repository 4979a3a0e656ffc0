// Package parser defines priority-driven (Pratt) parser producing syntax trees.
//
// Each parselet invocation gets a minimum binding power. Pratt parselets try their prefix
// productions in order of descending priority (productions of equal priority are tried
// in registration order), the first matching production creates the left operand.
// Then infix and postfix productions having priority greater than the binding power are tried
// at the current position, each match wraps the left operand into a new node.
// The trailing self reference of a production is parsed with binding power equal to the production
// priority, or priority - 1 for right associative productions.
// Any other parselet reference is parsed with grammar.LowestPriority unless given explicitly.
// Sequence parselets try their productions once, as an ordered choice.
//
// Production bodies are matched greedily: a choice commits to its first matching alternative,
// optional and repeated elements consume as much as they can.
// Results of parselet invocations are memoized for the duration of a single parse call.
//
// If parsing fails the error describes the farthest position reached:
// all tokens expected at that position are listed.
// The whole input must be consumed by the start parselet.
package parser

import (
	"context"

	"go.uber.org/zap"

	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/lexer"
	"github.com/ava12/parselet/lexer/convert"
	"github.com/ava12/parselet/lexer/indent"
	"github.com/ava12/parselet/source"
	"github.com/ava12/parselet/symbol"
	"github.com/ava12/parselet/tree"
)

// Option configures Parser.
type Option func(p *Parser)

// WithLogger sets a logger receiving debug messages for every token fetched and every parselet expanded.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithLayout makes parser pass tokens through indentation layer when parsing source text.
// Has no effect on ParseTokens.
func WithLayout(c indent.Config) Option {
	return func(p *Parser) {
		p.layout = &c
	}
}

// WithConversion makes parser pass tokens through conversion layer when parsing source text.
// Conversion is applied before layout. Has no effect on ParseTokens.
func WithConversion(rules ...convert.Rule) Option {
	return func(p *Parser) {
		p.conversions = append(p.conversions, rules...)
	}
}

// Parser is immutable and may be used by several goroutines simultaneously.
type Parser struct {
	grammar     *grammar.Grammar
	logger      *zap.Logger
	conversions []convert.Rule
	layout      *indent.Config
}

func New(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{grammar: g, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Parse parses text starting with given parselet.
func (p *Parser) Parse(text string, start symbol.ParseletID) (*tree.Node, error) {
	return p.ParseContext(context.Background(), source.New("", text), start)
}

// ParseContext tokenizes and parses source. Cancelling ctx aborts parsing with ctx.Err().
// Returned errors are *parselet.Error (lexical and configuration errors), *SyntaxError or ctx.Err().
func (p *Parser) ParseContext(ctx context.Context, src *source.Source, start symbol.ParseletID) (*tree.Node, error) {
	if !p.grammar.OwnsParselet(start) {
		return nil, unknownStartError(start.Name())
	}

	tokens, e := p.Tokenize(ctx, src)
	if e != nil {
		return nil, e
	}

	return p.parse(ctx, src, tokens, start)
}

// Tokenize splits source into tokens the same way ParseContext does, applying configured layers.
func (p *Parser) Tokenize(ctx context.Context, src *source.Source) ([]*lexer.Token, error) {
	var ts lexer.TokenSource = lexer.New(p.grammar, src, lexer.WithLogger(p.logger))
	var e error
	if len(p.conversions) > 0 {
		if ts, e = convert.New(p.grammar, ts, p.conversions...); e != nil {
			return nil, e
		}
	}
	if p.layout != nil {
		if ts, e = indent.New(p.grammar, ts, *p.layout); e != nil {
			return nil, e
		}
	}
	return lexer.Collect(ctx, ts)
}

// ParseTokens parses a token sequence, e.g. produced by lexer.Tokenize and modified by caller.
// Trivia tokens are attached to the tree but never matched.
func (p *Parser) ParseTokens(ctx context.Context, tokens []*lexer.Token, start symbol.ParseletID) (*tree.Node, error) {
	if !p.grammar.OwnsParselet(start) {
		return nil, unknownStartError(start.Name())
	}

	var src *source.Source
	if len(tokens) > 0 {
		src = tokens[len(tokens)-1].Source()
	}
	return p.parse(ctx, src, tokens, start)
}

func (p *Parser) parse(ctx context.Context, src *source.Source, tokens []*lexer.Token, start symbol.ParseletID) (*tree.Node, error) {
	s := newState(ctx, p, src, tokens)
	root, e := s.run(start)

	name := ""
	if src != nil {
		name = src.Name()
	}
	p.logger.Debug("parse finished",
		zap.String("source", name),
		zap.Int("tokens", len(tokens)),
		zap.Int("memo", len(s.memo)),
		zap.Bool("ok", e == nil),
	)
	return root, e
}

// Parse parses text with a new parser.
func Parse(g *grammar.Grammar, text string, start symbol.ParseletID) (*tree.Node, error) {
	return New(g).Parse(text, start)
}

// ParseContext parses source with a new parser.
func ParseContext(ctx context.Context, g *grammar.Grammar, src *source.Source, start symbol.ParseletID, opts ...Option) (*tree.Node, error) {
	return New(g, opts...).ParseContext(ctx, src, start)
}

// ParseTokens parses tokens with a new parser.
func ParseTokens(ctx context.Context, g *grammar.Grammar, tokens []*lexer.Token, start symbol.ParseletID, opts ...Option) (*tree.Node, error) {
	return New(g, opts...).ParseTokens(ctx, tokens, start)
}
