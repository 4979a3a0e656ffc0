// Package lexer defines tokenizer.
package lexer

import (
	"context"

	"go.uber.org/zap"

	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/source"
)

// Option configures Lexer.
type Option func(l *Lexer)

// WithLogger sets a logger receiving a debug message for every fetched token.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Lexer splits source into tokens using patterns of a grammar.
// At each position every pattern is tried, the longest match wins,
// matches of equal length are resolved in favor of the earliest registered pattern.
// Every byte of source must belong to some token, trivia tokens are returned too.
// Lexer keeps current position and is not safe for concurrent use.
type Lexer struct {
	grammar *grammar.Grammar
	src     *source.Source
	pos     int
	logger  *zap.Logger
}

func New(g *grammar.Grammar, src *source.Source, opts ...Option) *Lexer {
	l := &Lexer{grammar: g, src: src, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Pos returns byte offset of the next token.
func (l *Lexer) Pos() int {
	return l.pos
}

// Next fetches token starting at current position and advances current position.
// Returns nil token and nil error at the end of source.
// Returns nil token and parselet.Error and does not advance if there is a lexical error.
func (l *Lexer) Next() (*Token, error) {
	content := l.src.Content()
	if l.pos >= len(content) {
		return nil, nil
	}

	var best *grammar.Pattern
	bestLen := -1
	for _, p := range l.grammar.Patterns() {
		n := p.Match(content, l.pos)
		if n > bestLen {
			best = p
			bestLen = n
		}
	}

	if best == nil {
		return nil, wrongCharError(l.src, l.pos)
	}
	if bestLen == 0 {
		return nil, emptyMatchError(l.src, l.pos, best.Source())
	}

	id := best.Token()
	tok := NewToken(id, content[l.pos:l.pos+bestLen], l.pos, l.grammar.IsTrivia(id), l.src)
	l.pos += bestLen

	if ce := l.logger.Check(zap.DebugLevel, "token"); ce != nil {
		ce.Write(zap.String("type", tok.TypeName()), zap.Int("start", tok.Start()), zap.Int("end", tok.End()))
	}
	return tok, nil
}

// Tokenize splits text into tokens.
func Tokenize(g *grammar.Grammar, text string, opts ...Option) ([]*Token, error) {
	return TokenizeContext(context.Background(), g, source.New("", text), opts...)
}

// TokenizeContext splits source into tokens checking ctx before fetching each token.
// Returns no tokens on error.
func TokenizeContext(ctx context.Context, g *grammar.Grammar, src *source.Source, opts ...Option) ([]*Token, error) {
	return Collect(ctx, New(g, src, opts...))
}

// TokenSource is implemented by *Lexer and by token layers wrapping it.
// Next returns nil token and nil error at the end of input.
type TokenSource interface {
	Next() (*Token, error)
}

// Collect fetches all tokens from ts checking ctx before fetching each token.
// Returns no tokens on error.
func Collect(ctx context.Context, ts TokenSource) ([]*Token, error) {
	var res []*Token
	for {
		if e := ctx.Err(); e != nil {
			return nil, e
		}

		tok, e := ts.Next()
		if e != nil {
			return nil, e
		}
		if tok == nil {
			return res, nil
		}

		res = append(res, tok)
	}
}
