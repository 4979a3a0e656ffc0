package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/ava12/parselet/combinator"
	"github.com/ava12/parselet/symbol"
)

func baseGrammar(t *testing.T) *Grammar {
	b := NewBuilder()
	space := token(t, b, "space", `\s+`)
	name := token(t, b, "name", `[a-z]+`)
	open, _ := b.AddLiteralToken("(")
	closing, _ := b.AddLiteralToken(")")
	_, e := b.AddLiteralToken("+")
	require.NoError(t, e)
	require.NoError(t, b.AddTrivia(space))
	require.NoError(t, b.AddBrackets(open, closing))

	expr := newParselet(t, b, "expr", symbol.Pratt)
	x := c.Parselet(expr)
	production(t, b, expr, c.Token(name), 0)
	production(t, b, expr, c.Sequence(c.Implicit("("), x, c.Implicit(")")), 0)
	production(t, b, expr, c.Sequence(x, c.Implicit("+"), x), 10)

	g, e := b.Build()
	require.NoError(t, e)
	return g
}

func patternSources(b *Builder) []string {
	res := make([]string, len(b.patterns))
	for i, p := range b.patterns {
		res[i] = p.Source()
	}
	return res
}

func TestExtend(t *testing.T) {
	base := baseGrammar(t)
	b := NewBuilder()
	token(t, b, "num", `\d+`)
	token(t, b, "name", `[a-z]+`, `_\w*`)
	_, e := b.AddLiteralToken("*")
	require.NoError(t, e)
	expr := newParselet(t, b, "expr", symbol.Pratt)
	x := c.Parselet(expr)
	production(t, b, expr, c.Implicit("1"), 0)
	production(t, b, expr, c.Sequence(x, c.Implicit("*"), x), 20)

	require.NoError(t, b.Extend(base))
	require.NoError(t, b.Extend(base))

	assert.Equal(t, []string{`\d+`, `[a-z]+`, `_\w*`, `\*`, `\s+`, `\(`, `\)`, `\+`}, patternSources(b))
	require.Len(t, b.productions, 5)
	for i, p := range b.productions {
		assert.Equal(t, ProductionID(i), p.ID())
		assert.Equal(t, expr, p.Parselet())
	}
	assert.Equal(t, "expr := expr '+' expr @10", b.productions[4].String())
	assert.Equal(t, Infix, b.productions[4].Role())

	g, e := b.Build()
	require.NoError(t, e)

	space, found := g.Token("space")
	require.True(t, found)
	assert.True(t, g.IsTrivia(space))
	open, _ := g.Token("(")
	closing, _ := g.Token(")")
	id, found := g.ClosingBracket(open)
	assert.True(t, found)
	assert.Equal(t, closing, id)

	name, _ := g.Token("name")
	prefixes := g.Table(expr).Prefixes()
	require.Len(t, prefixes, 3)
	assert.Equal(t, name, prefixes[1].Items()[0].(*c.TokenExpr).ID())
	assert.True(t, g.OwnsToken(name))
	assert.Len(t, g.Table(expr).Suffixes(), 2)
}

func TestExtendParseletKind(t *testing.T) {
	base := baseGrammar(t)
	b := NewBuilder()
	token(t, b, "name", `\w+`)
	newParselet(t, b, "expr", symbol.Sequence)

	e := b.Extend(base)
	expectCode(t, DuplicateNameError, e)
	assert.Contains(t, e.Error(), "expr")

	_, found := b.Token("space")
	assert.False(t, found)
	assert.Len(t, b.patterns, 1)
	assert.Empty(t, b.productions)
}

func TestExtendFrozen(t *testing.T) {
	base := baseGrammar(t)
	b := NewBuilder()
	s := newParselet(t, b, "s", symbol.Sequence)
	token(t, b, "name", `\w+`)
	production(t, b, s, c.Implicit("x"), 0)
	_, e := b.Build()
	require.NoError(t, e)

	expectCode(t, GrammarFrozenError, b.Extend(base))
}
