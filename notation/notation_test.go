package notation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/parselet/combinator"
	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/internal/test"
	"github.com/ava12/parselet/lexer"
	"github.com/ava12/parselet/notation"
	"github.com/ava12/parselet/parser"
	"github.com/ava12/parselet/symbol"
)

func newBuilder(t *testing.T) (*grammar.Builder, symbol.TokenID, symbol.ParseletID) {
	b := grammar.NewBuilder()
	name, e := b.AddToken("Name")
	require.NoError(t, e)
	_, e = b.AddPattern(name, `[A-Za-z]\w*`)
	require.NoError(t, e)
	expr, e := b.AddParselet("expr", symbol.Pratt)
	require.NoError(t, e)
	_, e = b.AddParselet("args", symbol.Sequence)
	require.NoError(t, e)
	return b, name, expr
}

func TestElements(t *testing.T) {
	b, name, expr := newBuilder(t)

	x, e := notation.Parse(b, "Name")
	require.NoError(t, e)
	assert.Equal(t, combinator.Token(name), x)

	x, e = notation.Parse(b, "expr")
	require.NoError(t, e)
	assert.Equal(t, combinator.Parselet(expr), x)

	x, e = notation.Parse(b, "expr<100>")
	require.NoError(t, e)
	assert.Equal(t, combinator.ParseletAt(expr, 100), x)

	x, e = notation.Parse(b, "expr < -5 >")
	require.NoError(t, e)
	assert.Equal(t, combinator.ParseletAt(expr, -5), x)

	x, e = notation.Parse(b, `"("`)
	require.NoError(t, e)
	assert.Equal(t, combinator.Implicit("("), x)

	x, e = notation.Parse(b, "[ Name ]")
	require.NoError(t, e)
	assert.Equal(t, combinator.Optional(combinator.Token(name)), x)

	x, e = notation.Parse(b, "{ Name }")
	require.NoError(t, e)
	assert.Equal(t, combinator.Repeat(combinator.Token(name)), x)
}

func TestStructure(t *testing.T) {
	b, _, _ := newBuilder(t)
	samples := []struct {
		src, expected string
	}{
		{"expr '+' expr", "expr '+' expr"},
		{"expr'+'expr<100>", "expr '+' expr<100>"},
		{"'(' [args] ')'", "'(' [args] ')'"},
		{"Name | expr | '1'", "Name | expr | '1'"},
		{"Name (expr | '1')", "Name (expr | '1')"},
		{"(Name expr) '1'", "Name expr '1'"},
		{"((Name))", "Name"},
		{"{',' expr}", "{',' expr}"},
		{"[Name | expr] {Name '.' | '!'}", "[Name | expr] {Name '.' | '!'}"},
	}

	for _, s := range samples {
		x, e := notation.Parse(b, s.src)
		if assert.NoError(t, e, s.src) {
			assert.Equal(t, s.expected, x.String(), s.src)
		}
	}
}

func TestChoiceFlattening(t *testing.T) {
	b, _, _ := newBuilder(t)
	x, e := notation.Parse(b, "Name | expr Name | '1' | '2'")
	require.NoError(t, e)

	c, ok := x.(*combinator.ChoiceExpr)
	require.True(t, ok)
	assert.Len(t, c.Items(), 4)
	_, ok = c.Items()[1].(*combinator.SequenceExpr)
	assert.True(t, ok)
}

func TestLiterals(t *testing.T) {
	b, _, _ := newBuilder(t)
	samples := []struct {
		src, literal string
	}{
		{`'\n'`, `\n`},
		{`"\n"`, "\n"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`"\"\\"`, `"\`},
		{`"\x41é\U0001F600"`, "Aé\U0001F600"},
		{`"a\tb"`, "a\tb"},
	}

	for _, s := range samples {
		x, e := notation.Parse(b, s.src)
		if !assert.NoError(t, e, s.src) {
			continue
		}
		ie, ok := x.(*combinator.ImplicitExpr)
		if assert.True(t, ok, s.src) {
			assert.Equal(t, s.literal, ie.Literal(), s.src)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	b, name, expr := newBuilder(t)
	samples := []combinator.Expr{
		combinator.Sequence(combinator.Parselet(expr), combinator.Implicit("+"), combinator.ParseletAt(expr, 10)),
		combinator.Choice(combinator.Token(name), combinator.Implicit("it's")),
		combinator.Sequence(combinator.Implicit("("), combinator.Optional(combinator.Parselet(expr), combinator.Repeat(combinator.Implicit(","), combinator.Parselet(expr))), combinator.Implicit(")")),
		combinator.Sequence(combinator.Token(name), combinator.Choice(combinator.Implicit("a\tb"), combinator.Implicit("'"))),
	}

	for _, x := range samples {
		y, e := notation.Parse(b, x.String())
		if assert.NoError(t, e, x.String()) {
			assert.Equal(t, x, y)
		}
	}
}

func TestErrors(t *testing.T) {
	b, _, _ := newBuilder(t)
	samples := []struct {
		src  string
		code int
	}{
		{"foo", notation.UnknownNameError},
		{"expr foo<1>", notation.UnknownNameError},
		{"Name<1>", notation.TokenPriorityError},
		{"''", notation.InvalidLiteralError},
		{`""`, notation.InvalidLiteralError},
		{`"\q"`, notation.InvalidLiteralError},
		{`"\x4"`, notation.InvalidLiteralError},
		{`"\xZZ"`, notation.InvalidLiteralError},
		{`"\uD800"`, notation.InvalidLiteralError},
		{"", parser.UnexpectedEoiError},
		{"Name |", parser.UnexpectedEoiError},
		{"[Name", parser.UnexpectedEoiError},
		{"Name ]", parser.UnexpectedTokenError},
		{"expr<>", parser.UnexpectedTokenError},
		{"Name $", lexer.WrongCharError},
	}

	for _, s := range samples {
		_, e := notation.Parse(b, s.src)
		test.ExpectErrorCode(t, s.code, e)
	}
}

func TestErrorPosition(t *testing.T) {
	b, _, _ := newBuilder(t)
	_, e := notation.Parse(b, "Name foo")
	test.ExpectErrorCode(t, notation.UnknownNameError, e)
	assert.Contains(t, e.Error(), "col 6")
}

func TestAddParser(t *testing.T) {
	b, _, expr := newBuilder(t)
	op, e := b.AddToken("op")
	require.NoError(t, e)
	_, e = b.AddPattern(op, `[-+*(),]`)
	require.NoError(t, e)
	space, e := b.AddToken("space")
	require.NoError(t, e)
	_, e = b.AddPattern(space, `\s+`)
	require.NoError(t, e)
	require.NoError(t, b.AddTrivia(space))
	args, _ := b.Parselet("args")

	productions := []struct {
		id       symbol.ParseletID
		body     string
		priority int
	}{
		{expr, "Name", 0},
		{expr, "'(' expr ')'", 0},
		{expr, "'-' expr", 30},
		{expr, "expr '+' expr", 10},
		{expr, "expr '-' expr", 10},
		{expr, "expr '*' expr", 20},
		{expr, "expr '(' [args] ')'", 40},
		{args, "expr {',' expr}", 0},
	}
	for _, p := range productions {
		_, e = notation.AddParser(b, p.id, p.body, p.priority)
		require.NoError(t, e, p.body)
	}

	_, e = notation.AddParser(b, expr, "expr |", 0)
	test.ExpectErrorCode(t, parser.UnexpectedEoiError, e)

	g := test.MustBuild(t, b)
	root, e := parser.Parse(g, "f(a, -b) + c * d", expr)
	require.NoError(t, e)
	assert.Equal(t, "((f ( (a , (- b)) )) + (c * d))", test.Shape(root))
}

func TestMustParse(t *testing.T) {
	b, _, expr := newBuilder(t)
	assert.Equal(t, combinator.Parselet(expr), notation.MustParse(b, "expr"))
	assert.Panics(t, func() { notation.MustParse(b, "unknown") })
}
