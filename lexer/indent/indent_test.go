package indent_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/parselet/combinator"
	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/internal/test"
	"github.com/ava12/parselet/lexer"
	"github.com/ava12/parselet/lexer/indent"
	"github.com/ava12/parselet/parser"
	"github.com/ava12/parselet/source"
	"github.com/ava12/parselet/symbol"
	"github.com/ava12/parselet/tree"
)

var (
	blockConfig = indent.Config{Spaces: []string{"space"}, Indent: "in", Dedent: "de"}
	lineConfig  = indent.Config{Spaces: []string{"space"}, Indent: "in", Dedent: "de", NewLine: "nl"}
)

// blockGrammar: g = st {st}; st = 'do' in st {st} de | '(' {name} ')' | name.
func blockGrammar(t *testing.T) (*grammar.Grammar, symbol.ParseletID) {
	b := grammar.NewBuilder()
	add := func(name, pattern string, trivia bool) symbol.TokenID {
		id, e := b.AddToken(name)
		require.NoError(t, e)
		if pattern != "" {
			_, e = b.AddPattern(id, pattern)
			require.NoError(t, e)
		}
		if trivia {
			require.NoError(t, b.AddTrivia(id))
		}
		return id
	}

	add("space", `\s+`, true)
	add("comment", `\{[^}]*\}`, true)
	name := add("name", `\w+`, false)
	in := add("in", "", false)
	de := add("de", "", false)
	add("nl", "", false)
	open, e := b.AddLiteralToken("(")
	require.NoError(t, e)
	closing, e := b.AddLiteralToken(")")
	require.NoError(t, e)
	require.NoError(t, b.AddBrackets(open, closing))

	g, e := b.AddParselet("g", symbol.Sequence)
	require.NoError(t, e)
	st, e := b.AddParselet("st", symbol.Sequence)
	require.NoError(t, e)

	x := combinator.Parselet(st)
	for _, body := range []combinator.Expr{
		combinator.Sequence(b.AddImplicit("do"), combinator.Token(in), x, combinator.Repeat(x), combinator.Token(de)),
		combinator.Sequence(b.AddImplicit("("), combinator.Repeat(combinator.Token(name)), b.AddImplicit(")")),
		combinator.Token(name),
	} {
		_, e = b.AddParser(st, body, 0)
		require.NoError(t, e)
	}
	_, e = b.AddParser(g, combinator.Sequence(x, combinator.Repeat(x)), 0)
	require.NoError(t, e)

	return test.MustBuild(t, b), g
}

func render(tokens []*lexer.Token) string {
	b := &strings.Builder{}
	for _, tok := range tokens {
		switch tok.TypeName() {
		case "in":
			b.WriteString("(")
		case "de":
			b.WriteString(")")
		case "nl":
			b.WriteString("|")
		default:
			b.WriteString(tok.Text())
		}
	}
	return b.String()
}

func TestConfigErrors(t *testing.T) {
	g, _ := blockGrammar(t)
	samples := []struct {
		config indent.Config
		code   int
	}{
		{indent.Config{Spaces: []string{"space"}, Dedent: "de"}, indent.MissingTokenError},
		{indent.Config{Spaces: []string{"space"}, Indent: "in"}, indent.MissingTokenError},
		{indent.Config{Spaces: []string{"foo"}, Indent: "in", Dedent: "de"}, indent.UnknownTokenError},
		{indent.Config{Indent: "foo", Dedent: "de"}, indent.UnknownTokenError},
		{indent.Config{Indent: "in", Dedent: "foo"}, indent.UnknownTokenError},
		{indent.Config{Indent: "in", Dedent: "de", NewLine: "foo"}, indent.UnknownTokenError},
	}

	for i, s := range samples {
		t.Run(fmt.Sprintf("sample #%d", i), func(t *testing.T) {
			_, e := indent.New(g, lexer.New(g, source.New("", "")), s.config)
			test.ExpectErrorCode(t, s.code, e)
		})
	}
}

func TestTokenOrder(t *testing.T) {
	g, _ := blockGrammar(t)
	samples := []struct {
		src, expected string
	}{
		{"", ""},
		{"foo", "foo"},
		{"foo\nbar", "foo\nbar"},
		{"do\n  foo\nbar", "do\n  (foo\n)bar"},
		{"do\n  foo\n  bar", "do\n  (foo\n  bar)"},
		{"foo\n\t{c}\n  \nbar", "foo\n\t{c}\n  \nbar"},
		{"do\n do\n  do\n   foo\n", "do\n (do\n  (do\n   (foo\n)))"},
		{"do\n{c}\n foo", "do\n{c}\n (foo)"},
		{"f(a\n  b\n)\ng", "f(a\n  b\n)\ng"},
		{"do\n  f(a\nb)\nc", "do\n  (f(a\nb)\n)c"},
	}

	for i, s := range samples {
		t.Run(fmt.Sprintf("sample #%d (%q)", i, s.src), func(t *testing.T) {
			tokens, e := indent.Tokenize(context.Background(), g, source.New("", s.src), blockConfig)
			require.NoError(t, e)
			assert.Equal(t, s.expected, render(tokens))
		})
	}
}

func TestNewLines(t *testing.T) {
	g, _ := blockGrammar(t)
	samples := []struct {
		src, expected string
	}{
		{"", ""},
		{"  \n", "  \n"},
		{"foo", "foo|"},
		{"foo\nbar", "foo\n|bar|"},
		{"foo bar\n", "foo bar\n|"},
		{"do\n  foo\nbar", "do\n  |(foo\n|)bar|"},
		{"do\n  foo", "do\n  |(foo|)"},
		{"foo\n{c}\nbar", "foo\n{c}\n|bar|"},
	}

	for i, s := range samples {
		t.Run(fmt.Sprintf("sample #%d (%q)", i, s.src), func(t *testing.T) {
			tokens, e := indent.Tokenize(context.Background(), g, source.New("", s.src), lineConfig)
			require.NoError(t, e)
			assert.Equal(t, s.expected, render(tokens))
		})
	}
}

func TestSynthesizedTokens(t *testing.T) {
	g, _ := blockGrammar(t)
	src := "do\n  foo"
	tokens, e := indent.Tokenize(context.Background(), g, source.New("file", src), blockConfig)
	require.NoError(t, e)
	require.Len(t, tokens, 5)

	in, de := tokens[2], tokens[4]
	assert.Equal(t, "in", in.TypeName())
	assert.Equal(t, 5, in.Start())
	assert.Equal(t, 5, in.End())
	assert.False(t, in.IsTrivia())
	assert.Equal(t, "file", in.SourceName())
	assert.Equal(t, "de", de.TypeName())
	assert.Equal(t, len(src), de.Start())
}

func TestLayoutErrors(t *testing.T) {
	g, start := blockGrammar(t)
	p := parser.New(g, parser.WithLayout(blockConfig))

	samples := []struct {
		src  string
		code int
	}{
		{"foo\n  bar", parser.UnexpectedTokenError},
		{" foo", parser.UnexpectedTokenError},
		{"do\n  foo\n    bar", parser.UnexpectedTokenError},
		{"do\n  foo\n bar", indent.InvalidIndentError},
		{"do\n\tfoo\n bar", indent.InvalidIndentError},
		{"do\n  foo\n\t\tbar", indent.InvalidIndentError},
		{"{c}foo", indent.InvalidIndentError},
		{"do\n foo\n {c}bar", indent.InvalidIndentError},
		{"do\n foo\n{c} bar", indent.InvalidIndentError},
		{"do\n{c}foo", indent.InvalidIndentError},
	}

	for i, s := range samples {
		t.Run(fmt.Sprintf("sample #%d (%q)", i, s.src), func(t *testing.T) {
			_, e := p.ParseContext(context.Background(), source.New("", s.src), start)
			test.ExpectErrorCode(t, s.code, e)
		})
	}
}

func TestParse(t *testing.T) {
	g, start := blockGrammar(t)
	p := parser.New(g, parser.WithLayout(blockConfig))

	samples := []struct {
		src, expected string
	}{
		{"foo", `g(st(name "foo"))`},
		{"foo\n {c}\nbar", `g(st(name "foo") st(name "bar"))`},
		{"do\n  foo\nbar", `g(st(name "do" in "" st(name "foo") de "") st(name "bar"))`},
		{"do\n\tfoo\n\tbar", `g(st(name "do" in "" st(name "foo") st(name "bar") de ""))`},
		{"do\n\tfoo  \n  {c}  \n\tbar", `g(st(name "do" in "" st(name "foo") st(name "bar") de ""))`},
		{
			"do\n\tfoo\n {c} \n\tdo\n\t\tbar\n\tbaz\n\t\n",
			`g(st(name "do" in "" st(name "foo") st(name "do" in "" st(name "bar") de "") st(name "baz") de ""))`,
		},
		{"(a\nb)", `g(st(( "(" name "a" name "b" ) ")"))`},
	}

	for i, s := range samples {
		t.Run(fmt.Sprintf("sample #%d (%q)", i, s.src), func(t *testing.T) {
			root, e := p.ParseContext(context.Background(), source.New("", s.src), start)
			require.NoError(t, e)
			assert.Equal(t, s.expected, tree.Format(root))
			assert.Equal(t, s.src, tree.Text(root))
		})
	}
}

func TestCancel(t *testing.T) {
	g, _ := blockGrammar(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, e := indent.Tokenize(ctx, g, source.New("", "foo"), blockConfig)
	assert.ErrorIs(t, e, context.Canceled)
}
