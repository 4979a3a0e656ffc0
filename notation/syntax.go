package notation

import (
	"github.com/ava12/parselet/combinator"
	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/symbol"
)

// syntax is the grammar of the notation itself:
//
//	choice := seq | choice '|' choice
//	seq    := item {item}
//	item   := name ['<' integer '>'] | string | '[' choice ']' | '{' choice '}' | '(' choice ')'
type syntax struct {
	grammar            *grammar.Grammar
	name, str, integer symbol.TokenID
	choice, seq, item  symbol.ParseletID
}

var notationSyntax = mustBuildSyntax()

func mustBuildSyntax() *syntax {
	s, e := buildSyntax()
	if e != nil {
		panic(e)
	}
	return s
}

func buildSyntax() (*syntax, error) {
	b := grammar.NewBuilder()
	s := &syntax{}
	var e error

	addToken := func(name string, trivia bool, patterns ...string) (id symbol.TokenID) {
		if e != nil {
			return
		}
		if id, e = b.AddToken(name); e != nil {
			return
		}
		for _, p := range patterns {
			if _, e = b.AddPattern(id, p); e != nil {
				return
			}
		}
		if trivia {
			e = b.AddTrivia(id)
		}
		return
	}

	addToken("space", true, `\s+`)
	s.name = addToken("name", false, `[A-Za-z_][A-Za-z0-9_-]*`)
	s.str = addToken("string", false, `"(?:[^\\"]|\\.)*"`, `'[^']*'`)
	s.integer = addToken("integer", false, `-?\d+`)
	addToken("op", false, `[\[\]{}()<>|]`)
	if e != nil {
		return nil, e
	}

	if s.choice, e = b.AddParselet("choice", symbol.Pratt); e != nil {
		return nil, e
	}
	if s.seq, e = b.AddParselet("seq", symbol.Sequence); e != nil {
		return nil, e
	}
	if s.item, e = b.AddParselet("item", symbol.Sequence); e != nil {
		return nil, e
	}

	choice, item, lit := combinator.Parselet(s.choice), combinator.Parselet(s.item), b.AddImplicit
	productions := []struct {
		id   symbol.ParseletID
		body combinator.Expr
	}{
		{s.choice, combinator.Parselet(s.seq)},
		{s.choice, combinator.Sequence(choice, lit("|"), choice)},
		{s.seq, combinator.Sequence(item, combinator.Repeat(item))},
		{s.item, combinator.Sequence(combinator.Token(s.name), combinator.Optional(lit("<"), combinator.Token(s.integer), lit(">")))},
		{s.item, combinator.Token(s.str)},
		{s.item, combinator.Sequence(lit("["), choice, lit("]"))},
		{s.item, combinator.Sequence(lit("{"), choice, lit("}"))},
		{s.item, combinator.Sequence(lit("("), choice, lit(")"))},
	}
	for _, p := range productions {
		if _, e = b.AddParser(p.id, p.body, 0); e != nil {
			return nil, e
		}
	}

	s.grammar, e = b.Build()
	return s, e
}
