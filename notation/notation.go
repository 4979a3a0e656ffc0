/*
Package notation converts textual description of a production body into combinator.Expr.

Notation elements:

	Name          token or parselet reference, tokens take precedence
	name<N>       parselet reference with explicit binding power N
	'text'        implicit token, no escape sequences
	"text"        implicit token, supports \n \t \xHH \uHHHH and similar escapes
	[ ... ]       optional elements
	{ ... }       elements repeated zero or more times
	( ... )       grouping
	a | b         ordered choice, binds weaker than sequence

Elements separated by spaces form a sequence, e.g. `expr '+' expr` or `'(' [args] ')'`.
The notation itself is parsed with a grammar built by package grammar.
*/
package notation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/parselet/combinator"
	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/lexer"
	"github.com/ava12/parselet/parser"
	"github.com/ava12/parselet/symbol"
	"github.com/ava12/parselet/tree"
)

// Parse converts text to an expression referring to tokens and parselets already registered in b.
// Returns *parser.SyntaxError, lexical error or *parselet.Error with one of notation codes.
func Parse(b *grammar.Builder, text string) (combinator.Expr, error) {
	root, e := parser.Parse(notationSyntax.grammar, text, notationSyntax.choice)
	if e != nil {
		return nil, e
	}

	c := converter{b, notationSyntax}
	return c.convert(root)
}

// MustParse is like Parse but panics on error. Intended for grammars defined in Go code.
func MustParse(b *grammar.Builder, text string) combinator.Expr {
	x, e := Parse(b, text)
	if e != nil {
		panic(e)
	}
	return x
}

// AddParser parses text and adds resulting production to parselet id.
func AddParser(b *grammar.Builder, id symbol.ParseletID, text string, priority int, opts ...grammar.ProductionOption) (grammar.ProductionID, error) {
	body, e := Parse(b, text)
	if e != nil {
		return 0, e
	}
	return b.AddParser(id, body, priority, opts...)
}

type converter struct {
	builder *grammar.Builder
	syntax  *syntax
}

func (c converter) convert(n *tree.Node) (combinator.Expr, error) {
	items := tree.Significant(n)

	switch n.Parselet() {
	case c.syntax.choice:
		if n.Production().Role() != grammar.Infix {
			return c.convertNode(items[0])
		}
		left, e := c.convertNode(items[0])
		if e != nil {
			return nil, e
		}
		right, e := c.convertNode(items[2])
		if e != nil {
			return nil, e
		}
		return combinator.Choice(left, right), nil

	case c.syntax.seq:
		res := make([]combinator.Expr, 0, len(items))
		for _, item := range items {
			x, e := c.convertNode(item)
			if e != nil {
				return nil, e
			}
			res = append(res, x)
		}
		return combinator.Sequence(res...), nil

	default:
		return c.convertItem(items)
	}
}

func (c converter) convertNode(e tree.Element) (combinator.Expr, error) {
	n, _ := tree.AsNode(e)
	return c.convert(n)
}

func (c converter) convertItem(items []tree.Element) (combinator.Expr, error) {
	tok, _ := tree.AsToken(items[0])

	switch tok.Type() {
	case c.syntax.name:
		return c.reference(tok, items[1:])

	case c.syntax.str:
		literal, e := unquote(tok)
		if e != nil {
			return nil, e
		}
		return c.builder.AddImplicit(literal), nil
	}

	inner, e := c.convertNode(items[1])
	if e != nil {
		return nil, e
	}
	switch tok.Text() {
	case "[":
		return combinator.Optional(inner), nil
	case "{":
		return combinator.Repeat(inner), nil
	default:
		return inner, nil
	}
}

// reference resolves name; rest is empty or contains '<' integer '>'.
func (c converter) reference(name *lexer.Token, rest []tree.Element) (combinator.Expr, error) {
	if id, found := c.builder.Token(name.Text()); found {
		if len(rest) > 0 {
			return nil, tokenPriorityError(name)
		}
		return combinator.Token(id), nil
	}

	id, found := c.builder.Parselet(name.Text())
	if !found {
		return nil, unknownNameError(name)
	}
	if len(rest) == 0 {
		return combinator.Parselet(id), nil
	}

	power, _ := tree.AsToken(rest[1])
	priority, e := strconv.Atoi(power.Text())
	if e != nil {
		return nil, e
	}
	return combinator.ParseletAt(id, priority), nil
}

type escapeCharEntry struct {
	substitute, hexLen byte
}

var escapeCharMap = map[byte]escapeCharEntry{
	'\\': {'\\', 0},
	'"':  {'"', 0},
	'\'': {'\'', 0},
	'a':  {'\a', 0},
	'b':  {'\b', 0},
	'f':  {'\f', 0},
	'n':  {'\n', 0},
	'r':  {'\r', 0},
	't':  {'\t', 0},
	'v':  {'\v', 0},
	'x':  {0, 2},
	'u':  {0, 4},
	'U':  {0, 8},
}

// unquote returns literal text of a string token.
// Single-quoted strings are taken as is, double-quoted ones may contain escape sequences.
func unquote(tok *lexer.Token) (string, error) {
	text := tok.Text()
	content := text[1 : len(text)-1]
	if content == "" {
		return "", emptyLiteralError(tok)
	}
	if text[0] == '\'' || strings.IndexByte(content, '\\') < 0 {
		return content, nil
	}

	b := &strings.Builder{}
	for {
		slashPos := strings.IndexByte(content, '\\')
		if slashPos < 0 {
			b.WriteString(content)
			break
		}

		b.WriteString(content[:slashPos])
		content = content[slashPos:]

		entry, valid := escapeCharMap[content[1]]
		if !valid {
			return "", invalidEscapeError(tok, content[:2])
		}
		if entry.hexLen == 0 {
			b.WriteByte(entry.substitute)
			content = content[2:]
			continue
		}

		hexLen := int(entry.hexLen)
		if len(content) < hexLen+2 {
			return "", invalidEscapeError(tok, content)
		}
		code, e := strconv.ParseUint(content[2:hexLen+2], 16, 32)
		if e != nil {
			return "", invalidEscapeError(tok, content[:hexLen+2])
		}

		if content[1] == 'x' {
			b.WriteByte(byte(code))
		} else if utf8.ValidRune(rune(code)) {
			b.WriteRune(rune(code))
		} else {
			return "", invalidRuneError(tok, content[2:hexLen+2])
		}
		content = content[hexLen+2:]
	}

	return b.String(), nil
}
