// Package tree defines syntax tree built by parser and functions for its navigation.
//
// Syntax tree is immutable: a node is created with its complete list of children,
// so subtrees may be shared and read concurrently.
// Tree elements have no parent links, use Walk, Iterator or Selector to navigate.
package tree

import (
	"strings"

	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/lexer"
	"github.com/ava12/parselet/symbol"
)

// Element is either *Node or *lexer.Token.
type Element interface {
	TypeName() string
	IsNode() bool
	Start() int
	End() int
}

// Node is a syntax tree node created by a production of a parselet.
// Node span is the union of its children spans, nodes without children have empty span.
type Node struct {
	parselet   symbol.ParseletID
	production *grammar.Production
	children   []Element
	start, end int
}

// NewNode creates a node. Start is used only if there are no children.
// The children slice is owned by the node after the call.
func NewNode(parselet symbol.ParseletID, production *grammar.Production, start int, children []Element) *Node {
	end := start
	if len(children) > 0 {
		start = children[0].Start()
		end = children[len(children)-1].End()
	}
	return &Node{parselet, production, children, start, end}
}

func (n *Node) Parselet() symbol.ParseletID {
	return n.parselet
}

// Production returns the production which created the node, may be nil for synthesized nodes.
func (n *Node) Production() *grammar.Production {
	return n.production
}

// TypeName returns parselet name.
func (n *Node) TypeName() string {
	return n.parselet.Name()
}

func (n *Node) IsNode() bool {
	return true
}

func (n *Node) Start() int {
	return n.start
}

func (n *Node) End() int {
	return n.end
}

// Children returns child elements including trivia tokens. The slice must not be modified.
func (n *Node) Children() []Element {
	return n.children
}

func (n *Node) Len() int {
	return len(n.children)
}

// Child returns i-th child, negative index counts from the last child (-1 is the last one).
// Returns nil if index is out of range.
func (n *Node) Child(i int) Element {
	if i < 0 {
		i += len(n.children)
	}
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) String() string {
	return Format(n)
}

// AsNode returns e as *Node.
func AsNode(e Element) (*Node, bool) {
	n, ok := e.(*Node)
	return n, ok && n != nil
}

// AsToken returns e as *lexer.Token.
func AsToken(e Element) (*lexer.Token, bool) {
	t, ok := e.(*lexer.Token)
	return t, ok && t != nil
}

// IsTrivia tells whether e is a trivia token.
func IsTrivia(e Element) bool {
	t, ok := AsToken(e)
	return ok && t.IsTrivia()
}

// Children returns child elements of a node or nil for tokens.
func Children(e Element) []Element {
	if n, ok := AsNode(e); ok {
		return n.children
	}
	return nil
}

// Significant returns child elements that are not trivia tokens.
func Significant(e Element) []Element {
	children := Children(e)
	res := make([]Element, 0, len(children))
	for _, c := range children {
		if !IsTrivia(c) {
			res = append(res, c)
		}
	}
	return res
}

// NthChild returns i-th child, negative index counts from the end.
func NthChild(e Element, i int) Element {
	if n, ok := AsNode(e); ok {
		return n.Child(i)
	}
	return nil
}

const AllLevels = -1

// NumOfChildren returns the number of descendants up to levels deep,
// 0 counts direct children only, AllLevels counts all descendants.
func NumOfChildren(e Element, levels int) int {
	res := 0
	for _, c := range Children(e) {
		res++
		if levels != 0 {
			res += NumOfChildren(c, levels-1)
		}
	}
	return res
}

// FirstToken returns the first token of e (e itself if it is a token) or nil.
func FirstToken(e Element) *lexer.Token {
	if t, ok := AsToken(e); ok {
		return t
	}
	for _, c := range Children(e) {
		if t := FirstToken(c); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the last token of e (e itself if it is a token) or nil.
func LastToken(e Element) *lexer.Token {
	if t, ok := AsToken(e); ok {
		return t
	}
	cs := Children(e)
	for i := len(cs) - 1; i >= 0; i-- {
		if t := LastToken(cs[i]); t != nil {
			return t
		}
	}
	return nil
}

// Tokens returns all tokens of e in source order. Trivia tokens are included if withTrivia is set.
func Tokens(e Element, withTrivia bool) []*lexer.Token {
	var res []*lexer.Token
	Walk(e, WalkLtr, func(stat WalkStat) WalkerFlags {
		if t, ok := AsToken(stat.Element); ok && (withTrivia || !t.IsTrivia()) {
			res = append(res, t)
		}
		return 0
	})
	return res
}

// Text returns concatenated text of all tokens of e including trivia.
// For the root of a successful parse this is the whole source text.
func Text(e Element) string {
	b := &strings.Builder{}
	for _, t := range Tokens(e, true) {
		b.WriteString(t.Text())
	}
	return b.String()
}

// Format returns compact one-line representation of a subtree, trivia tokens are skipped:
//
//	expr(expr(number "1") + "+" expr(number "2"))
func Format(e Element) string {
	b := &strings.Builder{}
	format(e, b)
	return b.String()
}

func format(e Element, b *strings.Builder) {
	if t, ok := AsToken(e); ok {
		b.WriteString(t.TypeName())
		b.WriteString(" ")
		b.WriteString(quote(t.Text()))
		return
	}

	n, ok := AsNode(e)
	if !ok {
		return
	}

	b.WriteString(n.TypeName())
	b.WriteString("(")
	sep := false
	for _, c := range n.children {
		if IsTrivia(c) {
			continue
		}
		if sep {
			b.WriteString(" ")
		}
		format(c, b)
		sep = true
	}
	b.WriteString(")")
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`).Replace(s) + `"`
}
