// Package printer renders parse trees, token lists and grammars for terminal output.
// Colors are controlled by color.NoColor.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/lexer"
	"github.com/ava12/parselet/tree"
)

const (
	DefaultWidth = 78
	indentSize   = 2
	minWidth     = 20
)

var (
	nodeStyle    = color.New(color.FgCyan, color.Bold)
	tokenStyle   = color.New(color.FgYellow)
	textStyle    = color.New(color.FgGreen)
	posStyle     = color.New(color.FgHiBlack)
	headerStyle  = color.New(color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
	successStyle = color.New(color.FgGreen, color.Bold)
)

// Printer wraps output lines at the configured width. Write errors are sticky, see Err.
type Printer struct {
	w                        io.Writer
	maxCol                   int
	indentLevel, col         int
	indent, indentTpl, space string
	printed                  bool
	err                      error
}

// New creates a printer. Width less than 20 runes is replaced with 20.
func New(w io.Writer, width int) *Printer {
	if width < minWidth {
		width = minWidth
	}
	return &Printer{
		w:         w,
		maxCol:    width - 1,
		indentTpl: "        ",
	}
}

// Err returns the first write error.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) write(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

// Print outputs space-separated chunk, starting new line if the chunk does not fit.
func (p *Printer) Print(s string, style *color.Color) *Printer {
	return p.print(s, style.Sprint(s))
}

func (p *Printer) print(plain, styled string) *Printer {
	strlen := utf8.RuneCountInString(plain)
	if p.printed && strlen+p.col+1 > p.maxCol {
		p.Newline()
	}
	p.write(p.space + styled)
	p.col += len(p.space) + strlen
	p.space = " "
	p.printed = true
	return p
}

func (p *Printer) Newline() *Printer {
	if !p.printed {
		return p
	}

	p.write("\n")
	p.space = p.indent
	p.printed = false
	p.col = 0
	return p
}

func (p *Printer) Indent() *Printer {
	p.indentLevel++
	size := p.indentLevel * indentSize
	for len(p.indentTpl) < size {
		p.indentTpl += p.indentTpl
	}
	p.indent = p.indentTpl[:size]
	if !p.printed {
		p.space = p.indent
	}
	return p
}

func (p *Printer) Dedent() *Printer {
	if p.indentLevel > 0 {
		p.indentLevel--
	}
	p.indent = p.indentTpl[:p.indentLevel*indentSize]
	if !p.printed {
		p.space = p.indent
	}
	return p
}

// Tree prints a node with its subtree. Chains of single-node children are collapsed
// into one label like "stmt:expr:call". Trivia tokens are skipped unless withTrivia is set.
func (p *Printer) Tree(n *tree.Node, withTrivia bool) *Printer {
	p.node(n, withTrivia)
	return p.Newline()
}

func (p *Printer) node(n *tree.Node, withTrivia bool) {
	label := n.TypeName()
	children := p.children(n, withTrivia)
	for len(children) == 1 && children[0].IsNode() {
		n = children[0].(*tree.Node)
		children = p.children(n, withTrivia)
		label += ":" + n.TypeName()
	}
	p.Print(label, nodeStyle).Print("{", nodeStyle).Newline().Indent()

	for _, child := range children {
		if cn, isNode := tree.AsNode(child); isNode {
			p.node(cn, withTrivia)
		} else {
			tok, _ := tree.AsToken(child)
			p.token(tok)
		}
	}

	p.Newline().Dedent().Print("}", nodeStyle)
}

func (p *Printer) children(n *tree.Node, withTrivia bool) []tree.Element {
	if withTrivia {
		return n.Children()
	}
	return tree.Significant(n)
}

func (p *Printer) token(tok *lexer.Token) {
	text := p.truncate(tok.Text())
	tt := tok.TypeName()
	p.print(tt+"("+text+")", tokenStyle.Sprint(tt)+"("+textStyle.Sprint(text)+")")
}

func (p *Printer) truncate(content string) string {
	limit := p.maxCol / 2
	if utf8.RuneCountInString(content) <= limit {
		return strconv.Quote(content)
	}

	tail := 0
	for i := limit - 3; i > 0; i-- {
		_, size := utf8.DecodeRuneInString(content[tail:])
		tail += size
	}
	return strconv.Quote(content[:tail]) + "..."
}

// Tokens prints one token per line: position, type and quoted text.
// Synthesized tokens have empty text.
func (p *Printer) Tokens(tokens []*lexer.Token, withTrivia bool) *Printer {
	p.Newline()
	for _, tok := range tokens {
		if tok.IsTrivia() && !withTrivia {
			continue
		}

		pos := fmt.Sprintf("%4d:%-3d", tok.Line(), tok.Col())
		tt := fmt.Sprintf("%-12s", tok.TypeName())
		text := p.truncate(tok.Text())
		p.write(posStyle.Sprint(pos) + " " + tokenStyle.Sprint(tt) + " " + textStyle.Sprint(text) + "\n")
	}
	return p
}

// Grammar prints token definitions, brackets and production tables.
func (p *Printer) Grammar(g *grammar.Grammar) *Printer {
	p.Newline()
	p.write(headerStyle.Sprint("tokens:") + "\n")
	patterns := make(map[string][]string)
	for _, pat := range g.Patterns() {
		name := pat.Token().Name()
		patterns[name] = append(patterns[name], pat.Source())
	}
	for _, id := range g.Tokens() {
		mark := " "
		if g.IsTrivia(id) {
			mark = "~"
		}
		line := "  " + tokenStyle.Sprintf("%-12s", id.Name()) + " " + mark
		if ps := patterns[id.Name()]; len(ps) > 0 {
			line += " " + textStyle.Sprint(strings.Join(ps, "  "))
		}
		p.write(line + "\n")
	}

	var brackets []string
	for _, id := range g.Tokens() {
		if closing, has := g.ClosingBracket(id); has {
			brackets = append(brackets, id.Name()+" "+closing.Name())
		}
	}
	if len(brackets) > 0 {
		p.write(headerStyle.Sprint("brackets:") + "\n")
		for _, b := range brackets {
			p.write("  " + tokenStyle.Sprint(b) + "\n")
		}
	}

	p.write(headerStyle.Sprint("parselets:") + "\n")
	for _, id := range g.Parselets() {
		p.write("  " + nodeStyle.Sprint(id.Name()) + " (" + id.Kind().String() + ")\n")
		table := g.Table(id)
		for _, list := range [][]*grammar.Production{table.Prefixes(), table.Suffixes()} {
			for _, prod := range list {
				p.write("    " + posStyle.Sprintf("%-8s", prod.Role()) + prod.String() + "\n")
			}
		}
	}
	return p
}

// Error prints an error message line.
func (p *Printer) Error(e error) *Printer {
	p.Newline()
	p.write(errorStyle.Sprint("error:") + " " + e.Error() + "\n")
	return p
}

// Header prints a sample or file name line.
func (p *Printer) Header(name string) *Printer {
	p.Newline()
	p.write(headerStyle.Sprint(name) + "\n")
	return p
}

// Success prints a status line.
func (p *Printer) Success(message string) *Printer {
	p.Newline()
	p.write(successStyle.Sprint(message) + "\n")
	return p
}
