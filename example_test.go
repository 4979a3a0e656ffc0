package parselet_test

import (
	"fmt"
	"strings"

	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/notation"
	"github.com/ava12/parselet/parser"
	"github.com/ava12/parselet/symbol"
	"github.com/ava12/parselet/tree"
)

func Example() {
	input := `
foo = hello
bar = world
[sec]
baz =
[sec.subsec]
qux = !
`
	b := grammar.NewBuilder()
	for _, t := range []struct {
		name, pattern string
	}{
		{"space", `[ \t\r]+`},
		{"nl", `\n`},
		{"name", `[a-z]+`},
		{"op", `[=\[\].!]`},
	} {
		id, _ := b.AddToken(t.name)
		if _, e := b.AddPattern(id, t.pattern); e != nil {
			panic(e)
		}
	}
	space, _ := b.Token("space")
	_ = b.AddTrivia(space)

	config, _ := b.AddParselet("config", symbol.Sequence)
	section, _ := b.AddParselet("section", symbol.Sequence)
	value, _ := b.AddParselet("value", symbol.Sequence)
	for id, body := range map[symbol.ParseletID]string{
		config:  "{section | value | nl}",
		section: "'[' name {'.' name} ']' nl",
		value:   "name '=' {name | '!'} nl",
	} {
		if _, e := b.AddParser(id, notation.MustParse(b, body), 0); e != nil {
			panic(e)
		}
	}

	configGrammar, e := b.Build()
	if e != nil {
		fmt.Println(e)
		return
	}

	root, e := parser.New(configGrammar).Parse(input, config)
	if e != nil {
		fmt.Println(e)
		return
	}

	result := make(map[string]string)
	prefix := ""
	for _, child := range tree.Significant(root) {
		n, isNode := tree.AsNode(child)
		if !isNode {
			continue
		}

		parts := tree.Significant(n)
		switch n.TypeName() {
		case "section":
			prefix = ""
			for _, p := range parts[1 : len(parts)-2] {
				prefix += tree.Text(p)
			}
			prefix += "."
		case "value":
			var words []string
			for _, p := range parts[2 : len(parts)-1] {
				words = append(words, tree.Text(p))
			}
			result[prefix+tree.Text(parts[0])] = strings.Join(words, " ")
		}
	}
	fmt.Println(result)

	// Output:
	// map[bar:world foo:hello sec.baz: sec.subsec.qux:!]
}
