// Package grammarfile loads grammar definitions written in YAML.
//
//	tokens:
//	  - {name: space, patterns: ['\s+'], trivia: true}
//	  - {name: number, patterns: ['\d+']}
//	  - {name: op, patterns: ['[-+*/()]']}
//	parselets:
//	  - name: expr
//	    kind: pratt
//	    productions:
//	      - number
//	      - "'(' expr ')'"
//	      - {body: "expr '+' expr", priority: 10}
//	      - {body: "expr '^' expr", priority: 30, assoc: right}
//	start: expr
//
// Optional sections are "literals" (tokens matching exactly their names), "brackets" (pairs of token names),
// "conversions" (see package lexer/convert) and "layout" (see package lexer/indent).
//
// A definition may extend other definition files listed in "extends", paths are relative
// to the extending file. Base grammars are merged first (see grammar.Builder.Extend),
// then the file may add patterns to inherited tokens and productions to inherited parselets
// by listing them under the same names. Conversions of bases precede own ones, layout and
// start parselet are inherited unless defined.
//
// Production bodies use package notation. A production may be written as a plain string
// when it has default priority and associativity.
package grammarfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/lexer/convert"
	"github.com/ava12/parselet/lexer/indent"
	"github.com/ava12/parselet/notation"
	"github.com/ava12/parselet/parser"
	"github.com/ava12/parselet/symbol"
)

type Token struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	Trivia   bool     `yaml:"trivia"`
}

type Production struct {
	Body     string `yaml:"body"`
	Priority int    `yaml:"priority"`
	Assoc    string `yaml:"assoc"`
}

// UnmarshalYAML accepts either a mapping or a plain string containing production body.
func (p *Production) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Body = node.Value
		return nil
	}

	type plain Production
	return node.Decode((*plain)(p))
}

type Parselet struct {
	Name        string       `yaml:"name"`
	Kind        string       `yaml:"kind"`
	Productions []Production `yaml:"productions"`
}

type Conversion struct {
	Input  string   `yaml:"input"`
	Output string   `yaml:"output"`
	Texts  []string `yaml:"texts"`
}

type Layout struct {
	Spaces  []string `yaml:"spaces"`
	Indent  string   `yaml:"indent"`
	Dedent  string   `yaml:"dedent"`
	NewLine string   `yaml:"newline"`
}

// File is the content of a definition file.
type File struct {
	Extends     []string     `yaml:"extends"`
	Tokens      []Token      `yaml:"tokens"`
	Literals    []string     `yaml:"literals"`
	Brackets    [][2]string  `yaml:"brackets"`
	Parselets   []Parselet   `yaml:"parselets"`
	Start       string       `yaml:"start"`
	Conversions []Conversion `yaml:"conversions"`
	Layout      *Layout      `yaml:"layout"`
}

// Definition is a built grammar together with its start parselet and optional token layers.
type Definition struct {
	Grammar     *grammar.Grammar
	Start       symbol.ParseletID
	Conversions []convert.Rule
	Layout      *indent.Config
}

// Load reads and builds definition file together with definitions it extends.
func Load(path string, opts ...grammar.BuilderOption) (*Definition, error) {
	l := &loader{opts: opts, active: make(map[string]bool)}
	return l.load(path)
}

// loader keeps the chain of files being loaded to detect circular extends.
type loader struct {
	opts   []grammar.BuilderOption
	active map[string]bool
}

func (l *loader) load(path string) (*Definition, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if l.active[key] {
		return nil, fmt.Errorf("%s: circular extends", path)
	}
	l.active[key] = true
	defer delete(l.active, key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	bases := make([]*Definition, 0, len(f.Extends))
	for _, name := range f.Extends {
		if !filepath.IsAbs(name) {
			name = filepath.Join(filepath.Dir(path), name)
		}
		base, err := l.load(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		bases = append(bases, base)
	}

	d, err := f.build(bases, l.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes definition file content. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func parseKind(kind string) (symbol.ParseletKind, error) {
	switch kind {
	case "", "sequence":
		return symbol.Sequence, nil
	case "pratt":
		return symbol.Pratt, nil
	default:
		return 0, fmt.Errorf("unknown parselet kind %q", kind)
	}
}

func parseAssoc(assoc string) (grammar.Assoc, error) {
	switch assoc {
	case "", "left":
		return grammar.LeftAssoc, nil
	case "right":
		return grammar.RightAssoc, nil
	default:
		return 0, fmt.Errorf("unknown associativity %q", assoc)
	}
}

// Build registers all definitions with a new grammar.Builder and builds the grammar.
// Parselets are registered before productions are parsed, so productions may refer to any parselet.
// The extends section is ignored, use Load to build extending definitions.
func (f *File) Build(opts ...grammar.BuilderOption) (*Definition, error) {
	return f.build(nil, opts)
}

func (f *File) build(bases []*Definition, opts []grammar.BuilderOption) (*Definition, error) {
	b := grammar.NewBuilder(opts...)
	for _, base := range bases {
		if err := b.Extend(base.Grammar); err != nil {
			return nil, err
		}
	}

	// names defined by this file, inherited names may be listed once
	ownTokens := make(map[string]bool)
	for _, t := range f.Tokens {
		id, found := b.Token(t.Name)
		if !found || ownTokens[t.Name] {
			var err error
			if id, err = b.AddToken(t.Name); err != nil {
				return nil, err
			}
		}
		ownTokens[t.Name] = true

		var err error
		for _, p := range t.Patterns {
			if _, err = b.AddPattern(id, p); err != nil {
				return nil, fmt.Errorf("token %s: %w", t.Name, err)
			}
		}
		if t.Trivia {
			if err = b.AddTrivia(id); err != nil {
				return nil, err
			}
		}
	}

	for _, l := range f.Literals {
		if _, err := b.AddLiteralToken(l); err != nil {
			return nil, err
		}
	}

	for _, pair := range f.Brackets {
		open, found := b.Token(pair[0])
		if !found {
			return nil, fmt.Errorf("unknown bracket token %q", pair[0])
		}
		closing, found := b.Token(pair[1])
		if !found {
			return nil, fmt.Errorf("unknown bracket token %q", pair[1])
		}
		if err := b.AddBrackets(open, closing); err != nil {
			return nil, err
		}
	}

	ids := make([]symbol.ParseletID, len(f.Parselets))
	ownParselets := make(map[string]bool)
	for i, p := range f.Parselets {
		kind, err := parseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("parselet %s: %w", p.Name, err)
		}

		// inherited parselet keeps its kind unless the file states another one
		id, found := b.Parselet(p.Name)
		switch {
		case found && !ownParselets[p.Name]:
			if p.Kind != "" && id.Kind() != kind {
				return nil, fmt.Errorf("parselet %s: kind %s differs from inherited %s", p.Name, kind, id.Kind())
			}
			ids[i] = id
		default:
			if ids[i], err = b.AddParselet(p.Name, kind); err != nil {
				return nil, err
			}
		}
		ownParselets[p.Name] = true
	}

	for i, p := range f.Parselets {
		for j, prod := range p.Productions {
			assoc, err := parseAssoc(prod.Assoc)
			if err == nil {
				_, err = notation.AddParser(b, ids[i], prod.Body, prod.Priority, grammar.WithAssoc(assoc))
			}
			if err != nil {
				return nil, fmt.Errorf("parselet %s production #%d: %w", p.Name, j+1, err)
			}
		}
	}

	g, err := b.Build()
	if err != nil {
		return nil, err
	}

	d := &Definition{Grammar: g}
	switch {
	case f.Start != "":
		start, found := g.Parselet(f.Start)
		if !found {
			return nil, fmt.Errorf("unknown start parselet %q", f.Start)
		}
		d.Start = start
	case len(bases) > 0:
		d.Start, _ = g.Parselet(bases[0].Start.Name())
	case len(ids) > 0:
		d.Start = ids[0]
	default:
		return nil, fmt.Errorf("no parselets defined")
	}

	for _, base := range bases {
		d.Conversions = append(d.Conversions, base.Conversions...)
		if d.Layout == nil && base.Layout != nil {
			layout := *base.Layout
			d.Layout = &layout
		}
	}
	for _, c := range f.Conversions {
		d.Conversions = append(d.Conversions, convert.Rule(c))
	}
	if len(d.Conversions) > 0 {
		if _, err = convert.New(g, nil, d.Conversions...); err != nil {
			return nil, err
		}
	}

	if f.Layout != nil {
		d.Layout = &indent.Config{
			Spaces:  f.Layout.Spaces,
			Indent:  f.Layout.Indent,
			Dedent:  f.Layout.Dedent,
			NewLine: f.Layout.NewLine,
		}
	}
	if d.Layout != nil {
		if _, err = indent.New(g, nil, *d.Layout); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// NewParser creates a parser for the grammar, applying definition token layers.
func (d *Definition) NewParser(opts ...parser.Option) *parser.Parser {
	if len(d.Conversions) > 0 {
		opts = append(opts, parser.WithConversion(d.Conversions...))
	}
	if d.Layout != nil {
		opts = append(opts, parser.WithLayout(*d.Layout))
	}
	return parser.New(d.Grammar, opts...)
}
