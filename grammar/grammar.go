// Package grammar defines grammar builder and read-only grammar used by lexer and parser.
package grammar

import (
	"fmt"
	"math"
	"regexp"
	"regexp/syntax"

	"github.com/ava12/parselet/combinator"
	"github.com/ava12/parselet/symbol"
)

// LowestPriority is the binding power used when parsing starts
// and when a parselet reference has no explicit priority.
const LowestPriority = math.MinInt32

// PatternID is the registration index of a pattern.
type PatternID int

// ProductionID is the registration index of a production.
type ProductionID int

// Role describes production position relative to its own parselet.
type Role int

const (
	// Prefix production does not start with a reference to its own parselet.
	Prefix Role = iota
	// Infix production starts and ends with a reference to its own parselet.
	Infix
	// Postfix production starts with a reference to its own parselet and ends with something else.
	Postfix
)

func (r Role) String() string {
	switch r {
	case Prefix:
		return "prefix"
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	default:
		return "unknown"
	}
}

// Assoc is the associativity of infix production.
type Assoc int

const (
	LeftAssoc Assoc = iota
	RightAssoc
)

// Pattern is a lexical matcher bound to a token.
type Pattern struct {
	id     PatternID
	token  symbol.TokenID
	source string
	re     *regexp.Regexp
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, e := regexp.Compile(`\A(?:` + pattern + `)`)
	if e != nil {
		return nil, patternError(pattern, e)
	}

	if re.MatchString("") {
		return nil, emptyPatternError(pattern)
	}

	// patterns are matched against the rest of the text, preceding characters are not visible
	parsed, e := syntax.Parse(pattern, syntax.Perl)
	if e != nil {
		return nil, patternError(pattern, e)
	}
	if leadingAssertion(parsed) {
		return nil, lookbehindPatternError(pattern)
	}

	return re, nil
}

// leadingAssertion tells whether an assertion depending on the preceding character
// may be tested before the pattern consumes anything.
func leadingAssertion(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpWordBoundary, syntax.OpNoWordBoundary, syntax.OpBeginLine:
		return true
	case syntax.OpCapture, syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		return leadingAssertion(re.Sub[0])
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if leadingAssertion(sub) {
				return true
			}
		}
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if leadingAssertion(sub) {
				return true
			}
			if !matchesEmpty(sub) {
				break
			}
		}
	}
	return false
}

func matchesEmpty(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpStar, syntax.OpQuest,
		syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	case syntax.OpLiteral:
		return len(re.Rune) == 0
	case syntax.OpRepeat:
		return re.Min == 0 || matchesEmpty(re.Sub[0])
	case syntax.OpCapture, syntax.OpPlus:
		return matchesEmpty(re.Sub[0])
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if !matchesEmpty(sub) {
				return false
			}
		}
		return true
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if matchesEmpty(sub) {
				return true
			}
		}
	}
	return false
}

func (p *Pattern) ID() PatternID {
	return p.id
}

func (p *Pattern) Token() symbol.TokenID {
	return p.token
}

// Source returns regular expression as it was registered.
func (p *Pattern) Source() string {
	return p.source
}

// Match returns the length of match anchored at pos or -1 if there is no match.
func (p *Pattern) Match(text string, pos int) int {
	loc := p.re.FindStringIndex(text[pos:])
	if loc == nil {
		return -1
	}
	return loc[1]
}

// MatchesWhole tells whether the pattern matches entire text.
func (p *Pattern) MatchesWhole(text string) bool {
	return text != "" && p.Match(text, 0) == len(text)
}

// Production is a single rule body of a parselet.
type Production struct {
	id       ProductionID
	parselet symbol.ParseletID
	body     combinator.Expr
	items    []combinator.Expr
	priority int
	role     Role
	assoc    Assoc
}

func (p *Production) ID() ProductionID {
	return p.id
}

func (p *Production) Parselet() symbol.ParseletID {
	return p.parselet
}

func (p *Production) Body() combinator.Expr {
	return p.body
}

// Items returns top-level body elements. The slice must not be modified.
func (p *Production) Items() []combinator.Expr {
	return p.items
}

func (p *Production) Priority() int {
	return p.priority
}

func (p *Production) Role() Role {
	return p.role
}

func (p *Production) Assoc() Assoc {
	return p.assoc
}

func (p *Production) String() string {
	res := fmt.Sprintf("%s := %s", p.parselet.Name(), p.body.String())
	if p.priority != 0 {
		res += fmt.Sprintf(" @%d", p.priority)
	}
	if p.role == Infix && p.assoc == RightAssoc {
		res += " right"
	}
	return res
}

// Table contains productions of a single parselet ordered by descending priority,
// productions of equal priority keep registration order.
type Table struct {
	parselet symbol.ParseletID
	prefixes []*Production
	suffixes []*Production
}

func (t *Table) Parselet() symbol.ParseletID {
	return t.parselet
}

// Prefixes returns prefix productions. The slice must not be modified.
func (t *Table) Prefixes() []*Production {
	return t.prefixes
}

// Suffixes returns infix and postfix productions. The slice must not be modified.
func (t *Table) Suffixes() []*Production {
	return t.suffixes
}

// Grammar is a read-only grammar definition. Grammar is safe for concurrent use.
type Grammar struct {
	registry    *symbol.Registry
	patterns    []*Pattern
	trivia      []bool
	closing     map[symbol.TokenID]symbol.TokenID
	opening     map[symbol.TokenID]symbol.TokenID
	productions []*Production
	tables      []*Table
	implicits   map[string]symbol.TokenID
}

// Token returns token identifier by name.
func (g *Grammar) Token(name string) (symbol.TokenID, bool) {
	return g.registry.Token(name)
}

// Parselet returns parselet identifier by name.
func (g *Grammar) Parselet(name string) (symbol.ParseletID, bool) {
	return g.registry.Parselet(name)
}

// Tokens returns all token identifiers in registration order.
func (g *Grammar) Tokens() []symbol.TokenID {
	return g.registry.Tokens()
}

// Parselets returns all parselet identifiers in registration order.
func (g *Grammar) Parselets() []symbol.ParseletID {
	return g.registry.Parselets()
}

// OwnsToken tells whether the identifier belongs to this grammar.
func (g *Grammar) OwnsToken(id symbol.TokenID) bool {
	return g.registry.OwnsToken(id)
}

// OwnsParselet tells whether the identifier belongs to this grammar.
func (g *Grammar) OwnsParselet(id symbol.ParseletID) bool {
	return g.registry.OwnsParselet(id)
}

// Patterns returns all patterns in registration order. The slice must not be modified.
func (g *Grammar) Patterns() []*Pattern {
	return g.patterns
}

// IsTrivia tells whether tokens of given type are skipped by parser.
func (g *Grammar) IsTrivia(id symbol.TokenID) bool {
	return g.registry.OwnsToken(id) && g.trivia[id.Index()]
}

// ClosingBracket returns closing bracket paired with given opening bracket.
func (g *Grammar) ClosingBracket(open symbol.TokenID) (symbol.TokenID, bool) {
	id, has := g.closing[open]
	return id, has
}

// OpeningBracket returns opening bracket paired with given closing bracket.
func (g *Grammar) OpeningBracket(close symbol.TokenID) (symbol.TokenID, bool) {
	id, has := g.opening[close]
	return id, has
}

// Implicit returns the token type resolved for a literal used by productions.
func (g *Grammar) Implicit(literal string) (symbol.TokenID, bool) {
	id, has := g.implicits[literal]
	return id, has
}

// Productions returns all productions in registration order. The slice must not be modified.
func (g *Grammar) Productions() []*Production {
	return g.productions
}

// Table returns production table of the parselet or nil for a foreign identifier.
func (g *Grammar) Table(id symbol.ParseletID) *Table {
	if !g.registry.OwnsParselet(id) {
		return nil
	}
	return g.tables[id.Index()]
}
