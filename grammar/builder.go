package grammar

import (
	"regexp"
	"sort"

	"go.uber.org/zap"

	"github.com/ava12/parselet/combinator"
	"github.com/ava12/parselet/internal/ints"
	"github.com/ava12/parselet/internal/queue"
	"github.com/ava12/parselet/symbol"
)

// Builder collects grammar definition. Builder is not safe for concurrent use.
// Once Build succeeds the builder is frozen and every modifying method returns GrammarFrozenError.
type Builder struct {
	registry    *symbol.Registry
	patterns    []*Pattern
	trivia      map[symbol.TokenID]bool
	closing     map[symbol.TokenID]symbol.TokenID
	opening     map[symbol.TokenID]symbol.TokenID
	productions []*Production
	frozen      bool
	logger      *zap.Logger
}

// BuilderOption configures Builder.
type BuilderOption func(b *Builder)

// WithLogger sets a logger receiving debug messages about grammar construction.
func WithLogger(l *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		registry: symbol.NewRegistry(),
		trivia:   make(map[symbol.TokenID]bool),
		closing:  make(map[symbol.TokenID]symbol.TokenID),
		opening:  make(map[symbol.TokenID]symbol.TokenID),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddToken registers new token type.
func (b *Builder) AddToken(name string) (symbol.TokenID, error) {
	if b.frozen {
		return symbol.TokenID{}, frozenError()
	}
	if name == "" {
		return symbol.TokenID{}, invalidNameError()
	}

	id, added := b.registry.AddToken(name)
	if !added {
		return symbol.TokenID{}, duplicateTokenError(name)
	}
	return id, nil
}

// AddLiteralToken registers a token named after the literal and matching exactly the literal.
// Returns existing token if a token with this name is already registered.
func (b *Builder) AddLiteralToken(literal string) (symbol.TokenID, error) {
	if id, has := b.registry.Token(literal); has {
		return id, nil
	}

	id, e := b.AddToken(literal)
	if e == nil {
		_, e = b.AddPattern(id, regexp.QuoteMeta(literal))
	}
	return id, e
}

// AddPattern registers a regular expression (RE2 syntax) matching tokens of given type.
// A token type may have any number of patterns.
// Patterns see no text before the match position, so a pattern must not start
// with \b, \B or multiline ^, these are rejected.
func (b *Builder) AddPattern(id symbol.TokenID, pattern string) (PatternID, error) {
	if b.frozen {
		return 0, frozenError()
	}
	if !b.registry.OwnsToken(id) {
		return 0, unknownTokenError(id.Name())
	}

	re, e := compilePattern(pattern)
	if e != nil {
		return 0, e
	}

	p := &Pattern{PatternID(len(b.patterns)), id, pattern, re}
	b.patterns = append(b.patterns, p)
	return p.id, nil
}

// AddTrivia marks a token type as trivia: parser skips such tokens.
func (b *Builder) AddTrivia(id symbol.TokenID) error {
	if b.frozen {
		return frozenError()
	}
	if !b.registry.OwnsToken(id) {
		return unknownTokenError(id.Name())
	}

	b.trivia[id] = true
	return nil
}

// AddBrackets registers a pair of bracket tokens.
func (b *Builder) AddBrackets(open, close symbol.TokenID) error {
	if b.frozen {
		return frozenError()
	}
	for _, id := range []symbol.TokenID{open, close} {
		if !b.registry.OwnsToken(id) {
			return unknownTokenError(id.Name())
		}
	}

	b.closing[open] = close
	b.opening[close] = open
	return nil
}

// AddParselet registers new parselet.
func (b *Builder) AddParselet(name string, kind symbol.ParseletKind) (symbol.ParseletID, error) {
	if b.frozen {
		return symbol.ParseletID{}, frozenError()
	}
	if name == "" {
		return symbol.ParseletID{}, invalidNameError()
	}

	id, added := b.registry.AddParselet(name, kind)
	if !added {
		return symbol.ParseletID{}, duplicateParseletError(name)
	}
	return id, nil
}

// Token returns registered token identifier by name.
func (b *Builder) Token(name string) (symbol.TokenID, bool) {
	return b.registry.Token(name)
}

// Parselet returns registered parselet identifier by name.
func (b *Builder) Parselet(name string) (symbol.ParseletID, bool) {
	return b.registry.Parselet(name)
}

// AddImplicit returns a body element matching a token with exact text.
// The literal is resolved to a token type when the grammar is built.
func (b *Builder) AddImplicit(literal string) combinator.Expr {
	return combinator.Implicit(literal)
}

type productionConfig struct {
	assoc Assoc
}

// ProductionOption configures a production.
type ProductionOption func(c *productionConfig)

// WithAssoc sets associativity of an infix production. Default is LeftAssoc.
func WithAssoc(a Assoc) ProductionOption {
	return func(c *productionConfig) {
		c.assoc = a
	}
}

// RightAssociative is a shortcut for WithAssoc(RightAssoc).
func RightAssociative() ProductionOption {
	return WithAssoc(RightAssoc)
}

// AddParser adds a production to parselet. Production role is inferred from body:
// for Pratt parselets a body starting with the parselet itself is infix if it also ends with
// the parselet and postfix otherwise; any other body is prefix.
// The element following the leading self reference must be a token or a choice of tokens.
// Higher priority binds tighter.
func (b *Builder) AddParser(id symbol.ParseletID, body combinator.Expr, priority int, opts ...ProductionOption) (ProductionID, error) {
	if b.frozen {
		return 0, frozenError()
	}
	if !b.registry.OwnsParselet(id) {
		return 0, unknownParseletError(id.Name())
	}
	if body == nil {
		return 0, productionError(id.Name(), "", "empty body")
	}
	if e := b.checkReferences(body); e != nil {
		return 0, e
	}

	config := productionConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	items := combinator.Items(body)
	role, e := inferRole(id, body, items)
	if e != nil {
		return 0, e
	}

	p := &Production{
		id:       ProductionID(len(b.productions)),
		parselet: id,
		body:     body,
		items:    items,
		priority: priority,
		role:     role,
		assoc:    config.assoc,
	}
	b.productions = append(b.productions, p)
	return p.id, nil
}

func (b *Builder) checkReferences(body combinator.Expr) (e error) {
	combinator.Walk(body, func(x combinator.Expr) bool {
		if e != nil {
			return false
		}

		switch x := x.(type) {
		case *combinator.TokenExpr:
			if !b.registry.OwnsToken(x.ID()) {
				e = unknownTokenError(x.ID().Name())
			}
		case *combinator.ParseletExpr:
			if !b.registry.OwnsParselet(x.ID()) {
				e = unknownParseletError(x.ID().Name())
			}
		}
		return true
	})
	return
}

func isSelf(id symbol.ParseletID, e combinator.Expr) bool {
	pe, ok := e.(*combinator.ParseletExpr)
	return ok && pe.ID() == id
}

func isToken(e combinator.Expr) bool {
	switch e.(type) {
	case *combinator.TokenExpr, *combinator.ImplicitExpr:
		return true
	default:
		return false
	}
}

// isOperator accepts a token or a choice of tokens.
func isOperator(e combinator.Expr) bool {
	if isToken(e) {
		return true
	}

	c, ok := e.(*combinator.ChoiceExpr)
	if !ok {
		return false
	}
	for _, item := range c.Items() {
		if !isToken(item) {
			return false
		}
	}
	return true
}

func inferRole(id symbol.ParseletID, body combinator.Expr, items []combinator.Expr) (Role, error) {
	if len(items) == 0 {
		return Prefix, productionError(id.Name(), body.String(), "empty body")
	}

	if !isSelf(id, items[0]) {
		for i := 0; i < len(items) && combinator.Nullable(items[i]); i++ {
			if i+1 < len(items) && isSelf(id, items[i+1]) {
				return Prefix, productionError(id.Name(), body.String(), "left recursion through optional elements")
			}
		}
		return Prefix, nil
	}

	if id.Kind() != symbol.Pratt {
		return Prefix, productionError(id.Name(), body.String(), "left recursion in sequence parselet")
	}
	if len(items) < 2 {
		return Prefix, productionError(id.Name(), body.String(), "self reference without operator")
	}
	if !isOperator(items[1]) {
		return Prefix, productionError(id.Name(), body.String(), "second element must be a token or a choice of tokens")
	}

	if len(items) > 2 && isSelf(id, items[len(items)-1]) {
		return Infix, nil
	}
	return Postfix, nil
}

// Build resolves implicit tokens, orders productions and returns read-only grammar.
// The builder is frozen on success and stays modifiable on failure.
func (b *Builder) Build() (*Grammar, error) {
	if b.frozen {
		return nil, frozenError()
	}

	implicits, e := b.resolveImplicits()
	if e != nil {
		return nil, e
	}

	tables, e := b.buildTables()
	if e != nil {
		return nil, e
	}

	if e = b.checkLeftRecursion(b.nullableParselets()); e != nil {
		return nil, e
	}

	trivia := make([]bool, b.registry.TokenCount())
	for id := range b.trivia {
		trivia[id.Index()] = true
	}

	g := &Grammar{
		registry:    b.registry,
		patterns:    b.patterns,
		trivia:      trivia,
		closing:     b.closing,
		opening:     b.opening,
		productions: b.productions,
		tables:      tables,
		implicits:   implicits,
	}
	b.frozen = true

	b.logger.Debug("grammar built",
		zap.Int("tokens", b.registry.TokenCount()),
		zap.Int("patterns", len(b.patterns)),
		zap.Int("parselets", b.registry.ParseletCount()),
		zap.Int("productions", len(b.productions)),
	)
	return g, nil
}

func (b *Builder) resolveImplicits() (map[string]symbol.TokenID, error) {
	res := make(map[string]symbol.TokenID)
	var unresolved []string

	for _, p := range b.productions {
		for _, literal := range combinator.Implicits(p.body) {
			if _, done := res[literal]; done {
				continue
			}

			id, found := b.resolveLiteral(literal)
			if found {
				res[literal] = id
				b.logger.Debug("implicit token resolved", zap.String("literal", literal), zap.String("token", id.Name()))
			} else {
				res[literal] = symbol.TokenID{}
				unresolved = append(unresolved, literal)
			}
		}
	}

	if len(unresolved) > 0 {
		return nil, unresolvedImplicitError(unresolved)
	}
	return res, nil
}

// resolveLiteral returns the token the lexer would produce for the literal alone:
// all full matches are of equal length, so the earliest registered pattern wins.
func (b *Builder) resolveLiteral(literal string) (symbol.TokenID, bool) {
	for _, p := range b.patterns {
		if p.MatchesWhole(literal) {
			return p.token, true
		}
	}
	return symbol.TokenID{}, false
}

func (b *Builder) buildTables() ([]*Table, error) {
	ids := b.registry.Parselets()
	tables := make([]*Table, len(ids))
	for i, id := range ids {
		tables[i] = &Table{parselet: id}
	}

	for _, p := range b.productions {
		t := tables[p.parselet.Index()]
		if p.role == Prefix {
			t.prefixes = append(t.prefixes, p)
		} else {
			t.suffixes = append(t.suffixes, p)
		}
	}

	var undefined []string
	for _, t := range tables {
		if len(t.prefixes) == 0 {
			undefined = append(undefined, t.parselet.Name())
		}
		sortByPriority(t.prefixes)
		sortByPriority(t.suffixes)
	}
	if len(undefined) > 0 {
		return nil, undefinedParseletError(undefined)
	}

	return tables, nil
}

func sortByPriority(ps []*Production) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].priority > ps[j].priority
	})
}

// nullableParselets returns flags of parselets that may match empty input, indexed by parselet index.
func (b *Builder) nullableParselets() []bool {
	nullable := make([]bool, b.registry.ParseletCount())
	isNullable := func(id symbol.ParseletID) bool {
		return nullable[id.Index()]
	}

	for changed := true; changed; {
		changed = false
		for _, p := range b.productions {
			i := p.parselet.Index()
			if p.role == Prefix && !nullable[i] && combinator.NullableWith(p.body, isNullable) {
				nullable[i] = true
				changed = true
			}
		}
	}
	return nullable
}

// checkLeftRecursion rejects cycles of prefix productions starting with
// (possibly after nullable elements) references to other parselets.
func (b *Builder) checkLeftRecursion(nullable []bool) error {
	ids := b.registry.Parselets()
	edges := make([]*ints.Set, len(ids))
	for i := range edges {
		edges[i] = ints.NewSet()
	}

	for _, p := range b.productions {
		if p.role != Prefix {
			continue
		}
		leftmost(p.body, nullable, func(id symbol.ParseletID) {
			edges[p.parselet.Index()].Add(id.Index())
		})
	}

	var cyclic []string
	for i, id := range ids {
		reached := ints.NewSet()
		q := queue.New(edges[i].ToSlice()...)
		for !q.IsEmpty() {
			j, _ := q.First()
			if !reached.Contains(j) {
				reached.Add(j)
				q.Append(edges[j].ToSlice()...)
			}
		}
		if reached.Contains(i) {
			cyclic = append(cyclic, id.Name())
		}
	}

	if len(cyclic) > 0 {
		return leftRecursionError(cyclic)
	}
	return nil
}

// leftmost calls add for each parselet reference that may be matched first in e.
// Returns true if e is nullable.
func leftmost(e combinator.Expr, nullable []bool, add func(id symbol.ParseletID)) bool {
	switch x := e.(type) {
	case *combinator.ParseletExpr:
		add(x.ID())
		return nullable[x.ID().Index()]
	case *combinator.SequenceExpr:
		for _, item := range x.Items() {
			if !leftmost(item, nullable, add) {
				return false
			}
		}
		return true
	case *combinator.ChoiceExpr:
		res := false
		for _, item := range x.Items() {
			if leftmost(item, nullable, add) {
				res = true
			}
		}
		return res
	case *combinator.OptionalExpr:
		leftmost(x.Item(), nullable, add)
		return true
	case *combinator.RepeatExpr:
		leftmost(x.Item(), nullable, add)
		return true
	default:
		return false
	}
}
