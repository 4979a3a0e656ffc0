/*
Package combinator defines immutable expressions describing production bodies.

An expression is built without a grammar: it refers to token and parselet identifiers
and to literal texts (implicit tokens) which are resolved when the expression is added
to a grammar. The set of expression types is closed; use a type switch over
*TokenExpr, *ParseletExpr, *ImplicitExpr, *SequenceExpr, *ChoiceExpr, *OptionalExpr,
and *RepeatExpr to inspect an expression.
*/
package combinator

import (
	"strconv"
	"strings"

	"github.com/ava12/parselet/symbol"
)

// Expr is a production body element.
type Expr interface {
	// String returns expression in notation syntax.
	String() string
	expr()
}

// TokenExpr matches a single token of given type.
type TokenExpr struct {
	id symbol.TokenID
}

// ParseletExpr matches a parselet invocation.
type ParseletExpr struct {
	id          symbol.ParseletID
	priority    int
	hasPriority bool
}

// ImplicitExpr matches a single token with exact text.
type ImplicitExpr struct {
	literal string
}

// SequenceExpr matches all items in order.
type SequenceExpr struct {
	items []Expr
}

// ChoiceExpr matches the first matching item.
type ChoiceExpr struct {
	items []Expr
}

// OptionalExpr matches its item zero or one time.
type OptionalExpr struct {
	item Expr
}

// RepeatExpr matches its item zero or more times.
type RepeatExpr struct {
	item Expr
}

func (*TokenExpr) expr()    {}
func (*ParseletExpr) expr() {}
func (*ImplicitExpr) expr() {}
func (*SequenceExpr) expr() {}
func (*ChoiceExpr) expr()   {}
func (*OptionalExpr) expr() {}
func (*RepeatExpr) expr()   {}

// Token creates token reference.
func Token(id symbol.TokenID) Expr {
	return &TokenExpr{id}
}

// Parselet creates parselet reference using default binding power.
func Parselet(id symbol.ParseletID) Expr {
	return &ParseletExpr{id: id}
}

// ParseletAt creates parselet reference with explicit minimum binding power.
func ParseletAt(id symbol.ParseletID, priority int) Expr {
	return &ParseletExpr{id, priority, true}
}

// Implicit creates reference to a token having exactly given text.
func Implicit(literal string) Expr {
	return &ImplicitExpr{literal}
}

// Sequence creates sequence of items. Nested sequences are flattened,
// a sequence of a single item is the item itself.
func Sequence(items ...Expr) Expr {
	flat := make([]Expr, 0, len(items))
	for _, item := range items {
		if s, ok := item.(*SequenceExpr); ok {
			flat = append(flat, s.items...)
		} else if item != nil {
			flat = append(flat, item)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &SequenceExpr{flat}
}

// Choice creates ordered choice of items. Nested choices are flattened,
// a choice of a single item is the item itself.
func Choice(items ...Expr) Expr {
	flat := make([]Expr, 0, len(items))
	for _, item := range items {
		if c, ok := item.(*ChoiceExpr); ok {
			flat = append(flat, c.items...)
		} else if item != nil {
			flat = append(flat, item)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &ChoiceExpr{flat}
}

// Optional creates optional sequence of items.
func Optional(items ...Expr) Expr {
	return &OptionalExpr{Sequence(items...)}
}

// Repeat creates repeated sequence of items.
func Repeat(items ...Expr) Expr {
	return &RepeatExpr{Sequence(items...)}
}

func (e *TokenExpr) ID() symbol.TokenID {
	return e.id
}

func (e *TokenExpr) String() string {
	return e.id.Name()
}

func (e *ParseletExpr) ID() symbol.ParseletID {
	return e.id
}

// Priority returns explicit binding power and true or 0 and false if default is used.
func (e *ParseletExpr) Priority() (int, bool) {
	return e.priority, e.hasPriority
}

func (e *ParseletExpr) String() string {
	if e.hasPriority {
		return e.id.Name() + "<" + strconv.Itoa(e.priority) + ">"
	}
	return e.id.Name()
}

func (e *ImplicitExpr) Literal() string {
	return e.literal
}

func (e *ImplicitExpr) String() string {
	if strings.Contains(e.literal, "'") {
		return strconv.Quote(e.literal)
	}
	return "'" + e.literal + "'"
}

// Items returns a copy of sequence items.
func (e *SequenceExpr) Items() []Expr {
	return append([]Expr(nil), e.items...)
}

// Len returns number of sequence items.
func (e *SequenceExpr) Len() int {
	return len(e.items)
}

// Item returns i-th item, negative indexes count from the end.
func (e *SequenceExpr) Item(i int) Expr {
	if i < 0 {
		i += len(e.items)
	}
	if i < 0 || i >= len(e.items) {
		return nil
	}
	return e.items[i]
}

func (e *SequenceExpr) String() string {
	parts := make([]string, len(e.items))
	for i, item := range e.items {
		if _, isChoice := item.(*ChoiceExpr); isChoice {
			parts[i] = "(" + item.String() + ")"
		} else {
			parts[i] = item.String()
		}
	}
	return strings.Join(parts, " ")
}

// Items returns a copy of choice alternatives.
func (e *ChoiceExpr) Items() []Expr {
	return append([]Expr(nil), e.items...)
}

func (e *ChoiceExpr) String() string {
	parts := make([]string, len(e.items))
	for i, item := range e.items {
		parts[i] = item.String()
	}
	return strings.Join(parts, " | ")
}

func (e *OptionalExpr) Item() Expr {
	return e.item
}

func (e *OptionalExpr) String() string {
	return "[" + e.item.String() + "]"
}

func (e *RepeatExpr) Item() Expr {
	return e.item
}

func (e *RepeatExpr) String() string {
	return "{" + e.item.String() + "}"
}

// Items returns items of a sequence or a single-element slice for any other expression.
func Items(e Expr) []Expr {
	if s, ok := e.(*SequenceExpr); ok {
		return s.Items()
	}
	if e == nil {
		return nil
	}
	return []Expr{e}
}

// Visitor is called for each visited expression; returning false skips nested expressions.
type Visitor func(e Expr) bool

// Walk visits e and all nested expressions in depth-first order.
func Walk(e Expr, v Visitor) {
	if e == nil || !v(e) {
		return
	}

	switch x := e.(type) {
	case *SequenceExpr:
		for _, item := range x.items {
			Walk(item, v)
		}
	case *ChoiceExpr:
		for _, item := range x.items {
			Walk(item, v)
		}
	case *OptionalExpr:
		Walk(x.item, v)
	case *RepeatExpr:
		Walk(x.item, v)
	}
}

// Implicits returns literals of all implicit tokens used in e, in order of first appearance.
func Implicits(e Expr) []string {
	var res []string
	seen := make(map[string]bool)
	Walk(e, func(e Expr) bool {
		if ie, ok := e.(*ImplicitExpr); ok && !seen[ie.literal] {
			seen[ie.literal] = true
			res = append(res, ie.literal)
		}
		return true
	})
	return res
}

// Nullable tells whether e may match empty input, ignoring parselet references.
func Nullable(e Expr) bool {
	return NullableWith(e, func(symbol.ParseletID) bool {
		return false
	})
}

// NullableWith tells whether e may match empty input,
// parselet tells whether a referenced parselet may match empty input.
func NullableWith(e Expr, parselet func(id symbol.ParseletID) bool) bool {
	switch x := e.(type) {
	case *OptionalExpr, *RepeatExpr:
		return true
	case *ParseletExpr:
		return parselet(x.id)
	case *SequenceExpr:
		for _, item := range x.items {
			if !NullableWith(item, parselet) {
				return false
			}
		}
		return true
	case *ChoiceExpr:
		for _, item := range x.items {
			if NullableWith(item, parselet) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Rebind returns a copy of e with token and parselet references replaced.
// Binding powers of parselet references are kept.
func Rebind(e Expr, token func(symbol.TokenID) symbol.TokenID, parselet func(symbol.ParseletID) symbol.ParseletID) Expr {
	rebindAll := func(items []Expr) []Expr {
		res := make([]Expr, len(items))
		for i, item := range items {
			res[i] = Rebind(item, token, parselet)
		}
		return res
	}

	switch x := e.(type) {
	case *TokenExpr:
		return &TokenExpr{token(x.id)}
	case *ParseletExpr:
		return &ParseletExpr{parselet(x.id), x.priority, x.hasPriority}
	case *SequenceExpr:
		return &SequenceExpr{rebindAll(x.items)}
	case *ChoiceExpr:
		return &ChoiceExpr{rebindAll(x.items)}
	case *OptionalExpr:
		return &OptionalExpr{Rebind(x.item, token, parselet)}
	case *RepeatExpr:
		return &RepeatExpr{Rebind(x.item, token, parselet)}
	default:
		return e
	}
}
