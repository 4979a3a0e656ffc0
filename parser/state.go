package parser

import (
	"context"

	"go.uber.org/zap"

	"github.com/ava12/parselet/combinator"
	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/lexer"
	"github.com/ava12/parselet/source"
	"github.com/ava12/parselet/symbol"
	"github.com/ava12/parselet/tree"
)

type memoKey struct {
	pos, parselet, power int
}

type memoEntry struct {
	node *tree.Node
	end  int
	ok   bool
}

// state holds data of a single parse call. Positions are indexes in the list of significant tokens,
// position len(sig) is the end of input.
type state struct {
	ctx     context.Context
	grammar *grammar.Grammar
	logger  *zap.Logger
	src     *source.Source
	tokens  []*lexer.Token
	sig     []int
	memo    map[memoKey]memoEntry
	stack   frameStack
	err     error

	failPos   int
	expected  []string
	seen      map[string]bool
	failStack []string
}

func newState(ctx context.Context, p *Parser, src *source.Source, tokens []*lexer.Token) *state {
	s := &state{
		ctx:     ctx,
		grammar: p.grammar,
		logger:  p.logger,
		src:     src,
		tokens:  tokens,
		memo:    make(map[memoKey]memoEntry),
		failPos: -1,
	}
	for i, tok := range tokens {
		if !tok.IsTrivia() {
			s.sig = append(s.sig, i)
		}
	}
	return s
}

func (s *state) run(start symbol.ParseletID) (*tree.Node, error) {
	node, end, ok := s.parselet(start, 0, grammar.LowestPriority)
	if s.err != nil {
		return nil, s.err
	}

	if ok && end == len(s.sig) {
		return s.root(node), nil
	}

	if ok {
		s.expect(end, lexer.EoiTokenName)
	}
	return nil, s.syntaxError()
}

// root returns a copy of node having trailing trivia tokens appended.
func (s *state) root(node *tree.Node) *tree.Node {
	from := 0
	if len(s.sig) > 0 {
		from = s.sig[len(s.sig)-1] + 1
	}
	if from >= len(s.tokens) {
		return node
	}

	children := make([]tree.Element, 0, node.Len()+len(s.tokens)-from)
	children = append(children, node.Children()...)
	for _, tok := range s.tokens[from:] {
		children = append(children, tok)
	}
	return tree.NewNode(node.Parselet(), node.Production(), node.Start(), children)
}

// offset returns source offset used as a start of empty node at position pos.
func (s *state) offset(pos int) int {
	if pos > 0 {
		return s.tokens[s.sig[pos-1]].End()
	}
	if len(s.tokens) > 0 {
		return s.tokens[0].Start()
	}
	return 0
}

func (s *state) parselet(id symbol.ParseletID, pos, power int) (*tree.Node, int, bool) {
	if id.Kind() != symbol.Pratt {
		power = grammar.LowestPriority
	}

	key := memoKey{pos, id.Index(), power}
	if r, found := s.memo[key]; found {
		return r.node, r.end, r.ok
	}

	if s.err != nil {
		return nil, pos, false
	}
	if e := s.ctx.Err(); e != nil {
		s.err = e
		return nil, pos, false
	}

	// a recursive call at the same position fails instead of looping
	s.memo[key] = memoEntry{end: pos}
	s.stack.Push(frame{id, pos})
	node, end, ok := s.expand(id, pos, power)
	s.stack.Drop()
	s.memo[key] = memoEntry{node, end, ok}

	if ce := s.logger.Check(zap.DebugLevel, "parselet"); ce != nil {
		ce.Write(
			zap.String("parselet", id.Name()),
			zap.Int("pos", pos),
			zap.Int("power", power),
			zap.Bool("ok", ok),
			zap.Int("end", end),
		)
	}
	return node, end, ok
}

func (s *state) expand(id symbol.ParseletID, pos, power int) (*tree.Node, int, bool) {
	table := s.grammar.Table(id)
	var left *tree.Node
	end := pos

	for _, p := range table.Prefixes() {
		if children, e, ok := s.production(p, p.Items(), pos, nil); ok {
			left, end = tree.NewNode(id, p, s.offset(pos), children), e
			break
		}
	}

	if left == nil {
		return nil, pos, false
	}
	if id.Kind() != symbol.Pratt {
		return left, end, true
	}

	for {
		found := false
		for _, p := range table.Suffixes() {
			if p.Priority() <= power {
				break
			}

			if children, e, ok := s.production(p, p.Items()[1:], end, left); ok {
				left, end, found = tree.NewNode(id, p, left.Start(), children), e, true
				break
			}
		}

		if !found {
			return left, end, true
		}
	}
}

func trailingPower(p *grammar.Production) int {
	if p.Role() == grammar.Infix && p.Assoc() == grammar.RightAssoc {
		return p.Priority() - 1
	}
	return p.Priority()
}

func isTrailingSelf(p *grammar.Production, x combinator.Expr) bool {
	if p.Role() == grammar.Postfix || p.Parselet().Kind() != symbol.Pratt {
		return false
	}

	pe, ok := x.(*combinator.ParseletExpr)
	if !ok || pe.ID() != p.Parselet() {
		return false
	}

	_, explicit := pe.Priority()
	return !explicit
}

// production matches items at pos. Left operand, if not nil, becomes the first child.
func (s *state) production(p *grammar.Production, items []combinator.Expr, pos int, left *tree.Node) ([]tree.Element, int, bool) {
	out := make([]tree.Element, 0, len(items)+1)
	if left != nil {
		out = append(out, left)
	}

	ok := true
	last := len(items) - 1
	for i, x := range items {
		if i == last && isTrailingSelf(p, x) {
			var node *tree.Node
			node, pos, ok = s.parselet(p.Parselet(), pos, trailingPower(p))
			if ok {
				out = append(out, node)
			}
		} else {
			out, pos, ok = s.match(x, pos, out)
		}

		if !ok {
			return nil, pos, false
		}
	}

	return out, pos, true
}

// match appends matched elements to out. On failure returns out truncated to its original length.
func (s *state) match(x combinator.Expr, pos int, out []tree.Element) ([]tree.Element, int, bool) {
	switch x := x.(type) {
	case *combinator.TokenExpr:
		return s.token(x.ID(), "", false, x.ID().Name(), pos, out)

	case *combinator.ImplicitExpr:
		id, _ := s.grammar.Implicit(x.Literal())
		return s.token(id, x.Literal(), true, x.String(), pos, out)

	case *combinator.ParseletExpr:
		power := grammar.LowestPriority
		if pr, explicit := x.Priority(); explicit {
			power = pr
		}
		node, end, ok := s.parselet(x.ID(), pos, power)
		if !ok {
			return out, pos, false
		}
		return append(out, node), end, true

	case *combinator.SequenceExpr:
		n, start := len(out), pos
		ok := true
		for _, item := range x.Items() {
			if out, pos, ok = s.match(item, pos, out); !ok {
				return out[:n], start, false
			}
		}
		return out, pos, true

	case *combinator.ChoiceExpr:
		n := len(out)
		for _, item := range x.Items() {
			if res, end, ok := s.match(item, pos, out[:n]); ok {
				return res, end, true
			}
		}
		return out[:n], pos, false

	case *combinator.OptionalExpr:
		res, end, _ := s.match(x.Item(), pos, out)
		return res, end, true

	case *combinator.RepeatExpr:
		for {
			res, end, ok := s.match(x.Item(), pos, out)
			out = res
			if !ok || end == pos {
				return out, pos, true
			}
			pos = end
		}

	default:
		return out, pos, false
	}
}

// token matches a single significant token; leading trivia tokens are appended before it.
func (s *state) token(id symbol.TokenID, literal string, checkLiteral bool, name string, pos int, out []tree.Element) ([]tree.Element, int, bool) {
	if pos < len(s.sig) {
		tok := s.tokens[s.sig[pos]]
		if tok.Type() == id && (!checkLiteral || tok.Text() == literal) {
			from := 0
			if pos > 0 {
				from = s.sig[pos-1] + 1
			}
			for _, t := range s.tokens[from : s.sig[pos]+1] {
				out = append(out, t)
			}
			return out, pos + 1, true
		}
	}

	s.expect(pos, name)
	return out, pos, false
}

// expect records a failure to match named token at pos. Only the farthest failures are kept.
func (s *state) expect(pos int, name string) {
	if pos < s.failPos {
		return
	}

	if pos > s.failPos {
		s.failPos = pos
		s.expected = nil
		s.seen = make(map[string]bool)
		s.failStack = s.stack.Names()
	}

	if !s.seen[name] {
		s.seen[name] = true
		s.expected = append(s.expected, name)
	}
}

func (s *state) syntaxError() *SyntaxError {
	pos := s.failPos
	if pos < 0 {
		pos = 0
	}

	if pos < len(s.sig) {
		return unexpectedTokenError(s.tokens[s.sig[pos]], s.expected, s.failStack)
	}

	src := s.src
	end := 0
	if len(s.tokens) > 0 {
		last := s.tokens[len(s.tokens)-1]
		end = last.End()
		if src == nil {
			src = last.Source()
		}
	}
	return unexpectedEoiError(source.NewPos(src, end), s.expected, s.failStack)
}
