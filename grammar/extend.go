package grammar

import (
	"go.uber.org/zap"

	"github.com/ava12/parselet/combinator"
	"github.com/ava12/parselet/symbol"
)

// Extend merges a built grammar into the builder, matching tokens and parselets by name.
// Missing tokens and parselets are registered. Patterns, trivia marks, bracket pairs
// and productions are added unless the builder already has equal ones.
// A parselet registered in both grammars with different kinds is a DuplicateNameError,
// the builder is left unchanged in that case.
func (b *Builder) Extend(g *Grammar) error {
	if b.frozen {
		return frozenError()
	}

	for _, id := range g.Parselets() {
		if own, has := b.registry.Parselet(id.Name()); has && own.Kind() != id.Kind() {
			return parseletKindError(id.Name(), own.Kind())
		}
	}

	tokens := make(map[symbol.TokenID]symbol.TokenID)
	for _, id := range g.Tokens() {
		own, has := b.registry.Token(id.Name())
		if !has {
			own, _ = b.registry.AddToken(id.Name())
		}
		tokens[id] = own
	}
	mapToken := func(id symbol.TokenID) symbol.TokenID {
		return tokens[id]
	}

	parselets := make(map[symbol.ParseletID]symbol.ParseletID)
	for _, id := range g.Parselets() {
		own, has := b.registry.Parselet(id.Name())
		if !has {
			own, _ = b.registry.AddParselet(id.Name(), id.Kind())
		}
		parselets[id] = own
	}
	mapParselet := func(id symbol.ParseletID) symbol.ParseletID {
		return parselets[id]
	}

	for _, p := range g.Patterns() {
		own := tokens[p.token]
		if !b.hasPattern(own, p.source) {
			b.patterns = append(b.patterns, &Pattern{PatternID(len(b.patterns)), own, p.source, p.re})
		}
	}

	for _, id := range g.Tokens() {
		if g.IsTrivia(id) {
			b.trivia[tokens[id]] = true
		}
	}

	for open, closing := range g.closing {
		b.closing[tokens[open]] = tokens[closing]
		b.opening[tokens[closing]] = tokens[open]
	}

	existing := make(map[string]bool)
	for _, p := range b.productions {
		existing[p.String()] = true
	}

	added := 0
	for _, p := range g.Productions() {
		if existing[p.String()] {
			continue
		}

		q := *p
		q.id = ProductionID(len(b.productions))
		q.parselet = parselets[p.parselet]
		q.body = combinator.Rebind(p.body, mapToken, mapParselet)
		q.items = combinator.Items(q.body)
		b.productions = append(b.productions, &q)
		existing[q.String()] = true
		added++
	}

	b.logger.Debug("grammar merged",
		zap.Int("tokens", len(tokens)),
		zap.Int("parselets", len(parselets)),
		zap.Int("productions", added),
	)
	return nil
}

func (b *Builder) hasPattern(id symbol.TokenID, source string) bool {
	for _, p := range b.patterns {
		if p.token == id && p.source == source {
			return true
		}
	}
	return false
}
