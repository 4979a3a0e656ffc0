// Package symbol defines token and parselet identifiers and the registry allocating them.
package symbol

// ParseletKind selects parsing strategy applied to a parselet.
type ParseletKind int

const (
	// Sequence parselet tries its productions once, as an ordered choice.
	Sequence ParseletKind = iota
	// Pratt parselet parses prefix productions followed by a loop of infix and postfix productions.
	Pratt
)

func (k ParseletKind) String() string {
	switch k {
	case Sequence:
		return "sequence"
	case Pratt:
		return "pratt"
	default:
		return "unknown"
	}
}

// TokenID identifies a terminal symbol class. Zero value is not a valid identifier.
// TokenIDs are comparable and may be used as map keys.
type TokenID struct {
	index int
	name  string
	owner *Registry
}

// Index returns registration index of the token, starting with 0.
func (id TokenID) Index() int {
	return id.index
}

// Name returns token name.
func (id TokenID) Name() string {
	return id.name
}

// IsValid tells whether the identifier was allocated by some registry.
func (id TokenID) IsValid() bool {
	return id.owner != nil
}

func (id TokenID) String() string {
	return id.name
}

// ParseletID identifies a non-terminal. Zero value is not a valid identifier.
type ParseletID struct {
	index int
	name  string
	kind  ParseletKind
	owner *Registry
}

// Index returns registration index of the parselet, starting with 0.
func (id ParseletID) Index() int {
	return id.index
}

// Name returns parselet name.
func (id ParseletID) Name() string {
	return id.name
}

// Kind returns parsing strategy of the parselet.
func (id ParseletID) Kind() ParseletKind {
	return id.kind
}

// IsValid tells whether the identifier was allocated by some registry.
func (id ParseletID) IsValid() bool {
	return id.owner != nil
}

func (id ParseletID) String() string {
	return id.name
}

// Registry allocates identifiers. Tokens and parselets use separate namespaces.
// Registry is append-only and is not safe for concurrent modification.
type Registry struct {
	tokens        []TokenID
	parselets     []ParseletID
	tokenNames    map[string]int
	parseletNames map[string]int
}

func NewRegistry() *Registry {
	return &Registry{
		tokenNames:    make(map[string]int),
		parseletNames: make(map[string]int),
	}
}

// AddToken allocates new token identifier.
// Returns existing identifier and false if the name is already used by a token.
func (r *Registry) AddToken(name string) (TokenID, bool) {
	if i, has := r.tokenNames[name]; has {
		return r.tokens[i], false
	}

	id := TokenID{len(r.tokens), name, r}
	r.tokenNames[name] = id.index
	r.tokens = append(r.tokens, id)
	return id, true
}

// AddParselet allocates new parselet identifier.
// Returns existing identifier and false if the name is already used by a parselet.
func (r *Registry) AddParselet(name string, kind ParseletKind) (ParseletID, bool) {
	if i, has := r.parseletNames[name]; has {
		return r.parselets[i], false
	}

	id := ParseletID{len(r.parselets), name, kind, r}
	r.parseletNames[name] = id.index
	r.parselets = append(r.parselets, id)
	return id, true
}

// Token returns token identifier by name.
func (r *Registry) Token(name string) (TokenID, bool) {
	i, has := r.tokenNames[name]
	if !has {
		return TokenID{}, false
	}
	return r.tokens[i], true
}

// Parselet returns parselet identifier by name.
func (r *Registry) Parselet(name string) (ParseletID, bool) {
	i, has := r.parseletNames[name]
	if !has {
		return ParseletID{}, false
	}
	return r.parselets[i], true
}

// OwnsToken tells whether the identifier was allocated by this registry.
func (r *Registry) OwnsToken(id TokenID) bool {
	return id.owner == r && id.index < len(r.tokens)
}

// OwnsParselet tells whether the identifier was allocated by this registry.
func (r *Registry) OwnsParselet(id ParseletID) bool {
	return id.owner == r && id.index < len(r.parselets)
}

// Tokens returns all token identifiers in registration order.
func (r *Registry) Tokens() []TokenID {
	res := make([]TokenID, len(r.tokens))
	copy(res, r.tokens)
	return res
}

// Parselets returns all parselet identifiers in registration order.
func (r *Registry) Parselets() []ParseletID {
	res := make([]ParseletID, len(r.parselets))
	copy(res, r.parselets)
	return res
}

// TokenCount returns number of registered tokens.
func (r *Registry) TokenCount() int {
	return len(r.tokens)
}

// ParseletCount returns number of registered parselets.
func (r *Registry) ParseletCount() int {
	return len(r.parselets)
}
