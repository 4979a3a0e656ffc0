package tree

// Filter tells whether an element must be selected.
type Filter func(e Element) bool

// Extractor returns elements related to given one.
type Extractor func(e Element) []Element

// Selector is a chain of extractors applied successively to a list of elements.
// Resulting list contains no duplicates and keeps the order of first appearance.
type Selector struct {
	extractors []Extractor
}

func NewSelector() *Selector {
	return &Selector{}
}

// Apply runs the chain for each input element and collects results.
func (s *Selector) Apply(input ...Element) []Element {
	res := make([]Element, 0)
	index := make(map[Element]bool)

	for i, e := range input {
		if e == nil {
			continue
		}

		es := input[i : i+1]
		if len(s.extractors) > 0 {
			es = extract(es, s.extractors)
		}

		for _, x := range es {
			if !index[x] {
				index[x] = true
				res = append(res, x)
			}
		}
	}

	return res
}

func extract(es []Element, chain []Extractor) []Element {
	res := make([]Element, 0)
	x := chain[0]
	chain = chain[1:]
	for _, e := range es {
		if len(chain) > 0 {
			res = append(res, extract(x(e), chain)...)
		} else {
			res = append(res, x(e)...)
		}
	}
	return res
}

// Use appends an extractor to the chain.
func (s *Selector) Use(x Extractor) *Selector {
	if x != nil {
		s.extractors = append(s.extractors, x)
	}
	return s
}

// Filter keeps only elements accepted by f.
func (s *Selector) Filter(f Filter) *Selector {
	return s.Use(func(e Element) []Element {
		if f(e) {
			return []Element{e}
		}
		return nil
	})
}

// Search selects the element and its descendants accepted by f.
// Descendants of selected elements are searched only if deep is set.
func (s *Selector) Search(f Filter, deep bool) *Selector {
	return s.Use(func(e Element) []Element {
		res := make([]Element, 0)
		Walk(e, WalkLtr, func(stat WalkStat) WalkerFlags {
			if !f(stat.Element) {
				return 0
			}
			res = append(res, stat.Element)
			if deep {
				return 0
			}
			return WalkerSkipChildren
		})
		return res
	})
}

// Children replaces each element with its child elements.
func (s *Selector) Children() *Selector {
	return s.Use(Children)
}

func IsNot(f Filter) Filter {
	return func(e Element) bool {
		return !f(e)
	}
}

func IsAny(fs ...Filter) Filter {
	return func(e Element) bool {
		for _, f := range fs {
			if f(e) {
				return true
			}
		}
		return false
	}
}

func IsAll(fs ...Filter) Filter {
	return func(e Element) bool {
		for _, f := range fs {
			if !f(e) {
				return false
			}
		}
		return true
	}
}

// IsA accepts nodes and tokens having one of type names.
func IsA(names ...string) Filter {
	return func(e Element) bool {
		tn := e.TypeName()
		for _, name := range names {
			if tn == name {
				return true
			}
		}
		return false
	}
}

// IsALiteral accepts tokens having one of texts.
func IsALiteral(texts ...string) Filter {
	return func(e Element) bool {
		t, ok := AsToken(e)
		if !ok {
			return false
		}
		for _, text := range texts {
			if t.Text() == text {
				return true
			}
		}
		return false
	}
}

// IsNode accepts nodes only.
func IsNode(e Element) bool {
	return e.IsNode()
}

// Any returns the result of the first extractor returning non-empty list.
func Any(xs ...Extractor) Extractor {
	return func(e Element) (res []Element) {
		for _, x := range xs {
			res = x(e)
			if len(res) > 0 {
				break
			}
		}
		return
	}
}

// All concatenates results of all extractors.
func All(xs ...Extractor) Extractor {
	return func(e Element) (res []Element) {
		for _, x := range xs {
			res = append(res, x(e)...)
		}
		return
	}
}

// NthChildren extracts children by indexes, negative indexes count from the end.
func NthChildren(indexes ...int) Extractor {
	return func(e Element) []Element {
		res := make([]Element, 0)
		for _, i := range indexes {
			if c := NthChild(e, i); c != nil {
				res = append(res, c)
			}
		}
		return res
	}
}
