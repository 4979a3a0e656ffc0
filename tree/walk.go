package tree

// WalkMode defines the order of children visiting.
type WalkMode int

const (
	WalkLtr WalkMode = iota
	WalkRtl
)

// WalkerFlags returned by a visitor control the walk.
type WalkerFlags int

const (
	// WalkerStop stops walking.
	WalkerStop WalkerFlags = 1 << iota
	// WalkerSkipChildren does not visit children of current element.
	WalkerSkipChildren
	// WalkerSkipSiblings does not visit remaining siblings of current element.
	WalkerSkipSiblings
)

// WalkStat describes visited element: its depth relative to the walk root
// and its index among siblings.
type WalkStat struct {
	Element Element
	Level   int
	Index   int
}

type Visitor func(stat WalkStat) WalkerFlags

// Walk visits e and its descendants depth-first, parents before children.
func Walk(e Element, mode WalkMode, visitor Visitor) {
	if e != nil {
		walk(WalkStat{Element: e}, mode == WalkRtl, visitor)
	}
}

func walk(stat WalkStat, rtl bool, v Visitor) WalkerFlags {
	flags := v(stat)
	if flags&(WalkerStop|WalkerSkipChildren) != 0 {
		return flags
	}

	cs := Children(stat.Element)
	for i := range cs {
		j := i
		if rtl {
			j = len(cs) - 1 - i
		}
		f := walk(WalkStat{cs[j], stat.Level + 1, j}, rtl, v)
		if f&WalkerStop != 0 {
			return WalkerStop
		}
		if f&WalkerSkipSiblings != 0 {
			break
		}
	}
	return flags
}

type iteratorFrame struct {
	elems []Element
	index int
}

// Iterator visits elements in the same order as Walk, but is controlled by caller.
type Iterator struct {
	rtl     bool
	root    Element
	started bool
	stack   []iteratorFrame
}

func NewIterator(root Element, mode WalkMode) *Iterator {
	return &Iterator{rtl: mode == WalkRtl, root: root}
}

// Next is the same as Step(0).
func (it *Iterator) Next() Element {
	return it.Step(0)
}

// Step returns the next element. Flags are applied to the element returned by previous call.
// Returns nil when there are no more elements.
func (it *Iterator) Step(flags WalkerFlags) Element {
	if !it.started {
		it.started = true
		if it.root == nil || flags&WalkerStop != 0 {
			return nil
		}
		it.stack = []iteratorFrame{{[]Element{it.root}, 0}}
		return it.root
	}

	if len(it.stack) == 0 {
		return nil
	}
	if flags&WalkerStop != 0 {
		it.stack = nil
		return nil
	}

	top := &it.stack[len(it.stack)-1]
	current := top.elems[top.index]
	if flags&WalkerSkipSiblings != 0 {
		top.index = len(top.elems)
	}

	if flags&WalkerSkipChildren == 0 {
		cs := Children(current)
		if len(cs) > 0 {
			it.stack = append(it.stack, iteratorFrame{it.order(cs), 0})
			return cs[it.childIndex(0, len(cs))]
		}
	}

	for len(it.stack) > 0 {
		top = &it.stack[len(it.stack)-1]
		top.index++
		if top.index < len(top.elems) {
			return top.elems[top.index]
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return nil
}

func (it *Iterator) order(cs []Element) []Element {
	if !it.rtl {
		return cs
	}
	res := make([]Element, len(cs))
	for i, c := range cs {
		res[len(cs)-1-i] = c
	}
	return res
}

func (it *Iterator) childIndex(i, total int) int {
	if it.rtl {
		return total - 1 - i
	}
	return i
}
