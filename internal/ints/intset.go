// Package ints implements a bit set of small non-negative integers (symbol indexes).
package ints

import "math/bits"

const IntSizeShift = 5 + (^uint(0) >> 32 & 1)
const IntSize = 1 << IntSizeShift

// Set is a growable bit set. Zero value is an empty set.
type Set struct {
	chunks []uint
}

func NewSet(items ...int) *Set {
	return (&Set{}).Add(items...)
}

func chunkIndex(item int) int {
	return item >> IntSizeShift
}

func bitMask(item int) uint {
	return 1 << (uint(item) & (IntSize - 1))
}

func (s *Set) allocate(item int) {
	if need := chunkIndex(item) + 1; need > len(s.chunks) {
		chunks := make([]uint, need)
		copy(chunks, s.chunks)
		s.chunks = chunks
	}
}

// Add adds items to the set, negative items are ignored.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}
		s.allocate(item)
		s.chunks[chunkIndex(item)] |= bitMask(item)
	}
	return s
}

func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if s.Contains(item) {
			s.chunks[chunkIndex(item)] &^= bitMask(item)
		}
	}
	return s
}

func (s *Set) Contains(item int) bool {
	i := chunkIndex(item)
	return item >= 0 && i < len(s.chunks) && s.chunks[i]&bitMask(item) != 0
}

func (s *Set) Len() int {
	res := 0
	for _, chunk := range s.chunks {
		res += bits.OnesCount(chunk)
	}
	return res
}

func (s *Set) IsEmpty() bool {
	for _, chunk := range s.chunks {
		if chunk != 0 {
			return false
		}
	}
	return true
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	res := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		for chunk != 0 {
			bit := bits.TrailingZeros(chunk)
			res = append(res, i<<IntSizeShift+bit)
			chunk &= chunk - 1
		}
	}
	return res
}

func (s *Set) Copy() *Set {
	chunks := make([]uint, len(s.chunks))
	copy(chunks, s.chunks)
	return &Set{chunks}
}

func (s *Set) IsEqual(t *Set) bool {
	long, short := s.chunks, t.chunks
	if len(long) < len(short) {
		long, short = short, long
	}
	for i, chunk := range long {
		if i < len(short) {
			if chunk != short[i] {
				return false
			}
		} else if chunk != 0 {
			return false
		}
	}
	return true
}

// Union adds all items of t to s. Reports whether s has changed.
func (s *Set) Union(t *Set) bool {
	changed := false
	if len(t.chunks) > len(s.chunks) {
		s.allocate((len(t.chunks) << IntSizeShift) - 1)
	}
	for i, chunk := range t.chunks {
		if s.chunks[i]|chunk != s.chunks[i] {
			s.chunks[i] |= chunk
			changed = true
		}
	}
	return changed
}
