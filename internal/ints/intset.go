// Package ints implements a set of small non-negative integers.
package ints

import "math/bits"

const chunkBits = bits.UintSize

// Set is a bit set of non-negative integers. Zero value is an empty set.
type Set struct {
	chunks []uint
}

// NewSet creates a set containing items.
func NewSet(items ...int) *Set {
	s := &Set{}
	return s.Add(items...)
}

func (s *Set) grow(item int) {
	need := item/chunkBits + 1
	if need > len(s.chunks) {
		chunks := make([]uint, need)
		copy(chunks, s.chunks)
		s.chunks = chunks
	}
}

// Add puts items into the set. Negative items are ignored.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}

		s.grow(item)
		s.chunks[item/chunkBits] |= 1 << (uint(item) % chunkBits)
	}
	return s
}

// Remove deletes items from the set.
func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if s.Contains(item) {
			s.chunks[item/chunkBits] &^= 1 << (uint(item) % chunkBits)
		}
	}
	return s
}

// Contains reports whether item is in the set.
func (s *Set) Contains(item int) bool {
	if item < 0 || item/chunkBits >= len(s.chunks) {
		return false
	}

	return s.chunks[item/chunkBits]&(1<<(uint(item)%chunkBits)) != 0
}

// Len returns number of items in the set.
func (s *Set) Len() int {
	n := 0
	for _, c := range s.chunks {
		n += bits.OnesCount(c)
	}
	return n
}

// ToSlice returns set items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, c := range s.chunks {
		for c != 0 {
			result = append(result, i*chunkBits+bits.TrailingZeros(c))
			c &= c - 1
		}
	}
	return result
}
