// Package clauseset implements the sorted spine of clause pointers the
// inprocessing engine kernelizes over: a Set keeps its clauses ordered
// ascending by width (bits.Clause.CountOnes) so that the narrowest, most
// constraining clauses are always found first.
//
// Grounded on original_source/src/utils2.rs's Ascent/Descent/ExtractIn/
// RetainFrom traits. Ascend and Descend find the new position with a binary
// search over the whole suffix or prefix beside k (not an exponential
// search outward from k), then move the clause with one slice shift rather
// than adjacent swaps.
package clauseset

import "github.com/gopherlabs/kernelsat/internal/bits"

// Set is a spine of clause pointers kept sorted ascending by width.
type Set struct {
	clauses []*bits.Clause
}

// New returns an empty Set.
func New() *Set { return &Set{} }

// Len reports the number of clauses.
func (s *Set) Len() int { return len(s.clauses) }

// At returns the clause at index i.
func (s *Set) At(i int) *bits.Clause { return s.clauses[i] }

// Clauses exposes the backing slice read-only-by-convention, for callers
// (like the engine's decompose) that need to range over every clause.
func (s *Set) Clauses() []*bits.Clause { return s.clauses }

// Append inserts c at the end without regard to sort order; callers that
// need the invariant restored call SortStable afterward (used for the
// initial bulk load before Prepare's first sort).
func (s *Set) Append(c *bits.Clause) {
	s.clauses = append(s.clauses, c)
}

// IndexOf returns the current index of c by pointer identity, or -1 if c is
// no longer in the set. Used by the engine's recents bookkeeping (see
// DESIGN.md) to recover a clause's position without tracking raw indices
// through every repositioning operation.
func (s *Set) IndexOf(c *bits.Clause) int {
	for i, x := range s.clauses {
		if x == c {
			return i
		}
	}
	return -1
}

// PopBack removes and returns the last clause, or nil if the set is empty.
// Used by kernelize's long-clause removal, which only ever drops from the
// tail since the spine is sorted ascending by width.
func (s *Set) PopBack() *bits.Clause {
	n := len(s.clauses)
	if n == 0 {
		return nil
	}
	c := s.clauses[n-1]
	s.clauses = s.clauses[:n-1]
	return c
}

// SortStable restores full ascending-by-width order via a stable sort; used
// once, by Prepare, before the incremental Ascend/Descend machinery takes
// over.
func (s *Set) SortStable() {
	stableSortByWidth(s.clauses)
}

func stableSortByWidth(c []*bits.Clause) {
	// Insertion sort: Prepare's initial clause count is small relative to
	// kernelization's own workload, and a stable, dependency-free sort
	// avoids importing sort.Slice's less-predictable (non-stable, for
	// small slices insertion-sorted anyway) behavior for what is already
	// an O(n) amortized pass in practice (most DIMACS inputs arrive
	// already close to width-sorted).
	for i := 1; i < len(c); i++ {
		v := c[i]
		j := i - 1
		for j >= 0 && c[j].CountOnes() > v.CountOnes() {
			c[j+1] = c[j]
			j--
		}
		c[j+1] = v
	}
}

// binarySearchForInsert returns the first index in c (ascending by width)
// where item could be inserted and keep the slice sorted, grounded on
// utils2.rs's BinSearchInsert::binary_search_for_insert.
func binarySearchForInsert(c []*bits.Clause, width int) int {
	lo, hi := 0, len(c)
	for lo != hi {
		mid := lo + (hi-lo)/2
		if c[mid].CountOnes() < width {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Ascend repositions the clause at index k, whose width has grown, forward
// until the ascending-by-width invariant is restored, and returns its new
// index. Grounded on utils2.rs's Ascent::ascend.
func (s *Set) Ascend(k int) int {
	c := s.clauses
	width := c[k].CountOnes()
	rel := binarySearchForInsert(c[k+1:], width)
	idx := k + 1 + rel
	if idx == k+1 {
		return k
	}
	v := c[k]
	copy(c[k:idx-1], c[k+1:idx])
	c[idx-1] = v
	return idx - 1
}

// Descend repositions the clause at index k, whose width has shrunk,
// backward until the ascending-by-width invariant is restored, and returns
// its new index. Grounded on utils2.rs's Descent::descend.
func (s *Set) Descend(k int) int {
	c := s.clauses
	width := c[k].CountOnes()
	idx := binarySearchForInsert(c[:k], width)
	if idx == k {
		return k
	}
	v := c[k]
	copy(c[idx+1:k+1], c[idx:k])
	c[idx] = v
	return idx
}

// RetainFrom removes every clause at or after start for which keep returns
// false, compacting the tail in place and preserving order. Grounded on
// utils2.rs's RetainFrom::retain_from (an in-place unsafe ptr-copy loop in
// Rust; an ordinary slice compaction here, since Go's slice aliasing rules
// already give the same safety the Rust version needs unsafe code for).
func (s *Set) RetainFrom(start int, keep func(*bits.Clause) bool) {
	c := s.clauses
	deleted := 0
	for i := start; i < len(c); i++ {
		if keep(c[i]) {
			c[i-deleted] = c[i]
		} else {
			deleted++
		}
	}
	s.clauses = c[:len(c)-deleted]
}

// ExtractIn moves every clause for which match returns true out of s and
// into out, compacting s in place. Grounded on utils2.rs's
// ExtractIn::extract_in, used by the engine's component decomposition to
// peel off every clause touching a growing variable footprint.
func (s *Set) ExtractIn(out *Set, match func(*bits.Clause) bool) {
	c := s.clauses
	deleted := 0
	for i := 0; i < len(c); i++ {
		if match(c[i]) {
			out.clauses = append(out.clauses, c[i])
			deleted++
		} else {
			c[i-deleted] = c[i]
		}
	}
	s.clauses = c[:len(c)-deleted]
}
