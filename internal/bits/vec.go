// Package bits implements the packed bit-vector and clause representation
// the rest of the engine is built over: a Vec is a bit vector over []uint64
// words, and a Clause layers two Vecs (positive and negative literal
// occurrence) over one arena block.
//
// Grounded on original_source/src/data.rs's BitVec/Clause pair, adapted from
// Rust's word-at-a-time bit twiddling into the equivalent Go over
// arena.Block-backed []uint64 slices.
package bits

import "math/bits"

// W is the fixed word width. original_source/src/data.rs sizes its words to
// the host's native usize; we pin it at 64 regardless of host so behavior
// (and any fixtures) is host-independent.
const W = 64

// Vec is a bit vector over a caller-owned []uint64 backing slice, typically
// an arena.Block's Words. Vec never allocates; Words returns exactly what it
// was constructed with.
type Vec struct {
	words []uint64
}

// NewVec wraps an existing word slice as a Vec. The slice's length in bits
// (len(words)*W) is the vector's capacity; all operations below are
// defined only up to min(len, other len) words, matching data.rs's
// pervasive "iterate over min(self.len, rhs.len)" pattern.
func NewVec(words []uint64) Vec { return Vec{words: words} }

// Words returns the backing slice.
func (v Vec) Words() []uint64 { return v.words }

// Len reports the vector's capacity in bits.
func (v Vec) Len() int { return len(v.words) * W }

// Read reports whether bit index is set.
func (v Vec) Read(index int) bool {
	return v.words[index/W]&(uint64(1)<<uint(index%W)) != 0
}

// Set sets bit index.
func (v Vec) Set(index int) {
	v.words[index/W] |= uint64(1) << uint(index%W)
}

// Unset clears bit index.
func (v Vec) Unset(index int) {
	v.words[index/W] &^= uint64(1) << uint(index%W)
}

// Flip toggles bit index.
func (v Vec) Flip(index int) {
	v.words[index/W] ^= uint64(1) << uint(index%W)
}

// IsNull reports whether every bit is clear.
func (v Vec) IsNull() bool {
	for _, w := range v.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// CountOnes returns the number of set bits.
func (v Vec) CountOnes() int {
	n := 0
	for _, w := range v.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Or ORs rhs into v in place, over min(len(v), len(rhs)) words.
func (v Vec) Or(rhs Vec) {
	n := minLen(v.words, rhs.words)
	for i := 0; i < n; i++ {
		v.words[i] |= rhs.words[i]
	}
}

// And ANDs rhs into v in place.
func (v Vec) And(rhs Vec) {
	n := minLen(v.words, rhs.words)
	for i := 0; i < n; i++ {
		v.words[i] &= rhs.words[i]
	}
}

// AndNot clears from v every bit also set in rhs (v &^= rhs), the
// difference operation data.rs::BitVec::difference performs out of place;
// here done in place since every caller immediately discards the operand it
// doesn't need.
func (v Vec) AndNot(rhs Vec) {
	n := minLen(v.words, rhs.words)
	for i := 0; i < n; i++ {
		v.words[i] &^= rhs.words[i]
	}
}

// Xor toggles into v every bit set in rhs (v ^= rhs), over min(len(v),
// len(rhs)) words.
func (v Vec) Xor(rhs Vec) {
	n := minLen(v.words, rhs.words)
	for i := 0; i < n; i++ {
		v.words[i] ^= rhs.words[i]
	}
}

// Nor sets v to the bitwise NOR of v and rhs in place (v <- not(v or rhs)),
// over min(len(v), len(rhs)) words.
func (v Vec) Nor(rhs Vec) {
	n := minLen(v.words, rhs.words)
	for i := 0; i < n; i++ {
		v.words[i] = ^(v.words[i] | rhs.words[i])
	}
}

// Difference fills out (out = v &^ rhs) and returns it, mirroring
// data.rs::BitVec::difference's out-of-place form; out must be at least as
// long as min(len(v), len(rhs)).
func Difference(out, v, rhs Vec) Vec {
	n := minLen(v.words, rhs.words)
	if n > len(out.words) {
		n = len(out.words)
	}
	for i := 0; i < n; i++ {
		out.words[i] = v.words[i] &^ rhs.words[i]
	}
	return out
}

// SubsetOf reports whether every bit set in v is also set in rhs.
func (v Vec) SubsetOf(rhs Vec) bool {
	n := minLen(v.words, rhs.words)
	for i := 0; i < n; i++ {
		if v.words[i]&^rhs.words[i] != 0 {
			return false
		}
	}
	return true
}

// Disjoint reports whether v and rhs share no set bit.
func (v Vec) Disjoint(rhs Vec) bool {
	n := minLen(v.words, rhs.words)
	for i := 0; i < n; i++ {
		if v.words[i]&rhs.words[i] != 0 {
			return false
		}
	}
	return true
}

// FindShared returns the index of the lowest bit set in both v and rhs, or
// -1 if none, grounded on data.rs::BitVec::find_shared.
func (v Vec) FindShared(rhs Vec) int {
	n := minLen(v.words, rhs.words)
	for i := 0; i < n; i++ {
		if t := v.words[i] & rhs.words[i]; t != 0 {
			return i*W + bits.TrailingZeros64(t)
		}
	}
	return -1
}

// IterOnes calls f with the index of every set bit, ascending, stopping
// early if f returns false. Grounded on data.rs::IterOnes, which clears the
// lowest set bit each step (x &= x-1) rather than shifting, to run in time
// proportional to the number of set bits rather than the word width.
func (v Vec) IterOnes(f func(index int) bool) {
	for i, w := range v.words {
		for w != 0 {
			idx := i*W + bits.TrailingZeros64(w)
			if !f(idx) {
				return
			}
			w &= w - 1
		}
	}
}

func minLen(a, b []uint64) int {
	if len(a) < len(b) {
		return len(a)
	}
	return len(b)
}

