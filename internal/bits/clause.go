package bits

import (
	"math/bits"

	"github.com/gopherlabs/kernelsat/internal/arena"
)

// Lit is a signed literal in the public convention: positive for the
// variable asserted true, negative for false, 1-indexed (no literal is
// ever 0 — that value terminates a DIMACS clause line instead). Matches the
// int-literal convention dimacs.go uses for parsed CNF clauses.
type Lit int

// Var returns the literal's underlying variable, 1-indexed.
func (l Lit) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Complement returns the negation of l.
func (l Lit) Complement() Lit { return -l }

// Clause is two bit vectors over variables — one for positive occurrences,
// one for negative — sharing a single arena block, split at the midpoint.
// Grounded directly on original_source/src/data.rs's Clause{pos, neg:
// BitVec}, including its index convention (read(index) at index<0 reads
// neg, else pos).
type Clause struct {
	block arena.Block
	pos   Vec
	neg   Vec
}

// WordsPerHalf returns the number of uint64 words needed to hold nvars bits,
// i.e. one half of a Clause sized for nvars variables.
func WordsPerHalf(nvars int) int {
	return (nvars + W - 1) / W
}

// NewClause carves a Clause for nvars variables out of block, which must
// have exactly 2*WordsPerHalf(nvars) words (the caller allocates it that
// size; see engine.Problem for the arena sizing convention).
func NewClause(block arena.Block, nvars int) *Clause {
	half := WordsPerHalf(nvars)
	return &Clause{
		block: block,
		pos:   NewVec(block.Words[:half]),
		neg:   NewVec(block.Words[half : 2*half]),
	}
}

// Block returns the clause's backing arena block, so the owner can Free it.
func (c *Clause) Block() arena.Block { return c.block }

// ReadLiteral reports whether lit is asserted in the clause.
func (c *Clause) ReadLiteral(lit Lit) bool {
	if lit < 0 {
		return c.neg.Read(int(-lit) - 1)
	}
	return c.pos.Read(int(lit) - 1)
}

// SetLiteral asserts lit in the clause.
func (c *Clause) SetLiteral(lit Lit) {
	if lit < 0 {
		c.neg.Set(int(-lit) - 1)
	} else {
		c.pos.Set(int(lit) - 1)
	}
}

// UnsetLiteral retracts lit from the clause.
func (c *Clause) UnsetLiteral(lit Lit) {
	if lit < 0 {
		c.neg.Unset(int(-lit) - 1)
	} else {
		c.pos.Unset(int(lit) - 1)
	}
}

// CountOnes is the clause's width (number of literals it asserts), and the
// key clauseset.Set keeps its spine sorted by.
func (c *Clause) CountOnes() int {
	return c.pos.CountOnes() + c.neg.CountOnes()
}

// IsNull reports whether the clause asserts no literal at all (the empty
// clause, i.e. a derived contradiction).
func (c *Clause) IsNull() bool {
	return c.pos.IsNull() && c.neg.IsNull()
}

// Variables returns a fresh Vec (backed by out) of every variable the
// clause mentions, positive or negative.
func (c *Clause) Variables(out Vec) Vec {
	n := minLen3(out.words, c.pos.words, c.neg.words)
	for i := 0; i < n; i++ {
		out.words[i] = c.pos.words[i] | c.neg.words[i]
	}
	return out
}

// EnrichVariables ORs the clause's variable footprint into vrs in place,
// grounded on data.rs::Clause::enrich_variables (used by the component
// decomposition fixpoint to grow a component's footprint one clause at a
// time without allocating a fresh Vec per step).
func (c *Clause) EnrichVariables(vrs Vec) {
	n := minLen3(vrs.words, c.pos.words, c.neg.words)
	for i := 0; i < n; i++ {
		vrs.words[i] |= c.pos.words[i] | c.neg.words[i]
	}
}

// HasVariables reports whether the clause mentions any variable set in vrs.
func (c *Clause) HasVariables(vrs Vec) bool {
	n := minLen3(vrs.words, c.pos.words, c.neg.words)
	for i := 0; i < n; i++ {
		if (c.pos.words[i]|c.neg.words[i])&vrs.words[i] != 0 {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every literal c asserts is also asserted by rhs.
func (c *Clause) SubsetOf(rhs *Clause) bool {
	return c.pos.SubsetOf(rhs.pos) && c.neg.SubsetOf(rhs.neg)
}

// Disjoint reports whether c and rhs share no literal.
func (c *Clause) Disjoint(rhs *Clause) bool {
	return c.pos.Disjoint(rhs.pos) && c.neg.Disjoint(rhs.neg)
}

// Tautologous reports whether the clause asserts both a literal and its
// negation, grounded on data.rs::Clause::disjoint_switched_self (a tautology
// is exactly a clause whose pos and neg halves are not disjoint).
func (c *Clause) Tautologous() bool {
	return !c.pos.Disjoint(c.neg)
}

// FlipPolarity returns a fresh Clause (backed by out) with every literal's
// sign reversed: out's pos half is c's neg half and out's neg half is c's
// pos half, copied with no subtraction between them.
func (c *Clause) FlipPolarity(out *Clause) *Clause {
	copy(out.pos.words, c.neg.words)
	copy(out.neg.words, c.pos.words)
	return out
}

// CopyInto copies c's bits into dst, which must be sized for the same
// variable count.
func (c *Clause) CopyInto(dst *Clause) *Clause {
	copy(dst.pos.words, c.pos.words)
	copy(dst.neg.words, c.neg.words)
	return dst
}

// Or absorbs other's literals into c in place (c ← c ∨ other), used to fold
// an accumulator across a clause set (kernelize's acc/once/twice) and to
// merge a solved component's guessed/deduced literals back into its parent.
func (c *Clause) Or(other *Clause) {
	c.pos.Or(other.pos)
	c.neg.Or(other.neg)
}

// And intersects other into c in place (c ← c ∧ other), used by kernelize's
// once/twice occurrence fold.
func (c *Clause) And(other *Clause) {
	c.pos.And(other.pos)
	c.neg.And(other.neg)
}

// AndNot clears from c every literal also asserted by other (c ← c ∧
// ¬other), used to finish the once/twice fold (once &= ¬twice).
func (c *Clause) AndNot(other *Clause) {
	c.pos.AndNot(other.pos)
	c.neg.AndNot(other.neg)
}

// DifferenceSwitchedSelf fills out with c's "pure" literals — those whose
// variable occurs in only one polarity in c (pos ← pos ∧ ¬neg, neg ← neg ∧
// ¬pos) — and returns it. Grounded on
// data.rs::Clause::difference_switched_self; used by kernelize's
// pure-literal elimination against the whole-set occurrence accumulator.
func (c *Clause) DifferenceSwitchedSelf(out *Clause) *Clause {
	Difference(out.pos, c.pos, c.neg)
	Difference(out.neg, c.neg, c.pos)
	return out
}

// IntersectsLiteralsOf reports whether c and other share any literal (same
// variable, same polarity) — as opposed to Disjoint's variable-level
// opposite, this checks literal identity directly: (pos∧other.pos) ∨
// (neg∧other.neg) ≠ 0. Used to test whether a clause contains any of the
// literals kernelize's pure-literal accumulator has flagged for removal.
func (c *Clause) IntersectsLiteralsOf(other *Clause) bool {
	n := minLen2(c.pos.words, other.pos.words)
	for i := 0; i < n; i++ {
		if c.pos.words[i]&other.pos.words[i] != 0 {
			return true
		}
	}
	n = minLen2(c.neg.words, other.neg.words)
	for i := 0; i < n; i++ {
		if c.neg.words[i]&other.neg.words[i] != 0 {
			return true
		}
	}
	return false
}

// SymmetryIn scans c's "outward difference" from other — the literals c
// asserts that other does not assert with the same polarity — and, if that
// outward difference has Hamming weight exactly one *and* other asserts the
// complementary literal of that one differing bit, returns the bad literal
// (the one in other that self-subsumption permits dropping). Otherwise
// returns false. This is a one-directional scan (c's literals not matched
// in other), not a symmetric equality test — other is free to carry
// additional literals beyond the one complementary bad literal, which is
// exactly what makes this more than a same-width comparison. data.rs has no
// direct analog at this level, though it shares the building blocks
// (word-loop scans) this is assembled from.
func (c *Clause) SymmetryIn(other *Clause) (Lit, bool) {
	var mismatch Lit
	found := false

	n := minLen2(c.pos.words, other.pos.words)
	for i := 0; i < n; i++ {
		out := c.pos.words[i] &^ other.pos.words[i]
		for out != 0 {
			if found {
				return 0, false
			}
			bit := bits.TrailingZeros64(out)
			mismatch = Lit(i*W + bit + 1)
			found = true
			out &= out - 1
		}
	}
	n = minLen2(c.neg.words, other.neg.words)
	for i := 0; i < n; i++ {
		out := c.neg.words[i] &^ other.neg.words[i]
		for out != 0 {
			if found {
				return 0, false
			}
			bit := bits.TrailingZeros64(out)
			mismatch = Lit(-(i*W + bit + 1))
			found = true
			out &= out - 1
		}
	}
	if !found {
		return 0, false
	}
	if !other.ReadLiteral(mismatch.Complement()) {
		return 0, false
	}
	return mismatch.Complement(), true
}

// IterLiterals calls f with every literal the clause asserts, positive
// literals ascending first, then negative, grounded on
// data.rs::Clause::iter_literals.
func (c *Clause) IterLiterals(f func(Lit) bool) {
	done := false
	c.pos.IterOnes(func(idx int) bool {
		if !f(Lit(idx + 1)) {
			done = true
			return false
		}
		return true
	})
	if done {
		return
	}
	c.neg.IterOnes(func(idx int) bool {
		return f(Lit(-(idx + 1)))
	})
}

func minLen2(a, b []uint64) int {
	if len(a) < len(b) {
		return len(a)
	}
	return len(b)
}

func minLen3(a, b, c []uint64) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if len(c) < n {
		n = len(c)
	}
	return n
}
