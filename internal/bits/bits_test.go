package bits

import (
	"testing"

	"github.com/gopherlabs/kernelsat/internal/arena"
	"github.com/stretchr/testify/require"
)

func newTestClause(t *testing.T, nvars int) *Clause {
	t.Helper()
	half := WordsPerHalf(nvars)
	block := arena.Block{Words: make([]uint64, 2*half)}
	return NewClause(block, nvars)
}

func TestClauseSetReadUnset(t *testing.T) {
	c := newTestClause(t, 10)
	c.SetLiteral(3)
	c.SetLiteral(-7)

	require.True(t, c.ReadLiteral(3))
	require.True(t, c.ReadLiteral(-7))
	require.False(t, c.ReadLiteral(-3))
	require.False(t, c.ReadLiteral(7))
	require.Equal(t, 2, c.CountOnes())

	c.UnsetLiteral(3)
	require.False(t, c.ReadLiteral(3))
	require.Equal(t, 1, c.CountOnes())
}

func TestVecFlip(t *testing.T) {
	v := NewVec(make([]uint64, 1))
	v.Flip(5)
	require.True(t, v.Read(5))
	v.Flip(5)
	require.False(t, v.Read(5))
}

func TestVecXor(t *testing.T) {
	a := NewVec(make([]uint64, 1))
	b := NewVec(make([]uint64, 1))
	a.Set(1)
	a.Set(2)
	b.Set(2)
	b.Set(3)

	a.Xor(b)
	require.True(t, a.Read(1))
	require.False(t, a.Read(2))
	require.True(t, a.Read(3))
}

func TestVecNor(t *testing.T) {
	a := NewVec(make([]uint64, 1))
	b := NewVec(make([]uint64, 1))
	a.Set(1)
	b.Set(2)

	a.Nor(b)
	require.False(t, a.Read(1))
	require.False(t, a.Read(2))
	require.True(t, a.Read(0))
}

func TestClauseTautologous(t *testing.T) {
	c := newTestClause(t, 5)
	c.SetLiteral(2)
	require.False(t, c.Tautologous())
	c.SetLiteral(-2)
	require.True(t, c.Tautologous())
}

func TestClauseSubsetOf(t *testing.T) {
	a := newTestClause(t, 8)
	a.SetLiteral(1)
	b := newTestClause(t, 8)
	b.SetLiteral(1)
	b.SetLiteral(2)

	require.True(t, a.SubsetOf(b))
	require.False(t, b.SubsetOf(a))
}

func TestClauseDisjoint(t *testing.T) {
	a := newTestClause(t, 8)
	a.SetLiteral(1)
	b := newTestClause(t, 8)
	b.SetLiteral(2)
	require.True(t, a.Disjoint(b))

	b.SetLiteral(1)
	require.False(t, a.Disjoint(b))
}

func TestClauseVariablesAndHasVariables(t *testing.T) {
	c := newTestClause(t, 8)
	c.SetLiteral(3)
	c.SetLiteral(-5)

	half := WordsPerHalf(8)
	out := NewVec(make([]uint64, half))
	vars := c.Variables(out)
	require.True(t, vars.Read(2)) // variable 3, 0-indexed
	require.True(t, vars.Read(4)) // variable 5
	require.False(t, vars.Read(0))

	require.True(t, c.HasVariables(vars))

	empty := NewVec(make([]uint64, half))
	empty.Set(7) // variable 8, not mentioned by c
	require.False(t, c.HasVariables(empty))
}

func TestClauseFlipPolarity(t *testing.T) {
	c := newTestClause(t, 8)
	c.SetLiteral(2)
	c.SetLiteral(-4)

	flipped := newTestClause(t, 8)
	c.FlipPolarity(flipped)

	require.True(t, flipped.ReadLiteral(-2))
	require.True(t, flipped.ReadLiteral(4))
	require.False(t, flipped.ReadLiteral(2))
}

func TestClauseSymmetryIn(t *testing.T) {
	a := newTestClause(t, 8)
	a.SetLiteral(1)
	a.SetLiteral(2)
	a.SetLiteral(-3)

	b := newTestClause(t, 8)
	b.SetLiteral(1)
	b.SetLiteral(2)
	b.SetLiteral(3) // disagrees on variable 3 only

	// a differs from b only at variable 3 (a: -3, b: +3); the bad literal
	// flagged is the one asserted in b (the argument), which b may drop.
	lit, ok := a.SymmetryIn(b)
	require.True(t, ok)
	require.Equal(t, Lit(3), lit)

	c := newTestClause(t, 8)
	c.SetLiteral(1)
	c.SetLiteral(-2)
	c.SetLiteral(3)
	_, ok = a.SymmetryIn(c)
	require.False(t, ok, "differs in two variables, not a resolvable pair")
}

func TestClauseIterLiterals(t *testing.T) {
	c := newTestClause(t, 8)
	c.SetLiteral(3)
	c.SetLiteral(1)
	c.SetLiteral(-5)

	var got []Lit
	c.IterLiterals(func(l Lit) bool {
		got = append(got, l)
		return true
	})
	require.Equal(t, []Lit{1, 3, -5}, got)
}

func TestVecIterOnes(t *testing.T) {
	v := NewVec(make([]uint64, 2))
	v.Set(0)
	v.Set(63)
	v.Set(70)

	var got []int
	v.IterOnes(func(idx int) bool {
		got = append(got, idx)
		return true
	})
	require.Equal(t, []int{0, 63, 70}, got)
}

func TestVecFindShared(t *testing.T) {
	a := NewVec(make([]uint64, 2))
	b := NewVec(make([]uint64, 2))
	a.Set(5)
	b.Set(70)
	require.Equal(t, -1, a.FindShared(b))

	b.Set(5)
	require.Equal(t, 5, a.FindShared(b))
}
