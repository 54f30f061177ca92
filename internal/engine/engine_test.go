package engine

import (
	"testing"

	"github.com/gopherlabs/kernelsat/internal/arena"
	"github.com/gopherlabs/kernelsat/internal/bits"
	"github.com/stretchr/testify/require"
)

func litsOf(xs ...int) []bits.Lit {
	out := make([]bits.Lit, len(xs))
	for i, x := range xs {
		out[i] = bits.Lit(x)
	}
	return out
}

func solveDIMACS(t *testing.T, nvars int, clauses [][]int) Verdict {
	t.Helper()
	var alloc arena.Heap
	p := NewProblem(alloc, nvars, len(clauses))
	for _, cl := range clauses {
		require.NoError(t, p.AddClause(litsOf(cl...)))
	}
	v, _, err := p.Solve()
	require.NoError(t, err)
	return v
}

// checkModel verifies every clause is satisfied by the produced model: the
// end-to-end oracle for any produced SAT verdict.
func checkModel(t *testing.T, clauses [][]int, model []bits.Lit) {
	t.Helper()
	assigned := make(map[int]bool, len(model))
	for _, l := range model {
		assigned[int(l)] = true
	}
	for _, cl := range clauses {
		satisfied := false
		for _, lit := range cl {
			if assigned[lit] {
				satisfied = true
				break
			}
		}
		require.True(t, satisfied, "clause %v not satisfied by model %v", cl, model)
	}
}

func TestScenarioSingleUnitSAT(t *testing.T) {
	v := solveDIMACS(t, 1, [][]int{{1}})
	require.True(t, v.SAT)
	checkModel(t, [][]int{{1}}, v.Model)
}

func TestScenarioConflictingUnitsUNSAT(t *testing.T) {
	v := solveDIMACS(t, 1, [][]int{{1}, {-1}})
	require.False(t, v.SAT)
}

func TestScenarioThreeVarSAT(t *testing.T) {
	clauses := [][]int{{1, 2, 3}, {-1, 2}, {-2, 3}}
	v := solveDIMACS(t, 3, clauses)
	require.True(t, v.SAT)
	checkModel(t, clauses, v.Model)
}

func TestScenarioThreeVarFullContradictionUNSAT(t *testing.T) {
	clauses := [][]int{
		{1, 2, 3}, {1, 2, -3}, {1, -2, 3}, {1, -2, -3},
		{-1, 2, 3}, {-1, 2, -3}, {-1, -2, 3}, {-1, -2, -3},
	}
	v := solveDIMACS(t, 3, clauses)
	require.False(t, v.SAT)
}

func TestScenarioTwoComponentsSAT(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, 2}, {3, 4}, {-3, -4}}
	v := solveDIMACS(t, 4, clauses)
	require.True(t, v.SAT)
	checkModel(t, clauses, v.Model)
}

func TestScenarioPigeonholeUNSAT(t *testing.T) {
	// PHP(3->2): pigeons 1,2,3, holes a,b. Variable v(p,h) = (p-1)*2+h.
	v := func(p, h int) int { return (p-1)*2 + h }
	var clauses [][]int
	for p := 1; p <= 3; p++ {
		clauses = append(clauses, []int{v(p, 1), v(p, 2)})
	}
	for h := 1; h <= 2; h++ {
		for p1 := 1; p1 <= 3; p1++ {
			for p2 := p1 + 1; p2 <= 3; p2++ {
				clauses = append(clauses, []int{-v(p1, h), -v(p2, h)})
			}
		}
	}
	result := solveDIMACS(t, 6, clauses)
	require.False(t, result.SAT)
}

func TestAddClauseRejectsZeroLiteral(t *testing.T) {
	var alloc arena.Heap
	p := NewProblem(alloc, 2, 1)
	err := p.AddClause(litsOf(1, 0))
	require.ErrorIs(t, err, ErrVariableIsZero)
}

func TestAddClauseRejectsOutOfRangeVariable(t *testing.T) {
	var alloc arena.Heap
	p := NewProblem(alloc, 2, 1)
	err := p.AddClause(litsOf(3))
	var tooLarge *ErrVariableTooLarge
	require.ErrorAs(t, err, &tooLarge)
}

func TestAddClauseRejectsPastDeclaredCount(t *testing.T) {
	var alloc arena.Heap
	p := NewProblem(alloc, 2, 1)
	require.NoError(t, p.AddClause(litsOf(1)))
	err := p.AddClause(litsOf(2))
	require.ErrorIs(t, err, ErrTooManyClauses)
}

func TestPrepareRejectsTooFewClauses(t *testing.T) {
	var alloc arena.Heap
	p := NewProblem(alloc, 2, 2)
	require.NoError(t, p.AddClause(litsOf(1)))
	err := p.Prepare()
	require.ErrorIs(t, err, ErrTooFewClauses)
}

func TestCheckInvariantsPassesAfterPrepare(t *testing.T) {
	DebugChecks = true
	defer func() { DebugChecks = false }()

	var alloc arena.Heap
	p := NewProblem(alloc, 3, 3)
	for _, cl := range [][]int{{1, 2, 3}, {-1, 2}, {-2, 3}} {
		require.NoError(t, p.AddClause(litsOf(cl...)))
	}
	require.NotPanics(t, func() { require.NoError(t, p.Prepare()) })
}

func TestCheckInvariantsCatchesTautology(t *testing.T) {
	DebugChecks = true
	defer func() { DebugChecks = false }()

	var alloc arena.Heap
	n := newNode(alloc, alloc, 2)
	c := newClause(alloc, 2)
	c.SetLiteral(bits.Lit(1))
	c.SetLiteral(bits.Lit(-1))
	n.clauses.Append(c)

	require.Panics(t, func() { checkInvariants(n) })
}

func TestSolveCachesVerdict(t *testing.T) {
	var alloc arena.Heap
	p := NewProblem(alloc, 1, 1)
	require.NoError(t, p.AddClause(litsOf(1)))
	v1, _, err := p.Solve()
	require.NoError(t, err)
	require.Equal(t, Decided, p.state)

	v2, _, err := p.Solve()
	require.NoError(t, err)
	require.Equal(t, v1, v2)
}
