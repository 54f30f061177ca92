// Package kernelsat implements a SAT solver built around a kernelizing,
// inprocessing core: bit-packed clauses, arena-backed allocation, and a
// DPLL search that decomposes independent components between branches.
package kernelsat

import (
	"math/rand"

	"github.com/gopherlabs/kernelsat/internal/arena"
	"github.com/gopherlabs/kernelsat/internal/bits"
	"github.com/gopherlabs/kernelsat/internal/engine"
)

// Stats are the informational counters Solve/Builder.Solve collect.
type Stats = engine.Stats

// Builder is the staged lifecycle a caller drives directly when it wants
// more control than the one-shot Solve function gives: declare the problem
// size, add exactly that many clauses, then solve. Thin wrapper over
// internal/engine.Problem — this package's entire reason to exist is
// translating between the public []int literal convention and the
// engine's bits.Lit/arena-backed internals.
type Builder struct {
	p *engine.Problem
}

// NewBuilder declares a problem of nvars variables and ncls clauses.
// Clause storage is backed by an internal/arena.Pool (fixed-layout, O(1)
// reuse) and kernelization's scratch accumulator clauses by an
// internal/arena.Stack (bump allocator, matching their strict
// allocate-then-free nesting), both sized off nvars/ncls by
// defaultAllocators. Builder.AddClause must be called exactly ncls times
// before Solve.
func NewBuilder(nvars, ncls int) *Builder {
	alloc, scratch := defaultAllocators(nvars, ncls)
	return &Builder{p: engine.NewProblemWithAllocators(alloc, scratch, nvars, ncls)}
}

// defaultAllocators sizes the Pool and Stack a production Solve/Builder run
// backs its clause storage with. Pool's block size is exactly one clause's
// footprint (2*bits.WordsPerHalf(nvars) words); its capacity is sized well
// above ncls because cloneNode allocates a full fresh copy of a component's
// clauses at every branch decision (the cloned twin kept alive until one
// side of the choice resolves) — generous slack here is a sizing choice,
// not a correctness requirement, since arena.MustAlloc panics on exhaustion
// rather than silently misbehaving. Stack is sized for the handful of
// scratch clauses (removePureLiterals's acc/pure, removeRarestLiteral's
// once/twice/tmp) live at once within a single kernelize pass.
func defaultAllocators(nvars, ncls int) (arena.Allocator, arena.Allocator) {
	blockWords := 2 * bits.WordsPerHalf(nvars)
	if blockWords == 0 {
		blockWords = 2
	}
	poolCapacity := (ncls + nvars + 1) * 8
	if poolCapacity < 8 {
		poolCapacity = 8
	}
	pool := arena.NewPool(blockWords, poolCapacity)
	stack := arena.NewStack(blockWords * 8)
	return pool, stack
}

// AddClause appends one clause, given as the public signed-integer literal
// convention (matching DIMACS's [][]int problem shape). Returns
// ErrVariableIsZero, an *ErrVariableTooLarge, or ErrTooManyClauses on a
// malformed or over-long call sequence.
func (b *Builder) AddClause(lits []int) error {
	return b.p.AddClause(toLits(lits))
}

// Solve decides the problem built so far, calling Prepare implicitly if it
// hasn't run yet. Safe to call more than once; later calls return the
// cached verdict.
func (b *Builder) Solve() (assignment []int, stats Stats, sat bool, err error) {
	v, st, err := b.p.Solve()
	if err != nil {
		return nil, Stats{}, false, err
	}
	return fromLits(v.Model), st, v.SAT, nil
}

// Solve is the one-shot convenience entry point: given a whole CNF problem
// in the [][]int literal convention (as ParseDIMACS returns), build it,
// solve it, and return the assignment, stats, and satisfiability verdict.
//
// The variables are taken to be [1, n], n being the largest variable
// magnitude in problem; the assignment covers all of [1, n], and variables
// no clause mentions are reported positive. Variables are not renumbered.
func Solve(problem [][]int) (assignment []int, stats Stats, sat bool) {
	nvars := 0
	for _, cl := range problem {
		for _, v := range cl {
			if v < 0 {
				v = -v
			}
			if v > nvars {
				nvars = v
			}
		}
	}
	b := NewBuilder(nvars, len(problem))
	for _, cl := range problem {
		if err := b.AddClause(cl); err != nil {
			// problem is assumed well-formed per the Solve contract:
			// AddClause's structured errors can't occur here short of a
			// variable outside [1, nvars], which nvars's computation
			// above rules out.
			panic(err)
		}
	}
	assignment, stats, sat, err := b.Solve()
	if err != nil {
		panic(err)
	}
	return assignment, stats, sat
}

func toLits(xs []int) []bits.Lit {
	out := make([]bits.Lit, len(xs))
	for i, x := range xs {
		out[i] = bits.Lit(x)
	}
	return out
}

func fromLits(ls []bits.Lit) []int {
	if ls == nil {
		return nil
	}
	out := make([]int, len(ls))
	for i, l := range ls {
		out[i] = int(l)
	}
	return out
}

// Chooser is a source of uniform random selection from a small sequence.
// Property-based tests need to generate random CNF instances, but the
// engine itself never calls this — search and kernelization are fully
// deterministic (no restarts).
type Chooser interface {
	// Intn returns a pseudo-random number in [0,n).
	Intn(n int) int
}

// mathRandChooser adapts stdlib *rand.Rand to Chooser.
type mathRandChooser struct {
	*rand.Rand
}

// NewChooser returns the default Chooser, seeded deterministically so
// repeated property-based test runs reproduce the same instances.
func NewChooser(seed int64) Chooser {
	return mathRandChooser{rand.New(rand.NewSource(seed))}
}

// RandomCNF generates a random CNF instance of numVars variables and
// numClauses clauses that is satisfiable by construction: an assignment is
// picked first, then every generated clause is seeded with one literal
// guaranteed to match it. Each clause has between 1 and numVars literals
// over distinct variables, so instances are not fixed-width 3-CNF. Takes a
// Chooser instead of a bare *rand.Rand so callers can substitute their own
// randomness source.
func RandomCNF(c Chooser, numVars, numClauses int) [][]int {
	assignment := make([]bool, numVars)
	for v := range assignment {
		assignment[v] = c.Intn(2) == 1
	}
	vars := make([]int, numVars)
	for v := range vars {
		vars[v] = v
	}
	problem := make([][]int, numClauses)
	for i := range problem {
		shuffle(c, vars)
		problem[i] = make([]int, c.Intn(numVars)+1)
		fixed := c.Intn(len(problem[i]))
		for j := range problem[i] {
			v := vars[j] + 1
			if j == fixed {
				if !assignment[v-1] {
					v = -v
				}
			} else if c.Intn(2) == 1 {
				v = -v
			}
			problem[i][j] = v
		}
	}
	return remapContiguous(problem)
}

func shuffle(c Chooser, xs []int) {
	for i := len(xs) - 1; i > 0; i-- {
		j := c.Intn(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// remapContiguous renumbers problem's variables (preserving first-seen
// order) down to a contiguous [1, n] range, since RandomCNF's shuffling
// may leave some variables unreferenced.
func remapContiguous(problem [][]int) [][]int {
	remap := make(map[int]int)
	for _, cls := range problem {
		for i, v := range cls {
			neg := v < 0
			if neg {
				v = -v
			}
			x, ok := remap[v]
			if !ok {
				x = len(remap) + 1
				remap[v] = x
			}
			if neg {
				x = -x
			}
			cls[i] = x
		}
	}
	return problem
}
