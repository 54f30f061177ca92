// Package engine implements the kernelization and DPLL-with-components
// search: the inprocessing solver proper. It is the only package that
// imports internal/arena, internal/bits, and internal/clauseset together;
// the root kernelsat package uses only internal/arena and internal/bits
// (to build the allocators and convert literals), never internal/clauseset.
package engine

import (
	"github.com/gopherlabs/kernelsat/internal/arena"
	"github.com/gopherlabs/kernelsat/internal/bits"
	"github.com/gopherlabs/kernelsat/internal/clauseset"
	"github.com/pkg/errors"
)

// State is a Problem's lifecycle stage, grounded on
// original_source/src/solver.rs's Task::Todo/Task::Done split, generalized
// to an explicit four-stage machine.
type State int

const (
	Fresh State = iota
	Building
	Prepared
	Decided
)

// node is one point in the search tree: a clause set plus the literals
// committed (guessed) or forced (deduced) to reach it, and the recents
// worklist the self-subsumption fixpoint drains. The root Problem's
// top-level state embeds one node; Solve spawns further nodes for branches
// and components but never exposes them outside this package.
//
// alloc backs every clause that outlives a single kernelize pass (added
// clauses, clones, the twin of a branch); scratch backs the short-lived
// accumulator clauses kernelize.go's sweeps allocate and free within one
// function call. A production Problem points alloc at a Pool (fixed-layout,
// O(1)) and scratch at a Stack (bump allocator, matching the strict
// allocate/free nesting those accumulators follow); tests that don't care
// about steady-state allocation point both at the same Heap.
type node struct {
	nvars   int
	alloc   arena.Allocator
	scratch arena.Allocator
	clauses *clauseset.Set
	guessed *bits.Clause
	deduced *bits.Clause
	recents []*bits.Clause
}

func newNode(alloc, scratch arena.Allocator, nvars int) *node {
	return &node{
		nvars:   nvars,
		alloc:   alloc,
		scratch: scratch,
		clauses: clauseset.New(),
		guessed: newClause(alloc, nvars),
		deduced: newClause(alloc, nvars),
	}
}

func newClause(alloc arena.Allocator, nvars int) *bits.Clause {
	half := bits.WordsPerHalf(nvars)
	block := arena.MustAlloc(alloc, 2*half)
	return bits.NewClause(block, nvars)
}

func cloneClause(alloc arena.Allocator, nvars int, src *bits.Clause) *bits.Clause {
	dst := newClause(alloc, nvars)
	src.CopyInto(dst)
	return dst
}

// cloneNode deep-copies n: every clause gets fresh arena-backed storage, so
// mutating the clone (as the losing branch of a choice does) never touches
// the original — cloning a clause allocates new storage but copies bits.
func cloneNode(n *node) *node {
	out := newNode(n.alloc, n.scratch, n.nvars)
	for _, c := range n.clauses.Clauses() {
		out.clauses.Append(cloneClause(n.alloc, n.nvars, c))
	}
	n.guessed.CopyInto(out.guessed)
	n.deduced.CopyInto(out.deduced)
	return out
}

// Problem is the root state a caller builds up and then solves. It
// implements the lifecycle Fresh → Building → Prepared → Decided(SAT|UNSAT).
type Problem struct {
	nvars   int
	ncls    int
	alloc   arena.Allocator
	scratch arena.Allocator
	root    *node
	state   State

	verdict Verdict
	stats   Stats
}

// Verdict is the cached outcome of a Decided Problem.
type Verdict struct {
	SAT   bool
	Model []bits.Lit // ascending by |variable|; only meaningful if SAT
}

// Stats are informational counters collected during Solve.
type Stats struct {
	NumDecisions           int
	NumKernelizeRounds     int
	NumComponents          int
	SolvedBySimplification bool
}

// NewProblem constructs a Problem declared for nvars variables and ncls
// clauses, backed by alloc for all clause storage, persistent and scratch
// alike. The returned Problem is in the Building state.
func NewProblem(alloc arena.Allocator, nvars, ncls int) *Problem {
	return NewProblemWithAllocators(alloc, alloc, nvars, ncls)
}

// NewProblemWithAllocators is NewProblem with the persistent clause
// allocator and the kernelize-scratch allocator specified separately — the
// constructor a production caller wants, pointing alloc at a Pool sized for
// clause-block reuse and scratch at a Stack sized for kernelize.go's
// transient accumulator clauses.
func NewProblemWithAllocators(alloc, scratch arena.Allocator, nvars, ncls int) *Problem {
	return &Problem{
		nvars:   nvars,
		ncls:    ncls,
		alloc:   alloc,
		scratch: scratch,
		root:    newNode(alloc, scratch, nvars),
		state:   Building,
	}
}

// NClauses reports how many clauses have been added so far.
func (p *Problem) NClauses() int { return p.root.clauses.Len() }

// AddClause validates and appends one clause. Valid in Building state only;
// transitions Building→Building.
func (p *Problem) AddClause(lits []bits.Lit) error {
	if p.state != Building {
		return errors.WithStack(ErrTooManyClauses)
	}
	if p.root.clauses.Len() >= p.ncls {
		return errors.WithStack(ErrTooManyClauses)
	}
	for _, l := range lits {
		if l == 0 {
			return errors.WithStack(ErrVariableIsZero)
		}
		if l.Var() > p.nvars {
			return errors.WithStack(&ErrVariableTooLarge{Lit: l})
		}
	}
	c := newClause(p.alloc, p.nvars)
	for _, l := range lits {
		c.SetLiteral(l)
	}
	p.root.clauses.Append(c)
	return nil
}

// Prepare runs the one-time simplification pass (tautology removal, sort,
// subsumption sweep, symmetry sweep, recents drain) and transitions
// Building→Prepared. Requires exactly the declared clause count to have
// been added.
func (p *Problem) Prepare() error {
	if p.state != Building {
		return nil
	}
	if p.root.clauses.Len() < p.ncls {
		return errors.WithStack(ErrTooFewClauses)
	}
	prepareSweeps(p.root)
	p.state = Prepared
	return nil
}
