package engine

import "github.com/gopherlabs/kernelsat/internal/bits"

// Solve decides the problem, transitioning Prepared→Decided. Calling Solve
// again on an already-Decided Problem returns the cached verdict, matching
// the state machine's "solve on Decided returns the cached verdict" rule.
func (p *Problem) Solve() (Verdict, Stats, error) {
	if p.state == Decided {
		return p.verdict, p.stats, nil
	}
	if p.state != Prepared {
		if err := p.Prepare(); err != nil {
			return Verdict{}, Stats{}, err
		}
	}

	stats := &Stats{}
	ok := solveNode(p.root, stats)
	stats.SolvedBySimplification = ok && p.root.clauses.Len() == 0 && stats.NumDecisions == 0

	v := Verdict{SAT: ok}
	if ok {
		v.Model = extractModel(p.root)
	}
	p.verdict = v
	p.stats = *stats
	p.state = Decided
	return v, *stats, nil
}

// solveNode is the recursive search: kernelize, check the trivial outcomes,
// decompose into independent components, and branch within whichever
// component remains a single connected piece.
func solveNode(n *node, stats *Stats) bool {
	stats.NumKernelizeRounds += kernelize(n)

	if n.clauses.Len() == 0 {
		return true
	}
	for _, c := range n.clauses.Clauses() {
		if c.IsNull() {
			return false
		}
	}

	components := decompose(n)
	stats.NumComponents += len(components)

	if len(components) > 1 {
		for _, comp := range components {
			if !solveNode(comp, stats) {
				return false
			}
			absorb(n, comp)
		}
		return true
	}

	comp := components[0]
	lit := choice(comp)
	stats.NumDecisions++

	twin := cloneNode(comp)

	resolve(comp, lit)
	if solveNode(comp, stats) {
		absorb(n, comp)
		return true
	}

	resolve(twin, lit.Complement())
	if solveNode(twin, stats) {
		absorb(n, twin)
		return true
	}
	return false
}

// absorb merges a solved component's committed and forced literals back
// into its parent node's accumulators. Safe because distinct components
// never share a variable.
func absorb(parent, child *node) {
	parent.guessed.Or(child.guessed)
	parent.deduced.Or(child.deduced)
}

// extractModel reads off the ascending-by-variable model from guessed and
// deduced, the two accumulators that together cover every variable forced
// or committed during the search. Variables neither guessed nor deduced are
// free and reported positive; any polarity would satisfy the formula.
func extractModel(n *node) []bits.Lit {
	assigned := newClause(n.alloc, n.nvars)
	assigned.Or(n.guessed)
	assigned.Or(n.deduced)

	model := make([]bits.Lit, 0, n.nvars)
	seen := make(map[int]bool, n.nvars)
	assigned.IterLiterals(func(l bits.Lit) bool {
		if !seen[l.Var()] {
			seen[l.Var()] = true
			model = append(model, l)
		}
		return true
	})
	for v := 1; v <= n.nvars; v++ {
		if !seen[v] {
			model = append(model, bits.Lit(v))
		}
	}
	sortLiteralsByVar(model)
	return model
}

func sortLiteralsByVar(lits []bits.Lit) {
	for i := 1; i < len(lits); i++ {
		v := lits[i]
		j := i - 1
		for j >= 0 && lits[j].Var() > v.Var() {
			lits[j+1] = lits[j]
			j--
		}
		lits[j+1] = v
	}
}

// SolveWithLearning is an optional outer driver: on UNSAT with a nonempty
// guessed accumulator, it inserts the "evil twin" of that accumulator (its
// negation, as a clause) back into the root and retries, stopping when a
// failed attempt's guessed is empty (the conflict is at the root —
// genuinely UNSAT) or the first SAT. It never changes the decision, only
// how much search it takes to reach it.
func (p *Problem) SolveWithLearning() (Verdict, Stats, error) {
	if p.state != Prepared {
		if err := p.Prepare(); err != nil {
			return Verdict{}, Stats{}, err
		}
	}

	totalStats := Stats{}
	for {
		stats := &Stats{}
		ok := solveNode(p.root, stats)
		totalStats.NumDecisions += stats.NumDecisions
		totalStats.NumKernelizeRounds += stats.NumKernelizeRounds
		totalStats.NumComponents += stats.NumComponents

		if ok {
			v := Verdict{SAT: true, Model: extractModel(p.root)}
			p.verdict, p.stats, p.state = v, totalStats, Decided
			return v, totalStats, nil
		}
		if p.root.guessed.IsNull() {
			v := Verdict{SAT: false}
			p.verdict, p.stats, p.state = v, totalStats, Decided
			return v, totalStats, nil
		}

		twin := newClause(p.alloc, p.nvars)
		p.root.guessed.FlipPolarity(twin)
		p.root.clauses.Append(twin)
		restoreInvariantsAt(p.root, p.root.clauses.Len()-1, false)
		consumeRecents(p.root)
		p.root.guessed = newClause(p.alloc, p.nvars)
		p.root.deduced = newClause(p.alloc, p.nvars)
	}
}
