package engine

import "github.com/gopherlabs/kernelsat/internal/bits"

// deleteLiteral unsets lit from the clause at index at and restores every
// invariant the Clause Set promises (sorted order, no subsumption, no
// length-1 symmetry pairs), then pushes the modified clause onto recents
// for consumeRecents to propagate further. Consolidates the Rust version's
// delete_literal / combine_from / count_supersets / update_recents /
// subsumption_from pipeline into one pass — see DESIGN.md for why.
func deleteLiteral(n *node, at int, lit bits.Lit) {
	c := n.clauses.At(at)
	c.UnsetLiteral(lit)
	restoreInvariantsAt(n, at, false)
}

// restoreInvariantsAt repositions the just-modified clause at idx — via
// Ascend if grew is true (the clause's width increased, e.g. after
// single-occurrence resolution absorbs a wider clause's literals), via
// Descend otherwise (width shrank, or the clause was freshly appended past
// where it belongs) — then repeatedly checks it against every earlier
// clause for a new symmetry relation, shrinking it further and
// repositioning backward (Descend: a symmetry hit always removes exactly
// one literal) until none remains, before sweeping away any later clause it
// now subsumes. Finally the clause is recorded on recents.
func restoreInvariantsAt(n *node, idx int, grew bool) {
	if grew {
		idx = n.clauses.Ascend(idx)
	} else {
		idx = n.clauses.Descend(idx)
	}
	for {
		cur := n.clauses.At(idx)
		found := false
		for i := 0; i < idx; i++ {
			if lit, ok := n.clauses.At(i).SymmetryIn(cur); ok {
				cur.UnsetLiteral(lit)
				idx = n.clauses.Descend(idx)
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	cur := n.clauses.At(idx)
	n.clauses.RetainFrom(idx+1, func(c *bits.Clause) bool {
		return !cur.SubsetOf(c)
	})
	n.recents = append(n.recents, cur)
}

// consumeRecents drains the recents worklist: for each entry, compare it
// against every later clause for a symmetry relation and shrink the loser,
// which may push further entries onto recents. A recents entry whose
// clause has since been removed entirely (IndexOf returns -1) is simply
// dropped — it was subsumption's responsibility, not this loop's.
func consumeRecents(n *node) {
	for len(n.recents) > 0 {
		last := len(n.recents) - 1
		c := n.recents[last]
		n.recents = n.recents[:last]

		k := n.clauses.IndexOf(c)
		if k < 0 {
			continue
		}
		for i := k + 1; i < n.clauses.Len(); i++ {
			if lit, ok := c.SymmetryIn(n.clauses.At(i)); ok {
				deleteLiteral(n, i, lit)
			}
		}
	}
}

// prepareSweeps runs the one-time Prepare pipeline: tautology removal,
// stable sort, subsumption sweep, symmetry-elimination sweep, recents
// drain.
func prepareSweeps(n *node) {
	n.clauses.RetainFrom(0, func(c *bits.Clause) bool { return !c.Tautologous() })
	n.clauses.SortStable()

	for i := 0; i < n.clauses.Len(); i++ {
		ci := n.clauses.At(i)
		n.clauses.RetainFrom(i+1, func(c *bits.Clause) bool { return !ci.SubsetOf(c) })
	}

	for {
		changed := false
		for i := 0; i < n.clauses.Len(); i++ {
			for j := 0; j < i; j++ {
				if lit, ok := n.clauses.At(j).SymmetryIn(n.clauses.At(i)); ok {
					deleteLiteral(n, i, lit)
					changed = true
					break
				}
			}
			if changed {
				break
			}
		}
		if !changed {
			break
		}
	}
	consumeRecents(n)
	checkInvariants(n)
}

// kernelize runs the per-node simplification fixpoint (long-clause removal,
// pure-literal elimination, rarest-literal elimination) until no round
// changes the clause count. The fixpoint structure itself mirrors
// original_source/src/problem.rs's kernelize loop (there, pure-literal
// elimination only — rarest-literal elimination has no prototype analog
// and is built fresh).
func kernelize(n *node) (rounds int) {
	for {
		before := n.clauses.Len()

		removeLongClauses(n)
		removePureLiterals(n)
		removeRarestLiteral(n)
		consumeRecents(n)

		rounds++
		if n.clauses.Len() == before {
			return rounds
		}
	}
}

// removeLongClauses drops every clause whose width is >= the current
// clause count, from the tail (cheap: the spine is sorted ascending).
func removeLongClauses(n *node) {
	for n.clauses.Len() > 0 && n.clauses.At(n.clauses.Len()-1).CountOnes() >= n.clauses.Len() {
		n.clauses.PopBack()
	}
}

// removePureLiterals accumulates the disjunction of every clause, extracts
// its pure (single-polarity) literals, drops every clause containing one,
// and records them in deduced. acc and pure are scratch: allocated from
// n.scratch and freed before return, in reverse allocation order so a
// Stack-backed scratch allocator reclaims them eagerly.
func removePureLiterals(n *node) {
	if n.clauses.Len() == 0 {
		return
	}
	acc := newClause(n.scratch, n.nvars)
	defer n.scratch.Free(acc.Block())
	pure := newClause(n.scratch, n.nvars)
	defer n.scratch.Free(pure.Block())

	for _, c := range n.clauses.Clauses() {
		acc.Or(c)
	}
	acc.DifferenceSwitchedSelf(pure)
	if pure.IsNull() {
		return
	}
	n.clauses.RetainFrom(0, func(c *bits.Clause) bool {
		return !c.IntersectsLiteralsOf(pure)
	})
	n.deduced.Or(pure)
}

// removeRarestLiteral finds a literal occurring in exactly one clause (via
// the once/twice occurrence fold) and, if one exists, resolves every clause
// containing its complement against the unique clause containing it, then
// drops that clause. once/twice/tmp are scratch, same discipline as
// removePureLiterals's acc/pure.
func removeRarestLiteral(n *node) {
	if n.clauses.Len() == 0 {
		return
	}
	once := newClause(n.scratch, n.nvars)
	defer n.scratch.Free(once.Block())
	twice := newClause(n.scratch, n.nvars)
	defer n.scratch.Free(twice.Block())
	tmp := newClause(n.scratch, n.nvars)
	defer n.scratch.Free(tmp.Block())

	for _, c := range n.clauses.Clauses() {
		c.CopyInto(tmp)
		tmp.And(once)
		twice.Or(tmp)
		once.Or(c)
	}
	once.AndNot(twice)
	if once.IsNull() {
		return
	}

	var rare bits.Lit
	once.IterLiterals(func(l bits.Lit) bool {
		rare = l
		return false
	})

	srcIdx := -1
	for i := 0; i < n.clauses.Len(); i++ {
		if n.clauses.At(i).ReadLiteral(rare) {
			srcIdx = i
			break
		}
	}
	if srcIdx < 0 {
		return
	}
	src := n.clauses.At(srcIdx)
	neg := rare.Complement()

	for i := 0; i < n.clauses.Len(); i++ {
		if i == srcIdx {
			continue
		}
		d := n.clauses.At(i)
		if !d.ReadLiteral(neg) {
			continue
		}
		oldWidth := d.CountOnes()
		d.UnsetLiteral(neg)
		src.IterLiterals(func(l bits.Lit) bool {
			if l != rare {
				d.SetLiteral(l)
			}
			return true
		})
		restoreInvariantsAt(n, i, d.CountOnes() > oldWidth)
	}

	// Re-find src: restoreInvariantsAt may have repositioned other clauses
	// (forward via Ascend, backward via Descend) across its position, so
	// recover it by identity before popping it rather than trusting srcIdx.
	if idx := n.clauses.IndexOf(src); idx >= 0 {
		n.clauses.RetainFrom(idx, func(c *bits.Clause) bool { return c != src })
	}
}
