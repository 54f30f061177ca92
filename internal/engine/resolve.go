package engine

import "github.com/gopherlabs/kernelsat/internal/bits"

// resolve commits lit: records it in guessed, drops every clause it
// satisfies, and resolves its complement out of every clause that contains
// it.
func resolve(n *node, lit bits.Lit) {
	n.guessed.SetLiteral(lit)
	n.clauses.RetainFrom(0, func(c *bits.Clause) bool { return !c.ReadLiteral(lit) })

	neg := lit.Complement()
	for {
		idx := -1
		for i := 0; i < n.clauses.Len(); i++ {
			if n.clauses.At(i).ReadLiteral(neg) {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}
		deleteLiteral(n, idx, neg)
	}
	consumeRecents(n)
}

// choice picks a branching literal from the smallest (first) clause:
// branching there maximizes immediate propagation on the negated branch.
func choice(n *node) bits.Lit {
	var lit bits.Lit
	n.clauses.At(0).IterLiterals(func(l bits.Lit) bool {
		lit = l
		return false
	})
	return lit
}

// decompose partitions n's clause set into independent connected
// components — maximal subsets related by a shared variable — leaving n's
// own clauses empty (every clause has moved into some returned component).
// Returned ascending by size, cheap ones first.
func decompose(n *node) []*node {
	var components []*node
	footprintWords := bits.WordsPerHalf(n.nvars)

	for n.clauses.Len() > 0 {
		comp := newNode(n.alloc, n.scratch, n.nvars)
		fp := bits.NewVec(make([]uint64, footprintWords))

		seed := n.clauses.At(0)
		seed.EnrichVariables(fp)

		for {
			before := comp.clauses.Len()
			n.clauses.ExtractIn(comp.clauses, func(c *bits.Clause) bool {
				return c.HasVariables(fp)
			})
			for _, c := range comp.clauses.Clauses()[before:] {
				c.EnrichVariables(fp)
			}
			if comp.clauses.Len() == before {
				break
			}
		}
		components = append(components, comp)
	}

	sortBySize(components)
	return components
}

func sortBySize(components []*node) {
	for i := 1; i < len(components); i++ {
		v := components[i]
		j := i - 1
		for j >= 0 && components[j].clauses.Len() > v.clauses.Len() {
			components[j+1] = components[j]
			j--
		}
		components[j+1] = v
	}
}
