package engine

import (
	"fmt"

	"github.com/gopherlabs/kernelsat/internal/bits"
	"github.com/kr/pretty"
)

// DebugChecks gates the extra invariant verification checkInvariants runs.
// Off by default: the checks are O(n^2) over the clause spine and exist for
// development use, not production solving.
var DebugChecks = false

// checkInvariants verifies the clause set invariants kernelize.go's sweeps
// promise to maintain: the spine sorted ascending by width, no clause a
// tautology, no clause a subset of a later one. Panics with a pretty-printed
// dump of the offending node on violation.
func checkInvariants(n *node) {
	if !DebugChecks {
		return
	}
	clauses := n.clauses.Clauses()
	for i, c := range clauses {
		if c.Tautologous() {
			panic(fmt.Sprintf("engine: invariant violated: clause %d is tautologous\n%# v",
				i, pretty.Formatter(dumpClauses(clauses))))
		}
		if i > 0 && clauses[i-1].CountOnes() > c.CountOnes() {
			panic(fmt.Sprintf("engine: invariant violated: clause spine not sorted at %d\n%# v",
				i, pretty.Formatter(dumpClauses(clauses))))
		}
		for j := i + 1; j < len(clauses); j++ {
			if c.SubsetOf(clauses[j]) {
				panic(fmt.Sprintf("engine: invariant violated: clause %d subsumes clause %d\n%# v",
					i, j, pretty.Formatter(dumpClauses(clauses))))
			}
		}
	}
}

// dumpClauses renders a clause slice as plain int literal lists, the shape
// pretty.Formatter produces a readable diff-friendly dump of (bits.Clause
// itself holds unexported arena-backed state that pretty would otherwise
// print as opaque word slices).
func dumpClauses(clauses []*bits.Clause) [][]int {
	out := make([][]int, len(clauses))
	for i, c := range clauses {
		var lits []int
		c.IterLiterals(func(l bits.Lit) bool {
			lits = append(lits, int(l))
			return true
		})
		out[i] = lits
	}
	return out
}
