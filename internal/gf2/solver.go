package gf2

// dependencies performs structured Gaussian elimination over the
// matrix's columns (in the order given) and returns one dependency for
// each column that reduces to zero: a nonempty set of column indices
// whose vectors XOR to zero. Together these form a basis of the
// kernel; other XOR-to-zero subsets are not listed.
//
// This is the standard "triangularize, then read off dependencies"
// approach used by every practical sparse GF(2) solver in the
// quadratic-sieve family (the cgo/flint-backed `solver.Roots` found in
// the retrieved corpus solves a related but distinct problem —
// polynomial roots over a field — and isn't a GF(2) linear solver;
// there is no pack repo offering one, so this is hand-built against
// spec.md's §6 interface directly).
func (m *Matrix) dependencies() [][]int {
	pivotColumn := make([]int, m.rows) // row -> column that claimed it as pivot, or -1
	for i := range pivotColumn {
		pivotColumn[i] = -1
	}
	reducedVec := make([][]uint64, m.rows)
	reducedCombo := make([][]int, m.rows)

	var deps [][]int
	for j, col := range m.columns {
		vec := make([]uint64, m.words)
		copy(vec, col)
		combo := []int{j}

		for {
			pivot := highestSetBit(vec)
			if pivot == -1 {
				deps = append(deps, combo)
				break
			}
			if pivotColumn[pivot] == -1 {
				pivotColumn[pivot] = j
				reducedVec[pivot] = vec
				reducedCombo[pivot] = combo
				break
			}
			xorInto(vec, reducedVec[pivot])
			combo = xorCombo(combo, reducedCombo[pivot])
		}
	}
	return deps
}

// xorCombo computes the symmetric difference of two column index
// lists — GF(2) addition of the "which original columns did we XOR
// together" bookkeeping vector. Neither input nor output is sorted.
func xorCombo(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	for _, x := range a {
		seen[x] = !seen[x]
	}
	for _, x := range b {
		seen[x] = !seen[x]
	}
	out := make([]int, 0, len(seen))
	for x, present := range seen {
		if present {
			out = append(out, x)
		}
	}
	return out
}

// Solve returns one kernel vector (a nonempty set of column indices
// whose vectors XOR to zero). seed selects which of the matrix's
// independent dependencies to return, so that repeated calls with
// successive seeds (spec.md §4.7's "fresh seeds up to an attempt
// budget") enumerate distinct candidates instead of looping on the
// same trivial one. Returns ErrNoKernel if the matrix has full column
// rank.
func (m *Matrix) Solve(seed int) ([]int, error) {
	deps := m.dependencies()
	if len(deps) == 0 {
		return nil, ErrNoKernel
	}
	idx := seed % len(deps)
	if idx < 0 {
		idx += len(deps)
	}
	return deps[idx], nil
}
