package mpqs

import (
	"math/big"

	"github.com/folidota/arithmoi/internal/gf2"
)

// KernelAttemptBudget is a fresh-seed solver-call budget per matrix.
// The orchestrator does not consult it: Next keeps advancing the seed
// against the current matrix (Solve wraps it around the available
// dependencies) and rebuilds the matrix only when the solver finds no
// kernel vector; it never widens parameters because of solver attempts.
const KernelAttemptBudget = 5

// NextPair asks the GF(2) solver for a kernel vector under the given
// seed and reconstructs the corresponding (x, y) pair. It returns
// gf2.ErrNoKernel when the matrix has full column rank — the caller
// should request more relations or widen parameters.
func NextPair(n *big.Int, matrix *gf2.Matrix, rels []Relation, seed int) (x, y *big.Int, err error) {
	columns, err := matrix.Solve(seed)
	if err != nil {
		return nil, nil, err
	}
	x, y, ok := ReconstructPair(n, rels, columns)
	if !ok {
		return nil, nil, ErrInternalInconsistency
	}
	return x, y, nil
}

// ReconstructPair combines the relations named by columns into
// x = ∏ relation.X (mod n) and y = √(∏ exponentsⱼ) (mod n), per
// spec.md §4.7. ok is false if some prime's summed exponent came out
// odd — a kernel-vector invariant violation (internal inconsistency,
// not a caller error).
func ReconstructPair(n *big.Int, rels []Relation, columns []int) (x, y *big.Int, ok bool) {
	x = big.NewInt(1)
	total := make(map[uint64]int)
	for _, j := range columns {
		r := rels[j]
		x.Mul(x, r.X)
		x.Mod(x, n)
		for p, e := range r.Exponents {
			total[p] += e
		}
	}

	y = big.NewInt(1)
	bp := new(big.Int)
	half := new(big.Int)
	for p, e := range total {
		if e%2 != 0 {
			return nil, nil, false
		}
		if e == 0 {
			continue
		}
		bp.SetUint64(p)
		half.SetInt64(int64(e / 2))
		y.Mul(y, new(big.Int).Exp(bp, half, n))
		y.Mod(y, n)
	}
	return x, y, true
}
