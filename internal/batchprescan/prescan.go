package batchprescan

import (
	"math/big"

	"github.com/ncw/gmp"
)

// pairwiseLimit is the batch size below which the O(n²) pairwise scan
// is cheap enough to run unconditionally; above it, Prescan switches
// to the O(n) product-accumulation pass instead.
const pairwiseLimit = 256

// Prescan checks whether any of ns shares a prime factor (or is an
// outright duplicate) with another entry in the same batch, splitting
// every one it can without invoking internal/mpqs at all. factored
// maps the index of every split/duplicate entry to its result;
// remaining lists the indices that still need a real factoring run.
func Prescan(ns []*big.Int) (factored map[int]Factorization, remaining []int) {
	gmpModuli := make([]*gmp.Int, len(ns))
	for i, n := range ns {
		gmpModuli[i] = toGMP(n)
	}

	out := make(chan indexed, len(ns))
	if len(ns) <= pairwiseLimit {
		go pairwiseGCD(gmpModuli, out)
	} else {
		go accumGCD(gmpModuli, out)
	}

	factored = make(map[int]Factorization)
	for r := range out {
		if _, already := factored[r.idx]; !already {
			factored[r.idx] = r.f
		}
	}

	remaining = make([]int, 0, len(ns)-len(factored))
	for i := range ns {
		if _, ok := factored[i]; !ok {
			remaining = append(remaining, i)
		}
	}
	return factored, remaining
}
