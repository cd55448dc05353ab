// Package numeric provides the number-theoretic primitives that a
// self-initialising quadratic sieve treats as external collaborators:
// prime iteration, modular square roots, Jacobi symbols, integer
// roots/logs and batched trial division.
package numeric

import "math/big"

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// Jacobi returns the Jacobi symbol (a/n) for odd n > 0, using the
// reciprocity/quadratic-residue rules rather than factoring n.
//
// Adapted from the Yacas-book formulation (as used for fast Euler's
// criterion in threshold-signature moduli checks); reworked here to
// operate on a few local scratch big.Ints instead of allocating new
// values at every step.
func Jacobi(a, n *big.Int) int {
	if n.Sign() <= 0 || n.Bit(0) == 0 {
		panic("numeric: Jacobi requires odd positive n")
	}

	var x, y, t big.Int
	x.Set(a)
	y.Set(n)
	j := 1

	for {
		if x.Sign() == 0 {
			return 0
		}
		if y.Cmp(bigOne) == 0 {
			return j
		}

		x.Mod(&x, &y)
		if x.Sign() == 0 {
			return 0
		}

		s := 0
		for x.Bit(s) == 0 {
			s++
		}
		if s&1 == 1 {
			switch y.Bits()[0] & 7 {
			case 3, 5:
				j = -j
			}
		}
		t.Rsh(&x, uint(s))

		if y.Bits()[0]&3 == 3 && t.Bits()[0]&3 == 3 {
			j = -j
		}

		x.Set(&y)
		y.Set(&t)
	}
}
