package numeric

import "math/big"

// FactorBaseProduct returns the product of every prime in primes, the
// scratch value TrialDivide and SmoothPart consume to batch-test
// divisibility in one gcd instead of one division per prime.
func FactorBaseProduct(primes []uint64) *big.Int {
	product := big.NewInt(1)
	p := new(big.Int)
	for _, prime := range primes {
		p.SetUint64(prime)
		product.Mul(product, p)
	}
	return product
}

// SmoothPart returns the largest divisor of |q| composed entirely of
// primes dividing primesProduct, via repeated gcd-and-peel.
//
// This is a single-candidate reduction of D.J. Bernstein's
// product/remainder-tree "smooth parts" technique, which normally
// applies across a whole batch of moduli at once via a shared
// remainder tree: instead of trial-dividing q by every factor-base
// prime one at a time, a single gcd against the product of all of
// them detects whether q has *any* factor-base divisor left, and the
// quotient after peeling it off is tested again until none remain.
// Each gcd is one big.Int operation rather than up to len(primes)
// divisions.
func SmoothPart(q, primesProduct *big.Int) *big.Int {
	z := new(big.Int).Abs(q)
	result := big.NewInt(1)
	g := new(big.Int)
	for {
		g.GCD(nil, nil, z, primesProduct)
		if g.Cmp(bigOne) == 0 {
			return result
		}
		result.Mul(result, g)
		z.Quo(z, g)
	}
}

// TrialDivide factors q over primes (already known, via SmoothPart, to
// divide its factor-base-smooth part) and returns the exponent of each
// dividing prime together with the residual cofactor q / ∏ p^e.
//
// primes must be ascending; primesProduct is FactorBaseProduct(primes)
// (callers cache it once per factor base rather than recomputing it
// per candidate).
func TrialDivide(primes []uint64, primesProduct *big.Int, q *big.Int) (exponents map[uint64]int, cofactor *big.Int) {
	cofactor = new(big.Int).Abs(q)
	exponents = make(map[uint64]int)

	smooth := SmoothPart(cofactor, primesProduct)
	if smooth.Cmp(bigOne) == 0 {
		return exponents, cofactor
	}

	remaining := new(big.Int).Set(smooth)
	bp := new(big.Int)
	for _, p := range primes {
		if remaining.Cmp(bigOne) == 0 {
			break
		}
		bp.SetUint64(p)
		for new(big.Int).Mod(remaining, bp).Sign() == 0 {
			remaining.Quo(remaining, bp)
			cofactor.Quo(cofactor, bp)
			exponents[p]++
		}
	}
	return exponents, cofactor
}
