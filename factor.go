package arithmoi

import (
	"math/big"

	"github.com/folidota/arithmoi/internal/numeric"
)

// trivialFactorBudget bounds how many trivial gcd(x-y, n) results
// FactorWithConfig tolerates before concluding n likely isn't a
// composite this variation can split (spec.md §8 property 2: a
// non-trivial factor should appear within k+2 pairs with overwhelming
// probability; this budget is generous headroom above that).
func trivialFactorBudget(cfg Config) int {
	budget := 64 * (cfg.PolynomialExponent + 2)
	if budget < 64 {
		budget = 64
	}
	return budget
}

// Factor returns a non-trivial factor of n using AutoConfig's derived
// parameters.
func Factor(n *big.Int) (*big.Int, error) {
	return FactorWithConfig(n, AutoConfig(n))
}

// FactorWithConfig returns a non-trivial factor of n: it repeatedly
// pulls (x, y) pairs from a relation stream and returns the first
// gcd(x-y, n) that is neither 1 nor n (spec.md §6's `factor_with_config`,
// §7's local recovery from trivial factors via re-running with a
// different seed).
func FactorWithConfig(n *big.Int, cfg Config) (*big.Int, error) {
	return factorWithTrace(n, cfg, nil)
}

func factorWithTrace(n *big.Int, cfg Config, trace Trace) (*big.Int, error) {
	if numeric.IsPerfectSquare(n) {
		return nil, ErrInternalInconsistency
	}

	stream, err := RelationsWithTrace(n, cfg, trace)
	if err != nil {
		return nil, err
	}

	budget := trivialFactorBudget(cfg)
	for attempt := 0; attempt < budget; attempt++ {
		x, y, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if factor := nontrivialGCD(x, y, n); factor != nil {
			return factor, nil
		}
	}
	return nil, ErrInputNotComposite
}

// nontrivialGCD returns gcd(x-y, n) if it is strictly between 1 and n,
// or nil otherwise.
func nontrivialGCD(x, y, n *big.Int) *big.Int {
	diff := new(big.Int).Sub(x, y)
	diff.Mod(diff, n)
	if diff.Sign() == 0 {
		return nil
	}
	d := new(big.Int).GCD(nil, nil, diff, n)
	if d.Cmp(bigOne) == 0 || d.Cmp(n) == 0 {
		return nil
	}
	return d
}

var bigOne = big.NewInt(1)
