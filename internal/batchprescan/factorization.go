// Package batchprescan runs a batch-GCD prescan over a set of RSA-style
// moduli before any of them pays for a full MPQS run: two moduli that
// share a prime factor split for free via gcd(n1, n2) (Heninger and
// Halderman, "Mining Your Ps and Qs", 2012). It sits in front of
// internal/mpqs as an additive batch optimisation, leaving single-n
// factoring semantics untouched.
package batchprescan

import (
	"fmt"
	"math/big"
)

// Factorization is one prescan result: either a bare duplicate modulus
// report (P, Q nil) or a fully recovered two-prime factorisation,
// neither of which required a sieve.
type Factorization struct {
	Modulus *big.Int
	P       *big.Int
	Q       *big.Int
}

// HavePrivate reports whether P and Q were actually recovered.
func (f Factorization) HavePrivate() bool {
	return f.P != nil || f.Q != nil
}

func (f Factorization) String() string {
	if !f.HavePrivate() {
		return fmt.Sprintf("duplicate modulus: %x", f.Modulus)
	}
	p, q := f.P, f.Q
	if p.Cmp(q) > 0 {
		p, q = q, p
	}
	return fmt.Sprintf("factored: n=%x p=%x q=%x", f.Modulus, p, q)
}

// Verify reports whether P*Q reconstructs Modulus exactly.
func (f Factorization) Verify() bool {
	if !f.HavePrivate() {
		return true
	}
	n := new(big.Int).Mul(f.P, f.Q)
	return n.Cmp(f.Modulus) == 0
}
