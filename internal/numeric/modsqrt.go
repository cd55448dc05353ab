package numeric

import "math/big"

// SqrtModPrime returns one square root r of n modulo the odd prime p,
// with 0 <= r < p, such that r*r ≡ n (mod p). The other root is p-r.
// ok is false if n is not a quadratic residue mod p.
//
// Uses the Tonelli-Shanks algorithm, taking the p ≡ 3 (mod 4)
// shortcut when available (the common case for sieve-sized primes).
func SqrtModPrime(n, p *big.Int) (r *big.Int, ok bool) {
	nmod := new(big.Int).Mod(n, p)
	if nmod.Sign() == 0 {
		return big.NewInt(0), true
	}
	if Jacobi(nmod, p) != 1 {
		return nil, false
	}

	four := big.NewInt(4)
	if new(big.Int).Mod(p, four).Int64() == 3 {
		exp := new(big.Int).Add(p, bigOne)
		exp.Rsh(exp, 2)
		r = new(big.Int).Exp(nmod, exp, p)
		return r, true
	}

	// General Tonelli-Shanks: p - 1 = q * 2^s, q odd.
	q := new(big.Int).Sub(p, bigOne)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	z := big.NewInt(2)
	for Jacobi(z, p) != -1 {
		z.Add(z, bigOne)
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(nmod, q, p)
	qPlus1Over2 := new(big.Int).Add(q, bigOne)
	qPlus1Over2.Rsh(qPlus1Over2, 1)
	r = new(big.Int).Exp(nmod, qPlus1Over2, p)

	one := bigOne
	for {
		if t.Cmp(one) == 0 {
			return r, true
		}
		i, tt := 0, new(big.Int).Set(t)
		for tt.Cmp(one) != 0 {
			tt.Mul(tt, tt)
			tt.Mod(tt, p)
			i++
			if i == m {
				return nil, false // n was not actually a residue; caller's Jacobi lied or arithmetic fault.
			}
		}
		b := new(big.Int).Exp(c, new(big.Int).Lsh(bigOne, uint(m-i-1)), p)
		m = i
		c.Mul(b, b)
		c.Mod(c, p)
		t.Mul(t, c)
		t.Mod(t, p)
		r.Mul(r, b)
		r.Mod(r, p)
	}
}

// SqrtModPrimePower lifts a square root of n modulo p to modulo p^2
// via one step of Hensel's lemma; p must be an odd prime not dividing
// n, and e must be 2 (the only power the polynomial generator needs:
// every prime factor of a self-initialising leading coefficient
// appears with exponent exactly 2).
func SqrtModPrimePower(n, p *big.Int, e int) (r *big.Int, ok bool) {
	if e != 2 {
		panic("numeric: SqrtModPrimePower only supports e=2")
	}
	r0, ok := SqrtModPrime(n, p)
	if !ok {
		return nil, false
	}
	if r0.Sign() == 0 {
		return nil, false // p | n: caller must exclude such primes from a's factors.
	}

	pSquared := new(big.Int).Mul(p, p)
	inv2r0 := new(big.Int).Lsh(r0, 1)
	inv2r0.ModInverse(inv2r0, p)
	if inv2r0 == nil {
		return nil, false
	}

	diff := new(big.Int).Mul(r0, r0)
	diff.Sub(diff, n)
	diff.Mod(diff, pSquared)
	diff.Div(diff, p) // r0^2 ≡ n (mod p), so diff is always a multiple of p.

	delta := new(big.Int).Mul(diff, inv2r0)
	delta.Mod(delta, p)

	r = new(big.Int).Sub(r0, new(big.Int).Mul(delta, p))
	r.Mod(r, pSquared)
	return r, true
}

// SqrtModTwoCubed returns n reduced modulo 8 (n & 7); its low bit,
// n mod 2, is the single square root of n modulo 2. It is used to
// seed the p=2 factor-base entry (spec's Open Question:
// the generic modular-square-root primitive returns at most one root
// for p=2, so the sieve carries a single starting offset for it).
func SqrtModTwoCubed(n *big.Int) *big.Int {
	return new(big.Int).And(n, big.NewInt(7))
}
