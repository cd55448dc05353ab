package mpqs

import "math/big"

// crtMerge combines two coprime-modulus residues x ≡ r1 (mod m1),
// x ≡ r2 (mod m2) into a single residue mod m1*m2, via Garner
// recomposition (the same two-step incremental CRT merge used for
// RNS coefficient recomposition elsewhere in the corpus).
func crtMerge(r1, m1, r2, m2 *big.Int) (r *big.Int, m *big.Int) {
	t := new(big.Int).Sub(r2, r1)
	t.Mod(t, m2)
	inv := new(big.Int).ModInverse(m1, m2)
	t.Mul(t, inv)
	t.Mod(t, m2)

	r = new(big.Int).Mul(m1, t)
	r.Add(r, r1)
	m = new(big.Int).Mul(m1, m2)
	r.Mod(r, m)
	return r, m
}
