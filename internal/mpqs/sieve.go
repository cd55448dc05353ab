package mpqs

import (
	"math/big"

	"github.com/folidota/arithmoi/internal/numeric"
)

// Sieve holds the mutable log-residue vector for one polynomial
// iteration (spec.md §4.4). It is scoped to a single Polynomial and
// released once its survivors have been harvested (§5's resource
// model: no sieve vector outlives the iteration that built it).
type Sieve struct {
	Poly   *Polynomial
	M      int64
	Values []int32 // length 2M+1, Values[i] corresponds to t = i-M
}

// RunSieve allocates and runs the log sieve for one polynomial over
// the factor base, returning the populated Sieve.
//
// For each factor-base prime p with gcd(a,p)=1, the two starting
// offsets are i0 = (m + (rⱼ-b)·a⁻¹) mod p. For p | a, a single offset
// comes from (2b)⁻¹ mod p. p=2 is handled separately (spec.md §9's
// second Open Question): since a is always odd (its prime factors are
// chosen near q* > 2), Q(t) ≡ a·t + c ≡ t + c (mod 2), so the single
// root is t ≡ c (mod 2) — no modular inverse needed.
func RunSieve(poly *Polynomial, fb *FactorBase, m int64) (*Sieve, error) {
	length := 2*m + 1
	values := make([]int32, length)

	for i := int64(0); i < length; i++ {
		t := i - m
		q := poly.Eval(t)
		abs := new(big.Int).Abs(q)
		if abs.Sign() == 0 {
			// Q(t)=0 only when n is a perfect square. FactorWithConfig's
			// perfect-square precheck rules that out before any sieve
			// runs; a caller reaching RunSieve directly gets this error.
			return nil, ErrInternalInconsistency
		}
		values[i] = int32(numeric.IntegerLog2(abs))
	}

	s := &Sieve{Poly: poly, M: m, Values: values}

	for _, e := range fb.Entries {
		if e.P == 2 {
			s.sieveP2(e)
			continue
		}
		if err := s.sieveOddPrime(e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Sieve) sieveP2(e FactorBaseEntry) {
	cMod2 := new(big.Int).Mod(s.Poly.C, big.NewInt(2)).Int64()
	i0 := (s.M + cMod2) % 2
	s.strikeLogs(i0, 2, e.Log2P)
}

func (s *Sieve) sieveOddPrime(e FactorBaseEntry) error {
	p := new(big.Int).SetUint64(e.P)
	aModP := new(big.Int).Mod(s.Poly.A, p)

	if aModP.Sign() != 0 {
		aInv := new(big.Int).ModInverse(aModP, p)
		if aInv == nil {
			return ErrInternalInconsistency
		}
		bMod := new(big.Int).Mod(s.Poly.B, p)
		for _, r := range e.Roots {
			diff := new(big.Int).Sub(new(big.Int).SetUint64(r), bMod)
			diff.Mul(diff, aInv)
			i0 := new(big.Int).Add(big.NewInt(s.M), diff)
			i0.Mod(i0, p)
			s.strikeLogs(i0.Int64(), int64(e.P), e.Log2P)
		}
		return nil
	}

	twoB := new(big.Int).Lsh(s.Poly.B, 1)
	twoBModP := new(big.Int).Mod(twoB, p)
	if twoBModP.Sign() == 0 {
		return ErrInternalInconsistency
	}
	inv := new(big.Int).ModInverse(twoBModP, p)
	if inv == nil {
		return ErrInternalInconsistency
	}
	cModP := new(big.Int).Mod(s.Poly.C, p)
	offset := new(big.Int).Mul(cModP, inv)
	offset.Neg(offset)
	i0 := new(big.Int).Add(big.NewInt(s.M), offset)
	i0.Mod(i0, p)
	s.strikeLogs(i0.Int64(), int64(e.P), e.Log2P)
	return nil
}

func (s *Sieve) strikeLogs(start, stride int64, log2p int) {
	delta := int32(log2p)
	length := int64(len(s.Values))
	for i := start; i < length; i += stride {
		s.Values[i] -= delta
	}
}

// Survivors returns the indices i (0-based into Values, t = i-m) whose
// residual log value is at or below the threshold h.
func (s *Sieve) Survivors(h int) []int64 {
	var out []int64
	for i, v := range s.Values {
		if int(v) <= h {
			out = append(out, int64(i))
		}
	}
	return out
}
