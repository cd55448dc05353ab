package mpqs

import (
	"math/big"

	"github.com/folidota/arithmoi/internal/numeric"
)

// Relation is a verified-smooth sieve survivor (emitted directly, or
// after large-prime pairing): x with x² ≡ (the signed product encoded
// by Negative and Exponents) (mod n). Individual exponents may be odd;
// the kernel driver combines relations whose summed exponents are all
// even.
// Exponents is the exponent vector of a·Q(i) (spec.md §3): the
// factor-base primes dividing Q(i) merged with a's own decomposition
// (each prime of a contributing its exponent-2 from a = ∏pᵢ²).
type Relation struct {
	X         *big.Int
	Negative  bool
	Exponents map[uint64]int
}

// partial is a sieve survivor whose cofactor, after full trial
// division, is a single prime strictly above the factor base (spec.md
// GLOSSARY's "partial relation").
type partial struct {
	x          *big.Int
	negative   bool
	exponents  map[uint64]int
	largePrime uint64
}

// mergeADecomposition folds a's own prime factors (each to exponent 2,
// since a = ∏pᵢ²) into Q(i)'s own trial-division exponents, producing
// the exponent vector of a·Q(i) — spec.md §3's relation definition.
func mergeADecomposition(qExponents map[uint64]int, decomp []PrimeFactor) map[uint64]int {
	out := make(map[uint64]int, len(qExponents)+len(decomp))
	for p, e := range qExponents {
		out[p] = e
	}
	for _, f := range decomp {
		out[f.P] += f.Exponent
	}
	return out
}

// ExtractRelations filters a sieve's survivors by the log threshold,
// verifies smoothness by trial division against the factor base, and
// harvests single-large-prime partials (spec.md §4.5, steps 1-3).
// Large-prime pairing (step 4) is applied separately: the orchestrator
// feeds each partial to the relation store's AddPartial, which pairs
// it against a match from this block or any earlier one, and PairPartials below
// offers the same combination logic for a self-contained batch.
func ExtractRelations(sieve *Sieve, fb *FactorBase, h int) (full []Relation, partials []partial, err error) {
	primes := fb.Primes()
	for _, i := range sieve.Survivors(h) {
		t := i - sieve.M
		q := sieve.Poly.Eval(t)
		if q.Sign() == 0 {
			return nil, nil, ErrInternalInconsistency
		}
		negative := q.Sign() < 0

		exps, cofactor := numeric.TrialDivide(primes, fb.Product, q)
		x := new(big.Int).Mul(sieve.Poly.A, big.NewInt(t))
		x.Add(x, sieve.Poly.B)

		switch {
		case cofactor.Cmp(bigOne) == 0:
			full = append(full, Relation{
				X:         x,
				Negative:  negative,
				Exponents: mergeADecomposition(exps, sieve.Poly.ADecomposition),
			})
		case cofactor.IsUint64() && cofactor.Uint64() > fb.LargestPrime() && cofactor.ProbablyPrime(20):
			partials = append(partials, partial{
				x:          x,
				negative:   negative,
				exponents:  mergeADecomposition(exps, sieve.Poly.ADecomposition),
				largePrime: cofactor.Uint64(),
			})
		default:
			// Residual cofactor is composite, or a prime within the
			// factor base bound that simply isn't a base member
			// (Jacobi(n,p) = -1 for it) — neither smooth nor usable
			// for large-prime pairing.
		}
	}
	return full, partials, nil
}

var bigOne = big.NewInt(1)

// combinePartials merges two sieve survivors that share the cofactor
// prime p into one full relation (spec.md §4.5 step 4): x =
// x_a·x_b mod n, exponents summed so p's exponent becomes even (each
// side contributes one power of it).
func combinePartials(a, b partial, p uint64, n *big.Int) Relation {
	x := new(big.Int).Mul(a.x, b.x)
	x.Mod(x, n)
	exps := make(map[uint64]int, len(a.exponents)+len(b.exponents))
	for prime, e := range a.exponents {
		exps[prime] += e
	}
	for prime, e := range b.exponents {
		exps[prime] += e
	}
	exps[p] += 2
	return Relation{X: x, Negative: a.negative != b.negative, Exponents: exps}
}

// PairPartials implements spec.md §4.5 step 4 within a single batch of
// partials: find the large prime shared by the most of them (at least
// 2), pick one as pivot, and combine it with every other partial
// sharing that prime into a full relation. The pivot itself is never
// emitted on its own.
func PairPartials(partials []partial, n *big.Int) []Relation {
	byPrime := make(map[uint64][]partial)
	for _, p := range partials {
		byPrime[p.largePrime] = append(byPrime[p.largePrime], p)
	}

	var best uint64
	bestCount := 0
	for lp, list := range byPrime {
		if len(list) > bestCount {
			bestCount = len(list)
			best = lp
		}
	}
	if bestCount < 2 {
		return nil
	}

	list := byPrime[best]
	pivot := list[0]
	out := make([]Relation, 0, len(list)-1)
	for _, other := range list[1:] {
		out = append(out, combinePartials(pivot, other, best, n))
	}
	return out
}
