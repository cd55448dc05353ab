package mpqs

import (
	"math/big"

	"github.com/folidota/arithmoi/internal/numeric"
)

// PrimeFactor is one prime factor of a self-initialising leading
// coefficient a = ∏ pᵢ²; Exponent is always 2.
type PrimeFactor struct {
	P        uint64
	Exponent int
}

// Polynomial is one member Q(t) = a·t² + 2b·t + c of a self-initialised
// family: a = ∏ pᵢ² (possibly the trivial a=1 for classical k=0 QS),
// b² ≡ n (mod a) with 0 < b ≤ a/2, and c = (b²-n)/a.
type Polynomial struct {
	A              *big.Int
	B              *big.Int
	C              *big.Int
	ADecomposition []PrimeFactor
}

// Eval returns Q(t) = a·t² + 2b·t + c exactly.
func (p *Polynomial) Eval(t int64) *big.Int {
	bt := big.NewInt(t)
	q := new(big.Int).Mul(p.A, bt)
	q.Mul(q, bt)
	twoB := new(big.Int).Lsh(p.B, 1)
	twoB.Mul(twoB, bt)
	q.Add(q, twoB)
	q.Add(q, p.C)
	return q
}

// PolyGenerator drives §4.3's self-initialisation loop: it owns the
// current a's prime factors and produces every (a, b) family in turn,
// advancing by dropping the smallest factor and extending with the
// next suitable prime when a family is exhausted.
type PolyGenerator struct {
	n      *big.Int
	m      int64
	k      int
	primes []uint64 // ascending, current a = ∏ primes[i]²

	trivialHarvested bool // true once the k=0 a=1 family has been handed out
	harvested        bool // true once the current non-trivial a's family has been handed out
}

// NewPolyGenerator builds a generator for the given n, sieve half-width
// m and polynomial exponent k. k=0 starts in classical single-polynomial
// mode (a=1); the first call to Advance (or the initial state) already
// represents a valid, if trivial, family.
func NewPolyGenerator(n *big.Int, m int64, k int) *PolyGenerator {
	g := &PolyGenerator{n: n, m: m, k: k}
	if k > 0 {
		if err := g.pickInitialPrimes(); err != nil {
			// Fall back to classical mode: Polynomials serves the
			// trivial a=1 family, and the orchestrator reports
			// ErrParametersTooSmall only once Advance has failed both
			// before and after its single widen step.
			g.k = 0
		}
	}
	return g
}

// targetPrimeSize computes q* = ⌊((2n)/m²)^(1/(4k))⌋.
func (g *PolyGenerator) targetPrimeSize() *big.Int {
	twoN := new(big.Int).Lsh(g.n, 1)
	mSq := big.NewInt(g.m)
	mSq.Mul(mSq, mSq)
	ratio := new(big.Int).Quo(twoN, mSq)
	if ratio.Sign() <= 0 {
		ratio.SetInt64(2)
	}
	return numeric.IntegerRoot(4*g.k, ratio)
}

func (g *PolyGenerator) suitable(p *big.Int) bool {
	if !p.IsUint64() || p.Bit(0) == 0 {
		return false
	}
	nmod := new(big.Int).Mod(g.n, p)
	if nmod.Sign() == 0 {
		return false
	}
	return numeric.Jacobi(nmod, p) == 1
}

// pickInitialPrimes selects k primes around q*, half strictly below
// and half at-or-above, each satisfying Jacobi(n,p)=+1 and fitting a
// machine word.
func (g *PolyGenerator) pickInitialPrimes() error {
	qStar := g.targetPrimeSize()
	if qStar.Sign() < 1 {
		qStar.SetInt64(2)
	}

	below := make([]uint64, 0, g.k)
	above := make([]uint64, 0, g.k)

	lowerHalf := g.k / 2
	upperHalf := g.k - lowerHalf

	cand := new(big.Int).Set(qStar)
	for len(below) < lowerHalf {
		cand = numeric.PrecPrime(cand)
		if cand == nil {
			return ErrParametersTooSmall
		}
		if g.suitable(cand) {
			below = append(below, cand.Uint64())
		}
	}

	cand = new(big.Int).Sub(qStar, big.NewInt(1))
	for len(above) < upperHalf {
		cand = numeric.NextPrime(cand)
		if !cand.IsUint64() {
			return ErrParametersTooSmall
		}
		if g.suitable(cand) {
			above = append(above, cand.Uint64())
		}
	}

	all := append(below, above...)
	g.primes = sortedUnique(all)
	if len(g.primes) != g.k {
		return ErrParametersTooSmall
	}
	return nil
}

func sortedUnique(xs []uint64) []uint64 {
	seen := make(map[uint64]bool, len(xs))
	out := make([]uint64, 0, len(xs))
	for _, x := range xs {
		if seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// CurrentA materialises a = ∏ pᵢ² and its decomposition for the
// generator's current prime set. k=0 (or a fallback from a failed
// pickInitialPrimes) yields the classical a=1.
func (g *PolyGenerator) CurrentA() (*big.Int, []PrimeFactor) {
	if len(g.primes) == 0 {
		return big.NewInt(1), nil
	}
	a := big.NewInt(1)
	decomp := make([]PrimeFactor, len(g.primes))
	bp := new(big.Int)
	for i, p := range g.primes {
		bp.SetUint64(p)
		sq := new(big.Int).Mul(bp, bp)
		a.Mul(a, sq)
		decomp[i] = PrimeFactor{P: p, Exponent: 2}
	}
	return a, decomp
}

// Polynomials enumerates every (a, b) family member as a *Polynomial,
// for the generator's current a. k=0 yields the single trivial
// polynomial a=1, b=0, c=-n. Each family is handed out exactly once;
// every call after that reports it as exhausted (an empty slice) until
// Advance moves to the next a, so refillPending advances instead of
// resieving the same block forever.
func (g *PolyGenerator) Polynomials() ([]*Polynomial, error) {
	a, decomp := g.CurrentA()
	if len(decomp) == 0 {
		if g.trivialHarvested {
			return nil, nil
		}
		g.trivialHarvested = true
		c := new(big.Int).Neg(g.n)
		return []*Polynomial{{A: a, B: big.NewInt(0), C: c, ADecomposition: nil}}, nil
	}
	if g.harvested {
		return nil, nil
	}
	g.harvested = true

	// CRT-combine ±√n (mod pᵢ²) across every prime factor of a.
	residues := [][2]*big.Int{} // each entry: the two roots mod pᵢ²
	moduli := make([]*big.Int, len(decomp))
	bp := new(big.Int)
	for i, f := range decomp {
		bp.SetUint64(f.P)
		r, ok := numeric.SqrtModPrimePower(g.n, bp, 2)
		if !ok {
			return nil, ErrInternalInconsistency
		}
		pSq := new(big.Int).Mul(bp, bp)
		other := new(big.Int).Sub(pSq, r)
		residues = append(residues, [2]*big.Int{r, other})
		moduli[i] = pSq
	}

	var bs []*big.Int
	combos := 1 << uint(len(decomp))
	aHalf := new(big.Int).Rsh(a, 1)
	for mask := 0; mask < combos; mask++ {
		r := new(big.Int).Set(residues[0][bit(mask, 0)])
		m := new(big.Int).Set(moduli[0])
		for i := 1; i < len(decomp); i++ {
			r, m = crtMerge(r, m, residues[i][bit(mask, i)], moduli[i])
		}
		if r.Cmp(aHalf) <= 0 && r.Sign() > 0 {
			bs = append(bs, r)
		}
	}

	polys := make([]*Polynomial, 0, len(bs))
	for _, b := range bs {
		c := new(big.Int).Mul(b, b)
		c.Sub(c, g.n)
		c.Quo(c, a)
		polys = append(polys, &Polynomial{A: a, B: b, C: c, ADecomposition: decomp})
	}
	return polys, nil
}

func bit(mask, i int) int {
	return (mask >> uint(i)) & 1
}

// Advance moves to the next (a, {b}) family (§4.3's exhaustion rule):
// from the k=0 trivial a, jump to k=1; otherwise drop the smallest
// prime factor of a and extend by the next suitable prime strictly
// larger than the current maximum factor.
func (g *PolyGenerator) Advance() error {
	g.harvested = false
	if len(g.primes) == 0 {
		g.k = 1
		return g.pickInitialPrimes()
	}

	maxPrime := g.primes[len(g.primes)-1]
	g.primes = g.primes[1:]

	cand := new(big.Int).SetUint64(maxPrime)
	for {
		cand = numeric.NextPrime(cand)
		if !cand.IsUint64() {
			return ErrParametersTooSmall
		}
		if g.suitable(cand) {
			g.primes = append(g.primes, cand.Uint64())
			break
		}
	}
	return nil
}

