package mpqs

import (
	"math/big"

	"github.com/folidota/arithmoi/internal/numeric"
)

// FactorBaseEntry is one prime admitted to the factor base: the prime
// itself, the root(s) r with r² ≡ n (mod p), and ⌊log2 p⌋ for the log
// sieve. p=2 always carries exactly one root (spec.md §9's second Open
// Question): the canonical root of n mod 8, since n is odd and its
// only prime-factor contribution mod 2 is its parity.
type FactorBaseEntry struct {
	P     uint64
	Roots []uint64
	Log2P int
}

// FactorBase is the ordered list of admitted primes plus the implicit
// "prime -1" sentinel (index 0, tracking the sign of Q(t)) that every
// relation's exponent vector may also reference.
type FactorBase struct {
	Entries []FactorBaseEntry
	Product *big.Int // product of every Entries[i].P, cached for TrialDivide
}

// BuildFactorBase enumerates every prime p <= bound with p=2 or
// Jacobi(n mod p, p) = +1, precomputing √n mod p for each. Returns
// ErrParametersTooSmall if no prime qualifies.
func BuildFactorBase(n *big.Int, bound int64) (*FactorBase, error) {
	if bound < 2 {
		return nil, ErrParametersTooSmall
	}

	entries := make([]FactorBaseEntry, 0, 256)
	for _, p := range numeric.PrimesUpTo(uint64(bound)) {
		if p == 2 {
			root := numeric.SqrtModTwoCubed(n).Uint64() & 1
			entries = append(entries, FactorBaseEntry{P: 2, Roots: []uint64{root}, Log2P: 1})
			continue
		}

		bp := new(big.Int).SetUint64(p)
		nmod := new(big.Int).Mod(n, bp)
		if numeric.Jacobi(nmod, bp) != 1 {
			continue
		}
		r, ok := numeric.SqrtModPrime(nmod, bp)
		if !ok {
			// Jacobi said +1; a solver failure here is an arithmetic
			// fault, not a parameter problem.
			continue
		}
		r2 := new(big.Int).Sub(bp, r)
		entries = append(entries, FactorBaseEntry{
			P:     p,
			Roots: []uint64{r.Uint64(), r2.Uint64()},
			Log2P: numeric.IntegerLog2(bp),
		})
	}

	if len(entries) == 0 {
		return nil, ErrParametersTooSmall
	}

	primes := make([]uint64, len(entries))
	for i, e := range entries {
		primes[i] = e.P
	}

	return &FactorBase{
		Entries: entries,
		Product: numeric.FactorBaseProduct(primes),
	}, nil
}

// Primes returns the ascending list of factor-base primes (excluding
// the -1 sentinel), for TrialDivide.
func (fb *FactorBase) Primes() []uint64 {
	out := make([]uint64, len(fb.Entries))
	for i, e := range fb.Entries {
		out[i] = e.P
	}
	return out
}

// LargestPrime returns the largest prime in the factor base, the
// threshold above which a leftover cofactor is treated as a candidate
// large prime rather than a failed smoothness test.
func (fb *FactorBase) LargestPrime() uint64 {
	return fb.Entries[len(fb.Entries)-1].P
}
