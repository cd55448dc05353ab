package numeric

import "math/big"

// smallPrimeSieve caches primes up to a modest bound via a plain
// Sieve of Eratosthenes, the same shape used to seed prime tables in
// safe-prime generators across the corpus. PrimesUpTo serves bounds
// within the cached range from it; NextPrime/PrecPrime do not use it
// and step through candidates with probable-primality testing.
var smallPrimeSieve = sieveUpTo(1 << 20)

func sieveUpTo(limit int) []uint64 {
	if limit < 2 {
		return nil
	}
	composite := make([]bool, limit+1)
	primes := make([]uint64, 0, limit/10)
	for p := 2; p <= limit; p++ {
		if composite[p] {
			continue
		}
		primes = append(primes, uint64(p))
		if p > limit/p {
			continue
		}
		for i := p * p; i <= limit; i += p {
			composite[i] = true
		}
	}
	return primes
}

// NextPrime returns the smallest prime strictly greater than x.
func NextPrime(x *big.Int) *big.Int {
	cand := new(big.Int).Add(x, bigOne)
	if cand.Sign() <= 0 {
		cand.SetInt64(2)
	}
	if cand.Cmp(big.NewInt(2)) <= 0 {
		return big.NewInt(2)
	}
	if cand.Bit(0) == 0 {
		cand.Add(cand, bigOne)
	}
	for !cand.ProbablyPrime(20) {
		cand.Add(cand, big.NewInt(2))
	}
	return cand
}

// PrecPrime returns the largest prime strictly less than x, or nil if
// no such prime exists (x <= 2).
func PrecPrime(x *big.Int) *big.Int {
	cand := new(big.Int).Sub(x, bigOne)
	if cand.Cmp(big.NewInt(2)) < 0 {
		if cand.Cmp(big.NewInt(2)) == 0 {
			return big.NewInt(2)
		}
		return nil
	}
	if cand.Cmp(big.NewInt(2)) == 0 {
		return cand
	}
	if cand.Bit(0) == 0 {
		cand.Sub(cand, bigOne)
	}
	for cand.Cmp(big.NewInt(2)) > 0 && !cand.ProbablyPrime(20) {
		cand.Sub(cand, big.NewInt(2))
	}
	if cand.Cmp(big.NewInt(2)) < 0 {
		return nil
	}
	return cand
}

// PrimesUpTo enumerates every prime p <= bound as uint64s, using the
// cached sieve when bound fits within it and walking NextPrime
// otherwise.
func PrimesUpTo(bound uint64) []uint64 {
	if bound <= uint64(len(smallPrimeSieve)*20) && bound < 1<<20 {
		out := make([]uint64, 0, len(smallPrimeSieve))
		for _, p := range smallPrimeSieve {
			if p > bound {
				break
			}
			out = append(out, p)
		}
		return out
	}
	out := make([]uint64, 0, 1024)
	p := big.NewInt(1)
	for {
		p = NextPrime(p)
		if !p.IsUint64() || p.Uint64() > bound {
			break
		}
		out = append(out, p.Uint64())
	}
	return out
}
