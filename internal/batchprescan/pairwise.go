package batchprescan

import (
	"math/big"
	"runtime"
	"sync"

	"github.com/ncw/gmp"
)

// indexed tags a Factorization with the position in the caller's batch
// it was recovered for.
type indexed struct {
	idx int
	f   Factorization
}

// pairwiseGCD runs every pair (i, j) with i<j through a GMP-backed
// GCD, sharded across NumCPU worker goroutines by row offset — the
// same worker-striping idiom as basic_pairwise.go's pairwiseThread.
// O(n²) GCDs; Prescan only selects this path below pairwiseLimit,
// where that cost is still trivial next to a single MPQS run.
func pairwiseGCD(moduli []*gmp.Int, out chan<- indexed) {
	var wg sync.WaitGroup
	nThreads := runtime.NumCPU()
	if nThreads < 1 {
		nThreads = 1
	}

	wg.Add(nThreads)
	for start := 0; start < nThreads; start++ {
		go pairwiseThread(start, nThreads, &wg, moduli, out)
	}
	wg.Wait()
	close(out)
}

func pairwiseThread(start, step int, wg *sync.WaitGroup, moduli []*gmp.Int, out chan<- indexed) {
	defer wg.Done()
	gcd := gmp.NewInt(0)

	for i := start; i < len(moduli); i += step {
		for j := i + 1; j < len(moduli); j++ {
			m1, m2 := moduli[i], moduli[j]
			if m1.Cmp(m2) == 0 {
				out <- indexed{i, Factorization{Modulus: toBig(m1)}}
				out <- indexed{j, Factorization{Modulus: toBig(m2)}}
				continue
			}
			if gcd.GCD(nil, nil, m1, m2).BitLen() == 1 { // BitLen 1 means gcd==1
				continue
			}
			out <- indexed{i, factorPair(m1, gcd)}
			out <- indexed{j, factorPair(m2, gcd)}
			gcd = gmp.NewInt(0) // the mutated gcd is now owned by both results above
		}
	}
}

func factorPair(m, p *gmp.Int) Factorization {
	q := gmp.NewInt(0).Quo(m, p)
	return Factorization{Modulus: toBig(m), P: toBig(p), Q: toBig(q)}
}

func toBig(g *gmp.Int) *big.Int {
	return new(big.Int).SetBytes(g.Bytes())
}

func toGMP(b *big.Int) *gmp.Int {
	return new(gmp.Int).SetBytes(b.Bytes())
}
