package batchprescan

import (
	"runtime"
	"sync"

	"github.com/ncw/gmp"
)

type gcdTask struct {
	accum *gmp.Int
	i     int
}

// accumGCD runs one left-to-right product-accumulation pass (the
// other half of Heninger/Halderman's technique): each modulus is
// GCD'd against the running product of every earlier modulus in a
// single O(n) sweep, so only a modulus whose accumulated GCD comes out
// non-trivial pays the extra O(n) scan needed to name which other
// modulus it collides with. Ported from mul_accum.go's MulAccumGCD;
// Prescan selects this path once the batch is too large for the
// pairwise scan to stay cheap.
func accumGCD(moduli []*gmp.Int, out chan<- indexed) {
	accum := gmp.NewInt(1)
	var wg sync.WaitGroup
	nThreads := runtime.NumCPU()
	if nThreads < 1 {
		nThreads = 1
	}

	tasks := make(chan gcdTask, nThreads*2)
	wg.Add(nThreads)
	for i := 0; i < nThreads; i++ {
		go accumWorker(tasks, moduli, out, &wg)
	}

	for i := 0; i < len(moduli); i++ {
		tasks <- gcdTask{accum, i}
		accum = gmp.NewInt(0).Mul(accum, moduli[i])
	}
	close(tasks)
	wg.Wait()
	close(out)
}

func accumWorker(tasks <-chan gcdTask, moduli []*gmp.Int, out chan<- indexed, wg *sync.WaitGroup) {
	defer wg.Done()
	gcd := gmp.NewInt(0)

	for task := range tasks {
		modulus := moduli[task.i]
		gcd.GCD(nil, nil, task.accum, modulus)
		if gcd.BitLen() == 1 {
			continue
		}
		if gcd.Cmp(modulus) == 0 {
			// The whole accumulated product shares a factor equal to
			// this modulus itself: a straight pairwise scan against
			// everything before it is the only way to name the culprit.
			scanIdentical(moduli, task.i, out)
		} else {
			scanDivisors(moduli, task.i, gcd, out)
			gcd = gmp.NewInt(0)
		}
	}
}

// scanDivisors reports modulus[i]'s factorisation against the shared
// gcd, then finds which earlier modulus also divides evenly by it.
func scanDivisors(moduli []*gmp.Int, i int, gcd *gmp.Int, out chan<- indexed) {
	out <- indexed{i, factorPair(moduli[i], gcd)}

	r := gmp.NewInt(0)
	for j := 0; j < i; j++ {
		n := moduli[j]
		q := gmp.NewInt(0)
		q.QuoRem(n, gcd, r)
		if r.BitLen() == 0 {
			out <- indexed{j, Factorization{Modulus: toBig(n), P: toBig(gcd), Q: toBig(q)}}
		}
	}
}

func scanIdentical(moduli []*gmp.Int, i int, out chan<- indexed) {
	m := moduli[i]
	gcd := gmp.NewInt(0)
	for j := 0; j < i; j++ {
		n := moduli[j]
		if m.Cmp(n) == 0 {
			out <- indexed{i, Factorization{Modulus: toBig(m)}}
			out <- indexed{j, Factorization{Modulus: toBig(n)}}
			continue
		}
		if gcd.GCD(nil, nil, m, n).BitLen() == 1 {
			continue
		}
		out <- indexed{i, factorPair(m, gcd)}
		out <- indexed{j, factorPair(n, gcd)}
		gcd = gmp.NewInt(0)
	}
}
