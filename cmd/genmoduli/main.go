// Command genmoduli generates synthetic RSA-style moduli for
// exercising cmd/factor's -batch prescan path: a configurable fraction
// of the output intentionally reuses a prime factor across two moduli
// (it never emits a duplicate modulus on purpose), so the
// resulting file gives internal/batchprescan real shared-factor
// collisions to find instead of requiring a real-world leaked-key
// corpus.
package main

import (
	cryptorand "crypto/rand"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"runtime"
	"sync"
)

var (
	dupeProb  = flag.Int("prob", 1000, "1/n generated moduli reuse a prime factor from an earlier one")
	numModuli = flag.Int("num", 1000, "how many moduli to generate")
	bits      = flag.Int("bits", 512, "bits per modulus")
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	log.SetOutput(os.Stderr)
	flag.Parse()

	remaining := *numModuli
	numThreads := runtime.NumCPU()
	perThread := (remaining + numThreads - 1) / numThreads

	var wg sync.WaitGroup
	ch := make(chan *big.Int, numThreads)

	for remaining > 0 {
		n := perThread
		if n > remaining {
			n = remaining
		}
		wg.Add(1)
		go genModuli(n, ch, &wg)
		remaining -= n
	}
	go func() {
		wg.Wait()
		close(ch)
	}()

	for modulus := range ch {
		fmt.Printf("%x\n", modulus)
	}
}

// genModuli emits n moduli onto output, each the product of two
// random primes; roughly 1/dupeProb of them instead reuse a prime
// held over from an earlier modulus of this same call, producing a
// shared-factor collision for batchprescan to find.
func genModuli(n int, output chan<- *big.Int, wg *sync.WaitGroup) {
	defer wg.Done()

	var held *big.Int
	for i := 0; i < n; i++ {
		p1, err := cryptorand.Prime(cryptorand.Reader, (*bits+1)/2)
		if err != nil {
			log.Fatal("unable to generate random prime: ", err)
		}

		if held != nil && i%(*dupeProb) == 1 {
			output <- new(big.Int).Mul(p1, held)
			held = nil
			continue
		}

		p2, err := cryptorand.Prime(cryptorand.Reader, *bits/2)
		if err != nil {
			log.Fatal("unable to generate random prime: ", err)
		}
		output <- new(big.Int).Mul(p1, p2)

		if held == nil {
			held = p1
		}
	}
}
