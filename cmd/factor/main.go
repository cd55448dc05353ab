// Command factor extracts a non-trivial factor from one or more
// composite integers using the arithmoi MPQS core.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"sync"

	"github.com/folidota/arithmoi"
	"github.com/folidota/arithmoi/internal/batchprescan"
)

const moduliBase = 16

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	batchFile  = flag.String("batch", "", "file of hex moduli, one per line (CSV first column); prescanned for shared factors before sieving")
	workers    = flag.Int("workers", 1, "number of moduli to factor concurrently (never parallelises within a single sieve)")
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	log.SetOutput(os.Stderr)
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	moduli := loadModuli()
	if len(moduli) == 0 {
		log.Fatal("No moduli specified")
	}

	remaining := moduli
	if len(moduli) > 1 {
		remaining = prescan(moduli)
	}

	factorAll(remaining)
	log.Print("Finished.")
}

// loadModuli reads decimal moduli from the command line and, if
// -batch was given, hex moduli from that file too (CSV-first-column
// convention, handled by readModuli).
func loadModuli() []*big.Int {
	var moduli []*big.Int
	for _, arg := range flag.Args() {
		n, ok := new(big.Int).SetString(arg, 10)
		if !ok {
			log.Fatal("Invalid modulus: ", arg)
		}
		moduli = append(moduli, n)
	}
	if *batchFile != "" {
		moduli = append(moduli, readModuli(*batchFile)...)
	}
	return moduli
}

func readModuli(filename string) []*big.Int {
	fp, err := os.Open(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer fp.Close()

	seen := make(map[string]struct{})
	var moduli []*big.Int
	scanner := bufio.NewScanner(fp)
	for scanner.Scan() {
		s := strings.SplitN(scanner.Text(), ",", 2)[0] // accept CSV, modulus first column

		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}

		n := new(big.Int)
		if _, ok := n.SetString(s, moduliBase); !ok {
			log.Fatal("Invalid modulus in ", filename, ": ", scanner.Text())
		}
		moduli = append(moduli, n)
	}
	return moduli
}

// prescan runs the batch-GCD prescan across every modulus given in one
// invocation before any of them reaches the sieve (SPEC_FULL.md's
// supplemented batch-multi-target feature).
func prescan(moduli []*big.Int) []*big.Int {
	log.Print("Prescanning ", len(moduli), " moduli for shared factors...")
	factored, remaining := batchprescan.Prescan(moduli)
	for idx, f := range factored {
		if !f.Verify() {
			log.Fatal("Prescan verification failed on ", f)
		}
		fmt.Printf("%d,%s\n", idx, f)
	}

	out := make([]*big.Int, len(remaining))
	for i, idx := range remaining {
		out[i] = moduli[idx]
	}
	return out
}

func factorAll(moduli []*big.Int) {
	sem := make(chan struct{}, *workers)
	var wg sync.WaitGroup

	for _, n := range moduli {
		wg.Add(1)
		sem <- struct{}{}
		go func(n *big.Int) {
			defer wg.Done()
			defer func() { <-sem }()
			factorOne(n)
		}(n)
	}
	wg.Wait()
}

func factorOne(n *big.Int) {
	p, err := arithmoi.Factor(n)
	if err != nil {
		log.Printf("Error factoring %x: %v", n, err)
		return
	}
	q := new(big.Int).Quo(n, p)
	fmt.Printf("%x,%x,%x\n", n, p, q)
}
