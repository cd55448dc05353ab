package mpqs

import (
	"math/big"
	"testing"

	"github.com/folidota/arithmoi/internal/gf2"
)

func TestReconstructPairRejectsOddTotalExponent(t *testing.T) {
	rels := []Relation{
		{X: big.NewInt(2), Exponents: map[uint64]int{3: 1}},
	}
	_, _, ok := ReconstructPair(big.NewInt(35), rels, []int{0})
	if ok {
		t.Fatal("expected ok=false when a prime's summed exponent is odd")
	}
}

func TestReconstructPairComputesXAndY(t *testing.T) {
	n := big.NewInt(35)
	// Relation 0 encodes 3^2 with x=2, relation 1 encodes 3^2 * 5^2 with
	// x=3 — a pair whose exponents sum to all-even; check the
	// reconstructed y against the expected product of p^(e/2).
	rels := []Relation{
		{X: big.NewInt(2), Exponents: map[uint64]int{3: 2}},
		{X: big.NewInt(3), Exponents: map[uint64]int{3: 2, 5: 2}},
	}
	x, y, ok := ReconstructPair(n, rels, []int{0, 1})
	if !ok {
		t.Fatal("expected ok=true for all-even totals")
	}
	wantX := new(big.Int).Mod(big.NewInt(2*3), n)
	if x.Cmp(wantX) != 0 {
		t.Fatalf("x = %s, want %s", x, wantX)
	}
	// total exponents: 3 -> 4, 5 -> 2; y = 3^2 * 5^1 mod n
	wantY := new(big.Int).Mod(big.NewInt(9*5), n)
	if y.Cmp(wantY) != 0 {
		t.Fatalf("y = %s, want %s", y, wantY)
	}
}

func TestNextPairPropagatesNoKernel(t *testing.T) {
	// A single nonzero column has full rank: no kernel vector exists.
	matrix := gf2.NewMatrix(1, [][]int{{0}})
	rels := []Relation{{X: big.NewInt(2), Exponents: map[uint64]int{3: 1}}}
	_, _, err := NextPair(big.NewInt(35), matrix, rels, 0)
	if err != gf2.ErrNoKernel {
		t.Fatalf("expected gf2.ErrNoKernel, got %v", err)
	}
}

func TestNextPairEndToEnd(t *testing.T) {
	n := big.NewInt(35)
	rels := []Relation{
		{X: big.NewInt(2), Exponents: map[uint64]int{3: 1}},
		{X: big.NewInt(3), Exponents: map[uint64]int{3: 1}},
	}
	// Both columns set only row 0 (prime 3, odd exponent): XORing them
	// cancels, so {0,1} is the matrix's one kernel vector.
	matrix := gf2.NewMatrix(1, [][]int{{0}, {0}})
	x, y, err := NextPair(n, matrix, rels, 0)
	if err != nil {
		t.Fatalf("NextPair: %v", err)
	}
	wantX := new(big.Int).Mod(big.NewInt(2*3), n)
	if x.Cmp(wantX) != 0 {
		t.Fatalf("x = %s, want %s", x, wantX)
	}
	wantY := big.NewInt(3) // total exponent of prime 3 is 2, y = 3^1
	if y.Cmp(wantY) != 0 {
		t.Fatalf("y = %s, want %s", y, wantY)
	}
}
