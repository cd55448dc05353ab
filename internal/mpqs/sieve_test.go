package mpqs

import (
	"math/big"
	"testing"
)

func TestRunSieveRootsActuallyDivideQ(t *testing.T) {
	n := big.NewInt(8051)
	fb, err := BuildFactorBase(n, 40)
	if err != nil {
		t.Fatalf("BuildFactorBase: %v", err)
	}
	poly := &Polynomial{A: big.NewInt(1), B: big.NewInt(0), C: new(big.Int).Neg(n)}
	m := int64(60)

	sieve, err := RunSieve(poly, fb, m)
	if err != nil {
		t.Fatalf("RunSieve: %v", err)
	}
	if int64(len(sieve.Values)) != 2*m+1 {
		t.Fatalf("Values has length %d, want %d", len(sieve.Values), 2*m+1)
	}

	// Every factor-base prime's root must land on a cell whose Q(t) it
	// actually divides; spot-check by recomputing Q(t) and reducing.
	for _, e := range fb.Entries {
		for _, r := range e.Roots {
			i0 := sieveRootIndex(t, poly, e.P, r, m)
			tt := i0 - m
			q := poly.Eval(tt)
			bp := new(big.Int).SetUint64(e.P)
			mod := new(big.Int).Mod(q, bp)
			if mod.Sign() != 0 {
				t.Fatalf("p=%d root=%d: Q(%d)=%s not divisible by p (mod=%s)", e.P, r, tt, q, mod)
			}
		}
	}
}

// sieveRootIndex recomputes the single starting offset RunSieve would
// have struck for one (p, root) pair, mirroring sieveOddPrime/sieveP2's
// arithmetic directly against the definition r^2 == n (mod p) rather
// than reaching into Sieve's internals.
func sieveRootIndex(t *testing.T, poly *Polynomial, p, root uint64, m int64) int64 {
	t.Helper()
	if p == 2 {
		cMod2 := new(big.Int).Mod(poly.C, big.NewInt(2)).Int64()
		return (m + cMod2) % 2
	}

	bp := new(big.Int).SetUint64(p)
	aModP := new(big.Int).Mod(poly.A, bp)
	aInv := new(big.Int).ModInverse(aModP, bp)
	bMod := new(big.Int).Mod(poly.B, bp)
	diff := new(big.Int).Sub(new(big.Int).SetUint64(root), bMod)
	diff.Mul(diff, aInv)
	i0 := new(big.Int).Add(big.NewInt(m), diff)
	i0.Mod(i0, bp)
	return i0.Int64()
}

func TestStrikeLogsAppliesAtStride(t *testing.T) {
	s := &Sieve{M: 5, Values: make([]int32, 11)}
	for i := range s.Values {
		s.Values[i] = 10
	}
	s.strikeLogs(1, 3, 4)
	for i, v := range s.Values {
		if (i-1)%3 == 0 && i >= 1 {
			if v != 6 {
				t.Fatalf("index %d: expected struck value 6, got %d", i, v)
			}
		} else if v != 10 {
			t.Fatalf("index %d: expected untouched value 10, got %d", i, v)
		}
	}
}

func TestSurvivorsFiltersByThreshold(t *testing.T) {
	s := &Sieve{M: 2, Values: []int32{1, 5, 2, 9, 0}}
	got := s.Survivors(2)
	want := []int64{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("Survivors(2) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Survivors(2)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
