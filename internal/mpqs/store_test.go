package mpqs

import (
	"math/big"
	"testing"
)

func TestRelationStoreAddDedupesByX(t *testing.T) {
	s := NewRelationStore()
	r := Relation{X: big.NewInt(42), Exponents: map[uint64]int{3: 2}}
	if !s.Add(r) {
		t.Fatal("first Add should report newly added")
	}
	if s.Add(r) {
		t.Fatal("second Add with the same X should report already present")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestRelationStorePruneRemovesLoneOddPrimes(t *testing.T) {
	s := NewRelationStore()
	// prime 7 appears with odd exponent only in r1: must be pruned.
	r1 := Relation{X: big.NewInt(1), Exponents: map[uint64]int{3: 1, 7: 1}}
	// primes 3 and 5 each appear with odd exponent in two relations, so
	// r2 and r3 survive only the first pruning round.
	r2 := Relation{X: big.NewInt(2), Exponents: map[uint64]int{3: 1, 5: 1}}
	r3 := Relation{X: big.NewInt(3), Exponents: map[uint64]int{5: 1}}
	s.Add(r1)
	s.Add(r2)
	s.Add(r3)

	s.Prune()
	if s.Len() != 0 {
		t.Fatalf("expected fixpoint to drop every relation (3 only ends up surviving in r2, but then 3 becomes lone), got %d left", s.Len())
	}
}

func TestRelationStorePruneKeepsFullyBalancedRelations(t *testing.T) {
	s := NewRelationStore()
	r1 := Relation{X: big.NewInt(1), Exponents: map[uint64]int{3: 1, 5: 1}}
	r2 := Relation{X: big.NewInt(2), Exponents: map[uint64]int{3: 1, 5: 1}}
	s.Add(r1)
	s.Add(r2)

	s.Prune()
	if s.Len() != 2 {
		t.Fatalf("expected both relations to survive pruning, got %d", s.Len())
	}
}

func TestRelationStorePruneIsIdempotent(t *testing.T) {
	s := NewRelationStore()
	s.Add(Relation{X: big.NewInt(1), Exponents: map[uint64]int{3: 1, 5: 1}})
	s.Add(Relation{X: big.NewInt(2), Exponents: map[uint64]int{3: 1, 5: 1}})
	s.Add(Relation{X: big.NewInt(3), Exponents: map[uint64]int{11: 1}})

	s.Prune()
	before := s.Len()
	s.Prune()
	if s.Len() != before {
		t.Fatalf("Prune not idempotent: %d then %d", before, s.Len())
	}
}

func TestBuildMatrixIsDeterministic(t *testing.T) {
	s := NewRelationStore()
	s.Add(Relation{X: big.NewInt(5), Exponents: map[uint64]int{3: 1, 5: 1}})
	s.Add(Relation{X: big.NewInt(2), Exponents: map[uint64]int{3: 1, 7: 1}})
	s.Add(Relation{X: big.NewInt(9), Exponents: map[uint64]int{5: 1, 7: 1}})

	m1, rels1 := s.BuildMatrix()
	m2, rels2 := s.BuildMatrix()

	if m1.Rows() != m2.Rows() || m1.Cols() != m2.Cols() {
		t.Fatalf("BuildMatrix not deterministic in shape: (%d,%d) vs (%d,%d)", m1.Rows(), m1.Cols(), m2.Rows(), m2.Cols())
	}
	for i := range rels1 {
		if rels1[i].X.Cmp(rels2[i].X) != 0 {
			t.Fatalf("column order differs at %d: %s vs %s", i, rels1[i].X, rels2[i].X)
		}
	}
}

func TestBuildMatrixColumnParityMatchesOddKeys(t *testing.T) {
	s := NewRelationStore()
	s.Add(Relation{X: big.NewInt(5), Negative: true, Exponents: map[uint64]int{3: 1, 5: 2}})
	matrix, rels := s.BuildMatrix()
	if matrix.Cols() != len(rels) {
		t.Fatalf("Cols() = %d, want %d", matrix.Cols(), len(rels))
	}
	// The single relation has odd exponent at 3 and the sign sentinel,
	// not at 5 (exponent 2, even) — two rows expected.
	if matrix.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2 (sign sentinel + prime 3)", matrix.Rows())
	}
}

func TestRelationStoreAddPartialFilesUnmatched(t *testing.T) {
	s := NewRelationStore()
	p := partial{x: big.NewInt(11), exponents: map[uint64]int{3: 1}, largePrime: 101}
	_, ok := s.AddPartial(p, big.NewInt(8051))
	if ok {
		t.Fatal("a single partial with no prior match should not pair")
	}
	bucket := s.PartialsByPrime()[101]
	if len(bucket) != 1 || bucket[0].x.Cmp(p.x) != 0 {
		t.Fatalf("expected the unmatched partial filed under its large prime, got %v", bucket)
	}
}

func TestRelationStoreAddPartialPairsAcrossCalls(t *testing.T) {
	s := NewRelationStore()
	n := big.NewInt(8051)
	p1 := partial{x: big.NewInt(11), exponents: map[uint64]int{3: 1}, largePrime: 101}
	p2 := partial{x: big.NewInt(13), negative: true, exponents: map[uint64]int{5: 1}, largePrime: 101}

	if _, ok := s.AddPartial(p1, n); ok {
		t.Fatal("first partial should not pair with nothing")
	}
	r, ok := s.AddPartial(p2, n)
	if !ok {
		t.Fatal("second partial sharing the large prime should pair with the first")
	}
	if r.Exponents[101] != 2 {
		t.Fatalf("shared large prime should end up with exponent 2, got %d", r.Exponents[101])
	}
	if len(s.PartialsByPrime()[101]) != 0 {
		t.Fatalf("bucket should be emptied once its partial is consumed by a pairing, got %v", s.PartialsByPrime()[101])
	}
}
