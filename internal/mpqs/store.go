package mpqs

import (
	"math/big"
	"sort"

	"github.com/folidota/arithmoi/internal/gf2"
)

// signRow is the dense-matrix row reserved for the implicit "prime -1"
// sentinel tracking Q(t)'s sign (spec.md §3); no real prime is 0, so
// it is a safe, collision-free key.
const signRow = 0

// RelationStore deduplicates relations by their x key and, on demand,
// assembles the dense sparse GF(2) matrix the kernel driver needs
// (spec.md §4.6). It is exclusively owned by the orchestrator; the
// store grows monotonically across polynomial iterations, and the
// matrix is rebuilt from scratch each time it is requested.
type RelationStore struct {
	relations map[string]Relation

	// partialsByPrime holds every still-unpaired single-large-prime
	// survivor (spec.md §4.5's partial relation), keyed by its cofactor
	// prime, across the whole run rather than one sieve block at a
	// time. This is the seam a double-large-prime extension would
	// widen (indexing by a prime pair instead of a single prime); today
	// it drives single-large-prime pairing via AddPartial.
	partialsByPrime map[uint64][]partial
}

// NewRelationStore returns an empty store.
func NewRelationStore() *RelationStore {
	return &RelationStore{
		relations:       make(map[string]Relation),
		partialsByPrime: make(map[uint64][]partial),
	}
}

// AddPartial folds one sieve survivor with a single large-prime
// cofactor into the store. If another survivor sharing the same large
// prime is already on file — from this block or an earlier one — the
// two are combined into a full relation (spec.md §4.5 step 4) and
// returned; otherwise p is filed away to await a future match.
func (s *RelationStore) AddPartial(p partial, n *big.Int) (Relation, bool) {
	bucket := s.partialsByPrime[p.largePrime]
	if len(bucket) == 0 {
		s.partialsByPrime[p.largePrime] = []partial{p}
		return Relation{}, false
	}
	pivot := bucket[0]
	if len(bucket) > 1 {
		s.partialsByPrime[p.largePrime] = bucket[1:]
	} else {
		delete(s.partialsByPrime, p.largePrime)
	}
	return combinePartials(pivot, p, p.largePrime, n), true
}

// PartialsByPrime exposes the current unpaired-partial table, keyed by
// large prime.
func (s *RelationStore) PartialsByPrime() map[uint64][]partial {
	return s.partialsByPrime
}

// Add inserts r if its x key hasn't been seen before, returning
// whether it was newly added (spec.md §4.5's dedup-by-x rule).
func (s *RelationStore) Add(r Relation) bool {
	key := r.X.String()
	if _, exists := s.relations[key]; exists {
		return false
	}
	s.relations[key] = r
	return true
}

// Len reports the number of distinct relations currently held.
func (s *RelationStore) Len() int {
	return len(s.relations)
}

func oddKeys(r Relation) []uint64 {
	keys := make([]uint64, 0, len(r.Exponents)+1)
	if r.Negative {
		keys = append(keys, signRow)
	}
	for p, e := range r.Exponents {
		if e%2 != 0 {
			keys = append(keys, p)
		}
	}
	return keys
}

// Prune iteratively removes every relation whose parity projection
// contains a prime (or the sign sentinel) that appears with odd
// exponent in exactly one stored relation — such a prime can never be
// cancelled by any other column, so the relation carrying it is dead
// weight for kernel-finding (spec.md §4.6).
func (s *RelationStore) Prune() {
	for {
		counts := make(map[uint64]int)
		for _, r := range s.relations {
			for _, k := range oddKeys(r) {
				counts[k]++
			}
		}

		toDrop := make(map[string]bool)
		for key, r := range s.relations {
			for _, k := range oddKeys(r) {
				if counts[k] == 1 {
					toDrop[key] = true
					break
				}
			}
		}
		if len(toDrop) == 0 {
			return
		}
		for key := range toDrop {
			delete(s.relations, key)
		}
	}
}

// BuildMatrix renders the current (already-pruned) store as a dense
// sparse GF(2) matrix: rows are the distinct primes/sign-sentinel
// actually in play, renumbered ascending; columns are the relations in
// a stable (sorted-by-key) order, so repeated calls against an
// unchanged store are bit-identical. It returns the matrix alongside
// the Relation each column corresponds to, for the kernel driver's
// reconstruction step.
func (s *RelationStore) BuildMatrix() (*gf2.Matrix, []Relation) {
	keys := make([]string, 0, len(s.relations))
	for k := range s.relations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rels := make([]Relation, len(keys))
	for i, k := range keys {
		rels[i] = s.relations[k]
	}

	rowOf := make(map[uint64]int)
	for _, r := range rels {
		for _, k := range oddKeys(r) {
			if _, ok := rowOf[k]; !ok {
				rowOf[k] = 0
			}
		}
	}
	rowKeys := make([]uint64, 0, len(rowOf))
	for k := range rowOf {
		rowKeys = append(rowKeys, k)
	}
	sort.Slice(rowKeys, func(i, j int) bool { return rowKeys[i] < rowKeys[j] })
	for i, k := range rowKeys {
		rowOf[k] = i
	}

	columns := make([][]int, len(rels))
	for j, r := range rels {
		rows := make([]int, 0, len(r.Exponents)+1)
		for _, k := range oddKeys(r) {
			rows = append(rows, rowOf[k])
		}
		sort.Ints(rows)
		columns[j] = rows
	}

	return gf2.NewMatrix(len(rowKeys), columns), rels
}
