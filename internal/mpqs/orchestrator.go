package mpqs

import (
	"errors"
	"math/big"

	"github.com/folidota/arithmoi/internal/gf2"
)

// Orchestrator drives spec.md §4.8's state machine: it owns the
// current a's remaining b-family, the monotonically-growing relation
// store, and the solver seed counter, and exposes that state as a
// pull-based stream of (x, y) pairs via Next. There is no terminal
// state; Next keeps producing pairs until a ParametersTooSmall or
// InternalInconsistency error ends the stream.
type Orchestrator struct {
	n     *big.Int
	cfg   Config
	trace Trace

	fb    *FactorBase
	gen   *PolyGenerator
	store *RelationStore

	pending []*Polynomial // current a's b-family not yet sieved
	widened bool

	matrix      *gf2.Matrix
	rels        []Relation
	matrixValid bool
	seed        int
}

// NewOrchestrator builds the C7 state machine for n under cfg. trace
// may be nil.
func NewOrchestrator(n *big.Int, cfg Config, trace Trace) (*Orchestrator, error) {
	fb, err := BuildFactorBase(n, cfg.FactorBaseBound)
	if err != nil {
		return nil, err
	}
	if trace == nil {
		trace = func(Event) {}
	}
	return &Orchestrator{
		n:     n,
		cfg:   cfg,
		trace: trace,
		fb:    fb,
		gen:   NewPolyGenerator(n, cfg.SievingHalfWidth, cfg.PolynomialExponent),
		store: NewRelationStore(),
	}, nil
}

// Next advances the state machine to the next emission: harvesting
// sieve blocks (Sieve/EnumerateB/PickA), widening parameters if every
// (a, {b}) family is exhausted, assembling the GF(2) matrix once it
// has enough columns (Solve), and returning one kernel-derived (x, y)
// pair (Emit). Every returned pair satisfies x² ≡ y² (mod n).
func (o *Orchestrator) Next() (x, y *big.Int, err error) {
	for {
		if err := o.ensureMatrix(); err != nil {
			return nil, nil, err
		}

		x, y, err = NextPair(o.n, o.matrix, o.rels, o.seed)
		o.seed++
		if err == nil {
			o.trace(Event{Kind: EventEmit, Relations: o.store.Len()})
			return x, y, nil
		}
		if !errors.Is(err, gf2.ErrNoKernel) {
			return nil, nil, err
		}

		// Full column rank: this matrix has no kernel vector left to
		// give. Harvest one more block and rebuild against a fresh
		// matrix before trying again.
		if err := o.harvestBlock(); err != nil {
			return nil, nil, err
		}
		o.matrixValid = false
	}
}

// ensureMatrix harvests sieve blocks until the store yields a matrix
// with #columns > #rows + slack (spec.md §4.6's solver-readiness
// bound), then caches it and resets the seed counter.
func (o *Orchestrator) ensureMatrix() error {
	for {
		if o.matrixValid {
			return nil
		}

		o.store.Prune()
		matrix, rels := o.store.BuildMatrix()
		slack := 3 * (o.cfg.PolynomialExponent + 2)
		if matrix.Cols() > matrix.Rows()+slack {
			o.matrix, o.rels = matrix, rels
			o.matrixValid = true
			o.seed = 0
			return nil
		}

		if err := o.harvestBlock(); err != nil {
			return err
		}
	}
}

// harvestBlock sieves one polynomial (from the current a's b-family,
// refilling it — advancing a, widening if necessary — when empty) and
// folds its full and large-prime-paired relations into the store.
func (o *Orchestrator) harvestBlock() error {
	if len(o.pending) == 0 {
		if err := o.refillPending(); err != nil {
			return err
		}
	}

	poly := o.pending[0]
	o.pending = o.pending[1:]

	sieve, err := RunSieve(poly, o.fb, o.cfg.SievingHalfWidth)
	if err != nil {
		return err
	}
	full, partials, err := ExtractRelations(sieve, o.fb, o.cfg.LogThreshold)
	if err != nil {
		return err
	}
	for _, r := range full {
		o.store.Add(r)
	}
	for _, p := range partials {
		if r, ok := o.store.AddPartial(p, o.n); ok {
			o.store.Add(r)
		}
	}

	o.trace(Event{Kind: EventBlock, Relations: o.store.Len()})
	return nil
}

// refillPending fetches the next nonempty (a, {b}) family, advancing
// past exhausted families and widening parameters at most once.
func (o *Orchestrator) refillPending() error {
	for {
		polys, err := o.gen.Polynomials()
		if err != nil {
			return err
		}
		if len(polys) > 0 {
			o.pending = polys
			return nil
		}
		if err := o.gen.Advance(); err != nil {
			if err := o.widen(); err != nil {
				return err
			}
			continue
		}
	}
}

// widen implements spec.md §4.7's single parameter-widening step: B
// and m grow, the factor base and polynomial generator are rebuilt
// against the wider bound, and the store's already-harvested relations
// are kept (they remain valid relations over the now-larger factor
// base, which is a superset of the old one).
func (o *Orchestrator) widen() error {
	if o.widened {
		return ErrParametersTooSmall
	}
	o.widened = true
	o.cfg = o.cfg.Widen()

	fb, err := BuildFactorBase(o.n, o.cfg.FactorBaseBound)
	if err != nil {
		return ErrParametersTooSmall
	}
	o.fb = fb
	o.gen = NewPolyGenerator(o.n, o.cfg.SievingHalfWidth, o.cfg.PolynomialExponent)
	o.pending = nil
	o.matrixValid = false

	o.trace(Event{Kind: EventWiden, Relations: o.store.Len()})
	return nil
}
