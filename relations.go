package arithmoi

import (
	"math/big"

	"github.com/folidota/arithmoi/internal/mpqs"
)

// Trace is the observer-callback hook described in spec.md §9; it
// receives progress events from the sieve and never affects output. A
// nil Trace disables tracing.
type Trace = mpqs.Trace

// RelationStream is a pull-based, unbounded sequence of (x, y) pairs
// with x² ≡ y² (mod n) (spec.md §5's lazy sequence / §6's
// `relations(n, cfg)`). Each call to Next advances the underlying
// orchestrator by exactly the work needed to produce one more pair.
type RelationStream struct {
	orch *mpqs.Orchestrator
}

// Relations opens a relation stream for n under cfg. It never runs the
// sieve itself; work happens lazily inside Next.
func Relations(n *big.Int, cfg Config) (*RelationStream, error) {
	return RelationsWithTrace(n, cfg, nil)
}

// RelationsWithTrace is Relations with an observer callback attached.
func RelationsWithTrace(n *big.Int, cfg Config, trace Trace) (*RelationStream, error) {
	orch, err := mpqs.NewOrchestrator(n, cfg, trace)
	if err != nil {
		return nil, err
	}
	return &RelationStream{orch: orch}, nil
}

// Next returns the next (x, y) pair, or an error if the stream cannot
// continue (ErrParametersTooSmall, ErrInternalInconsistency).
func (s *RelationStream) Next() (x, y *big.Int, err error) {
	return s.orch.Next()
}
