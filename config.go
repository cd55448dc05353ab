package arithmoi

import (
	"math/big"

	"github.com/folidota/arithmoi/internal/mpqs"
)

// Config is the recognised set of tuning parameters (spec.md §3): all
// four fields are required. It is a type alias for mpqs.Config so
// callers of internal/mpqs (tests, cmd/factor) and this package share
// one definition.
type Config = mpqs.Config

// AutoConfig derives (B, m, k, h) from the bit-length/digit-length of
// n (spec.md §4.1). It is a pure function of n.
func AutoConfig(n *big.Int) Config {
	return mpqs.AutoConfig(n)
}
