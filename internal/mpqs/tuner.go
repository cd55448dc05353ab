package mpqs

import (
	"math"
	"math/big"

	"github.com/folidota/arithmoi/internal/numeric"
)

// Config is the recognised set of tuning parameters (spec.md §3):
// factor_base_bound (B), sieving_half_width (m), polynomial_exponent
// (k) and log_threshold (h). All four are required; AutoConfig
// derives defaults from n, and the orchestrator widens B/m when
// relations cannot be found.
type Config struct {
	FactorBaseBound    int64
	SievingHalfWidth   int64
	PolynomialExponent int
	LogThreshold       int
}

// AutoConfig derives (B, m, k, h) from the bit-length/digit-length of
// n, per spec.md §4.1. It is a pure function of n: equal n always
// yields bit-identical configurations.
func AutoConfig(n *big.Int) Config {
	l := numeric.IntegerLog10(n)
	le := float64(l) * math.Log(10)

	var b int64
	switch {
	case l < 4:
		half := new(big.Int).Rsh(n, 1)
		b = clampInt64(half)
	case l < 8:
		b = clampInt64(numeric.IntegerSquareRoot(n))
	default:
		factor := math.Max(float64(41-l), 1)
		inner := math.Sqrt(le * math.Log(le))
		b = int64(factor * math.Exp(0.5*inner))
		if b < 1 {
			b = 1
		}
	}

	m := b
	k := l / 10
	if k < 0 {
		k = 0
	}
	h := numeric.IntegerLog2(big.NewInt(b)) + 6

	return Config{
		FactorBaseBound:    b,
		SievingHalfWidth:   m,
		PolynomialExponent: k,
		LogThreshold:       h,
	}
}

func clampInt64(x *big.Int) int64 {
	if x.IsInt64() {
		v := x.Int64()
		if v > 0 {
			return v
		}
	}
	if x.Sign() <= 0 {
		return 1
	}
	return math.MaxInt64
}

// Widen implements the orchestrator's single parameter-widening step
// (spec.md §4.7): B and m grow with the polynomial exponent so that a
// harder n gets proportionally more room before giving up.
func (c Config) Widen() Config {
	step := int64(50 * (c.PolynomialExponent + 1))
	c.FactorBaseBound += step
	c.SievingHalfWidth += step * int64(c.PolynomialExponent+1)
	return c
}
