package arithmoi

import (
	"errors"

	"github.com/folidota/arithmoi/internal/mpqs"
)

// ErrParametersTooSmall is returned when no configuration this
// package tried could produce enough relations to factor n — an
// empty factor base, a polynomial exponent that can't find enough
// suitable primes, or a fully exhausted widen attempt.
var ErrParametersTooSmall = mpqs.ErrParametersTooSmall

// ErrInternalInconsistency marks a sieve-time invariant violation:
// n turned out to be a perfect square, or an arithmetic precondition
// (n odd, n composite) that the caller is required to guarantee did
// not hold.
var ErrInternalInconsistency = mpqs.ErrInternalInconsistency

// ErrInputNotComposite is returned by Factor/FactorWithConfig when the
// relation stream keeps producing only trivial factors well past the
// point spec.md §8's property 2 says a non-trivial one should have
// appeared — the caller's "n is composite" precondition likely didn't
// hold (n prime, or a prime power MPQS can't split with this
// variation).
var ErrInputNotComposite = errors.New("arithmoi: n appears not to be a composite MPQS can split")
