package mpqs

import "errors"

// ErrParametersTooSmall is returned when the factor base is empty,
// when enough primes of the required size cannot be found for the
// current polynomial-exponent k, when a polynomial cofactor does not
// fit a machine word, or when the relation stream is demanded but the
// orchestrator has exhausted its single parameter-widening attempt.
var ErrParametersTooSmall = errors.New("mpqs: parameters too small")

// ErrInternalInconsistency marks a sieve-time invariant violation that
// would only happen if n were not actually composite, or not coprime
// to the current prime — a logic error in the caller's precondition,
// not a recoverable sieving failure.
var ErrInternalInconsistency = errors.New("mpqs: internal inconsistency")
