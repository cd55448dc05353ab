// Package arithmoi implements a Self-Initialising Multiple-Polynomial
// Quadratic Sieve (MPQS) with single-large-prime variation and
// logarithmic sieving, for extracting a non-trivial factor of an odd
// composite integer.
//
// The sieve internals live under internal/mpqs; this package is the
// thin public driver on top: it pulls (x, y) pairs off the relation
// stream and returns the first non-trivial gcd(x-y, n).
package arithmoi
