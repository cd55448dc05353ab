package numeric

import "math/big"

// IntegerSquareRoot returns floor(sqrt(n)) for n >= 0. Thin wrapper
// over math/big's Newton-iteration Sqrt; no third-party bignum in the
// retrieved corpus offers an alternative, and hand-rolling Newton's
// method on top of math/big's own arithmetic would just reimplement
// what Int.Sqrt already does internally.
func IntegerSquareRoot(n *big.Int) *big.Int {
	return new(big.Int).Sqrt(n)
}

// IsPerfectSquare reports whether n is the square of some integer.
func IsPerfectSquare(n *big.Int) bool {
	if n.Sign() < 0 {
		return false
	}
	r := IntegerSquareRoot(n)
	r.Mul(r, r)
	return r.Cmp(n) == 0
}

// IntegerRoot returns floor(n^(1/k)) for k >= 1, n >= 0, via Newton's
// method on top of math/big arithmetic.
func IntegerRoot(k int, n *big.Int) *big.Int {
	if k <= 0 {
		panic("numeric: IntegerRoot requires k >= 1")
	}
	if k == 1 || n.Sign() == 0 {
		return new(big.Int).Set(n)
	}
	if k == 2 {
		return IntegerSquareRoot(n)
	}

	bigK := big.NewInt(int64(k))
	kMinus1 := big.NewInt(int64(k - 1))

	x := new(big.Int).Lsh(bigOne, uint(n.BitLen()/k+1))
	for {
		// x_next = ((k-1)*x + n/x^(k-1)) / k
		xPow := new(big.Int).Exp(x, kMinus1, nil)
		if xPow.Sign() == 0 {
			break
		}
		term := new(big.Int).Quo(n, xPow)
		next := new(big.Int).Mul(kMinus1, x)
		next.Add(next, term)
		next.Quo(next, bigK)
		if next.Cmp(x) >= 0 {
			break
		}
		x = next
	}
	for {
		p := new(big.Int).Exp(x, bigK, nil)
		if p.Cmp(n) <= 0 {
			break
		}
		x.Sub(x, bigOne)
	}
	return x
}

// IntegerLog2 returns floor(log2(n)) for n > 0.
func IntegerLog2(n *big.Int) int {
	if n.Sign() <= 0 {
		panic("numeric: IntegerLog2 requires n > 0")
	}
	return n.BitLen() - 1
}

// IntegerLog10 returns floor(log10(n)) for n > 0, via the decimal
// digit count rather than a floating conversion (n can be far larger
// than a float64 mantissa admits).
func IntegerLog10(n *big.Int) int {
	if n.Sign() <= 0 {
		panic("numeric: IntegerLog10 requires n > 0")
	}
	digits := len(new(big.Int).Abs(n).Text(10))
	// digits == floor(log10(n)) + 1, except exactly at a power of ten
	// where the digit count already accounts for it correctly since
	// Text never pads; refine with one comparison to be exact.
	candidate := digits - 1
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(candidate)), nil)
	if pow.Cmp(n) > 0 {
		candidate--
	}
	return candidate
}
