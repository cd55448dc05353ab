package batchprescan

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrescanFindsSharedFactor(t *testing.T) {
	p := big.NewInt(104729)
	q1 := big.NewInt(104723)
	q2 := big.NewInt(104711)
	n1 := new(big.Int).Mul(p, q1)
	n2 := new(big.Int).Mul(p, q2)
	n3 := new(big.Int).Mul(big.NewInt(1000000007), big.NewInt(1000000009))

	factored, remaining := Prescan([]*big.Int{n1, n2, n3})

	require.Equal(t, []int{2}, remaining)
	for _, idx := range []int{0, 1} {
		f, ok := factored[idx]
		require.True(t, ok, "index %d should have been factored", idx)
		require.True(t, f.HavePrivate())
		require.True(t, f.Verify())
	}
}

func TestPrescanDuplicateModulus(t *testing.T) {
	n := new(big.Int).Mul(big.NewInt(104729), big.NewInt(104723))
	factored, remaining := Prescan([]*big.Int{n, new(big.Int).Set(n)})

	require.Empty(t, remaining)
	require.False(t, factored[0].HavePrivate())
	require.False(t, factored[1].HavePrivate())
}

func TestPrescanNoCollisions(t *testing.T) {
	n1 := new(big.Int).Mul(big.NewInt(104729), big.NewInt(104723))
	n2 := new(big.Int).Mul(big.NewInt(1000000007), big.NewInt(1000000009))

	factored, remaining := Prescan([]*big.Int{n1, n2})

	require.Empty(t, factored)
	require.ElementsMatch(t, []int{0, 1}, remaining)
}
