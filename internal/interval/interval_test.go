package interval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtrobust/internal/interval"
)

func TestJoinLatticeLaws(t *testing.T) {
	bot := interval.Empty
	a := interval.New(1, 2)
	b := interval.New(0, 5)
	c := interval.New(-1, 1)

	assert.True(t, interval.Join(a, bot).Equal(a), "bottom is an identity")
	assert.True(t, interval.Join(a, a).Equal(a), "join is idempotent")
	assert.True(t, interval.Join(a, b).Equal(interval.Join(b, a)), "join is commutative")
	assert.True(t, interval.Join(a, interval.Join(b, c)).Equal(interval.Join(interval.Join(a, b), c)),
		"join is associative")
}

func TestDivPositiveMonotone(t *testing.T) {
	num := interval.New(2, 8)
	den := interval.New(2, 4)
	got, err := num.DivPositive(den)
	require.NoError(t, err)
	assert.Equal(t, interval.New(0.5, 4), got)
}

func TestDivPositiveZeroDenominator(t *testing.T) {
	num := interval.New(1, 2)
	den := interval.New(-1, 1)
	_, err := num.DivPositive(den)
	require.ErrorIs(t, err, interval.ErrDivisionByZeroInterval)
}

func TestStrictlyDominates(t *testing.T) {
	assert.True(t, interval.New(3, 4).StrictlyDominates(interval.New(1, 2)))
	assert.False(t, interval.New(1, 3).StrictlyDominates(interval.New(2, 4)))
	assert.False(t, interval.Empty.StrictlyDominates(interval.New(0, 1)))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, interval.New(0, 1), interval.New(-2, 3).Clamp01())
}
