package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedistribute_ScalesByASingleRatio(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	current := map[uuid.UUID]float64{a: 6000, b: 4000}

	overrides, err := Redistribute(current, 10000, 9000)
	require.NoError(t, err)

	assert.InDelta(t, 5400, overrides[a], 0.01)
	assert.InDelta(t, 3600, overrides[b], 0.01)
}

func TestRedistribute_IdentityRatioLeavesPricesUnchanged(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	current := map[uuid.UUID]float64{a: 1234.56, b: 78.90, c: 1000}

	overrides, err := Redistribute(current, 2313.46, 2313.46)
	require.NoError(t, err)
	for id, price := range current {
		assert.InDelta(t, price, overrides[id], 0.001)
	}
}

func TestRedistribute_SumMatchesDesiredTotalExactly(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	current := map[uuid.UUID]float64{a: 333.33, b: 333.33, c: 333.34}

	overrides, err := Redistribute(current, 1000, 997)
	require.NoError(t, err)

	sum := 0.0
	for _, price := range overrides {
		sum += price
	}
	assert.InDelta(t, 997, sum, 0.001)
}

func TestRedistribute_RejectsNonPositiveTotals(t *testing.T) {
	current := map[uuid.UUID]float64{uuid.New(): 100}

	_, err := Redistribute(current, 0, 500)
	require.ErrorIs(t, err, ErrInvalidOverride)

	_, err = Redistribute(current, 100, 0)
	require.ErrorIs(t, err, ErrInvalidOverride)

	_, err = Redistribute(current, 100, -5)
	require.ErrorIs(t, err, ErrInvalidOverride)
	assert.Contains(t, err.Error(), "-5.00")
}
