package pricing

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Redistribute rescales every unit's current price by a single ratio so
// the sum matches the desired total exactly, preserving the relative
// weighting between units. The result is a sparse override map consumed
// by the resolver ahead of every other pricing source.
func Redistribute(current map[uuid.UUID]float64, currentTotal, desiredTotal float64) (map[uuid.UUID]float64, error) {
	if currentTotal <= 0 || desiredTotal <= 0 {
		return nil, fmt.Errorf("%w: current total %.2f, desired total %.2f; both must be positive",
			ErrInvalidOverride, currentTotal, desiredTotal)
	}

	ratio := desiredTotal / currentTotal
	overrides := make(map[uuid.UUID]float64, len(current))

	sum := 0.0
	var maxID uuid.UUID
	maxPrice := math.Inf(-1)
	for id, price := range current {
		scaled := roundCents(price * ratio)
		overrides[id] = scaled
		sum += scaled
		if scaled > maxPrice {
			maxPrice = scaled
			maxID = id
		}
	}

	// Rounding each unit individually can drift a few cents away from
	// the desired total; the largest unit absorbs the difference.
	diff := roundCents(desiredTotal - sum)
	if diff != 0 && len(overrides) > 0 {
		overrides[maxID] = roundCents(overrides[maxID] + diff)
	}
	return overrides, nil
}
