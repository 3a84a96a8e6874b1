package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

func TestAggregateCosts_SumsBaseAndServiceCosts(t *testing.T) {
	a := model.Billboard{ID: uuid.New(), SizeName: "4x3", Level: "A", Width: 4, Height: 3, Faces: 2}
	b := model.Billboard{ID: uuid.New(), SizeName: "13x5", Level: "A", Width: 13, Height: 5}

	snap := monthSnapshot(1,
		model.PriceRow{SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000},
		model.PriceRow{SizeName: "13x5", Level: "A", Category: "regular", OneMonth: 3000},
	)
	snap.InstallationCosts = map[uuid.UUID]float64{a.ID: 150, b.ID: 250}
	snap.PrintEnabled = true
	snap.PrintRate = 10

	agg := AggregateCosts([]model.Billboard{a, b}, snap)

	assert.InDelta(t, 4000, agg.BaseTotal, 0.001)
	assert.InDelta(t, 400, agg.InstallationCost, 0.001)
	// a: 12m2 x 2 faces x 10 = 240, b: 65m2 x 1 face x 10 = 650
	assert.InDelta(t, 240, agg.PerUnitPrint[a.ID], 0.001)
	assert.InDelta(t, 650, agg.PerUnitPrint[b.ID], 0.001)
	assert.InDelta(t, 890, agg.PrintCost, 0.001)
	assert.Empty(t, agg.MissingPrices)
}

func TestAggregateCosts_PrintAreaPrefersStoredDimensions(t *testing.T) {
	// SizeName says 13x5 but the dimension record says 4x3; the record wins.
	unit := model.Billboard{ID: uuid.New(), SizeName: "13x5", Level: "A", Width: 4, Height: 3}
	snap := monthSnapshot(1, model.PriceRow{SizeName: "13x5", Level: "A", Category: "regular", OneMonth: 1000})
	snap.PrintEnabled = true
	snap.PrintRate = 10

	agg := AggregateCosts([]model.Billboard{unit}, snap)
	assert.InDelta(t, 120, agg.PerUnitPrint[unit.ID], 0.001)
}

func TestAggregateCosts_PrintAreaFallsBackToSizeString(t *testing.T) {
	unit := model.Billboard{ID: uuid.New(), SizeName: "4x3", Level: "A"}
	snap := monthSnapshot(1, model.PriceRow{SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000})
	snap.PrintEnabled = true
	snap.PrintRate = 5

	agg := AggregateCosts([]model.Billboard{unit}, snap)
	assert.InDelta(t, 60, agg.PerUnitPrint[unit.ID], 0.001)
}

func TestAggregateCosts_PrintDisabledOrZeroRate(t *testing.T) {
	unit := model.Billboard{ID: uuid.New(), SizeName: "4x3", Level: "A", Width: 4, Height: 3}
	snap := monthSnapshot(1, model.PriceRow{SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000})

	snap.PrintEnabled = false
	snap.PrintRate = 10
	assert.Zero(t, AggregateCosts([]model.Billboard{unit}, snap).PrintCost)

	snap.PrintEnabled = true
	snap.PrintRate = 0
	assert.Zero(t, AggregateCosts([]model.Billboard{unit}, snap).PrintCost)
}

func TestAggregateCosts_MissingPriceContributesZeroAndIsFlagged(t *testing.T) {
	priced := model.Billboard{ID: uuid.New(), SizeName: "4x3", Level: "A"}
	unpriced := model.Billboard{ID: uuid.New(), SizeName: "9x9", Level: "A"}
	snap := monthSnapshot(1, model.PriceRow{SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000})

	agg := AggregateCosts([]model.Billboard{priced, unpriced}, snap)
	require.Len(t, agg.MissingPrices, 1)
	assert.Equal(t, unpriced.ID, agg.MissingPrices[0])
	assert.InDelta(t, 1000, agg.BaseTotal, 0.001)
}

func TestAggregateCosts_FriendCosts(t *testing.T) {
	friendCo := uuid.New()
	friend := model.Billboard{ID: uuid.New(), SizeName: "4x3", Level: "A", FriendCompanyID: &friendCo, FriendRentalCost: 600}
	snap := monthSnapshot(1, model.PriceRow{SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000})

	agg := AggregateCosts([]model.Billboard{friend}, snap)
	assert.InDelta(t, 600, agg.FriendCosts, 0.001)
}
