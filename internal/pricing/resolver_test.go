package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

func monthSnapshot(months int, rows ...model.PriceRow) *Snapshot {
	return &Snapshot{
		Mode:          model.PricingModeRateTable,
		Category:      "regular",
		DurationUnit:  model.DurationMonths,
		DurationValue: months,
		PriceRows:     rows,
	}
}

func TestResolvePrice_TransposedSizesMatchSameRow(t *testing.T) {
	row := model.PriceRow{SizeName: "13x5", Level: "A", Category: "regular", ThreeMonths: 4500}
	snap := monthSnapshot(3, row)

	a := model.Billboard{ID: uuid.New(), SizeName: "5x13", Level: "A"}
	b := model.Billboard{ID: uuid.New(), SizeName: "13x5", Level: "A"}

	priceA, okA := ResolvePrice(a, snap)
	priceB, okB := ResolvePrice(b, snap)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, priceA, priceB)
	assert.InDelta(t, 4500, priceA, 0.001)
}

func TestResolvePrice_SizeIDWinsOverSizeString(t *testing.T) {
	rows := []model.PriceRow{
		{SizeID: 7, SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000},
		{SizeID: 9, SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1200},
	}
	snap := monthSnapshot(1, rows...)

	unit := model.Billboard{ID: uuid.New(), SizeID: 9, SizeName: "4x3", Level: "A"}
	price, ok := ResolvePrice(unit, snap)
	require.True(t, ok)
	assert.InDelta(t, 1200, price, 0.001)
}

func TestResolvePrice_OverrideBeatsStoredAndTable(t *testing.T) {
	id := uuid.New()
	snap := monthSnapshot(1, model.PriceRow{SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000})
	snap.StoredPrices = map[uuid.UUID]float64{id: 900}
	snap.Overrides = map[uuid.UUID]float64{id: 750}

	unit := model.Billboard{ID: id, SizeName: "4x3", Level: "A"}
	price, ok := ResolvePrice(unit, snap)
	require.True(t, ok)
	assert.InDelta(t, 750, price, 0.001)
}

func TestResolvePrice_StoredBeatsTable(t *testing.T) {
	id := uuid.New()
	snap := monthSnapshot(1, model.PriceRow{SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000})
	snap.StoredPrices = map[uuid.UUID]float64{id: 900}

	unit := model.Billboard{ID: id, SizeName: "4x3", Level: "A"}
	price, ok := ResolvePrice(unit, snap)
	require.True(t, ok)
	assert.InDelta(t, 900, price, 0.001)
}

func TestResolvePrice_DailyRateFallsBackToMonthlyOverThirty(t *testing.T) {
	row := model.PriceRow{SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000}
	snap := monthSnapshot(0, row)
	snap.DurationUnit = model.DurationDays
	snap.DurationValue = 10

	unit := model.Billboard{ID: uuid.New(), SizeName: "4x3", Level: "A"}
	price, ok := ResolvePrice(unit, snap)
	require.True(t, ok)
	// 1000/30 rounds to 33.33 per day.
	assert.InDelta(t, 333.30, price, 0.001)
}

func TestResolvePrice_ExplicitDailyRateUsed(t *testing.T) {
	row := model.PriceRow{SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000, OneDay: 40}
	snap := monthSnapshot(0, row)
	snap.DurationUnit = model.DurationDays
	snap.DurationValue = 5

	unit := model.Billboard{ID: uuid.New(), SizeName: "4x3", Level: "A"}
	price, ok := ResolvePrice(unit, snap)
	require.True(t, ok)
	assert.InDelta(t, 200, price, 0.001)
}

func TestResolvePrice_NoMatchReportsMissing(t *testing.T) {
	snap := monthSnapshot(1, model.PriceRow{SizeName: "4x3", Level: "B", Category: "regular", OneMonth: 1000})

	unit := model.Billboard{ID: uuid.New(), SizeName: "4x3", Level: "A"}
	price, ok := ResolvePrice(unit, snap)
	assert.False(t, ok)
	assert.Zero(t, price)
}

func TestResolvePrice_NonBucketMonthCountIsMissing(t *testing.T) {
	snap := monthSnapshot(5, model.PriceRow{SizeName: "4x3", Level: "A", Category: "regular", OneMonth: 1000})

	unit := model.Billboard{ID: uuid.New(), SizeName: "4x3", Level: "A"}
	_, ok := ResolvePrice(unit, snap)
	assert.False(t, ok)
}

func TestResolvePrice_FactorMode(t *testing.T) {
	snap := &Snapshot{
		Mode:          model.PricingModeFactors,
		Category:      "corporate",
		DurationUnit:  model.DurationMonths,
		DurationValue: 1,
		BasePrices: []model.BasePriceRow{
			{SizeName: "13x5", Level: "A", Price: 2000},
		},
		MunicipalityFactors: map[string]float64{"amanah": 1.5},
		CategoryFactors:     map[string]float64{"corporate": 1.2},
	}

	unit := model.Billboard{ID: uuid.New(), SizeName: "5x13", Level: "A", Municipality: "amanah"}
	price, ok := ResolvePrice(unit, snap)
	require.True(t, ok)
	assert.InDelta(t, 3600, price, 0.001)
}

func TestResolvePrice_FactorDefaultsToOneWhenNoRow(t *testing.T) {
	snap := &Snapshot{
		Mode:          model.PricingModeFactors,
		Category:      "regular",
		DurationUnit:  model.DurationMonths,
		DurationValue: 1,
		BasePrices: []model.BasePriceRow{
			{SizeName: "4x3", Level: "B", Price: 800},
		},
	}

	unit := model.Billboard{ID: uuid.New(), SizeName: "4x3", Level: "B", Municipality: "unknown"}
	price, ok := ResolvePrice(unit, snap)
	require.True(t, ok)
	assert.InDelta(t, 800, price, 0.001)
}

func TestNormalizeSize(t *testing.T) {
	assert.Equal(t, "13x5", model.NormalizeSize("5x13"))
	assert.Equal(t, "13x5", model.NormalizeSize("13 X 5"))
	assert.Equal(t, "13x5", model.NormalizeSize("5×13"))
	assert.Equal(t, "weird", model.NormalizeSize(" Weird "))
}
