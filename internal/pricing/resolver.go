package pricing

import (
	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

// Strategy is one pricing source. Resolve reports false when the source
// has no matching row for the unit; the next strategy in the chain is
// then consulted.
type Strategy interface {
	Resolve(unit model.Billboard, snap *Snapshot) (float64, bool)
}

// Strategies returns the pricing chain for a contract. An operator
// override beats the stored historical price, which beats the contract's
// configured source (rate table or factors, never both).
func Strategies(mode model.PricingMode) []Strategy {
	chain := []Strategy{overrideStrategy{}, storedStrategy{}}
	if mode == model.PricingModeFactors {
		return append(chain, factorStrategy{})
	}
	return append(chain, rateTableStrategy{})
}

// ResolvePrice walks the chain for a unit. A false result means no
// pricing source matched; callers treat that as 0 and flag the unit for
// operator review instead of failing, since partial pricing data is
// expected during data migration.
func ResolvePrice(unit model.Billboard, snap *Snapshot) (float64, bool) {
	for _, s := range Strategies(snap.Mode) {
		if price, ok := s.Resolve(unit, snap); ok {
			return price, true
		}
	}
	return 0, false
}

type overrideStrategy struct{}

func (overrideStrategy) Resolve(unit model.Billboard, snap *Snapshot) (float64, bool) {
	price, ok := snap.Overrides[unit.ID]
	return price, ok
}

type storedStrategy struct{}

func (storedStrategy) Resolve(unit model.Billboard, snap *Snapshot) (float64, bool) {
	price, ok := snap.StoredPrices[unit.ID]
	return price, ok
}

type rateTableStrategy struct{}

func (rateTableStrategy) Resolve(unit model.Billboard, snap *Snapshot) (float64, bool) {
	row, ok := matchPriceRow(unit, snap)
	if !ok {
		return 0, false
	}
	if snap.DurationUnit == model.DurationDays {
		daily := row.OneDay
		if daily <= 0 {
			if row.OneMonth <= 0 {
				return 0, false
			}
			daily = roundCents(row.OneMonth / 30)
		}
		return roundCents(daily * float64(snap.DurationValue)), true
	}
	price, ok := row.MonthPrice(snap.DurationValue)
	if !ok || price <= 0 {
		return 0, false
	}
	return price, true
}

// matchPriceRow prefers an exact size-identifier match and falls back to
// comparing normalized size strings, which tolerates transposed inputs
// like "5x13" vs "13x5".
func matchPriceRow(unit model.Billboard, snap *Snapshot) (model.PriceRow, bool) {
	for _, row := range snap.PriceRows {
		if row.Level != unit.Level || row.Category != snap.Category {
			continue
		}
		if unit.SizeID != 0 && row.SizeID == unit.SizeID {
			return row, true
		}
	}
	normalized := model.NormalizeSize(unit.SizeName)
	if normalized == "" {
		return model.PriceRow{}, false
	}
	for _, row := range snap.PriceRows {
		if row.Level != unit.Level || row.Category != snap.Category {
			continue
		}
		if model.NormalizeSize(row.SizeName) == normalized {
			return row, true
		}
	}
	return model.PriceRow{}, false
}

type factorStrategy struct{}

func (factorStrategy) Resolve(unit model.Billboard, snap *Snapshot) (float64, bool) {
	normalized := model.NormalizeSize(unit.SizeName)
	for _, row := range snap.BasePrices {
		if row.Level != unit.Level {
			continue
		}
		if model.NormalizeSize(row.SizeName) != normalized {
			continue
		}
		if row.Price <= 0 {
			return 0, false
		}
		price := row.Price * snap.municipalityFactor(unit.Municipality) * snap.categoryFactor(snap.Category)
		return roundCents(price), true
	}
	return 0, false
}
