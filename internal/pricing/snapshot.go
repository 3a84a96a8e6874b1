package pricing

import (
	"github.com/google/uuid"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

// Snapshot is the read-only reference data one contract edit computes
// against. The service layer fetches it once per edit session; refreshing
// means fetching a new snapshot, never mutating this one.
type Snapshot struct {
	Mode          model.PricingMode
	Category      string
	DurationUnit  model.DurationUnit
	DurationValue int

	PriceRows           []model.PriceRow
	BasePrices          []model.BasePriceRow
	MunicipalityFactors map[string]float64
	CategoryFactors     map[string]float64

	// StoredPrices are per-unit prices persisted with the contract being
	// edited, so historical contracts never silently reprice.
	StoredPrices map[uuid.UUID]float64

	// Overrides come from a total redistribution and take precedence over
	// every other pricing source until explicitly cleared.
	Overrides map[uuid.UUID]float64

	InstallationCosts map[uuid.UUID]float64
	PrintRate         float64
	PrintEnabled      bool
}

func (s *Snapshot) municipalityFactor(municipality string) float64 {
	if f, ok := s.MunicipalityFactors[municipality]; ok && f > 0 {
		return f
	}
	return 1
}

func (s *Snapshot) categoryFactor(category string) float64 {
	if f, ok := s.CategoryFactors[category]; ok && f > 0 {
		return f
	}
	return 1
}
