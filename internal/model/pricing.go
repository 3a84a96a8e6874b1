package model

// PricingMode selects where unit rental prices come from for a contract.
// Rate-table and factor pricing are mutually exclusive per contract.
type PricingMode string

const (
	PricingModeRateTable PricingMode = "RATE_TABLE"
	PricingModeFactors   PricingMode = "FACTORS"
)

// DurationUnit is the unit of a contract's rental duration.
type DurationUnit string

const (
	DurationMonths DurationUnit = "MONTHS"
	DurationDays   DurationUnit = "DAYS"
)

// PriceRow is one row of the rental rate table, keyed by size, level and
// customer category, with prices at the fixed duration buckets.
type PriceRow struct {
	ID          int64
	SizeID      int64
	SizeName    string
	Level       string
	Category    string
	OneMonth    float64
	TwoMonths   float64
	ThreeMonths float64
	SixMonths   float64
	FullYear    float64
	OneDay      float64
}

// MonthPrice returns the column for the requested month count. Only the
// fixed buckets {1, 2, 3, 6, 12} exist; anything else reports no match.
func (r PriceRow) MonthPrice(months int) (float64, bool) {
	switch months {
	case 1:
		return r.OneMonth, true
	case 2:
		return r.TwoMonths, true
	case 3:
		return r.ThreeMonths, true
	case 6:
		return r.SixMonths, true
	case 12:
		return r.FullYear, true
	default:
		return 0, false
	}
}

// BasePriceRow is the factor-pricing base price per (size, level).
type BasePriceRow struct {
	ID       int64
	SizeName string
	Level    string
	Price    float64
}

// MunicipalityFactor multiplies the base price for units in a municipality.
// Missing rows default to 1.
type MunicipalityFactor struct {
	Municipality string
	Factor       float64
}

// CategoryFactor multiplies the base price for a customer category.
// Missing rows default to 1.
type CategoryFactor struct {
	Category string
	Factor   float64
}
