package model

import (
	"time"

	"github.com/google/uuid"
)

// UnitAllocation is the per-unit slice of a contract's money figures.
// FinalPrice = BasePrice + extra costs charged to the customer - DiscountShare,
// and the final prices of all units sum to the contract's final total.
type UnitAllocation struct {
	BillboardID      uuid.UUID
	BillboardName    string
	BasePrice        float64
	InstallationCost float64
	PrintCost        float64
	ExtraCharged     float64 // service costs passed on to the customer
	DiscountShare    float64
	FinalPrice       float64
	PriceMissing     bool // no pricing source matched; surfaced, never fatal
}

// OperatingFeeBreakdown is the fee per disjoint cost pool.
type OperatingFeeBreakdown struct {
	Regular          float64
	Partnership      float64
	Friend           float64
	IncludedServices float64
}

func (b OperatingFeeBreakdown) Total() float64 {
	return b.Regular + b.Partnership + b.Friend + b.IncludedServices
}

// ContractTotals is the single totals record a contract edit produces.
type ContractTotals struct {
	BaseTotal           float64
	DiscountAmount      float64
	RentalAfterDiscount float64
	InstallationCost    float64
	PrintCost           float64
	NetRentalForCompany float64
	FinalTotal          float64
	OperatingFee        float64
	FeeBreakdown        OperatingFeeBreakdown
}

// Installment is one scheduled portion of a contract's final total.
type Installment struct {
	Amount      float64
	PaymentType string
	DueDate     time.Time
}

// Contract is the persisted snapshot written at save. Unit prices are
// frozen into contract_units so historical contracts never reprice when
// the rate tables change.
type Contract struct {
	ID            uuid.UUID
	Number        int64
	CustomerID    uuid.UUID
	CustomerName  string
	Category      string
	PricingMode   PricingMode
	DurationUnit  DurationUnit
	DurationValue int
	StartAt       time.Time
	EndAt         time.Time
	Totals        ContractTotals
	Units         []UnitAllocation
	Installments  []Installment
	CreatedByUser uuid.UUID
	CreatedAt     time.Time
}
