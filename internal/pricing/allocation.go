package pricing

import (
	"fmt"
	"math"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

// DiscountPolicy decides what happens when a fixed discount exceeds the
// rental base: the legacy behavior silently floors the rental at zero,
// reject surfaces the operator error instead.
type DiscountPolicy string

const (
	DiscountPolicyClamp  DiscountPolicy = "CLAMP"
	DiscountPolicyReject DiscountPolicy = "REJECT"
)

// DiscountConfig is the single contract-wide discount plus optional
// per-level percent overrides. A level listed in LevelPercents takes its
// own percent instead of a share of the global discount.
type DiscountConfig struct {
	Type          DiscountType
	Value         float64
	LevelPercents map[string]float64
	Policy        DiscountPolicy
}

// CostInclusion captures the "include in price" toggles in one place so
// the branchy totals math stays auditable.
type CostInclusion struct {
	InstallationInPrice bool
	PrintInPrice        bool
}

// FeeRates configures the operating fee per disjoint cost pool, plus the
// additive sub-rates applied to service costs absorbed into the price.
type FeeRates struct {
	Regular              float64
	Partnership          float64
	Friend               float64
	IncludedInstallation float64
	IncludedPrint        float64
}

// AllocationInput bundles everything the allocator consumes.
type AllocationInput struct {
	Units     []model.Billboard
	Aggregate Aggregate
	Discount  DiscountConfig
	Inclusion CostInclusion
	Fees      FeeRates
}

// AllocationResult is the contract totals record plus the per-unit
// partition that reproduces it.
type AllocationResult struct {
	Totals model.ContractTotals
	Units  []model.UnitAllocation
}

// AllocateDiscountAndFees applies the discount to the aggregate, splits
// the post-discount amount back onto each unit proportionally to its
// weight in the base total, and derives the operating fee over the three
// disjoint pools. Negative intermediates are clamped to zero, never
// propagated.
func AllocateDiscountAndFees(in AllocationInput) (*AllocationResult, error) {
	agg := in.Aggregate
	baseTotal := agg.BaseTotal

	rawDiscount, perUnitRaw := discountAmounts(in)
	if in.Discount.Policy == DiscountPolicyReject && rawDiscount > baseTotal+0.01 {
		return nil, fmt.Errorf("%w: discount %.2f, rental base %.2f", ErrDiscountExceedsBase, rawDiscount, baseTotal)
	}

	discountAmount := math.Min(rawDiscount, baseTotal)
	rentalAfterDiscount := clampNonNegative(baseTotal - discountAmount)

	includedInstall := 0.0
	extraInstall := agg.InstallationCost
	if in.Inclusion.InstallationInPrice {
		includedInstall = agg.InstallationCost
		extraInstall = 0
	}
	includedPrint := 0.0
	extraPrint := agg.PrintCost
	if in.Inclusion.PrintInPrice {
		includedPrint = agg.PrintCost
		extraPrint = 0
	}

	netRental := clampNonNegative(rentalAfterDiscount - includedInstall - includedPrint - agg.FriendCosts)
	finalTotal := clampNonNegative(rentalAfterDiscount + extraInstall + extraPrint)

	units := allocateUnits(in, perUnitRaw, rawDiscount, discountAmount, finalTotal)

	fees := feeBreakdown(in, units, netRental)

	totals := model.ContractTotals{
		BaseTotal:           roundCents(baseTotal),
		DiscountAmount:      roundCents(discountAmount),
		RentalAfterDiscount: roundCents(rentalAfterDiscount),
		InstallationCost:    agg.InstallationCost,
		PrintCost:           agg.PrintCost,
		NetRentalForCompany: roundCents(netRental),
		FinalTotal:          roundCents(finalTotal),
		OperatingFee:        roundCents(fees.Total()),
		FeeBreakdown:        fees,
	}
	return &AllocationResult{Totals: totals, Units: units}, nil
}

// discountAmounts computes the total discount and each unit's raw share.
// Units whose level carries an override percent are discounted on their
// own base; the global discount covers the rest proportionally.
func discountAmounts(in AllocationInput) (float64, map[int]float64) {
	agg := in.Aggregate
	perUnit := make(map[int]float64, len(in.Units))

	levelBase := 0.0
	levelDiscount := 0.0
	plainBase := 0.0
	for i, unit := range in.Units {
		base := agg.PerUnitBase[unit.ID]
		pct, overridden := in.Discount.LevelPercents[unit.Level]
		if overridden {
			share := base * clampPercent(pct) / 100
			perUnit[i] = share
			levelBase += base
			levelDiscount += share
			continue
		}
		plainBase += base
	}

	globalDiscount := 0.0
	switch in.Discount.Type {
	case DiscountFixed:
		globalDiscount = clampNonNegative(in.Discount.Value)
	default:
		globalDiscount = plainBase * clampPercent(in.Discount.Value) / 100
	}

	for i, unit := range in.Units {
		if _, overridden := in.Discount.LevelPercents[unit.Level]; overridden {
			continue
		}
		if plainBase <= 0 {
			perUnit[i] = 0
			continue
		}
		base := agg.PerUnitBase[unit.ID]
		perUnit[i] = globalDiscount * (base / plainBase)
	}

	return globalDiscount + levelDiscount, perUnit
}

// allocateUnits builds the per-unit partition. When the clamp reduced
// the effective discount, every raw share is rescaled by the same ratio
// so the shares still sum to the discount actually applied. Residual
// rounding cents land on the largest share.
func allocateUnits(in AllocationInput, perUnitRaw map[int]float64, rawDiscount, discountAmount, finalTotal float64) []model.UnitAllocation {
	agg := in.Aggregate
	scale := 1.0
	if rawDiscount > 0 && discountAmount < rawDiscount {
		scale = discountAmount / rawDiscount
	}

	missing := make(map[string]bool, len(agg.MissingPrices))
	for _, id := range agg.MissingPrices {
		missing[id.String()] = true
	}

	units := make([]model.UnitAllocation, len(in.Units))
	shareSum := 0.0
	maxIdx := 0
	for i, unit := range in.Units {
		share := roundCents(perUnitRaw[i] * scale)
		shareSum += share

		extra := 0.0
		if !in.Inclusion.InstallationInPrice {
			extra += agg.PerUnitInstall[unit.ID]
		}
		if !in.Inclusion.PrintInPrice {
			extra += agg.PerUnitPrint[unit.ID]
		}

		base := agg.PerUnitBase[unit.ID]
		units[i] = model.UnitAllocation{
			BillboardID:      unit.ID,
			BillboardName:    unit.Name,
			BasePrice:        base,
			InstallationCost: agg.PerUnitInstall[unit.ID],
			PrintCost:        agg.PerUnitPrint[unit.ID],
			ExtraCharged:     roundCents(extra),
			DiscountShare:    share,
			PriceMissing:     missing[unit.ID.String()],
		}
		if share > units[maxIdx].DiscountShare {
			maxIdx = i
		}
	}

	// Push rounding drift into the largest share so the shares sum to
	// the applied discount exactly. The drift grows with the unit count,
	// so it is reconciled whatever its size.
	diff := roundCents(discountAmount - shareSum)
	if diff != 0 && len(units) > 0 {
		units[maxIdx].DiscountShare = roundCents(units[maxIdx].DiscountShare + diff)
	}

	priceSum := 0.0
	maxIdx = 0
	for i := range units {
		units[i].FinalPrice = roundCents(units[i].BasePrice + units[i].ExtraCharged - units[i].DiscountShare)
		priceSum += units[i].FinalPrice
		if units[i].FinalPrice > units[maxIdx].FinalPrice {
			maxIdx = i
		}
	}

	// Per-unit prices are rounded individually, so on bases that are not
	// cent-quantized their sum can still miss the rounded final total.
	// The residue goes to the largest price, mirrored into its discount
	// share to keep base + extra - share = final on that unit too.
	if priceDiff := roundCents(roundCents(finalTotal) - roundCents(priceSum)); priceDiff != 0 && len(units) > 0 {
		units[maxIdx].FinalPrice = roundCents(units[maxIdx].FinalPrice + priceDiff)
		units[maxIdx].DiscountShare = roundCents(units[maxIdx].DiscountShare - priceDiff)
	}
	return units
}

// feeBreakdown computes the operating fee over the three disjoint pools.
// Included service costs are company-borne and belong to the regular
// pool's deduction; their sub-rates are added on top of the pool fees,
// not blended into them.
func feeBreakdown(in AllocationInput, units []model.UnitAllocation, netRental float64) model.OperatingFeeBreakdown {
	partnershipPool := 0.0
	for i, unit := range in.Units {
		if unit.Partnership && !unit.IsFriend() {
			partnershipPool += units[i].BasePrice - units[i].DiscountShare
		}
	}
	partnershipPool = clampNonNegative(partnershipPool)
	if partnershipPool > netRental {
		partnershipPool = netRental
	}
	regularPool := clampNonNegative(netRental - partnershipPool)

	breakdown := model.OperatingFeeBreakdown{
		Regular:     roundCents(regularPool * in.Fees.Regular / 100),
		Partnership: roundCents(partnershipPool * in.Fees.Partnership / 100),
		Friend:      roundCents(in.Aggregate.FriendCosts * in.Fees.Friend / 100),
	}
	if in.Inclusion.InstallationInPrice {
		breakdown.IncludedServices += roundCents(in.Aggregate.InstallationCost * in.Fees.IncludedInstallation / 100)
	}
	if in.Inclusion.PrintInPrice {
		breakdown.IncludedServices += roundCents(in.Aggregate.PrintCost * in.Fees.IncludedPrint / 100)
	}
	return breakdown
}
