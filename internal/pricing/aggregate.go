package pricing

import (
	"github.com/google/uuid"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

// Aggregate holds the raw cost sums for a set of selected units before
// any discount or fee is applied. BaseTotal is rental only; service
// costs are tracked separately.
type Aggregate struct {
	BaseTotal        float64
	PerUnitBase      map[uuid.UUID]float64
	MissingPrices    []uuid.UUID
	InstallationCost float64
	PrintCost        float64
	PerUnitInstall   map[uuid.UUID]float64
	PerUnitPrint     map[uuid.UUID]float64
	FriendCosts      float64
}

// AggregateCosts resolves each unit's rental price and sums the auxiliary
// service costs. Units with no matching pricing source contribute 0 and
// are listed in MissingPrices for the operator to review.
func AggregateCosts(units []model.Billboard, snap *Snapshot) Aggregate {
	agg := Aggregate{
		PerUnitBase:    make(map[uuid.UUID]float64, len(units)),
		PerUnitInstall: make(map[uuid.UUID]float64, len(units)),
		PerUnitPrint:   make(map[uuid.UUID]float64, len(units)),
	}

	for _, unit := range units {
		price, ok := ResolvePrice(unit, snap)
		if !ok {
			agg.MissingPrices = append(agg.MissingPrices, unit.ID)
			price = 0
		}
		agg.PerUnitBase[unit.ID] = price
		agg.BaseTotal += price

		install := snap.InstallationCosts[unit.ID]
		agg.PerUnitInstall[unit.ID] = install
		agg.InstallationCost += install

		print := printCost(unit, snap)
		agg.PerUnitPrint[unit.ID] = print
		agg.PrintCost += print

		if unit.IsFriend() {
			agg.FriendCosts += unit.FriendRentalCost
		}
	}

	agg.BaseTotal = roundCents(agg.BaseTotal)
	agg.InstallationCost = roundCents(agg.InstallationCost)
	agg.PrintCost = roundCents(agg.PrintCost)
	agg.FriendCosts = roundCents(agg.FriendCosts)
	return agg
}

func printCost(unit model.Billboard, snap *Snapshot) float64 {
	if !snap.PrintEnabled || snap.PrintRate <= 0 {
		return 0
	}
	area := unit.Area()
	if area <= 0 {
		return 0
	}
	return roundCents(area * float64(unit.FaceCount()) * snap.PrintRate)
}
