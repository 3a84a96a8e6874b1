// Package payment spreads a single received payment across outstanding
// obligations, either automatically or from manual per-item entries, and
// validates the result before anything is committed.
package payment

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

// Tolerance is the allowed drift between the payment amount and the sum
// of its allocations.
const Tolerance = 0.01

var (
	ErrInvalidAmount      = errors.New("payment amount must be positive")
	ErrNoAllocations      = errors.New("no obligation received an allocation")
	ErrAllocationMismatch = errors.New("allocations do not match payment amount")
	ErrOverAllocation     = errors.New("allocation exceeds obligation remaining")
	ErrExceedsAllocatable = errors.New("amount exceeds allocatable total")
)

// Result reports what an auto-distribution achieved. Leftover is
// surfaced to the operator, never silently dropped.
type Result struct {
	Allocations []model.PaymentAllocation
	Distributed float64
	Leftover    float64
}

// OpenObligations filters out settled items and orders the rest by the
// numeric identifier of the underlying document, which fixes the
// distribution order.
func OpenObligations(obligations []model.Obligation) []model.Obligation {
	open := make([]model.Obligation, 0, len(obligations))
	for _, o := range obligations {
		if o.Remaining() > Tolerance {
			open = append(open, o)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].Number < open[j].Number
	})
	return open
}

// AutoDistribute fills each open obligation up to its remaining balance
// until the amount runs out. Obligations past the exhaustion point still
// get a zero entry so the operator sees the full open list.
func AutoDistribute(obligations []model.Obligation, amount float64) (*Result, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidAmount, amount)
	}

	result := &Result{}
	left := amount
	for _, o := range OpenObligations(obligations) {
		alloc := roundCents(math.Min(o.Remaining(), left))
		result.Allocations = append(result.Allocations, model.PaymentAllocation{
			ObligationID: o.ID,
			Type:         o.Type,
			Amount:       alloc,
		})
		left = roundCents(left - alloc)
	}
	result.Leftover = left
	result.Distributed = roundCents(amount - left)
	return result, nil
}

// ClampManual bounds a hand-entered allocation to what the obligation
// can still absorb.
func ClampManual(o model.Obligation, amount float64) float64 {
	if amount < 0 {
		return 0
	}
	remaining := o.Remaining()
	if amount > remaining {
		return remaining
	}
	return amount
}

// ValidateCommit checks every precondition before a payment becomes
// immutable records. It never partially commits: the first violated
// precondition blocks the whole payment with the numbers involved.
func ValidateCommit(obligations []model.Obligation, allocations []model.PaymentAllocation, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidAmount, amount)
	}

	byID := make(map[string]model.Obligation, len(obligations))
	allocatable := 0.0
	for _, o := range obligations {
		byID[o.ID.String()] = o
		allocatable += o.Remaining()
	}
	if amount-allocatable > Tolerance {
		return fmt.Errorf("%w: payment %.2f, open obligations total %.2f",
			ErrExceedsAllocatable, amount, allocatable)
	}

	sum := 0.0
	positive := 0
	perObligation := make(map[string]float64, len(allocations))
	for _, a := range allocations {
		if a.Amount < 0 {
			return fmt.Errorf("%w: negative allocation %.2f", ErrAllocationMismatch, a.Amount)
		}
		if a.Amount > 0 {
			positive++
		}
		key := a.ObligationID.String()
		o, ok := byID[key]
		if !ok {
			return fmt.Errorf("%w: unknown obligation %s", ErrAllocationMismatch, a.ObligationID)
		}
		// Checked cumulatively: several entries naming the same obligation
		// must not absorb more than its remaining balance together.
		perObligation[key] += a.Amount
		if perObligation[key]-o.Remaining() > Tolerance {
			return fmt.Errorf("%w: obligation %d remaining %.2f, allocated %.2f",
				ErrOverAllocation, o.Number, o.Remaining(), perObligation[key])
		}
		sum += a.Amount
	}
	if positive == 0 {
		return ErrNoAllocations
	}
	if math.Abs(sum-amount) > Tolerance {
		return fmt.Errorf("%w: allocations sum to %.2f, payment amount is %.2f",
			ErrAllocationMismatch, sum, amount)
	}
	return nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
