package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

func obligation(number int64, total, paid float64) model.Obligation {
	return model.Obligation{
		ID:     uuid.New(),
		Number: number,
		Type:   model.ObligationContract,
		Total:  total,
		Paid:   paid,
	}
}

func TestAutoDistribute_SmallestNumberFirstUpToRemaining(t *testing.T) {
	obligations := []model.Obligation{
		obligation(1, 500, 0),
		obligation(2, 300, 0),
		obligation(3, 200, 0),
	}

	result, err := AutoDistribute(obligations, 650)
	require.NoError(t, err)

	// Every open obligation gets an entry, zero once the amount runs out.
	require.Len(t, result.Allocations, 3)
	assert.InDelta(t, 500, result.Allocations[0].Amount, 0.001)
	assert.InDelta(t, 150, result.Allocations[1].Amount, 0.001)
	assert.Zero(t, result.Allocations[2].Amount)
	assert.InDelta(t, 650, result.Distributed, 0.001)
	assert.Zero(t, result.Leftover)
}

func TestAutoDistribute_OrderIsStableByNumber(t *testing.T) {
	first := obligation(10, 400, 0)
	second := obligation(25, 400, 0)
	// Input arrives unordered; distribution still goes to the lower number.
	result, err := AutoDistribute([]model.Obligation{second, first}, 100)
	require.NoError(t, err)

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, first.ID, result.Allocations[0].ObligationID)
	assert.InDelta(t, 100, result.Allocations[0].Amount, 0.001)
	assert.Zero(t, result.Allocations[1].Amount)
}

func TestAutoDistribute_LeftoverIsReported(t *testing.T) {
	result, err := AutoDistribute([]model.Obligation{obligation(1, 100, 0)}, 150)
	require.NoError(t, err)

	assert.InDelta(t, 100, result.Distributed, 0.001)
	assert.InDelta(t, 50, result.Leftover, 0.001)
}

func TestAutoDistribute_SettledObligationsExcluded(t *testing.T) {
	settled := obligation(1, 100, 100)
	nearlySettled := obligation(2, 100, 99.995)
	open := obligation(3, 100, 0)

	result, err := AutoDistribute([]model.Obligation{settled, nearlySettled, open}, 60)
	require.NoError(t, err)

	require.Len(t, result.Allocations, 1)
	assert.Equal(t, open.ID, result.Allocations[0].ObligationID)
}

func TestAutoDistribute_RejectsNonPositiveAmount(t *testing.T) {
	_, err := AutoDistribute([]model.Obligation{obligation(1, 100, 0)}, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestClampManual(t *testing.T) {
	o := obligation(1, 300, 100)
	assert.InDelta(t, 150, ClampManual(o, 150), 0.001)
	assert.InDelta(t, 200, ClampManual(o, 999), 0.001)
	assert.Zero(t, ClampManual(o, -5))
}

func TestValidateCommit_Accepts(t *testing.T) {
	a := obligation(1, 500, 0)
	b := obligation(2, 300, 0)
	allocations := []model.PaymentAllocation{
		{ObligationID: a.ID, Type: a.Type, Amount: 500},
		{ObligationID: b.ID, Type: b.Type, Amount: 150},
	}
	assert.NoError(t, ValidateCommit([]model.Obligation{a, b}, allocations, 650))
}

func TestValidateCommit_AmountExceedsAllocatableTotal(t *testing.T) {
	a := obligation(1, 100, 0)
	allocations := []model.PaymentAllocation{{ObligationID: a.ID, Type: a.Type, Amount: 100}}

	err := ValidateCommit([]model.Obligation{a}, allocations, 150)
	require.ErrorIs(t, err, ErrExceedsAllocatable)
	assert.Contains(t, err.Error(), "amount exceeds allocatable total")
	assert.Contains(t, err.Error(), "150.00")
	assert.Contains(t, err.Error(), "100.00")
}

func TestValidateCommit_SumMismatchNamesBothNumbers(t *testing.T) {
	a := obligation(1, 500, 0)
	allocations := []model.PaymentAllocation{{ObligationID: a.ID, Type: a.Type, Amount: 200}}

	err := ValidateCommit([]model.Obligation{a}, allocations, 300)
	require.ErrorIs(t, err, ErrAllocationMismatch)
	assert.Contains(t, err.Error(), "200.00")
	assert.Contains(t, err.Error(), "300.00")
}

func TestValidateCommit_OverAllocationBlocked(t *testing.T) {
	a := obligation(7, 100, 50)
	allocations := []model.PaymentAllocation{{ObligationID: a.ID, Type: a.Type, Amount: 80}}

	err := ValidateCommit([]model.Obligation{a}, allocations, 80)
	require.ErrorIs(t, err, ErrOverAllocation)
}

func TestValidateCommit_SplitAllocationsCountAgainstRemainingTogether(t *testing.T) {
	a := obligation(1, 100, 0)
	b := obligation(2, 100, 0)
	// Each entry fits on its own; together they overdraw obligation 1.
	allocations := []model.PaymentAllocation{
		{ObligationID: a.ID, Type: a.Type, Amount: 60},
		{ObligationID: a.ID, Type: a.Type, Amount: 60},
	}

	err := ValidateCommit([]model.Obligation{a, b}, allocations, 120)
	require.ErrorIs(t, err, ErrOverAllocation)
	assert.Contains(t, err.Error(), "100.00")
	assert.Contains(t, err.Error(), "120.00")
}

func TestValidateCommit_RequiresAtLeastOnePositiveAllocation(t *testing.T) {
	a := obligation(1, 100, 0)
	allocations := []model.PaymentAllocation{{ObligationID: a.ID, Type: a.Type, Amount: 0}}

	err := ValidateCommit([]model.Obligation{a}, allocations, 50)
	require.ErrorIs(t, err, ErrNoAllocations)
}

func TestValidateCommit_ToleranceIsOneCent(t *testing.T) {
	a := obligation(1, 500, 0)
	allocations := []model.PaymentAllocation{{ObligationID: a.ID, Type: a.Type, Amount: 499.995}}
	assert.NoError(t, ValidateCommit([]model.Obligation{a}, allocations, 500))
}
