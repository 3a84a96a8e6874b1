package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestBuild_EvenSplitLastEntryAbsorbsRemainder(t *testing.T) {
	installments, err := Build(1000, Config{Type: DistributionEven, Count: 3, StartDate: start})
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.InDelta(t, 333.33, installments[0].Amount, 0.001)
	assert.InDelta(t, 333.33, installments[1].Amount, 0.001)
	assert.InDelta(t, 333.34, installments[2].Amount, 0.001)

	assert.Equal(t, LabelAtSigning, installments[0].PaymentType)
	assert.Equal(t, LabelAtInstallation, installments[1].PaymentType)
	assert.Equal(t, "monthly", installments[2].PaymentType)
}

func TestBuild_EvenSplitCountClamped(t *testing.T) {
	installments, err := Build(600, Config{Type: DistributionEven, Count: 99, StartDate: start})
	require.NoError(t, err)
	assert.Len(t, installments, 6)

	installments, err = Build(600, Config{Type: DistributionEven, Count: 0, StartDate: start})
	require.NoError(t, err)
	assert.Len(t, installments, 1)
}

func TestBuild_FirstPaymentWithRecurringInterval(t *testing.T) {
	installments, err := Build(12000, Config{
		Type:              DistributionFirstPayment,
		FirstPaymentMode:  FirstPaymentAmount,
		FirstPaymentValue: 2000,
		RecurringCount:    5,
		IntervalMonths:    1,
		StartDate:         start,
	})
	require.NoError(t, err)
	require.Len(t, installments, 6)

	assert.InDelta(t, 2000, installments[0].Amount, 0.001)
	assert.Equal(t, LabelAtSigning, installments[0].PaymentType)
	assert.Equal(t, start, installments[0].DueDate)

	assert.Equal(t, LabelAtInstallation, installments[1].PaymentType)
	sum := 0.0
	for i, inst := range installments {
		sum += inst.Amount
		if i >= 2 {
			assert.Equal(t, "monthly", inst.PaymentType)
		}
		if i >= 1 {
			assert.InDelta(t, 2000, inst.Amount, 0.001)
			assert.Equal(t, start.AddDate(0, i, 0), inst.DueDate)
		}
	}
	assert.InDelta(t, 12000, sum, 0.001)
}

func TestBuild_FirstPaymentPercentMode(t *testing.T) {
	installments, err := Build(10000, Config{
		Type:              DistributionFirstPayment,
		FirstPaymentMode:  FirstPaymentPercent,
		FirstPaymentValue: 30,
		RecurringCount:    2,
		IntervalMonths:    2,
		StartDate:         start,
	})
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.InDelta(t, 3000, installments[0].Amount, 0.001)
	assert.InDelta(t, 3500, installments[1].Amount, 0.001)
	assert.InDelta(t, 3500, installments[2].Amount, 0.001)
	assert.Equal(t, "every 2 months", installments[2].PaymentType)
	assert.Equal(t, start.AddDate(0, 2, 0), installments[1].DueDate)
	assert.Equal(t, start.AddDate(0, 4, 0), installments[2].DueDate)
}

func TestBuild_ZeroFirstPaymentDegradesToRecurringOnly(t *testing.T) {
	installments, err := Build(9000, Config{
		Type:              DistributionFirstPayment,
		FirstPaymentMode:  FirstPaymentAmount,
		FirstPaymentValue: 0,
		RecurringCount:    3,
		IntervalMonths:    1,
		StartDate:         start,
	})
	require.NoError(t, err)
	require.Len(t, installments, 3)
	assert.InDelta(t, 3000, installments[0].Amount, 0.001)
	assert.Equal(t, start, installments[0].DueDate)
	assert.Equal(t, LabelAtSigning, installments[0].PaymentType)
	assert.Equal(t, LabelAtInstallation, installments[1].PaymentType)
}

func TestBuild_RecurringCountDerivedFromEndDate(t *testing.T) {
	end := start.AddDate(0, 6, 0)
	installments, err := Build(6000, Config{
		Type:              DistributionFirstPayment,
		FirstPaymentMode:  FirstPaymentAmount,
		FirstPaymentValue: 0,
		IntervalMonths:    2,
		StartDate:         start,
		EndDate:           &end,
	})
	require.NoError(t, err)
	// Six months at a two-month interval gives three recurring payments.
	require.Len(t, installments, 3)
	assert.InDelta(t, 2000, installments[0].Amount, 0.001)
}

func TestBuild_FirstPaymentClampedToTotal(t *testing.T) {
	installments, err := Build(1000, Config{
		Type:              DistributionFirstPayment,
		FirstPaymentMode:  FirstPaymentAmount,
		FirstPaymentValue: 5000,
		RecurringCount:    2,
		IntervalMonths:    1,
		StartDate:         start,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1000, installments[0].Amount, 0.001)
	sum := 0.0
	for _, inst := range installments {
		sum += inst.Amount
	}
	assert.InDelta(t, 1000, sum, 0.001)
}

func TestBuild_ManualCreatesEmptySlotsWithDefaultedDates(t *testing.T) {
	installments, err := Build(5000, Config{
		Type:           DistributionManual,
		Count:          4,
		IntervalMonths: 1,
		StartDate:      start,
	})
	require.NoError(t, err)
	require.Len(t, installments, 4)
	for i, inst := range installments {
		assert.Zero(t, inst.Amount)
		assert.Equal(t, start.AddDate(0, i, 0), inst.DueDate)
	}
}

func TestBuild_RejectsNonPositiveTotal(t *testing.T) {
	_, err := Build(0, Config{Type: DistributionEven, Count: 2, StartDate: start})
	require.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestValidate_WithinOneUnitPasses(t *testing.T) {
	installments, err := Build(1000, Config{Type: DistributionEven, Count: 3, StartDate: start})
	require.NoError(t, err)
	assert.NoError(t, Validate(installments, 1000))
}

func TestValidate_MismatchNamesBothSums(t *testing.T) {
	installments, err := Build(1000, Config{Type: DistributionEven, Count: 3, StartDate: start})
	require.NoError(t, err)

	err = Validate(installments, 1200)
	require.ErrorIs(t, err, ErrScheduleMismatch)
	assert.Contains(t, err.Error(), "1000.00")
	assert.Contains(t, err.Error(), "1200.00")
}

func TestValidate_ManualAmountsAreNotAdjusted(t *testing.T) {
	installments, err := Build(5000, Config{Type: DistributionManual, Count: 2, StartDate: start})
	require.NoError(t, err)

	installments[0].Amount = 3000
	installments[1].Amount = 1999.50
	assert.NoError(t, Validate(installments, 5000))

	installments[1].Amount = 1500
	assert.Error(t, Validate(installments, 5000))
}
