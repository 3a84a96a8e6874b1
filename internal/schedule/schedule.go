// Package schedule builds contract installment plans. All strategies
// round each entry down to whole cents and let the last entry absorb the
// remainder, so the plan sums to the final total exactly.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

type DistributionType string

const (
	DistributionEven         DistributionType = "EVEN"
	DistributionFirstPayment DistributionType = "FIRST_PAYMENT"
	DistributionManual       DistributionType = "MANUAL"
)

type FirstPaymentMode string

const (
	FirstPaymentAmount  FirstPaymentMode = "AMOUNT"
	FirstPaymentPercent FirstPaymentMode = "PERCENT"
)

const (
	LabelAtSigning      = "at signing"
	LabelAtInstallation = "at installation"
)

// ErrScheduleMismatch blocks a save whose installments diverge from the
// final total beyond one currency unit.
var ErrScheduleMismatch = errors.New("installments do not match final total")

// ErrInvalidSchedule rejects a schedule request that cannot produce any
// installments.
var ErrInvalidSchedule = errors.New("invalid schedule configuration")

// Config selects one of the three mutually exclusive strategies.
type Config struct {
	Type DistributionType

	// Count is the number of installments for the even split, or the
	// number of empty slots for manual entry.
	Count int

	FirstPaymentMode  FirstPaymentMode
	FirstPaymentValue float64

	// RecurringCount is the explicit number of recurring payments; when
	// zero and EndDate is set, the count is derived from the period
	// divided by the interval.
	RecurringCount int
	IntervalMonths int

	StartDate time.Time
	EndDate   *time.Time
}

// Build produces the ordered installment list for a final total.
func Build(finalTotal float64, cfg Config) ([]model.Installment, error) {
	if finalTotal <= 0 {
		return nil, fmt.Errorf("%w: final total %.2f must be positive", ErrInvalidSchedule, finalTotal)
	}
	switch cfg.Type {
	case DistributionFirstPayment:
		return buildFirstPayment(finalTotal, cfg)
	case DistributionManual:
		return buildManual(cfg), nil
	default:
		return buildEven(finalTotal, cfg), nil
	}
}

func buildEven(finalTotal float64, cfg Config) []model.Installment {
	count := clampInt(cfg.Count, 1, 6)
	amounts := splitAmounts(finalTotal, count)

	installments := make([]model.Installment, count)
	for i := 0; i < count; i++ {
		installments[i] = model.Installment{
			Amount:  amounts[i],
			DueDate: cfg.StartDate.AddDate(0, i, 0),
		}
	}
	applyLabels(installments, 1)
	return installments
}

func buildFirstPayment(finalTotal float64, cfg Config) ([]model.Installment, error) {
	interval := clampInt(cfg.IntervalMonths, 1, 7)

	first := cfg.FirstPaymentValue
	if cfg.FirstPaymentMode == FirstPaymentPercent {
		first = finalTotal * clampFloat(cfg.FirstPaymentValue, 0, 100) / 100
	}
	first = clampFloat(first, 0, finalTotal)
	first = math.Floor(first*100) / 100

	count := cfg.RecurringCount
	if count <= 0 && cfg.EndDate != nil {
		count = monthsBetween(cfg.StartDate, *cfg.EndDate) / interval
	}
	if count <= 0 {
		count = 1
	}

	remainder := finalTotal - first
	amounts := splitAmounts(remainder, count)

	var installments []model.Installment
	if first > 0 {
		installments = append(installments, model.Installment{
			Amount:  first,
			DueDate: cfg.StartDate,
		})
	}
	for k := 0; k < count; k++ {
		offset := k * interval
		if first > 0 {
			offset = (k + 1) * interval
		}
		installments = append(installments, model.Installment{
			Amount:  amounts[k],
			DueDate: cfg.StartDate.AddDate(0, offset, 0),
		})
	}
	applyLabels(installments, interval)
	return installments, nil
}

// buildManual creates empty amount slots for the operator to fill in.
// Only due dates are defaulted; amounts are never redistributed.
func buildManual(cfg Config) []model.Installment {
	count := clampInt(cfg.Count, 1, 12)
	interval := clampInt(cfg.IntervalMonths, 1, 7)

	installments := make([]model.Installment, count)
	for i := 0; i < count; i++ {
		installments[i] = model.Installment{
			DueDate: cfg.StartDate.AddDate(0, i*interval, 0),
		}
	}
	applyLabels(installments, interval)
	return installments
}

// Validate enforces the hard save invariant: the installment amounts
// must sum to the final total within one currency unit.
func Validate(installments []model.Installment, finalTotal float64) error {
	sum := 0.0
	for _, inst := range installments {
		sum += inst.Amount
	}
	if math.Abs(sum-finalTotal) > 1.0 {
		return fmt.Errorf("%w: installments sum to %.2f, final total is %.2f",
			ErrScheduleMismatch, sum, finalTotal)
	}
	return nil
}

// splitAmounts floors each entry to whole cents and lets the last one
// absorb the rounding remainder so the parts sum to total exactly.
func splitAmounts(total float64, count int) []float64 {
	each := math.Floor(total/float64(count)*100) / 100
	amounts := make([]float64, count)
	for i := range amounts {
		amounts[i] = each
	}
	amounts[count-1] = math.Round((total-each*float64(count-1))*100) / 100
	return amounts
}

// applyLabels forces the fixed semantic roles of the first two
// chronological entries; only entries beyond the second take the
// interval's generic label.
func applyLabels(installments []model.Installment, interval int) {
	label := "monthly"
	if interval > 1 {
		label = fmt.Sprintf("every %d months", interval)
	}
	for i := range installments {
		switch i {
		case 0:
			installments[i].PaymentType = LabelAtSigning
		case 1:
			installments[i].PaymentType = LabelAtInstallation
		default:
			installments[i].PaymentType = label
		}
	}
}

func monthsBetween(start, end time.Time) int {
	months := 0
	for cursor := start.AddDate(0, 1, 0); !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		months++
	}
	return months
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
