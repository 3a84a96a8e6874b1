package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/h2316307-design/adhub-pro-sub002/internal/config"
	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
	"github.com/h2316307-design/adhub-pro-sub002/internal/pricing"
	"github.com/h2316307-design/adhub-pro-sub002/internal/schedule"
)

// ContractStore is the persistence collaborator for contract edits:
// reference-data reads and the single snapshot write at save.
type ContractStore interface {
	Billboards(ctx context.Context, ids []uuid.UUID) ([]model.Billboard, error)
	PriceRows(ctx context.Context, category string) ([]model.PriceRow, error)
	BasePrices(ctx context.Context) ([]model.BasePriceRow, error)
	MunicipalityFactors(ctx context.Context) (map[string]float64, error)
	CategoryFactors(ctx context.Context) (map[string]float64, error)
	InstallationCosts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]float64, error)
	StoredUnitPrices(ctx context.Context, contractID uuid.UUID) (map[uuid.UUID]float64, error)
	SaveContract(ctx context.Context, contract *model.Contract) error
	GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error)
}

type ContractService struct {
	store ContractStore
	cfg   *config.Config
}

func NewContractService(store ContractStore, cfg *config.Config) *ContractService {
	return &ContractService{store: store, cfg: cfg}
}

// EditInput is one edit-session state: the selected units and every
// toggle that drives the totals math. The engine recomputes from it on
// an immutable snapshot; nothing is persisted until SaveContract.
type EditInput struct {
	ContractID    *uuid.UUID
	BillboardIDs  []uuid.UUID
	Category      string
	PricingMode   model.PricingMode
	DurationUnit  model.DurationUnit
	DurationValue int
	Discount      pricing.DiscountConfig
	Inclusion     pricing.CostInclusion
	Fees          *pricing.FeeRates
	Overrides     map[uuid.UUID]float64
	PrintEnabled  bool
}

// Computation is a full recompute result for one edit state.
type Computation struct {
	Totals        model.ContractTotals
	Units         []model.UnitAllocation
	MissingPrices []uuid.UUID
}

// PreviewTotals runs the whole pricing pipeline for the current edit
// state without writing anything.
func (s *ContractService) PreviewTotals(ctx context.Context, input EditInput) (*Computation, error) {
	units, snap, err := s.loadSnapshot(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.compute(units, snap, input)
}

// RedistributeTotal rescales the current unit prices so they sum to the
// operator's negotiated total and returns the resulting override map.
func (s *ContractService) RedistributeTotal(ctx context.Context, input EditInput, desiredTotal float64) (map[uuid.UUID]float64, error) {
	units, snap, err := s.loadSnapshot(ctx, input)
	if err != nil {
		return nil, err
	}
	agg := pricing.AggregateCosts(units, snap)
	return pricing.Redistribute(agg.PerUnitBase, agg.BaseTotal, desiredTotal)
}

// PreviewSchedule builds an installment plan for a final total.
func (s *ContractService) PreviewSchedule(finalTotal float64, cfg schedule.Config) ([]model.Installment, error) {
	return schedule.Build(finalTotal, cfg)
}

// SaveInput is everything a contract save carries beyond the edit state.
type SaveInput struct {
	Edit         EditInput
	CustomerID   uuid.UUID
	CustomerName string
	StartAt      time.Time
	EndAt        time.Time
	Installments []model.Installment
	Principal    model.Principal
}

// SaveContract recomputes totals server-side, enforces the schedule
// invariant and persists the whole snapshot in a single commit.
func (s *ContractService) SaveContract(ctx context.Context, input SaveInput) (*model.Contract, error) {
	if !input.Principal.IsAdmin() && !input.Principal.IsSales() {
		return nil, ErrPermissionDenied
	}
	if input.CustomerID == uuid.Nil {
		return nil, fmt.Errorf("%w: customer_id is required", ErrInvalidInput)
	}
	if len(input.Edit.BillboardIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one billboard is required", ErrInvalidInput)
	}
	if input.StartAt.IsZero() || input.EndAt.IsZero() || input.StartAt.After(input.EndAt) {
		return nil, fmt.Errorf("%w: contract period is invalid", ErrInvalidInput)
	}

	units, snap, err := s.loadSnapshot(ctx, input.Edit)
	if err != nil {
		return nil, err
	}
	computation, err := s.compute(units, snap, input.Edit)
	if err != nil {
		return nil, err
	}

	if err := schedule.Validate(input.Installments, computation.Totals.FinalTotal); err != nil {
		return nil, err
	}

	contract := &model.Contract{
		ID:            uuid.New(),
		CustomerID:    input.CustomerID,
		CustomerName:  input.CustomerName,
		Category:      input.Edit.Category,
		PricingMode:   input.Edit.PricingMode,
		DurationUnit:  input.Edit.DurationUnit,
		DurationValue: input.Edit.DurationValue,
		StartAt:       input.StartAt,
		EndAt:         input.EndAt,
		Totals:        computation.Totals,
		Units:         computation.Units,
		Installments:  input.Installments,
		CreatedByUser: input.Principal.UserID,
	}
	if err := s.store.SaveContract(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// GetContract loads a saved contract snapshot, for export.
func (s *ContractService) GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	return s.store.GetContract(ctx, id)
}

func (s *ContractService) compute(units []model.Billboard, snap *pricing.Snapshot, input EditInput) (*Computation, error) {
	agg := pricing.AggregateCosts(units, snap)

	discount := input.Discount
	if discount.Policy == "" {
		discount.Policy = pricing.DiscountPolicy(s.cfg.Pricing.DiscountPolicy)
	}
	fees := s.defaultFees()
	if input.Fees != nil {
		fees = *input.Fees
	}

	result, err := pricing.AllocateDiscountAndFees(pricing.AllocationInput{
		Units:     units,
		Aggregate: agg,
		Discount:  discount,
		Inclusion: input.Inclusion,
		Fees:      fees,
	})
	if err != nil {
		return nil, err
	}
	return &Computation{
		Totals:        result.Totals,
		Units:         result.Units,
		MissingPrices: agg.MissingPrices,
	}, nil
}

func (s *ContractService) loadSnapshot(ctx context.Context, input EditInput) ([]model.Billboard, *pricing.Snapshot, error) {
	if len(input.BillboardIDs) == 0 {
		return nil, nil, fmt.Errorf("%w: no billboards selected", ErrInvalidInput)
	}
	if input.DurationValue <= 0 {
		return nil, nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	units, err := s.store.Billboards(ctx, input.BillboardIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(units) == 0 {
		return nil, nil, ErrNotFound
	}

	snap := &pricing.Snapshot{
		Mode:          input.PricingMode,
		Category:      input.Category,
		DurationUnit:  input.DurationUnit,
		DurationValue: input.DurationValue,
		Overrides:     input.Overrides,
		PrintEnabled:  input.PrintEnabled,
		PrintRate:     s.cfg.Pricing.PrintRate,
	}

	if input.PricingMode == model.PricingModeFactors {
		if snap.BasePrices, err = s.store.BasePrices(ctx); err != nil {
			return nil, nil, err
		}
		if snap.MunicipalityFactors, err = s.store.MunicipalityFactors(ctx); err != nil {
			return nil, nil, err
		}
		if snap.CategoryFactors, err = s.store.CategoryFactors(ctx); err != nil {
			return nil, nil, err
		}
	} else {
		if snap.PriceRows, err = s.store.PriceRows(ctx, input.Category); err != nil {
			return nil, nil, err
		}
	}

	if snap.InstallationCosts, err = s.store.InstallationCosts(ctx, input.BillboardIDs); err != nil {
		return nil, nil, err
	}
	if input.ContractID != nil {
		if snap.StoredPrices, err = s.store.StoredUnitPrices(ctx, *input.ContractID); err != nil {
			return nil, nil, err
		}
	}
	return units, snap, nil
}

func (s *ContractService) defaultFees() pricing.FeeRates {
	return pricing.FeeRates{
		Regular:              s.cfg.Fees.Regular,
		Partnership:          s.cfg.Fees.Partnership,
		Friend:               s.cfg.Fees.Friend,
		IncludedInstallation: s.cfg.Fees.IncludedInstallation,
		IncludedPrint:        s.cfg.Fees.IncludedPrint,
	}
}
