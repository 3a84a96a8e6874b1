package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
	"github.com/h2316307-design/adhub-pro-sub002/internal/payment"
)

// PaymentStore is the ledger-writing collaborator on the billing side.
type PaymentStore interface {
	OpenObligations(ctx context.Context, customerID *uuid.UUID) ([]model.Obligation, error)
	ObligationsByID(ctx context.Context, ids []uuid.UUID) ([]model.Obligation, error)
	CreateReceipt(ctx context.Context, receipt *model.PaymentReceipt) error
	GetReceipt(ctx context.Context, id uuid.UUID) (*model.PaymentReceipt, error)
}

type PaymentService struct {
	store PaymentStore
}

func NewPaymentService(store PaymentStore) *PaymentService {
	return &PaymentService{store: store}
}

func (s *PaymentService) ListOpenObligations(ctx context.Context, customerID *uuid.UUID) ([]model.Obligation, error) {
	obligations, err := s.store.OpenObligations(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return payment.OpenObligations(obligations), nil
}

// Distribute spreads a payment amount over the customer's open
// obligations smallest-number-first and reports any leftover.
func (s *PaymentService) Distribute(ctx context.Context, customerID *uuid.UUID, amount float64) (*payment.Result, error) {
	obligations, err := s.store.OpenObligations(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return payment.AutoDistribute(obligations, amount)
}

// CommitInput is one payment ready to become immutable records.
type CommitInput struct {
	CustomerID  uuid.UUID
	PayerName   string
	Amount      float64
	Method      string
	Notes       string
	Allocations []model.PaymentAllocation
	Principal   model.Principal
}

// CommitPayment validates every precondition and writes the receipt plus
// the obligation updates in one transaction. It never partially commits.
func (s *PaymentService) CommitPayment(ctx context.Context, input CommitInput) (*model.PaymentReceipt, error) {
	if !input.Principal.IsAdmin() && !input.Principal.IsAccountant() {
		return nil, ErrPermissionDenied
	}
	if len(input.Allocations) == 0 {
		return nil, fmt.Errorf("%w: no allocations", ErrInvalidInput)
	}

	ids := make([]uuid.UUID, 0, len(input.Allocations))
	for _, a := range input.Allocations {
		ids = append(ids, a.ObligationID)
	}
	obligations, err := s.store.ObligationsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	if err := payment.ValidateCommit(obligations, input.Allocations, input.Amount); err != nil {
		return nil, err
	}

	receipt := &model.PaymentReceipt{
		ID:            uuid.New(),
		CustomerID:    input.CustomerID,
		PayerName:     input.PayerName,
		Amount:        input.Amount,
		Method:        input.Method,
		Notes:         input.Notes,
		Lines:         input.Allocations,
		CreatedByUser: input.Principal.UserID,
	}
	if err := s.store.CreateReceipt(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *PaymentService) GetReceipt(ctx context.Context, id uuid.UUID) (*model.PaymentReceipt, error) {
	return s.store.GetReceipt(ctx, id)
}
