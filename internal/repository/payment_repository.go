package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) OpenObligations(ctx context.Context, customerID *uuid.UUID) ([]model.Obligation, error) {
	query := `
		SELECT id, number, type, customer_id, label, total, paid
		FROM obligations
		WHERE total - paid > 0.01
	`
	args := []interface{}{}
	if customerID != nil {
		query += " AND customer_id = ?"
		args = append(args, *customerID)
	}
	query += " ORDER BY number ASC"

	var obligations []model.Obligation
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&obligations).Error; err != nil {
		return nil, err
	}
	return obligations, nil
}

func (r *PaymentRepository) ObligationsByID(ctx context.Context, ids []uuid.UUID) ([]model.Obligation, error) {
	if len(ids) == 0 {
		return []model.Obligation{}, nil
	}
	var obligations []model.Obligation
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, number, type, customer_id, label, total, paid
		FROM obligations
		WHERE id = ANY(?)
		ORDER BY number ASC
	`, ids).Scan(&obligations).Error
	if err != nil {
		return nil, err
	}
	return obligations, nil
}

// CreateReceipt writes the receipt, its lines and the obligation paid
// updates in one transaction. Paid figures only ever increase.
func (r *PaymentRepository) CreateReceipt(ctx context.Context, receipt *model.PaymentReceipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var saved struct {
			Number    int64
			CreatedAt time.Time
		}
		err := tx.Raw(`
			INSERT INTO payment_receipts (
				id,
				number,
				customer_id,
				payer_name,
				amount,
				method,
				notes,
				created_by_user
			) VALUES (?, (SELECT COALESCE(MAX(number), 0) + 1 FROM payment_receipts), ?, ?, ?, ?, ?, ?)
			RETURNING number, created_at
		`,
			receipt.ID,
			receipt.CustomerID,
			receipt.PayerName,
			receipt.Amount,
			receipt.Method,
			receipt.Notes,
			receipt.CreatedByUser,
		).Scan(&saved).Error
		if err != nil {
			return err
		}
		receipt.Number = saved.Number
		receipt.CreatedAt = saved.CreatedAt

		for _, line := range receipt.Lines {
			if line.Amount <= 0 {
				continue
			}
			if err := tx.Exec(`
				INSERT INTO payment_receipt_lines (receipt_id, obligation_id, type, amount)
				VALUES (?, ?, ?, ?)
			`, receipt.ID, line.ObligationID, line.Type, line.Amount).Error; err != nil {
				return err
			}
			if err := tx.Exec(`
				UPDATE obligations
				SET paid = paid + ?
				WHERE id = ?
			`, line.Amount, line.ObligationID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PaymentRepository) GetReceipt(ctx context.Context, id uuid.UUID) (*model.PaymentReceipt, error) {
	var receipt model.PaymentReceipt
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, number, customer_id, payer_name, amount, method, notes, created_by_user, created_at
		FROM payment_receipts
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&receipt).Error
	if err != nil {
		return nil, err
	}
	if receipt.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).Raw(`
		SELECT obligation_id, type, amount
		FROM payment_receipt_lines
		WHERE receipt_id = ?
		ORDER BY amount DESC
	`, id).Scan(&receipt.Lines).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}
