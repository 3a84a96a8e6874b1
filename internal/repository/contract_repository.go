package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Billboards(ctx context.Context, ids []uuid.UUID) ([]model.Billboard, error) {
	if len(ids) == 0 {
		return []model.Billboard{}, nil
	}
	var rows []struct {
		ID               uuid.UUID
		Name             string
		SizeID           int64
		SizeName         string
		Width            float64
		Height           float64
		Level            string
		Municipality     string
		Faces            int
		Partnership      bool
		FriendCompanyID  *uuid.UUID
		FriendRentalCost float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			b.name,
			COALESCE(b.size_id, 0) AS size_id,
			b.size_name,
			COALESCE(b.width, 0) AS width,
			COALESCE(b.height, 0) AS height,
			b.level,
			b.municipality,
			COALESCE(b.faces, 1) AS faces,
			b.partnership,
			b.friend_company_id,
			COALESCE(b.friend_rental_cost, 0) AS friend_rental_cost
		FROM billboards b
		WHERE b.id = ANY(?)
		ORDER BY b.name ASC
	`, ids).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	billboards := make([]model.Billboard, len(rows))
	for i, row := range rows {
		billboards[i] = model.Billboard{
			ID:               row.ID,
			Name:             row.Name,
			SizeID:           row.SizeID,
			SizeName:         row.SizeName,
			Width:            row.Width,
			Height:           row.Height,
			Level:            row.Level,
			Municipality:     row.Municipality,
			Faces:            row.Faces,
			Partnership:      row.Partnership,
			FriendCompanyID:  row.FriendCompanyID,
			FriendRentalCost: row.FriendRentalCost,
		}
	}
	return billboards, nil
}

func (r *ContractRepository) PriceRows(ctx context.Context, category string) ([]model.PriceRow, error) {
	var rows []model.PriceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			COALESCE(size_id, 0) AS size_id,
			size_name,
			level,
			category,
			COALESCE(one_month, 0) AS one_month,
			COALESCE(two_months, 0) AS two_months,
			COALESCE(three_months, 0) AS three_months,
			COALESCE(six_months, 0) AS six_months,
			COALESCE(full_year, 0) AS full_year,
			COALESCE(one_day, 0) AS one_day
		FROM price_rows
		WHERE category = ?
	`, category).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ContractRepository) BasePrices(ctx context.Context) ([]model.BasePriceRow, error) {
	var rows []model.BasePriceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, size_name, level, price
		FROM base_price_rows
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ContractRepository) MunicipalityFactors(ctx context.Context) (map[string]float64, error) {
	var rows []model.MunicipalityFactor
	err := r.db.WithContext(ctx).Raw(`
		SELECT municipality, factor FROM municipality_factors
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	factors := make(map[string]float64, len(rows))
	for _, row := range rows {
		factors[row.Municipality] = row.Factor
	}
	return factors, nil
}

func (r *ContractRepository) CategoryFactors(ctx context.Context) (map[string]float64, error) {
	var rows []model.CategoryFactor
	err := r.db.WithContext(ctx).Raw(`
		SELECT category, factor FROM category_factors
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	factors := make(map[string]float64, len(rows))
	for _, row := range rows {
		factors[row.Category] = row.Factor
	}
	return factors, nil
}

func (r *ContractRepository) InstallationCosts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]float64, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]float64{}, nil
	}
	var rows []struct {
		BillboardID uuid.UUID
		Cost        float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT billboard_id, cost
		FROM installation_costs
		WHERE billboard_id = ANY(?)
	`, ids).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	costs := make(map[uuid.UUID]float64, len(rows))
	for _, row := range rows {
		costs[row.BillboardID] = row.Cost
	}
	return costs, nil
}

func (r *ContractRepository) StoredUnitPrices(ctx context.Context, contractID uuid.UUID) (map[uuid.UUID]float64, error) {
	var rows []struct {
		BillboardID uuid.UUID
		BasePrice   float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT billboard_id, base_price
		FROM contract_units
		WHERE contract_id = ?
	`, contractID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	prices := make(map[uuid.UUID]float64, len(rows))
	for _, row := range rows {
		prices[row.BillboardID] = row.BasePrice
	}
	return prices, nil
}

// SaveContract writes the contract snapshot, its per-unit allocations,
// its installments and the contract obligation in one transaction.
func (r *ContractRepository) SaveContract(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var saved struct {
			Number    int64
			CreatedAt time.Time
		}
		err := tx.Raw(`
			INSERT INTO contracts (
				id,
				number,
				customer_id,
				customer_name,
				category,
				pricing_mode,
				duration_unit,
				duration_value,
				start_at,
				end_at,
				base_total,
				discount_amount,
				rental_after_discount,
				installation_cost,
				print_cost,
				net_rental_for_company,
				final_total,
				operating_fee,
				fee_regular,
				fee_partnership,
				fee_friend,
				fee_included_services,
				created_by_user
			) VALUES (?, (SELECT COALESCE(MAX(number), 0) + 1 FROM contracts), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING number, created_at
		`,
			contract.ID,
			contract.CustomerID,
			contract.CustomerName,
			contract.Category,
			contract.PricingMode,
			contract.DurationUnit,
			contract.DurationValue,
			contract.StartAt,
			contract.EndAt,
			contract.Totals.BaseTotal,
			contract.Totals.DiscountAmount,
			contract.Totals.RentalAfterDiscount,
			contract.Totals.InstallationCost,
			contract.Totals.PrintCost,
			contract.Totals.NetRentalForCompany,
			contract.Totals.FinalTotal,
			contract.Totals.OperatingFee,
			contract.Totals.FeeBreakdown.Regular,
			contract.Totals.FeeBreakdown.Partnership,
			contract.Totals.FeeBreakdown.Friend,
			contract.Totals.FeeBreakdown.IncludedServices,
			contract.CreatedByUser,
		).Scan(&saved).Error
		if err != nil {
			return err
		}
		contract.Number = saved.Number
		contract.CreatedAt = saved.CreatedAt

		for _, unit := range contract.Units {
			if err := tx.Exec(`
				INSERT INTO contract_units (
					contract_id,
					billboard_id,
					billboard_name,
					base_price,
					installation_cost,
					print_cost,
					extra_charged,
					discount_share,
					final_price,
					price_missing
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				contract.ID,
				unit.BillboardID,
				unit.BillboardName,
				unit.BasePrice,
				unit.InstallationCost,
				unit.PrintCost,
				unit.ExtraCharged,
				unit.DiscountShare,
				unit.FinalPrice,
				unit.PriceMissing,
			).Error; err != nil {
				return err
			}
		}

		for i, inst := range contract.Installments {
			if err := tx.Exec(`
				INSERT INTO contract_installments (
					contract_id,
					position,
					amount,
					payment_type,
					due_date
				) VALUES (?, ?, ?, ?, ?)
			`, contract.ID, i, inst.Amount, inst.PaymentType, inst.DueDate).Error; err != nil {
				return err
			}
		}

		return tx.Exec(`
			INSERT INTO obligations (id, number, type, customer_id, label, total, paid)
			VALUES (?, ?, 'CONTRACT', ?, ?, ?, 0)
		`, uuid.New(), contract.Number, contract.CustomerID, contract.CustomerName, contract.Totals.FinalTotal).Error
	})
}

func (r *ContractRepository) GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			customer_name,
			category,
			pricing_mode,
			duration_unit,
			duration_value,
			start_at,
			end_at,
			created_by_user,
			created_at
		FROM contracts
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&contract).Error
	if err != nil {
		return nil, err
	}
	if contract.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	var totals struct {
		BaseTotal           float64
		DiscountAmount      float64
		RentalAfterDiscount float64
		InstallationCost    float64
		PrintCost           float64
		NetRentalForCompany float64
		FinalTotal          float64
		OperatingFee        float64
		FeeRegular          float64
		FeePartnership      float64
		FeeFriend           float64
		FeeIncludedServices float64
	}
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			base_total,
			discount_amount,
			rental_after_discount,
			installation_cost,
			print_cost,
			net_rental_for_company,
			final_total,
			operating_fee,
			fee_regular,
			fee_partnership,
			fee_friend,
			fee_included_services
		FROM contracts
		WHERE id = ?
	`, id).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	contract.Totals = model.ContractTotals{
		BaseTotal:           totals.BaseTotal,
		DiscountAmount:      totals.DiscountAmount,
		RentalAfterDiscount: totals.RentalAfterDiscount,
		InstallationCost:    totals.InstallationCost,
		PrintCost:           totals.PrintCost,
		NetRentalForCompany: totals.NetRentalForCompany,
		FinalTotal:          totals.FinalTotal,
		OperatingFee:        totals.OperatingFee,
		FeeBreakdown: model.OperatingFeeBreakdown{
			Regular:          totals.FeeRegular,
			Partnership:      totals.FeePartnership,
			Friend:           totals.FeeFriend,
			IncludedServices: totals.FeeIncludedServices,
		},
	}

	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			billboard_id,
			billboard_name,
			base_price,
			installation_cost,
			print_cost,
			extra_charged,
			discount_share,
			final_price,
			price_missing
		FROM contract_units
		WHERE contract_id = ?
		ORDER BY billboard_name ASC
	`, id).Scan(&contract.Units).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Raw(`
		SELECT amount, payment_type, due_date
		FROM contract_installments
		WHERE contract_id = ?
		ORDER BY position ASC
	`, id).Scan(&contract.Installments).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}
