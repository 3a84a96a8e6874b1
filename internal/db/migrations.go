package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS billboards (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		size_id BIGINT,
		size_name VARCHAR(32) NOT NULL,
		width NUMERIC(8,2),
		height NUMERIC(8,2),
		level VARCHAR(16) NOT NULL,
		municipality VARCHAR(128) NOT NULL DEFAULT '',
		faces INT NOT NULL DEFAULT 1,
		partnership BOOLEAN NOT NULL DEFAULT FALSE,
		friend_company_id UUID,
		friend_rental_cost NUMERIC(18,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS price_rows (
		id BIGSERIAL PRIMARY KEY,
		size_id BIGINT,
		size_name VARCHAR(32) NOT NULL,
		level VARCHAR(16) NOT NULL,
		category VARCHAR(64) NOT NULL,
		one_month NUMERIC(18,2) NOT NULL DEFAULT 0,
		two_months NUMERIC(18,2) NOT NULL DEFAULT 0,
		three_months NUMERIC(18,2) NOT NULL DEFAULT 0,
		six_months NUMERIC(18,2) NOT NULL DEFAULT 0,
		full_year NUMERIC(18,2) NOT NULL DEFAULT 0,
		one_day NUMERIC(18,2) NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_price_rows_lookup ON price_rows (category, level, size_name);`,
	`CREATE TABLE IF NOT EXISTS base_price_rows (
		id BIGSERIAL PRIMARY KEY,
		size_name VARCHAR(32) NOT NULL,
		level VARCHAR(16) NOT NULL,
		price NUMERIC(18,2) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS municipality_factors (
		municipality VARCHAR(128) PRIMARY KEY,
		factor NUMERIC(10,4) NOT NULL DEFAULT 1
	);`,
	`CREATE TABLE IF NOT EXISTS category_factors (
		category VARCHAR(64) PRIMARY KEY,
		factor NUMERIC(10,4) NOT NULL DEFAULT 1
	);`,
	`CREATE TABLE IF NOT EXISTS installation_costs (
		billboard_id UUID PRIMARY KEY REFERENCES billboards(id),
		cost NUMERIC(18,2) NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY,
		number BIGINT NOT NULL,
		customer_id UUID NOT NULL,
		customer_name VARCHAR(255) NOT NULL DEFAULT '',
		category VARCHAR(64) NOT NULL,
		pricing_mode VARCHAR(16) NOT NULL,
		duration_unit VARCHAR(8) NOT NULL,
		duration_value INT NOT NULL,
		start_at DATE NOT NULL,
		end_at DATE NOT NULL,
		base_total NUMERIC(18,2) NOT NULL,
		discount_amount NUMERIC(18,2) NOT NULL,
		rental_after_discount NUMERIC(18,2) NOT NULL,
		installation_cost NUMERIC(18,2) NOT NULL DEFAULT 0,
		print_cost NUMERIC(18,2) NOT NULL DEFAULT 0,
		net_rental_for_company NUMERIC(18,2) NOT NULL,
		final_total NUMERIC(18,2) NOT NULL,
		operating_fee NUMERIC(18,2) NOT NULL DEFAULT 0,
		fee_regular NUMERIC(18,2) NOT NULL DEFAULT 0,
		fee_partnership NUMERIC(18,2) NOT NULL DEFAULT 0,
		fee_friend NUMERIC(18,2) NOT NULL DEFAULT 0,
		fee_included_services NUMERIC(18,2) NOT NULL DEFAULT 0,
		created_by_user UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_number ON contracts (number);`,
	`CREATE TABLE IF NOT EXISTS contract_units (
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		billboard_id UUID NOT NULL REFERENCES billboards(id),
		billboard_name VARCHAR(255) NOT NULL DEFAULT '',
		base_price NUMERIC(18,2) NOT NULL,
		installation_cost NUMERIC(18,2) NOT NULL DEFAULT 0,
		print_cost NUMERIC(18,2) NOT NULL DEFAULT 0,
		extra_charged NUMERIC(18,2) NOT NULL DEFAULT 0,
		discount_share NUMERIC(18,2) NOT NULL DEFAULT 0,
		final_price NUMERIC(18,2) NOT NULL,
		price_missing BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (contract_id, billboard_id)
	);`,
	`CREATE TABLE IF NOT EXISTS contract_installments (
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		position INT NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		payment_type VARCHAR(64) NOT NULL,
		due_date DATE NOT NULL,
		PRIMARY KEY (contract_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS obligations (
		id UUID PRIMARY KEY,
		number BIGINT NOT NULL,
		type VARCHAR(32) NOT NULL,
		customer_id UUID NOT NULL,
		label VARCHAR(255) NOT NULL DEFAULT '',
		total NUMERIC(18,2) NOT NULL,
		paid NUMERIC(18,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_obligations_customer ON obligations (customer_id);`,
	`CREATE INDEX IF NOT EXISTS idx_obligations_open ON obligations ((total - paid)) WHERE total - paid > 0.01;`,
	`CREATE TABLE IF NOT EXISTS payment_receipts (
		id UUID PRIMARY KEY,
		number BIGINT NOT NULL,
		customer_id UUID NOT NULL,
		payer_name VARCHAR(255) NOT NULL DEFAULT '',
		amount NUMERIC(18,2) NOT NULL,
		method VARCHAR(32) NOT NULL DEFAULT 'cash',
		notes TEXT NOT NULL DEFAULT '',
		created_by_user UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_payment_receipts_number ON payment_receipts (number);`,
	`CREATE TABLE IF NOT EXISTS payment_receipt_lines (
		receipt_id UUID NOT NULL REFERENCES payment_receipts(id) ON DELETE CASCADE,
		obligation_id UUID NOT NULL REFERENCES obligations(id),
		type VARCHAR(32) NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		PRIMARY KEY (receipt_id, obligation_id)
	);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
