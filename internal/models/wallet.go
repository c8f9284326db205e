package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet represents a customer's stored-value balance. One wallet per
// customer.
type Wallet struct {
	ID                       uuid.UUID `db:"id" json:"id"`
	CustomerID               uuid.UUID `db:"customer_id" json:"customerId"`
	BalanceCents             int64     `db:"balance_cents" json:"balanceCents"`
	AutoReloadThresholdCents int64     `db:"auto_reload_threshold_cents" json:"autoReloadThresholdCents"`
	AutoReloadAmountCents    int64     `db:"auto_reload_amount_cents" json:"autoReloadAmountCents"`
	CreatedAt                time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt                time.Time `db:"updated_at" json:"updatedAt"`
}

// WalletView is the dashboard wallet payload. A customer without a wallet is
// presented as a zero-value wallet rather than an absence.
type WalletView struct {
	BalanceCents             int64 `json:"balanceCents"`
	AutoReloadThresholdCents int64 `json:"autoReloadThresholdCents"`
	AutoReloadAmountCents    int64 `json:"autoReloadAmountCents"`
}
