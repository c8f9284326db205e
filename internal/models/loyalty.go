package models

import (
	"time"

	"github.com/google/uuid"
)

// LoyaltyDeal represents a redeemable reward with an active window.
type LoyaltyDeal struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Description    *string   `db:"description" json:"description,omitempty"`
	PointsRequired int64     `db:"points_required" json:"pointsRequired"`
	StartsAt       time.Time `db:"starts_at" json:"startsAt"`
	EndsAt         time.Time `db:"ends_at" json:"endsAt"`
	IsActive       bool      `db:"is_active" json:"isActive"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// DealView is a loyalty deal flagged with a customer's redemption state.
type DealView struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	PointsRequired int64     `json:"pointsRequired"`
	StartsAt       time.Time `json:"startsAt"`
	EndsAt         time.Time `json:"endsAt"`
	IsRedeemed     bool      `json:"isRedeemed"`
}

// CustomerDeal records a redemption. One redemption per (customer, deal)
// pair.
type CustomerDeal struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CustomerID uuid.UUID `db:"customer_id" json:"customerId"`
	DealID     uuid.UUID `db:"deal_id" json:"dealId"`
	RedeemedAt time.Time `db:"redeemed_at" json:"redeemedAt"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// LoyaltyTransaction is one entry in the append-only points ledger.
type LoyaltyTransaction struct {
	ID           uuid.UUID `db:"id" json:"id"`
	CustomerID   uuid.UUID `db:"customer_id" json:"customerId"`
	PointsChange int64     `db:"points_change" json:"pointsChange"`
	Description  *string   `db:"description" json:"description,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
