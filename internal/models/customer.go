package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a loyalty program member.
type Customer struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	FirstName     string     `db:"first_name" json:"firstName"`
	LastName      string     `db:"last_name" json:"lastName"`
	Email         string     `db:"email" json:"email"`
	Phone         *string    `db:"phone" json:"phone,omitempty"`
	LoyaltyTier   string     `db:"loyalty_tier" json:"loyaltyTier"`
	PointsBalance int64      `db:"points_balance" json:"pointsBalance"`
	TierExpiresAt *time.Time `db:"tier_expires_at" json:"tierExpiresAt"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// FullName returns the customer's display name.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
