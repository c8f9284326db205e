package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod represents a stored card. The provider token never leaves
// the server.
type PaymentMethod struct {
	ID            uuid.UUID `db:"id" json:"id"`
	CustomerID    uuid.UUID `db:"customer_id" json:"customerId"`
	Brand         *string   `db:"brand" json:"brand,omitempty"`
	Last4         *string   `db:"last4" json:"last4,omitempty"`
	ExpiresMonth  *int      `db:"expires_month" json:"expiresMonth,omitempty"`
	ExpiresYear   *int      `db:"expires_year" json:"expiresYear,omitempty"`
	ProviderToken *string   `db:"provider_token" json:"-"`
	IsDefault     bool      `db:"is_default" json:"isDefault"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
