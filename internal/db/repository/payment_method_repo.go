package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/delicato-app/restaurant-service/internal/models"
)

// PaymentMethodRepository handles stored card data access
type PaymentMethodRepository struct {
	db *sqlx.DB
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(db *sqlx.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

// ListByCustomer retrieves a customer's stored cards, default card first.
func (r *PaymentMethodRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.PaymentMethod, error) {
	query := `
		SELECT id, customer_id, brand, last4, expires_month, expires_year, provider_token, is_default, created_at, updated_at
		FROM payment_methods
		WHERE customer_id = $1
		ORDER BY is_default DESC, created_at ASC
	`

	var methods []models.PaymentMethod
	err := r.db.SelectContext(ctx, &methods, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	return methods, nil
}
