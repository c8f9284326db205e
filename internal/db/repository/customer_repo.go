package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/delicato-app/restaurant-service/internal/models"
)

// CustomerRepository handles loyalty member data access
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = "id, first_name, last_name, email, phone, loyalty_tier, points_balance, tier_expires_at, created_at, updated_at"

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1
	`

	var customer models.Customer
	err := r.db.GetContext(ctx, &customer, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", translate(err))
	}

	return &customer, nil
}

// GetByEmail retrieves a customer by email
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE email = $1
	`

	var customer models.Customer
	err := r.db.GetContext(ctx, &customer, query, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by email: %w", translate(err))
	}

	return &customer, nil
}

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer models.Customer) (*models.Customer, error) {
	query := `
		INSERT INTO customers (first_name, last_name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + customerColumns + `
	`

	var created models.Customer
	err := r.db.GetContext(
		ctx,
		&created,
		query,
		customer.FirstName,
		customer.LastName,
		strings.ToLower(strings.TrimSpace(customer.Email)),
		customer.Phone,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", translate(err))
	}

	return &created, nil
}

// Delete deletes a customer. Used as the compensating action when sign-up
// fails after the customer record was created.
func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM customers
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// IncrementPoints applies an atomic delta to the customer's point balance
// and returns the updated record. The increment is a single-row update, so
// concurrent awards cannot lose points.
func (r *CustomerRepository) IncrementPoints(ctx context.Context, id uuid.UUID, delta int64) (*models.Customer, error) {
	query := `
		UPDATE customers
		SET points_balance = points_balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + customerColumns + `
	`

	var updated models.Customer
	err := r.db.GetContext(ctx, &updated, query, delta, id)
	if err != nil {
		return nil, fmt.Errorf("failed to increment points: %w", translate(err))
	}

	return &updated, nil
}
