package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/delicato-app/restaurant-service/internal/models"
)

// WalletRepository handles stored-value wallet data access
type WalletRepository struct {
	db *sqlx.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetByCustomer retrieves a customer's wallet. Returns (nil, nil) when the
// customer has no wallet yet; dashboard views render a zero balance.
func (r *WalletRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Wallet, error) {
	query := `
		SELECT id, customer_id, balance_cents, auto_reload_threshold_cents, auto_reload_amount_cents, created_at, updated_at
		FROM wallets
		WHERE customer_id = $1
	`

	var wallet models.Wallet
	err := r.db.GetContext(ctx, &wallet, query, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return &wallet, nil
}
