package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/delicato-app/restaurant-service/internal/models"
)

// LoyaltyRepository handles deals, redemptions, and the points ledger.
type LoyaltyRepository struct {
	db *sqlx.DB
}

// NewLoyaltyRepository creates a new loyalty repository
func NewLoyaltyRepository(db *sqlx.DB) *LoyaltyRepository {
	return &LoyaltyRepository{db: db}
}

// ListActiveDeals retrieves deals whose active window covers now, cheapest
// first.
func (r *LoyaltyRepository) ListActiveDeals(ctx context.Context, now time.Time) ([]models.LoyaltyDeal, error) {
	query := `
		SELECT id, title, description, points_required, starts_at, ends_at, is_active, created_at, updated_at
		FROM loyalty_deals
		WHERE is_active = TRUE AND starts_at <= $1 AND ends_at >= $1
		ORDER BY points_required ASC
	`

	var deals []models.LoyaltyDeal
	err := r.db.SelectContext(ctx, &deals, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list active deals: %w", err)
	}

	return deals, nil
}

// ListRedeemedDealIDs retrieves the deal ids a customer has redeemed.
func (r *LoyaltyRepository) ListRedeemedDealIDs(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT deal_id
		FROM customer_deals
		WHERE customer_id = $1
	`

	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}

	return ids, nil
}

// AppendTransaction records a ledger entry. The ledger is append-only;
// there is no update or delete path.
func (r *LoyaltyRepository) AppendTransaction(ctx context.Context, customerID uuid.UUID, pointsChange int64, description string) (*models.LoyaltyTransaction, error) {
	query := `
		INSERT INTO loyalty_transactions (customer_id, points_change, description)
		VALUES ($1, $2, $3)
		RETURNING id, customer_id, points_change, description, created_at
	`

	var entry models.LoyaltyTransaction
	err := r.db.GetContext(ctx, &entry, query, customerID, pointsChange, description)
	if err != nil {
		return nil, fmt.Errorf("failed to append loyalty transaction: %w", err)
	}

	return &entry, nil
}

// ListTransactions retrieves a customer's most recent ledger entries.
func (r *LoyaltyRepository) ListTransactions(ctx context.Context, customerID uuid.UUID, limit int) ([]models.LoyaltyTransaction, error) {
	query := `
		SELECT id, customer_id, points_change, description, created_at
		FROM loyalty_transactions
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var entries []models.LoyaltyTransaction
	err := r.db.SelectContext(ctx, &entries, query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list loyalty transactions: %w", err)
	}

	return entries, nil
}
