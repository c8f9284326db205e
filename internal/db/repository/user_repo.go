package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/delicato-app/restaurant-service/internal/models"
)

// UserRepository handles account data access
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, password_hash, name, role, customer_id, created_at, updated_at"

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", translate(err))
	}

	return &user, nil
}

// GetByEmail retrieves a user by email. Lookups are case-insensitive; emails
// are stored lowercased.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", translate(err))
	}

	return &user, nil
}

// List retrieves all users ordered by role then creation time
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY role ASC, created_at ASC
	`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, name, role, customer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns + `
	`

	var created models.User
	err := r.db.GetContext(
		ctx,
		&created,
		query,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.PasswordHash,
		user.Name,
		user.Role,
		user.CustomerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", translate(err))
	}

	return &created, nil
}

// Update applies name and role changes to a user
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, name *string, role *models.UserRole) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name), role = COALESCE($2, role), updated_at = NOW()
		WHERE id = $3
		RETURNING ` + userColumns + `
	`

	var updated models.User
	err := r.db.GetContext(ctx, &updated, query, name, role, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", translate(err))
	}

	return &updated, nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM users
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
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

// CountManagersExcluding counts manager accounts other than the given one.
// Used by the last-manager guardrails.
func (r *UserRepository) CountManagersExcluding(ctx context.Context, exclude uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM users
		WHERE role = $1 AND id <> $2
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, models.RoleManager, exclude)
	if err != nil {
		return 0, fmt.Errorf("failed to count managers: %w", err)
	}

	return count, nil
}
