package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/delicato-app/restaurant-service/internal/models"
)

// MenuRepository handles menu item data access
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

const menuColumns = "id, name, description, category, price_cents, image_url, is_active, sort_order, created_at, updated_at"

// List retrieves menu items sorted for display. Unless includeAll is set,
// inactive items are hidden.
func (r *MenuRepository) List(ctx context.Context, includeAll bool) ([]models.MenuItem, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menu_items
	`
	if !includeAll {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY sort_order ASC NULLS FIRST, name ASC"

	var items []models.MenuItem
	err := r.db.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	return items, nil
}

// ListActive retrieves up to limit active items for the storefront preview.
func (r *MenuRepository) ListActive(ctx context.Context, limit int) ([]models.MenuItem, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menu_items
		WHERE is_active = TRUE
		ORDER BY sort_order ASC NULLS FIRST, name ASC
		LIMIT $1
	`

	var items []models.MenuItem
	err := r.db.SelectContext(ctx, &items, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list active menu items: %w", err)
	}

	return items, nil
}

// Create creates a new menu item
func (r *MenuRepository) Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	query := `
		INSERT INTO menu_items (name, description, category, price_cents, image_url, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + menuColumns + `
	`

	var created models.MenuItem
	err := r.db.GetContext(
		ctx,
		&created,
		query,
		item.Name,
		item.Description,
		item.Category,
		item.PriceCents,
		item.ImageURL,
		item.IsActive,
		item.SortOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return &created, nil
}

// MenuItemUpdate carries the whitelisted fields of a menu item edit. Nil
// fields are left untouched.
type MenuItemUpdate struct {
	Name        *string
	Description *string
	Category    *string
	ImageURL    *string
	PriceCents  *int64
	SortOrder   *int
	IsActive    *bool
}

// Empty reports whether the update would change nothing.
func (u MenuItemUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil &&
		u.ImageURL == nil && u.PriceCents == nil && u.SortOrder == nil && u.IsActive == nil
}

// Update applies a whitelisted edit and returns the updated item.
func (r *MenuRepository) Update(ctx context.Context, id uuid.UUID, update MenuItemUpdate) (*models.MenuItem, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if update.Name != nil {
		sets = append(sets, "name = "+arg(*update.Name))
	}
	if update.Description != nil {
		sets = append(sets, "description = "+arg(*update.Description))
	}
	if update.Category != nil {
		sets = append(sets, "category = "+arg(*update.Category))
	}
	if update.ImageURL != nil {
		sets = append(sets, "image_url = "+arg(*update.ImageURL))
	}
	if update.PriceCents != nil {
		sets = append(sets, "price_cents = "+arg(*update.PriceCents))
	}
	if update.SortOrder != nil {
		sets = append(sets, "sort_order = "+arg(*update.SortOrder))
	}
	if update.IsActive != nil {
		sets = append(sets, "is_active = "+arg(*update.IsActive))
	}

	query := fmt.Sprintf(`
		UPDATE menu_items
		SET %s
		WHERE id = %s
		RETURNING `+menuColumns,
		strings.Join(sets, ", "), arg(id))

	var updated models.MenuItem
	err := r.db.GetContext(ctx, &updated, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", translate(err))
	}

	return &updated, nil
}

// Delete deletes a menu item
func (r *MenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM menu_items
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
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
