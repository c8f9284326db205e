package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MenuItem represents a menu entry. The active flag hides an item from the
// storefront without deleting it.
type MenuItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Category    *string   `db:"category" json:"category,omitempty"`
	PriceCents  int64     `db:"price_cents" json:"priceCents"`
	ImageURL    *string   `db:"image_url" json:"imageUrl,omitempty"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	SortOrder   *int      `db:"sort_order" json:"sortOrder,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// MenuItemRequest is used for menu item creation.
type MenuItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	PriceCents  *float64        `json:"priceCents"`
	ImageURL    string          `json:"imageUrl"`
	SortOrder   *float64        `json:"sortOrder"`
	IsActive    json.RawMessage `json:"isActive"`
}

// MenuItemUpdateRequest is used for menu item edits. Only fields present in
// the body are applied; everything else is left untouched.
type MenuItemUpdateRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	ImageURL    *string         `json:"imageUrl"`
	PriceCents  *float64        `json:"priceCents"`
	SortOrder   *float64        `json:"sortOrder"`
	IsActive    json.RawMessage `json:"isActive"`
}
