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

// SettingRepository handles keyed configuration records
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

const settingColumns = "id, key, value, updated_by, created_at, updated_at"

// Get retrieves a setting by key. Returns (nil, nil) when the key has never
// been written.
func (r *SettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	query := `
		SELECT ` + settingColumns + `
		FROM settings
		WHERE key = $1
	`

	var setting models.Setting
	err := r.db.GetContext(ctx, &setting, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	return &setting, nil
}

// Upsert writes a setting value, recording who changed it.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string, updatedBy *uuid.UUID) (*models.Setting, error) {
	query := `
		INSERT INTO settings (key, value, updated_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_by = EXCLUDED.updated_by, updated_at = NOW()
		RETURNING ` + settingColumns + `
	`

	var setting models.Setting
	err := r.db.GetContext(ctx, &setting, query, key, value, updatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}

	return &setting, nil
}
