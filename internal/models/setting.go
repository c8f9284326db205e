package models

import (
	"time"

	"github.com/google/uuid"
)

// SettingLoyaltyPointsPerDollar is the key holding the configurable
// points-per-dollar rate.
const SettingLoyaltyPointsPerDollar = "loyalty.pointsPerDollar"

// Setting is a keyed configuration record. Values are stored as text and
// parsed by the reader.
type Setting struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Key       string     `db:"key" json:"key"`
	Value     string     `db:"value" json:"value"`
	UpdatedBy *uuid.UUID `db:"updated_by" json:"updatedBy,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}
