package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/pkg/enums"
)

// Stock tracks remaining quantity for one item type on a given day. The cron
// worker resets it to the configured opening quantity each morning.
type Stock struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemType    enums.ItemType  `gorm:"column:item_type;type:text;not null;uniqueIndex"`
	QuantityKg  decimal.Decimal `gorm:"column:quantity_kg;type:numeric(10,3);not null"`
	OpeningKg   decimal.Decimal `gorm:"column:opening_kg;type:numeric(10,3);not null"`
	LastResetAt *time.Time      `gorm:"column:last_reset_at"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (Stock) TableName() string {
	return "stocks"
}
