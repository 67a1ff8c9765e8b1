package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/pkg/enums"
)

// Rate is one published price-per-kg entry for an item type. Several rows
// may exist per type; the newest active row wins and older rows stay as
// history.
type Rate struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemType  enums.ItemType  `gorm:"column:item_type;type:text;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (Rate) TableName() string {
	return "rates"
}
