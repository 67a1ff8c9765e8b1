package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/pkg/enums"
)

// OrderItem is the snapshot of one cart line at checkout time. Price is the
// per-kg rate that applied when the order was placed.
type OrderItem struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID          `gorm:"column:order_id;type:uuid;not null"`
	ItemType  enums.ItemType     `gorm:"column:item_type;type:text;not null"`
	CutType   string             `gorm:"column:cut_type;not null"`
	Quantity  decimal.Decimal    `gorm:"column:quantity;type:numeric(10,3);not null"`
	Unit      enums.QuantityUnit `gorm:"column:unit;type:text;not null"`
	Price     decimal.Decimal    `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides GORM's pluralization.
func (OrderItem) TableName() string {
	return "order_items"
}
