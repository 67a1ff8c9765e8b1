package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/pkg/enums"
)

// Order is a customer pickup order. The ID is generated before insert so
// the WhatsApp handoff message can reference it even if the item rows
// never land.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerPhone string              `gorm:"column:customer_phone;not null"`
	PickupDate    string              `gorm:"column:pickup_date;not null"`
	PickupTime    string              `gorm:"column:pickup_time;not null"`
	TotalAmount   decimal.Decimal     `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Status        enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'cash'"`
	Notes         *string             `gorm:"column:notes"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (Order) TableName() string {
	return "orders"
}

// ShortID returns the first four characters of the order ID, the reference
// customers and staff quote over WhatsApp.
func (o Order) ShortID() string {
	s := o.ID.String()
	if len(s) < 4 {
		return s
	}
	return s[:4]
}
