package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
)

// ItemView is one order line in API responses.
type ItemView struct {
	ItemType enums.ItemType     `json:"item_type"`
	CutType  string             `json:"cut_type"`
	Quantity decimal.Decimal    `json:"quantity"`
	Unit     enums.QuantityUnit `json:"unit"`
	Price    decimal.Decimal    `json:"price"`
}

// OrderView is the admin-facing shape of an order.
type OrderView struct {
	ID            uuid.UUID           `json:"id"`
	ShortID       string              `json:"short_id"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	PickupDate    string              `json:"pickup_date"`
	PickupTime    string              `json:"pickup_time"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	Notes         *string             `json:"notes,omitempty"`
	Items         []ItemView          `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Stats is the summary the admin dashboard shows.
type Stats struct {
	TotalOrders   int64           `json:"total_orders"`
	PendingOrders int64           `json:"pending_orders"`
	TodayOrders   int64           `json:"today_orders"`
	TodayRevenue  decimal.Decimal `json:"today_revenue"`
}

// Event is one order change notification published on the Redis channel and
// fanned out to admin board subscribers.
type Event struct {
	Kind        string            `json:"kind"`
	OrderID     uuid.UUID         `json:"order_id"`
	ShortID     string            `json:"short_id"`
	Status      enums.OrderStatus `json:"status"`
	Customer    string            `json:"customer"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// Event kinds carried on the order change channel.
const (
	EventKindCreated       = "order_created"
	EventKindStatusChanged = "order_status_changed"
)

// ViewOf converts a model into the API shape.
func ViewOf(order models.Order) OrderView {
	items := make([]ItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemView{
			ItemType: item.ItemType,
			CutType:  item.CutType,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Price:    item.Price,
		})
	}
	return OrderView{
		ID:            order.ID,
		ShortID:       order.ShortID(),
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		PickupDate:    order.PickupDate,
		PickupTime:    order.PickupTime,
		TotalAmount:   order.TotalAmount,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Notes:         order.Notes,
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
