package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
)

// Repository exposes order persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, status *enums.OrderStatus) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
}

// EventPublisher fans out order change events to the admin board stream.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event Event) error
}
