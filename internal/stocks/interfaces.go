package stocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
)

// Repository exposes stock persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.Stock, error)
	FindByItemType(ctx context.Context, itemType enums.ItemType) (*models.Stock, error)
	SetOpening(ctx context.Context, itemType enums.ItemType, opening decimal.Decimal) (int64, error)
	SetQuantity(ctx context.Context, itemType enums.ItemType, quantity decimal.Decimal) (int64, error)
	Reset(ctx context.Context, itemType enums.ItemType, at time.Time) (int64, error)
}
