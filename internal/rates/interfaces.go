package rates

import (
	"context"

	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes rate persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LatestByItemType(ctx context.Context, itemType enums.ItemType) (*models.Rate, error)
	ListHistory(ctx context.Context, itemType enums.ItemType, limit int) ([]models.Rate, error)
	Create(ctx context.Context, rate *models.Rate) (*models.Rate, error)
	UpdatePrice(ctx context.Context, itemType enums.ItemType, price string) error
	SetActive(ctx context.Context, itemType enums.ItemType, active bool) error
}
