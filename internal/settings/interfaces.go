package settings

import (
	"context"

	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes shop settings persistence. The table holds at most one
// row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context) (*models.ShopSetting, error)
	Save(ctx context.Context, setting *models.ShopSetting) (*models.ShopSetting, error)
}
