package settings

import (
	"context"

	"gorm.io/gorm"

	"github.com/karikadai/karikadai-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Get(ctx context.Context) (*models.ShopSetting, error) {
	var setting models.ShopSetting
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *repository) Save(ctx context.Context, setting *models.ShopSetting) (*models.ShopSetting, error) {
	if err := r.db.WithContext(ctx).Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
