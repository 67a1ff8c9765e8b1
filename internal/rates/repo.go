package rates

import (
	"context"

	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a rates repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) LatestByItemType(ctx context.Context, itemType enums.ItemType) (*models.Rate, error) {
	var rate models.Rate
	err := r.db.WithContext(ctx).
		Where("item_type = ?", itemType).
		Order("created_at DESC").
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *repository) ListHistory(ctx context.Context, itemType enums.ItemType, limit int) ([]models.Rate, error) {
	var rows []models.Rate
	q := r.db.WithContext(ctx).
		Where("item_type = ?", itemType).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Create(ctx context.Context, rate *models.Rate) (*models.Rate, error) {
	if err := r.db.WithContext(ctx).Create(rate).Error; err != nil {
		return nil, err
	}
	return rate, nil
}

func (r *repository) UpdatePrice(ctx context.Context, itemType enums.ItemType, price string) error {
	return r.db.WithContext(ctx).
		Model(&models.Rate{}).
		Where("id = (?)", r.db.Model(&models.Rate{}).
			Select("id").
			Where("item_type = ?", itemType).
			Order("created_at DESC").
			Limit(1)).
		Update("price", price).Error
}

func (r *repository) SetActive(ctx context.Context, itemType enums.ItemType, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Rate{}).
		Where("item_type = ?", itemType).
		Update("is_active", active).Error
}
