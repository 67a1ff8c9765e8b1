package stocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a stocks repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context) ([]models.Stock, error) {
	var rows []models.Stock
	err := r.db.WithContext(ctx).
		Order("item_type ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByItemType(ctx context.Context, itemType enums.ItemType) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).
		Where("item_type = ?", itemType).
		First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *repository) SetOpening(ctx context.Context, itemType enums.ItemType, opening decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Stock{}).
		Where("item_type = ?", itemType).
		Update("opening_kg", opening)
	return result.RowsAffected, result.Error
}

func (r *repository) SetQuantity(ctx context.Context, itemType enums.ItemType, quantity decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Stock{}).
		Where("item_type = ?", itemType).
		Update("quantity_kg", quantity)
	return result.RowsAffected, result.Error
}

func (r *repository) Reset(ctx context.Context, itemType enums.ItemType, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Stock{}).
		Where("item_type = ?", itemType).
		Updates(map[string]any{
			"quantity_kg":   gorm.Expr("opening_kg"),
			"last_reset_at": at,
		})
	return result.RowsAffected, result.Error
}
