package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ShopSetting is the single-row table holding storefront presentation
// details staff can edit without a deploy.
type ShopSetting struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopName        string         `gorm:"column:shop_name;not null"`
	ShopPhone       string         `gorm:"column:shop_phone;not null"`
	PickupTimeSlots pq.StringArray `gorm:"column:pickup_time_slots;type:text[];not null"`
	IsOpen          bool           `gorm:"column:is_open;not null;default:true"`
	BannerText      *string        `gorm:"column:banner_text"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (ShopSetting) TableName() string {
	return "shop_settings"
}
