package rates

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/pkg/enums"
)

// RateView is the public shape of one catalog rate. Fallback rates carry a
// zero UpdatedAt because no row backs them.
type RateView struct {
	ItemType   enums.ItemType  `json:"item_type"`
	Price      decimal.Decimal `json:"price"`
	IsActive   bool            `json:"is_active"`
	IsFallback bool            `json:"is_fallback"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}
