package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/pkg/enums"
)

// Item is one cart line. Lines are deduplicated on the combination of item
// type, cut and unit; adding the same combination again bumps the quantity.
type Item struct {
	ItemType enums.ItemType     `json:"item_type"`
	CutType  string             `json:"cut_type"`
	Quantity decimal.Decimal    `json:"quantity"`
	Unit     enums.QuantityUnit `json:"unit"`
	Price    decimal.Decimal    `json:"price"`
}

// Key derives the dedupe key for the line.
func (i Item) Key() string {
	return fmt.Sprintf("%s-%s-%s", i.ItemType, i.CutType, i.Unit)
}

// LineTotal is quantity times the per-unit price.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(i.Quantity)
}

// Cart is the persisted payload, stored as JSON in Redis under the
// caller's cart token.
type Cart struct {
	Items []Item `json:"items"`
}

// Total sums the line totals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// View is the response shape returned by cart operations.
type View struct {
	Items []Item          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ViewOf builds the response shape for a cart.
func ViewOf(c Cart) View {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	return View{Items: items, Total: c.Total()}
}
