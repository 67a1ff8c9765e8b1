package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Input is what the customer submits from the checkout screen.
type Input struct {
	CartToken    string
	CustomerName string
	Phone        string
	PickupDate   string
	PickupTime   string
	Notes        *string
}

// Result is what the success screen needs: the order reference plus the
// prebuilt WhatsApp handoff.
type Result struct {
	OrderID         uuid.UUID       `json:"order_id"`
	ShortID         string          `json:"short_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	WhatsAppMessage string          `json:"whatsapp_message"`
	WhatsAppLink    string          `json:"whatsapp_link"`
}
