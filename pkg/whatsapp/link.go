package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderLine is one item rendered into the handoff message.
type OrderLine struct {
	ItemType string
	CutType  string
	Quantity decimal.Decimal
	Unit     string
}

// OrderSummary carries everything the shop owner needs to see on WhatsApp
// when a new order arrives.
type OrderSummary struct {
	OrderID     string
	ShortID     string
	Customer    string
	Phone       string
	Lines       []OrderLine
	TotalAmount decimal.Decimal
	PickupDate  string
	PickupTime  string
	ShopName    string
}

// BuildMessage renders the order notification text. The layout is what the
// shop owner reads on a phone screen, so it stays short and emoji-prefixed.
func BuildMessage(s OrderSummary) string {
	details := make([]string, 0, len(s.Lines))
	for _, line := range s.Lines {
		details = append(details, fmt.Sprintf("%s (%s%s, %s)", line.ItemType, line.Quantity.String(), line.Unit, line.CutType))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍗 *New Order: #%s*\n\n", s.ShortID)
	fmt.Fprintf(&b, "Customer: %s (%s)\n", s.Customer, s.Phone)
	fmt.Fprintf(&b, "Items: %s\n", strings.Join(details, ", "))
	fmt.Fprintf(&b, "Total: ₹%s\n", s.TotalAmount.String())
	fmt.Fprintf(&b, "Pickup: %s @ %s\n\n", s.PickupDate, s.PickupTime)
	b.WriteString(s.ShopName)
	return b.String()
}

// Link returns the wa.me deep link that opens a chat with the shop phone
// and the message prefilled.
func Link(shopPhone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", shopPhone, url.QueryEscape(message))
}
