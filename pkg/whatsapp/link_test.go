package whatsapp

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	msg := BuildMessage(OrderSummary{
		ShortID:  "a1b2",
		Customer: "Kumar",
		Phone:    "9876543210",
		Lines: []OrderLine{
			{ItemType: "broiler", CutType: "curry", Quantity: decimal.NewFromInt(2), Unit: "kg"},
			{ItemType: "country", CutType: "full", Quantity: decimal.NewFromInt(1), Unit: "kg"},
		},
		TotalAmount: decimal.NewFromInt(480),
		PickupDate:  "2025-09-01",
		PickupTime:  "Morning 7AM - 9AM",
		ShopName:    "Namma Kari Kadai",
	})

	for _, sub := range []string{
		"🍗 *New Order: #a1b2*",
		"Customer: Kumar (9876543210)",
		"broiler (2kg, curry), country (1kg, full)",
		"Total: ₹480",
		"Pickup: 2025-09-01 @ Morning 7AM - 9AM",
		"Namma Kari Kadai",
	} {
		if !strings.Contains(msg, sub) {
			t.Errorf("message missing %q:\n%s", sub, msg)
		}
	}
}

func TestLinkEscapesMessage(t *testing.T) {
	t.Parallel()

	link := Link("919789723104", "hello world & more")
	if !strings.HasPrefix(link, "https://wa.me/919789723104?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.ContainsAny(strings.TrimPrefix(link, "https://wa.me/919789723104?text="), " &") {
		t.Fatalf("message not escaped: %s", link)
	}
}
