package checkout

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karikadai/karikadai-backend/internal/cart"
	"github.com/karikadai/karikadai-backend/internal/orders"
	"github.com/karikadai/karikadai-backend/internal/settings"
	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
)

type stubCartService struct {
	items   []cart.Item
	cleared []string
	getErr  error
}

func (s *stubCartService) Get(_ context.Context, token string) (*cart.View, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	view := cart.ViewOf(cart.Cart{Items: s.items})
	return &view, nil
}

func (s *stubCartService) Add(_ context.Context, _ string, _ cart.Item) (*cart.View, error) {
	return nil, errors.New("not used")
}

func (s *stubCartService) Remove(_ context.Context, _ string, _ string) (*cart.View, error) {
	return nil, errors.New("not used")
}

func (s *stubCartService) Clear(_ context.Context, token string) error {
	s.cleared = append(s.cleared, token)
	return nil
}

type stubCheckoutRepo struct {
	orders       []*models.Order
	items        []models.OrderItem
	orderErr     error
	itemsErr     error
	itemAttempts int
}

func (s *stubCheckoutRepo) WithTx(tx *gorm.DB) orders.Repository { return s }

func (s *stubCheckoutRepo) CreateOrder(_ context.Context, order *models.Order) (*models.Order, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	s.orders = append(s.orders, order)
	return order, nil
}

func (s *stubCheckoutRepo) CreateOrderItems(_ context.Context, items []models.OrderItem) error {
	s.itemAttempts++
	if s.itemsErr != nil {
		return s.itemsErr
	}
	s.items = append(s.items, items...)
	return nil
}

func (s *stubCheckoutRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCheckoutRepo) List(_ context.Context, _ *enums.OrderStatus) ([]models.Order, error) {
	return nil, nil
}

func (s *stubCheckoutRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ enums.OrderStatus) (int64, error) {
	return 0, nil
}

func (s *stubCheckoutRepo) CountAll(_ context.Context) (int64, error) { return 0, nil }

func (s *stubCheckoutRepo) CountByStatus(_ context.Context, _ enums.OrderStatus) (int64, error) {
	return 0, nil
}

func (s *stubCheckoutRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (s *stubCheckoutRepo) RevenueSince(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubEventPublisher struct {
	events []orders.Event
	err    error
}

func (s *stubEventPublisher) PublishOrderEvent(_ context.Context, event orders.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

type stubSettingsService struct{}

func (s *stubSettingsService) Get(_ context.Context) (*settings.View, error) {
	return &settings.View{
		ShopName:        "Namma Kari Kadai",
		ShopPhone:       "919789723104",
		PickupTimeSlots: settings.DefaultPickupTimeSlots,
		IsOpen:          true,
	}, nil
}

func (s *stubSettingsService) Update(_ context.Context, _ settings.UpdateInput) (*settings.View, error) {
	return nil, errors.New("not used")
}

type checkoutFixture struct {
	carts  *stubCartService
	repo   *stubCheckoutRepo
	events *stubEventPublisher
	svc    Service
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		carts:  &stubCartService{},
		repo:   &stubCheckoutRepo{},
		events: &stubEventPublisher{},
	}

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(f.carts, f.repo, f.events, &stubSettingsService{}, logg)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	f.svc = svc
	return f
}

func validInput() Input {
	return Input{
		CartToken:    "tok",
		CustomerName: "Kumar",
		Phone:        "9876543210",
		PickupDate:   "2025-09-01",
		PickupTime:   "Morning 7AM - 9AM",
	}
}

func TestSubmitPlacesOrder(t *testing.T) {
	t.Parallel()

	f := newCheckoutFixture(t)
	f.carts.items = []cart.Item{{
		ItemType: enums.ItemTypeBroiler,
		CutType:  "curry",
		Quantity: decimal.NewFromInt(2),
		Unit:     enums.QuantityUnitKg,
		Price:    decimal.NewFromInt(240),
	}}

	result, err := f.svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if !result.TotalAmount.Equal(decimal.NewFromInt(480)) {
		t.Fatalf("expected total 480, got %s", result.TotalAmount)
	}
	if !strings.Contains(result.WhatsAppMessage, "Total: ₹480") {
		t.Fatalf("message missing total:\n%s", result.WhatsAppMessage)
	}
	if !strings.Contains(result.WhatsAppMessage, "Customer: Kumar (9876543210)") {
		t.Fatalf("message missing customer line:\n%s", result.WhatsAppMessage)
	}
	if !strings.HasPrefix(result.WhatsAppLink, "https://wa.me/919789723104?text=") {
		t.Fatalf("unexpected link %s", result.WhatsAppLink)
	}

	if len(f.repo.orders) != 1 {
		t.Fatalf("expected one order row, got %d", len(f.repo.orders))
	}
	order := f.repo.orders[0]
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if order.PaymentMethod != enums.PaymentMethodCash {
		t.Fatalf("expected cash, got %s", order.PaymentMethod)
	}
	if order.ID != result.OrderID {
		t.Fatal("result order id should match the persisted row")
	}

	if len(f.repo.items) != 1 {
		t.Fatalf("expected one item row, got %d", len(f.repo.items))
	}
	if !f.repo.items[0].Price.Equal(decimal.NewFromInt(240)) {
		t.Fatalf("expected item priced at 240, got %s", f.repo.items[0].Price)
	}

	if len(f.carts.cleared) != 1 || f.carts.cleared[0] != "tok" {
		t.Fatalf("expected cart cleared, got %v", f.carts.cleared)
	}
	if len(f.events.events) != 1 || f.events.events[0].Kind != orders.EventKindCreated {
		t.Fatalf("expected one created event, got %v", f.events.events)
	}
}

func TestSubmitKeepsCartPriceSnapshots(t *testing.T) {
	t.Parallel()

	// The price stored on the cart line when the customer picked it is what
	// the order records, even after staff changed the live rate.
	f := newCheckoutFixture(t)
	f.carts.items = []cart.Item{{
		ItemType: enums.ItemTypeBroiler,
		CutType:  "curry",
		Quantity: decimal.NewFromInt(2),
		Unit:     enums.QuantityUnitKg,
		Price:    decimal.NewFromInt(200),
	}}

	result, err := f.svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if !result.TotalAmount.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected snapshot total 400, got %s", result.TotalAmount)
	}
	if !strings.Contains(result.WhatsAppMessage, "Total: ₹400") {
		t.Fatalf("message should carry the snapshot total:\n%s", result.WhatsAppMessage)
	}
	if len(f.repo.items) != 1 || !f.repo.items[0].Price.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected the cart price on the item row, got %v", f.repo.items)
	}
}

func TestSubmitMissingFieldsWritesNothing(t *testing.T) {
	t.Parallel()

	f := newCheckoutFixture(t)
	f.carts.items = []cart.Item{{
		ItemType: enums.ItemTypeBroiler,
		CutType:  "curry",
		Quantity: decimal.NewFromInt(1),
		Unit:     enums.QuantityUnitKg,
	}}

	input := validInput()
	input.CustomerName = " "

	_, err := f.svc.Submit(context.Background(), input)
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.repo.orders) != 0 || f.repo.itemAttempts != 0 {
		t.Fatal("expected no writes on validation failure")
	}
	if len(f.carts.cleared) != 0 {
		t.Fatal("cart must not be cleared on validation failure")
	}
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	t.Parallel()

	f := newCheckoutFixture(t)

	_, err := f.svc.Submit(context.Background(), validInput())
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty cart, got %v", err)
	}
	if len(f.repo.orders) != 0 {
		t.Fatal("expected no order row for empty cart")
	}
}

func TestSubmitFailsWhenItemsWriteFails(t *testing.T) {
	t.Parallel()

	f := newCheckoutFixture(t)
	f.repo.itemsErr = errors.New("connection reset")
	f.carts.items = []cart.Item{{
		ItemType: enums.ItemTypeCountry,
		CutType:  "full",
		Quantity: decimal.NewFromInt(1),
		Unit:     enums.QuantityUnitKg,
		Price:    decimal.NewFromInt(650),
	}}

	_, err := f.svc.Submit(context.Background(), validInput())
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	// The order row is not rolled back, but the customer sees a failure:
	// the cart survives and no board event fires.
	if len(f.repo.orders) != 1 || f.repo.itemAttempts != 1 {
		t.Fatalf("expected the order row and one item attempt, got %d/%d", len(f.repo.orders), f.repo.itemAttempts)
	}
	if len(f.carts.cleared) != 0 {
		t.Fatal("cart must not be cleared on a failed checkout")
	}
	if len(f.events.events) != 0 {
		t.Fatal("no event should publish for a failed checkout")
	}
}

func TestSubmitSurvivesEventPublishFailure(t *testing.T) {
	t.Parallel()

	f := newCheckoutFixture(t)
	f.events.err = errors.New("redis down")
	f.carts.items = []cart.Item{{
		ItemType: enums.ItemTypeBroiler,
		CutType:  "biryani",
		Quantity: decimal.NewFromInt(1),
		Unit:     enums.QuantityUnitKg,
	}}

	if _, err := f.svc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("expected checkout to survive publish failure, got %v", err)
	}
}
