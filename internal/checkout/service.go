package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/internal/cart"
	"github.com/karikadai/karikadai-backend/internal/orders"
	"github.com/karikadai/karikadai-backend/internal/settings"
	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
	"github.com/karikadai/karikadai-backend/pkg/whatsapp"
)

// Service turns a cart into a placed order plus the WhatsApp handoff.
type Service interface {
	Submit(ctx context.Context, input Input) (*Result, error)
}

type service struct {
	carts    cart.Service
	repo     orders.Repository
	events   orders.EventPublisher
	settings settings.Service
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the checkout service.
func NewService(
	carts cart.Service,
	repo orders.Repository,
	events orders.EventPublisher,
	settingsSvc settings.Service,
	logg *logger.Logger,
) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if events == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	if settingsSvc == nil {
		return nil, fmt.Errorf("settings service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts:    carts,
		repo:     repo,
		events:   events,
		settings: settingsSvc,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Submit places the order. Line prices are the snapshots the cart captured
// when the customer picked each item; they are not re-read from the rates
// table here. The order row and its item rows are two separate writes. The
// cart clear and the board event are best-effort on top.
func (s *service) Submit(ctx context.Context, input Input) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	view, err := s.carts.Get(ctx, input.CartToken)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	total := decimal.Zero
	for _, item := range view.Items {
		total = total.Add(item.LineTotal())
	}

	orderID := uuid.New()
	ctx = s.logg.WithOrderID(ctx, orderID.String())

	order := &models.Order{
		ID:            orderID,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: strings.TrimSpace(input.Phone),
		PickupDate:    strings.TrimSpace(input.PickupDate),
		PickupTime:    strings.TrimSpace(input.PickupTime),
		TotalAmount:   total,
		Status:        enums.OrderStatusPending,
		PaymentMethod: enums.PaymentMethodCash,
		Notes:         input.Notes,
	}
	if _, err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	items := make([]models.OrderItem, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, models.OrderItem{
			ID:       uuid.New(),
			OrderID:  orderID,
			ItemType: item.ItemType,
			CutType:  item.CutType,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Price:    item.Price,
		})
	}
	if err := s.repo.CreateOrderItems(ctx, items); err != nil {
		// The order row already stands and is not rolled back, but the
		// customer must see a retryable failure, not a confirmation.
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
	}

	shop, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]whatsapp.OrderLine, 0, len(view.Items))
	for _, item := range view.Items {
		lines = append(lines, whatsapp.OrderLine{
			ItemType: item.ItemType.String(),
			CutType:  item.CutType,
			Quantity: item.Quantity,
			Unit:     item.Unit.String(),
		})
	}
	message := whatsapp.BuildMessage(whatsapp.OrderSummary{
		OrderID:     orderID.String(),
		ShortID:     order.ShortID(),
		Customer:    order.CustomerName,
		Phone:       order.CustomerPhone,
		Lines:       lines,
		TotalAmount: total,
		PickupDate:  order.PickupDate,
		PickupTime:  order.PickupTime,
		ShopName:    shop.ShopName,
	})

	if err := s.carts.Clear(ctx, input.CartToken); err != nil {
		s.logg.Warn(ctx, "cart clear after checkout failed")
	}

	event := orders.Event{
		Kind:        orders.EventKindCreated,
		OrderID:     orderID,
		ShortID:     order.ShortID(),
		Status:      order.Status,
		Customer:    order.CustomerName,
		TotalAmount: total,
		OccurredAt:  s.now().UTC(),
	}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		s.logg.Warn(ctx, "order created event publish failed")
	}

	return &Result{
		OrderID:         orderID,
		ShortID:         order.ShortID(),
		TotalAmount:     total,
		WhatsAppMessage: message,
		WhatsAppLink:    whatsapp.Link(shop.ShopPhone, message),
	}, nil
}

func validateInput(input Input) error {
	if strings.TrimSpace(input.CartToken) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}

	missing := []string{}
	if strings.TrimSpace(input.CustomerName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(input.PickupDate) == "" {
		missing = append(missing, "pickup_date")
	}
	if strings.TrimSpace(input.PickupTime) == "" {
		missing = append(missing, "pickup_time")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "required fields missing").
			WithDetails(map[string]any{"fields": missing})
	}
	return nil
}
