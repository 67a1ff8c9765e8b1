package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
)

// Service exposes the admin-side order operations.
type Service interface {
	List(ctx context.Context, status *enums.OrderStatus) ([]OrderView, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*OrderView, error)
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo   Repository
	events EventPublisher
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds the orders service.
func NewService(repo Repository, events EventPublisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if events == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, events: events, logg: logg, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, status *enums.OrderStatus) ([]OrderView, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", *status))
	}

	rows, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ViewOf(row))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	view := ViewOf(*order)
	return &view, nil
}

// UpdateStatus moves an order to the requested status. Any known status is
// accepted from any other status; staff correct mistakes by setting the
// status again.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*OrderView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}

	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}

	event := Event{
		Kind:        EventKindStatusChanged,
		OrderID:     order.ID,
		ShortID:     order.ShortID(),
		Status:      order.Status,
		Customer:    order.CustomerName,
		TotalAmount: order.TotalAmount,
		OccurredAt:  s.now().UTC(),
	}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		// The status change is already durable; a dropped event only
		// delays the board until its next refresh.
		s.logg.Warn(s.logg.WithOrderID(ctx, order.ID.String()), "order event publish failed")
	}

	view := ViewOf(*order)
	return &view, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	pending, err := s.repo.CountByStatus(ctx, enums.OrderStatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}

	dayStart := s.now().UTC().Truncate(24 * time.Hour)
	today, err := s.repo.CountSince(ctx, dayStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count today orders")
	}
	revenue, err := s.repo.RevenueSince(ctx, dayStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum today revenue")
	}

	return &Stats{
		TotalOrders:   total,
		PendingOrders: pending,
		TodayOrders:   today,
		TodayRevenue:  revenue,
	}, nil
}
