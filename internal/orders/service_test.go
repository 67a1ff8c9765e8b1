package orders

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
)

type stubOrderRepo struct {
	orders map[uuid.UUID]*models.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrderRepo) CreateOrder(_ context.Context, order *models.Order) (*models.Order, error) {
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrderRepo) CreateOrderItems(_ context.Context, items []models.OrderItem) error {
	for _, item := range items {
		if order, ok := s.orders[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubOrderRepo) List(_ context.Context, status *enums.OrderStatus) ([]models.Order, error) {
	var rows []models.Order
	for _, order := range s.orders {
		if status == nil || order.Status == *status {
			rows = append(rows, *order)
		}
	}
	return rows, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) (int64, error) {
	order, ok := s.orders[id]
	if !ok {
		return 0, nil
	}
	order.Status = status
	return 1, nil
}

func (s *stubOrderRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(s.orders)), nil
}

func (s *stubOrderRepo) CountByStatus(_ context.Context, status enums.OrderStatus) (int64, error) {
	var count int64
	for _, order := range s.orders {
		if order.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *stubOrderRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, order := range s.orders {
		if !order.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *stubOrderRepo) RevenueSince(_ context.Context, since time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, order := range s.orders {
		if !order.CreatedAt.Before(since) && order.Status != enums.OrderStatusCancelled {
			total = total.Add(order.TotalAmount)
		}
	}
	return total, nil
}

type stubPublisher struct {
	events []Event
	err    error
}

func (s *stubPublisher) PublishOrderEvent(_ context.Context, event Event) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func newOrdersTestService(t *testing.T, repo Repository, pub EventPublisher) Service {
	t.Helper()
	svc, err := NewService(repo, pub, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func seedOrder(repo *stubOrderRepo, status enums.OrderStatus) *models.Order {
	order := &models.Order{
		ID:            uuid.New(),
		CustomerName:  "Kumar",
		CustomerPhone: "9876543210",
		PickupDate:    "2025-09-01",
		PickupTime:    "Morning 7AM - 9AM",
		TotalAmount:   decimal.NewFromInt(480),
		Status:        status,
		PaymentMethod: enums.PaymentMethodCash,
		CreatedAt:     time.Now(),
	}
	repo.orders[order.ID] = order
	return order
}

func TestUpdateStatusPublishesEvent(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	pub := &stubPublisher{}
	svc := newOrdersTestService(t, repo, pub)
	order := seedOrder(repo, enums.OrderStatusPending)

	view, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusReady)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if view.Status != enums.OrderStatusReady {
		t.Fatalf("expected status ready, got %s", view.Status)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.events))
	}
	if pub.events[0].Kind != EventKindStatusChanged {
		t.Fatalf("unexpected event kind %s", pub.events[0].Kind)
	}
	if pub.events[0].Status != enums.OrderStatusReady {
		t.Fatalf("unexpected event status %s", pub.events[0].Status)
	}
}

func TestUpdateStatusAllowsAnyKnownTransition(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	pub := &stubPublisher{}
	svc := newOrdersTestService(t, repo, pub)
	order := seedOrder(repo, enums.OrderStatusCompleted)

	// completed back to pending is allowed; there is no transition table
	view, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusPending)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if view.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending, got %s", view.Status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	svc := newOrdersTestService(t, repo, &stubPublisher{})
	order := seedOrder(repo, enums.OrderStatusPending)

	_, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatus("shipped"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	t.Parallel()

	svc := newOrdersTestService(t, newStubOrderRepo(), &stubPublisher{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusReady)
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusSurvivesPublishFailure(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	pub := &stubPublisher{err: context.DeadlineExceeded}
	svc := newOrdersTestService(t, repo, pub)
	order := seedOrder(repo, enums.OrderStatusPending)

	view, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("expected update to succeed despite publish failure, got %v", err)
	}
	if view.Status != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", view.Status)
	}
}

func TestStatsAggregates(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	svc := newOrdersTestService(t, repo, &stubPublisher{})
	seedOrder(repo, enums.OrderStatusPending)
	seedOrder(repo, enums.OrderStatusCancelled)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalOrders != 2 {
		t.Fatalf("expected 2 total, got %d", stats.TotalOrders)
	}
	if stats.PendingOrders != 1 {
		t.Fatalf("expected 1 pending, got %d", stats.PendingOrders)
	}
	if !stats.TodayRevenue.Equal(decimal.NewFromInt(480)) {
		t.Fatalf("expected revenue 480, got %s", stats.TodayRevenue)
	}
}
