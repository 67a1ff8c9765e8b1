package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	ordersvc "github.com/karikadai/karikadai-backend/internal/orders"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
)

type stubOrdersService struct {
	views   []ordersvc.OrderView
	view    *ordersvc.OrderView
	stats   *ordersvc.Stats
	err     error
	filter  *enums.OrderStatus
	updated *enums.OrderStatus
}

func (s *stubOrdersService) List(_ context.Context, status *enums.OrderStatus) ([]ordersvc.OrderView, error) {
	s.filter = status
	return s.views, s.err
}

func (s *stubOrdersService) Get(_ context.Context, _ uuid.UUID) (*ordersvc.OrderView, error) {
	return s.view, s.err
}

func (s *stubOrdersService) UpdateStatus(_ context.Context, _ uuid.UUID, status enums.OrderStatus) (*ordersvc.OrderView, error) {
	s.updated = &status
	return s.view, s.err
}

func (s *stubOrdersService) Stats(_ context.Context) (*ordersvc.Stats, error) {
	return s.stats, s.err
}

func requestWithID(method, url, id string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
	}
	rc := chi.NewRouteContext()
	rc.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func sampleOrderView(status enums.OrderStatus) ordersvc.OrderView {
	id := uuid.New()
	return ordersvc.OrderView{
		ID:            id,
		ShortID:       id.String()[:4],
		CustomerName:  "Kumar",
		CustomerPhone: "9876543210",
		TotalAmount:   decimal.NewFromInt(480),
		Status:        status,
		PaymentMethod: enums.PaymentMethodCash,
		Items:         []ordersvc.ItemView{},
	}
}

func TestAdminOrdersListPassesStatusFilter(t *testing.T) {
	svc := &stubOrdersService{views: []ordersvc.OrderView{sampleOrderView(enums.OrderStatusPending)}}
	handler := AdminOrdersList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?status=pending", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.filter == nil || *svc.filter != enums.OrderStatusPending {
		t.Fatalf("expected pending filter, got %v", svc.filter)
	}
}

func TestAdminOrdersListRejectsUnknownStatus(t *testing.T) {
	svc := &stubOrdersService{}
	handler := AdminOrdersList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?status=shipped", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminOrderStatusUpdate(t *testing.T) {
	view := sampleOrderView(enums.OrderStatusConfirmed)
	svc := &stubOrdersService{view: &view}
	handler := AdminOrderStatusUpdate(svc, nil)

	req := requestWithID(http.MethodPatch, "/api/admin/v1/orders/"+view.ID.String()+"/status", view.ID.String(), `{"status":"confirmed"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.updated == nil || *svc.updated != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed update, got %v", svc.updated)
	}
}

func TestAdminOrderStatusUpdateInvalidID(t *testing.T) {
	svc := &stubOrdersService{}
	handler := AdminOrderStatusUpdate(svc, nil)

	req := requestWithID(http.MethodPatch, "/api/admin/v1/orders/nope/status", "nope", `{"status":"confirmed"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.updated != nil {
		t.Fatal("expected no update call")
	}
}

func TestAdminOrderStatusUpdateNotFound(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}
	handler := AdminOrderStatusUpdate(svc, nil)

	id := uuid.NewString()
	req := requestWithID(http.MethodPatch, "/api/admin/v1/orders/"+id+"/status", id, `{"status":"ready"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminStats(t *testing.T) {
	svc := &stubOrdersService{stats: &ordersvc.Stats{
		TotalOrders:   10,
		PendingOrders: 3,
		TodayOrders:   2,
		TodayRevenue:  decimal.NewFromInt(960),
	}}
	handler := AdminStats(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/stats", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data ordersvc.Stats `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.PendingOrders != 3 {
		t.Fatalf("unexpected pending count %d", envelope.Data.PendingOrders)
	}
}

type stubEventStream struct {
	messages chan *redis.Message
	closed   bool
}

func (s *stubEventStream) SubscribeOrders(_ context.Context) (<-chan *redis.Message, func() error, error) {
	return s.messages, func() error {
		s.closed = true
		return nil
	}, nil
}

func TestAdminOrdersStreamForwardsEvents(t *testing.T) {
	stream := &stubEventStream{messages: make(chan *redis.Message, 1)}
	payload, err := json.Marshal(ordersvc.Event{
		Kind:        ordersvc.EventKindCreated,
		OrderID:     uuid.New(),
		Status:      enums.OrderStatusPending,
		Customer:    "Kumar",
		TotalAmount: decimal.NewFromInt(480),
		OccurredAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	stream.messages <- &redis.Message{Payload: string(payload)}
	close(stream.messages)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/stream", nil)
	resp := httptest.NewRecorder()
	AdminOrdersStream(stream, nil).ServeHTTP(resp, req)

	if ct := resp.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %s", ct)
	}
	if !strings.Contains(resp.Body.String(), "event: order_created") {
		t.Fatalf("expected event frame, got %s", resp.Body.String())
	}
	if !stream.closed {
		t.Fatal("expected subscription to be closed")
	}
}
