package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartsvc "github.com/karikadai/karikadai-backend/internal/cart"
	checkoutsvc "github.com/karikadai/karikadai-backend/internal/checkout"
	ordersvc "github.com/karikadai/karikadai-backend/internal/orders"
	ratesvc "github.com/karikadai/karikadai-backend/internal/rates"
	settingsvc "github.com/karikadai/karikadai-backend/internal/settings"
	stocksvc "github.com/karikadai/karikadai-backend/internal/stocks"
	pkgauth "github.com/karikadai/karikadai-backend/pkg/auth"
	"github.com/karikadai/karikadai-backend/pkg/config"
	"github.com/karikadai/karikadai-backend/pkg/enums"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubRates struct{}

func (stubRates) CurrentRates(context.Context) ([]ratesvc.RateView, error) {
	return []ratesvc.RateView{{ItemType: enums.ItemTypeBroiler, Price: decimal.NewFromInt(240), IsActive: true}}, nil
}

func (stubRates) PriceFor(context.Context, enums.ItemType) (decimal.Decimal, error) {
	return decimal.NewFromInt(240), nil
}

func (stubRates) UpdatePrice(_ context.Context, itemType enums.ItemType, price decimal.Decimal) (*ratesvc.RateView, error) {
	return &ratesvc.RateView{ItemType: itemType, Price: price, IsActive: true}, nil
}

func (stubRates) SetActive(_ context.Context, itemType enums.ItemType, active bool) (*ratesvc.RateView, error) {
	return &ratesvc.RateView{ItemType: itemType, IsActive: active}, nil
}

type stubCart struct{}

func (stubCart) Get(context.Context, string) (*cartsvc.View, error) {
	return &cartsvc.View{Items: []cartsvc.Item{}, Total: decimal.Zero}, nil
}

func (stubCart) Add(context.Context, string, cartsvc.Item) (*cartsvc.View, error) {
	return &cartsvc.View{Items: []cartsvc.Item{}, Total: decimal.Zero}, nil
}

func (stubCart) Remove(context.Context, string, string) (*cartsvc.View, error) {
	return &cartsvc.View{Items: []cartsvc.Item{}, Total: decimal.Zero}, nil
}

func (stubCart) Clear(context.Context, string) error { return nil }

type stubCheckout struct{}

func (stubCheckout) Submit(context.Context, checkoutsvc.Input) (*checkoutsvc.Result, error) {
	return &checkoutsvc.Result{OrderID: uuid.New(), ShortID: "abcd"}, nil
}

type stubOrders struct{}

func (stubOrders) List(context.Context, *enums.OrderStatus) ([]ordersvc.OrderView, error) {
	return []ordersvc.OrderView{}, nil
}

func (stubOrders) Get(context.Context, uuid.UUID) (*ordersvc.OrderView, error) {
	return &ordersvc.OrderView{}, nil
}

func (stubOrders) UpdateStatus(context.Context, uuid.UUID, enums.OrderStatus) (*ordersvc.OrderView, error) {
	return &ordersvc.OrderView{}, nil
}

func (stubOrders) Stats(context.Context) (*ordersvc.Stats, error) {
	return &ordersvc.Stats{}, nil
}

type stubStocks struct{}

func (stubStocks) List(context.Context) ([]stocksvc.StockView, error) {
	return []stocksvc.StockView{}, nil
}

func (stubStocks) SetOpening(context.Context, enums.ItemType, decimal.Decimal) error { return nil }

func (stubStocks) SetQuantity(context.Context, enums.ItemType, decimal.Decimal) error { return nil }

func (stubStocks) ResetDaily(context.Context, time.Time) error { return nil }

type stubSettings struct{}

func (stubSettings) Get(context.Context) (*settingsvc.View, error) {
	return &settingsvc.View{ShopName: "Namma Kari Kadai"}, nil
}

func (stubSettings) Update(context.Context, settingsvc.UpdateInput) (*settingsvc.View, error) {
	return &settingsvc.View{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "karikadai-test",
			ExpirationMinutes: 60,
		},
	}
}

func testRouter() http.Handler {
	return NewRouter(Deps{
		Config:   testConfig(),
		DB:       stubPinger{},
		Rates:    stubRates{},
		Cart:     stubCart{},
		Checkout: stubCheckout{},
		Orders:   stubOrders{},
		Stocks:   stubStocks{},
		Settings: stubSettings{},
	})
}

func TestRouterHealthLive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterPublicRates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "broiler") {
		t.Fatalf("expected broiler rate in body, got %s", resp.Body.String())
	}
}

func TestRouterCheckoutWithoutIdempotencyHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(
		`{"customer_name":"Kumar","phone":"9876543210","pickup_date":"2025-09-02","pickup_time":"Morning 7AM - 9AM"}`))
	req.Header.Set("X-Cart-Token", "token-1")
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterAdminWithToken(t *testing.T) {
	cfg := testConfig()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{Username: "admin", JTI: uuid.NewString()})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}
