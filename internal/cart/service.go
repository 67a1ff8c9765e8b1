package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/karikadai/karikadai-backend/pkg/config"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
)

// Service exposes the token-scoped cart operations.
type Service interface {
	Get(ctx context.Context, token string) (*View, error)
	Add(ctx context.Context, token string, item Item) (*View, error)
	Remove(ctx context.Context, token string, itemKey string) (*View, error)
	Clear(ctx context.Context, token string) error
}

type service struct {
	store Store
	logg  *logger.Logger
	ttl   time.Duration
}

// NewService builds the cart service.
func NewService(store Store, logg *logger.Logger, cfg config.CartConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &service{store: store, logg: logg, ttl: ttl}, nil
}

func (s *service) Get(ctx context.Context, token string) (*View, error) {
	current, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	view := ViewOf(*current)
	return &view, nil
}

func (s *service) Add(ctx context.Context, token string, item Item) (*View, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	current, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	merged := false
	key := item.Key()
	for i := range current.Items {
		if current.Items[i].Key() == key {
			// Only the quantity grows; the line keeps the price snapshot
			// taken when it was first added.
			current.Items[i].Quantity = current.Items[i].Quantity.Add(item.Quantity)
			merged = true
			break
		}
	}
	if !merged {
		current.Items = append(current.Items, item)
	}

	if err := s.save(ctx, token, current); err != nil {
		return nil, err
	}
	view := ViewOf(*current)
	return &view, nil
}

func (s *service) Remove(ctx context.Context, token string, itemKey string) (*View, error) {
	if strings.TrimSpace(itemKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item key required")
	}

	current, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	kept := current.Items[:0]
	for _, item := range current.Items {
		if item.Key() != itemKey {
			kept = append(kept, item)
		}
	}
	current.Items = kept

	if len(current.Items) == 0 {
		if err := s.Clear(ctx, token); err != nil {
			return nil, err
		}
		view := ViewOf(Cart{})
		return &view, nil
	}

	if err := s.save(ctx, token, current); err != nil {
		return nil, err
	}
	view := ViewOf(*current)
	return &view, nil
}

func (s *service) Clear(ctx context.Context, token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	if err := s.store.Del(ctx, s.store.CartKey(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, token string) (*Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}

	payload, err := s.store.Get(ctx, s.store.CartKey(token))
	switch {
	case errors.Is(err, redis.Nil):
		return &Cart{}, nil
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var current Cart
	if err := json.Unmarshal([]byte(payload), &current); err != nil {
		// A corrupt payload is discarded rather than surfaced; the
		// customer starts over with an empty cart.
		s.logg.Warn(s.logg.WithCartToken(ctx, token), "discarding corrupt cart payload")
		if delErr := s.store.Del(ctx, s.store.CartKey(token)); delErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, delErr, "discard corrupt cart")
		}
		return &Cart{}, nil
	}
	return &current, nil
}

func (s *service) save(ctx context.Context, token string, current *Cart) error {
	payload, err := json.Marshal(current)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(token), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	return nil
}

func validateItem(item Item) error {
	if !item.ItemType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown item type %q", item.ItemType))
	}
	if !item.Unit.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown unit %q", item.Unit))
	}
	if strings.TrimSpace(item.CutType) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cut type required")
	}
	if !item.Quantity.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if item.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return nil
}
