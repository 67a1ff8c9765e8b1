package rates

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karikadai/karikadai-backend/pkg/config"
	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
)

// Service exposes catalog rate reads and the staff-side mutations.
type Service interface {
	CurrentRates(ctx context.Context) ([]RateView, error)
	PriceFor(ctx context.Context, itemType enums.ItemType) (decimal.Decimal, error)
	UpdatePrice(ctx context.Context, itemType enums.ItemType, price decimal.Decimal) (*RateView, error)
	SetActive(ctx context.Context, itemType enums.ItemType, active bool) (*RateView, error)
}

type service struct {
	repo      Repository
	fallbacks map[enums.ItemType]decimal.Decimal
}

// NewService builds the rates service. Fallback prices come from shop config
// and apply whenever an item type has no active published rate.
func NewService(repo Repository, shop config.ShopConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rates repository required")
	}

	broiler, err := decimal.NewFromString(shop.BroilerFallbackPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid broiler fallback price %q: %w", shop.BroilerFallbackPrice, err)
	}
	country, err := decimal.NewFromString(shop.CountryFallbackPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid country fallback price %q: %w", shop.CountryFallbackPrice, err)
	}

	return &service{
		repo: repo,
		fallbacks: map[enums.ItemType]decimal.Decimal{
			enums.ItemTypeBroiler: broiler,
			enums.ItemTypeCountry: country,
		},
	}, nil
}

func (s *service) CurrentRates(ctx context.Context) ([]RateView, error) {
	views := make([]RateView, 0, len(enums.ItemTypes()))
	for _, itemType := range enums.ItemTypes() {
		view, err := s.viewFor(ctx, itemType)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// PriceFor returns the price the cart snapshots when a line is added: the
// latest active rate, falling back to the configured default when nothing
// active is published. An active rate of zero is honored as published.
func (s *service) PriceFor(ctx context.Context, itemType enums.ItemType) (decimal.Decimal, error) {
	view, err := s.viewFor(ctx, itemType)
	if err != nil {
		return decimal.Zero, err
	}
	return view.Price, nil
}

func (s *service) UpdatePrice(ctx context.Context, itemType enums.ItemType, price decimal.Decimal) (*RateView, error) {
	if !itemType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown item type %q", itemType))
	}

	// Any value is accepted, including zero and negatives. Publishing a
	// wrong rate is a business mistake staff fix by publishing again.
	_, err := s.repo.LatestByItemType(ctx, itemType)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.repo.Create(ctx, &models.Rate{ItemType: itemType, Price: price, IsActive: true}); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rate")
		}
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rate")
	default:
		if err := s.repo.UpdatePrice(ctx, itemType, price.String()); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rate price")
		}
	}

	return s.viewFor(ctx, itemType)
}

func (s *service) SetActive(ctx context.Context, itemType enums.ItemType, active bool) (*RateView, error) {
	if !itemType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown item type %q", itemType))
	}

	if err := s.repo.SetActive(ctx, itemType, active); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle rate")
	}

	return s.viewFor(ctx, itemType)
}

func (s *service) viewFor(ctx context.Context, itemType enums.ItemType) (*RateView, error) {
	rate, err := s.repo.LatestByItemType(ctx, itemType)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.fallbackView(itemType), nil
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rate")
	}

	if !rate.IsActive {
		view := s.fallbackView(itemType)
		view.IsActive = false
		return view, nil
	}

	updated := rate.UpdatedAt
	return &RateView{
		ItemType:  rate.ItemType,
		Price:     rate.Price,
		IsActive:  true,
		UpdatedAt: &updated,
	}, nil
}

func (s *service) fallbackView(itemType enums.ItemType) *RateView {
	return &RateView{
		ItemType:   itemType,
		Price:      s.fallbacks[itemType],
		IsActive:   true,
		IsFallback: true,
	}
}
