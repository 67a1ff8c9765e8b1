package stocks

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/karikadai/karikadai-backend/pkg/db/models"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
)

// StockView is the admin-facing shape of one stock row.
type StockView struct {
	ItemType    enums.ItemType  `json:"item_type"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	OpeningKg   decimal.Decimal `json:"opening_kg"`
	LastResetAt *time.Time      `json:"last_reset_at,omitempty"`
}

// Service exposes stock reads, the staff-side adjustments and the daily
// reset the cron worker drives.
type Service interface {
	List(ctx context.Context) ([]StockView, error)
	SetOpening(ctx context.Context, itemType enums.ItemType, opening decimal.Decimal) error
	SetQuantity(ctx context.Context, itemType enums.ItemType, quantity decimal.Decimal) error
	ResetDaily(ctx context.Context, at time.Time) error
}

type service struct {
	repo Repository
}

// NewService builds the stocks service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stocks repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]StockView, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stocks")
	}
	views := make([]StockView, 0, len(rows))
	for _, row := range rows {
		views = append(views, viewOf(row))
	}
	return views, nil
}

func (s *service) SetOpening(ctx context.Context, itemType enums.ItemType, opening decimal.Decimal) error {
	if !itemType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown item type %q", itemType))
	}
	if opening.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "opening quantity cannot be negative")
	}

	affected, err := s.repo.SetOpening(ctx, itemType, opening)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set opening stock")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found")
	}
	return nil
}

func (s *service) SetQuantity(ctx context.Context, itemType enums.ItemType, quantity decimal.Decimal) error {
	if !itemType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown item type %q", itemType))
	}
	if quantity.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	affected, err := s.repo.SetQuantity(ctx, itemType, quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set stock quantity")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found")
	}
	return nil
}

// ResetDaily restores every item type to its opening quantity. A failure on
// one item type does not stop the others; errors are aggregated.
func (s *service) ResetDaily(ctx context.Context, at time.Time) error {
	var errs error
	for _, itemType := range enums.ItemTypes() {
		if _, err := s.repo.Reset(ctx, itemType, at); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("reset %s stock: %w", itemType, err))
		}
	}
	return errs
}

func viewOf(stock models.Stock) StockView {
	return StockView{
		ItemType:    stock.ItemType,
		QuantityKg:  stock.QuantityKg,
		OpeningKg:   stock.OpeningKg,
		LastResetAt: stock.LastResetAt,
	}
}
