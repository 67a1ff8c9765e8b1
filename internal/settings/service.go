package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/karikadai/karikadai-backend/pkg/config"
	"github.com/karikadai/karikadai-backend/pkg/db/models"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
)

// DefaultPickupTimeSlots is what the storefront offers before staff have
// saved any settings row.
var DefaultPickupTimeSlots = []string{
	"Morning 7AM - 9AM",
	"Morning 9AM - 11AM",
	"Afternoon 12PM - 2PM",
	"Evening 4PM - 6PM",
	"Evening 6PM - 8PM",
}

// View is the public shape of the shop settings.
type View struct {
	ShopName        string   `json:"shop_name"`
	ShopPhone       string   `json:"shop_phone"`
	PickupTimeSlots []string `json:"pickup_time_slots"`
	IsOpen          bool     `json:"is_open"`
	BannerText      *string  `json:"banner_text,omitempty"`
}

// UpdateInput carries the fields staff can change. Nil fields keep their
// current value.
type UpdateInput struct {
	ShopName        *string
	ShopPhone       *string
	PickupTimeSlots []string
	IsOpen          *bool
	BannerText      *string
}

// Service exposes shop settings reads and the staff-side update.
type Service interface {
	Get(ctx context.Context) (*View, error)
	Update(ctx context.Context, input UpdateInput) (*View, error)
}

type service struct {
	repo Repository
	shop config.ShopConfig
}

// NewService builds the settings service. Config supplies the defaults used
// until a settings row exists.
func NewService(repo Repository, shop config.ShopConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo, shop: shop}, nil
}

func (s *service) Get(ctx context.Context) (*View, error) {
	setting, err := s.repo.Get(ctx)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.defaultView(), nil
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop settings")
	}
	return viewOf(setting), nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*View, error) {
	if input.ShopName != nil && strings.TrimSpace(*input.ShopName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name cannot be blank")
	}
	if input.ShopPhone != nil && strings.TrimSpace(*input.ShopPhone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop phone cannot be blank")
	}
	if input.PickupTimeSlots != nil && len(input.PickupTimeSlots) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one pickup slot required")
	}

	setting, err := s.repo.Get(ctx)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = &models.ShopSetting{
			ShopName:        s.shop.Name,
			ShopPhone:       s.shop.Phone,
			PickupTimeSlots: pq.StringArray(DefaultPickupTimeSlots),
			IsOpen:          true,
		}
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop settings")
	}

	if input.ShopName != nil {
		setting.ShopName = strings.TrimSpace(*input.ShopName)
	}
	if input.ShopPhone != nil {
		setting.ShopPhone = strings.TrimSpace(*input.ShopPhone)
	}
	if input.PickupTimeSlots != nil {
		setting.PickupTimeSlots = pq.StringArray(input.PickupTimeSlots)
	}
	if input.IsOpen != nil {
		setting.IsOpen = *input.IsOpen
	}
	if input.BannerText != nil {
		setting.BannerText = input.BannerText
	}

	saved, err := s.repo.Save(ctx, setting)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save shop settings")
	}
	return viewOf(saved), nil
}

func (s *service) defaultView() *View {
	return &View{
		ShopName:        s.shop.Name,
		ShopPhone:       s.shop.Phone,
		PickupTimeSlots: DefaultPickupTimeSlots,
		IsOpen:          true,
	}
}

func viewOf(setting *models.ShopSetting) *View {
	return &View{
		ShopName:        setting.ShopName,
		ShopPhone:       setting.ShopPhone,
		PickupTimeSlots: []string(setting.PickupTimeSlots),
		IsOpen:          setting.IsOpen,
		BannerText:      setting.BannerText,
	}
}
