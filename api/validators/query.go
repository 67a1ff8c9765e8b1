package validators

import (
	"net/http"
	"strings"

	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
)

// ParseStatusFilter reads the optional ?status= query parameter. An absent
// or blank value means no filter.
func ParseStatusFilter(r *http.Request) (*enums.OrderStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseOrderStatus(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown status filter").
			WithDetails(map[string]any{"field": "status", "value": raw})
	}
	return &status, nil
}
