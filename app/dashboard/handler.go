package dashboard

import (
	"context"
	"net/http"

	"github.com/mytheresa/shop-admin/app/web"
)

type MetricsProvider interface {
	Compute(ctx context.Context) (Metrics, error)
}

// Response renders revenue as a fixed two-decimal string.
type Response struct {
	TotalOrders     int    `json:"totalOrders"`
	TotalProducts   int    `json:"totalProducts"`
	TotalCategories int    `json:"totalCategories"`
	TotalRevenue    string `json:"totalRevenue"`
	PendingOrders   int    `json:"pendingOrders"`
	LowStockItems   int    `json:"lowStockItems"`
}

type DashboardHandler struct {
	service MetricsProvider
}

func NewDashboardHandler(s MetricsProvider) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) Dashboard(r *http.Request) web.Result {
	m, err := h.service.Compute(r.Context())
	if err != nil {
		return web.FromError(r.Context(), err, nil)
	}
	return web.OK(Response{
		TotalOrders:     m.TotalOrders,
		TotalProducts:   m.TotalProducts,
		TotalCategories: m.TotalCategories,
		TotalRevenue:    m.TotalRevenue.StringFixed(2),
		PendingOrders:   m.PendingOrders,
		LowStockItems:   m.LowStockItems,
	})
}
