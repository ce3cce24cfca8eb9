// Package metrics exposes prometheus collectors for HTTP traffic and the
// admin dashboard.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	OrderStatusChanges *prometheus.CounterVec
	PaymentToggles     prometheus.Counter

	PendingOrders prometheus.Gauge
	LowStockItems prometheus.Gauge
	TotalRevenue  prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		OrderStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Order status changes applied, by new status",
		}, []string{"status"}),
		PaymentToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_payment_toggles_total",
			Help:      "Order payment flag toggles applied",
		}),
		PendingOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dashboard_pending_orders",
			Help:      "Unpaid orders at the last dashboard computation",
		}),
		LowStockItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dashboard_low_stock_items",
			Help:      "Stock rows under the low stock threshold at the last dashboard computation",
		}),
		TotalRevenue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dashboard_total_revenue",
			Help:      "Revenue of paid orders at the last dashboard computation",
		}),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OrderStatusChanges,
		m.PaymentToggles,
		m.PendingOrders,
		m.LowStockItems,
		m.TotalRevenue,
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request count and latency labelled by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) ObserveStatusChange(statusName string) {
	m.OrderStatusChanges.WithLabelValues(statusName).Inc()
}

func (m *Metrics) ObservePaymentToggle() {
	m.PaymentToggles.Inc()
}

// ObserveDashboard publishes the latest dashboard figures.
func (m *Metrics) ObserveDashboard(pendingOrders, lowStockItems int, totalRevenue decimal.Decimal) {
	m.PendingOrders.Set(float64(pendingOrders))
	m.LowStockItems.Set(float64(lowStockItems))
	m.TotalRevenue.Set(totalRevenue.InexactFloat64())
}
