// Package dashboard computes the admin overview figures.
package dashboard

import (
	"context"

	"github.com/mytheresa/shop-admin/app/apperr"
	"github.com/mytheresa/shop-admin/models"
	"github.com/shopspring/decimal"
)

type Metrics struct {
	TotalOrders     int             `json:"totalOrders"`
	TotalProducts   int             `json:"totalProducts"`
	TotalCategories int             `json:"totalCategories"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PendingOrders   int             `json:"pendingOrders"`
	LowStockItems   int             `json:"lowStockItems"`
}

// Aggregate derives the dashboard figures from full entity sets.
// Revenue counts paid orders only; pending means unpaid.
func Aggregate(orders []models.Order, products []models.Product, categories []models.Category, stocks []models.Stock) Metrics {
	m := Metrics{
		TotalOrders:     len(orders),
		TotalProducts:   len(products),
		TotalCategories: len(categories),
		TotalRevenue:    decimal.Zero,
	}
	for _, o := range orders {
		if o.IsPaid {
			m.TotalRevenue = m.TotalRevenue.Add(o.Total())
		} else {
			m.PendingOrders++
		}
	}
	for _, s := range stocks {
		if s.IsLow() {
			m.LowStockItems++
		}
	}
	return m
}

type OrderProvider interface {
	GetOrdersWithDetails(ctx context.Context) ([]models.Order, error)
}

type ProductProvider interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
}

type StockProvider interface {
	GetAllStocks(ctx context.Context) ([]models.Stock, error)
}

// Observer receives the computed figures. *metrics.Metrics satisfies it.
type Observer interface {
	ObserveDashboard(pendingOrders, lowStockItems int, totalRevenue decimal.Decimal)
}

type Service struct {
	orders     OrderProvider
	products   ProductProvider
	categories CategoryProvider
	stocks     StockProvider
	observer   Observer
}

func NewService(orders OrderProvider, products ProductProvider, categories CategoryProvider, stocks StockProvider, observer Observer) *Service {
	return &Service{
		orders:     orders,
		products:   products,
		categories: categories,
		stocks:     stocks,
		observer:   observer,
	}
}

// Compute loads every order, product, category and stock row and aggregates them.
// Nothing is cached.
func (s *Service) Compute(ctx context.Context) (Metrics, error) {
	orders, err := s.orders.GetOrdersWithDetails(ctx)
	if err != nil {
		return Metrics{}, apperr.Persistence(err)
	}
	products, err := s.products.GetAllProducts(ctx)
	if err != nil {
		return Metrics{}, apperr.Persistence(err)
	}
	categories, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return Metrics{}, apperr.Persistence(err)
	}
	stocks, err := s.stocks.GetAllStocks(ctx)
	if err != nil {
		return Metrics{}, apperr.Persistence(err)
	}

	m := Aggregate(orders, products, categories, stocks)
	if s.observer != nil {
		s.observer.ObserveDashboard(m.PendingOrders, m.LowStockItems, m.TotalRevenue)
	}
	return m, nil
}
