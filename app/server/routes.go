// Package server wires handlers into the chi router and runs the HTTP server.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mytheresa/shop-admin/app/catalog"
	"github.com/mytheresa/shop-admin/app/categories"
	"github.com/mytheresa/shop-admin/app/dashboard"
	"github.com/mytheresa/shop-admin/app/events"
	"github.com/mytheresa/shop-admin/app/identity"
	"github.com/mytheresa/shop-admin/app/metrics"
	"github.com/mytheresa/shop-admin/app/orders"
	"github.com/mytheresa/shop-admin/app/products"
	"github.com/mytheresa/shop-admin/app/stocks"
	"github.com/mytheresa/shop-admin/app/storage"
	"github.com/mytheresa/shop-admin/app/web"
	"github.com/mytheresa/shop-admin/models"
	"gorm.io/gorm"
)

type Handlers struct {
	Catalog    *catalog.CatalogHandler
	Account    *identity.AccountHandler
	Orders     *orders.OrderHandler
	Dashboard  *dashboard.DashboardHandler
	Categories *categories.CategoryHandler
	Products   *products.ProductHandler
	Stocks     *stocks.StockHandler
}

// NewHandlers builds the repositories over db and every handler on top of them.
func NewHandlers(db *gorm.DB, m *metrics.Metrics, publisher events.Publisher, tokens *identity.TokenService, images *storage.FileStore) Handlers {
	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	stocksRepo := models.NewStocksRepository(db)
	ordersRepo := models.NewOrdersRepository(db)
	statusesRepo := models.NewOrderStatusesRepository(db)
	usersRepo := models.NewUsersRepository(db)

	return Handlers{
		Catalog:    catalog.NewCatalogHandler(productsRepo, categoriesRepo),
		Account:    identity.NewAccountHandler(usersRepo, tokens),
		Orders:     orders.NewOrderHandler(orders.NewWorkflow(ordersRepo, statusesRepo, publisher, m)),
		Dashboard:  dashboard.NewDashboardHandler(dashboard.NewService(ordersRepo, productsRepo, categoriesRepo, stocksRepo, m)),
		Categories: categories.NewCategoryHandler(categoriesRepo),
		Products:   products.NewProductHandler(products.NewService(productsRepo, categoriesRepo, images)),
		Stocks:     stocks.NewStockHandler(stocksRepo, productsRepo),
	}
}

type HealthChecker interface {
	PingContext(ctx context.Context) error
}

type RouterConfig struct {
	Handlers  Handlers
	Metrics   *metrics.Metrics
	Tokens    *identity.TokenService
	Health    HealthChecker
	ImagesDir string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cfg.Metrics.Middleware)

	h := cfg.Handlers

	// Public
	r.Get("/", h.Catalog.HandleGet)
	r.Get("/Home/Index", h.Catalog.HandleGet)
	r.Get("/Home/Product/{id}", h.Catalog.HandleGetProduct)
	r.Post("/Account/Login", h.Account.HandleLogin)
	r.Get("/health", healthHandler(cfg.Health))
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	if cfg.ImagesDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImagesDir))))
	}

	// Admin
	r.Group(func(r chi.Router) {
		r.Use(identity.RequireRole(cfg.Tokens, models.RoleAdmin))

		r.Route("/AdminOperations", func(r chi.Router) {
			r.Get("/AllOrders", web.Page(h.Orders.AllOrders))
			r.Post("/TogglePaymentStatus", web.Page(h.Orders.TogglePaymentStatus))
			r.Get("/UpdateOrderStatus", web.Page(h.Orders.UpdateOrderStatusForm))
			r.Post("/UpdateOrderStatus", web.Page(h.Orders.UpdateOrderStatus))
			r.Post("/UpdateOrderStatusAjax", h.Orders.UpdateOrderStatusAjax)
			r.Get("/Dashboard", web.Page(h.Dashboard.Dashboard))
		})

		r.Route("/Category", func(r chi.Router) {
			r.Get("/Index", web.Page(h.Categories.Index))
			r.Post("/AddCategory", web.Page(h.Categories.AddCategory))
			r.Get("/UpdateCategory", web.Page(h.Categories.UpdateCategoryForm))
			r.Post("/UpdateCategory", web.Page(h.Categories.UpdateCategory))
			r.Post("/DeleteCategory", web.Page(h.Categories.DeleteCategory))
		})

		r.Route("/Product", func(r chi.Router) {
			r.Get("/Index", web.Page(h.Products.Index))
			r.Get("/AddProduct", web.Page(h.Products.AddProductForm))
			r.Post("/AddProduct", web.Page(h.Products.AddProduct))
			r.Get("/UpdateProduct", web.Page(h.Products.UpdateProductForm))
			r.Post("/UpdateProduct", web.Page(h.Products.UpdateProduct))
			r.Post("/DeleteProduct", web.Page(h.Products.DeleteProduct))
		})

		r.Route("/Stock", func(r chi.Router) {
			r.Get("/Index", web.Page(h.Stocks.Index))
			r.Get("/ManageStock", web.Page(h.Stocks.ManageStockForm))
			r.Post("/ManageStock", web.Page(h.Stocks.ManageStock))
		})
	})

	return r
}

func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if checker != nil {
			if err := checker.PingContext(ctx); err != nil {
				web.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		web.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
