// Package stocks serves the admin stock pages.
package stocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mytheresa/shop-admin/app/apperr"
	"github.com/mytheresa/shop-admin/app/logging"
	"github.com/mytheresa/shop-admin/app/web"
	"github.com/mytheresa/shop-admin/models"
)

type StockProvider interface {
	GetStockListings(ctx context.Context, searchTerm string) ([]models.StockListing, error)
	GetStockByProductID(ctx context.Context, productID uint) (*models.Stock, error)
	UpsertStock(ctx context.Context, productID uint, quantity int) error
}

type ProductProvider interface {
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
}

type StockResponse struct {
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Low         bool   `json:"low"`
}

type IndexResponse struct {
	Stocks []StockResponse `json:"stocks"`
	STerm  string          `json:"sTerm"`
}

// StockForm backs the manage stock page.
type StockForm struct {
	ProductID uint `json:"productId" form:"productId" validate:"gt=0"`
	Quantity  int  `json:"quantity" form:"quantity" validate:"gte=0"`
}

type StockHandler struct {
	stocks   StockProvider
	products ProductProvider
}

func NewStockHandler(s StockProvider, p ProductProvider) *StockHandler {
	return &StockHandler{stocks: s, products: p}
}

func (h *StockHandler) Index(r *http.Request) web.Result {
	term := strings.TrimSpace(r.URL.Query().Get("sTerm"))
	listings, err := h.stocks.GetStockListings(r.Context(), term)
	if err != nil {
		return web.FromError(r.Context(), apperr.Persistence(err), nil)
	}

	response := IndexResponse{STerm: term, Stocks: make([]StockResponse, len(listings))}
	for i, s := range listings {
		response.Stocks[i] = StockResponse{
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			Quantity:    s.Quantity,
			Low:         models.Stock{Quantity: s.Quantity}.IsLow(),
		}
	}
	return web.OK(response)
}

// ManageStockForm shows quantity 0 for products without a stock row.
func (h *StockHandler) ManageStockForm(r *http.Request) web.Result {
	productID := web.QueryUint(r, "productId")
	form := StockForm{ProductID: productID}

	stock, err := h.stocks.GetStockByProductID(r.Context(), productID)
	switch {
	case err == nil:
		form.Quantity = stock.Quantity
	case errors.Is(err, models.ErrNotFound):
	default:
		return web.FromError(r.Context(), apperr.Persistence(err), nil)
	}
	return web.OK(form)
}

func (h *StockHandler) ManageStock(r *http.Request) web.Result {
	ctx := r.Context()
	form := StockForm{ProductID: web.QueryUint(r, "productId")}

	qty, err := strconv.Atoi(strings.TrimSpace(r.FormValue("quantity")))
	if err != nil {
		return web.Invalid(form, map[string]string{"quantity": "quantity is invalid"})
	}
	form.Quantity = qty
	if errs := web.Validate(form); errs != nil {
		return web.Invalid(form, errs)
	}

	if _, err := h.products.GetProductByID(ctx, form.ProductID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			err = apperr.NotFound(fmt.Sprintf("Product with id: %d not found", form.ProductID), err)
		}
		return web.FromError(ctx, err, form)
	}

	if err := h.stocks.UpsertStock(ctx, form.ProductID, form.Quantity); err != nil {
		logging.Error(ctx, "failed to update stock", "product_id", form.ProductID, "error", err)
		return web.Result{
			Status:  http.StatusInternalServerError,
			Message: "An error occurred while updating stock",
			Payload: form,
		}
	}

	logging.Info(ctx, "stock updated", "product_id", form.ProductID, "quantity", form.Quantity)
	return web.RedirectTo("/Stock/Index", "Stock updated successfully!")
}
