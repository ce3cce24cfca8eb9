// Package catalog serves the public storefront listing.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/mytheresa/shop-admin/app/logging"
	"github.com/mytheresa/shop-admin/app/web"
	"github.com/mytheresa/shop-admin/models"
)

type Response struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	STerm      string     `json:"sTerm"`
	CategoryID uint       `json:"categoryId"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	BrandName    string `json:"brandName"`
	Price        string `json:"price"`
	CategoryID   uint   `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Image        string `json:"image,omitempty"`
	Quantity     int    `json:"quantity"`
	InStock      bool   `json:"inStock"`
}

type ProductProvider interface {
	GetProductListings(ctx context.Context, filters models.ProductFilters) ([]models.ProductListing, error)
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
}

type CatalogHandler struct {
	products   ProductProvider
	categories CategoryProvider
}

func NewCatalogHandler(p ProductProvider, c CategoryProvider) *CatalogHandler {
	return &CatalogHandler{
		products:   p,
		categories: c,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse filters; an invalid category id means no category filter
	filters := models.ProductFilters{
		SearchTerm: strings.TrimSpace(r.URL.Query().Get("sTerm")),
	}
	if cStr := r.URL.Query().Get("categoryId"); cStr != "" {
		if c, err := strconv.ParseUint(cStr, 10, 64); err == nil {
			filters.CategoryID = uint(c)
		}
	}

	res, err := h.products.GetProductListings(r.Context(), filters)
	if err != nil {
		logging.Error(r.Context(), "failed to get products", "error", err)
		web.WriteError(w, http.StatusInternalServerError, "failed to get products")
		return
	}
	cats, err := h.categories.GetAllCategories(r.Context())
	if err != nil {
		logging.Error(r.Context(), "failed to get categories", "error", err)
		web.WriteError(w, http.StatusInternalServerError, "failed to get categories")
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		var image string
		if p.Image != nil {
			image = *p.Image
		}
		products[i] = Product{
			ID:           p.ID,
			Name:         p.Name,
			BrandName:    p.BrandName,
			Price:        p.Price.StringFixed(2),
			CategoryID:   p.CategoryID,
			CategoryName: p.CategoryName,
			Image:        image,
			Quantity:     p.Quantity,
			InStock:      p.Quantity > 0,
		}
	}

	categories := make([]Category, len(cats))
	for i, c := range cats {
		categories[i] = Category{ID: c.ID, Name: c.Name}
	}

	w.Header().Set("Content-Type", "application/json")
	response := Response{
		Products:   products,
		Categories: categories,
		STerm:      filters.SearchTerm,
		CategoryID: filters.CategoryID,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		web.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := h.products.GetProductByID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			web.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		logging.Error(r.Context(), "failed to retrieve product", "product_id", id, "error", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	var quantity int
	if product.Stock != nil {
		quantity = product.Stock.Quantity
	}
	response := Product{
		ID:           product.ID,
		Name:         product.Name,
		BrandName:    product.BrandName,
		Price:        product.Price.StringFixed(2),
		CategoryID:   product.CategoryID,
		CategoryName: product.Category.Name,
		Image:        product.ImageName(),
		Quantity:     quantity,
		InStock:      quantity > 0,
	}

	web.WriteJSON(w, http.StatusOK, response)
}
