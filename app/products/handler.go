package products

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mytheresa/shop-admin/app/apperr"
	"github.com/mytheresa/shop-admin/app/logging"
	"github.com/mytheresa/shop-admin/app/storage"
	"github.com/mytheresa/shop-admin/app/web"
	"github.com/mytheresa/shop-admin/models"
	"github.com/shopspring/decimal"
)

const indexPath = "/Product/Index"

type ProductService interface {
	List(ctx context.Context) ([]models.ProductListing, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, in Input, image *storage.Upload) (*models.Product, error)
	Update(ctx context.Context, id uint, in Input, image *storage.Upload) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

type CategoryOption struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

type ProductResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	BrandName    string `json:"brandName"`
	Price        string `json:"price"`
	CategoryID   uint   `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Image        string `json:"image,omitempty"`
	Quantity     int    `json:"quantity"`
}

// ProductForm backs the add and update pages.
type ProductForm struct {
	ID           uint             `json:"id" form:"id"`
	Name         string           `json:"productName" form:"productName" validate:"required,max=120"`
	BrandName    string           `json:"brandName" form:"brandName" validate:"max=120"`
	Price        decimal.Decimal  `json:"price" form:"price" validate:"gte=0"`
	CategoryID   uint             `json:"categoryId" form:"categoryId" validate:"gt=0"`
	Image        string           `json:"image,omitempty" form:"-"`
	CategoryList []CategoryOption `json:"categoryList" form:"-"`
}

type ProductHandler struct {
	service ProductService
}

func NewProductHandler(s ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) Index(r *http.Request) web.Result {
	listings, err := h.service.List(r.Context())
	if err != nil {
		return web.FromError(r.Context(), err, nil)
	}

	response := make([]ProductResponse, len(listings))
	for i, p := range listings {
		var image string
		if p.Image != nil {
			image = *p.Image
		}
		response[i] = ProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			BrandName:    p.BrandName,
			Price:        p.Price.StringFixed(2),
			CategoryID:   p.CategoryID,
			CategoryName: p.CategoryName,
			Image:        image,
			Quantity:     p.Quantity,
		}
	}
	return web.OK(response)
}

func (h *ProductHandler) AddProductForm(r *http.Request) web.Result {
	form := ProductForm{}
	if err := h.withCategories(r.Context(), &form); err != nil {
		return web.FromError(r.Context(), err, nil)
	}
	return web.OK(form)
}

func (h *ProductHandler) AddProduct(r *http.Request) web.Result {
	ctx := r.Context()
	form, errs := readForm(r)
	form.ID = 0
	if err := h.withCategories(ctx, &form); err != nil {
		return web.FromError(ctx, err, form)
	}
	if errs != nil {
		return web.Invalid(form, errs)
	}

	upload, closeUpload, err := readUpload(r)
	if err != nil {
		return web.FromError(ctx, err, form)
	}
	defer closeUpload()

	if _, err := h.service.Create(ctx, form.input(), upload); err != nil {
		return web.FromError(ctx, err, form)
	}
	return web.RedirectTo("/Product/AddProduct", "Product added successfully")
}

func (h *ProductHandler) UpdateProductForm(r *http.Request) web.Result {
	ctx := r.Context()
	product, err := h.service.Get(ctx, web.QueryUint(r, "id"))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return web.RedirectTo(indexPath, apperr.Message(err))
		}
		return web.FromError(ctx, err, nil)
	}

	form := ProductForm{
		ID:         product.ID,
		Name:       product.Name,
		BrandName:  product.BrandName,
		Price:      product.Price,
		CategoryID: product.CategoryID,
		Image:      product.ImageName(),
	}
	if err := h.withCategories(ctx, &form); err != nil {
		return web.FromError(ctx, err, nil)
	}
	return web.OK(form)
}

func (h *ProductHandler) UpdateProduct(r *http.Request) web.Result {
	ctx := r.Context()
	form, errs := readForm(r)
	if err := h.withCategories(ctx, &form); err != nil {
		return web.FromError(ctx, err, form)
	}
	if errs != nil {
		return web.Invalid(form, errs)
	}

	upload, closeUpload, err := readUpload(r)
	if err != nil {
		return web.FromError(ctx, err, form)
	}
	defer closeUpload()

	if _, err := h.service.Update(ctx, form.ID, form.input(), upload); err != nil {
		return web.FromError(ctx, err, form)
	}
	return web.RedirectTo(indexPath, "Product updated successfully")
}

func (h *ProductHandler) DeleteProduct(r *http.Request) web.Result {
	ctx := r.Context()
	id := web.QueryUint(r, "id")
	if err := h.service.Delete(ctx, id); err != nil {
		logging.Error(ctx, "failed to delete product", "product_id", id, "error", err)
		return web.RedirectTo(indexPath, apperr.Message(err))
	}
	return web.RedirectTo(indexPath, "Product deleted successfully")
}

func (h *ProductHandler) withCategories(ctx context.Context, form *ProductForm) error {
	categories, err := h.service.Categories(ctx)
	if err != nil {
		return err
	}
	form.CategoryList = make([]CategoryOption, len(categories))
	for i, c := range categories {
		form.CategoryList[i] = CategoryOption{
			ID:       c.ID,
			Name:     c.Name,
			Selected: c.ID == form.CategoryID,
		}
	}
	return nil
}

func (f ProductForm) input() Input {
	return Input{
		Name:       f.Name,
		BrandName:  f.BrandName,
		Price:      f.Price,
		CategoryID: f.CategoryID,
	}
}

// readForm parses the text fields. A price that is not a number is reported
// alongside the tag validation errors.
func readForm(r *http.Request) (ProductForm, map[string]string) {
	form := ProductForm{
		ID:         web.QueryUint(r, "id"),
		Name:       strings.TrimSpace(r.FormValue("productName")),
		BrandName:  strings.TrimSpace(r.FormValue("brandName")),
		CategoryID: web.QueryUint(r, "categoryId"),
	}

	var priceErr bool
	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			priceErr = true
		} else {
			form.Price = price
		}
	} else {
		priceErr = true
	}

	errs := web.Validate(form)
	if priceErr {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["price"] = "price is invalid"
	}
	return form, errs
}

// readUpload returns the posted image, or nil when none was sent.
func readUpload(r *http.Request) (*storage.Upload, func(), error) {
	file, header, err := r.FormFile("imageFile")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, apperr.IO("Image could not be read", err)
	}
	upload := &storage.Upload{
		Name:    header.Filename,
		Size:    header.Size,
		Content: file,
	}
	return upload, func() { _ = file.Close() }, nil
}
