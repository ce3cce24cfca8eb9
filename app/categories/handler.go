// Package categories serves the admin category pages.
package categories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mytheresa/shop-admin/app/apperr"
	"github.com/mytheresa/shop-admin/app/logging"
	"github.com/mytheresa/shop-admin/app/web"
	"github.com/mytheresa/shop-admin/models"
)

const indexPath = "/Category/Index"

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategoryForm is the add/update form.
type CategoryForm struct {
	ID   uint   `json:"id" form:"id"`
	Name string `json:"name" form:"categoryName" validate:"required,max=60"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error
	CountProductsInCategory(ctx context.Context, id uint) (int64, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) Index(r *http.Request) web.Result {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		return web.FromError(r.Context(), apperr.Persistence(err), nil)
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:   c.ID,
			Name: c.Name,
		}
	}
	return web.OK(response)
}

func (h *CategoryHandler) AddCategory(r *http.Request) web.Result {
	input := readForm(r)
	input.ID = 0
	if errs := web.Validate(input); errs != nil {
		return web.Invalid(input, errs)
	}

	category := &models.Category{Name: input.Name}
	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		logging.Error(r.Context(), "failed to create category", "name", input.Name, "error", err)
		return web.Result{Status: http.StatusInternalServerError, Message: "Category could not be added!", Payload: input}
	}

	logging.Info(r.Context(), "category created", "category_id", category.ID)
	return web.RedirectTo("/Category/AddCategory", "Category added successfully")
}

func (h *CategoryHandler) UpdateCategoryForm(r *http.Request) web.Result {
	id := web.QueryUint(r, "id")
	category, err := h.find(r.Context(), id)
	if err != nil {
		return web.FromError(r.Context(), err, nil)
	}
	return web.OK(CategoryForm{ID: category.ID, Name: category.Name})
}

func (h *CategoryHandler) UpdateCategory(r *http.Request) web.Result {
	input := readForm(r)
	if errs := web.Validate(input); errs != nil {
		return web.Invalid(input, errs)
	}
	if _, err := h.find(r.Context(), input.ID); err != nil {
		return web.FromError(r.Context(), err, input)
	}

	if err := h.repo.UpdateCategory(r.Context(), &models.Category{ID: input.ID, Name: input.Name}); err != nil {
		logging.Error(r.Context(), "failed to update category", "category_id", input.ID, "error", err)
		return web.Result{Status: http.StatusInternalServerError, Message: "Category could not be updated!", Payload: input}
	}
	return web.RedirectTo(indexPath, "Category updated successfully")
}

// DeleteCategory refuses to remove a category that still owns products.
func (h *CategoryHandler) DeleteCategory(r *http.Request) web.Result {
	ctx := r.Context()
	id := web.QueryUint(r, "id")
	if _, err := h.find(ctx, id); err != nil {
		return web.FromError(ctx, err, nil)
	}

	count, err := h.repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return web.FromError(ctx, apperr.Persistence(err), nil)
	}
	if count > 0 {
		logging.Warn(ctx, "category still has products", "category_id", id, "products", count)
		return web.RedirectTo(indexPath, "Category has products and cannot be deleted")
	}

	if err := h.repo.DeleteCategory(ctx, id); err != nil {
		logging.Error(ctx, "failed to delete category", "category_id", id, "error", err)
		return web.RedirectTo(indexPath, apperr.Message(err))
	}
	return web.RedirectTo(indexPath, "Category deleted successfully")
}

func (h *CategoryHandler) find(ctx context.Context, id uint) (*models.Category, error) {
	category, err := h.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Category with id: %d not found", id), err)
		}
		return nil, apperr.Persistence(err)
	}
	return category, nil
}

func readForm(r *http.Request) CategoryForm {
	return CategoryForm{
		ID:   web.QueryUint(r, "id"),
		Name: strings.TrimSpace(r.FormValue("categoryName")),
	}
}
