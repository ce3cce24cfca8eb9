// Package products manages the admin product catalogue and product images.
package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/mytheresa/shop-admin/app/apperr"
	"github.com/mytheresa/shop-admin/app/logging"
	"github.com/mytheresa/shop-admin/app/storage"
	"github.com/mytheresa/shop-admin/models"
	"github.com/shopspring/decimal"
)

type ProductStore interface {
	GetProductListings(ctx context.Context, filters models.ProductFilters) ([]models.ProductListing, error)
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type CategoryStore interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
}

type ImageStore interface {
	SaveFile(upload storage.Upload, allowedExtensions []string) (string, error)
	DeleteFile(name string) error
}

// Input carries the editable product fields.
type Input struct {
	Name       string
	BrandName  string
	Price      decimal.Decimal
	CategoryID uint
}

type Service struct {
	products   ProductStore
	categories CategoryStore
	images     ImageStore
}

func NewService(products ProductStore, categories CategoryStore, images ImageStore) *Service {
	return &Service{products: products, categories: categories, images: images}
}

func (s *Service) List(ctx context.Context) ([]models.ProductListing, error) {
	listings, err := s.products.GetProductListings(ctx, models.ProductFilters{})
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return listings, nil
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return categories, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, id)
	}
	return product, nil
}

// Create stores the image first, if any, so a rejected image never leaves a product behind.
func (s *Service) Create(ctx context.Context, in Input, image *storage.Upload) (*models.Product, error) {
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:       in.Name,
		BrandName:  in.BrandName,
		Price:      in.Price,
		CategoryID: in.CategoryID,
	}
	if image != nil {
		name, err := s.images.SaveFile(*image, storage.ImageExtensions)
		if err != nil {
			return nil, err
		}
		product.Image = &name
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		s.discard(ctx, product.ImageName())
		return nil, apperr.Persistence(err)
	}
	logging.Info(ctx, "product created", "product_id", product.ID)
	return product, nil
}

// Update replaces the product fields. A new image replaces the old one, which is
// removed only after the product row points at the new file.
func (s *Service) Update(ctx context.Context, id uint, in Input, image *storage.Upload) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	oldImage := product.ImageName()
	product.Name = in.Name
	product.BrandName = in.BrandName
	product.Price = in.Price
	product.CategoryID = in.CategoryID
	if image != nil {
		name, err := s.images.SaveFile(*image, storage.ImageExtensions)
		if err != nil {
			return nil, err
		}
		product.Image = &name
	}

	if err := s.products.UpdateProduct(ctx, product); err != nil {
		if image != nil {
			s.discard(ctx, product.ImageName())
		}
		return nil, notFoundOr(err, id)
	}

	if image != nil && oldImage != "" {
		s.discard(ctx, oldImage)
	}
	return product, nil
}

// Delete removes the product and its stock row, then its image.
func (s *Service) Delete(ctx context.Context, id uint) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return notFoundOr(err, id)
	}
	s.discard(ctx, product.ImageName())
	logging.Info(ctx, "product deleted", "product_id", id)
	return nil
}

func (s *Service) checkCategory(ctx context.Context, id uint) error {
	if _, err := s.categories.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return apperr.Validation("Category does not exist")
		}
		return apperr.Persistence(err)
	}
	return nil
}

// discard deletes an image file; failures are logged only.
func (s *Service) discard(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := s.images.DeleteFile(name); err != nil {
		logging.Warn(ctx, "failed to delete product image", "image", name, "error", err)
	}
}

func notFoundOr(err error, id uint) error {
	if errors.Is(err, models.ErrNotFound) {
		return apperr.NotFound(fmt.Sprintf("Product with id: %d not found", id), err)
	}
	return apperr.Persistence(err)
}
