package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// GetAllProducts returns every product row without joins.
func (r *ProductsRepository) GetAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// GetProductListings joins category name and stock quantity onto each product.
// SearchTerm matches a case-insensitive name prefix.
func (r *ProductsRepository) GetProductListings(ctx context.Context, filters ProductFilters) ([]ProductListing, error) {
	query := r.db.WithContext(ctx).
		Table("products").
		Select(`products.id, products.name, products.brand_name, products.price, products.category_id,
			categories.name AS category_name, products.image, COALESCE(stocks.quantity, 0) AS quantity`).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Joins("LEFT JOIN stocks ON stocks.product_id = products.id")

	// Filter
	if term := strings.TrimSpace(filters.SearchTerm); term != "" {
		query = query.Where("LOWER(products.name) LIKE ? ESCAPE '!'", likePrefix(term))
	}
	if filters.CategoryID > 0 {
		query = query.Where("products.category_id = ?", filters.CategoryID)
	}

	var listings []ProductListing
	if err := query.Order("products.id").Scan(&listings).Error; err != nil {
		return nil, fmt.Errorf("list product listings: %w", err)
	}
	return listings, nil
}

func (r *ProductsRepository) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Stock").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Omit("Category", "Stock").Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductsRepository) CreateProducts(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Omit("Category", "Stock").Create(&products).Error; err != nil {
		return fmt.Errorf("create products: %w", err)
	}
	return nil
}

// UpdateProduct overwrites the editable columns of an existing product.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Product
		if err := tx.Select("id").First(&existing, product.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		return tx.Model(&existing).Updates(map[string]any{
			"name":        product.Name,
			"brand_name":  product.BrandName,
			"price":       product.Price,
			"category_id": product.CategoryID,
			"image":       product.Image,
		}).Error
	})
}

// DeleteProduct removes the product together with its stock row.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&Stock{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

// likePrefix builds a lower-cased LIKE pattern matching values starting with term.
// '!' is the LIKE escape character on every supported dialect.
func likePrefix(term string) string {
	escaped := strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(strings.ToLower(term))
	return escaped + "%"
}
