package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) CountCategories(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Category{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return total, nil
}

func (r *CategoriesRepository) GetCategoryByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	if err := r.db.WithContext(ctx).Omit("Products").Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoriesRepository) CreateCategories(ctx context.Context, categories []Category) error {
	if len(categories) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Omit("Products").Create(&categories).Error; err != nil {
		return fmt.Errorf("create categories: %w", err)
	}
	return nil
}

func (r *CategoriesRepository) UpdateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Category
		if err := tx.First(&existing, category.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		return tx.Model(&existing).Update("name", category.Name).Error
	})
}

func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Category{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// CountProductsInCategory returns how many products reference the category.
func (r *CategoriesRepository) CountProductsInCategory(ctx context.Context, id uint) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Where("category_id = ?", id).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count products in category: %w", err)
	}
	return total, nil
}
