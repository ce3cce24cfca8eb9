package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StocksRepository struct {
	db *gorm.DB
}

func NewStocksRepository(db *gorm.DB) *StocksRepository {
	return &StocksRepository{db: db}
}

func (r *StocksRepository) GetAllStocks(ctx context.Context) ([]Stock, error) {
	var stocks []Stock
	if err := r.db.WithContext(ctx).Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	return stocks, nil
}

// GetStockListings lists every product with its quantity, filtered by name prefix.
func (r *StocksRepository) GetStockListings(ctx context.Context, searchTerm string) ([]StockListing, error) {
	query := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.name AS product_name, COALESCE(stocks.quantity, 0) AS quantity").
		Joins("LEFT JOIN stocks ON stocks.product_id = products.id")

	if term := strings.TrimSpace(searchTerm); term != "" {
		query = query.Where("LOWER(products.name) LIKE ? ESCAPE '!'", likePrefix(term))
	}

	var listings []StockListing
	if err := query.Order("products.id").Scan(&listings).Error; err != nil {
		return nil, fmt.Errorf("list stock listings: %w", err)
	}
	return listings, nil
}

func (r *StocksRepository) GetStockByProductID(ctx context.Context, productID uint) (*Stock, error) {
	var stock Stock
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStockNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// UpsertStock creates the stock row for the product or overwrites its quantity.
func (r *StocksRepository) UpsertStock(ctx context.Context, productID uint, quantity int) error {
	stock := Stock{ProductID: productID, Quantity: quantity}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(&stock).Error
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
