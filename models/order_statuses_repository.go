package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type OrderStatusesRepository struct {
	db *gorm.DB
}

func NewOrderStatusesRepository(db *gorm.DB) *OrderStatusesRepository {
	return &OrderStatusesRepository{db: db}
}

func (r *OrderStatusesRepository) GetOrderStatuses(ctx context.Context) ([]OrderStatus, error) {
	var statuses []OrderStatus
	if err := r.db.WithContext(ctx).Order("status_id").Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("list order statuses: %w", err)
	}
	return statuses, nil
}

func (r *OrderStatusesRepository) GetOrderStatusByID(ctx context.Context, id uint) (*OrderStatus, error) {
	var status OrderStatus
	if err := r.db.WithContext(ctx).First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderStatusNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (r *OrderStatusesRepository) CreateOrderStatuses(ctx context.Context, statuses []OrderStatus) error {
	if len(statuses) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&statuses).Error; err != nil {
		return fmt.Errorf("create order statuses: %w", err)
	}
	return nil
}
