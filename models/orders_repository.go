package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// GetAllOrders loads every order with its status and detail lines, newest first.
func (r *OrdersRepository) GetAllOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).
		Preload("OrderStatus").
		Preload("OrderDetails").
		Preload("OrderDetails.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrdersWithDetails loads every order with its detail lines only.
func (r *OrdersRepository) GetOrdersWithDetails(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).Preload("OrderDetails").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders with details: %w", err)
	}
	return orders, nil
}

func (r *OrdersRepository) GetOrderByID(ctx context.Context, id uint) (*Order, error) {
	var order Order
	if err := r.db.WithContext(ctx).Preload("OrderStatus").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus points the order at another status row.
// Callers check that both rows exist.
func (r *OrdersRepository) UpdateOrderStatus(ctx context.Context, orderID, statusID uint) error {
	err := r.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ?", orderID).
		Update("order_status_id", statusID).Error
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// TogglePaid flips is_paid in a single statement and returns the new value.
func (r *OrdersRepository) TogglePaid(ctx context.Context, orderID uint) (bool, error) {
	var order Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Order{}).Where("id = ?", orderID).Update("is_paid", gorm.Expr("NOT is_paid"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return tx.Select("id", "is_paid").First(&order, orderID).Error
	})
	if err != nil {
		return false, err
	}
	return order.IsPaid, nil
}
