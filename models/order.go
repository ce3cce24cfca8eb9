package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is created by checkout; the admin workflow only changes its status and payment flag.
type Order struct {
	ID            uint          `gorm:"primaryKey"`
	CreatedAt     time.Time     `gorm:"index"`
	UserID        string        `gorm:"size:64;index"`
	IsPaid        bool          `gorm:"not null;default:false"`
	OrderStatusID uint          `gorm:"not null;index"`
	OrderStatus   OrderStatus   `gorm:"foreignKey:OrderStatusID"`
	OrderDetails  []OrderDetail `gorm:"foreignKey:OrderID"`
}

func (o *Order) TableName() string {
	return "orders"
}

// Total sums quantity times unit price over the order details, paid or not.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, d := range o.OrderDetails {
		total = total.Add(d.LineTotal())
	}
	return total
}

// OrderDetail is one line of an order. UnitPrice is the price at purchase time.
type OrderDetail struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null;index"`
	Product   Product         `gorm:"foreignKey:ProductID"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (d *OrderDetail) TableName() string {
	return "order_details"
}

// LineTotal returns Quantity x UnitPrice.
func (d OrderDetail) LineTotal() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}
