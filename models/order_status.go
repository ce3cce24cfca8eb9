package models

import (
	"strings"

	"gorm.io/gorm"
)

// OrderStatus is a lookup row referenced by Order.OrderStatusID.
// NormalizedName keeps status names unique regardless of case.
type OrderStatus struct {
	ID             uint   `gorm:"primaryKey"`
	StatusID       int    `gorm:"uniqueIndex;not null"`
	StatusName     string `gorm:"size:40;not null"`
	NormalizedName string `gorm:"size:40;uniqueIndex;not null"`
}

func (s *OrderStatus) TableName() string {
	return "order_statuses"
}

func (s *OrderStatus) BeforeSave(tx *gorm.DB) error {
	s.NormalizedName = NormalizeName(s.StatusName)
	return nil
}

// NormalizeName is the case-insensitive key used for status and role names.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
