package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It belongs to exactly one category and has at most one stock row.
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"size:120;not null;index"`
	BrandName  string          `gorm:"size:120"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID uint            `gorm:"not null;index"`
	Category   Category        `gorm:"foreignKey:CategoryID"`
	Image      *string         `gorm:"size:255"`
	Stock      *Stock          `gorm:"foreignKey:ProductID"`
}

func (p *Product) TableName() string {
	return "products"
}

// ImageName returns the stored image filename or "" when the product has none.
func (p *Product) ImageName() string {
	if p.Image == nil {
		return ""
	}
	return *p.Image
}

// ProductListing is the joined read model used by listing pages.
// Quantity is 0 when the product has no stock row.
type ProductListing struct {
	ID           uint
	Name         string
	BrandName    string
	Price        decimal.Decimal
	CategoryID   uint
	CategoryName string
	Image        *string
	Quantity     int
}

// ProductFilters narrows product listings. Zero values disable a filter.
type ProductFilters struct {
	SearchTerm string
	CategoryID uint
}
