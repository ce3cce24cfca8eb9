package models

// LowStockThreshold is the quantity under which a stock row counts as low.
const LowStockThreshold = 10

// Stock holds the on-hand quantity of a single product.
type Stock struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"uniqueIndex;not null"`
	Quantity  int  `gorm:"not null;default:0;check:quantity >= 0"`
}

func (s *Stock) TableName() string {
	return "stocks"
}

// IsLow reports whether the quantity is under LowStockThreshold.
func (s Stock) IsLow() bool {
	return s.Quantity < LowStockThreshold
}

// StockListing joins a stock row with its product for the stock index page.
type StockListing struct {
	ProductID   uint
	ProductName string
	Quantity    int
}
