package models

// Category groups products in the catalog.
// Deleting a category is refused while products still reference it.
type Category struct {
	ID       uint      `gorm:"primaryKey"`
	Name     string    `gorm:"size:60;not null"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (c *Category) TableName() string {
	return "categories"
}
