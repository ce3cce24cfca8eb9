package models

// All lists every persisted entity, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&Category{},
		&Product{},
		&Stock{},
		&OrderStatus{},
		&Order{},
		&OrderDetail{},
		&Role{},
		&User{},
	}
}
