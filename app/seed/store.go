package seed

import (
	"context"

	"github.com/mytheresa/shop-admin/app/database"
	"github.com/mytheresa/shop-admin/models"
	"gorm.io/gorm"
)

var _ Store = (*GormStore)(nil)

// GormStore backs the seeder with the repositories.
type GormStore struct {
	*models.UsersRepository
	*models.CategoriesRepository
	*models.ProductsRepository
	*models.OrderStatusesRepository
	conn *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		UsersRepository:         models.NewUsersRepository(db),
		CategoriesRepository:    models.NewCategoriesRepository(db),
		ProductsRepository:      models.NewProductsRepository(db),
		OrderStatusesRepository: models.NewOrderStatusesRepository(db),
		conn:                    db,
	}
}

func (s *GormStore) Migrate(ctx context.Context) error {
	return database.Migrate(ctx, s.conn)
}
