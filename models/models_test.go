package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- Helpers ---

// newTestDB opens a private in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func createCategory(t *testing.T, db *gorm.DB, name string) Category {
	t.Helper()
	c := Category{Name: name}
	require.NoError(t, db.Omit("Products").Create(&c).Error)
	return c
}

func createProduct(t *testing.T, db *gorm.DB, name string, categoryID uint, price string) Product {
	t.Helper()
	p := Product{Name: name, Price: decimal.RequireFromString(price), CategoryID: categoryID}
	require.NoError(t, db.Omit("Category", "Stock").Create(&p).Error)
	return p
}

func createStatus(t *testing.T, db *gorm.DB, statusID int, name string) OrderStatus {
	t.Helper()
	s := OrderStatus{StatusID: statusID, StatusName: name}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func createOrder(t *testing.T, db *gorm.DB, statusID uint, paid bool) Order {
	t.Helper()
	o := Order{UserID: "customer-1", OrderStatusID: statusID, IsPaid: paid}
	require.NoError(t, db.Omit("OrderStatus", "OrderDetails").Create(&o).Error)
	return o
}
