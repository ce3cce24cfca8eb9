package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCategory(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	serums := createCategory(t, db, "Serum")
	empty := createCategory(t, db, "Empty")
	createProduct(t, db, "Vitamin C Serum", serums.ID, "250.00")
	repo := NewCategoriesRepository(db)

	// Act
	errInUse := repo.DeleteCategory(context.Background(), serums.ID)
	errEmpty := repo.DeleteCategory(context.Background(), empty.ID)
	errMissing := repo.DeleteCategory(context.Background(), 999)

	// Assert
	assert.Error(t, errInUse, "referenced category is restricted")
	assert.NotErrorIs(t, errInUse, ErrNotFound)
	assert.NoError(t, errEmpty)
	assert.ErrorIs(t, errMissing, ErrCategoryNotFound)

	remaining, err := repo.GetAllCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Serum", remaining[0].Name)
}

func TestCountProductsInCategory(t *testing.T) {
	db := newTestDB(t)
	serums := createCategory(t, db, "Serum")
	masks := createCategory(t, db, "Mask")
	createProduct(t, db, "Vitamin C Serum", serums.ID, "250.00")
	createProduct(t, db, "Retinol Serum", serums.ID, "12.50")
	repo := NewCategoriesRepository(db)

	inSerums, err := repo.CountProductsInCategory(context.Background(), serums.ID)
	require.NoError(t, err)
	inMasks, err := repo.CountProductsInCategory(context.Background(), masks.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), inSerums)
	assert.Zero(t, inMasks)
}

func TestUpdateCategory(t *testing.T) {
	db := newTestDB(t)
	category := createCategory(t, db, "Serum")
	repo := NewCategoriesRepository(db)

	require.NoError(t, repo.UpdateCategory(context.Background(), &Category{ID: category.ID, Name: "Serums"}))
	updated, err := repo.GetCategoryByID(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Serums", updated.Name)

	err = repo.UpdateCategory(context.Background(), &Category{ID: 999, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
