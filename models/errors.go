package models

import (
	"fmt"

	"github.com/mytheresa/shop-admin/app/apperr"
)

// ErrNotFound is wrapped by every "row not found" error returned from this package.
var ErrNotFound = apperr.ErrNotFound

var (
	ErrProductNotFound     = fmt.Errorf("product %w", ErrNotFound)
	ErrCategoryNotFound    = fmt.Errorf("category %w", ErrNotFound)
	ErrOrderNotFound       = fmt.Errorf("order %w", ErrNotFound)
	ErrOrderStatusNotFound = fmt.Errorf("order status %w", ErrNotFound)
	ErrStockNotFound       = fmt.Errorf("stock %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
)
