// Package seed populates the reference data the admin area needs on startup.
// Every step is idempotent and no failure stops the process.
package seed

import (
	"context"
	"errors"

	"github.com/mytheresa/shop-admin/app/identity"
	"github.com/mytheresa/shop-admin/app/logging"
	"github.com/mytheresa/shop-admin/models"
	"github.com/shopspring/decimal"
)

type Store interface {
	Migrate(ctx context.Context) error

	EnsureRole(ctx context.Context, name string) (*models.Role, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	AddUserToRole(ctx context.Context, user *models.User, role *models.Role) error

	CountCategories(ctx context.Context) (int64, error)
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategories(ctx context.Context, categories []models.Category) error

	CountProducts(ctx context.Context) (int64, error)
	CreateProducts(ctx context.Context, products []models.Product) error

	GetOrderStatuses(ctx context.Context) ([]models.OrderStatus, error)
	CreateOrderStatuses(ctx context.Context, statuses []models.OrderStatus) error
}

type Config struct {
	AdminEmail    string
	AdminPassword string
}

var defaultCategories = []string{"Cleanser", "Moisturizer", "Serum", "Sunscreen", "Mask"}

var defaultProducts = []struct {
	Name     string
	Price    int64
	Category string
}{
	{"Gentle Cleanser", 120, "Cleanser"},
	{"Hydrating Moisturizer", 180, "Moisturizer"},
	{"Vitamin C Serum", 250, "Serum"},
	{"SPF 50 Sunscreen", 200, "Sunscreen"},
	{"Clay Face Mask", 150, "Mask"},
}

// RequiredStatuses lists the order statuses with their preferred StatusID, in seeding order.
var RequiredStatuses = []models.OrderStatus{
	{StatusID: 1, StatusName: "Pending"},
	{StatusID: 2, StatusName: "Approved"},
	{StatusID: 3, StatusName: "Shipped"},
	{StatusID: 4, StatusName: "Delivered"},
	{StatusID: 5, StatusName: "Cancelled"},
}

type Seeder struct {
	store Store
	cfg   Config
}

func NewSeeder(store Store, cfg Config) *Seeder {
	return &Seeder{store: store, cfg: cfg}
}

// SeedDefaultData runs every seeding step. Failures are logged and the next step runs.
func (s *Seeder) SeedDefaultData(ctx context.Context) {
	if err := s.store.Migrate(ctx); err != nil {
		logging.Error(ctx, "seed: migrate failed", "error", err)
	}
	if err := s.seedRoles(ctx); err != nil {
		logging.Error(ctx, "seed: roles failed", "error", err)
	}
	if err := s.seedAdmin(ctx); err != nil {
		logging.Error(ctx, "seed: admin account failed", "error", err)
	}
	if err := s.seedCategories(ctx); err != nil {
		logging.Error(ctx, "seed: categories failed", "error", err)
	}
	if err := s.seedProducts(ctx); err != nil {
		logging.Error(ctx, "seed: products failed", "error", err)
	}
	if err := s.seedOrderStatuses(ctx); err != nil {
		logging.Error(ctx, "seed: order statuses failed", "error", err)
	}
}

// seedRoles ensures each role on its own so one failure does not skip the others.
func (s *Seeder) seedRoles(ctx context.Context) error {
	var errs []error
	for _, name := range []string{models.RoleAdmin, models.RoleUser} {
		if _, err := s.store.EnsureRole(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	admin, err := s.store.EnsureRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}

	user, err := s.store.FindUserByEmail(ctx, s.cfg.AdminEmail)
	if err == nil {
		if !user.HasRole(models.RoleAdmin) {
			return s.store.AddUserToRole(ctx, user, admin)
		}
		return nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return err
	}

	hash, err := identity.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return err
	}
	user = &models.User{
		Email:          s.cfg.AdminEmail,
		PasswordHash:   hash,
		EmailConfirmed: true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return err
	}
	logging.Info(ctx, "seed: admin account created", "email", user.Email)
	return s.store.AddUserToRole(ctx, user, admin)
}

func (s *Seeder) seedCategories(ctx context.Context) error {
	count, err := s.store.CountCategories(ctx)
	if err != nil || count > 0 {
		return err
	}

	categories := make([]models.Category, len(defaultCategories))
	for i, name := range defaultCategories {
		categories[i] = models.Category{Name: name}
	}
	if err := s.store.CreateCategories(ctx, categories); err != nil {
		return err
	}
	logging.Info(ctx, "seed: categories created", "count", len(categories))
	return nil
}

// seedProducts links products to categories by name; a product whose category
// is missing is skipped.
func (s *Seeder) seedProducts(ctx context.Context) error {
	count, err := s.store.CountProducts(ctx)
	if err != nil || count > 0 {
		return err
	}

	categories, err := s.store.GetAllCategories(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]uint, len(categories))
	for _, c := range categories {
		byName[models.NormalizeName(c.Name)] = c.ID
	}

	products := make([]models.Product, 0, len(defaultProducts))
	for _, p := range defaultProducts {
		categoryID, ok := byName[models.NormalizeName(p.Category)]
		if !ok {
			logging.Warn(ctx, "seed: category missing for product", "product", p.Name, "category", p.Category)
			continue
		}
		products = append(products, models.Product{
			Name:       p.Name,
			Price:      decimal.NewFromInt(p.Price),
			CategoryID: categoryID,
		})
	}
	if len(products) == 0 {
		return nil
	}
	if err := s.store.CreateProducts(ctx, products); err != nil {
		return err
	}
	logging.Info(ctx, "seed: products created", "count", len(products))
	return nil
}

// seedOrderStatuses adds required statuses missing by name. A missing status takes its
// preferred StatusID when free, otherwise one past the highest id in use.
func (s *Seeder) seedOrderStatuses(ctx context.Context) error {
	existing, err := s.store.GetOrderStatuses(ctx)
	if err != nil {
		return err
	}

	usedIDs := make(map[int]bool, len(existing))
	names := make(map[string]bool, len(existing))
	maxID := 0
	for _, st := range existing {
		usedIDs[st.StatusID] = true
		names[models.NormalizeName(st.StatusName)] = true
		maxID = max(maxID, st.StatusID)
	}

	var missing []models.OrderStatus
	for _, required := range RequiredStatuses {
		if names[models.NormalizeName(required.StatusName)] {
			continue
		}
		id := required.StatusID
		if usedIDs[id] {
			id = maxID + 1
		}
		usedIDs[id] = true
		names[models.NormalizeName(required.StatusName)] = true
		maxID = max(maxID, id)
		missing = append(missing, models.OrderStatus{StatusID: id, StatusName: required.StatusName})
	}

	if len(missing) == 0 {
		return nil
	}
	if err := s.store.CreateOrderStatuses(ctx, missing); err != nil {
		return err
	}
	logging.Info(ctx, "seed: order statuses created", "count", len(missing))
	return nil
}
