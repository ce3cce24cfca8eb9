package seed

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/mytheresa/shop-admin/app/identity"
	"github.com/mytheresa/shop-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory Store ---

type MemoryStore struct {
	Roles      []models.Role
	Users      []*models.User
	Categories []models.Category
	Products   []models.Product
	Statuses   []models.OrderStatus

	MigrateErr    error
	CategoriesErr error
	RoleErrs      map[string]error
	Creates       int
}

func (m *MemoryStore) Migrate(context.Context) error { return m.MigrateErr }

func (m *MemoryStore) EnsureRole(_ context.Context, name string) (*models.Role, error) {
	if err := m.RoleErrs[name]; err != nil {
		return nil, err
	}
	for i := range m.Roles {
		if models.NormalizeName(m.Roles[i].Name) == models.NormalizeName(name) {
			return &m.Roles[i], nil
		}
	}
	m.Creates++
	m.Roles = append(m.Roles, models.Role{ID: uint(len(m.Roles) + 1), Name: name})
	return &m.Roles[len(m.Roles)-1], nil
}

func (m *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.Creates++
	user.ID = uint(len(m.Users) + 1)
	m.Users = append(m.Users, user)
	return nil
}

func (m *MemoryStore) AddUserToRole(_ context.Context, user *models.User, role *models.Role) error {
	user.Roles = append(user.Roles, *role)
	return nil
}

func (m *MemoryStore) CountCategories(context.Context) (int64, error) {
	return int64(len(m.Categories)), nil
}

func (m *MemoryStore) GetAllCategories(context.Context) ([]models.Category, error) {
	return m.Categories, nil
}

func (m *MemoryStore) CreateCategories(_ context.Context, categories []models.Category) error {
	if m.CategoriesErr != nil {
		return m.CategoriesErr
	}
	m.Creates++
	for _, c := range categories {
		c.ID = uint(len(m.Categories) + 1)
		m.Categories = append(m.Categories, c)
	}
	return nil
}

func (m *MemoryStore) CountProducts(context.Context) (int64, error) {
	return int64(len(m.Products)), nil
}

func (m *MemoryStore) CreateProducts(_ context.Context, products []models.Product) error {
	m.Creates++
	for _, p := range products {
		p.ID = uint(len(m.Products) + 1)
		m.Products = append(m.Products, p)
	}
	return nil
}

func (m *MemoryStore) GetOrderStatuses(context.Context) ([]models.OrderStatus, error) {
	out := append([]models.OrderStatus(nil), m.Statuses...)
	sort.Slice(out, func(i, j int) bool { return out[i].StatusID < out[j].StatusID })
	return out, nil
}

func (m *MemoryStore) CreateOrderStatuses(_ context.Context, statuses []models.OrderStatus) error {
	m.Creates++
	for _, s := range statuses {
		s.ID = uint(len(m.Statuses) + 1)
		m.Statuses = append(m.Statuses, s)
	}
	return nil
}

// --- Helpers ---

var testConfig = Config{AdminEmail: "admin@gmail.com", AdminPassword: "Admin@123"}

func statusIDs(statuses []models.OrderStatus) map[string]int {
	out := make(map[string]int, len(statuses))
	for _, s := range statuses {
		out[s.StatusName] = s.StatusID
	}
	return out
}

// --- Tests ---

func TestSeedDefaultDataOnEmptyStore(t *testing.T) {
	// Arrange
	store := &MemoryStore{}

	// Act
	NewSeeder(store, testConfig).SeedDefaultData(context.Background())

	// Assert
	assert.Len(t, store.Categories, 5)
	require.Len(t, store.Products, 5)
	assert.Equal(t, map[string]int{
		"Pending": 1, "Approved": 2, "Shipped": 3, "Delivered": 4, "Cancelled": 5,
	}, statusIDs(store.Statuses))

	require.Len(t, store.Users, 1)
	admin := store.Users[0]
	assert.True(t, admin.HasRole(models.RoleAdmin))
	assert.True(t, admin.EmailConfirmed)
	assert.True(t, identity.CheckPassword(admin.PasswordHash, "Admin@123"))
	assert.Len(t, store.Roles, 2)

	// Products point at their categories by name
	categoryNames := map[uint]string{}
	for _, c := range store.Categories {
		categoryNames[c.ID] = c.Name
	}
	assert.Equal(t, "Gentle Cleanser", store.Products[0].Name)
	assert.Equal(t, "Cleanser", categoryNames[store.Products[0].CategoryID])
	assert.Equal(t, "Mask", categoryNames[store.Products[4].CategoryID])
	assert.Equal(t, "250", store.Products[2].Price.String())
}

func TestSeedDefaultDataIsIdempotent(t *testing.T) {
	store := &MemoryStore{}
	seeder := NewSeeder(store, testConfig)
	seeder.SeedDefaultData(context.Background())
	createsAfterFirstRun := store.Creates
	before := statusIDs(store.Statuses)

	seeder.SeedDefaultData(context.Background())

	assert.Equal(t, createsAfterFirstRun, store.Creates, "second run must not create anything")
	assert.Equal(t, before, statusIDs(store.Statuses))
	assert.Len(t, store.Users, 1)
	assert.Len(t, store.Users[0].Roles, 1)
}

func TestSeedOrderStatuses(t *testing.T) {
	testCases := []struct {
		name     string
		existing []models.OrderStatus
		expected map[string]int
	}{
		{
			name:     "Existing names keep their ids regardless of case",
			existing: []models.OrderStatus{{StatusID: 9, StatusName: "pending"}, {StatusID: 2, StatusName: "APPROVED"}},
			expected: map[string]int{"pending": 9, "APPROVED": 2, "Shipped": 3, "Delivered": 4, "Cancelled": 5},
		},
		{
			name:     "Taken preferred id moves past the highest id",
			existing: []models.OrderStatus{{StatusID: 1, StatusName: "On Hold"}, {StatusID: 3, StatusName: "Refunded"}},
			expected: map[string]int{"On Hold": 1, "Refunded": 3, "Pending": 4, "Approved": 2, "Shipped": 5, "Delivered": 6, "Cancelled": 7},
		},
		{
			name: "All present",
			existing: []models.OrderStatus{
				{StatusID: 1, StatusName: "Pending"}, {StatusID: 2, StatusName: "Approved"}, {StatusID: 3, StatusName: "Shipped"},
				{StatusID: 4, StatusName: "Delivered"}, {StatusID: 5, StatusName: "Cancelled"},
			},
			expected: map[string]int{"Pending": 1, "Approved": 2, "Shipped": 3, "Delivered": 4, "Cancelled": 5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			store := &MemoryStore{Statuses: tc.existing}

			// Act
			err := NewSeeder(store, testConfig).seedOrderStatuses(context.Background())

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, statusIDs(store.Statuses))
		})
	}
}

func TestSeedDefaultDataContinuesAfterFailures(t *testing.T) {
	store := &MemoryStore{
		MigrateErr:    errors.New("migrate failed"),
		CategoriesErr: errors.New("insert failed"),
	}

	assert.NotPanics(t, func() {
		NewSeeder(store, testConfig).SeedDefaultData(context.Background())
	})

	assert.Empty(t, store.Categories)
	assert.Empty(t, store.Products, "products need their categories")
	assert.Len(t, store.Statuses, 5)
	assert.Len(t, store.Users, 1)
}

func TestSeedExistingAdminWithoutRole(t *testing.T) {
	store := &MemoryStore{Users: []*models.User{{ID: 1, Email: "admin@gmail.com", PasswordHash: "x"}}}

	NewSeeder(store, testConfig).SeedDefaultData(context.Background())

	require.Len(t, store.Users, 1)
	assert.True(t, store.Users[0].HasRole(models.RoleAdmin))
	assert.Equal(t, "x", store.Users[0].PasswordHash, "existing password is kept")
}

func TestSeedRolesAreIndependent(t *testing.T) {
	// Arrange
	store := &MemoryStore{RoleErrs: map[string]error{models.RoleAdmin: errors.New("insert failed")}}

	// Act
	NewSeeder(store, testConfig).SeedDefaultData(context.Background())

	// Assert
	require.Len(t, store.Roles, 1)
	assert.Equal(t, models.RoleUser, store.Roles[0].Name)
	assert.Empty(t, store.Users, "admin account needs the Admin role")
	assert.Len(t, store.Categories, 5)
}
