package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/mytheresa/shop-admin/app/apperr"
	"github.com/mytheresa/shop-admin/app/events"
	"github.com/mytheresa/shop-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Repositories ---

type MockOrderRepo struct {
	Orders      map[uint]*models.Order
	Err         error
	UpdateErr   error
	UpdateCalls int
	ToggleCalls int
}

func (m *MockOrderRepo) GetAllOrders(_ context.Context) ([]models.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Order
	for _, o := range m.Orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *MockOrderRepo) GetOrderByID(_ context.Context, id uint) (*models.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	o, ok := m.Orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *MockOrderRepo) UpdateOrderStatus(_ context.Context, orderID, statusID uint) error {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Orders[orderID].OrderStatusID = statusID
	return nil
}

func (m *MockOrderRepo) TogglePaid(_ context.Context, orderID uint) (bool, error) {
	m.ToggleCalls++
	if m.UpdateErr != nil {
		return false, m.UpdateErr
	}
	o, ok := m.Orders[orderID]
	if !ok {
		return false, models.ErrOrderNotFound
	}
	o.IsPaid = !o.IsPaid
	return o.IsPaid, nil
}

type MockStatusRepo struct {
	Statuses []models.OrderStatus
	Err      error
}

func (m *MockStatusRepo) GetOrderStatuses(_ context.Context) ([]models.OrderStatus, error) {
	return m.Statuses, m.Err
}

func (m *MockStatusRepo) GetOrderStatusByID(_ context.Context, id uint) (*models.OrderStatus, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, s := range m.Statuses {
		if s.ID == id {
			status := s
			return &status, nil
		}
	}
	return nil, models.ErrOrderStatusNotFound
}

type MockPublisher struct {
	Events []events.OrderEvent
	Err    error
}

func (m *MockPublisher) PublishOrderEvent(_ context.Context, event events.OrderEvent) error {
	m.Events = append(m.Events, event)
	return m.Err
}

type MockObserver struct {
	StatusChanges  []string
	PaymentToggles int
}

func (m *MockObserver) ObserveStatusChange(name string) { m.StatusChanges = append(m.StatusChanges, name) }
func (m *MockObserver) ObservePaymentToggle()           { m.PaymentToggles++ }

// --- Helpers ---

func defaultStatuses() []models.OrderStatus {
	return []models.OrderStatus{
		{ID: 1, StatusID: 1, StatusName: "Pending"},
		{ID: 2, StatusID: 2, StatusName: "Approved"},
		{ID: 3, StatusID: 3, StatusName: "Shipped"},
		{ID: 4, StatusID: 4, StatusName: "Delivered"},
		{ID: 5, StatusID: 5, StatusName: "Cancelled"},
	}
}

func newOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{Orders: map[uint]*models.Order{
		1: {ID: 1, OrderStatusID: 1},
		2: {ID: 2, OrderStatusID: 3, IsPaid: true},
	}}
}

// --- Tests ---

func TestChangeOrderStatus(t *testing.T) {
	testCases := []struct {
		name          string
		orderID       int
		statusID      int
		repoSetup     func() *MockOrderRepo
		expectedKind  apperr.Kind
		expectErr     bool
		expectedState uint
	}{
		{name: "Pending to Shipped", orderID: 1, statusID: 3, repoSetup: newOrderRepo, expectedState: 3},
		{name: "Backwards transition allowed", orderID: 2, statusID: 1, repoSetup: newOrderRepo, expectedState: 1},
		{name: "Zero order id", orderID: 0, statusID: 2, repoSetup: newOrderRepo, expectErr: true, expectedKind: apperr.KindValidation},
		{name: "Negative status id", orderID: 1, statusID: -1, repoSetup: newOrderRepo, expectErr: true, expectedKind: apperr.KindValidation},
		{name: "Unknown order", orderID: 99, statusID: 2, repoSetup: newOrderRepo, expectErr: true, expectedKind: apperr.KindValidation},
		{name: "Unknown status", orderID: 1, statusID: 42, repoSetup: newOrderRepo, expectErr: true, expectedKind: apperr.KindValidation},
		{
			name:     "Repository failure",
			orderID:  1,
			statusID: 2,
			repoSetup: func() *MockOrderRepo {
				repo := newOrderRepo()
				repo.UpdateErr = errors.New("db down")
				return repo
			},
			expectErr:    true,
			expectedKind: apperr.KindPersistence,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			repo := tc.repoSetup()
			publisher := &MockPublisher{}
			workflow := NewWorkflow(repo, &MockStatusRepo{Statuses: defaultStatuses()}, publisher, nil)

			// Act
			status, err := workflow.ChangeOrderStatus(context.Background(), tc.orderID, tc.statusID)

			// Assert
			if tc.expectErr {
				require.Error(t, err)
				assert.Equal(t, tc.expectedKind, apperr.KindOf(err))
				assert.Empty(t, publisher.Events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedState, status.ID)
			assert.Equal(t, tc.expectedState, repo.Orders[uint(tc.orderID)].OrderStatusID)
			require.Len(t, publisher.Events, 1)
			assert.Equal(t, events.TypeOrderStatusChanged, publisher.Events[0].Type)
			assert.Equal(t, status.StatusName, publisher.Events[0].StatusName)
		})
	}
}

func TestChangeOrderStatusIsIdempotent(t *testing.T) {
	// Arrange
	repo := newOrderRepo()
	observer := &MockObserver{}
	workflow := NewWorkflow(repo, &MockStatusRepo{Statuses: defaultStatuses()}, nil, observer)

	// Act
	first, err1 := workflow.ChangeOrderStatus(context.Background(), 1, 4)
	second, err2 := workflow.ChangeOrderStatus(context.Background(), 1, 4)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, uint(4), repo.Orders[1].OrderStatusID)
	assert.Equal(t, 1, repo.UpdateCalls)
	assert.Equal(t, []string{"Delivered"}, observer.StatusChanges)
}

func TestChangeOrderStatusIgnoresPublishFailure(t *testing.T) {
	repo := newOrderRepo()
	publisher := &MockPublisher{Err: errors.New("broker unavailable")}
	workflow := NewWorkflow(repo, &MockStatusRepo{Statuses: defaultStatuses()}, publisher, nil)

	_, err := workflow.ChangeOrderStatus(context.Background(), 1, 2)

	assert.NoError(t, err)
	assert.Equal(t, uint(2), repo.Orders[1].OrderStatusID)
	assert.Len(t, publisher.Events, 1)
}

func TestTogglePaymentStatus(t *testing.T) {
	t.Run("flips the flag both ways", func(t *testing.T) {
		repo := newOrderRepo()
		publisher := &MockPublisher{}
		observer := &MockObserver{}
		workflow := NewWorkflow(repo, &MockStatusRepo{}, publisher, observer)

		paid, err := workflow.TogglePaymentStatus(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, paid)

		paid, err = workflow.TogglePaymentStatus(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, paid)

		assert.Equal(t, 2, observer.PaymentToggles)
		require.Len(t, publisher.Events, 2)
		require.NotNil(t, publisher.Events[0].IsPaid)
		assert.True(t, *publisher.Events[0].IsPaid)
		assert.Equal(t, events.TypeOrderPaymentToggled, publisher.Events[1].Type)
	})

	t.Run("unknown order is reported", func(t *testing.T) {
		workflow := NewWorkflow(newOrderRepo(), &MockStatusRepo{}, nil, nil)

		_, err := workflow.TogglePaymentStatus(context.Background(), 77)

		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("persistence failure is reported", func(t *testing.T) {
		repo := newOrderRepo()
		repo.UpdateErr = errors.New("db down")
		workflow := NewWorkflow(repo, &MockStatusRepo{}, nil, nil)

		_, err := workflow.TogglePaymentStatus(context.Background(), 1)

		assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))
		assert.Equal(t, "Something went wrong", apperr.Message(err))
	})
}

func TestStatusOptions(t *testing.T) {
	workflow := NewWorkflow(newOrderRepo(), &MockStatusRepo{Statuses: defaultStatuses()}, nil, nil)

	options, err := workflow.StatusOptions(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, options, 5)
	for _, o := range options {
		assert.Equal(t, o.ID == 3, o.Selected, o.Name)
	}
}
