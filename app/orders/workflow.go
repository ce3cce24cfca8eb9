// Package orders implements the admin order workflow: listing orders,
// reassigning their status and toggling payment.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mytheresa/shop-admin/app/apperr"
	"github.com/mytheresa/shop-admin/app/events"
	"github.com/mytheresa/shop-admin/app/logging"
	"github.com/mytheresa/shop-admin/models"
)

type OrderStore interface {
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, statusID uint) error
	TogglePaid(ctx context.Context, orderID uint) (bool, error)
}

type StatusStore interface {
	GetOrderStatuses(ctx context.Context) ([]models.OrderStatus, error)
	GetOrderStatusByID(ctx context.Context, id uint) (*models.OrderStatus, error)
}

// Observer receives workflow counters. *metrics.Metrics satisfies it.
type Observer interface {
	ObserveStatusChange(statusName string)
	ObservePaymentToggle()
}

type nopObserver struct{}

func (nopObserver) ObserveStatusChange(string) {}
func (nopObserver) ObservePaymentToggle()      {}

// StatusOption is one entry of the status drop-down.
type StatusOption struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

type Workflow struct {
	orders    OrderStore
	statuses  StatusStore
	publisher events.Publisher
	observer  Observer
	now       func() time.Time
}

// NewWorkflow wires the workflow. A nil publisher or observer disables that side effect.
func NewWorkflow(orders OrderStore, statuses StatusStore, publisher events.Publisher, observer Observer) *Workflow {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Workflow{
		orders:    orders,
		statuses:  statuses,
		publisher: publisher,
		observer:  observer,
		now:       time.Now,
	}
}

func (w *Workflow) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := w.orders.GetAllOrders(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return orders, nil
}

func (w *Workflow) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	order, err := w.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Order with id: %d not found", id), err)
		}
		return nil, apperr.Persistence(err)
	}
	return order, nil
}

// ChangeOrderStatus points the order at statusID. Any status may follow any other.
// Reapplying the current status is a no-op.
func (w *Workflow) ChangeOrderStatus(ctx context.Context, orderID, statusID int) (*models.OrderStatus, error) {
	if orderID <= 0 || statusID <= 0 {
		return nil, apperr.Validation("Invalid data")
	}

	order, err := w.orders.GetOrderByID(ctx, uint(orderID))
	if err != nil {
		return nil, lookupError(err, "Order does not exist")
	}
	status, err := w.statuses.GetOrderStatusByID(ctx, uint(statusID))
	if err != nil {
		return nil, lookupError(err, "Order status does not exist")
	}

	if order.OrderStatusID == status.ID {
		return status, nil
	}
	if err := w.orders.UpdateOrderStatus(ctx, order.ID, status.ID); err != nil {
		return nil, apperr.Persistence(err)
	}

	logging.Info(ctx, "order status changed",
		"order_id", order.ID,
		"from_status_id", order.OrderStatusID,
		"to_status_id", status.ID,
	)
	w.observer.ObserveStatusChange(status.StatusName)
	w.publish(ctx, events.OrderEvent{
		Type:          events.TypeOrderStatusChanged,
		OrderID:       order.ID,
		OrderStatusID: status.ID,
		StatusName:    status.StatusName,
	})
	return status, nil
}

// TogglePaymentStatus flips the paid flag and returns its new value.
func (w *Workflow) TogglePaymentStatus(ctx context.Context, orderID uint) (bool, error) {
	if orderID == 0 {
		return false, apperr.Validation("Invalid data")
	}

	paid, err := w.orders.TogglePaid(ctx, orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, apperr.NotFound(fmt.Sprintf("Order with id: %d not found", orderID), err)
		}
		return false, apperr.Persistence(err)
	}

	logging.Info(ctx, "order payment toggled", "order_id", orderID, "is_paid", paid)
	w.observer.ObservePaymentToggle()
	w.publish(ctx, events.OrderEvent{
		Type:    events.TypeOrderPaymentToggled,
		OrderID: orderID,
		IsPaid:  &paid,
	})
	return paid, nil
}

// StatusOptions lists every status with selectedID marked.
func (w *Workflow) StatusOptions(ctx context.Context, selectedID uint) ([]StatusOption, error) {
	statuses, err := w.statuses.GetOrderStatuses(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	options := make([]StatusOption, len(statuses))
	for i, s := range statuses {
		options[i] = StatusOption{
			ID:       s.ID,
			Name:     s.StatusName,
			Selected: s.ID == selectedID,
		}
	}
	return options, nil
}

// publish logs failures only; the change is already committed.
func (w *Workflow) publish(ctx context.Context, event events.OrderEvent) {
	event.OccurredAt = w.now().UTC()
	if err := w.publisher.PublishOrderEvent(ctx, event); err != nil {
		logging.Warn(ctx, "failed to publish order event",
			"type", event.Type,
			"order_id", event.OrderID,
			"error", err,
		)
	}
}

func lookupError(err error, message string) error {
	if errors.Is(err, models.ErrNotFound) {
		return apperr.Validation(message)
	}
	return apperr.Persistence(err)
}
