package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mytheresa/shop-admin/app/apperr"
	"github.com/mytheresa/shop-admin/app/logging"
	"github.com/mytheresa/shop-admin/app/web"
	"github.com/mytheresa/shop-admin/models"
)

const allOrdersPath = "/AdminOperations/AllOrders"

type OrderService interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*models.Order, error)
	ChangeOrderStatus(ctx context.Context, orderID, statusID int) (*models.OrderStatus, error)
	TogglePaymentStatus(ctx context.Context, orderID uint) (bool, error)
	StatusOptions(ctx context.Context, selectedID uint) ([]StatusOption, error)
}

type OrderLine struct {
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
}

type Order struct {
	ID            uint        `json:"id"`
	CreatedAt     time.Time   `json:"createdAt"`
	UserID        string      `json:"userId"`
	IsPaid        bool        `json:"isPaid"`
	OrderStatusID uint        `json:"orderStatusId"`
	StatusName    string      `json:"statusName"`
	Total         string      `json:"total"`
	Lines         []OrderLine `json:"lines"`
}

type AllOrdersResponse struct {
	Orders        []Order        `json:"orders"`
	OrderStatuses []StatusOption `json:"orderStatuses"`
}

// UpdateOrderStatusModel backs the status form in both directions.
type UpdateOrderStatusModel struct {
	OrderID         int            `json:"orderId" form:"orderId" validate:"gt=0"`
	OrderStatusID   int            `json:"orderStatusId" form:"orderStatusId" validate:"gt=0"`
	OrderStatusList []StatusOption `json:"orderStatusList,omitempty" form:"-"`
}

type UpdateStatusResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	NewStatus   string `json:"newStatus,omitempty"`
	NewStatusID int    `json:"newStatusId,omitempty"`
}

type OrderHandler struct {
	service OrderService
}

func NewOrderHandler(s OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) AllOrders(r *http.Request) web.Result {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		return web.FromError(r.Context(), err, nil)
	}
	options, err := h.service.StatusOptions(r.Context(), 0)
	if err != nil {
		return web.FromError(r.Context(), err, nil)
	}

	response := AllOrdersResponse{
		Orders:        make([]Order, len(orders)),
		OrderStatuses: options,
	}
	for i, o := range orders {
		response.Orders[i] = toOrder(o)
	}
	return web.OK(response)
}

func (h *OrderHandler) TogglePaymentStatus(r *http.Request) web.Result {
	ctx := r.Context()
	orderID := web.QueryUint(r, "orderId")

	paid, err := h.service.TogglePaymentStatus(ctx, orderID)
	if err != nil {
		logging.Error(ctx, "failed to toggle payment status", "order_id", orderID, "error", err)
		return web.RedirectTo(allOrdersPath, apperr.Message(err))
	}
	if paid {
		return web.RedirectTo(allOrdersPath, "Order marked as paid")
	}
	return web.RedirectTo(allOrdersPath, "Order marked as unpaid")
}

func (h *OrderHandler) UpdateOrderStatusForm(r *http.Request) web.Result {
	ctx := r.Context()
	orderID := web.QueryUint(r, "orderId")

	order, err := h.service.GetOrderByID(ctx, orderID)
	if err != nil {
		return web.FromError(ctx, err, nil)
	}
	options, err := h.service.StatusOptions(ctx, order.OrderStatusID)
	if err != nil {
		return web.FromError(ctx, err, nil)
	}

	return web.OK(UpdateOrderStatusModel{
		OrderID:         int(order.ID),
		OrderStatusID:   int(order.OrderStatusID),
		OrderStatusList: options,
	})
}

func (h *OrderHandler) UpdateOrderStatus(r *http.Request) web.Result {
	ctx := r.Context()
	data := UpdateOrderStatusModel{
		OrderID:       formInt(r, "orderId"),
		OrderStatusID: formInt(r, "orderStatusId"),
	}

	if errs := web.Validate(data); errs != nil {
		options, err := h.service.StatusOptions(ctx, uint(max(data.OrderStatusID, 0)))
		if err != nil {
			return web.FromError(ctx, err, data)
		}
		data.OrderStatusList = options
		return web.Invalid(data, errs)
	}

	back := fmt.Sprintf("/AdminOperations/UpdateOrderStatus?orderId=%d", data.OrderID)
	if _, err := h.service.ChangeOrderStatus(ctx, data.OrderID, data.OrderStatusID); err != nil {
		logging.Error(ctx, "failed to update order status", "order_id", data.OrderID, "error", err)
		return web.RedirectTo(back, "Something went wrong")
	}
	return web.RedirectTo(back, "Updated successfully")
}

// UpdateOrderStatusAjax always answers 200; success is carried in the body.
func (h *OrderHandler) UpdateOrderStatusAjax(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var data UpdateOrderStatusModel
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data.OrderID <= 0 || data.OrderStatusID <= 0 {
		web.WriteJSON(w, http.StatusOK, UpdateStatusResponse{Success: false, Message: "Invalid data"})
		return
	}

	status, err := h.service.ChangeOrderStatus(ctx, data.OrderID, data.OrderStatusID)
	if err != nil {
		logging.Error(ctx, "failed to update order status", "order_id", data.OrderID, "error", err)
		message := "Something went wrong"
		if apperr.KindOf(err) != apperr.KindPersistence {
			message += ": " + apperr.Message(err)
		}
		web.WriteJSON(w, http.StatusOK, UpdateStatusResponse{Success: false, Message: message})
		return
	}

	newStatus := "Unknown"
	if status != nil && status.StatusName != "" {
		newStatus = status.StatusName
	}
	web.WriteJSON(w, http.StatusOK, UpdateStatusResponse{
		Success:     true,
		Message:     "Status updated successfully",
		NewStatus:   newStatus,
		NewStatusID: data.OrderStatusID,
	})
}

func toOrder(o models.Order) Order {
	lines := make([]OrderLine, len(o.OrderDetails))
	for i, d := range o.OrderDetails {
		lines[i] = OrderLine{
			ProductID:   d.ProductID,
			ProductName: d.Product.Name,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice.StringFixed(2),
		}
	}
	return Order{
		ID:            o.ID,
		CreatedAt:     o.CreatedAt,
		UserID:        o.UserID,
		IsPaid:        o.IsPaid,
		OrderStatusID: o.OrderStatusID,
		StatusName:    o.OrderStatus.StatusName,
		Total:         o.Total().StringFixed(2),
		Lines:         lines,
	}
}

func formInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return 0
	}
	return v
}
