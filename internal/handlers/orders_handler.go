package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-backend/internal/events"
	"storefront-backend/internal/models"
	"storefront-backend/internal/store"
)

// OrdersHandler serves order endpoints.
type OrdersHandler struct {
	orders *store.OrderStore
	events *events.Publisher
	logger *logrus.Entry
}

func NewOrdersHandler(orders *store.OrderStore, publisher *events.Publisher, logger *logrus.Logger) *OrdersHandler {
	return &OrdersHandler{
		orders: orders,
		events: publisher,
		logger: logger.WithField("handler", "orders"),
	}
}

// GetOrders handles GET /api/orders, optionally filtered by
// ?user_id=<id>.
func (h *OrdersHandler) GetOrders(c *gin.Context) {
	var (
		list []*models.Order
		err  error
	)
	if userID := c.Query("user_id"); userID != "" {
		list, err = h.orders.GetByUser(c.Request.Context(), userID)
	} else {
		list, err = h.orders.GetAll(c.Request.Context())
	}
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

// GetOrder handles GET /api/orders/:id.
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if order == nil {
		respondNotFound(c, "Order")
		return
	}
	respondData(c, http.StatusOK, order)
}

// CreateOrder handles POST /api/orders.
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if order.UserID == "" || len(order.Items) == 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id and items are required")
		return
	}

	created, err := h.orders.Create(c.Request.Context(), &order)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	h.events.Publish(events.SubjectOrderCreated, created)
	h.logger.WithFields(logrus.Fields{
		"order_id": created.ID,
		"user_id":  created.UserID,
		"total":    created.TotalAmount,
	}).Info("Order created")
	respondData(c, http.StatusCreated, created)
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status.
func (h *OrdersHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	switch req.Status {
	case models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order status")
		return
	}

	updated, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if updated == nil {
		respondNotFound(c, "Order")
		return
	}

	h.events.Publish(events.SubjectOrderUpdated, updated)
	respondData(c, http.StatusOK, updated)
}

// DeleteOrder handles DELETE /api/orders/:id.
func (h *OrdersHandler) DeleteOrder(c *gin.Context) {
	removed, err := h.orders.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "Order")
		return
	}
	respondMessage(c, http.StatusOK, nil, "Order deleted")
}
