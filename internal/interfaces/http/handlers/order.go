// internal/interfaces/http/handlers/order.go
package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// OrderService is the order behavior the order handler needs
type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req *order.CreateOrderRequest) (*order.Order, error)
	GetOrders(ctx context.Context, userID string) ([]order.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*order.Order, error)
}

// InvoiceGenerator renders an order invoice
type InvoiceGenerator interface {
	GenerateInvoice(o *order.Order) (*bytes.Buffer, error)
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService OrderService
	invoices     InvoiceGenerator
	logger       *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService OrderService, invoices InvoiceGenerator, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		invoices:     invoices,
		logger:       logger,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid order data")
		return
	}

	created, err := h.orderService.CreateOrder(c.Request.Context(), middleware.GetUserIDFromContext(c), &req)
	if err != nil {
		if errors.Is(err, order.ErrEmptyOrder) || errors.Is(err, order.ErrInvalidItem) {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to create order", err)
		return
	}

	c.JSON(http.StatusOK, created)
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrders(c.Request.Context(), middleware.GetUserIDFromContext(c))
	if err != nil {
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to retrieve orders", err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, ok := h.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, o)
}

// GetInvoice handles GET /orders/:id/invoice
func (h *OrderHandler) GetInvoice(c *gin.Context) {
	o, ok := h.lookup(c)
	if !ok {
		return
	}

	pdfBuffer, err := h.invoices.GenerateInvoice(o)
	if err != nil {
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to generate invoice", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", o.Reference()))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}

// lookup loads the caller's order named by :id, answering 404 itself
func (h *OrderHandler) lookup(c *gin.Context) (*order.Order, bool) {
	o, err := h.orderService.GetOrder(c.Request.Context(), middleware.GetUserIDFromContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "Order not found")
			return nil, false
		}
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to retrieve order", err)
		return nil, false
	}
	return o, true
}
