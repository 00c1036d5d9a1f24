package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders services.OrderService
	sales  services.SaleRecorder
	sweep  services.SweepService
}

func NewOrderHandler(orders services.OrderService, sales services.SaleRecorder, sweep services.SweepService) *OrderHandler {
	return &OrderHandler{orders: orders, sales: sales, sweep: sweep}
}

type orderItemRequest struct {
	ProductID uint    `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

type createOrderRequest struct {
	Name          string             `json:"name" binding:"required"`
	Phone         string             `json:"phone" binding:"required"`
	Address       string             `json:"address" binding:"required"`
	Email         string             `json:"email"`
	UserID        *uint              `json:"userId"`
	Total         float64            `json:"total" binding:"required,gt=0"`
	PaymentMethod string             `json:"paymentMethod"`
	Items         []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required order fields"})
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	draft := &models.Order{
		OwnerUserID:     req.UserID,
		CustomerName:    req.Name,
		CustomerPhone:   req.Phone,
		CustomerEmail:   req.Email,
		DeliveryAddress: req.Address,
		Items:           items,
		Total:           req.Total,
		PaymentMethod:   req.PaymentMethod,
	}

	id, err := h.orders.Create(c.Request.Context(), draft)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"orderId": id})
}

func (h *OrderHandler) List(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	orders, err := h.orders.List(c.Request.Context(), principal)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	principal, _ := middleware.PrincipalFrom(c)
	order, err := h.orders.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	principal, _ := middleware.PrincipalFrom(c)
	orders, err := h.orders.ListByUser(c.Request.Context(), principal, userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type updateOrderRequest struct {
	Name          *string  `json:"name"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	Address       *string  `json:"address"`
	PaymentMethod *string  `json:"paymentMethod"`
	Total         *float64 `json:"total"`
	Status        *string  `json:"status"`
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := services.OrderPatch{
		CustomerName:    req.Name,
		CustomerPhone:   req.Phone,
		CustomerEmail:   req.Email,
		DeliveryAddress: req.Address,
		PaymentMethod:   req.PaymentMethod,
		Total:           req.Total,
	}
	if req.Status != nil {
		status := models.OrderStatus(*req.Status)
		patch.Status = &status
	}

	principal, _ := middleware.PrincipalFrom(c)
	if err := h.orders.Update(c.Request.Context(), principal, id, patch); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	principal, _ := middleware.PrincipalFrom(c)
	if err := h.orders.Delete(c.Request.Context(), principal, id); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *OrderHandler) Cleanup(c *gin.Context) {
	result, err := h.sweep.Run(c.Request.Context(), time.Now())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) History(c *gin.Context) {
	archived, err := h.sweep.History(c.Request.Context(), services.HistoryCap)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, archived)
}

func (h *OrderHandler) ListSales(c *gin.Context) {
	sales, err := h.sales.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *OrderHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrSweepRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
