package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodtruckos/backend/middlewares"
	"github.com/foodtruckos/backend/services"
	"github.com/foodtruckos/backend/utils"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// CreateOrder prices the requested lines against the live catalog and
// persists the order with snapshots, atomically.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	var req services.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.orders.CreateOrder(tenantID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	tenantID := middlewares.TenantID(c)
	orderID := c.Param("order_id")

	order, err := oc.orders.GetOrder(tenantID, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders lists the tenant's orders, most recent first, optionally
// filtered by ?status=.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	tenantID := middlewares.TenantID(c)
	status := c.Query("status")

	orders, err := oc.orders.ListOrders(tenantID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=NEW ACCEPTED READY COMPLETED CANCELLED"`
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	tenantID := middlewares.TenantID(c)
	orderID := c.Param("order_id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.orders.UpdateOrderStatus(tenantID, orderID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}
