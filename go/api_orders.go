package northwindserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/northwind-orders/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/Apurer/northwind-orders/internal/domains/orders/ports"
	apierrors "github.com/Apurer/northwind-orders/internal/shared/errors"
)

// OrdersAPI wires HTTP transport with the orders bounded context service.
type OrdersAPI struct {
	service ordersports.Service
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// Get /api/orders/:orderId
// Returns the order with its line items and display snapshots
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Get /api/orders
// Lists orders page by page
func (api *OrdersAPI) GetOrders(c *gin.Context) {
	skip, ok := parseIntQuery(c, "skip")
	if !ok {
		return
	}
	count, ok := parseIntQuery(c, "count")
	if !ok {
		return
	}
	orders, err := api.service.ListOrders(c.Request.Context(), skip, count)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Post /api/orders
// Creates an order and returns its identifier
func (api *OrdersAPI) AddOrder(c *gin.Context) {
	var payload ordermapper.BriefOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return
	}
	order, err := ordermapper.ToDomainOrder(payload.ID, payload)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	id, err := api.service.CreateOrder(c.Request.Context(), order)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.AddOrderResult{OrderID: id})
}

// Put /api/orders/:orderId
// Replaces the order and its line items
func (api *OrdersAPI) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload ordermapper.BriefOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return
	}
	order, err := ordermapper.ToDomainOrder(id, payload)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	if err := api.service.UpdateOrder(c.Request.Context(), order); err != nil {
		respondOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete /api/orders/:orderId
// Deletes the order together with its line items
func (api *OrdersAPI) RemoveOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		respondOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		apierrors.DefaultResponder.BadRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, name string) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		apierrors.DefaultResponder.BadRequest(c, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}
