// Package ordershttp exposes the order use cases over REST.
package ordershttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ordersvc/internal/orders/adapters/http/mapper"
	"ordersvc/internal/orders/domain"
	"ordersvc/internal/orders/ports"
	apierrors "ordersvc/internal/shared/errors"
)

const contentTypeJSON = "application/json"

// OrderAPI wires HTTP transport with the orders service.
type OrderAPI struct {
	service ports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Get /
// Root URL response with service metadata.
func (api *OrderAPI) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "orders",
		"version": "1.0",
		"paths": gin.H{
			"orders": "/orders",
		},
	})
}

// Post /orders
// Creates an Order from the request body.
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	if !requireJSON(c) {
		return
	}
	var payload mapper.Order
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := mapper.ToDomainOrder(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	created, err := api.service.CreateOrder(c.Request.Context(), order)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/orders/%d", created.ID))
	c.JSON(http.StatusCreated, mapper.FromDomainOrder(created))
}

// Get /orders
// Lists all Orders.
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	payload := make([]mapper.Order, 0, len(orders))
	for _, order := range orders {
		payload = append(payload, mapper.FromDomainOrder(order))
	}
	c.JSON(http.StatusOK, payload)
}

// Get /orders/:order_id
// Returns an Order by id.
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondNotFoundOr(c, err, "Order", id)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

// Put /orders/:order_id
// Replaces an existing Order's data from the request body. The order is
// looked up before the body is read, so an absent order is 404 regardless
// of payload.
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	if _, err := api.service.GetOrder(c.Request.Context(), id); err != nil {
		respondNotFoundOr(c, err, "Order", id)
		return
	}
	if !requireJSON(c) {
		return
	}
	var payload mapper.Order
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := mapper.ToDomainOrder(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	order.ID = id
	updated, err := api.service.UpdateOrder(c.Request.Context(), order)
	if err != nil {
		respondNotFoundOr(c, err, "Order", id)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(updated))
}

// Delete /orders/:order_id
// Deletes an Order; the cascade removes its Items. Idempotent.
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /orders/:order_id/items
// Adds an Item to an existing Order. The order is looked up before the body
// is read, so an absent order is 404 regardless of payload.
func (api *OrderAPI) AddItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	if _, err := api.service.GetOrder(c.Request.Context(), orderID); err != nil {
		respondNotFoundOr(c, err, "Order", orderID)
		return
	}
	if !requireJSON(c) {
		return
	}
	var payload mapper.Item
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	item, err := mapper.ToDomainItem(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	added, err := api.service.AddItem(c.Request.Context(), orderID, item)
	if err != nil {
		respondNotFoundOr(c, err, "Order", orderID)
		return
	}
	c.Header("Location", fmt.Sprintf("/orders/%d/items/%d", orderID, added.ID))
	c.JSON(http.StatusCreated, mapper.FromDomainItem(*added))
}

// Get /orders/:order_id/items
// Lists the Items of an Order.
func (api *OrderAPI) ListItems(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	items, err := api.service.ListItems(c.Request.Context(), orderID)
	if err != nil {
		respondNotFoundOr(c, err, "Order", orderID)
		return
	}
	payload := make([]mapper.Item, 0, len(items))
	for _, item := range items {
		payload = append(payload, mapper.FromDomainItem(item))
	}
	c.JSON(http.StatusOK, payload)
}

// Get /orders/:order_id/items/:item_id
// Returns an Item only when it belongs to the Order.
func (api *OrderAPI) GetItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	item, err := api.service.GetItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		respondNotFoundOr(c, err, "Item", itemID)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainItem(*item))
}

// Put /orders/:order_id/items/:item_id
// Replaces an Item's data within its Order. The item is looked up before the
// body is read, so an absent item is 404 regardless of payload.
func (api *OrderAPI) UpdateItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	if _, err := api.service.GetItem(c.Request.Context(), orderID, itemID); err != nil {
		respondNotFoundOr(c, err, "Item", itemID)
		return
	}
	if !requireJSON(c) {
		return
	}
	var payload mapper.Item
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	item, err := mapper.ToDomainItem(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	item.ID = itemID
	updated, err := api.service.UpdateItem(c.Request.Context(), orderID, item)
	if err != nil {
		respondNotFoundOr(c, err, "Item", itemID)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainItem(*updated))
}

// Delete /orders/:order_id/items/:item_id
// Deletes an Item from an Order. Idempotent.
func (api *OrderAPI) DeleteItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	if err := api.service.DeleteItem(c.Request.Context(), orderID, itemID); err != nil && !errors.Is(err, ports.ErrNotFound) {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// requireJSON rejects write requests that do not declare a JSON body.
func requireJSON(c *gin.Context) bool {
	if c.ContentType() != contentTypeJSON {
		apierrors.Respond(c, apierrors.NewUnsupportedMediaProblem(contentTypeJSON))
		return false
	}
	return true
}

// parseIDParam parses an integer path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(
			fmt.Sprintf("path parameter %q must be an integer, got %q", name, raw)))
		return 0, false
	}
	return id, true
}

// respondNotFoundOr translates the not-found sentinel into a 404 problem and
// defers everything else to the generic mapping.
func respondNotFoundOr(c *gin.Context, err error, resource string, id int64) {
	if errors.Is(err, ports.ErrNotFound) {
		apierrors.Respond(c, apierrors.NewNotFoundProblem(resource, id))
		return
	}
	respondServiceError(c, err)
}

// respondServiceError maps service errors to problem responses. Validation
// failures become 400, everything unexpected becomes 500.
func respondServiceError(c *gin.Context, err error) {
	var dve *domain.DataValidationError
	switch {
	case errors.As(err, &dve):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(dve.Message))
	case errors.Is(err, ports.ErrNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	default:
		apierrors.RespondError(c, err)
	}
}
