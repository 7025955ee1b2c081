package ordershttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordersvc/internal/orders/adapters/memory"
	"ordersvc/internal/orders/application"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := application.NewService(memory.NewRepository())
	return NewRouter(NewOrderAPI(service))
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doRaw(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestIndex(t *testing.T) {
	router := newTestRouter()

	rec := doRaw(router, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, "orders", payload["service"])
}

func TestCreateOrder(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders",
		`{"customer_id":"User0001","items":[{"name":"widget","quantity":3,"unit_price":9.99}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	location := rec.Header().Get("Location")
	require.NotEmpty(t, location)

	payload := decode(t, rec)
	assert.Equal(t, "User0001", payload["customer_id"])

	// The Location header must dereference to the created order.
	rec = doRaw(router, http.MethodGet, location)
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decode(t, rec)
	assert.Equal(t, "User0001", payload["customer_id"])
}

func TestCreateOrder_IgnoresClientSuppliedIDs(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders",
		`{"id":123,"customer_id":"User0001","items":[{"id":77,"name":"widget","quantity":3,"unit_price":9.99}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, float64(1), created["id"])
	items := created["items"].([]any)
	require.Len(t, items, 1)
	assert.NotEqual(t, float64(77), items[0].(map[string]any)["id"])

	rec = doRaw(router, http.MethodGet, "/orders/123")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_EmptyBody(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_ArrayBody(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders", `[]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_NoContentType(t *testing.T) {
	router := newTestRouter()

	rec := doRaw(router, http.MethodPost, "/orders")
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestCreateOrder_WrongContentType(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("customer_id=User0001"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestCreateOrder_InvalidItemRejected(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders",
		`{"customer_id":"User0001","items":[{"name":"widget","quantity":0,"unit_price":9.99}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := doRaw(router, http.MethodGet, "/orders/0")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_NonIntegerID(t *testing.T) {
	router := newTestRouter()

	rec := doRaw(router, http.MethodGet, "/orders/abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetItem_EndToEnd(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders",
		`{"customer_id":"User0001","items":[{"name":"widget","quantity":3,"unit_price":9.99}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	orderID := int64(created["id"].(float64))
	items := created["items"].([]any)
	require.Len(t, items, 1)
	itemID := int64(items[0].(map[string]any)["id"].(float64))

	rec = doRaw(router, http.MethodGet, fmt.Sprintf("/orders/%d/items/%d", orderID, itemID))
	require.Equal(t, http.StatusOK, rec.Code)
	item := decode(t, rec)
	assert.Equal(t, "widget", item["name"])
	assert.Equal(t, float64(3), item["quantity"])
	assert.Equal(t, 9.99, item["unit_price"])
	assert.Equal(t, float64(orderID), item["order_id"])
}

func TestGetItem_NonIntegerIDs(t *testing.T) {
	router := newTestRouter()

	rec := doRaw(router, http.MethodGet, "/orders/abc/items/1")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRaw(router, http.MethodGet, "/orders/1/items/xyz")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetItem_WrongOrder(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders",
		`{"customer_id":"User0001","items":[{"name":"widget","quantity":3,"unit_price":9.99}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(router, http.MethodPost, "/orders", `{"customer_id":"User0002"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode(t, rec)
	secondID := int64(second["id"].(float64))

	// Item 1 belongs to the first order, not the second.
	rec = doRaw(router, http.MethodGet, fmt.Sprintf("/orders/%d/items/1", secondID))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrder(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders",
		`{"customer_id":"User0001","items":[{"name":"widget","quantity":3,"unit_price":9.99}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	orderID := int64(created["id"].(float64))

	rec = doJSON(router, http.MethodPut, fmt.Sprintf("/orders/%d", orderID),
		`{"customer_id":"User0002","items":[{"name":"gadget","quantity":1,"unit_price":1.5}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)
	assert.Equal(t, "User0002", updated["customer_id"])
	items := updated["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "gadget", items[0].(map[string]any)["name"])
}

func TestUpdateOrder_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPut, "/orders/999999", `{"customer_id":"User0001"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrder_NotFoundWinsOverBadPayload(t *testing.T) {
	router := newTestRouter()

	// The order lookup happens before the body is read, so an absent order
	// is 404 no matter what the payload looks like.
	rec := doJSON(router, http.MethodPut, "/orders/999999", `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRaw(router, http.MethodPut, "/orders/999999")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrder_WrongContentType(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders", `{"customer_id":"User0001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	orderID := int64(created["id"].(float64))

	rec = doRaw(router, http.MethodPut, fmt.Sprintf("/orders/%d", orderID))
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestDeleteOrder_CascadesAndIsIdempotent(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders",
		`{"customer_id":"User0001","items":[{"name":"widget","quantity":3,"unit_price":9.99}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	orderID := int64(created["id"].(float64))

	rec = doRaw(router, http.MethodDelete, fmt.Sprintf("/orders/%d", orderID))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRaw(router, http.MethodGet, fmt.Sprintf("/orders/%d", orderID))
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRaw(router, http.MethodGet, fmt.Sprintf("/orders/%d/items/1", orderID))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting again still succeeds.
	rec = doRaw(router, http.MethodDelete, fmt.Sprintf("/orders/%d", orderID))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListOrders(t *testing.T) {
	router := newTestRouter()

	rec := doRaw(router, http.MethodGet, "/orders")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	doJSON(router, http.MethodPost, "/orders", `{"customer_id":"User0001"}`)
	doJSON(router, http.MethodPost, "/orders", `{"customer_id":"User0002"}`)

	rec = doRaw(router, http.MethodGet, "/orders")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "User0001", list[0]["customer_id"])
}

func TestAddItem(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders", `{"customer_id":"User0001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	orderID := int64(created["id"].(float64))

	rec = doJSON(router, http.MethodPost, fmt.Sprintf("/orders/%d/items", orderID),
		`{"name":"widget","quantity":3,"unit_price":9.99}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Location"))

	rec = doRaw(router, http.MethodGet, rec.Header().Get("Location"))
	require.Equal(t, http.StatusOK, rec.Code)
	item := decode(t, rec)
	assert.Equal(t, "widget", item["name"])
}

func TestAddItem_MissingRequiredKeys(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders", `{"customer_id":"User0001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	orderID := int64(created["id"].(float64))

	rec = doJSON(router, http.MethodPost, fmt.Sprintf("/orders/%d/items", orderID), `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItem_OrderNotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders/999999/items",
		`{"name":"widget","quantity":3,"unit_price":9.99}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Absent order is 404 even with a payload that would otherwise be 400.
	rec = doJSON(router, http.MethodPost, "/orders/999999/items", `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItem_WrongContentType(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders", `{"customer_id":"User0001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	orderID := int64(created["id"].(float64))

	rec = doRaw(router, http.MethodPost, fmt.Sprintf("/orders/%d/items", orderID))
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUpdateItem(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders",
		`{"customer_id":"User0001","items":[{"name":"widget","quantity":3,"unit_price":9.99}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	orderID := int64(created["id"].(float64))
	itemID := int64(created["items"].([]any)[0].(map[string]any)["id"].(float64))

	rec = doJSON(router, http.MethodPut, fmt.Sprintf("/orders/%d/items/%d", orderID, itemID),
		`{"name":"widget","quantity":5,"unit_price":8.99}`)
	require.Equal(t, http.StatusOK, rec.Code)
	item := decode(t, rec)
	assert.Equal(t, float64(5), item["quantity"])
	assert.Equal(t, 8.99, item["unit_price"])
}

func TestUpdateItem_NotFoundWinsOverBadPayload(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders", `{"customer_id":"User0001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	orderID := int64(created["id"].(float64))

	rec = doJSON(router, http.MethodPut, fmt.Sprintf("/orders/%d/items/999999", orderID), `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteItem(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodPost, "/orders",
		`{"customer_id":"User0001","items":[{"name":"widget","quantity":3,"unit_price":9.99}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	orderID := int64(created["id"].(float64))
	itemID := int64(created["items"].([]any)[0].(map[string]any)["id"].(float64))

	rec = doRaw(router, http.MethodDelete, fmt.Sprintf("/orders/%d/items/%d", orderID, itemID))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRaw(router, http.MethodGet, fmt.Sprintf("/orders/%d/items/%d", orderID, itemID))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRaw(router, http.MethodGet, fmt.Sprintf("/orders/%d/items", orderID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListItems_OrderNotFound(t *testing.T) {
	router := newTestRouter()

	rec := doRaw(router, http.MethodGet, "/orders/999999/items")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorResponsesAreProblemJSON(t *testing.T) {
	router := newTestRouter()

	rec := doRaw(router, http.MethodGet, "/orders/0")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	payload := decode(t, rec)
	assert.Equal(t, float64(http.StatusNotFound), payload["status"])
}
