// Package mapper converts between the JSON transport shapes and the domain
// model. Required keys use pointer fields so a missing key is distinguishable
// from a zero value.
package mapper

import (
	"ordersvc/internal/orders/domain"
)

// Order is the transport-layer shape of an order.
type Order struct {
	ID         int64   `json:"id"`
	CustomerID *string `json:"customer_id"`
	Items      []Item  `json:"items"`
}

// Item is the transport-layer shape of an order line item.
type Item struct {
	ID        int64    `json:"id"`
	OrderID   int64    `json:"order_id"`
	Name      *string  `json:"name"`
	Quantity  *int32   `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

// ToDomainOrder populates a domain order from its transport shape. A missing
// customer_id key fails; the items list defaults to empty.
func ToDomainOrder(payload Order) (*domain.Order, error) {
	if payload.CustomerID == nil {
		return nil, domain.ErrMissingCustomerID
	}
	order := &domain.Order{
		ID:         payload.ID,
		CustomerID: *payload.CustomerID,
	}
	for _, entry := range payload.Items {
		item, err := ToDomainItem(entry)
		if err != nil {
			return nil, err
		}
		order.AddItem(*item)
	}
	return order, nil
}

// ToDomainItem populates a domain item from its transport shape. Missing
// quantity or unit_price keys fail; name is optional and defaults to absent.
func ToDomainItem(payload Item) (*domain.Item, error) {
	if payload.Quantity == nil {
		return nil, domain.NewDataValidationError("invalid item: missing quantity")
	}
	if payload.UnitPrice == nil {
		return nil, domain.NewDataValidationError("invalid item: missing unit_price")
	}
	item := &domain.Item{
		ID:        payload.ID,
		OrderID:   payload.OrderID,
		Quantity:  *payload.Quantity,
		UnitPrice: *payload.UnitPrice,
	}
	if payload.Name != nil {
		item.Name = *payload.Name
	}
	return item, nil
}

// FromDomainOrder converts a domain order into its transport shape. The items
// list is always present, in the order they are held in memory.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{Items: []Item{}}
	}
	items := make([]Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, FromDomainItem(item))
	}
	customerID := order.CustomerID
	return Order{
		ID:         order.ID,
		CustomerID: &customerID,
		Items:      items,
	}
}

// FromDomainItem converts a domain item into its transport shape. An empty
// name serializes as null.
func FromDomainItem(item domain.Item) Item {
	quantity := item.Quantity
	unitPrice := item.UnitPrice
	payload := Item{
		ID:        item.ID,
		OrderID:   item.OrderID,
		Quantity:  &quantity,
		UnitPrice: &unitPrice,
	}
	if item.Name != "" {
		name := item.Name
		payload.Name = &name
	}
	return payload
}
