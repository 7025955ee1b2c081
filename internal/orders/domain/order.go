package domain

import (
	"fmt"
	"strings"
)

// Order is the aggregate root for a customer purchase. It owns its Items
// exclusively; an Item cannot outlive its Order.
type Order struct {
	ID         int64
	CustomerID string
	Items      []Item
}

// Validate enforces the order invariants, including those of every owned item.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.CustomerID) == "" {
		return ErrMissingCustomerID
	}
	for idx := range o.Items {
		if err := o.Items[idx].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddItem appends an item to the in-memory collection. Nothing is persisted
// until the order is saved.
func (o *Order) AddItem(item Item) {
	o.Items = append(o.Items, item)
}

// String renders the diagnostic form used in logs. The exact shape is a
// tested contract.
func (o Order) String() string {
	parts := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		parts = append(parts, item.String())
	}
	return fmt.Sprintf("<Order %d items=[%s]>", o.ID, strings.Join(parts, ", "))
}
