package domain

import "fmt"

// MaxItemNameLength bounds the optional item name, mirroring the varchar(64)
// column in the schema.
const MaxItemNameLength = 64

// Item is a single line entry belonging to exactly one Order.
type Item struct {
	ID        int64
	OrderID   int64
	Name      string
	Quantity  int32
	UnitPrice float64
}

// Validate enforces the item invariants. The schema check constraints remain
// the authority; this keeps invalid entities from reaching the storage layer
// in the common case.
func (i *Item) Validate() error {
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.UnitPrice < 0 {
		return ErrInvalidUnitPrice
	}
	if len(i.Name) > MaxItemNameLength {
		return ErrNameTooLong
	}
	return nil
}

// String renders the diagnostic form used in logs. The exact shape is a
// tested contract.
func (i Item) String() string {
	return fmt.Sprintf("<Item %s id=[%d] Order[%d]>", i.Name, i.ID, i.OrderID)
}
