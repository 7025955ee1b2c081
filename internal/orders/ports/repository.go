package ports

import (
	"context"
	"errors"

	"ordersvc/internal/orders/domain"
)

// ErrNotFound is the sentinel for an absent order or item. Lookups never
// fail any other way for missing rows; callers translate it to 404.
var ErrNotFound = errors.New("resource not found")

// Repository persists the order aggregate and its owned items.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)

	AddItem(ctx context.Context, orderID int64, item *domain.Item) (*domain.Item, error)
	FindItem(ctx context.Context, orderID, itemID int64) (*domain.Item, error)
	UpdateItem(ctx context.Context, orderID int64, item *domain.Item) (*domain.Item, error)
	DeleteItem(ctx context.Context, orderID, itemID int64) error
}
