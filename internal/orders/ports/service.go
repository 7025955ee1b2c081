package ports

import (
	"context"

	"ordersvc/internal/orders/domain"
)

// Service exposes the order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	AddItem(ctx context.Context, orderID int64, item *domain.Item) (*domain.Item, error)
	GetItem(ctx context.Context, orderID, itemID int64) (*domain.Item, error)
	ListItems(ctx context.Context, orderID int64) ([]domain.Item, error)
	UpdateItem(ctx context.Context, orderID int64, item *domain.Item) (*domain.Item, error)
	DeleteItem(ctx context.Context, orderID, itemID int64) error
}
