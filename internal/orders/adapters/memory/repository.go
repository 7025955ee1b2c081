package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"ordersvc/internal/orders/domain"
	"ordersvc/internal/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter used as the dev
// fallback and in handler tests. It rejects the same rows the database check
// constraints would, so both adapters fail at the storage boundary.
type Repository struct {
	mu        sync.RWMutex
	orders    map[int64]*domain.Order
	nextOrder int64
	nextItem  int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := checkConstraints(clone); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextOrder++
	clone.ID = r.nextOrder
	for i := range clone.Items {
		r.nextItem++
		clone.Items[i].ID = r.nextItem
		clone.Items[i].OrderID = clone.ID
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := checkConstraints(clone); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	for i := range clone.Items {
		if clone.Items[i].ID == 0 {
			r.nextItem++
			clone.Items[i].ID = r.nextItem
		}
		clone.Items[i].OrderID = clone.ID
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *Repository) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, cloneOrder(order))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) AddItem(_ context.Context, orderID int64, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if err := checkItemConstraints(*item); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *item
	r.nextItem++
	clone.ID = r.nextItem
	clone.OrderID = orderID
	order.Items = append(order.Items, clone)
	result := clone
	return &result, nil
}

func (r *Repository) FindItem(_ context.Context, orderID, itemID int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	for _, item := range order.Items {
		if item.ID == itemID {
			clone := item
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) UpdateItem(_ context.Context, orderID int64, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if err := checkItemConstraints(*item); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	for i := range order.Items {
		if order.Items[i].ID == item.ID {
			clone := *item
			clone.OrderID = orderID
			order.Items[i] = clone
			result := clone
			return &result, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) DeleteItem(_ context.Context, orderID, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return ports.ErrNotFound
	}
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			order.Items = append(order.Items[:i], order.Items[i+1:]...)
			return nil
		}
	}
	return ports.ErrNotFound
}

// checkConstraints mirrors the database check constraints on the items table.
func checkConstraints(order *domain.Order) error {
	for _, item := range order.Items {
		if err := checkItemConstraints(item); err != nil {
			return err
		}
	}
	return nil
}

func checkItemConstraints(item domain.Item) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("check constraint %q violated", "chk_items_quantity_positive")
	}
	if item.UnitPrice < 0 {
		return fmt.Errorf("check constraint %q violated", "chk_items_unit_price_non_negative")
	}
	return nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]domain.Item, len(order.Items))
	copy(clone.Items, order.Items)
	return &clone
}
