package application

import (
	"context"
	"errors"

	"ordersvc/internal/orders/domain"
	"ordersvc/internal/orders/ports"
)

// Service orchestrates the order use cases over a repository.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return created, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateOrder replaces an existing order, including its item set.
func (s *Service) UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if order.ID <= 0 {
		return nil, domain.NewDataValidationError("invalid order: missing or invalid id")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, order)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return updated, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return mapStorageError(s.repo.Delete(ctx, id))
}

func (s *Service) AddItem(ctx context.Context, orderID int64, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	added, err := s.repo.AddItem(ctx, orderID, item)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return added, nil
}

func (s *Service) GetItem(ctx context.Context, orderID, itemID int64) (*domain.Item, error) {
	return s.repo.FindItem(ctx, orderID, itemID)
}

func (s *Service) ListItems(ctx context.Context, orderID int64) ([]domain.Item, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order.Items, nil
}

func (s *Service) UpdateItem(ctx context.Context, orderID int64, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if item.ID <= 0 {
		return nil, domain.NewDataValidationError("invalid item: missing or invalid id")
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateItem(ctx, orderID, item)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return updated, nil
}

func (s *Service) DeleteItem(ctx context.Context, orderID, itemID int64) error {
	return mapStorageError(s.repo.DeleteItem(ctx, orderID, itemID))
}

var _ ports.Service = (*Service)(nil)
