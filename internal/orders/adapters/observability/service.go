// Package observability decorates the orders service with tracing, logging,
// and metrics.
package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"ordersvc/internal/orders/domain"
	"ordersvc/internal/orders/ports"
)

const tracerName = "ordersvc/internal/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(attribute.String("order.customer_id", order.CustomerID), attribute.Int("order.items", len(order.Items))))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("customer_id", order.CustomerID), slog.Int("items", len(order.Items)))
	result, err := s.inner.CreateOrder(ctx, order)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("customer_id", order.CustomerID))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "order created", slog.Int64("order.id", result.ID))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrder", trace.WithAttributes(attribute.Int64("order.id", order.ID)))
	defer span.End()

	s.logInfo(ctx, "updating order", slog.Int64("order.id", order.ID))
	result, err := s.inner.UpdateOrder(ctx, order)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.Int64("order.id", order.ID))
	}
	s.logInfo(ctx, "order updated", slog.Int64("order.id", result.ID))
	return result, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.DeleteOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.Int64("order.id", id))
	if err := s.inner.DeleteOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.Int64("order.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.Int64("order.id", id))
	return nil
}

func (s *Service) AddItem(ctx context.Context, orderID int64, item *domain.Item) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.AddItem", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "adding item", slog.Int64("order.id", orderID), slog.String("item.name", item.Name))
	result, err := s.inner.AddItem(ctx, orderID, item)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add item", slog.Int64("order.id", orderID))
	}
	s.logInfo(ctx, "item added", slog.Int64("order.id", orderID), slog.Int64("item.id", result.ID))
	return result, nil
}

func (s *Service) GetItem(ctx context.Context, orderID, itemID int64) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetItem",
		trace.WithAttributes(attribute.Int64("order.id", orderID), attribute.Int64("item.id", itemID)))
	defer span.End()

	result, err := s.inner.GetItem(ctx, orderID, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load item", slog.Int64("item.id", itemID))
	}
	return result, nil
}

func (s *Service) ListItems(ctx context.Context, orderID int64) ([]domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListItems", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	result, err := s.inner.ListItems(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list items", slog.Int64("order.id", orderID))
	}
	span.SetAttributes(attribute.Int("items.count", len(result)))
	return result, nil
}

func (s *Service) UpdateItem(ctx context.Context, orderID int64, item *domain.Item) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateItem",
		trace.WithAttributes(attribute.Int64("order.id", orderID), attribute.Int64("item.id", item.ID)))
	defer span.End()

	s.logInfo(ctx, "updating item", slog.Int64("order.id", orderID), slog.Int64("item.id", item.ID))
	result, err := s.inner.UpdateItem(ctx, orderID, item)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update item", slog.Int64("item.id", item.ID))
	}
	return result, nil
}

func (s *Service) DeleteItem(ctx context.Context, orderID, itemID int64) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.DeleteItem",
		trace.WithAttributes(attribute.Int64("order.id", orderID), attribute.Int64("item.id", itemID)))
	defer span.End()

	s.logInfo(ctx, "deleting item", slog.Int64("order.id", orderID), slog.Int64("item.id", itemID))
	if err := s.inner.DeleteItem(ctx, orderID, itemID); err != nil {
		return s.handleError(ctx, span, err, "failed to delete item", slog.Int64("item.id", itemID))
	}
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated metric.Int64Counter
	ordersDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.orders_created", metric.WithDescription("Number of orders created"))
	ordersDeleted, _ := m.Int64Counter("orders.service.orders_deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{ordersCreated: ordersCreated, ordersDeleted: ordersDeleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
