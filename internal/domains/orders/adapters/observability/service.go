package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
	"github.com/Apurer/northwind-orders/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/northwind-orders/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
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

// New wraps the core order service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
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

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "loading order", slog.Int64("order.id", id))
	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	span.SetAttributes(attribute.Int("order.line_items", len(result.OrderDetails)))
	s.logInfo(ctx, "order loaded", slog.Int64("order.id", result.ID), slog.Int("order.line_items", len(result.OrderDetails)))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, skip, count int) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders",
		trace.WithAttributes(attribute.Int("page.skip", skip), attribute.Int("page.count", count)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, skip, count)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.Int("page.skip", skip), slog.Int("page.count", count))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) CreateOrder(ctx context.Context, order *domain.Order) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder", trace.WithAttributes(orderAttributes(order)...))
	defer span.End()

	s.logInfo(ctx, "creating order", orderLogAttrs(order)...)
	id, err := s.inner.CreateOrder(ctx, order)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to create order", orderLogAttrs(order)...)
	}
	span.SetAttributes(attribute.Int64("order.id", id))
	s.metrics.recordCreated(ctx, order)
	s.logInfo(ctx, "order created", slog.Int64("order.id", id))
	return id, nil
}

func (s *Service) UpdateOrder(ctx context.Context, order *domain.Order) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrder", trace.WithAttributes(orderAttributes(order)...))
	defer span.End()

	s.logInfo(ctx, "updating order", orderLogAttrs(order)...)
	if err := s.inner.UpdateOrder(ctx, order); err != nil {
		return s.handleError(ctx, span, err, "failed to update order", orderLogAttrs(order)...)
	}
	s.metrics.recordUpdated(ctx)
	s.logInfo(ctx, "order updated", orderLogAttrs(order)...)
	return nil
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

func orderAttributes(order *domain.Order) []attribute.KeyValue {
	if order == nil {
		return nil
	}
	return []attribute.KeyValue{
		attribute.Int64("order.id", order.ID),
		attribute.String("order.customer", order.Customer.Code.String()),
		attribute.Int("order.line_items", len(order.OrderDetails)),
	}
}

func orderLogAttrs(order *domain.Order) []slog.Attr {
	if order == nil {
		return nil
	}
	return []slog.Attr{
		slog.Int64("order.id", order.ID),
		slog.String("order.customer", order.Customer.Code.String()),
		slog.Int("order.line_items", len(order.OrderDetails)),
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

// handleError records err on the span. Caller mistakes are logged at warn,
// storage failures and corruption at error.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	level := slog.LevelError
	if isClientError(err) {
		level = slog.LevelWarn
	}
	s.logError(ctx, level, msg, err, attrs...)
	return err
}

func isClientError(err error) bool {
	return errors.Is(err, ports.ErrOrderNotFound) ||
		errors.Is(err, ports.ErrInvalidArgument) ||
		errors.Is(err, ports.ErrInvariantViolation) ||
		errors.Is(err, ports.ErrNotImplemented)
}

type serviceMetrics struct {
	ordersCreated metric.Int64Counter
	ordersUpdated metric.Int64Counter
	ordersDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	ordersUpdated, _ := m.Int64Counter("orders.service.updated", metric.WithDescription("Number of orders updated"))
	ordersDeleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{ordersCreated: ordersCreated, ordersUpdated: ordersUpdated, ordersDeleted: ordersDeleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context, order *domain.Order) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.Bool("order.shipped", order.IsShipped())))
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.ordersUpdated != nil {
		m.ordersUpdated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
