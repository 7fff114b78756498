package service

import (
	"context"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type OrderService interface {
	GetOrder(ctx context.Context, customerID, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID, limit, offset int64) ([]domain.Order, int64, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	logger    *zap.Logger
	tracer    trace.Tracer
}

func NewOrderService(orderRepo repository.OrderRepository, logger *zap.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger,
		tracer:    otel.Tracer("order_service"),
	}
}

func (s *orderService) GetOrder(ctx context.Context, customerID, orderID int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("order_id", orderID),
	)

	return s.orderRepo.GetByID(ctx, customerID, orderID)
}

func (s *orderService) ListOrders(ctx context.Context, customerID, limit, offset int64) ([]domain.Order, int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.orderRepo.ListByCustomer(ctx, customerID, limit, offset)
}
