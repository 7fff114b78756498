package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	outboxDomain "github.com/KevinSaG/my-ecommerce-sub000/pkg/outbox/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/outbox/worker"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type CheckoutService interface {
	Checkout(ctx context.Context, identity domain.Identity, input *domain.CheckoutInput) (*domain.Order, error)
}

type checkoutService struct {
	pool             *pgxpool.Pool
	cartRepo         repository.CartRepository
	orderRepo        repository.OrderRepository
	resolver         AddressResolver
	outboxRepo       worker.OutboxRepository
	logger           *zap.Logger
	tracer           trace.Tracer
	taxRateBps       int64
	deliveryFeeCents int64

	// seam for tests; defaults to generateOrderNumber
	orderNumberFn func() string
}

func NewCheckoutService(
	pool *pgxpool.Pool,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	resolver AddressResolver,
	outboxRepo worker.OutboxRepository,
	logger *zap.Logger,
	taxRateBps int64,
	deliveryFeeCents int64,
) CheckoutService {
	return &checkoutService{
		pool:             pool,
		cartRepo:         cartRepo,
		orderRepo:        orderRepo,
		resolver:         resolver,
		outboxRepo:       outboxRepo,
		logger:           logger,
		tracer:           otel.Tracer("checkout_service"),
		taxRateBps:       taxRateBps,
		deliveryFeeCents: deliveryFeeCents,
		orderNumberFn:    generateOrderNumber,
	}
}

// generateOrderNumber builds a human-readable number; the orders table's
// UNIQUE constraint is what actually guarantees uniqueness.
func generateOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("SO-%s-%s", time.Now().Format("20060102"), suffix)
}

// Checkout converts the customer's cart into a durable order in a single
// transaction: lock cart, read items, price, resolve address, persist
// header+items, clear cart, emit the OrderCreated outbox event. The cart row
// lock spans the whole sequence, so two concurrent checkouts on one cart
// serialize and the second one fails on the emptied cart.
func (s *checkoutService) Checkout(ctx context.Context, identity domain.Identity, input *domain.CheckoutInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Checkout")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", identity.CustomerID),
		attribute.String("shipping_method", input.ShippingMethod),
	)

	if input.ShippingMethod == "" {
		return nil, ErrMissingShippingMethod
	}
	if input.PaymentMethod == "" {
		return nil, ErrMissingPaymentMethod
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		applog.Error(
			ctx,
			s.logger,
			"Failed to begin checkout transaction",
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		shutdownCtx := context.WithoutCancel(ctx)
		err := tx.Rollback(shutdownCtx)

		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			applog.Warn(
				shutdownCtx,
				s.logger,
				"Error rolling back checkout transaction",
				zap.Error(err),
			)
		}
	}()

	cart, err := s.cartRepo.GetOrCreateCartForUpdate(ctx, tx, identity.CustomerID)
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, tx, cart.ID)
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	span.SetAttributes(
		attribute.Int("items_count", len(items)),
	)

	totals := CalculateTotals(items, input.ShippingMethod, s.taxRateBps, s.deliveryFeeCents)

	var shippingAddressID *int64
	var pickupLocation *string

	if domain.IsPickupMethod(input.ShippingMethod) {
		loc := input.PickupLocation
		if loc == "" {
			loc = domain.PickupLocationFor(input.ShippingMethod)
		}
		pickupLocation = &loc
	} else {
		addressID, err := s.resolver.Resolve(ctx, tx, identity.CustomerID, input)
		if err != nil {
			span.RecordError(err)

			return nil, err
		}
		shippingAddressID = &addressID
	}

	var customerNotes *string
	if input.CustomerNotes != "" {
		customerNotes = &input.CustomerNotes
	}

	order := &domain.Order{
		OrderNumber:       s.orderNumberFn(),
		CustomerID:        identity.CustomerID,
		Status:            domain.OrderStatusPending,
		PaymentStatus:     domain.PaymentStatusPending,
		Subtotal:          totals.Subtotal,
		TaxAmount:         totals.TaxAmount,
		ShippingCost:      totals.ShippingCost,
		DiscountAmount:    totals.DiscountAmount,
		Total:             totals.Total,
		PaymentMethod:     input.PaymentMethod,
		ShippingMethod:    input.ShippingMethod,
		ShippingAddressID: shippingAddressID,
		PickupLocation:    pickupLocation,
		CustomerNotes:     customerNotes,
		Items:             make([]domain.OrderItem, 0, len(items)),
	}

	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:          item.ProductID,
			Name:               item.ProductName,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: 0,
			Subtotal:           int64(item.Quantity) * item.UnitPrice,
			PlantLocation:      domain.PlantNorth,
		})
	}

	if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		applog.Error(
			ctx,
			s.logger,
			"Failed to persist order",
			zap.Int64("customer_id", identity.CustomerID),
			zap.Error(err),
		)

		return nil, err
	}

	if err := s.cartRepo.ClearItems(ctx, tx, cart.ID); err != nil {
		span.RecordError(err)

		return nil, err
	}

	if err := s.emitOrderCreated(ctx, tx, identity, order); err != nil {
		span.RecordError(err)

		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		applog.Error(
			ctx,
			s.logger,
			"Failed to commit checkout transaction",
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	applog.Info(
		ctx,
		s.logger,
		"Checkout completed",
		zap.Int64("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("total", order.Total),
	)

	return order, nil
}

func (s *checkoutService) emitOrderCreated(ctx context.Context, tx pgx.Tx, identity domain.Identity, order *domain.Order) error {
	eventItems := make([]domain.OrderCreatedEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		eventItems = append(eventItems, domain.OrderCreatedEventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	eventEnvelope := map[string]any{
		"event": "OrderCreated",
		"payload": domain.OrderCreatedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			CustomerID:  order.CustomerID,
			Email:       identity.Email,
			Total:       order.Total,
			Items:       eventItems,
		},
	}

	payloadBytes, err := json.Marshal(eventEnvelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	outboxEvent := &outboxDomain.OutboxEvent{
		AggregateType: "Order",
		AggregateID:   fmt.Sprintf("%d", order.ID),
		EventType:     "OrderCreated",
		Payload:       payloadBytes,
		Topic:         "order_events",
	}

	if err := s.outboxRepo.SaveOutboxEvent(ctx, tx, outboxEvent); err != nil {
		applog.Error(
			ctx,
			s.logger,
			"Failed to save outbox event",
			zap.Error(err),
		)

		return fmt.Errorf("failed to save outbox event: %w", err)
	}

	return nil
}
