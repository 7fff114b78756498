package service

import (
	"context"
	"fmt"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context, customerID int64) (*domain.Cart, []domain.CartItem, error)
	Summary(ctx context.Context, customerID int64) (*domain.CartSummary, error)
	AddItem(ctx context.Context, customerID, productID int64, quantity int32) error
	UpdateItemQuantity(ctx context.Context, customerID, itemID int64, quantity int32) error
	RemoveItem(ctx context.Context, customerID, itemID int64) error
	Clear(ctx context.Context, customerID int64) error
}

type cartService struct {
	pool           *pgxpool.Pool
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	logger         *zap.Logger
	tracer         trace.Tracer
	cartTaxRateBps int64
}

func NewCartService(
	pool *pgxpool.Pool,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
	cartTaxRateBps int64,
) CartService {
	return &cartService{
		pool:           pool,
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		logger:         logger,
		tracer:         otel.Tracer("cart_service"),
		cartTaxRateBps: cartTaxRateBps,
	}
}

// GetCart provisions the cart on first access and returns its items joined
// with current catalog prices.
func (s *cartService) GetCart(ctx context.Context, customerID int64) (*domain.Cart, []domain.CartItem, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	cart, err := s.cartRepo.GetOrCreateCart(ctx, customerID)
	if err != nil {
		span.RecordError(err)

		return nil, nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, s.pool, cart.ID)
	if err != nil {
		span.RecordError(err)

		return nil, nil, err
	}

	return cart, items, nil
}

// Summary estimates the cart totals for display. The estimate uses the cart
// display tax rate, which differs from the rate charged at checkout; see the
// note on config.Checkout.
func (s *cartService) Summary(ctx context.Context, customerID int64) (*domain.CartSummary, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Summary")
	defer span.End()

	_, items, err := s.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var subtotal, totalQuantity int64
	for _, item := range items {
		subtotal += int64(item.Quantity) * item.UnitPrice
		totalQuantity += int64(item.Quantity)
	}

	taxAmount := taxFromBps(subtotal, s.cartTaxRateBps)

	return &domain.CartSummary{
		ItemCount:     len(items),
		TotalQuantity: totalQuantity,
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		Total:         subtotal + taxAmount,
	}, nil
}

func (s *cartService) AddItem(ctx context.Context, customerID, productID int64, quantity int32) error {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("product_id", productID),
		attribute.Int("quantity", int(quantity)),
	)

	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		span.RecordError(err)

		return err
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, customerID)
	if err != nil {
		span.RecordError(err)

		return err
	}

	if err := s.cartRepo.AddItem(ctx, cart.ID, productID, quantity); err != nil {
		span.RecordError(err)

		return err
	}

	applog.Info(
		ctx,
		s.logger,
		"Cart item added",
		zap.Int64("cart_id", cart.ID),
		zap.Int64("product_id", productID),
		zap.Int32("quantity", quantity),
	)

	return nil
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, customerID, itemID int64, quantity int32) error {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateItemQuantity")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("item_id", itemID),
	)

	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, customerID)
	if err != nil {
		span.RecordError(err)

		return err
	}

	return s.cartRepo.UpdateItemQuantity(ctx, cart.ID, itemID, quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, itemID int64) error {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("item_id", itemID),
	)

	cart, err := s.cartRepo.GetOrCreateCart(ctx, customerID)
	if err != nil {
		span.RecordError(err)

		return err
	}

	return s.cartRepo.RemoveItem(ctx, cart.ID, itemID)
}

func (s *cartService) Clear(ctx context.Context, customerID int64) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	cart, err := s.cartRepo.GetOrCreateCart(ctx, customerID)
	if err != nil {
		span.RecordError(err)

		return err
	}

	return s.cartRepo.ClearItems(ctx, s.pool, cart.ID)
}
