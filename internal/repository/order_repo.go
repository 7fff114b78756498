package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, tx pgx.Tx, order *domain.Order) error
	GetByID(ctx context.Context, customerID, orderID int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID, limit, offset int64) ([]domain.Order, int64, error)
}

type orderRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

func NewOrderRepository(pool *pgxpool.Pool, logger *zap.Logger) OrderRepository {
	return &orderRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("contract/order_repo"),
	}
}

// CreateOrder inserts the order header and its line items inside the caller's
// transaction. The UNIQUE constraint on order_number is the actual uniqueness
// guarantee; a violation surfaces as ErrDuplicateOrder and rolls the whole
// checkout back with everything else.
func (r *orderRepo) CreateOrder(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.CreateOrder")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", order.CustomerID),
		attribute.String("order_number", order.OrderNumber),
		attribute.Int("items_count", len(order.Items)),
	)

	queryOrder := `
		INSERT INTO orders (
			order_number, customer_id, status, payment_status,
			subtotal, tax_amount, shipping_cost, discount_amount, total,
			payment_method, shipping_method, shipping_address_id,
			pickup_location, customer_notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	if err := tx.QueryRow(
		ctx,
		queryOrder,
		order.OrderNumber,
		order.CustomerID,
		string(order.Status),
		string(order.PaymentStatus),
		order.Subtotal,
		order.TaxAmount,
		order.ShippingCost,
		order.DiscountAmount,
		order.Total,
		order.PaymentMethod,
		order.ShippingMethod,
		order.ShippingAddressID,
		order.PickupLocation,
		order.CustomerNotes,
	).Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		span.RecordError(err)

		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == "23505" {
			applog.Warn(
				ctx,
				r.logger,
				"Order number collision",
				zap.String("order_number", order.OrderNumber),
			)

			return ErrDuplicateOrder
		}

		applog.Error(
			ctx,
			r.logger,
			"Failed to insert order header",
			zap.Int64("customer_id", order.CustomerID),
			zap.Error(err),
		)

		return fmt.Errorf("failed to insert order header: %w", err)
	}

	queryItem := `
		INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, discount_percentage, subtotal, plant_location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		if err := tx.QueryRow(
			ctx,
			queryItem,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.Quantity,
			item.UnitPrice,
			item.DiscountPercentage,
			item.Subtotal,
			item.PlantLocation,
		).Scan(&item.ID); err != nil {
			span.RecordError(err)

			applog.Error(
				ctx,
				r.logger,
				"Failed to insert order item",
				zap.Int64("order_id", order.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)

			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, customerID, orderID int64) (*domain.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.GetByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("order_id", orderID),
	)

	query := `
		SELECT id, order_number, customer_id, status, payment_status,
			subtotal, tax_amount, shipping_cost, discount_amount, total,
			payment_method, shipping_method, shipping_address_id,
			pickup_location, customer_notes, created_at, updated_at
		FROM orders
		WHERE id = $1 AND customer_id = $2;
	`

	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, orderID, customerID).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerID,
		&order.Status,
		&order.PaymentStatus,
		&order.Subtotal,
		&order.TaxAmount,
		&order.ShippingCost,
		&order.DiscountAmount,
		&order.Total,
		&order.PaymentMethod,
		&order.ShippingMethod,
		&order.ShippingAddressID,
		&order.PickupLocation,
		&order.CustomerNotes,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}

		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to query order",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, name, quantity, unit_price, discount_percentage, subtotal, plant_location
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC;
	`

	rows, err := r.pool.Query(ctx, itemsQuery, orderID)
	if err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
			&item.DiscountPercentage,
			&item.Subtotal,
			&item.PlantLocation,
		); err != nil {
			span.RecordError(err)

			return nil, fmt.Errorf("error scanning order item: %w", err)
		}

		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return &order, nil
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID, limit, offset int64) ([]domain.Order, int64, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.ListByCustomer")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("limit", limit),
		attribute.Int64("offset", offset),
	)

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM orders WHERE customer_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, customerID).Scan(&totalCount); err != nil {
		span.RecordError(err)

		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT id, order_number, customer_id, status, payment_status,
			subtotal, tax_amount, shipping_cost, discount_amount, total,
			payment_method, shipping_method, shipping_address_id,
			pickup_location, customer_notes, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to query orders",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.CustomerID,
			&order.Status,
			&order.PaymentStatus,
			&order.Subtotal,
			&order.TaxAmount,
			&order.ShippingCost,
			&order.DiscountAmount,
			&order.Total,
			&order.PaymentMethod,
			&order.ShippingMethod,
			&order.ShippingAddressID,
			&order.PickupLocation,
			&order.CustomerNotes,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			span.RecordError(err)

			return nil, 0, fmt.Errorf("error scanning order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)

		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	span.SetAttributes(
		attribute.Int("result_count", len(orders)),
	)

	return orders, totalCount, nil
}
