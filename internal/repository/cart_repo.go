package repository

import (
	"context"
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

type CartRepository interface {
	GetOrCreateCart(ctx context.Context, customerID int64) (*domain.Cart, error)
	GetOrCreateCartForUpdate(ctx context.Context, tx pgx.Tx, customerID int64) (*domain.Cart, error)
	ListItems(ctx context.Context, q Querier, cartID int64) ([]domain.CartItem, error)
	AddItem(ctx context.Context, cartID, productID int64, quantity int32) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int32) error
	RemoveItem(ctx context.Context, cartID, itemID int64) error
	ClearItems(ctx context.Context, q Querier, cartID int64) error
}

// Querier lets cart reads and the clear run either on the pool or inside the
// checkout transaction. Both *pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type cartRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

func NewCartRepository(pool *pgxpool.Pool, logger *zap.Logger) CartRepository {
	return &cartRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("contract/cart_repo"),
	}
}

const getOrCreateCartQuery = `
	INSERT INTO carts (customer_id)
	VALUES ($1)
	ON CONFLICT (customer_id) DO NOTHING;
`

// GetOrCreateCart is the explicit idempotent form of the legacy storefront's
// side-effecting cart read. The UNIQUE constraint on customer_id makes
// concurrent first access safe.
func (r *cartRepo) GetOrCreateCart(ctx context.Context, customerID int64) (*domain.Cart, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.GetOrCreateCart")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	if _, err := r.pool.Exec(ctx, getOrCreateCartQuery, customerID); err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to provision cart",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to provision cart: %w", err)
	}

	query := `
		SELECT id, customer_id, created_at, updated_at
		FROM carts
		WHERE customer_id = $1;
	`

	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&cart.ID,
		&cart.CustomerID,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	); err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to read cart after provision",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	return &cart, nil
}

// GetOrCreateCartForUpdate locks the cart row for the duration of the
// transaction, serializing concurrent checkouts on the same cart.
func (r *cartRepo) GetOrCreateCartForUpdate(ctx context.Context, tx pgx.Tx, customerID int64) (*domain.Cart, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.GetOrCreateCartForUpdate")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	if _, err := tx.Exec(ctx, getOrCreateCartQuery, customerID); err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("failed to provision cart: %w", err)
	}

	query := `
		SELECT id, customer_id, created_at, updated_at
		FROM carts
		WHERE customer_id = $1
		FOR UPDATE;
	`

	var cart domain.Cart
	if err := tx.QueryRow(ctx, query, customerID).Scan(
		&cart.ID,
		&cart.CustomerID,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	); err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to lock cart",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}

	return &cart, nil
}

func (r *cartRepo) ListItems(ctx context.Context, q Querier, cartID int64) ([]domain.CartItem, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.ListItems")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("cart_id", cartID),
	)

	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, p.name, p.price, ci.quantity, ci.created_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id AND p.deleted_at IS NULL
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at ASC;
	`

	rows, err := q.Query(ctx, query, cartID)
	if err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to query cart items",
			zap.Int64("cart_id", cartID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.ProductName,
			&item.UnitPrice,
			&item.Quantity,
			&item.CreatedAt,
		); err != nil {
			span.RecordError(err)

			return nil, fmt.Errorf("error scanning cart item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

func (r *cartRepo) AddItem(ctx context.Context, cartID, productID int64, quantity int32) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.AddItem")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("cart_id", cartID),
		attribute.Int64("product_id", productID),
		attribute.Int("quantity", int(quantity)),
	)

	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity;
	`

	if _, err := r.pool.Exec(ctx, query, cartID, productID, quantity); err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to add cart item",
			zap.Int64("cart_id", cartID),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

func (r *cartRepo) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int32) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.UpdateItemQuantity")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("cart_id", cartID),
		attribute.Int64("item_id", itemID),
		attribute.Int("quantity", int(quantity)),
	)

	query := `
		UPDATE cart_items
		SET quantity = $1
		WHERE id = $2 AND cart_id = $3;
	`

	commandTag, err := r.pool.Exec(ctx, query, quantity, itemID, cartID)
	if err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to update cart item quantity",
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)

		return fmt.Errorf("failed to update cart item: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepo) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.RemoveItem")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("cart_id", cartID),
		attribute.Int64("item_id", itemID),
	)

	query := `
		DELETE FROM cart_items
		WHERE id = $1 AND cart_id = $2;
	`

	commandTag, err := r.pool.Exec(ctx, query, itemID, cartID)
	if err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to remove cart item",
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)

		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepo) ClearItems(ctx context.Context, q Querier, cartID int64) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.ClearItems")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("cart_id", cartID),
	)

	query := `
		DELETE FROM cart_items
		WHERE cart_id = $1;
	`

	if _, err := q.Exec(ctx, query, cartID); err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to clear cart items",
			zap.Int64("cart_id", cartID),
			zap.Error(err),
		)

		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	return nil
}
