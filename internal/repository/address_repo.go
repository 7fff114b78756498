package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type AddressRepository interface {
	Create(ctx context.Context, q Querier, customerID int64, input *domain.AddressInput) (*domain.Address, error)
	GetByID(ctx context.Context, q Querier, customerID, addressID int64) (*domain.Address, error)
	GetDefault(ctx context.Context, q Querier, customerID int64) (*domain.Address, error)
	GetAny(ctx context.Context, q Querier, customerID int64) (*domain.Address, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Address, error)
}

type addressRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

func NewAddressRepository(pool *pgxpool.Pool, logger *zap.Logger) AddressRepository {
	return &addressRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("contract/address_repo"),
	}
}

const addressColumns = `id, customer_id, label, street, city, province, postal_code, country, phone, is_default, created_at`

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.Label,
		&a.Street,
		&a.City,
		&a.Province,
		&a.PostalCode,
		&a.Country,
		&a.Phone,
		&a.IsDefault,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *addressRepo) Create(ctx context.Context, q Querier, customerID int64, input *domain.AddressInput) (*domain.Address, error) {
	ctx, span := r.tracer.Start(ctx, "AddressRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	query := `
		INSERT INTO addresses (customer_id, label, street, city, province, postal_code, country, phone, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + addressColumns + `;
	`

	address, err := scanAddress(q.QueryRow(
		ctx,
		query,
		customerID,
		input.Label,
		input.Street,
		input.City,
		input.Province,
		input.PostalCode,
		input.Country,
		input.Phone,
		input.IsDefault,
	))
	if err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to insert address",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to insert address: %w", err)
	}

	return address, nil
}

func (r *addressRepo) GetByID(ctx context.Context, q Querier, customerID, addressID int64) (*domain.Address, error) {
	ctx, span := r.tracer.Start(ctx, "AddressRepository.GetByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("address_id", addressID),
	)

	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE id = $1 AND customer_id = $2;
	`

	address, err := scanAddress(q.QueryRow(ctx, query, addressID, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAddressNotFound
		}

		span.RecordError(err)

		return nil, fmt.Errorf("failed to query address: %w", err)
	}

	return address, nil
}

func (r *addressRepo) GetDefault(ctx context.Context, q Querier, customerID int64) (*domain.Address, error) {
	ctx, span := r.tracer.Start(ctx, "AddressRepository.GetDefault")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE customer_id = $1 AND is_default;
	`

	address, err := scanAddress(q.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAddressNotFound
		}

		span.RecordError(err)

		return nil, fmt.Errorf("failed to query default address: %w", err)
	}

	return address, nil
}

// GetAny returns an arbitrary address of the customer; the oldest one, so the
// pick is at least stable.
func (r *addressRepo) GetAny(ctx context.Context, q Querier, customerID int64) (*domain.Address, error) {
	ctx, span := r.tracer.Start(ctx, "AddressRepository.GetAny")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE customer_id = $1
		ORDER BY created_at ASC
		LIMIT 1;
	`

	address, err := scanAddress(q.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAddressNotFound
		}

		span.RecordError(err)

		return nil, fmt.Errorf("failed to query address: %w", err)
	}

	return address, nil
}

func (r *addressRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Address, error) {
	ctx, span := r.tracer.Start(ctx, "AddressRepository.ListByCustomer")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE customer_id = $1
		ORDER BY is_default DESC, created_at ASC;
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Failed to query addresses",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID,
			&a.CustomerID,
			&a.Label,
			&a.Street,
			&a.City,
			&a.Province,
			&a.PostalCode,
			&a.Country,
			&a.Phone,
			&a.IsDefault,
			&a.CreatedAt,
		); err != nil {
			span.RecordError(err)

			return nil, fmt.Errorf("error scanning address: %w", err)
		}

		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return addresses, nil
}
