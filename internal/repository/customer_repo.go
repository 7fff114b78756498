package repository

import (
	"context"
	"errors"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	SaveCustomerReplica(ctx context.Context, event *domain.CustomerRegisteredEvent) error
}

type customerRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

func NewCustomerRepository(pool *pgxpool.Pool, logger *zap.Logger) CustomerRepository {
	return &customerRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("contract/customer_repo"),
	}
}

// SaveCustomerReplica keeps the local customers copy in sync with the
// identity service. Replays are expected; duplicates are skipped.
func (r *customerRepo) SaveCustomerReplica(ctx context.Context, event *domain.CustomerRegisteredEvent) error {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.SaveCustomerReplica")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", event.CustomerID),
		attribute.String("email", event.Email),
	)

	query := `
		INSERT INTO customers (id, email)
		VALUES ($1, $2)
	`

	_, err := r.pool.Exec(ctx, query, event.CustomerID, event.Email)
	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) {
			if pgError.Code == "23505" {
				applog.Warn(
					ctx,
					r.logger,
					"Customer already exists, skipping",
					zap.Int64("customer_id", event.CustomerID),
				)

				return nil
			}
		}

		span.RecordError(err)

		applog.Error(
			ctx,
			r.logger,
			"Error inserting into customers",
			zap.Int64("customer_id", event.CustomerID),
			zap.Error(err),
		)

		return err
	}

	return nil
}
