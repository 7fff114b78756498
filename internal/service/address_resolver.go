package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// AddressResolver picks the address a delivery order ships to.
type AddressResolver interface {
	Resolve(ctx context.Context, q repository.Querier, customerID int64, input *domain.CheckoutInput) (int64, error)
}

type addressResolver struct {
	addressRepo repository.AddressRepository
	logger      *zap.Logger
	tracer      trace.Tracer
}

func NewAddressResolver(addressRepo repository.AddressRepository, logger *zap.Logger) AddressResolver {
	return &addressResolver{
		addressRepo: addressRepo,
		logger:      logger,
		tracer:      otel.Tracer("checkout/address_resolver"),
	}
}

// Resolve applies the fallback chain, first match wins:
// explicit address id, inline payload (persisted as a new address), the
// customer's default address, any address. A customer with no resolvable
// address cannot place a delivery order.
func (r *addressResolver) Resolve(ctx context.Context, q repository.Querier, customerID int64, input *domain.CheckoutInput) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "AddressResolver.Resolve")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	if input.ShippingAddressID != nil {
		address, err := r.addressRepo.GetByID(ctx, q, customerID, *input.ShippingAddressID)
		if err != nil {
			span.RecordError(err)

			return 0, fmt.Errorf("shipping address %d: %w", *input.ShippingAddressID, err)
		}

		span.SetAttributes(attribute.String("resolved_via", "explicit_id"))
		return address.ID, nil
	}

	if input.ShippingAddress != nil {
		address, err := r.addressRepo.Create(ctx, q, customerID, input.ShippingAddress)
		if err != nil {
			span.RecordError(err)

			return 0, fmt.Errorf("failed to create inline address: %w", err)
		}

		span.SetAttributes(attribute.String("resolved_via", "inline_payload"))
		return address.ID, nil
	}

	address, err := r.addressRepo.GetDefault(ctx, q, customerID)
	if err == nil {
		span.SetAttributes(attribute.String("resolved_via", "default"))
		return address.ID, nil
	}
	if !errors.Is(err, repository.ErrAddressNotFound) {
		span.RecordError(err)

		return 0, err
	}

	address, err = r.addressRepo.GetAny(ctx, q, customerID)
	if err == nil {
		span.SetAttributes(attribute.String("resolved_via", "any"))
		return address.ID, nil
	}
	if !errors.Is(err, repository.ErrAddressNotFound) {
		span.RecordError(err)

		return 0, err
	}

	applog.Warn(
		ctx,
		r.logger,
		"Customer has no address for delivery order",
		zap.Int64("customer_id", customerID),
	)

	return 0, ErrNoShippingAddress
}
