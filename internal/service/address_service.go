package service

import (
	"context"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type AddressService interface {
	CreateAddress(ctx context.Context, customerID int64, input *domain.AddressInput) (*domain.Address, error)
	ListAddresses(ctx context.Context, customerID int64) ([]domain.Address, error)
	GetDefaultAddress(ctx context.Context, customerID int64) (*domain.Address, error)
}

type addressService struct {
	pool        *pgxpool.Pool
	addressRepo repository.AddressRepository
	logger      *zap.Logger
	tracer      trace.Tracer
}

func NewAddressService(pool *pgxpool.Pool, addressRepo repository.AddressRepository, logger *zap.Logger) AddressService {
	return &addressService{
		pool:        pool,
		addressRepo: addressRepo,
		logger:      logger,
		tracer:      otel.Tracer("address_service"),
	}
}

func (s *addressService) CreateAddress(ctx context.Context, customerID int64, input *domain.AddressInput) (*domain.Address, error) {
	ctx, span := s.tracer.Start(ctx, "AddressService.CreateAddress")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	address, err := s.addressRepo.Create(ctx, s.pool, customerID, input)
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	applog.Info(
		ctx,
		s.logger,
		"Address created",
		zap.Int64("customer_id", customerID),
		zap.Int64("address_id", address.ID),
	)

	return address, nil
}

func (s *addressService) ListAddresses(ctx context.Context, customerID int64) ([]domain.Address, error) {
	ctx, span := s.tracer.Start(ctx, "AddressService.ListAddresses")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	return s.addressRepo.ListByCustomer(ctx, customerID)
}

func (s *addressService) GetDefaultAddress(ctx context.Context, customerID int64) (*domain.Address, error) {
	ctx, span := s.tracer.Start(ctx, "AddressService.GetDefaultAddress")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
	)

	return s.addressRepo.GetDefault(ctx, s.pool, customerID)
}
