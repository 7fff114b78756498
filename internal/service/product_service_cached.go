package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const productCacheTTL = 5 * time.Minute

// cachedProductService decorates ProductService with a redis read-through
// cache on single-product lookups. Listing goes straight to the database,
// the filter combinations make cache keys not worth it.
type cachedProductService struct {
	inner  ProductService
	client *redis.Client
	logger *zap.Logger
	tracer trace.Tracer
}

func NewCachedProductService(inner ProductService, client *redis.Client, logger *zap.Logger) ProductService {
	return &cachedProductService{
		inner:  inner,
		client: client,
		logger: logger,
		tracer: otel.Tracer("product_service_cached"),
	}
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *cachedProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CachedProductService.GetProduct")
	defer span.End()

	key := productCacheKey(id)

	cached, err := s.client.Get(ctx, key).Result()
	if err == nil {
		var product domain.Product
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))

			return &product, nil
		}

		applog.Warn(
			ctx,
			s.logger,
			"Corrupt product cache entry, falling through",
			zap.String("key", key),
		)
	} else if !errors.Is(err, redis.Nil) {
		applog.Warn(
			ctx,
			s.logger,
			"Redis get failed, falling through to database",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	span.SetAttributes(attribute.Bool("cache_hit", false))

	product, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := s.client.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
			applog.Warn(
				ctx,
				s.logger,
				"Redis set failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return product, nil
}

func (s *cachedProductService) ListProducts(ctx context.Context, limit, offset int64, search, category string) ([]domain.Product, int64, error) {
	return s.inner.ListProducts(ctx, limit, offset, search, category)
}
