package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/config"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/db"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/email"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/service"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/transport/http"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/transport/http/handler"
	consumerKafka "github.com/KevinSaG/my-ecommerce-sub000/internal/transport/kafka"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	pkgKafka "github.com/KevinSaG/my-ecommerce-sub000/pkg/kafka"
	outboxRepository "github.com/KevinSaG/my-ecommerce-sub000/pkg/outbox/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/outbox/worker"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/utils"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	tp, err := utils.InitTracer(ctx, "storefront")
	if err != nil {
		log.Fatalf("Failed to init trace: %v", err)
	}

	loggerCfg := config.LoggerConfig{
		Level: "info",
		Env:   cfg.Env,
	}
	logger, err := config.NewLogger(loggerCfg)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	pool, err := db.NewPostgresDB(cfg.Postgres.URL)
	if err != nil {
		log.Fatalf("failed to create pool: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	defer func() {
		_ = redisClient.Close()
	}()

	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	addressRepo := repository.NewAddressRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	outboxRepo := outboxRepository.NewOutboxRepository(pool, logger)

	resolver := service.NewAddressResolver(addressRepo, logger)
	cartService := service.NewCartService(pool, cartRepo, productRepo, logger, cfg.Checkout.CartTaxRateBps)
	checkoutService := service.NewCheckoutService(
		pool,
		cartRepo,
		orderRepo,
		resolver,
		outboxRepo,
		logger,
		cfg.Checkout.TaxRateBps,
		cfg.Checkout.DeliveryFeeCents,
	)
	productService := service.NewCachedProductService(
		service.NewProductService(productRepo, logger),
		redisClient,
		logger,
	)
	orderService := service.NewOrderService(orderRepo, logger)
	addressService := service.NewAddressService(pool, addressRepo, logger)

	kafkaProducer, err := pkgKafka.NewProducer(cfg.Kafka.Brokers)
	if err != nil {
		log.Fatalf("error creating kafka producer: %v", err)
	}
	defer func() {
		_ = kafkaProducer.Close()
	}()

	outboxProcessor := worker.NewOutboxProcessor(pool, outboxRepo, kafkaProducer, logger)
	go outboxProcessor.Start(ctx)

	emailSender := email.NewSMTPSender(logger)
	consumer := consumerKafka.NewConsumer(customerRepo, emailSender, logger)
	go consumer.Start(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID)

	app := fiber.New()

	app.Use(otelfiber.Middleware())

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.Limiter.Max,
		Expiration: cfg.Limiter.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests. Try again later.",
			})
		},
	}))

	handlers := &http.Handlers{
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Address:  handler.NewAddressHandler(addressService, logger),
		Product:  handler.NewProductHandler(productService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}

	http.RegisterRoutes(app, handlers, logger)

	go func() {
		log.Println("HTTP Service listening on: " + cfg.HTTP.Port)
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			log.Fatalf("Error listening on HTTP port %v: %v\n", cfg.HTTP.Port, err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down gracefully...")
	shutdownContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownContext); err != nil {
		log.Printf("Error shutting down HTTP app: %v\n", err)
	} else {
		log.Println("HTTP App stopped gracefully")
	}

	if err := tp.Shutdown(shutdownContext); err != nil {
		applog.Warn(
			shutdownContext,
			logger,
			"Failed to shut down telemetry",
			zap.Error(err),
		)
	} else {
		applog.Info(
			shutdownContext,
			logger,
			"Telemetry stopped correctly",
		)
	}
}
