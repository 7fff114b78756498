package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	outboxRepository "github.com/KevinSaG/my-ecommerce-sub000/pkg/outbox/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/testsuite"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type CheckoutSuite struct {
	testsuite.BaseSuite

	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	checkout    *checkoutService
}

func TestCheckoutSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CheckoutSuite))
}

func (s *CheckoutSuite) SetupSuite() {
	s.SetupInfrastructure("../../migrations")

	logger := zap.NewNop()
	s.cartRepo = repository.NewCartRepository(s.DbPool, logger)
	s.orderRepo = repository.NewOrderRepository(s.DbPool, logger)
	s.addressRepo = repository.NewAddressRepository(s.DbPool, logger)
	outboxRepo := outboxRepository.NewOutboxRepository(s.DbPool, logger)
	resolver := NewAddressResolver(s.addressRepo, logger)

	svc := NewCheckoutService(
		s.DbPool,
		s.cartRepo,
		s.orderRepo,
		resolver,
		outboxRepo,
		logger,
		1500,
		1000,
	)
	s.checkout = svc.(*checkoutService)
}

func (s *CheckoutSuite) TearDownSuite() {
	s.TearDownInfrastructure()
}

func (s *CheckoutSuite) SetupTest() {
	s.checkout.orderNumberFn = generateOrderNumber

	s.TruncateTable("customers")
	s.TruncateTable("products")
	s.TruncateTable("outbox")
}

func (s *CheckoutSuite) seedCustomer(id int64, email string) {
	_, err := s.DbPool.Exec(s.Ctx, `INSERT INTO customers (id, email) VALUES ($1, $2)`, id, email)
	s.Require().NoError(err)
}

func (s *CheckoutSuite) seedProduct(name string, price int64) int64 {
	var id int64
	err := s.DbPool.QueryRow(s.Ctx, `
		INSERT INTO products (name, description, price, category, stock_plant_north, stock_plant_south)
		VALUES ($1, '', $2, 'rebar', 100, 100)
		RETURNING id
	`, name, price).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *CheckoutSuite) fillCart(customerID int64, productID int64, quantity int32) {
	cart, err := s.cartRepo.GetOrCreateCart(s.Ctx, customerID)
	s.Require().NoError(err)
	s.Require().NoError(s.cartRepo.AddItem(s.Ctx, cart.ID, productID, quantity))
}

func (s *CheckoutSuite) seedDefaultAddress(customerID int64) int64 {
	address, err := s.addressRepo.Create(s.Ctx, s.DbPool, customerID, &domain.AddressInput{
		Street:    "Av. Industrial 12",
		City:      "Quito",
		IsDefault: true,
	})
	s.Require().NoError(err)
	return address.ID
}

func (s *CheckoutSuite) cartItems(customerID int64) []domain.CartItem {
	cart, err := s.cartRepo.GetOrCreateCart(s.Ctx, customerID)
	s.Require().NoError(err)

	items, err := s.cartRepo.ListItems(s.Ctx, s.DbPool, cart.ID)
	s.Require().NoError(err)
	return items
}

func (s *CheckoutSuite) countOrders() int64 {
	var count int64
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx, `SELECT COUNT(*) FROM orders`).Scan(&count))
	return count
}

func (s *CheckoutSuite) countOutboxEvents(eventType string) int64 {
	var count int64
	s.Require().NoError(s.DbPool.QueryRow(
		s.Ctx,
		`SELECT COUNT(*) FROM outbox WHERE event_type = $1`,
		eventType,
	).Scan(&count))
	return count
}

func (s *CheckoutSuite) TestDeliveryWithDefaultAddress() {
	s.seedCustomer(1, "buyer@example.com")
	productID := s.seedProduct("Rebar 12mm", 4000)
	s.fillCart(1, productID, 2)
	addressID := s.seedDefaultAddress(1)

	identity := domain.Identity{CustomerID: 1, Email: "buyer@example.com"}
	order, err := s.checkout.Checkout(s.Ctx, identity, &domain.CheckoutInput{
		ShippingMethod: domain.ShippingMethodDelivery,
		PaymentMethod:  "bank_transfer",
	})

	s.Require().NoError(err)
	s.Equal(int64(8000), order.Subtotal)
	s.Equal(int64(1200), order.TaxAmount)
	s.Equal(int64(1000), order.ShippingCost)
	s.Equal(int64(10200), order.Total)
	s.Equal(domain.OrderStatusPending, order.Status)
	s.Require().NotNil(order.ShippingAddressID)
	s.Equal(addressID, *order.ShippingAddressID)
	s.Nil(order.PickupLocation)
	s.Len(order.Items, 1)
	s.Equal("Rebar 12mm", order.Items[0].Name)
	s.Equal(int64(4000), order.Items[0].UnitPrice)

	s.Empty(s.cartItems(1))
	s.Equal(int64(1), s.countOutboxEvents("OrderCreated"))

	persisted, err := s.orderRepo.GetByID(s.Ctx, 1, order.ID)
	s.Require().NoError(err)
	s.Equal(order.OrderNumber, persisted.OrderNumber)
	s.Len(persisted.Items, 1)
}

func (s *CheckoutSuite) TestPickupNeedsNoAddress() {
	s.seedCustomer(2, "pickup@example.com")
	productID := s.seedProduct("Steel sheet", 5000)
	s.fillCart(2, productID, 1)

	identity := domain.Identity{CustomerID: 2, Email: "pickup@example.com"}
	order, err := s.checkout.Checkout(s.Ctx, identity, &domain.CheckoutInput{
		ShippingMethod: domain.ShippingMethodPickupPlantSouth,
		PaymentMethod:  "cash",
	})

	s.Require().NoError(err)
	s.Equal(int64(0), order.ShippingCost)
	s.Nil(order.ShippingAddressID)
	s.Require().NotNil(order.PickupLocation)
	s.Equal(domain.PlantSouth, *order.PickupLocation)
}

func (s *CheckoutSuite) TestEmptyCartRejected() {
	s.seedCustomer(3, "empty@example.com")

	identity := domain.Identity{CustomerID: 3, Email: "empty@example.com"}
	_, err := s.checkout.Checkout(s.Ctx, identity, &domain.CheckoutInput{
		ShippingMethod: domain.ShippingMethodDelivery,
		PaymentMethod:  "cash",
	})

	s.ErrorIs(err, ErrEmptyCart)
	s.Equal(int64(0), s.countOrders())
}

func (s *CheckoutSuite) TestDeliveryWithoutAddressFails() {
	s.seedCustomer(4, "noaddr@example.com")
	productID := s.seedProduct("Angle bar", 2500)
	s.fillCart(4, productID, 3)

	identity := domain.Identity{CustomerID: 4, Email: "noaddr@example.com"}
	_, err := s.checkout.Checkout(s.Ctx, identity, &domain.CheckoutInput{
		ShippingMethod: domain.ShippingMethodDelivery,
		PaymentMethod:  "cash",
	})

	s.ErrorIs(err, ErrNoShippingAddress)
	s.Equal(int64(0), s.countOrders())
	s.Len(s.cartItems(4), 1)
}

// A failed order insert must leave no trace: no header, no items, cart intact,
// no outbox row. The duplicate order number forces the header insert to fail
// after the cart was already read.
func (s *CheckoutSuite) TestDuplicateOrderNumberRollsEverythingBack() {
	s.seedCustomer(5, "dup@example.com")
	productID := s.seedProduct("Wire rod", 3000)
	s.fillCart(5, productID, 2)
	s.seedDefaultAddress(5)

	s.checkout.orderNumberFn = func() string { return "SO-20260828-FIXED01" }

	identity := domain.Identity{CustomerID: 5, Email: "dup@example.com"}
	_, err := s.checkout.Checkout(s.Ctx, identity, &domain.CheckoutInput{
		ShippingMethod: domain.ShippingMethodDelivery,
		PaymentMethod:  "cash",
	})
	s.Require().NoError(err)

	s.fillCart(5, productID, 1)
	_, err = s.checkout.Checkout(s.Ctx, identity, &domain.CheckoutInput{
		ShippingMethod: domain.ShippingMethodDelivery,
		PaymentMethod:  "cash",
	})

	s.ErrorIs(err, repository.ErrDuplicateOrder)
	s.Equal(int64(1), s.countOrders())
	s.Len(s.cartItems(5), 1)
	s.Equal(int64(1), s.countOutboxEvents("OrderCreated"))
}

// Two checkouts racing on one cart serialize on the cart row lock: the winner
// drains the cart, the loser sees it empty.
func (s *CheckoutSuite) TestConcurrentCheckoutsProduceOneOrder() {
	s.seedCustomer(6, "race@example.com")
	productID := s.seedProduct("H-beam", 12000)
	s.fillCart(6, productID, 1)
	s.seedDefaultAddress(6)

	identity := domain.Identity{CustomerID: 6, Email: "race@example.com"}
	input := &domain.CheckoutInput{
		ShippingMethod: domain.ShippingMethodDelivery,
		PaymentMethod:  "cash",
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.checkout.Checkout(s.Ctx, identity, input)
		}(i)
	}
	wg.Wait()

	var succeeded, emptied int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrEmptyCart):
			emptied++
		}
	}

	s.Equal(1, succeeded)
	s.Equal(1, emptied)
	s.Equal(int64(1), s.countOrders())
	s.Empty(s.cartItems(6))
}
