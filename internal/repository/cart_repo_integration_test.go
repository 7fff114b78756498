package repository_test

import (
	"testing"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/testsuite"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type CartRepoSuite struct {
	testsuite.BaseSuite

	cartRepo repository.CartRepository
}

func TestCartRepoSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CartRepoSuite))
}

func (s *CartRepoSuite) SetupSuite() {
	s.SetupInfrastructure("../../migrations")
	s.cartRepo = repository.NewCartRepository(s.DbPool, zap.NewNop())
}

func (s *CartRepoSuite) TearDownSuite() {
	s.TearDownInfrastructure()
}

func (s *CartRepoSuite) SetupTest() {
	s.TruncateTable("customers")
	s.TruncateTable("products")
}

func (s *CartRepoSuite) seedCustomer(id int64) {
	_, err := s.DbPool.Exec(s.Ctx, `INSERT INTO customers (id, email) VALUES ($1, $2)`, id, "c@example.com")
	s.Require().NoError(err)
}

func (s *CartRepoSuite) seedProduct(name string, price int64) int64 {
	var id int64
	err := s.DbPool.QueryRow(s.Ctx, `
		INSERT INTO products (name, description, price, category, stock_plant_north, stock_plant_south)
		VALUES ($1, '', $2, 'rebar', 10, 10)
		RETURNING id
	`, name, price).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *CartRepoSuite) TestGetOrCreateCartIsIdempotent() {
	s.seedCustomer(1)

	first, err := s.cartRepo.GetOrCreateCart(s.Ctx, 1)
	s.Require().NoError(err)

	second, err := s.cartRepo.GetOrCreateCart(s.Ctx, 1)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)

	var count int64
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx, `SELECT COUNT(*) FROM carts WHERE customer_id = 1`).Scan(&count))
	s.Equal(int64(1), count)
}

func (s *CartRepoSuite) TestAddItemAccumulatesQuantity() {
	s.seedCustomer(2)
	productID := s.seedProduct("Rebar 10mm", 3500)

	cart, err := s.cartRepo.GetOrCreateCart(s.Ctx, 2)
	s.Require().NoError(err)

	s.Require().NoError(s.cartRepo.AddItem(s.Ctx, cart.ID, productID, 2))
	s.Require().NoError(s.cartRepo.AddItem(s.Ctx, cart.ID, productID, 3))

	items, err := s.cartRepo.ListItems(s.Ctx, s.DbPool, cart.ID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(int32(5), items[0].Quantity)
	s.Equal(int64(3500), items[0].UnitPrice)
	s.Equal("Rebar 10mm", items[0].ProductName)
}

func (s *CartRepoSuite) TestListItemsSkipsSoftDeletedProducts() {
	s.seedCustomer(3)
	keptID := s.seedProduct("Kept", 1000)
	droppedID := s.seedProduct("Dropped", 2000)

	cart, err := s.cartRepo.GetOrCreateCart(s.Ctx, 3)
	s.Require().NoError(err)
	s.Require().NoError(s.cartRepo.AddItem(s.Ctx, cart.ID, keptID, 1))
	s.Require().NoError(s.cartRepo.AddItem(s.Ctx, cart.ID, droppedID, 1))

	_, err = s.DbPool.Exec(s.Ctx, `UPDATE products SET deleted_at = NOW() WHERE id = $1`, droppedID)
	s.Require().NoError(err)

	items, err := s.cartRepo.ListItems(s.Ctx, s.DbPool, cart.ID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(keptID, items[0].ProductID)
}

func (s *CartRepoSuite) TestUpdateMissingItemReturnsNotFound() {
	s.seedCustomer(4)

	cart, err := s.cartRepo.GetOrCreateCart(s.Ctx, 4)
	s.Require().NoError(err)

	err = s.cartRepo.UpdateItemQuantity(s.Ctx, cart.ID, 9999, 3)
	s.ErrorIs(err, repository.ErrCartItemNotFound)

	err = s.cartRepo.RemoveItem(s.Ctx, cart.ID, 9999)
	s.ErrorIs(err, repository.ErrCartItemNotFound)
}

func (s *CartRepoSuite) TestClearItems() {
	s.seedCustomer(5)
	productID := s.seedProduct("Mesh", 4500)

	cart, err := s.cartRepo.GetOrCreateCart(s.Ctx, 5)
	s.Require().NoError(err)
	s.Require().NoError(s.cartRepo.AddItem(s.Ctx, cart.ID, productID, 2))

	s.Require().NoError(s.cartRepo.ClearItems(s.Ctx, s.DbPool, cart.ID))

	items, err := s.cartRepo.ListItems(s.Ctx, s.DbPool, cart.ID)
	s.Require().NoError(err)
	s.Empty(items)
}
