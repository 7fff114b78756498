package service

import (
	"context"
	"testing"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAddressRepo struct {
	byID      map[int64]*domain.Address
	defaultA  *domain.Address
	anyA      *domain.Address
	created   []*domain.AddressInput
	createRes *domain.Address
}

func (f *fakeAddressRepo) Create(_ context.Context, _ repository.Querier, _ int64, input *domain.AddressInput) (*domain.Address, error) {
	f.created = append(f.created, input)
	return f.createRes, nil
}

func (f *fakeAddressRepo) GetByID(_ context.Context, _ repository.Querier, _ int64, addressID int64) (*domain.Address, error) {
	if a, ok := f.byID[addressID]; ok {
		return a, nil
	}
	return nil, repository.ErrAddressNotFound
}

func (f *fakeAddressRepo) GetDefault(_ context.Context, _ repository.Querier, _ int64) (*domain.Address, error) {
	if f.defaultA != nil {
		return f.defaultA, nil
	}
	return nil, repository.ErrAddressNotFound
}

func (f *fakeAddressRepo) GetAny(_ context.Context, _ repository.Querier, _ int64) (*domain.Address, error) {
	if f.anyA != nil {
		return f.anyA, nil
	}
	return nil, repository.ErrAddressNotFound
}

func (f *fakeAddressRepo) ListByCustomer(_ context.Context, _ int64) ([]domain.Address, error) {
	return nil, nil
}

func addrID(id int64) *int64 { return &id }

func TestResolve_ExplicitIDWins(t *testing.T) {
	repo := &fakeAddressRepo{
		byID:     map[int64]*domain.Address{7: {ID: 7}},
		defaultA: &domain.Address{ID: 1},
	}
	resolver := NewAddressResolver(repo, zap.NewNop())

	id, err := resolver.Resolve(context.Background(), nil, 42, &domain.CheckoutInput{
		ShippingAddressID: addrID(7),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestResolve_ExplicitIDNotOwned(t *testing.T) {
	repo := &fakeAddressRepo{byID: map[int64]*domain.Address{}}
	resolver := NewAddressResolver(repo, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), nil, 42, &domain.CheckoutInput{
		ShippingAddressID: addrID(99),
	})

	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestResolve_InlinePayloadPersisted(t *testing.T) {
	repo := &fakeAddressRepo{
		createRes: &domain.Address{ID: 11},
		defaultA:  &domain.Address{ID: 1},
	}
	resolver := NewAddressResolver(repo, zap.NewNop())

	id, err := resolver.Resolve(context.Background(), nil, 42, &domain.CheckoutInput{
		ShippingAddress: &domain.AddressInput{Street: "Av. Industrial 12", City: "Quito"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.Len(t, repo.created, 1)
}

func TestResolve_FallsBackToDefault(t *testing.T) {
	repo := &fakeAddressRepo{
		defaultA: &domain.Address{ID: 3},
		anyA:     &domain.Address{ID: 5},
	}
	resolver := NewAddressResolver(repo, zap.NewNop())

	id, err := resolver.Resolve(context.Background(), nil, 42, &domain.CheckoutInput{})

	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestResolve_FallsBackToAny(t *testing.T) {
	repo := &fakeAddressRepo{
		anyA: &domain.Address{ID: 5},
	}
	resolver := NewAddressResolver(repo, zap.NewNop())

	id, err := resolver.Resolve(context.Background(), nil, 42, &domain.CheckoutInput{})

	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestResolve_NoAddressFailsCheckout(t *testing.T) {
	resolver := NewAddressResolver(&fakeAddressRepo{}, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), nil, 42, &domain.CheckoutInput{})

	assert.ErrorIs(t, err, ErrNoShippingAddress)
}
