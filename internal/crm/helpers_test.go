package crm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/internal/repository"
	"github.com/talkincode/toughcrm/internal/repository/repotest"
)

type recordingBus struct {
	mu     sync.Mutex
	topics []string
	args   [][]interface{}
}

func (b *recordingBus) Publish(topic string, args ...interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, topic)
	b.args = append(b.args, args)
}

func (b *recordingBus) Topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.topics...)
}

// setupService returns a service over a fresh in-memory database.
func setupService(t *testing.T) (*Service, *repository.GormStore, *recordingBus) {
	t.Helper()
	store := repotest.NewStore(t)
	bus := &recordingBus{}
	return NewService(store, bus), store, bus
}

func mustCustomer(t *testing.T, s *Service, name, email string) *domain.Customer {
	t.Helper()
	res := s.CreateCustomer(context.Background(), CustomerInput{Name: name, Email: email})
	require.True(t, res.Success, res.Message)
	return res.Customer
}

func mustProduct(t *testing.T, s *Service, name, price string, stock int) *domain.Product {
	t.Helper()
	res := s.CreateProduct(context.Background(), ProductInput{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	})
	require.True(t, res.Success, res.Message)
	return res.Product
}

// failingStore returns a storage error from every write and an empty lookup.
type failingStore struct {
	repository.Store
	err error
}

func (f failingStore) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return nil, domain.NewNotFoundError("customer not found")
}

func (f failingStore) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	return domain.NewStorageError(f.err)
}

func (f failingStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	return domain.NewStorageError(f.err)
}

func (f failingStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return domain.NewStorageError(f.err)
}

// brokenLookupStore fails the email lookup itself.
type brokenLookupStore struct {
	repository.Store
}

func (brokenLookupStore) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return nil, domain.NewStorageError(errors.New("connection reset"))
}
