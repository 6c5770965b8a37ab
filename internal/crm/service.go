package crm

import (
	"context"

	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/internal/repository"
)

// Service implements the customer, product and order workflows on top of a Store.
// Mutating operations never return errors; failures are reported in the result value.
type Service struct {
	store     repository.Store
	validator *Validator
	bus       Publisher
}

// NewService creates a CRM service. bus may be nil.
func NewService(store repository.Store, bus Publisher) *Service {
	return &Service{
		store:     store,
		validator: NewValidator(store),
		bus:       bus,
	}
}

// Validator returns the validator bound to the service store.
func (s *Service) Validator() *Validator {
	return s.validator
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// ListCustomers returns every customer matching filter; an empty match is not an error.
func (s *Service) ListCustomers(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, int64, error) {
	return s.store.ListCustomers(ctx, filter)
}

func (s *Service) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int64, error) {
	return s.store.ListProducts(ctx, filter)
}

func (s *Service) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int64, error) {
	return s.store.ListOrders(ctx, filter)
}

func (s *Service) LowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error) {
	return s.store.LowStockProducts(ctx, threshold)
}

func (s *Service) Counts(ctx context.Context) (repository.Counts, error) {
	return s.store.Counts(ctx)
}
