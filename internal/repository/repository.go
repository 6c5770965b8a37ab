package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/toughcrm/internal/domain"
)

// Store is the persistence collaborator consumed by the CRM service.
// Missing rows are reported as domain.ErrNotFound, a duplicate customer email as
// domain.ErrValidation and every other failure as domain.ErrStorage.
type Store interface {
	// FindCustomerByEmail looks a customer up by exact (normalised) email
	FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// GetCustomer retrieves a customer by ID
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)

	// CreateCustomer inserts a new customer
	CreateCustomer(ctx context.Context, customer *domain.Customer) error

	// DeleteCustomer removes a customer and detaches it from its orders
	DeleteCustomer(ctx context.Context, id int64) error

	// CreateProduct inserts a new product
	CreateProduct(ctx context.Context, product *domain.Product) error

	// GetProduct retrieves a product by ID
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)

	// CreateOrder inserts the order row without its items
	CreateOrder(ctx context.Context, order *domain.Order) error

	// UpdateOrder persists the order total and inserts items not stored yet
	UpdateOrder(ctx context.Context, order *domain.Order) error

	// GetOrder retrieves an order with its customer and items preloaded
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)

	// ListCustomers returns the matching customers and the total match count
	ListCustomers(ctx context.Context, filter CustomerFilter) ([]domain.Customer, int64, error)

	// ListProducts returns the matching products and the total match count
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error)

	// ListOrders returns the matching orders and the total match count
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, int64, error)

	// OrderTotals returns total_amount of every order matching filter (pagination ignored)
	OrderTotals(ctx context.Context, filter OrderFilter) ([]decimal.Decimal, error)

	// LowStockProducts returns products whose stock is at or below threshold
	LowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error)

	// Counts returns row counts per entity
	Counts(ctx context.Context) (Counts, error)

	// Transaction runs fn against a Store bound to a single database transaction.
	// The transaction is rolled back when fn returns an error.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// Counts holds per-entity row counts
type Counts struct {
	Customers int64 `json:"customers"`
	Products  int64 `json:"products"`
	Orders    int64 `json:"orders"`
}

// Pagination selects a page of a sorted result. PageSize <= 0 returns every row.
type Pagination struct {
	Page     int
	PageSize int
	Sort     string
	Order    string
}

// CustomerFilter narrows ListCustomers
type CustomerFilter struct {
	Name         string // case-insensitive substring
	Email        string // exact
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
	Pagination
}

// ProductFilter narrows ListProducts
type ProductFilter struct {
	Name     string // case-insensitive substring
	PriceGte *decimal.Decimal
	PriceLte *decimal.Decimal
	StockGte *int
	StockLte *int
	Pagination
}

// OrderFilter narrows ListOrders and OrderTotals
type OrderFilter struct {
	TotalGte     *decimal.Decimal
	TotalLte     *decimal.Decimal
	CustomerID   *int64
	CustomerName string // case-insensitive substring of the customer name
	ProductName  string // case-insensitive substring of any attached product name
	ProductID    *int64 // orders containing this product
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
	Pagination
}
