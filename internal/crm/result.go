package crm

import (
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughcrm/internal/domain"
)

const (
	msgCreated         = "created"
	msgEmailExists     = "email already exists"
	msgInvalidPhone    = "invalid phone format"
	msgInvalidEmail    = "invalid email format"
	msgNameRequired    = "name is required"
	msgEmailRequired   = "email is required"
	msgCustomerMissing = "Customer does not exist"
	msgNoProducts      = "at least one product required"
	msgPriceInvalid    = "price must be positive"
	msgStockInvalid    = "stock cannot be negative"
)

// CustomerInput is a candidate customer record.
type CustomerInput struct {
	Name  string `json:"name" csv:"name"`
	Email string `json:"email" csv:"email"`
	Phone string `json:"phone,omitempty" csv:"phone"`
}

// ProductInput is a candidate product record.
type ProductInput struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// OrderInput references an existing customer and products by id.
type OrderInput struct {
	CustomerID int64   `json:"customer_id"`
	ProductIDs []int64 `json:"product_ids"`
}

type CustomerResult struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Customer *domain.Customer `json:"customer"`
}

// BulkCustomerResult reports a batch; Customers keeps input order and
// len(Customers)+len(Errors) equals the batch size.
type BulkCustomerResult struct {
	Success   bool              `json:"success"`
	Customers []domain.Customer `json:"customers"`
	Errors    []string          `json:"errors"`
}

type ProductResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

type OrderResult struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Order   *domain.Order `json:"order"`
}

// OrderSummary aggregates order totals.
type OrderSummary struct {
	Count  int             `json:"count"`
	Sum    decimal.Decimal `json:"sum"`
	Mean   decimal.Decimal `json:"mean"`
	Median decimal.Decimal `json:"median"`
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
}
