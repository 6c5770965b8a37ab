package repository

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/pkg/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ensure GormStore implements Store
var _ Store = (*GormStore)(nil)

// GormStore is the GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-based store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying handle (used by maintenance commands).
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var c domain.Customer
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if err != nil {
		return nil, classify(err, "find customer by email", "customer not found")
	}
	return &c, nil
}

func (s *GormStore) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, classify(err, "get customer", "customer not found")
	}
	return &c, nil
}

func (s *GormStore) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.ID == 0 {
		customer.ID = common.UUIDint64()
	}
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError("email already exists")
		}
		return domain.NewStorageError(errors.Wrap(err, "insert customer"))
	}
	return nil
}

func (s *GormStore) DeleteCustomer(ctx context.Context, id int64) error {
	return s.Transaction(ctx, func(tx Store) error {
		db := tx.(*GormStore).db.WithContext(ctx)
		if err := db.Model(&domain.Order{}).Where("customer_id = ?", id).
			Update("customer_id", nil).Error; err != nil {
			return domain.NewStorageError(errors.Wrap(err, "detach customer orders"))
		}
		res := db.Where("id = ?", id).Delete(&domain.Customer{})
		if res.Error != nil {
			return domain.NewStorageError(errors.Wrap(res.Error, "delete customer"))
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFoundError("customer not found")
		}
		return nil
	})
}

func (s *GormStore) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == 0 {
		product.ID = common.UUIDint64()
	}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return domain.NewStorageError(errors.Wrap(err, "insert product"))
	}
	return nil
}

func (s *GormStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, classify(err, "get product", "product not found")
	}
	return &p, nil
}

func (s *GormStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	if order.ID == 0 {
		order.ID = common.UUIDint64()
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error; err != nil {
		return domain.NewStorageError(errors.Wrap(err, "insert order"))
	}
	return nil
}

func (s *GormStore) UpdateOrder(ctx context.Context, order *domain.Order) error {
	db := s.db.WithContext(ctx)
	order.UpdatedAt = time.Now()
	if err := db.Omit(clause.Associations).Save(order).Error; err != nil {
		return domain.NewStorageError(errors.Wrap(err, "update order"))
	}
	for i := range order.Items {
		item := &order.Items[i]
		if item.ID != 0 {
			continue
		}
		item.ID = common.UUIDint64()
		item.OrderID = order.ID
		if err := db.Omit(clause.Associations).Create(item).Error; err != nil {
			return domain.NewStorageError(errors.Wrap(err, "insert order item"))
		}
	}
	return nil
}

func (s *GormStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := preloadOrder(s.db.WithContext(ctx)).First(&o, id).Error; err != nil {
		return nil, classify(err, "get order", "order not found")
	}
	return &o, nil
}

func (s *GormStore) ListCustomers(ctx context.Context, filter CustomerFilter) ([]domain.Customer, int64, error) {
	db := s.db.WithContext(ctx).Model(&domain.Customer{})
	if q := strings.TrimSpace(filter.Name); q != "" {
		db = whereContains(db, "name", q)
	}
	if email := strings.TrimSpace(filter.Email); email != "" {
		db = db.Where("email = ?", strings.ToLower(email))
	}
	if filter.CreatedAtGte != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAtGte)
	}
	if filter.CreatedAtLte != nil {
		db = db.Where("created_at <= ?", *filter.CreatedAtLte)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, domain.NewStorageError(errors.Wrap(err, "count customers"))
	}

	rows := make([]domain.Customer, 0)
	db = paginate(db, filter.Pagination, customerSortColumns)
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, domain.NewStorageError(errors.Wrap(err, "list customers"))
	}
	return rows, total, nil
}

func (s *GormStore) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error) {
	db := s.db.WithContext(ctx).Model(&domain.Product{})
	if q := strings.TrimSpace(filter.Name); q != "" {
		db = whereContains(db, "name", q)
	}
	if filter.PriceGte != nil {
		db = db.Where("price >= ?", *filter.PriceGte)
	}
	if filter.PriceLte != nil {
		db = db.Where("price <= ?", *filter.PriceLte)
	}
	if filter.StockGte != nil {
		db = db.Where("stock >= ?", *filter.StockGte)
	}
	if filter.StockLte != nil {
		db = db.Where("stock <= ?", *filter.StockLte)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, domain.NewStorageError(errors.Wrap(err, "count products"))
	}

	rows := make([]domain.Product, 0)
	db = paginate(db, filter.Pagination, productSortColumns)
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, domain.NewStorageError(errors.Wrap(err, "list products"))
	}
	return rows, total, nil
}

func (s *GormStore) ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, int64, error) {
	db := s.orderQuery(ctx, filter)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, domain.NewStorageError(errors.Wrap(err, "count orders"))
	}

	rows := make([]domain.Order, 0)
	db = paginate(preloadOrder(db), filter.Pagination, orderSortColumns)
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, domain.NewStorageError(errors.Wrap(err, "list orders"))
	}
	return rows, total, nil
}

func (s *GormStore) OrderTotals(ctx context.Context, filter OrderFilter) ([]decimal.Decimal, error) {
	totals := make([]decimal.Decimal, 0)
	if err := s.orderQuery(ctx, filter).Order("id ASC").Pluck("total_amount", &totals).Error; err != nil {
		return nil, domain.NewStorageError(errors.Wrap(err, "query order totals"))
	}
	return totals, nil
}

func (s *GormStore) orderQuery(ctx context.Context, filter OrderFilter) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&domain.Order{})
	if filter.TotalGte != nil {
		db = db.Where("total_amount >= ?", *filter.TotalGte)
	}
	if filter.TotalLte != nil {
		db = db.Where("total_amount <= ?", *filter.TotalLte)
	}
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.CreatedAtGte != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAtGte)
	}
	if filter.CreatedAtLte != nil {
		db = db.Where("created_at <= ?", *filter.CreatedAtLte)
	}
	if q := strings.TrimSpace(filter.CustomerName); q != "" {
		cond, arg := containsCond(db, "c.name", q)
		db = db.Where("customer_id IN (SELECT c.id FROM crm_customer c WHERE "+cond+")", arg)
	}
	if q := strings.TrimSpace(filter.ProductName); q != "" {
		cond, arg := containsCond(db, "p.name", q)
		db = db.Where("id IN (SELECT oi.order_id FROM crm_order_item oi "+
			"JOIN crm_product p ON p.id = oi.product_id WHERE "+cond+")", arg)
	}
	if filter.ProductID != nil {
		db = db.Where("id IN (SELECT order_id FROM crm_order_item WHERE product_id = ?)", *filter.ProductID)
	}
	return db
}

func (s *GormStore) LowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error) {
	rows := make([]domain.Product, 0)
	err := s.db.WithContext(ctx).
		Where("stock <= ?", threshold).
		Order("stock ASC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewStorageError(errors.Wrap(err, "query low stock products"))
	}
	return rows, nil
}

func (s *GormStore) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	db := s.db.WithContext(ctx)
	if err := db.Model(&domain.Customer{}).Count(&c.Customers).Error; err != nil {
		return c, domain.NewStorageError(errors.Wrap(err, "count customers"))
	}
	if err := db.Model(&domain.Product{}).Count(&c.Products).Error; err != nil {
		return c, domain.NewStorageError(errors.Wrap(err, "count products"))
	}
	if err := db.Model(&domain.Order{}).Count(&c.Orders).Error; err != nil {
		return c, domain.NewStorageError(errors.Wrap(err, "count orders"))
	}
	return c, nil
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.NewStorageError(errors.Wrap(err, "transaction"))
}

var (
	customerSortColumns = map[string]string{
		"id":         "id",
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
	}
	productSortColumns = map[string]string{
		"id":         "id",
		"name":       "name",
		"price":      "price",
		"stock":      "stock",
		"created_at": "created_at",
	}
	orderSortColumns = map[string]string{
		"id":           "id",
		"total_amount": "total_amount",
		"created_at":   "created_at",
	}
)

// paginate applies a whitelisted sort and optional offset/limit.
func paginate(db *gorm.DB, p Pagination, allowed map[string]string) *gorm.DB {
	sortCol, ok := allowed[strings.TrimSpace(p.Sort)]
	if !ok || sortCol == "" {
		sortCol = "id"
	}
	order := strings.ToUpper(strings.TrimSpace(p.Order))
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	db = db.Order(sortCol + " " + order)
	if p.PageSize > 0 {
		page := p.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * p.PageSize).Limit(p.PageSize)
	}
	return db
}

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.Product")
}

func containsCond(db *gorm.DB, column, q string) (string, string) {
	if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
		return column + " ILIKE ?", "%" + q + "%"
	}
	return "LOWER(" + column + ") LIKE ?", "%" + strings.ToLower(q) + "%"
}

func whereContains(db *gorm.DB, column, q string) *gorm.DB {
	cond, arg := containsCond(db, column, q)
	return db.Where(cond, arg)
}

func classify(err error, op, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFoundError(notFoundMsg)
	}
	return domain.NewStorageError(errors.Wrap(err, op))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
