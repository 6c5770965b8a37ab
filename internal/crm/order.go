package crm

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/internal/repository"
	"go.uber.org/zap"
)

// CreateOrder creates an order for an existing customer with the given products.
// The order row, its items and its total are written in one transaction, so a
// failure leaves no order behind. Repeated product ids are attached once.
func (s *Service) CreateOrder(ctx context.Context, in OrderInput) OrderResult {
	var created *domain.Order
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		order, err := s.createOrder(ctx, tx, in)
		if err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		logRejection("create order rejected", err,
			zap.Int64("customer_id", in.CustomerID),
			zap.Int64s("product_ids", in.ProductIDs))
		return OrderResult{Success: false, Error: domain.Message(err)}
	}

	zap.L().Info("order created",
		zap.Int64("id", created.ID),
		zap.Int64("customer_id", in.CustomerID),
		zap.Int("items", len(created.Items)),
		zap.String("total_amount", created.TotalAmount.StringFixed(2)))
	s.publish(TopicOrderCreated, *created)
	return OrderResult{Success: true, Order: created}
}

func (s *Service) createOrder(ctx context.Context, tx repository.Store, in OrderInput) (*domain.Order, error) {
	customer, err := tx.GetCustomer(ctx, in.CustomerID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFoundError(msgCustomerMissing)
	} else if err != nil {
		return nil, err
	}

	productIDs := uniqueIDs(in.ProductIDs)
	if len(productIDs) == 0 {
		return nil, domain.NewConstraintError(msgNoProducts)
	}

	order := &domain.Order{
		CustomerID:  &customer.ID,
		TotalAmount: decimal.Zero,
	}
	if err := tx.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	for i, pid := range productIDs {
		product, err := tx.GetProduct(ctx, pid)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError(fmt.Sprintf("Product with ID %d does not exist", pid))
		} else if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Position:  i,
			UnitPrice: product.Price,
		})
		order.TotalAmount = order.TotalAmount.Add(product.Price)
	}

	if err := tx.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	return tx.GetOrder(ctx, order.ID)
}

// uniqueIDs drops repeated ids, keeping the first occurrence order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func isStorageError(err error) bool {
	return errors.Is(err, domain.ErrStorage)
}
