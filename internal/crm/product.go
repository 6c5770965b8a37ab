package crm

import (
	"context"
	"strings"

	"github.com/talkincode/toughcrm/internal/domain"
	"go.uber.org/zap"
)

// CreateProduct validates and stores a product. Prices are kept to two decimals.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) ProductResult {
	name := strings.TrimSpace(in.Name)
	price := in.Price.Round(2)

	var err error
	switch {
	case name == "":
		err = domain.NewValidationError(msgNameRequired)
	case !price.IsPositive():
		err = domain.NewValidationError(msgPriceInvalid)
	case in.Stock < 0:
		err = domain.NewValidationError(msgStockInvalid)
	}
	if err != nil {
		logRejection("create product rejected", err, zap.String("name", name))
		return ProductResult{Success: false, Message: domain.Message(err)}
	}

	product := &domain.Product{
		Name:  name,
		Price: price,
		Stock: in.Stock,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		logRejection("create product failed", err, zap.String("name", name))
		return ProductResult{Success: false, Message: domain.Message(err)}
	}

	zap.L().Info("product created",
		zap.Int64("id", product.ID),
		zap.String("name", product.Name),
		zap.String("price", product.Price.StringFixed(2)))
	s.publish(TopicProductCreated, *product)
	return ProductResult{Success: true, Message: msgCreated, Product: product}
}
