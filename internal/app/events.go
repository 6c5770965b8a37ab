package app

import (
	"sync/atomic"

	"github.com/talkincode/toughcrm/internal/crm"
	"github.com/talkincode/toughcrm/internal/domain"
	"go.uber.org/zap"
)

// EventStats counts CRM events observed since the process started.
type EventStats struct {
	CustomersCreated int64 `json:"customers_created"`
	CustomersDeleted int64 `json:"customers_deleted"`
	ProductsCreated  int64 `json:"products_created"`
	OrdersCreated    int64 `json:"orders_created"`
}

type eventCounters struct {
	customersCreated atomic.Int64
	customersDeleted atomic.Int64
	productsCreated  atomic.Int64
	ordersCreated    atomic.Int64
}

func (e *eventCounters) snapshot() EventStats {
	return EventStats{
		CustomersCreated: e.customersCreated.Load(),
		CustomersDeleted: e.customersDeleted.Load(),
		ProductsCreated:  e.productsCreated.Load(),
		OrdersCreated:    e.ordersCreated.Load(),
	}
}

// subscribeEvents attaches the audit log handlers to the event bus.
func (a *Application) subscribeEvents() {
	subs := map[string]interface{}{
		crm.TopicCustomerCreated: func(c domain.Customer) {
			a.events.customersCreated.Add(1)
			zap.L().Debug("event: customer created", zap.Int64("id", c.ID), zap.String("email", c.Email))
		},
		crm.TopicCustomerDeleted: func(id int64) {
			a.events.customersDeleted.Add(1)
			zap.L().Debug("event: customer deleted", zap.Int64("id", id))
		},
		crm.TopicProductCreated: func(p domain.Product) {
			a.events.productsCreated.Add(1)
			zap.L().Debug("event: product created", zap.Int64("id", p.ID), zap.String("name", p.Name))
			if p.Stock <= a.appConfig.Crm.LowStockThreshold {
				zap.L().Warn("new product is already low on stock",
					zap.Int64("id", p.ID), zap.Int("stock", p.Stock))
			}
		},
		crm.TopicOrderCreated: func(o domain.Order) {
			a.events.ordersCreated.Add(1)
			zap.L().Debug("event: order created",
				zap.Int64("id", o.ID),
				zap.String("total_amount", o.TotalAmount.StringFixed(2)))
		},
	}
	for topic, fn := range subs {
		if err := a.bus.Subscribe(topic, fn); err != nil {
			zap.S().Errorf("subscribe %s error %s", topic, err.Error())
		}
	}
}
