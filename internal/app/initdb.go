package app

import (
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/pkg/common"
	"go.uber.org/zap"
)

// checkProducts seeds the demo catalogue, skipping names that already exist.
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{Name: "demo-widget-basic", Price: decimal.RequireFromString("9.99"), Stock: 100},
		{Name: "demo-widget-pro", Price: decimal.RequireFromString("24.50"), Stock: 50},
		{Name: "demo-service-annual", Price: decimal.RequireFromString("199.00"), Stock: 0},
		{Name: "demo-addon-support", Price: decimal.RequireFromString("49.95"), Stock: 200},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count > 0 {
			continue
		}
		p.ID = common.UUIDint64()
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
		} else {
			zap.L().Info("initialized default product", zap.String("name", p.Name))
		}
	}
}
