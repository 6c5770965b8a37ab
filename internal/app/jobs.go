package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/talkincode/toughcrm/internal/domain"
	"github.com/talkincode/toughcrm/internal/repository"
	"go.uber.org/zap"
)

const jobTimeout = 5 * time.Minute

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err = a.sched.AddFunc("@every 1h", a.SchedLowStockTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", a.SchedSummaryTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedLowStockTask logs products at or below the configured stock threshold.
func (a *Application) SchedLowStockTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	products, err := a.lowStockReport(ctx)
	if err != nil {
		zap.L().Error("low stock report failed", zap.Error(err))
		return
	}
	for _, p := range products {
		zap.L().Warn("product low on stock",
			zap.Int64("id", p.ID),
			zap.String("name", p.Name),
			zap.Int("stock", p.Stock))
	}
}

func (a *Application) lowStockReport(ctx context.Context) ([]domain.Product, error) {
	return a.crm.LowStockProducts(ctx, a.appConfig.Crm.LowStockThreshold)
}

// SchedSummaryTask logs entity counts and the order totals of the last day.
func (a *Application) SchedSummaryTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	counts, err := a.crm.Counts(ctx)
	if err != nil {
		zap.L().Error("crm summary failed", zap.Error(err))
		return
	}
	since := time.Now().Add(-24 * time.Hour)
	summary, err := a.crm.OrderSummary(ctx, repository.OrderFilter{CreatedAtGte: &since})
	if err != nil {
		zap.L().Error("crm summary failed", zap.Error(err))
		return
	}
	zap.L().Info("crm daily summary",
		zap.Int64("customers", counts.Customers),
		zap.Int64("products", counts.Products),
		zap.Int64("orders", counts.Orders),
		zap.Int("orders_last_day", summary.Count),
		zap.String("revenue_last_day", summary.Sum.StringFixed(2)))
}
