package crm

import (
	"context"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughcrm/internal/repository"
)

// OrderSummary aggregates the totals of the orders matching filter.
// Sum is exact; mean and median are rounded to cents.
func (s *Service) OrderSummary(ctx context.Context, filter repository.OrderFilter) (OrderSummary, error) {
	totals, err := s.store.OrderTotals(ctx, filter)
	if err != nil {
		return OrderSummary{}, err
	}
	return summarize(totals), nil
}

func summarize(totals []decimal.Decimal) OrderSummary {
	summary := OrderSummary{Count: len(totals)}
	if len(totals) == 0 {
		return summary
	}

	data := make(stats.Float64Data, 0, len(totals))
	summary.Min, summary.Max = totals[0], totals[0]
	for _, t := range totals {
		summary.Sum = summary.Sum.Add(t)
		summary.Min = decimal.Min(summary.Min, t)
		summary.Max = decimal.Max(summary.Max, t)
		data = append(data, t.InexactFloat64())
	}

	if mean, err := data.Mean(); err == nil {
		summary.Mean = decimal.NewFromFloat(mean).Round(2)
	}
	if median, err := data.Median(); err == nil {
		summary.Median = decimal.NewFromFloat(median).Round(2)
	}
	return summary
}
