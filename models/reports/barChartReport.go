package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/models"
	"github.com/abolajiii/LMBE/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type BarChartResponse struct {
	Returns  [12]decimal.Decimal `json:"returns"`
	Expenses [12]decimal.Decimal `json:"expenses"`
}

// GetBarChartDetails sums collected money and expenses per month of the
// given year, one goroutine per month.
func GetBarChartDetails(ctx context.Context, year int) (*BarChartResponse, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	started := time.Now()
	defer logSlowReport(ctx, "bar_chart", started, map[string]any{"year": year})

	cacheKey := fmt.Sprintf("report:barchart:%s:%d", businessId, year)
	if reportCacheEnabled() {
		var cached BarChartResponse
		if ok, err := cacheGet(cacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	business, err := models.GetBusinessById(ctx, businessId)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(business.Timezone)
	if err != nil {
		loc = time.UTC
	}

	db := config.GetDB()
	var chart BarChartResponse
	g, gctx := errgroup.WithContext(ctx)

	for monthIndex := 0; monthIndex < 12; monthIndex++ {
		monthIndex := monthIndex
		g.Go(func() error {
			start, end := monthRange(time.Month(monthIndex+1), year, loc)
			last := end.AddDate(0, 0, -1)

			var returns decimal.Decimal
			err := db.WithContext(gctx).Raw(
				`SELECT COALESCE(SUM(total_amount_paid), 0)
				 FROM transactions
				 WHERE business_id = ? AND transaction_date BETWEEN ? AND ?`,
				businessId, start, last).Scan(&returns).Error
			if err != nil {
				return utils.PersistenceError("bar chart returns", err)
			}

			var expenses decimal.Decimal
			err = db.WithContext(gctx).Raw(
				`SELECT COALESCE(SUM(total_amount), 0)
				 FROM daily_expenses
				 WHERE business_id = ? AND expense_date BETWEEN ? AND ?`,
				businessId, start, last).Scan(&expenses).Error
			if err != nil {
				return utils.PersistenceError("bar chart expenses", err)
			}

			chart.Returns[monthIndex] = returns
			chart.Expenses[monthIndex] = expenses
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, &chart, reportCacheTTL())
	}
	return &chart, nil
}
