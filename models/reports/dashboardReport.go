package reports

import (
	"context"
	"time"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/models"
	"github.com/abolajiii/LMBE/utils"
	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

type DashboardResponse struct {
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalReturns  decimal.Decimal `json:"totalTransactions"`
	NetAmount     decimal.Decimal `json:"netAmount"`
}

// GetDashboardDetails is the all-time position: everything collected plus
// the opening balance, minus everything spent.
func GetDashboardDetails(ctx context.Context) (*DashboardResponse, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	started := time.Now()
	defer logSlowReport(ctx, "dashboard", started, nil)

	cacheKey := "report:dashboard:" + businessId
	if reportCacheEnabled() {
		var cached DashboardResponse
		if ok, err := cacheGet(cacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	business, err := models.GetBusinessById(ctx, businessId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()

	var totalReturns decimal.Decimal
	err = db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total_amount_paid), 0) FROM transactions WHERE business_id = ?`,
		businessId).Scan(&totalReturns).Error
	if err != nil {
		return nil, utils.PersistenceError("dashboard returns", err)
	}

	var totalExpenses decimal.Decimal
	err = db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total_amount), 0) FROM daily_expenses WHERE business_id = ?`,
		businessId).Scan(&totalExpenses).Error
	if err != nil {
		return nil, utils.PersistenceError("dashboard expenses", err)
	}

	response := &DashboardResponse{
		TotalExpenses: totalExpenses,
		TotalReturns:  totalReturns,
		NetAmount:     totalReturns.Add(business.OpeningBalance).Sub(totalExpenses),
	}
	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, response, reportCacheTTL())
	}
	return response, nil
}
