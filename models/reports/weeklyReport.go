package reports

import (
	"context"
	"time"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/models"
	"github.com/abolajiii/LMBE/utils"
	"github.com/shopspring/decimal"
)

type WeekWindow struct {
	Week  int       `json:"week"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type WeeklyReportEntry struct {
	Week         int             `json:"week"`
	Start        string          `json:"start"`
	End          string          `json:"end"`
	Returns      decimal.Decimal `json:"returns"`
	NumberOfJobs int             `json:"numberOfJobs"`
	Expenses     decimal.Decimal `json:"expenses"`
}

// weeklyWindows lays out the trailing Monday-anchored weeks, newest first.
// A 6-working-day business works Monday to Saturday, so its window spans 5
// days past Monday; anything else spans 6.
func weeklyWindows(workingDaysPerWeek int, numberOfWeeks int, currentDate time.Time) []WeekWindow {
	spanDays := 6
	if workingDaysPerWeek == 6 {
		spanDays = 5
	}

	windows := make([]WeekWindow, 0, numberOfWeeks)
	for week := 1; week <= numberOfWeeks; week++ {
		offset := (int(currentDate.Weekday()) + 6) % 7
		monday := currentDate.AddDate(0, 0, -offset)
		end := monday.AddDate(0, 0, spanDays)
		windows = append(windows, WeekWindow{Week: week, Start: monday, End: end})
		currentDate = end.AddDate(0, 0, -7)
	}
	return windows
}

// GetWeeklyReport folds the trailing five working weeks. Weeks that saw no
// jobs are dropped from the result.
func GetWeeklyReport(ctx context.Context) ([]*WeeklyReportEntry, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	business, err := models.GetBusinessById(ctx, businessId)
	if err != nil {
		return nil, err
	}
	today, err := utils.ConvertToDate(time.Now(), business.Timezone)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	windows := weeklyWindows(business.WorkingDaysPerWeek, 5, today)

	var report []*WeeklyReportEntry
	for _, window := range windows {
		var fold struct {
			Returns      decimal.Decimal
			NumberOfJobs int
		}
		err := db.WithContext(ctx).Raw(
			`SELECT COALESCE(SUM(total_amount_paid), 0) AS returns,
			        COALESCE(SUM(number_of_jobs), 0) AS number_of_jobs
			 FROM transactions
			 WHERE business_id = ? AND transaction_date BETWEEN ? AND ?`,
			businessId, window.Start, window.End).Scan(&fold).Error
		if err != nil {
			return nil, utils.PersistenceError("weekly report", err)
		}
		if fold.NumberOfJobs == 0 {
			continue
		}

		var expenses decimal.Decimal
		err = db.WithContext(ctx).Raw(
			`SELECT COALESCE(SUM(total_amount), 0)
			 FROM daily_expenses
			 WHERE business_id = ? AND expense_date BETWEEN ? AND ?`,
			businessId, window.Start, window.End).Scan(&expenses).Error
		if err != nil {
			return nil, utils.PersistenceError("weekly report", err)
		}

		report = append(report, &WeeklyReportEntry{
			Week:         window.Week,
			Start:        window.Start.Format("2006-01-02"),
			End:          window.End.Format("2006-01-02"),
			Returns:      fold.Returns,
			NumberOfJobs: fold.NumberOfJobs,
			Expenses:     expenses,
		})
	}
	return report, nil
}
