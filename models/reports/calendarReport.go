package reports

import (
	"context"
	"time"

	"github.com/abolajiii/LMBE/models"
	"github.com/abolajiii/LMBE/utils"
	"github.com/shopspring/decimal"
)

type CalendarDayEntry struct {
	Date    string          `json:"date"`
	Jobs    int             `json:"jobs"`
	Returns decimal.Decimal `json:"returns"`
}

// GetCalendarData returns one entry per day of the month, zeros included,
// so the calendar view never has holes.
func GetCalendarData(ctx context.Context, month int, year int) ([]*CalendarDayEntry, error) {
	if month < 1 || month > 12 {
		return nil, utils.ValidationErrorf("month must be between 1 and 12")
	}
	business, err := models.GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(business.Timezone)
	if err != nil {
		loc = time.UTC
	}
	start, end := monthRange(time.Month(month), year, loc)

	txns, err := models.ListTransactions(ctx, start, end.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*models.Transaction, len(txns))
	for _, txn := range txns {
		byDay[txn.TransactionDate.Format("2006-01-02")] = txn
	}

	daysInMonth := end.AddDate(0, 0, -1).Day()
	entries := make([]*CalendarDayEntry, 0, daysInMonth)
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		entry := &CalendarDayEntry{Date: key, Returns: decimal.Zero}
		if txn, ok := byDay[key]; ok {
			entry.Jobs = txn.NumberOfJobs
			entry.Returns = txn.TotalAmountPaid
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
