package reports

import (
	"context"
	"time"

	"github.com/abolajiii/LMBE/models"
	"github.com/abolajiii/LMBE/utils"
	"github.com/shopspring/decimal"
)

type MonthlyReportResponse struct {
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	TotalJobs      int             `json:"totalJobs"`
	TotalJobAmount decimal.Decimal `json:"totalJobAmount"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	DaysWithoutJob int             `json:"daysWithoutJob"`
	HighestAmount  decimal.Decimal `json:"highestAmount"`
	LowestAmount   decimal.Decimal `json:"lowestAmount"`
}

type CurrentMonthReportResponse struct {
	TotalAmountPaid decimal.Decimal       `json:"totalAmountPaid"`
	TotalExpenses   decimal.Decimal       `json:"totalExpenses"`
	TotalJobs       int                   `json:"totalJobs"`
	Transactions    []*models.Transaction `json:"monthlyTransactions"`
}

func monthRange(month time.Month, year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// GetMonthlyReport folds one calendar month. daysWithoutJob counts the days
// of the month with no active transaction; highest/lowest track the daily
// totalJobAmount across active days.
func GetMonthlyReport(ctx context.Context, month int, year int) (*MonthlyReportResponse, error) {
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
	daysInMonth := end.AddDate(0, 0, -1).Day()

	txns, err := models.ListTransactions(ctx, start, end.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	expenses, err := models.ListDailyExpenses(ctx, start, end.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	report := &MonthlyReportResponse{
		Month:          month,
		Year:           year,
		TotalJobAmount: decimal.Zero,
		TotalExpenses:  decimal.Zero,
		DaysWithoutJob: daysInMonth,
		HighestAmount:  decimal.Zero,
		LowestAmount:   decimal.Zero,
	}

	first := true
	for _, txn := range txns {
		if txn.NumberOfJobs == 0 {
			continue
		}
		report.TotalJobs += txn.NumberOfJobs
		report.TotalJobAmount = report.TotalJobAmount.Add(txn.TotalJobAmount)
		report.DaysWithoutJob--

		if first || txn.TotalJobAmount.GreaterThan(report.HighestAmount) {
			report.HighestAmount = txn.TotalJobAmount
		}
		if first || txn.TotalJobAmount.LessThan(report.LowestAmount) {
			report.LowestAmount = txn.TotalJobAmount
		}
		first = false
	}
	for _, expense := range expenses {
		report.TotalExpenses = report.TotalExpenses.Add(expense.TotalAmount)
	}

	return report, nil
}

// GetCurrentMonthReport is the running-month convenience view: collected
// money, expenses and the transaction list so far. totalJobs counts active
// days, not individual jobs.
func GetCurrentMonthReport(ctx context.Context) (*CurrentMonthReportResponse, error) {
	business, err := models.GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(business.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	start, end := monthRange(now.Month(), now.Year(), loc)

	txns, err := models.ListTransactions(ctx, start, end.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	expenses, err := models.ListDailyExpenses(ctx, start, end.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	report := &CurrentMonthReportResponse{
		TotalAmountPaid: decimal.Zero,
		TotalExpenses:   decimal.Zero,
		TotalJobs:       len(txns),
		Transactions:    txns,
	}
	for _, txn := range txns {
		report.TotalAmountPaid = report.TotalAmountPaid.Add(txn.TotalAmountPaid)
	}
	for _, expense := range expenses {
		report.TotalExpenses = report.TotalExpenses.Add(expense.TotalAmount)
	}
	return report, nil
}
