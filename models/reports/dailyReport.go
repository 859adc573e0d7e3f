package reports

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/models"
	"github.com/abolajiii/LMBE/utils"
	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	NoReportMessage = "No report for the day ✍️"
	GetPaidMessage  = "Get paid! Before generating report ✍️"
)

type DayReportEntry struct {
	Date         string          `json:"date"`
	Returns      decimal.Decimal `json:"returns"`
	Expenses     decimal.Decimal `json:"expenses"`
	NumberOfJobs int             `json:"numberOfJobs"`
}

type ComparisonNote struct {
	Returns      string `json:"returns"`
	Expenses     string `json:"expenses"`
	NumberOfJobs string `json:"numberOfJobs"`
}

type DailyReportResponse struct {
	Message string           `json:"message,omitempty"`
	Report  []DayReportEntry `json:"report,omitempty"`
	Note    *ComparisonNote  `json:"comparisonNote,omitempty"`
}

// GetDailyReport compares today against the latest prior day. Days with no
// jobs, or with jobs but no money collected yet, get a sentinel message
// instead of a comparison.
func GetDailyReport(ctx context.Context, rng *rand.Rand) (*DailyReportResponse, error) {
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

	var todayTxn models.Transaction
	todayErr := db.WithContext(ctx).
		Where("business_id = ? AND transaction_date = ?", businessId, today).
		First(&todayTxn).Error
	if todayErr != nil && !errors.Is(todayErr, gorm.ErrRecordNotFound) {
		return nil, utils.PersistenceError("daily report", todayErr)
	}

	if todayErr != nil || todayTxn.NumberOfJobs == 0 {
		return &DailyReportResponse{Message: NoReportMessage}, nil
	}
	if todayTxn.TotalAmountPaid.IsZero() {
		return &DailyReportResponse{Message: GetPaidMessage}, nil
	}

	entries := []DayReportEntry{{
		Date:         today.Format("2006-01-02"),
		Returns:      todayTxn.TotalAmountPaid,
		Expenses:     expensesForDay(ctx, db, businessId, today),
		NumberOfJobs: todayTxn.NumberOfJobs,
	}}

	var priorTxn models.Transaction
	priorErr := db.WithContext(ctx).
		Where("business_id = ? AND transaction_date < ?", businessId, today).
		Order("transaction_date DESC").
		First(&priorTxn).Error
	if priorErr != nil && !errors.Is(priorErr, gorm.ErrRecordNotFound) {
		return nil, utils.PersistenceError("daily report", priorErr)
	}
	if priorErr == nil {
		entries = append(entries, DayReportEntry{
			Date:         priorTxn.TransactionDate.Format("2006-01-02"),
			Returns:      priorTxn.TotalAmountPaid,
			Expenses:     expensesForDay(ctx, db, businessId, priorTxn.TransactionDate),
			NumberOfJobs: priorTxn.NumberOfJobs,
		})
	}

	note := buildComparisonNote(entries, rng)
	return &DailyReportResponse{Report: entries, Note: &note}, nil
}

func expensesForDay(ctx context.Context, db *gorm.DB, businessId string, day time.Time) decimal.Decimal {
	var total decimal.Decimal
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total_amount), 0) FROM daily_expenses WHERE business_id = ? AND expense_date = ?`,
		businessId, day).Scan(&total).Error
	if err != nil {
		return decimal.Zero
	}
	return total
}

// buildComparisonNote grades today against the prior entry on all three
// axes. With no prior day to compare, every axis reads positive.
func buildComparisonNote(entries []DayReportEntry, rng *rand.Rand) ComparisonNote {
	if len(entries) < 2 {
		return ComparisonNote{
			Returns:      pickPhrase(categoryReturns, SentimentPositive, rng),
			Expenses:     pickPhrase(categoryExpenses, SentimentPositive, rng),
			NumberOfJobs: pickPhrase(categoryJobs, SentimentPositive, rng),
		}
	}
	today, prior := entries[0], entries[1]
	return ComparisonNote{
		Returns:      pickPhrase(categoryReturns, compareDecimals(today.Returns, prior.Returns, true), rng),
		Expenses:     pickPhrase(categoryExpenses, compareDecimals(today.Expenses, prior.Expenses, false), rng),
		NumberOfJobs: pickPhrase(categoryJobs, compareInts(today.NumberOfJobs, prior.NumberOfJobs, true), rng),
	}
}

func compareDecimals(today decimal.Decimal, prior decimal.Decimal, higherIsBetter bool) Sentiment {
	switch today.Cmp(prior) {
	case 0:
		return SentimentNeutral
	case 1:
		if higherIsBetter {
			return SentimentPositive
		}
		return SentimentNegative
	default:
		if higherIsBetter {
			return SentimentNegative
		}
		return SentimentPositive
	}
}

func compareInts(today int, prior int, higherIsBetter bool) Sentiment {
	switch {
	case today == prior:
		return SentimentNeutral
	case today > prior:
		if higherIsBetter {
			return SentimentPositive
		}
		return SentimentNegative
	default:
		if higherIsBetter {
			return SentimentNegative
		}
		return SentimentPositive
	}
}
