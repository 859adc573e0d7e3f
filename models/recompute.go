package models

import (
	"context"
	"time"

	"github.com/abolajiii/LMBE/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionTotals struct {
	TotalJobAmount   decimal.Decimal
	NumberOfJobs     int
	NumberOfPaidJobs int
	TotalAmountPaid  decimal.Decimal
	PaymentStatus    PaymentStatus
}

// computeTransactionTotals derives a day's aggregate from its jobs. Aggregates
// are never patched incrementally; every mutation path funnels through a full
// recompute so drift cannot accumulate.
func computeTransactionTotals(jobs []*Job) transactionTotals {
	totals := transactionTotals{
		TotalJobAmount:  decimal.Zero,
		TotalAmountPaid: decimal.Zero,
	}
	for _, job := range jobs {
		totals.NumberOfJobs++
		totals.TotalJobAmount = totals.TotalJobAmount.Add(job.Amount)
		if job.PaymentStatus == PaymentStatusPaid {
			totals.NumberOfPaidJobs++
			totals.TotalAmountPaid = totals.TotalAmountPaid.Add(job.Amount)
		}
	}

	// Status derivation: paid only when every job is paid, void when the day
	// holds no jobs, not-paid otherwise (a partially paid day stays not-paid).
	switch {
	case totals.NumberOfJobs == 0:
		totals.PaymentStatus = PaymentStatusVoid
	case totals.NumberOfPaidJobs == totals.NumberOfJobs:
		totals.PaymentStatus = PaymentStatusPaid
	default:
		totals.PaymentStatus = PaymentStatusNotPaid
	}
	return totals
}

// RecomputeTransactionAggregates rewrites one Transaction row from its owned
// jobs. Must run inside the caller's tx while the posting lock is held.
func RecomputeTransactionAggregates(ctx context.Context, tx *gorm.DB, businessId string, transactionId int) error {
	var jobs []*Job
	err := tx.WithContext(ctx).
		Where("business_id = ? AND transaction_id = ?", businessId, transactionId).
		Find(&jobs).Error
	if err != nil {
		return utils.PersistenceError("load jobs for recompute", err)
	}

	totals := computeTransactionTotals(jobs)
	err = tx.WithContext(ctx).Model(&Transaction{}).
		Where("business_id = ? AND id = ?", businessId, transactionId).
		Updates(map[string]interface{}{
			"total_job_amount":    totals.TotalJobAmount,
			"number_of_jobs":      totals.NumberOfJobs,
			"number_of_paid_jobs": totals.NumberOfPaidJobs,
			"total_amount_paid":   totals.TotalAmountPaid,
			"payment_status":      totals.PaymentStatus,
		}).Error
	if err != nil {
		return utils.PersistenceError("recompute transaction", err)
	}
	return nil
}

// RecomputeClientAggregates rewrites a client's rollup from every job the
// business still holds under that customer name. lastJobDate goes back to
// NULL when the last job disappears.
func RecomputeClientAggregates(ctx context.Context, tx *gorm.DB, businessId string, name string) error {
	var jobs []*Job
	err := tx.WithContext(ctx).
		Where("business_id = ? AND customer_name = ?", businessId, name).
		Find(&jobs).Error
	if err != nil {
		return utils.PersistenceError("load jobs for client recompute", err)
	}

	totalAmount := decimal.Zero
	var lastJobDate *time.Time
	for _, job := range jobs {
		totalAmount = totalAmount.Add(job.Amount)
		if lastJobDate == nil || job.JobDate.After(*lastJobDate) {
			d := job.JobDate
			lastJobDate = &d
		}
	}

	err = tx.WithContext(ctx).Model(&Client{}).
		Where("business_id = ? AND name = ?", businessId, name).
		Updates(map[string]interface{}{
			"total_jobs":       len(jobs),
			"total_job_amount": totalAmount,
			"last_job_date":    lastJobDate,
		}).Error
	if err != nil {
		return utils.PersistenceError("recompute client", err)
	}
	return nil
}
