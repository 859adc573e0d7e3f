package models

import (
	"context"
	"errors"
	"time"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is the per-day aggregate of a business's jobs. One row per
// (business, calendar day); never deleted, a day with no jobs left is void.
type Transaction struct {
	ID               int             `gorm:"primary_key" json:"id"`
	BusinessId       string          `gorm:"size:36;not null;uniqueIndex:idx_transactions_business_day" json:"business_id"`
	TransactionDate  time.Time       `gorm:"not null;uniqueIndex:idx_transactions_business_day" json:"transaction_date"`
	TotalJobAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_job_amount"`
	NumberOfJobs     int             `gorm:"default:0" json:"number_of_jobs"`
	NumberOfPaidJobs int             `gorm:"default:0" json:"number_of_paid_jobs"`
	TotalAmountPaid  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount_paid"`
	PaymentStatus    PaymentStatus   `gorm:"size:20;default:'void'" json:"payment_status"`
	Jobs             []*Job          `gorm:"foreignKey:TransactionId" json:"jobs"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetTransaction(ctx context.Context, id int) (*Transaction, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	txn, err := utils.FetchModel[Transaction](ctx, businessId, id, "Jobs")
	if err != nil {
		return nil, utils.NotFoundErrorf("transaction %d not found", id)
	}
	return txn, nil
}

// GetTransactionByDate returns the aggregate row for the given calendar day,
// or nil when the day has never had jobs.
func GetTransactionByDate(ctx context.Context, date time.Time) (*Transaction, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	business, err := GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	day, err := utils.ConvertToDate(date, business.Timezone)
	if err != nil {
		return nil, utils.ValidationErrorf("invalid date")
	}

	db := config.GetDB()
	var txn Transaction
	err = db.WithContext(ctx).Preload("Jobs").
		Where("business_id = ? AND transaction_date = ?", businessId, day).
		First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.PersistenceError("get transaction by date", err)
	}
	return &txn, nil
}

func ListTransactions(ctx context.Context, fromDate time.Time, toDate time.Time) ([]*Transaction, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}

	db := config.GetDB()
	var txns []*Transaction
	err := db.WithContext(ctx).Preload("Jobs").
		Where("business_id = ? AND transaction_date BETWEEN ? AND ?", businessId, fromDate, toDate).
		Order("transaction_date ASC").
		Find(&txns).Error
	if err != nil {
		return nil, utils.PersistenceError("list transactions", err)
	}
	return txns, nil
}

// BulkUpdateTransactionJobs marks every job of a day done and/or paid in one
// shot. Already-satisfied requests return without touching the store, so the
// operation is idempotent.
func BulkUpdateTransactionJobs(ctx context.Context, transactionId int, markDone bool, markPaid bool) (*Transaction, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}

	txn, err := utils.FetchModel[Transaction](ctx, businessId, transactionId, "Jobs")
	if err != nil {
		return nil, utils.NotFoundErrorf("transaction %d not found", transactionId)
	}
	if !markDone && !markPaid {
		return txn, nil
	}

	allDone := true
	allPaid := true
	for _, job := range txn.Jobs {
		if job.JobStatus != JobStatusDone {
			allDone = false
		}
		if job.PaymentStatus != PaymentStatusPaid {
			allPaid = false
		}
	}
	if (!markDone || allDone) && (!markPaid || allPaid) {
		return txn, nil
	}

	release, err := utils.BusinessLock(ctx, businessId, ReconcileLock, "transaction", "BulkUpdateTransactionJobs")
	if err != nil {
		return nil, err
	}
	defer release()

	db := config.GetDB()
	tx := db.Begin()
	if err := AcquireBusinessPostingLock(tx, businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	defer ReleaseBusinessPostingLock(tx, businessId)

	updates := map[string]interface{}{}
	if markDone {
		updates["job_status"] = JobStatusDone
	}
	if markPaid {
		updates["payment_status"] = PaymentStatusPaid
	}
	err = tx.WithContext(ctx).Model(&Job{}).
		Where("business_id = ? AND transaction_id = ?", businessId, transactionId).
		Updates(updates).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.PersistenceError("bulk update jobs", err)
	}

	if err := RecomputeTransactionAggregates(ctx, tx, businessId, transactionId); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.PersistenceError("bulk update jobs", err)
	}

	return GetTransaction(ctx, transactionId)
}
