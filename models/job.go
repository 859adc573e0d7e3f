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

// Job is a single delivery booked by a customer. Jobs belong to the
// Transaction of their calendar day; job_date always equals the owning
// transaction's date.
type Job struct {
	ID            int             `gorm:"primary_key" json:"id"`
	BusinessId    string          `gorm:"size:36;index;not null" json:"business_id"`
	TransactionId int             `gorm:"index;not null" json:"transaction_id"`
	CustomerName  string          `gorm:"size:255;index;not null" json:"customer_name"`
	PickUp        string          `gorm:"size:255" json:"pick_up"`
	Delivery      string          `gorm:"size:255;not null" json:"delivery"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Payer         string          `gorm:"size:64" json:"payer"`
	JobStatus     JobStatus       `gorm:"size:20;default:'pending'" json:"job_status"`
	PaymentStatus PaymentStatus   `gorm:"size:20;default:'not-paid'" json:"payment_status"`
	JobDate       time.Time       `gorm:"index;not null" json:"job_date"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDelivery struct {
	Location string          `json:"location" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Payer    string          `json:"payer" validate:"required"`
}

type NewDayJobs struct {
	Date         time.Time      `json:"date" validate:"required"`
	CustomerName string         `json:"customer_name" validate:"required"`
	PickUp       string         `json:"pick_up"`
	Deliveries   []*NewDelivery `json:"deliveries" validate:"required,min=1,dive"`
}

// JobPatch carries the updatable fields of a job. Nil means "leave as is".
type JobPatch struct {
	CustomerName  *string          `json:"customer_name"`
	PickUp        *string          `json:"pick_up"`
	Delivery      *string          `json:"delivery"`
	Amount        *decimal.Decimal `json:"amount"`
	Payer         *string          `json:"payer"`
	JobStatus     *JobStatus       `json:"job_status"`
	PaymentStatus *PaymentStatus   `json:"payment_status"`
}

func (input *NewDayJobs) validate() error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	for _, delivery := range input.Deliveries {
		if delivery.Amount.IsNegative() {
			return utils.ValidationErrorf("delivery amount must not be negative")
		}
	}
	return nil
}

func (patch *JobPatch) validate() error {
	if patch.CustomerName != nil && *patch.CustomerName == "" {
		return utils.ValidationErrorf("customer name must not be empty")
	}
	if patch.Delivery != nil && *patch.Delivery == "" {
		return utils.ValidationErrorf("delivery must not be empty")
	}
	if patch.Amount != nil && patch.Amount.IsNegative() {
		return utils.ValidationErrorf("amount must not be negative")
	}
	if patch.JobStatus != nil {
		switch *patch.JobStatus {
		case JobStatusPending, JobStatusDone, JobStatusCanceled, JobStatusNextDay:
		default:
			return utils.ValidationErrorf("invalid job status %s", *patch.JobStatus)
		}
	}
	if patch.PaymentStatus != nil && *patch.PaymentStatus != PaymentStatusPaid && *patch.PaymentStatus != PaymentStatusNotPaid {
		return utils.ValidationErrorf("invalid payment status %s", *patch.PaymentStatus)
	}
	return nil
}

func GetJob(ctx context.Context, id int) (*Job, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	job, err := utils.FetchModel[Job](ctx, businessId, id)
	if err != nil {
		return nil, utils.NotFoundErrorf("job %d not found", id)
	}
	return job, nil
}

// findOrCreateTransactionTx returns the day's aggregate row, creating a void
// one on first use of the day.
func findOrCreateTransactionTx(ctx context.Context, tx *gorm.DB, businessId string, day time.Time) (*Transaction, error) {
	var txn Transaction
	err := tx.WithContext(ctx).
		Where("business_id = ? AND transaction_date = ?", businessId, day).
		First(&txn).Error
	if err == nil {
		return &txn, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.PersistenceError("find transaction", err)
	}

	txn = Transaction{
		BusinessId:      businessId,
		TransactionDate: day,
		TotalJobAmount:  decimal.Zero,
		TotalAmountPaid: decimal.Zero,
		PaymentStatus:   PaymentStatusVoid,
	}
	if err := tx.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, utils.PersistenceError("create transaction", err)
	}
	return &txn, nil
}

// reconcileDayJobs inserts one job per delivery under the day's transaction
// and recomputes the transaction and client aggregates. Runs inside the
// caller's tx; the caller holds the reconcile and posting locks.
func reconcileDayJobs(ctx context.Context, tx *gorm.DB, businessId string, day time.Time, customerName string, pickUp string, deliveries []*NewDelivery) (*Transaction, error) {
	txn, err := findOrCreateTransactionTx(ctx, tx, businessId, day)
	if err != nil {
		return nil, err
	}
	if _, err := getOrCreateClientTx(ctx, tx, businessId, customerName, nil, nil); err != nil {
		return nil, err
	}

	jobs := make([]*Job, 0, len(deliveries))
	for _, delivery := range deliveries {
		jobs = append(jobs, &Job{
			BusinessId:    businessId,
			TransactionId: txn.ID,
			CustomerName:  customerName,
			PickUp:        pickUp,
			Delivery:      delivery.Location,
			Amount:        delivery.Amount,
			Payer:         NormalizePayer(delivery.Payer),
			JobStatus:     JobStatusPending,
			PaymentStatus: PaymentStatusNotPaid,
			JobDate:       day,
		})
	}
	if err := tx.WithContext(ctx).Create(&jobs).Error; err != nil {
		return nil, utils.PersistenceError("create jobs", err)
	}

	if err := RecomputeTransactionAggregates(ctx, tx, businessId, txn.ID); err != nil {
		return nil, err
	}
	if err := RecomputeClientAggregates(ctx, tx, businessId, customerName); err != nil {
		return nil, err
	}
	return txn, nil
}

// CreateJobsForDay books a customer's deliveries onto the calendar day of
// input.Date (in the business timezone) and reconciles the day's aggregate.
func CreateJobsForDay(ctx context.Context, input *NewDayJobs) (*Transaction, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	business, err := GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	day, err := utils.ConvertToDate(input.Date, business.Timezone)
	if err != nil {
		return nil, utils.ValidationErrorf("invalid date")
	}

	release, err := utils.BusinessLock(ctx, businessId, ReconcileLock, "job", "CreateJobsForDay")
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

	txn, err := reconcileDayJobs(ctx, tx, businessId, day, input.CustomerName, input.PickUp, input.Deliveries)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, utils.PersistenceError("create jobs for day", err)
	}

	return GetTransaction(ctx, txn.ID)
}

// UpdateJob patches one job and recomputes the aggregates it feeds. The
// owning transaction is resolved through the job's stored transaction_id, so
// the recompute lands on the right day even if job_date was edited upstream.
func UpdateJob(ctx context.Context, id int, patch *JobPatch) (*Job, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}

	job, err := utils.FetchModel[Job](ctx, businessId, id)
	if err != nil {
		return nil, utils.NotFoundErrorf("job %d not found", id)
	}

	release, err := utils.BusinessLock(ctx, businessId, ReconcileLock, "job", "UpdateJob")
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

	oldName := job.CustomerName
	updates := map[string]interface{}{}
	if patch.CustomerName != nil {
		updates["customer_name"] = *patch.CustomerName
	}
	if patch.PickUp != nil {
		updates["pick_up"] = *patch.PickUp
	}
	if patch.Delivery != nil {
		updates["delivery"] = *patch.Delivery
	}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.Payer != nil {
		updates["payer"] = NormalizePayer(*patch.Payer)
	}
	if patch.JobStatus != nil {
		updates["job_status"] = *patch.JobStatus
	}
	if patch.PaymentStatus != nil {
		updates["payment_status"] = *patch.PaymentStatus
	}
	if len(updates) > 0 {
		err = tx.WithContext(ctx).Model(&Job{}).
			Where("business_id = ? AND id = ?", businessId, id).
			Updates(updates).Error
		if err != nil {
			tx.Rollback()
			return nil, utils.PersistenceError("update job", err)
		}
	}

	if err := RecomputeTransactionAggregates(ctx, tx, businessId, job.TransactionId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RecomputeClientAggregates(ctx, tx, businessId, oldName); err != nil {
		tx.Rollback()
		return nil, err
	}
	if patch.CustomerName != nil && *patch.CustomerName != oldName {
		if _, err := getOrCreateClientTx(ctx, tx, businessId, *patch.CustomerName, nil, nil); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := RecomputeClientAggregates(ctx, tx, businessId, *patch.CustomerName); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.PersistenceError("update job", err)
	}

	return GetJob(ctx, id)
}

// DeleteJob removes one job and recomputes the day and client it belonged
// to. A day left without jobs stays as a void transaction row.
func DeleteJob(ctx context.Context, id int) (*Job, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}

	job, err := utils.FetchModel[Job](ctx, businessId, id)
	if err != nil {
		return nil, utils.NotFoundErrorf("job %d not found", id)
	}

	release, err := utils.BusinessLock(ctx, businessId, ReconcileLock, "job", "DeleteJob")
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

	if err := tx.WithContext(ctx).Delete(&job).Error; err != nil {
		tx.Rollback()
		return nil, utils.PersistenceError("delete job", err)
	}

	var ownerCount int64
	err = tx.WithContext(ctx).Model(&Transaction{}).
		Where("business_id = ? AND id = ?", businessId, job.TransactionId).
		Count(&ownerCount).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.PersistenceError("delete job", err)
	}
	if ownerCount == 0 {
		// Orphaned job; nothing to recompute on the transaction side.
		logger := config.GetLogger()
		config.LogError(logger, "job", "DeleteJob", "owning transaction missing", job.ID, errors.New("transaction not found"))
	} else {
		if err := RecomputeTransactionAggregates(ctx, tx, businessId, job.TransactionId); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := RecomputeClientAggregates(ctx, tx, businessId, job.CustomerName); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.PersistenceError("delete job", err)
	}

	return job, nil
}
