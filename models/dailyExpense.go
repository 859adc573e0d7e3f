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

// DailyExpense is the per-day expense bucket. One row per (business, day);
// logging again on the same day appends items and bumps the total.
type DailyExpense struct {
	ID          int             `gorm:"primary_key" json:"id"`
	BusinessId  string          `gorm:"size:36;not null;uniqueIndex:idx_daily_expenses_business_day" json:"business_id"`
	ExpenseDate time.Time       `gorm:"not null;uniqueIndex:idx_daily_expenses_business_day" json:"expense_date"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	NumberOfExpenses int             `gorm:"default:0" json:"number_of_expenses"`
	Items            []*ExpenseItem  `gorm:"foreignKey:DailyExpenseId" json:"items"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type ExpenseItem struct {
	ID             int             `gorm:"primary_key" json:"id"`
	BusinessId     string          `gorm:"size:36;index;not null" json:"business_id"`
	DailyExpenseId int             `gorm:"index;not null" json:"daily_expense_id"`
	Label          string          `gorm:"size:255;not null" json:"label"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewExpenseItem struct {
	Label  string          `json:"label" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

func validateExpenseItems(items []*NewExpenseItem) error {
	if len(items) == 0 {
		return utils.ValidationErrorf("at least one expense item is required")
	}
	for _, item := range items {
		if err := utils.ValidateStruct(item); err != nil {
			return err
		}
		if item.Amount.IsNegative() {
			return utils.ValidationErrorf("expense amount must not be negative")
		}
	}
	return nil
}

// LogExpenses appends expense items to the calendar day of date. The day's
// bucket is created on first use.
func LogExpenses(ctx context.Context, date time.Time, items []*NewExpenseItem) (*DailyExpense, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	if err := validateExpenseItems(items); err != nil {
		return nil, err
	}
	business, err := GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	day, err := utils.ConvertToDate(date, business.Timezone)
	if err != nil {
		return nil, utils.ValidationErrorf("invalid date")
	}

	release, err := utils.BusinessLock(ctx, businessId, ExpenseLock, "dailyExpense", "LogExpenses")
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

	var expense DailyExpense
	err = tx.WithContext(ctx).
		Where("business_id = ? AND expense_date = ?", businessId, day).
		First(&expense).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return nil, utils.PersistenceError("find daily expense", err)
		}
		expense = DailyExpense{
			BusinessId:  businessId,
			ExpenseDate: day,
			TotalAmount: decimal.Zero,
		}
		if err := tx.WithContext(ctx).Create(&expense).Error; err != nil {
			tx.Rollback()
			return nil, utils.PersistenceError("create daily expense", err)
		}
	}

	added := decimal.Zero
	rows := make([]*ExpenseItem, 0, len(items))
	for _, item := range items {
		added = added.Add(item.Amount)
		rows = append(rows, &ExpenseItem{
			BusinessId:     businessId,
			DailyExpenseId: expense.ID,
			Label:          item.Label,
			Amount:         item.Amount,
		})
	}
	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		tx.Rollback()
		return nil, utils.PersistenceError("create expense items", err)
	}

	err = tx.WithContext(ctx).Model(&DailyExpense{}).
		Where("business_id = ? AND id = ?", businessId, expense.ID).
		Updates(map[string]interface{}{
			"total_amount":       expense.TotalAmount.Add(added),
			"number_of_expenses": expense.NumberOfExpenses + len(rows),
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.PersistenceError("update daily expense total", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.PersistenceError("log expenses", err)
	}

	return GetDailyExpense(ctx, expense.ID)
}

func GetDailyExpense(ctx context.Context, id int) (*DailyExpense, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	expense, err := utils.FetchModel[DailyExpense](ctx, businessId, id, "Items")
	if err != nil {
		return nil, utils.NotFoundErrorf("daily expense %d not found", id)
	}
	return expense, nil
}

func ListDailyExpenses(ctx context.Context, fromDate time.Time, toDate time.Time) ([]*DailyExpense, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}

	db := config.GetDB()
	var expenses []*DailyExpense
	err := db.WithContext(ctx).Preload("Items").
		Where("business_id = ? AND expense_date BETWEEN ? AND ?", businessId, fromDate, toDate).
		Order("expense_date ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, utils.PersistenceError("list daily expenses", err)
	}
	return expenses, nil
}

// DeleteDailyExpense removes a day's bucket and its items.
func DeleteDailyExpense(ctx context.Context, id int) (*DailyExpense, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}

	expense, err := utils.FetchModel[DailyExpense](ctx, businessId, id, "Items")
	if err != nil {
		return nil, utils.NotFoundErrorf("daily expense %d not found", id)
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).
		Where("business_id = ? AND daily_expense_id = ?", businessId, id).
		Delete(&ExpenseItem{}).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.PersistenceError("delete expense items", err)
	}
	if err := tx.WithContext(ctx).Delete(&DailyExpense{}, "business_id = ? AND id = ?", businessId, id).Error; err != nil {
		tx.Rollback()
		return nil, utils.PersistenceError("delete daily expense", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.PersistenceError("delete daily expense", err)
	}

	return expense, nil
}
