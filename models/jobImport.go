package models

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// JobRow is one normalized line of a job sheet.
type JobRow struct {
	RowNumber int             `json:"row_number"`
	Delivery  string          `json:"delivery"`
	Payer     string          `json:"payer"`
	Amount    decimal.Decimal `json:"amount"`
}

type NewJobImport struct {
	Date         time.Time `json:"date" validate:"required"`
	CustomerName string    `json:"customer_name" validate:"required"`
	PickUp       string    `json:"pick_up"`
}

// ExtractJobRows reads a job sheet workbook into rows. Column headers are
// matched case-insensitively; only Delivery, Payer and Amount are read,
// extra columns are ignored. Blank lines are skipped.
func ExtractJobRows(reader io.Reader) ([]*JobRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, utils.ValidationErrorf("could not read workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, utils.ValidationErrorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, utils.ValidationErrorf("could not read sheet %s", sheets[0])
	}
	if len(rows) < 2 {
		return nil, utils.ValidationErrorf("job sheet has no data rows")
	}

	deliveryCol, payerCol, amountCol := -1, -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "delivery":
			deliveryCol = i
		case "payer":
			payerCol = i
		case "amount":
			amountCol = i
		}
	}
	if deliveryCol < 0 || payerCol < 0 || amountCol < 0 {
		return nil, utils.ValidationErrorf("job sheet must have Delivery, Payer and Amount columns")
	}

	cellAt := func(row []string, col int) string {
		if col < len(row) {
			return strings.TrimSpace(row[col])
		}
		return ""
	}

	var result []*JobRow
	for i, row := range rows[1:] {
		rowNumber := i + 2
		delivery := cellAt(row, deliveryCol)
		payer := cellAt(row, payerCol)
		amountRaw := cellAt(row, amountCol)
		if delivery == "" && payer == "" && amountRaw == "" {
			continue
		}
		if delivery == "" {
			return nil, utils.ValidationErrorf("row %d: missing delivery", rowNumber)
		}
		if payer == "" {
			return nil, utils.ValidationErrorf("row %d: missing payer", rowNumber)
		}
		if amountRaw == "" {
			return nil, utils.ValidationErrorf("row %d: missing amount", rowNumber)
		}
		amount, err := utils.ParseDecimal(amountRaw)
		if err != nil {
			return nil, utils.ValidationErrorf("row %d: invalid amount %q", rowNumber, amountRaw)
		}
		if amount.IsNegative() {
			return nil, utils.ValidationErrorf("row %d: amount must not be negative", rowNumber)
		}
		result = append(result, &JobRow{
			RowNumber: rowNumber,
			Delivery:  delivery,
			Payer:     NormalizePayer(payer),
			Amount:    amount,
		})
	}
	if len(result) == 0 {
		return nil, utils.ValidationErrorf("job sheet has no data rows")
	}
	return result, nil
}

// BulkImportJobs books every row onto the import day in one transaction.
// The whole batch is validated up front; a bad row persists nothing.
func BulkImportJobs(ctx context.Context, input *NewJobImport, rows []*JobRow) (*Transaction, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, utils.ValidationErrorf("no rows to import")
	}
	deliveries := make([]*NewDelivery, 0, len(rows))
	for _, row := range rows {
		if row.Delivery == "" {
			return nil, utils.ValidationErrorf("row %d: missing delivery", row.RowNumber)
		}
		if row.Payer == "" {
			return nil, utils.ValidationErrorf("row %d: missing payer", row.RowNumber)
		}
		if row.Amount.IsNegative() {
			return nil, utils.ValidationErrorf("row %d: amount must not be negative", row.RowNumber)
		}
		deliveries = append(deliveries, &NewDelivery{
			Location: row.Delivery,
			Amount:   row.Amount,
			Payer:    row.Payer,
		})
	}

	business, err := GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	day, err := utils.ConvertToDate(input.Date, business.Timezone)
	if err != nil {
		return nil, utils.ValidationErrorf("invalid date")
	}

	release, err := utils.BusinessLock(ctx, businessId, ReconcileLock, "jobImport", "BulkImportJobs")
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

	txn, err := reconcileDayJobs(ctx, tx, businessId, day, input.CustomerName, input.PickUp, deliveries)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, utils.PersistenceError("bulk import jobs", err)
	}

	return GetTransaction(ctx, txn.ID)
}
