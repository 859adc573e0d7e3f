package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/abolajiii/LMBE/models"
	"github.com/xuri/excelize/v2"
)

// ExportMonthlyReportExcel writes the month's day-by-day ledger as a
// workbook: one row per active day plus a summary row.
func ExportMonthlyReportExcel(ctx context.Context, month int, year int, w io.Writer) error {
	report, err := GetMonthlyReport(ctx, month, year)
	if err != nil {
		return err
	}
	business, err := models.GetBusiness(ctx)
	if err != nil {
		return err
	}
	loc, lerr := time.LoadLocation(business.Timezone)
	if lerr != nil {
		loc = time.UTC
	}
	start, end := monthRange(time.Month(month), year, loc)
	txns, err := models.ListTransactions(ctx, start, end.AddDate(0, 0, -1))
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	// Add headers
	f.SetCellValue(sheetName, "A1", "Date")
	f.SetCellValue(sheetName, "B1", "Jobs")
	f.SetCellValue(sheetName, "C1", "PaidJobs")
	f.SetCellValue(sheetName, "D1", "TotalJobAmount")
	f.SetCellValue(sheetName, "E1", "TotalAmountPaid")
	f.SetCellValue(sheetName, "F1", "PaymentStatus")

	// Add data
	rowNo := 2
	for _, txn := range txns {
		if txn.NumberOfJobs == 0 {
			continue
		}
		f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), txn.TransactionDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), txn.NumberOfJobs)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(rowNo), txn.NumberOfPaidJobs)
		f.SetCellValue(sheetName, "D"+fmt.Sprint(rowNo), txn.TotalJobAmount.String())
		f.SetCellValue(sheetName, "E"+fmt.Sprint(rowNo), txn.TotalAmountPaid.String())
		f.SetCellValue(sheetName, "F"+fmt.Sprint(rowNo), string(txn.PaymentStatus))
		rowNo++
	}

	rowNo++
	f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), "Total")
	f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), report.TotalJobs)
	f.SetCellValue(sheetName, "D"+fmt.Sprint(rowNo), report.TotalJobAmount.String())
	f.SetCellValue(sheetName, "E"+fmt.Sprint(rowNo), report.TotalExpenses.String())
	f.SetCellValue(sheetName, "F"+fmt.Sprint(rowNo), fmt.Sprintf("daysWithoutJob=%d", report.DaysWithoutJob))

	return f.Write(w)
}

// SampleJobSheet writes the import template workbook with the expected
// columns and two example rows.
func SampleJobSheet(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	f.SetCellValue(sheetName, "A1", "Delivery")
	f.SetCellValue(sheetName, "B1", "Payer")
	f.SetCellValue(sheetName, "C1", "Amount")

	f.SetCellValue(sheetName, "A2", "Ikeja City Mall")
	f.SetCellValue(sheetName, "B2", "pick-up")
	f.SetCellValue(sheetName, "C2", 2500)

	f.SetCellValue(sheetName, "A3", "Lekki Phase 1")
	f.SetCellValue(sheetName, "B3", "vendor")
	f.SetCellValue(sheetName, "C3", 4000)

	return f.Write(w)
}
