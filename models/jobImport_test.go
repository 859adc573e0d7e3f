package models

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func buildJobSheet(t *testing.T, header []string, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for rowIdx, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestExtractJobRows(t *testing.T) {
	sheet := buildJobSheet(t,
		[]string{"Delivery", "Payer", "Amount"},
		[][]interface{}{
			{"Ikeja City Mall", "Pick Up", 2500},
			{"Lekki Phase 1", "vendor", "4000.50"},
		})

	rows, err := ExtractJobRows(sheet)
	if err != nil {
		t.Fatalf("ExtractJobRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].RowNumber != 2 || rows[0].Delivery != "Ikeja City Mall" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[0].Payer != PayerPickUp {
		t.Fatalf("payer not normalized: %q", rows[0].Payer)
	}
	if !rows[0].Amount.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("amount = %s, want 2500", rows[0].Amount)
	}
	if !rows[1].Amount.Equal(decimal.RequireFromString("4000.50")) {
		t.Fatalf("amount = %s, want 4000.50", rows[1].Amount)
	}
}

func TestExtractJobRowsHeaderCaseAndExtraColumns(t *testing.T) {
	sheet := buildJobSheet(t,
		[]string{"Notes", "DELIVERY", "payer", "AMOUNT"},
		[][]interface{}{
			{"ignore me", "Surulere", "delivery", 1200},
		})

	rows, err := ExtractJobRows(sheet)
	if err != nil {
		t.Fatalf("ExtractJobRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Delivery != "Surulere" || rows[0].Payer != PayerDelivery {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestExtractJobRowsSkipsBlankLines(t *testing.T) {
	sheet := buildJobSheet(t,
		[]string{"Delivery", "Payer", "Amount"},
		[][]interface{}{
			{"Yaba", "pick-up", 1000},
			{"", "", ""},
			{"Ajah", "vendor", 3000},
		})

	rows, err := ExtractJobRows(sheet)
	if err != nil {
		t.Fatalf("ExtractJobRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].RowNumber != 4 {
		t.Fatalf("row number = %d, want 4", rows[1].RowNumber)
	}
}

func TestExtractJobRowsMissingColumn(t *testing.T) {
	sheet := buildJobSheet(t,
		[]string{"Delivery", "Amount"},
		[][]interface{}{
			{"Yaba", 1000},
		})

	if _, err := ExtractJobRows(sheet); err == nil {
		t.Fatal("expected error for missing payer column")
	}
}

func TestExtractJobRowsBadRows(t *testing.T) {
	cases := []struct {
		name string
		row  []interface{}
		want string
	}{
		{"missing delivery", []interface{}{"", "vendor", 1000}, "row 2: missing delivery"},
		{"missing payer", []interface{}{"Yaba", "", 1000}, "row 2: missing payer"},
		{"missing amount", []interface{}{"Yaba", "vendor", ""}, "row 2: missing amount"},
		{"bad amount", []interface{}{"Yaba", "vendor", "abc"}, "row 2: invalid amount"},
		{"negative amount", []interface{}{"Yaba", "vendor", -100}, "row 2: amount must not be negative"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sheet := buildJobSheet(t,
				[]string{"Delivery", "Payer", "Amount"},
				[][]interface{}{c.row})
			_, err := ExtractJobRows(sheet)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("error = %q, want it to contain %q", err.Error(), c.want)
			}
		})
	}
}
