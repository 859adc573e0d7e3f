package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func jobWith(amount string, paid bool) *Job {
	j := &Job{Amount: decimal.RequireFromString(amount), PaymentStatus: PaymentStatusNotPaid}
	if paid {
		j.PaymentStatus = PaymentStatusPaid
	}
	return j
}

func TestComputeTransactionTotalsEmpty(t *testing.T) {
	totals := computeTransactionTotals(nil)
	if totals.PaymentStatus != PaymentStatusVoid {
		t.Fatalf("expected void status, got %s", totals.PaymentStatus)
	}
	if totals.NumberOfJobs != 0 || totals.NumberOfPaidJobs != 0 {
		t.Fatalf("expected zero counts, got jobs=%d paid=%d", totals.NumberOfJobs, totals.NumberOfPaidJobs)
	}
	if !totals.TotalJobAmount.IsZero() || !totals.TotalAmountPaid.IsZero() {
		t.Fatalf("expected zero sums, got amount=%s paid=%s", totals.TotalJobAmount, totals.TotalAmountPaid)
	}
}

func TestComputeTransactionTotalsAllPaid(t *testing.T) {
	totals := computeTransactionTotals([]*Job{
		jobWith("1500", true),
		jobWith("2500.50", true),
	})
	if totals.PaymentStatus != PaymentStatusPaid {
		t.Fatalf("expected paid status, got %s", totals.PaymentStatus)
	}
	if totals.NumberOfJobs != 2 || totals.NumberOfPaidJobs != 2 {
		t.Fatalf("unexpected counts: jobs=%d paid=%d", totals.NumberOfJobs, totals.NumberOfPaidJobs)
	}
	want := decimal.RequireFromString("4000.50")
	if !totals.TotalJobAmount.Equal(want) {
		t.Fatalf("total job amount = %s, want %s", totals.TotalJobAmount, want)
	}
	if !totals.TotalAmountPaid.Equal(want) {
		t.Fatalf("total amount paid = %s, want %s", totals.TotalAmountPaid, want)
	}
}

func TestComputeTransactionTotalsNonePaid(t *testing.T) {
	totals := computeTransactionTotals([]*Job{
		jobWith("1000", false),
		jobWith("2000", false),
	})
	if totals.PaymentStatus != PaymentStatusNotPaid {
		t.Fatalf("expected not-paid status, got %s", totals.PaymentStatus)
	}
	if !totals.TotalAmountPaid.IsZero() {
		t.Fatalf("expected zero paid, got %s", totals.TotalAmountPaid)
	}
	if !totals.TotalJobAmount.Equal(decimal.RequireFromString("3000")) {
		t.Fatalf("total job amount = %s, want 3000", totals.TotalJobAmount)
	}
}

func TestComputeTransactionTotalsPartiallyPaidStaysNotPaid(t *testing.T) {
	totals := computeTransactionTotals([]*Job{
		jobWith("1000", true),
		jobWith("2000", false),
		jobWith("500", true),
	})
	if totals.PaymentStatus != PaymentStatusNotPaid {
		t.Fatalf("expected not-paid status, got %s", totals.PaymentStatus)
	}
	if totals.NumberOfPaidJobs != 2 {
		t.Fatalf("paid jobs = %d, want 2", totals.NumberOfPaidJobs)
	}
	if !totals.TotalAmountPaid.Equal(decimal.RequireFromString("1500")) {
		t.Fatalf("total amount paid = %s, want 1500", totals.TotalAmountPaid)
	}
	if !totals.TotalJobAmount.Equal(decimal.RequireFromString("3500")) {
		t.Fatalf("total job amount = %s, want 3500", totals.TotalJobAmount)
	}
}

func TestComputeTransactionTotalsDeterministic(t *testing.T) {
	jobs := []*Job{
		jobWith("100.25", true),
		jobWith("200", false),
	}
	first := computeTransactionTotals(jobs)
	second := computeTransactionTotals(jobs)
	if first.NumberOfJobs != second.NumberOfJobs ||
		first.NumberOfPaidJobs != second.NumberOfPaidJobs ||
		first.PaymentStatus != second.PaymentStatus ||
		!first.TotalJobAmount.Equal(second.TotalJobAmount) ||
		!first.TotalAmountPaid.Equal(second.TotalAmountPaid) {
		t.Fatalf("recompute drifted: %+v vs %+v", first, second)
	}
}
