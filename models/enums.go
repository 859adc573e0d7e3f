package models

import "strings"

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusNotPaid PaymentStatus = "not-paid"
	PaymentStatusVoid    PaymentStatus = "void"

	// Part of the column's value set for historic rows; the recompute never
	// assigns it (a partially paid day derives not-paid).
	PaymentStatusNotFullyPaid PaymentStatus = "not-fully-paid"
)

type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusDone     JobStatus = "done"
	JobStatusCanceled JobStatus = "canceled"
	JobStatusNextDay  JobStatus = "next-day"
)

// Curated payer values. Payer stays an open string so one-off payers
// survive import untouched.
const (
	PayerPickUp   = "pick-up"
	PayerVendor   = "vendor"
	PayerDelivery = "delivery"
)

// NormalizePayer folds the common spellings of the curated payers into their
// canonical forms and lowercases everything else. Matching is by substring,
// so "Pickup at Yaba" still lands on pick-up.
func NormalizePayer(payer string) string {
	lower := strings.ToLower(strings.TrimSpace(payer))
	switch {
	case strings.Contains(lower, "pick up"), strings.Contains(lower, "pickup"), lower == PayerPickUp:
		return PayerPickUp
	case strings.Contains(lower, "vendor"):
		return PayerVendor
	case strings.Contains(lower, "delivery"):
		return PayerDelivery
	default:
		return lower
	}
}

// Redis lock namespaces (see utils.BusinessLock).
const (
	ReconcileLock = "reconcile"
	ExpenseLock   = "expense"
	RebuildLock   = "rebuild"
)
