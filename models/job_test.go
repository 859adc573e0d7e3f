package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestJobPatchValidateJobStatuses(t *testing.T) {
	for _, status := range []JobStatus{JobStatusPending, JobStatusDone, JobStatusCanceled, JobStatusNextDay} {
		s := status
		patch := &JobPatch{JobStatus: &s}
		if err := patch.validate(); err != nil {
			t.Fatalf("status %s rejected: %v", s, err)
		}
	}

	bogus := JobStatus("delivered")
	patch := &JobPatch{JobStatus: &bogus}
	if err := patch.validate(); err == nil {
		t.Fatal("expected unknown job status to be rejected")
	}
}

func TestJobPatchValidatePaymentStatuses(t *testing.T) {
	for _, status := range []PaymentStatus{PaymentStatusPaid, PaymentStatusNotPaid} {
		s := status
		patch := &JobPatch{PaymentStatus: &s}
		if err := patch.validate(); err != nil {
			t.Fatalf("payment status %s rejected: %v", s, err)
		}
	}

	// Derived statuses are not settable on a single job.
	for _, status := range []PaymentStatus{PaymentStatusVoid, PaymentStatusNotFullyPaid} {
		s := status
		patch := &JobPatch{PaymentStatus: &s}
		if err := patch.validate(); err == nil {
			t.Fatalf("expected payment status %s to be rejected", s)
		}
	}
}

func TestJobPatchValidateFields(t *testing.T) {
	empty := ""
	if err := (&JobPatch{CustomerName: &empty}).validate(); err == nil {
		t.Fatal("expected empty customer name to be rejected")
	}
	if err := (&JobPatch{Delivery: &empty}).validate(); err == nil {
		t.Fatal("expected empty delivery to be rejected")
	}
	negative := decimal.NewFromInt(-50)
	if err := (&JobPatch{Amount: &negative}).validate(); err == nil {
		t.Fatal("expected negative amount to be rejected")
	}
	if err := (&JobPatch{}).validate(); err != nil {
		t.Fatalf("empty patch rejected: %v", err)
	}
}
