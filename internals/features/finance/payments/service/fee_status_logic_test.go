// file: internals/features/finance/payments/service/fee_status_logic_test.go
package service

import (
	"testing"
	"time"

	payModel "sekolahku_backend/internals/features/finance/payments/model"
)

func TestStateFor(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	past := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		due     int64
		paid    int64
		dueDate *time.Time
		want    payModel.FeeStatusState
	}{
		{"untouched, no due date", 1000, 0, nil, payModel.FeeStatusPending},
		{"untouched, due in future", 1000, 0, &future, payModel.FeeStatusPending},
		{"untouched, past due", 1000, 0, &past, payModel.FeeStatusOverdue},
		{"partial, due in future", 1000, 400, &future, payModel.FeeStatusPartial},
		{"partial, past due is overdue", 1000, 400, &past, payModel.FeeStatusOverdue},
		{"fully paid", 1000, 1000, &future, payModel.FeeStatusCompleted},
		{"fully paid beats overdue", 1000, 1000, &past, payModel.FeeStatusCompleted},
		{"zero due is completed", 0, 0, nil, payModel.FeeStatusCompleted},
		{"paid on the due date itself is not overdue", 1000, 400, &now, payModel.FeeStatusPartial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StateFor(tc.due, tc.paid, tc.dueDate, now); got != tc.want {
				t.Fatalf("StateFor() = %s, want %s", got, tc.want)
			}
		})
	}
}
