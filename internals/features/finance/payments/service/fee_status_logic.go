// file: internals/features/finance/payments/service/fee_status_logic.go
package service

import (
	"time"

	payModel "sekolahku_backend/internals/features/finance/payments/model"
)

// StateFor derives the obligation state from its money columns and
// due date. Completed wins over overdue; an unpaid line past its due
// date is overdue even if untouched.
func StateFor(dueIDR, paidIDR int64, dueDate *time.Time, now time.Time) payModel.FeeStatusState {
	if paidIDR >= dueIDR {
		return payModel.FeeStatusCompleted
	}
	if dueDate != nil && now.After(endOfDay(*dueDate)) {
		return payModel.FeeStatusOverdue
	}
	if paidIDR > 0 {
		return payModel.FeeStatusPartial
	}
	return payModel.FeeStatusPending
}

func endOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, 0, d.Location())
}
