// file: internals/features/finance/payments/model/fee_status_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — obligation state
============================== */

type FeeStatusState string

const (
	FeeStatusPending   FeeStatusState = "pending"
	FeeStatusPartial   FeeStatusState = "partial"
	FeeStatusCompleted FeeStatusState = "completed"
	FeeStatusOverdue   FeeStatusState = "overdue"
)

/* ================================================
   MODEL: fee_statuses
   Running balance per (student, template, term,
   year). State is a pure function of paid vs due
   and the due date — see StateFor in service.
================================================ */

type FeeStatusModel struct {
	FeeStatusID uuid.UUID `json:"fee_status_id" gorm:"column:fee_status_id;type:uuid;default:gen_random_uuid();primaryKey"`

	FeeStatusStudentID      uuid.UUID `json:"fee_status_student_id" gorm:"column:fee_status_student_id;type:uuid;not null;uniqueIndex:uniq_fee_status_obligation,priority:1"`
	FeeStatusFeeTemplateID  uuid.UUID `json:"fee_status_fee_template_id" gorm:"column:fee_status_fee_template_id;type:uuid;not null;uniqueIndex:uniq_fee_status_obligation,priority:2"`
	FeeStatusTermID         uuid.UUID `json:"fee_status_term_id" gorm:"column:fee_status_term_id;type:uuid;not null;uniqueIndex:uniq_fee_status_obligation,priority:3"`
	FeeStatusAcademicYearID uuid.UUID `json:"fee_status_academic_year_id" gorm:"column:fee_status_academic_year_id;type:uuid;not null;uniqueIndex:uniq_fee_status_obligation,priority:4"`

	FeeStatusDueAmountIDR  int64 `json:"fee_status_due_amount_idr" gorm:"column:fee_status_due_amount_idr;type:bigint;not null;check:fee_status_due_amount_idr>=0"`
	FeeStatusPaidAmountIDR int64 `json:"fee_status_paid_amount_idr" gorm:"column:fee_status_paid_amount_idr;type:bigint;not null;default:0;check:fee_status_paid_amount_idr>=0"`

	FeeStatusState   FeeStatusState `json:"fee_status_state" gorm:"column:fee_status_state;type:varchar(20);not null;default:'pending';index"`
	FeeStatusDueDate *time.Time     `json:"fee_status_due_date,omitempty" gorm:"column:fee_status_due_date;type:date"`

	FeeStatusLastPaymentAt *time.Time `json:"fee_status_last_payment_at,omitempty" gorm:"column:fee_status_last_payment_at;type:timestamptz"`

	FeeStatusCreatedAt time.Time      `json:"fee_status_created_at" gorm:"column:fee_status_created_at;type:timestamptz;not null;autoCreateTime"`
	FeeStatusUpdatedAt time.Time      `json:"fee_status_updated_at" gorm:"column:fee_status_updated_at;type:timestamptz;not null;autoUpdateTime"`
	FeeStatusDeletedAt gorm.DeletedAt `json:"fee_status_deleted_at,omitempty" gorm:"column:fee_status_deleted_at;type:timestamptz;index"`
}

func (FeeStatusModel) TableName() string { return "fee_statuses" }
