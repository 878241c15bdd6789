// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ================================
   ENUM mirror (must match DB)
================================ */

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodQRIS         PaymentMethod = "qris"
	PaymentMethodOther        PaymentMethod = "other"
)

type PaymentStatus string

const (
	PaymentStatusPosted PaymentStatus = "posted"
	PaymentStatusVoided PaymentStatus = "voided"
)

/* ================================
   MODEL: payments
   One row per payment event. Allocation children
   record how the amount was split across obligations.
================================ */

type PaymentModel struct {
	PaymentID uuid.UUID `json:"payment_id" gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey"`

	PaymentStudentID uuid.UUID `json:"payment_student_id" gorm:"column:payment_student_id;type:uuid;not null;index:idx_payments_student_period,priority:1"`

	PaymentAmountIDR int64     `json:"payment_amount_idr" gorm:"column:payment_amount_idr;type:bigint;not null;check:payment_amount_idr>0"`
	PaymentDate      time.Time `json:"payment_date" gorm:"column:payment_date;type:date;not null;index"`

	PaymentMethod PaymentMethod `json:"payment_method" gorm:"column:payment_method;type:varchar(20);not null;default:'cash'"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"column:payment_status;type:varchar(20);not null;default:'posted';index"`

	PaymentAcademicYearID uuid.UUID `json:"payment_academic_year_id" gorm:"column:payment_academic_year_id;type:uuid;not null;index:idx_payments_student_period,priority:2"`
	PaymentTermID         uuid.UUID `json:"payment_term_id" gorm:"column:payment_term_id;type:uuid;not null;index:idx_payments_student_period,priority:3"`

	PaymentReceiptNumber *int64 `json:"payment_receipt_number,omitempty" gorm:"column:payment_receipt_number;type:bigint;uniqueIndex"`

	// Unallocated remainder at posting time (minted as credit).
	PaymentBalanceIDR int64 `json:"payment_balance_idr" gorm:"column:payment_balance_idr;type:bigint;not null;default:0"`
	PaymentIsPartial  bool  `json:"payment_is_partial" gorm:"column:payment_is_partial;type:boolean;not null;default:false"`

	PaymentNote *string `json:"payment_note,omitempty" gorm:"column:payment_note;type:text"`

	PaymentCreatedAt time.Time      `json:"payment_created_at" gorm:"column:payment_created_at;type:timestamptz;not null;autoCreateTime"`
	PaymentUpdatedAt time.Time      `json:"payment_updated_at" gorm:"column:payment_updated_at;type:timestamptz;not null;autoUpdateTime"`
	PaymentDeletedAt gorm.DeletedAt `json:"payment_deleted_at,omitempty" gorm:"column:payment_deleted_at;type:timestamptz;index"`
}

func (PaymentModel) TableName() string { return "payments" }
