// file: internals/features/finance/exceptions/model/fee_exception_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUMS — exception kind/status
============================== */

type FeeExceptionType string

const (
	FeeExceptionTypeDiscount    FeeExceptionType = "discount"
	FeeExceptionTypeScholarship FeeExceptionType = "scholarship"
	FeeExceptionTypeWaiver      FeeExceptionType = "waiver"
)

type FeeExceptionAmountType string

const (
	FeeExceptionAmountFixed      FeeExceptionAmountType = "fixed"
	FeeExceptionAmountPercentage FeeExceptionAmountType = "percentage"
)

// Explicit state machine instead of overloading a nullable end date:
// cancellation sets status=cancelled AND stamps the end date.
type FeeExceptionStatus string

const (
	FeeExceptionStatusActive    FeeExceptionStatus = "active"
	FeeExceptionStatusCancelled FeeExceptionStatus = "cancelled"
)

/* ==============================================
   MODEL fee_exceptions
   At most one ACTIVE exception interval per
   (student, template) may cover any instant.
============================================== */

type FeeExceptionModel struct {
	FeeExceptionID uuid.UUID `json:"fee_exception_id" gorm:"column:fee_exception_id;type:uuid;default:gen_random_uuid();primaryKey"`

	FeeExceptionStudentID     uuid.UUID `json:"fee_exception_student_id" gorm:"column:fee_exception_student_id;type:uuid;not null;index:idx_fee_exceptions_subject,priority:1"`
	FeeExceptionFeeTemplateID uuid.UUID `json:"fee_exception_fee_template_id" gorm:"column:fee_exception_fee_template_id;type:uuid;not null;index:idx_fee_exceptions_subject,priority:2"`
	// Denormalized from the template for summary grouping.
	FeeExceptionFeeTypeID uuid.UUID `json:"fee_exception_fee_type_id" gorm:"column:fee_exception_fee_type_id;type:uuid;not null;index"`

	FeeExceptionType       FeeExceptionType       `json:"fee_exception_type" gorm:"column:fee_exception_type;type:varchar(20);not null"`
	FeeExceptionAmountType FeeExceptionAmountType `json:"fee_exception_amount_type" gorm:"column:fee_exception_amount_type;type:varchar(20);not null"`
	FeeExceptionAmountIDR  *int64                 `json:"fee_exception_amount_idr,omitempty" gorm:"column:fee_exception_amount_idr;type:bigint"`
	FeeExceptionPercentage *float64               `json:"fee_exception_percentage,omitempty" gorm:"column:fee_exception_percentage;type:numeric(5,2)"`

	FeeExceptionStartDate time.Time  `json:"fee_exception_start_date" gorm:"column:fee_exception_start_date;type:date;not null"`
	FeeExceptionEndDate   *time.Time `json:"fee_exception_end_date,omitempty" gorm:"column:fee_exception_end_date;type:date"`

	FeeExceptionStatus     FeeExceptionStatus `json:"fee_exception_status" gorm:"column:fee_exception_status;type:varchar(20);not null;default:'active';index"`
	FeeExceptionApprovedBy uuid.UUID          `json:"fee_exception_approved_by" gorm:"column:fee_exception_approved_by;type:uuid;not null"`

	FeeExceptionNote *string `json:"fee_exception_note,omitempty" gorm:"column:fee_exception_note;type:text"`

	FeeExceptionCreatedAt time.Time      `json:"fee_exception_created_at" gorm:"column:fee_exception_created_at;type:timestamptz;not null;autoCreateTime"`
	FeeExceptionUpdatedAt time.Time      `json:"fee_exception_updated_at" gorm:"column:fee_exception_updated_at;type:timestamptz;not null;autoUpdateTime"`
	FeeExceptionDeletedAt gorm.DeletedAt `json:"fee_exception_deleted_at,omitempty" gorm:"column:fee_exception_deleted_at;type:timestamptz;index"`
}

func (FeeExceptionModel) TableName() string { return "fee_exceptions" }

func (m *FeeExceptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeeExceptionStatus == "" {
		m.FeeExceptionStatus = FeeExceptionStatusActive
	}
	return nil
}
