// file: internals/features/finance/payments/model/excess_fee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ================================================
   MODEL: excess_fees
   One unit of unused credit. Partial consumption
   shrinks the stored amount and records the drawn
   slice in excess_fee_draws; a unit whose amount
   reaches zero is flagged is_used.
================================================ */

type ExcessFeeModel struct {
	ExcessFeeID uuid.UUID `json:"excess_fee_id" gorm:"column:excess_fee_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ExcessFeeStudentID uuid.UUID `json:"excess_fee_student_id" gorm:"column:excess_fee_student_id;type:uuid;not null;index:idx_excess_fees_student,priority:1"`

	ExcessFeeAmountIDR int64 `json:"excess_fee_amount_idr" gorm:"column:excess_fee_amount_idr;type:bigint;not null;check:excess_fee_amount_idr>=0"`

	ExcessFeeTermID         uuid.UUID `json:"excess_fee_term_id" gorm:"column:excess_fee_term_id;type:uuid;not null"`
	ExcessFeeAcademicYearID uuid.UUID `json:"excess_fee_academic_year_id" gorm:"column:excess_fee_academic_year_id;type:uuid;not null"`

	ExcessFeeIsUsed      bool    `json:"excess_fee_is_used" gorm:"column:excess_fee_is_used;type:boolean;not null;default:false;index:idx_excess_fees_student,priority:2"`
	ExcessFeeDescription *string `json:"excess_fee_description,omitempty" gorm:"column:excess_fee_description;type:text"`

	// Back-reference to the payment whose remainder minted this credit.
	ExcessFeeSourcePaymentID *uuid.UUID `json:"excess_fee_source_payment_id,omitempty" gorm:"column:excess_fee_source_payment_id;type:uuid;index"`

	ExcessFeeCreatedAt time.Time      `json:"excess_fee_created_at" gorm:"column:excess_fee_created_at;type:timestamptz;not null;autoCreateTime;index"`
	ExcessFeeUpdatedAt time.Time      `json:"excess_fee_updated_at" gorm:"column:excess_fee_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ExcessFeeDeletedAt gorm.DeletedAt `json:"excess_fee_deleted_at,omitempty" gorm:"column:excess_fee_deleted_at;type:timestamptz;index"`
}

func (ExcessFeeModel) TableName() string { return "excess_fees" }

/* ================================================
   MODEL: excess_fee_draws
   Which credit unit funded which obligation in
   which allocation run, and by how much.
================================================ */

type ExcessFeeDrawModel struct {
	ExcessFeeDrawID uuid.UUID `json:"excess_fee_draw_id" gorm:"column:excess_fee_draw_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ExcessFeeDrawExcessFeeID   uuid.UUID `json:"excess_fee_draw_excess_fee_id" gorm:"column:excess_fee_draw_excess_fee_id;type:uuid;not null;index"`
	ExcessFeeDrawPaymentID     uuid.UUID `json:"excess_fee_draw_payment_id" gorm:"column:excess_fee_draw_payment_id;type:uuid;not null;index"`
	ExcessFeeDrawFeeTemplateID uuid.UUID `json:"excess_fee_draw_fee_template_id" gorm:"column:excess_fee_draw_fee_template_id;type:uuid;not null"`

	ExcessFeeDrawAmountIDR int64 `json:"excess_fee_draw_amount_idr" gorm:"column:excess_fee_draw_amount_idr;type:bigint;not null;check:excess_fee_draw_amount_idr>0"`

	ExcessFeeDrawCreatedAt time.Time `json:"excess_fee_draw_created_at" gorm:"column:excess_fee_draw_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (ExcessFeeDrawModel) TableName() string { return "excess_fee_draws" }
