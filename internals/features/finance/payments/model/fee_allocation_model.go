// file: internals/features/finance/payments/model/fee_allocation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ================================================
   MODEL: fee_allocations
   The slice of one payment assigned to one
   obligation. AmountIDR is fresh funds only so
   SUM(amount) per payment never exceeds the
   payment amount; credit drawn in the same run is
   tagged separately for audit.
================================================ */

type FeeAllocationModel struct {
	FeeAllocationID uuid.UUID `json:"fee_allocation_id" gorm:"column:fee_allocation_id;type:uuid;default:gen_random_uuid();primaryKey"`

	FeeAllocationPaymentID     uuid.UUID `json:"fee_allocation_payment_id" gorm:"column:fee_allocation_payment_id;type:uuid;not null;index;uniqueIndex:uniq_allocation_target,priority:1"`
	FeeAllocationFeeTemplateID uuid.UUID `json:"fee_allocation_fee_template_id" gorm:"column:fee_allocation_fee_template_id;type:uuid;not null;index;uniqueIndex:uniq_allocation_target,priority:2"`

	FeeAllocationAmountIDR int64 `json:"fee_allocation_amount_idr" gorm:"column:fee_allocation_amount_idr;type:bigint;not null;check:fee_allocation_amount_idr>=0"`
	FeeAllocationCreditIDR int64 `json:"fee_allocation_credit_idr" gorm:"column:fee_allocation_credit_idr;type:bigint;not null;default:0;check:fee_allocation_credit_idr>=0"`

	FeeAllocationCreatedAt time.Time      `json:"fee_allocation_created_at" gorm:"column:fee_allocation_created_at;type:timestamptz;not null;autoCreateTime"`
	FeeAllocationUpdatedAt time.Time      `json:"fee_allocation_updated_at" gorm:"column:fee_allocation_updated_at;type:timestamptz;not null;autoUpdateTime"`
	FeeAllocationDeletedAt gorm.DeletedAt `json:"fee_allocation_deleted_at,omitempty" gorm:"column:fee_allocation_deleted_at;type:timestamptz;index"`
}

func (FeeAllocationModel) TableName() string { return "fee_allocations" }
