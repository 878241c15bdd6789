// file: internals/features/finance/payments/service/credit_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	payModel "sekolahku_backend/internals/features/finance/payments/model"
	"sekolahku_backend/internals/helpers/errs"
)

/* ===========================================================
   CREDIT LEDGER
   Each excess_fees row is one unit; draws shrink the stored
   amount so the row's amount IS the remaining balance.
=========================================================== */

// loadCreditUnits locks the student's open credit rows (FIFO by
// creation time) for the duration of the transaction.
func loadCreditUnits(tx *gorm.DB, studentID uuid.UUID) ([]payModel.ExcessFeeModel, error) {
	var rows []payModel.ExcessFeeModel
	err := tx.
		Clauses(forUpdate()).
		Where("excess_fee_student_id = ?", studentID).
		Where("excess_fee_is_used = FALSE").
		Where("excess_fee_amount_idr > 0").
		Order("excess_fee_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errs.FromDB(err, "excess fees")
	}
	return rows, nil
}

// CreditBalanceIDR sums the student's open credit.
func CreditBalanceIDR(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(excess_fee_amount_idr), 0)
		FROM excess_fees
		WHERE excess_fee_student_id = ?
		  AND excess_fee_is_used = FALSE
		  AND excess_fee_deleted_at IS NULL
	`, studentID).Scan(&total).Error
	if err != nil {
		return 0, errs.FromDB(err, "excess fees")
	}
	return total, nil
}

// applyCreditDraws persists the planner's draw decisions: shrink each
// drawn unit, flag it used when empty, and record the draw rows.
func applyCreditDraws(tx *gorm.DB, paymentID uuid.UUID, plan AllocationPlan) error {
	for _, alloc := range plan.Allocations {
		for _, draw := range alloc.Draws {
			res := tx.Model(&payModel.ExcessFeeModel{}).
				Where("excess_fee_id = ?", draw.ExcessFeeID).
				Where("excess_fee_amount_idr >= ?", draw.AmountIDR).
				Updates(map[string]any{
					"excess_fee_amount_idr": gorm.Expr("excess_fee_amount_idr - ?", draw.AmountIDR),
				})
			if res.Error != nil {
				return errs.FromDB(res.Error, "excess fee")
			}
			if res.RowsAffected == 0 {
				return errs.Conflict("credit unit drained by a concurrent allocation")
			}

			if err := tx.Model(&payModel.ExcessFeeModel{}).
				Where("excess_fee_id = ?", draw.ExcessFeeID).
				Where("excess_fee_amount_idr = 0").
				Update("excess_fee_is_used", true).Error; err != nil {
				return errs.FromDB(err, "excess fee")
			}

			row := payModel.ExcessFeeDrawModel{
				ExcessFeeDrawExcessFeeID:   draw.ExcessFeeID,
				ExcessFeeDrawPaymentID:     paymentID,
				ExcessFeeDrawFeeTemplateID: alloc.FeeTemplateID,
				ExcessFeeDrawAmountIDR:     draw.AmountIDR,
			}
			if err := tx.Create(&row).Error; err != nil {
				return errs.FromDB(err, "excess fee draw")
			}
		}
	}
	return nil
}

// mintCredit creates a new credit unit from an unallocatable remainder.
func mintCredit(
	tx *gorm.DB,
	studentID uuid.UUID,
	amountIDR int64,
	termID, academicYearID uuid.UUID,
	sourcePaymentID *uuid.UUID,
	description string,
) (*payModel.ExcessFeeModel, error) {
	if amountIDR <= 0 {
		return nil, nil
	}
	row := payModel.ExcessFeeModel{
		ExcessFeeStudentID:       studentID,
		ExcessFeeAmountIDR:       amountIDR,
		ExcessFeeTermID:          termID,
		ExcessFeeAcademicYearID:  academicYearID,
		ExcessFeeSourcePaymentID: sourcePaymentID,
	}
	if description != "" {
		row.ExcessFeeDescription = &description
	}
	if err := tx.Create(&row).Error; err != nil {
		return nil, errs.FromDB(err, "excess fee")
	}
	return &row, nil
}
