// file: internals/features/finance/exceptions/service/exception_service.go
package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "sekolahku_backend/internals/features/finance/audit/service"
	excModel "sekolahku_backend/internals/features/finance/exceptions/model"
	"sekolahku_backend/internals/helpers/errs"
)

/* ===========================================================
   EXCEPTION ENGINE
   Discounts / scholarships / waivers per (student, template).
   Invariant: active exception intervals for one subject pair
   never overlap; "no end date" means open-ended.
=========================================================== */

// overlaps reports whether [aStart, aEnd] and [bStart, bEnd]
// intersect, where a nil end means open-ended.
func overlaps(aStart time.Time, aEnd *time.Time, bStart time.Time, bEnd *time.Time) bool {
	if aEnd != nil && aEnd.Before(bStart) {
		return false
	}
	if bEnd != nil && bEnd.Before(aStart) {
		return false
	}
	return true
}

// ExemptionAmountIDR is the IDR reduction an exception grants on a
// base amount. Percentages round half away from zero; fixed amounts
// are capped at the base so the owed amount never goes negative.
func ExemptionAmountIDR(exc *excModel.FeeExceptionModel, baseAmountIDR int64) int64 {
	if exc == nil {
		return 0
	}
	switch exc.FeeExceptionAmountType {
	case excModel.FeeExceptionAmountPercentage:
		if exc.FeeExceptionPercentage == nil {
			return 0
		}
		cut := int64(math.Round(float64(baseAmountIDR) * *exc.FeeExceptionPercentage / 100.0))
		if cut > baseAmountIDR {
			cut = baseAmountIDR
		}
		if cut < 0 {
			cut = 0
		}
		return cut
	case excModel.FeeExceptionAmountFixed:
		if exc.FeeExceptionAmountIDR == nil {
			return 0
		}
		cut := *exc.FeeExceptionAmountIDR
		if cut > baseAmountIDR {
			cut = baseAmountIDR
		}
		if cut < 0 {
			cut = 0
		}
		return cut
	}
	return 0
}

// AdjustedAmountOwedIDR applies an exception (possibly nil) to a base.
func AdjustedAmountOwedIDR(exc *excModel.FeeExceptionModel, baseAmountIDR int64) int64 {
	return baseAmountIDR - ExemptionAmountIDR(exc, baseAmountIDR)
}

// GetActiveException finds the exception covering `on` for one
// (student, template) pair. (nil, nil) when none applies.
func GetActiveException(
	ctx context.Context,
	db *gorm.DB,
	studentID, feeTemplateID uuid.UUID,
	on time.Time,
) (*excModel.FeeExceptionModel, error) {
	var row excModel.FeeExceptionModel
	err := db.WithContext(ctx).
		Where("fee_exception_student_id = ?", studentID).
		Where("fee_exception_fee_template_id = ?", feeTemplateID).
		Where("fee_exception_status = ?", excModel.FeeExceptionStatusActive).
		Where("fee_exception_start_date <= ?", on).
		Where("(fee_exception_end_date IS NULL OR fee_exception_end_date >= ?)", on).
		Order("fee_exception_start_date DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errs.FromDB(err, "fee exception")
	}
	return &row, nil
}

// CreateException persists a new exception after rejecting any overlap
// with existing ACTIVE intervals for the same (student, template).
// Runs in its own transaction and writes the audit entry with it.
func CreateException(
	ctx context.Context,
	db *gorm.DB,
	m *excModel.FeeExceptionModel,
	performedBy uuid.UUID,
) error {
	if err := validateAmountShape(m); err != nil {
		return err
	}
	if m.FeeExceptionEndDate != nil && m.FeeExceptionEndDate.Before(m.FeeExceptionStartDate) {
		return errs.Validation("fee_exception_end_date", "end date precedes start date")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []excModel.FeeExceptionModel
		if err := tx.
			Where("fee_exception_student_id = ?", m.FeeExceptionStudentID).
			Where("fee_exception_fee_template_id = ?", m.FeeExceptionFeeTemplateID).
			Where("fee_exception_status = ?", excModel.FeeExceptionStatusActive).
			Find(&existing).Error; err != nil {
			return errs.FromDB(err, "fee exceptions")
		}
		for i := range existing {
			if overlaps(
				existing[i].FeeExceptionStartDate, existing[i].FeeExceptionEndDate,
				m.FeeExceptionStartDate, m.FeeExceptionEndDate,
			) {
				return errs.Conflict("an active exception already covers part of this period")
			}
		}

		if err := tx.Create(m).Error; err != nil {
			return errs.FromDB(err, "fee exception")
		}

		return auditService.Log(tx, auditService.Entry{
			EntityType:  "fee_exception",
			EntityID:    m.FeeExceptionID,
			Action:      "exception.create",
			Changes:     map[string]any{"after": m},
			PerformedBy: performedBy,
		})
	})
}

// CancelException soft-retires an exception: status flips to cancelled
// and the end date is stamped to today. History stays queryable.
func CancelException(
	ctx context.Context,
	db *gorm.DB,
	exceptionID uuid.UUID,
	performedBy uuid.UUID,
) (*excModel.FeeExceptionModel, error) {
	var row excModel.FeeExceptionModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "fee_exception_id = ?", exceptionID).Error; err != nil {
			return errs.FromDB(err, "fee exception")
		}
		if row.FeeExceptionStatus == excModel.FeeExceptionStatusCancelled {
			return errs.Conflict("fee exception already cancelled")
		}

		before := row
		now := time.Now()
		row.FeeExceptionStatus = excModel.FeeExceptionStatusCancelled
		row.FeeExceptionEndDate = &now

		if err := tx.Model(&excModel.FeeExceptionModel{}).
			Where("fee_exception_id = ?", row.FeeExceptionID).
			Updates(map[string]any{
				"fee_exception_status":   row.FeeExceptionStatus,
				"fee_exception_end_date": row.FeeExceptionEndDate,
			}).Error; err != nil {
			return errs.FromDB(err, "fee exception")
		}

		return auditService.Log(tx, auditService.Entry{
			EntityType:  "fee_exception",
			EntityID:    row.FeeExceptionID,
			Action:      "exception.cancel",
			Changes:     map[string]any{"before": before, "after": row},
			PerformedBy: performedBy,
		})
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// validateAmountShape enforces that the amount-type discriminator and
// its value column agree.
func validateAmountShape(m *excModel.FeeExceptionModel) error {
	switch m.FeeExceptionAmountType {
	case excModel.FeeExceptionAmountFixed:
		if m.FeeExceptionAmountIDR == nil || *m.FeeExceptionAmountIDR < 0 {
			return errs.Validation("fee_exception_amount_idr", "fixed exceptions need a non-negative amount")
		}
	case excModel.FeeExceptionAmountPercentage:
		if m.FeeExceptionPercentage == nil || *m.FeeExceptionPercentage < 0 || *m.FeeExceptionPercentage > 100 {
			return errs.Validation("fee_exception_percentage", "percentage must be within 0..100")
		}
	default:
		return errs.Validation("fee_exception_amount_type", "unknown amount type")
	}
	return nil
}
