// file: internals/features/finance/payments/service/payment_edit_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "sekolahku_backend/internals/features/finance/audit/service"
	payModel "sekolahku_backend/internals/features/finance/payments/model"
	"sekolahku_backend/internals/helpers/errs"
)

/* ===========================================================
   PAYMENT EDIT / RECONCILIATION
   An edit replaces the allocation set wholesale. The contract
   is explicit: the new allocations must sum exactly to the
   new amount. Obligations are recomputed from scratch; any
   per-obligation overshoot becomes credit traced back to
   this payment.
=========================================================== */

type EditInput struct {
	PaymentID   uuid.UUID
	AmountIDR   int64
	Allocations []EditAllocation
	Note        *string
}

type EditAllocation struct {
	FeeTemplateID uuid.UUID
	AmountIDR     int64
}

// AllocationDiff is the pure reconciliation outcome between the
// stored allocation rows and the requested set, keyed by template.
type AllocationDiff struct {
	Create []EditAllocation
	Update []EditAllocation // templates present on both sides with a new amount
	Delete []uuid.UUID      // template ids no longer funded
}

// DiffAllocations compares stored allocations against the requested
// set. Unchanged rows appear in none of the buckets.
func DiffAllocations(existing []payModel.FeeAllocationModel, desired []EditAllocation) AllocationDiff {
	current := make(map[uuid.UUID]int64, len(existing))
	for _, row := range existing {
		current[row.FeeAllocationFeeTemplateID] = row.FeeAllocationAmountIDR
	}

	var diff AllocationDiff
	seen := make(map[uuid.UUID]bool, len(desired))
	for _, want := range desired {
		seen[want.FeeTemplateID] = true
		have, ok := current[want.FeeTemplateID]
		switch {
		case !ok:
			diff.Create = append(diff.Create, want)
		case have != want.AmountIDR:
			diff.Update = append(diff.Update, want)
		}
	}
	for _, row := range existing {
		if !seen[row.FeeAllocationFeeTemplateID] {
			diff.Delete = append(diff.Delete, row.FeeAllocationFeeTemplateID)
		}
	}
	return diff
}

// deletedCreditIDR sums the credit-funded slice of every allocation
// row the diff removes, keyed by template. That credit was drawn from
// the student's ledger and must be refunded when the row goes away.
func deletedCreditIDR(existing []payModel.FeeAllocationModel, deleted []uuid.UUID) map[uuid.UUID]int64 {
	gone := make(map[uuid.UUID]bool, len(deleted))
	for _, id := range deleted {
		gone[id] = true
	}
	out := make(map[uuid.UUID]int64, len(deleted))
	for _, row := range existing {
		if gone[row.FeeAllocationFeeTemplateID] && row.FeeAllocationCreditIDR > 0 {
			out[row.FeeAllocationFeeTemplateID] += row.FeeAllocationCreditIDR
		}
	}
	return out
}

// editOvershootMintIDR returns the credit an edit must mint for one
// obligation: the growth of the overshoot, not its absolute value.
// fundedAfterIDR is the post-edit sum over all posted payments;
// old/newShareIDR are this payment's contribution before and after
// the edit. Re-submitting an identical edit yields zero, and a
// shrinking overshoot never mints (spent credit cannot be clawed
// back, so reductions are left to the ledger's open units).
func editOvershootMintIDR(dueIDR, fundedAfterIDR, oldShareIDR, newShareIDR int64) int64 {
	fundedBefore := fundedAfterIDR - newShareIDR + oldShareIDR
	overAfter := fundedAfterIDR - dueIDR
	if overAfter < 0 {
		overAfter = 0
	}
	overBefore := fundedBefore - dueIDR
	if overBefore < 0 {
		overBefore = 0
	}
	mint := overAfter - overBefore
	if mint < 0 {
		mint = 0
	}
	return mint
}

// EditPayment rewrites a posted payment's amount and allocation set
// in one transaction, reconciling every touched obligation.
func EditPayment(ctx context.Context, db *gorm.DB, in EditInput, performedBy uuid.UUID) (*AllocateResult, error) {
	if in.AmountIDR <= 0 {
		return nil, errs.Validation("payment_amount_idr", "amount must be positive")
	}
	var total int64
	seen := make(map[uuid.UUID]bool, len(in.Allocations))
	for _, a := range in.Allocations {
		if a.AmountIDR < 0 {
			return nil, errs.Validation("allocations", "allocation amounts must be non-negative")
		}
		if seen[a.FeeTemplateID] {
			return nil, errs.Validation("allocations", "duplicate fee template in allocation set")
		}
		seen[a.FeeTemplateID] = true
		total += a.AmountIDR
	}
	if total != in.AmountIDR {
		return nil, errs.Invariant("allocations must sum exactly to the payment amount")
	}

	out := &AllocateResult{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment payModel.PaymentModel
		if err := tx.Clauses(forUpdate()).
			First(&payment, "payment_id = ?", in.PaymentID).Error; err != nil {
			return errs.FromDB(err, "payment")
		}
		if payment.PaymentStatus != payModel.PaymentStatusPosted {
			return errs.Conflict("only posted payments can be edited")
		}
		before := payment

		var existing []payModel.FeeAllocationModel
		if err := tx.Where("fee_allocation_payment_id = ?", payment.PaymentID).
			Find(&existing).Error; err != nil {
			return errs.FromDB(err, "fee allocations")
		}

		diff := DiffAllocations(existing, in.Allocations)

		// This payment's per-template contribution before and after the
		// edit; credit stays attached to surviving rows.
		oldShare := make(map[uuid.UUID]int64, len(existing))
		creditOnRow := make(map[uuid.UUID]int64, len(existing))
		for _, row := range existing {
			oldShare[row.FeeAllocationFeeTemplateID] += row.FeeAllocationAmountIDR + row.FeeAllocationCreditIDR
			creditOnRow[row.FeeAllocationFeeTemplateID] += row.FeeAllocationCreditIDR
		}
		newShare := make(map[uuid.UUID]int64, len(in.Allocations))
		for _, a := range in.Allocations {
			newShare[a.FeeTemplateID] = a.AmountIDR + creditOnRow[a.FeeTemplateID]
		}

		refunds := deletedCreditIDR(existing, diff.Delete)
		for _, tplID := range diff.Delete {
			if err := tx.Where("fee_allocation_payment_id = ?", payment.PaymentID).
				Where("fee_allocation_fee_template_id = ?", tplID).
				Delete(&payModel.FeeAllocationModel{}).Error; err != nil {
				return errs.FromDB(err, "fee allocation")
			}
			if refund := refunds[tplID]; refund > 0 {
				if _, err := mintCredit(tx, payment.PaymentStudentID, refund,
					payment.PaymentTermID, payment.PaymentAcademicYearID,
					&payment.PaymentID, "credit refund from payment edit"); err != nil {
					return err
				}
				if err := auditService.Log(tx, auditService.Entry{
					EntityType:    "excess_fee",
					EntityID:      tplID,
					Action:        "credit.refund_from_edit",
					Changes:       map[string]any{"refund_idr": refund, "payment_id": payment.PaymentID},
					PerformedBy:   performedBy,
					MoneyDeltaIDR: &refund,
				}); err != nil {
					return err
				}
			}
		}
		for _, a := range diff.Update {
			if err := tx.Model(&payModel.FeeAllocationModel{}).
				Where("fee_allocation_payment_id = ?", payment.PaymentID).
				Where("fee_allocation_fee_template_id = ?", a.FeeTemplateID).
				Update("fee_allocation_amount_idr", a.AmountIDR).Error; err != nil {
				return errs.FromDB(err, "fee allocation")
			}
		}
		for _, a := range diff.Create {
			row := payModel.FeeAllocationModel{
				FeeAllocationPaymentID:     payment.PaymentID,
				FeeAllocationFeeTemplateID: a.FeeTemplateID,
				FeeAllocationAmountIDR:     a.AmountIDR,
			}
			if err := tx.Create(&row).Error; err != nil {
				return errs.FromDB(err, "fee allocation")
			}
		}

		// Recompute every obligation this payment touches, before and
		// after the edit.
		touched := make(map[uuid.UUID]bool, len(existing)+len(in.Allocations))
		for _, row := range existing {
			touched[row.FeeAllocationFeeTemplateID] = true
		}
		for _, a := range in.Allocations {
			touched[a.FeeTemplateID] = true
		}
		for tplID := range touched {
			if err := reconcileObligation(tx, &payment, tplID, oldShare[tplID], newShare[tplID], performedBy); err != nil {
				return err
			}
		}

		delta := in.AmountIDR - before.PaymentAmountIDR
		payment.PaymentAmountIDR = in.AmountIDR
		if in.Note != nil {
			payment.PaymentNote = in.Note
		}
		if err := tx.Model(&payModel.PaymentModel{}).
			Where("payment_id = ?", payment.PaymentID).
			Updates(map[string]any{
				"payment_amount_idr": payment.PaymentAmountIDR,
				"payment_note":       payment.PaymentNote,
			}).Error; err != nil {
			return errs.FromDB(err, "payment")
		}

		if err := auditService.Log(tx, auditService.Entry{
			EntityType:    "payment",
			EntityID:      payment.PaymentID,
			Action:        "payment.edit",
			Changes:       map[string]any{"before": before, "after": payment, "allocations": in.Allocations},
			PerformedBy:   performedBy,
			MoneyDeltaIDR: &delta,
		}); err != nil {
			return err
		}

		out.Payment = &payment
		return tx.Where("fee_allocation_payment_id = ?", payment.PaymentID).
			Find(&out.Allocations).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// reconcileObligation recomputes one fee_statuses row from the sum of
// all allocations pointing at it. Paid is capped at due; only the
// overshoot GROWTH caused by this edit is minted as credit (see
// editOvershootMintIDR), so replaying an edit cannot mint twice.
func reconcileObligation(tx *gorm.DB, payment *payModel.PaymentModel, feeTemplateID uuid.UUID, oldShareIDR, newShareIDR int64, performedBy uuid.UUID) error {
	var status payModel.FeeStatusModel
	err := tx.Clauses(forUpdate()).
		Where("fee_status_student_id = ?", payment.PaymentStudentID).
		Where("fee_status_fee_template_id = ?", feeTemplateID).
		Where("fee_status_term_id = ?", payment.PaymentTermID).
		Where("fee_status_academic_year_id = ?", payment.PaymentAcademicYearID).
		First(&status).Error
	if err != nil {
		return errs.FromDB(err, "fee status")
	}

	var funded int64
	err = tx.Raw(`
		SELECT COALESCE(SUM(fee_allocation_amount_idr + fee_allocation_credit_idr), 0)
		FROM fee_allocations fa
		JOIN payments p ON p.payment_id = fa.fee_allocation_payment_id
		WHERE fa.fee_allocation_fee_template_id = ?
		  AND p.payment_student_id = ?
		  AND p.payment_term_id = ?
		  AND p.payment_academic_year_id = ?
		  AND p.payment_status = 'posted'
		  AND fa.fee_allocation_deleted_at IS NULL
		  AND p.payment_deleted_at IS NULL
	`, feeTemplateID, payment.PaymentStudentID, payment.PaymentTermID, payment.PaymentAcademicYearID).
		Scan(&funded).Error
	if err != nil {
		return errs.FromDB(err, "fee allocations")
	}

	paid := funded
	if funded > status.FeeStatusDueAmountIDR {
		paid = status.FeeStatusDueAmountIDR
	}
	if mint := editOvershootMintIDR(status.FeeStatusDueAmountIDR, funded, oldShareIDR, newShareIDR); mint > 0 {
		if _, err := mintCredit(tx, payment.PaymentStudentID, mint,
			payment.PaymentTermID, payment.PaymentAcademicYearID,
			&payment.PaymentID, "payment edit overshoot"); err != nil {
			return err
		}
		if err := auditService.Log(tx, auditService.Entry{
			EntityType:    "excess_fee",
			EntityID:      feeTemplateID,
			Action:        "credit.mint_from_edit",
			Changes:       map[string]any{"overshoot_idr": mint, "payment_id": payment.PaymentID},
			PerformedBy:   performedBy,
			MoneyDeltaIDR: &mint,
		}); err != nil {
			return err
		}
	}

	return tx.Model(&payModel.FeeStatusModel{}).
		Where("fee_status_id = ?", status.FeeStatusID).
		Updates(map[string]any{
			"fee_status_paid_amount_idr": paid,
			"fee_status_state":           StateFor(status.FeeStatusDueAmountIDR, paid, status.FeeStatusDueDate, time.Now()),
		}).Error
}
