// file: internals/features/finance/payments/service/payment_allocator_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	auditService "sekolahku_backend/internals/features/finance/audit/service"
	excService "sekolahku_backend/internals/features/finance/exceptions/service"
	tplService "sekolahku_backend/internals/features/finance/feetemplates/service"
	payModel "sekolahku_backend/internals/features/finance/payments/model"
	"sekolahku_backend/internals/helpers/errs"
)

/* ===========================================================
   PAYMENT ALLOCATOR
   One transaction per payment: resolve applicable fees,
   adjust for exceptions, fund obligations oldest-first,
   draw credit for shortfalls, mint credit from leftovers,
   audit everything. Conservation invariant checked before
   commit: freshApplied + leftover == payment amount.
=========================================================== */

type AllocateInput struct {
	StudentID      uuid.UUID
	AmountIDR      int64
	PaymentDate    time.Time
	Method         payModel.PaymentMethod
	AcademicYearID uuid.UUID
	TermID         uuid.UUID

	// Optional target restriction: either a fee-type subset or an
	// explicit template set. Empty means all outstanding in scope.
	FeeTypeIDs     []uuid.UUID
	FeeTemplateIDs []uuid.UUID

	// UseCredit lets the run draw on the student's stored credit when
	// fresh funds fall short.
	UseCredit bool

	Note *string
}

type AllocateResult struct {
	Payment          *payModel.PaymentModel
	Allocations      []payModel.FeeAllocationModel
	CreditMintedIDR  int64
	CreditDrawnIDR   int64
	NoApplicableFees bool
}

func forUpdate() clause.Locking { return clause.Locking{Strength: "UPDATE"} }

// AllocatePayment records a payment and spreads it over the student's
// open obligations. When nothing is owed the payment is NOT persisted
// and the result comes back flagged NoApplicableFees.
func AllocatePayment(ctx context.Context, db *gorm.DB, in AllocateInput, performedBy uuid.UUID) (*AllocateResult, error) {
	if in.AmountIDR <= 0 {
		return nil, errs.Validation("payment_amount_idr", "amount must be positive")
	}
	if in.PaymentDate.IsZero() {
		in.PaymentDate = time.Now()
	}
	if in.Method == "" {
		in.Method = payModel.PaymentMethodCash
	}

	attrs, err := tplService.LoadStudentAttributes(ctx, db, in.StudentID)
	if err != nil {
		return nil, err
	}

	out := &AllocateResult{}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		obligations, err := openObligations(ctx, tx, attrs, in)
		if err != nil {
			return err
		}
		if len(obligations) == 0 {
			out.NoApplicableFees = true
			return nil
		}

		var pool []CreditUnit
		if in.UseCredit {
			credits, err := loadCreditUnits(tx, in.StudentID)
			if err != nil {
				return err
			}
			pool = make([]CreditUnit, 0, len(credits))
			for _, c := range credits {
				pool = append(pool, CreditUnit{ExcessFeeID: c.ExcessFeeID, AvailableIDR: c.ExcessFeeAmountIDR})
			}
		}

		plan := BuildAllocationPlan(obligations, in.AmountIDR, pool)

		var freshApplied int64
		for _, a := range plan.Allocations {
			freshApplied += a.FreshIDR
		}
		if freshApplied+plan.LeftoverIDR != in.AmountIDR {
			return errs.Invariant("allocation plan does not conserve the payment amount")
		}

		receipt, err := nextReceiptNumber(tx)
		if err != nil {
			return err
		}

		payment := payModel.PaymentModel{
			PaymentStudentID:      in.StudentID,
			PaymentAmountIDR:      in.AmountIDR,
			PaymentDate:           in.PaymentDate,
			PaymentMethod:         in.Method,
			PaymentStatus:         payModel.PaymentStatusPosted,
			PaymentAcademicYearID: in.AcademicYearID,
			PaymentTermID:         in.TermID,
			PaymentReceiptNumber:  &receipt,
			PaymentBalanceIDR:     plan.LeftoverIDR,
			PaymentIsPartial:      anyUnderfunded(obligations, plan),
			PaymentNote:           in.Note,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return errs.FromDB(err, "payment")
		}

		for _, a := range plan.Allocations {
			row := payModel.FeeAllocationModel{
				FeeAllocationPaymentID:     payment.PaymentID,
				FeeAllocationFeeTemplateID: a.FeeTemplateID,
				FeeAllocationAmountIDR:     a.FreshIDR,
				FeeAllocationCreditIDR:     a.CreditIDR,
			}
			if err := tx.Create(&row).Error; err != nil {
				return errs.FromDB(err, "fee allocation")
			}
			out.Allocations = append(out.Allocations, row)

			if err := bumpFeeStatus(tx, in.StudentID, a.FeeTemplateID, in.TermID, in.AcademicYearID, a.FreshIDR+a.CreditIDR, in.PaymentDate); err != nil {
				return err
			}
		}

		if err := applyCreditDraws(tx, payment.PaymentID, plan); err != nil {
			return err
		}
		out.CreditDrawnIDR = plan.CreditConsumedIDR

		if plan.LeftoverIDR > 0 {
			if _, err := mintCredit(tx, in.StudentID, plan.LeftoverIDR, in.TermID, in.AcademicYearID, &payment.PaymentID, "unallocated payment remainder"); err != nil {
				return err
			}
			out.CreditMintedIDR = plan.LeftoverIDR
		}

		delta := in.AmountIDR
		if err := auditService.Log(tx, auditService.Entry{
			EntityType: "payment",
			EntityID:   payment.PaymentID,
			Action:     "payment.allocate",
			Changes: map[string]any{
				"after":             payment,
				"allocations":       out.Allocations,
				"credit_drawn_idr":  plan.CreditConsumedIDR,
				"credit_minted_idr": plan.LeftoverIDR,
			},
			PerformedBy:   performedBy,
			MoneyDeltaIDR: &delta,
		}); err != nil {
			return err
		}

		out.Payment = &payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// openObligations resolves applicable templates, applies any active
// exception, upserts the fee_statuses rows, and returns the ones that
// still carry a balance. Locks the status rows for the transaction.
func openObligations(ctx context.Context, tx *gorm.DB, attrs *tplService.StudentAttributes, in AllocateInput) ([]Obligation, error) {
	templates, err := tplService.ResolveApplicableFees(ctx, tx, attrs, in.AcademicYearID, in.TermID, in.FeeTypeIDs)
	if err != nil {
		return nil, err
	}

	var wanted map[uuid.UUID]bool
	if len(in.FeeTemplateIDs) > 0 {
		wanted = make(map[uuid.UUID]bool, len(in.FeeTemplateIDs))
		for _, id := range in.FeeTemplateIDs {
			wanted[id] = true
		}
	}

	obligations := make([]Obligation, 0, len(templates))
	for i := range templates {
		tpl := &templates[i]
		if wanted != nil && !wanted[tpl.FeeTemplateID] {
			continue
		}

		exc, err := excService.GetActiveException(ctx, tx, in.StudentID, tpl.FeeTemplateID, in.PaymentDate)
		if err != nil {
			return nil, err
		}
		due := excService.AdjustedAmountOwedIDR(exc, tpl.FeeTemplateBaseAmountIDR)

		var status payModel.FeeStatusModel
		err = tx.Clauses(forUpdate()).
			Where(payModel.FeeStatusModel{
				FeeStatusStudentID:      in.StudentID,
				FeeStatusFeeTemplateID:  tpl.FeeTemplateID,
				FeeStatusTermID:         in.TermID,
				FeeStatusAcademicYearID: in.AcademicYearID,
			}).
			Attrs(payModel.FeeStatusModel{
				FeeStatusDueAmountIDR: due,
				FeeStatusDueDate:      tpl.FeeTemplateDueDate,
				FeeStatusState:        StateFor(due, 0, tpl.FeeTemplateDueDate, in.PaymentDate),
			}).
			FirstOrCreate(&status).Error
		if err != nil {
			return nil, errs.FromDB(err, "fee status")
		}

		// Re-adjust due on existing rows when the exception picture
		// changed since the row was created, never below already-paid.
		if status.FeeStatusDueAmountIDR != due && due >= status.FeeStatusPaidAmountIDR {
			if err := tx.Model(&payModel.FeeStatusModel{}).
				Where("fee_status_id = ?", status.FeeStatusID).
				Update("fee_status_due_amount_idr", due).Error; err != nil {
				return nil, errs.FromDB(err, "fee status")
			}
			status.FeeStatusDueAmountIDR = due
		}

		if status.FeeStatusDueAmountIDR-status.FeeStatusPaidAmountIDR <= 0 {
			continue
		}
		obligations = append(obligations, Obligation{
			FeeTemplateID: tpl.FeeTemplateID,
			FeeTypeID:     tpl.FeeTemplateFeeTypeID,
			DueDate:       status.FeeStatusDueDate,
			DueAmountIDR:  status.FeeStatusDueAmountIDR,
			PaidAmountIDR: status.FeeStatusPaidAmountIDR,
		})
	}
	return obligations, nil
}

// bumpFeeStatus adds a funded amount onto one obligation and
// recomputes its state.
func bumpFeeStatus(tx *gorm.DB, studentID, feeTemplateID, termID, academicYearID uuid.UUID, fundedIDR int64, paidAt time.Time) error {
	if fundedIDR <= 0 {
		return nil
	}
	var status payModel.FeeStatusModel
	err := tx.
		Where("fee_status_student_id = ?", studentID).
		Where("fee_status_fee_template_id = ?", feeTemplateID).
		Where("fee_status_term_id = ?", termID).
		Where("fee_status_academic_year_id = ?", academicYearID).
		First(&status).Error
	if err != nil {
		return errs.FromDB(err, "fee status")
	}

	newPaid := status.FeeStatusPaidAmountIDR + fundedIDR
	if newPaid > status.FeeStatusDueAmountIDR {
		return errs.Invariant("allocation overshoots the obligation balance")
	}
	return tx.Model(&payModel.FeeStatusModel{}).
		Where("fee_status_id = ?", status.FeeStatusID).
		Updates(map[string]any{
			"fee_status_paid_amount_idr": newPaid,
			"fee_status_state":           StateFor(status.FeeStatusDueAmountIDR, newPaid, status.FeeStatusDueDate, paidAt),
			"fee_status_last_payment_at": paidAt,
		}).Error
}

// nextReceiptNumber is MAX+1 over posted payments; fine under the
// allocator's serializable-enough row locking, and the unique index
// backstops races with a retryable conflict.
func nextReceiptNumber(tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Raw(`
		SELECT COALESCE(MAX(payment_receipt_number), 0) + 1
		FROM payments
	`).Scan(&n).Error
	if err != nil {
		return 0, errs.FromDB(err, "payment receipt number")
	}
	return n, nil
}

func anyUnderfunded(obligations []Obligation, plan AllocationPlan) bool {
	funded := make(map[uuid.UUID]int64, len(plan.Allocations))
	for _, a := range plan.Allocations {
		funded[a.FeeTemplateID] = a.FreshIDR + a.CreditIDR
	}
	for _, o := range obligations {
		if funded[o.FeeTemplateID] < o.BalanceIDR() {
			return true
		}
	}
	return false
}
