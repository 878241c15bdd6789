// file: internals/features/finance/payments/service/bulk_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===========================================================
   BULK ALLOCATION
   One independent transaction per item so a bad row never
   rolls back its siblings; results carry per-item outcomes.
=========================================================== */

type BulkItemResult struct {
	Index            int        `json:"index"`
	StudentID        uuid.UUID  `json:"student_id"`
	PaymentID        *uuid.UUID `json:"payment_id,omitempty"`
	ReceiptNumber    *int64     `json:"receipt_number,omitempty"`
	NoApplicableFees bool       `json:"no_applicable_fees,omitempty"`
	Error            string     `json:"error,omitempty"`
}

type BulkResult struct {
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Items     []BulkItemResult `json:"items"`
}

// AllocatePayments runs AllocatePayment per input. Aborts early only
// when the context is cancelled.
func AllocatePayments(ctx context.Context, db *gorm.DB, inputs []AllocateInput, performedBy uuid.UUID) (*BulkResult, error) {
	out := &BulkResult{Items: make([]BulkItemResult, 0, len(inputs))}
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		item := BulkItemResult{Index: i, StudentID: in.StudentID}
		res, err := AllocatePayment(ctx, db, in, performedBy)
		switch {
		case err != nil:
			item.Error = err.Error()
			out.Failed++
		case res.NoApplicableFees:
			item.NoApplicableFees = true
			out.Succeeded++
		default:
			item.PaymentID = &res.Payment.PaymentID
			item.ReceiptNumber = res.Payment.PaymentReceiptNumber
			out.Succeeded++
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}
