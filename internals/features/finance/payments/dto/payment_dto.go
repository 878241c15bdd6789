// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	payModel "sekolahku_backend/internals/features/finance/payments/model"
	payService "sekolahku_backend/internals/features/finance/payments/service"
)

/* =========================
   REQUEST DTO
========================= */

type AllocatePaymentRequest struct {
	StudentID      uuid.UUID  `json:"student_id" validate:"required"`
	AmountIDR      int64      `json:"amount_idr" validate:"required,gt=0"`
	PaymentDate    *time.Time `json:"payment_date"`
	Method         *string    `json:"method" validate:"omitempty,oneof=cash bank_transfer qris other"`
	AcademicYearID uuid.UUID  `json:"academic_year_id" validate:"required"`
	TermID         uuid.UUID  `json:"term_id" validate:"required"`

	FeeTypeIDs     []uuid.UUID `json:"fee_type_ids"`
	FeeTemplateIDs []uuid.UUID `json:"fee_template_ids"`
	UseCredit      bool        `json:"use_credit"`
	Note           *string     `json:"note" validate:"omitempty,max=500"`
}

func (r *AllocatePaymentRequest) ToInput() payService.AllocateInput {
	in := payService.AllocateInput{
		StudentID:      r.StudentID,
		AmountIDR:      r.AmountIDR,
		AcademicYearID: r.AcademicYearID,
		TermID:         r.TermID,
		FeeTypeIDs:     r.FeeTypeIDs,
		FeeTemplateIDs: r.FeeTemplateIDs,
		UseCredit:      r.UseCredit,
		Note:           r.Note,
	}
	if r.PaymentDate != nil {
		in.PaymentDate = *r.PaymentDate
	}
	if r.Method != nil {
		in.Method = payModel.PaymentMethod(*r.Method)
	}
	return in
}

type BulkAllocateRequest struct {
	Payments []AllocatePaymentRequest `json:"payments" validate:"required,min=1,max=200,dive"`
}

func (r *BulkAllocateRequest) ToInputs() []payService.AllocateInput {
	out := make([]payService.AllocateInput, 0, len(r.Payments))
	for i := range r.Payments {
		out = append(out, r.Payments[i].ToInput())
	}
	return out
}

type EditPaymentRequest struct {
	AmountIDR   int64                   `json:"amount_idr" validate:"required,gt=0"`
	Allocations []EditAllocationRequest `json:"allocations" validate:"required,min=1,dive"`
	Note        *string                 `json:"note" validate:"omitempty,max=500"`
}

type EditAllocationRequest struct {
	FeeTemplateID uuid.UUID `json:"fee_template_id" validate:"required"`
	AmountIDR     int64     `json:"amount_idr" validate:"gte=0"`
}

func (r *EditPaymentRequest) ToInput(paymentID uuid.UUID) payService.EditInput {
	in := payService.EditInput{
		PaymentID: paymentID,
		AmountIDR: r.AmountIDR,
		Note:      r.Note,
	}
	for _, a := range r.Allocations {
		in.Allocations = append(in.Allocations, payService.EditAllocation{
			FeeTemplateID: a.FeeTemplateID,
			AmountIDR:     a.AmountIDR,
		})
	}
	return in
}

/* =========================
   RESPONSE DTO
========================= */

type AllocationResponse struct {
	FeeTemplateID uuid.UUID `json:"fee_template_id"`
	AmountIDR     int64     `json:"amount_idr"`
	CreditIDR     int64     `json:"credit_idr"`
}

type PaymentResponse struct {
	ID            uuid.UUID `json:"id"`
	StudentID     uuid.UUID `json:"student_id"`
	AmountIDR     int64     `json:"amount_idr"`
	PaymentDate   time.Time `json:"payment_date"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	ReceiptNumber *int64    `json:"receipt_number,omitempty"`

	AcademicYearID uuid.UUID `json:"academic_year_id"`
	TermID         uuid.UUID `json:"term_id"`

	BalanceIDR int64   `json:"balance_idr"`
	IsPartial  bool    `json:"is_partial"`
	Note       *string `json:"note,omitempty"`

	Allocations []AllocationResponse `json:"allocations,omitempty"`

	CreditMintedIDR int64 `json:"credit_minted_idr,omitempty"`
	CreditDrawnIDR  int64 `json:"credit_drawn_idr,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func ToPaymentResponse(res *payService.AllocateResult) PaymentResponse {
	p := res.Payment
	out := PaymentResponse{
		ID:             p.PaymentID,
		StudentID:      p.PaymentStudentID,
		AmountIDR:      p.PaymentAmountIDR,
		PaymentDate:    p.PaymentDate,
		Method:         string(p.PaymentMethod),
		Status:         string(p.PaymentStatus),
		ReceiptNumber:  p.PaymentReceiptNumber,
		AcademicYearID: p.PaymentAcademicYearID,
		TermID:         p.PaymentTermID,
		BalanceIDR:     p.PaymentBalanceIDR,
		IsPartial:      p.PaymentIsPartial,
		Note:           p.PaymentNote,

		CreditMintedIDR: res.CreditMintedIDR,
		CreditDrawnIDR:  res.CreditDrawnIDR,
		CreatedAt:       p.PaymentCreatedAt,
	}
	for _, a := range res.Allocations {
		out.Allocations = append(out.Allocations, AllocationResponse{
			FeeTemplateID: a.FeeAllocationFeeTemplateID,
			AmountIDR:     a.FeeAllocationAmountIDR,
			CreditIDR:     a.FeeAllocationCreditIDR,
		})
	}
	return out
}
