// file: internals/features/finance/exceptions/dto/fee_exception_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	excModel "sekolahku_backend/internals/features/finance/exceptions/model"
)

/* =========================
   REQUEST DTO
========================= */

type CreateFeeExceptionRequest struct {
	StudentID     uuid.UUID `json:"student_id" validate:"required"`
	FeeTemplateID uuid.UUID `json:"fee_template_id" validate:"required"`
	FeeTypeID     uuid.UUID `json:"fee_type_id" validate:"required"`

	Type       string   `json:"type" validate:"required,oneof=discount scholarship waiver"`
	AmountType string   `json:"amount_type" validate:"required,oneof=fixed percentage"`
	AmountIDR  *int64   `json:"amount_idr" validate:"omitempty,gte=0"`
	Percentage *float64 `json:"percentage" validate:"omitempty,gte=0,lte=100"`

	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date"`

	Note *string `json:"note" validate:"omitempty,max=500"`
}

func (r *CreateFeeExceptionRequest) ToModel(approvedBy uuid.UUID) *excModel.FeeExceptionModel {
	return &excModel.FeeExceptionModel{
		FeeExceptionStudentID:     r.StudentID,
		FeeExceptionFeeTemplateID: r.FeeTemplateID,
		FeeExceptionFeeTypeID:     r.FeeTypeID,
		FeeExceptionType:          excModel.FeeExceptionType(r.Type),
		FeeExceptionAmountType:    excModel.FeeExceptionAmountType(r.AmountType),
		FeeExceptionAmountIDR:     r.AmountIDR,
		FeeExceptionPercentage:    r.Percentage,
		FeeExceptionStartDate:     r.StartDate,
		FeeExceptionEndDate:       r.EndDate,
		FeeExceptionApprovedBy:    approvedBy,
		FeeExceptionNote:          r.Note,
	}
}

/* =========================
   RESPONSE DTO
========================= */

type FeeExceptionResponse struct {
	ID            uuid.UUID `json:"id"`
	StudentID     uuid.UUID `json:"student_id"`
	FeeTemplateID uuid.UUID `json:"fee_template_id"`
	FeeTypeID     uuid.UUID `json:"fee_type_id"`

	Type       string   `json:"type"`
	AmountType string   `json:"amount_type"`
	AmountIDR  *int64   `json:"amount_idr,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Status     string    `json:"status"`
	ApprovedBy uuid.UUID `json:"approved_by"`
	Note       *string   `json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func ToFeeExceptionResponse(m *excModel.FeeExceptionModel) FeeExceptionResponse {
	return FeeExceptionResponse{
		ID:            m.FeeExceptionID,
		StudentID:     m.FeeExceptionStudentID,
		FeeTemplateID: m.FeeExceptionFeeTemplateID,
		FeeTypeID:     m.FeeExceptionFeeTypeID,
		Type:          string(m.FeeExceptionType),
		AmountType:    string(m.FeeExceptionAmountType),
		AmountIDR:     m.FeeExceptionAmountIDR,
		Percentage:    m.FeeExceptionPercentage,
		StartDate:     m.FeeExceptionStartDate,
		EndDate:       m.FeeExceptionEndDate,
		Status:        string(m.FeeExceptionStatus),
		ApprovedBy:    m.FeeExceptionApprovedBy,
		Note:          m.FeeExceptionNote,
		CreatedAt:     m.FeeExceptionCreatedAt,
	}
}

func ToFeeExceptionResponses(models []excModel.FeeExceptionModel) []FeeExceptionResponse {
	out := make([]FeeExceptionResponse, 0, len(models))
	for i := range models {
		out = append(out, ToFeeExceptionResponse(&models[i]))
	}
	return out
}
