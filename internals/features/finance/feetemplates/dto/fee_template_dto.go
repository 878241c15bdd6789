// file: internals/features/finance/feetemplates/dto/fee_template_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	tplModel "sekolahku_backend/internals/features/finance/feetemplates/model"
	tplService "sekolahku_backend/internals/features/finance/feetemplates/service"
)

/* =========================
   REQUEST DTO
========================= */

type CreateFeeTemplateRequest struct {
	FeeTypeID      uuid.UUID `json:"fee_type_id" validate:"required"`
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
	TermID         uuid.UUID `json:"term_id" validate:"required"`

	BaseAmountIDR int64 `json:"base_amount_idr" validate:"gte=0"`

	GradeIDs           []string `json:"grade_ids" validate:"omitempty,dive,uuid4"`
	ClassIDs           []string `json:"class_ids" validate:"omitempty,dive,uuid4"`
	CategoryIDs        []string `json:"category_ids" validate:"omitempty,dive,uuid4"`
	SpecialProgrammeID *string  `json:"special_programme_id" validate:"omitempty,uuid4"`

	Frequency *string    `json:"frequency" validate:"omitempty,oneof=once per_term per_year"`
	DueDate   *time.Time `json:"due_date"`
	Note      *string    `json:"note" validate:"omitempty,max=500"`
}

func (r *CreateFeeTemplateRequest) ToModel() *tplModel.FeeTemplateModel {
	m := &tplModel.FeeTemplateModel{
		FeeTemplateFeeTypeID:      r.FeeTypeID,
		FeeTemplateAcademicYearID: r.AcademicYearID,
		FeeTemplateTermID:         r.TermID,
		FeeTemplateBaseAmountIDR:  r.BaseAmountIDR,
		FeeTemplateGradeIDs:       r.GradeIDs,
		FeeTemplateClassIDs:       r.ClassIDs,
		FeeTemplateCategoryIDs:    r.CategoryIDs,
		FeeTemplateIsActive:       true,
		FeeTemplateDueDate:        r.DueDate,
		FeeTemplateNote:           r.Note,
	}
	if r.Frequency != nil {
		m.FeeTemplateFrequency = tplModel.FeeFrequency(*r.Frequency)
	}
	if r.SpecialProgrammeID != nil {
		if id, err := uuid.Parse(*r.SpecialProgrammeID); err == nil {
			m.FeeTemplateSpecialProgrammeID = &id
		}
	}
	return m
}

type UpdateFeeTemplateRequest struct {
	BaseAmountIDR *int64    `json:"base_amount_idr" validate:"omitempty,gte=0"`
	GradeIDs      *[]string `json:"grade_ids" validate:"omitempty,dive,uuid4"`
	ClassIDs      *[]string `json:"class_ids" validate:"omitempty,dive,uuid4"`
	CategoryIDs   *[]string `json:"category_ids" validate:"omitempty,dive,uuid4"`

	DueDate *time.Time `json:"due_date"`
	// JSON null and an absent key are indistinguishable after decode,
	// so clearing the due date takes an explicit flag.
	ClearDueDate bool    `json:"clear_due_date"`
	IsActive     *bool   `json:"is_active"`
	Note         *string `json:"note" validate:"omitempty,max=500"`
}

func (r *UpdateFeeTemplateRequest) ToUpdate() tplService.TemplateUpdate {
	upd := tplService.TemplateUpdate{
		BaseAmountIDR: r.BaseAmountIDR,
		GradeIDs:      r.GradeIDs,
		ClassIDs:      r.ClassIDs,
		CategoryIDs:   r.CategoryIDs,
		IsActive:      r.IsActive,
		Note:          r.Note,
	}
	switch {
	case r.ClearDueDate:
		var cleared *time.Time
		upd.DueDate = &cleared
	case r.DueDate != nil:
		d := r.DueDate
		upd.DueDate = &d
	}
	return upd
}

/* =========================
   RESPONSE DTO
========================= */

type FeeTemplateResponse struct {
	ID             uuid.UUID `json:"id"`
	FeeTypeID      uuid.UUID `json:"fee_type_id"`
	AcademicYearID uuid.UUID `json:"academic_year_id"`
	TermID         uuid.UUID `json:"term_id"`

	BaseAmountIDR int64 `json:"base_amount_idr"`

	GradeIDs           []string   `json:"grade_ids"`
	ClassIDs           []string   `json:"class_ids"`
	CategoryIDs        []string   `json:"category_ids"`
	SpecialProgrammeID *uuid.UUID `json:"special_programme_id,omitempty"`

	IsActive  bool       `json:"is_active"`
	Version   int        `json:"version"`
	Frequency string     `json:"frequency"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Note      *string    `json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToFeeTemplateResponse(m *tplModel.FeeTemplateModel) FeeTemplateResponse {
	return FeeTemplateResponse{
		ID:                 m.FeeTemplateID,
		FeeTypeID:          m.FeeTemplateFeeTypeID,
		AcademicYearID:     m.FeeTemplateAcademicYearID,
		TermID:             m.FeeTemplateTermID,
		BaseAmountIDR:      m.FeeTemplateBaseAmountIDR,
		GradeIDs:           m.FeeTemplateGradeIDs,
		ClassIDs:           m.FeeTemplateClassIDs,
		CategoryIDs:        m.FeeTemplateCategoryIDs,
		SpecialProgrammeID: m.FeeTemplateSpecialProgrammeID,
		IsActive:           m.FeeTemplateIsActive,
		Version:            m.FeeTemplateVersion,
		Frequency:          string(m.FeeTemplateFrequency),
		DueDate:            m.FeeTemplateDueDate,
		Note:               m.FeeTemplateNote,
		CreatedAt:          m.FeeTemplateCreatedAt,
		UpdatedAt:          m.FeeTemplateUpdatedAt,
	}
}

func ToFeeTemplateResponses(models []tplModel.FeeTemplateModel) []FeeTemplateResponse {
	out := make([]FeeTemplateResponse, 0, len(models))
	for i := range models {
		out = append(out, ToFeeTemplateResponse(&models[i]))
	}
	return out
}
