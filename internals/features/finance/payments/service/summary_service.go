// file: internals/features/finance/payments/service/summary_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	excService "sekolahku_backend/internals/features/finance/exceptions/service"
	tplService "sekolahku_backend/internals/features/finance/feetemplates/service"
	payModel "sekolahku_backend/internals/features/finance/payments/model"
	"sekolahku_backend/internals/helpers/errs"
)

/* ===========================================================
   FEE SUMMARY AGGREGATOR
   The parent-facing statement: per fee type, what the base
   price was, what exceptions shaved off, what has been paid
   and what remains — plus the student's open credit.
=========================================================== */

type SummaryInput struct {
	FeeTypeID     uuid.UUID
	FeeTemplateID uuid.UUID
	BaseAmountIDR int64
	ExemptionIDR  int64
	PaidAmountIDR int64
	DueDate       *time.Time
}

type SummaryLine struct {
	FeeTypeID     uuid.UUID               `json:"fee_type_id"`
	BaseAmountIDR int64                   `json:"base_amount_idr"`
	ExemptionIDR  int64                   `json:"exemption_idr"`
	DueAmountIDR  int64                   `json:"due_amount_idr"`
	PaidAmountIDR int64                   `json:"paid_amount_idr"`
	BalanceIDR    int64                   `json:"balance_idr"`
	State         payModel.FeeStatusState `json:"state"`
}

type FeeSummary struct {
	StudentID      uuid.UUID     `json:"student_id"`
	AcademicYearID uuid.UUID     `json:"academic_year_id"`
	TermID         uuid.UUID     `json:"term_id"`
	Lines          []SummaryLine `json:"lines"`

	TotalDueIDR     int64 `json:"total_due_idr"`
	TotalPaidIDR    int64 `json:"total_paid_idr"`
	TotalBalanceIDR int64 `json:"total_balance_idr"`

	// CreditBalanceIDR is the student's full open credit across all
	// periods; ExtraFeesIDR is the slice of it minted in this year and
	// term (informational, never auto-netted into the balance).
	CreditBalanceIDR int64 `json:"credit_balance_idr"`
	ExtraFeesIDR     int64 `json:"extra_fees_idr"`
}

// scopedExtraFeesIDR sums the open credit units that belong to one
// year and term. Pure; the caller loads the student's open units.
func scopedExtraFeesIDR(units []payModel.ExcessFeeModel, academicYearID, termID uuid.UUID) int64 {
	var total int64
	for _, u := range units {
		if u.ExcessFeeIsUsed {
			continue
		}
		if u.ExcessFeeAcademicYearID == academicYearID && u.ExcessFeeTermID == termID {
			total += u.ExcessFeeAmountIDR
		}
	}
	return total
}

// ComputeSummaryLines folds per-template inputs into per-fee-type
// lines. Pure; layered templates of one type merge additively.
func ComputeSummaryLines(inputs []SummaryInput, now time.Time) []SummaryLine {
	byType := make(map[uuid.UUID]*SummaryLine)
	dueDates := make(map[uuid.UUID]*time.Time)
	for _, in := range inputs {
		line, ok := byType[in.FeeTypeID]
		if !ok {
			line = &SummaryLine{FeeTypeID: in.FeeTypeID}
			byType[in.FeeTypeID] = line
		}
		line.BaseAmountIDR += in.BaseAmountIDR
		line.ExemptionIDR += in.ExemptionIDR
		line.PaidAmountIDR += in.PaidAmountIDR
		if in.DueDate != nil {
			if cur := dueDates[in.FeeTypeID]; cur == nil || in.DueDate.Before(*cur) {
				d := *in.DueDate
				dueDates[in.FeeTypeID] = &d
			}
		}
	}

	lines := make([]SummaryLine, 0, len(byType))
	for typeID, line := range byType {
		line.DueAmountIDR = line.BaseAmountIDR - line.ExemptionIDR
		line.BalanceIDR = line.DueAmountIDR - line.PaidAmountIDR
		line.State = StateFor(line.DueAmountIDR, line.PaidAmountIDR, dueDates[typeID], now)
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].FeeTypeID.String() < lines[j].FeeTypeID.String()
	})
	return lines
}

// GetFeeSummary assembles the statement for one student and period.
// Read-only; it never creates fee_statuses rows, so untouched
// obligations report paid = 0.
func GetFeeSummary(ctx context.Context, db *gorm.DB, studentID, academicYearID, termID uuid.UUID) (*FeeSummary, error) {
	attrs, err := tplService.LoadStudentAttributes(ctx, db, studentID)
	if err != nil {
		return nil, err
	}
	templates, err := tplService.ResolveApplicableFees(ctx, db, attrs, academicYearID, termID, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inputs := make([]SummaryInput, 0, len(templates))
	for i := range templates {
		tpl := &templates[i]

		exc, err := excService.GetActiveException(ctx, db, studentID, tpl.FeeTemplateID, now)
		if err != nil {
			return nil, err
		}

		var status payModel.FeeStatusModel
		var paid int64
		err = db.WithContext(ctx).
			Where("fee_status_student_id = ?", studentID).
			Where("fee_status_fee_template_id = ?", tpl.FeeTemplateID).
			Where("fee_status_term_id = ?", termID).
			Where("fee_status_academic_year_id = ?", academicYearID).
			First(&status).Error
		switch {
		case err == nil:
			paid = status.FeeStatusPaidAmountIDR
		case errors.Is(err, gorm.ErrRecordNotFound):
			paid = 0
		default:
			return nil, errs.FromDB(err, "fee status")
		}

		inputs = append(inputs, SummaryInput{
			FeeTypeID:     tpl.FeeTemplateFeeTypeID,
			FeeTemplateID: tpl.FeeTemplateID,
			BaseAmountIDR: tpl.FeeTemplateBaseAmountIDR,
			ExemptionIDR:  excService.ExemptionAmountIDR(exc, tpl.FeeTemplateBaseAmountIDR),
			PaidAmountIDR: paid,
			DueDate:       tpl.FeeTemplateDueDate,
		})
	}

	credit, err := CreditBalanceIDR(ctx, db, studentID)
	if err != nil {
		return nil, err
	}

	var openUnits []payModel.ExcessFeeModel
	if err := db.WithContext(ctx).
		Where("excess_fee_student_id = ?", studentID).
		Where("excess_fee_is_used = FALSE").
		Find(&openUnits).Error; err != nil {
		return nil, errs.FromDB(err, "excess fees")
	}

	out := &FeeSummary{
		StudentID:        studentID,
		AcademicYearID:   academicYearID,
		TermID:           termID,
		Lines:            ComputeSummaryLines(inputs, now),
		CreditBalanceIDR: credit,
		ExtraFeesIDR:     scopedExtraFeesIDR(openUnits, academicYearID, termID),
	}
	for _, l := range out.Lines {
		out.TotalDueIDR += l.DueAmountIDR
		out.TotalPaidIDR += l.PaidAmountIDR
		out.TotalBalanceIDR += l.BalanceIDR
	}
	return out, nil
}

// SummaryFilter scopes a cohort statement run. Year and term are
// required; grade/class narrow the student set.
type SummaryFilter struct {
	AcademicYearID uuid.UUID
	TermID         uuid.UUID
	GradeID        *uuid.UUID
	ClassID        *uuid.UUID
}

// GetFeeSummaries runs the per-student statement over every student
// the filter matches.
func GetFeeSummaries(ctx context.Context, db *gorm.DB, f SummaryFilter) ([]FeeSummary, error) {
	q := `
		SELECT student_id
		FROM students
		WHERE student_deleted_at IS NULL`
	args := []any{}
	if f.GradeID != nil {
		q += ` AND student_grade_id = ?`
		args = append(args, *f.GradeID)
	}
	if f.ClassID != nil {
		q += ` AND student_class_id = ?`
		args = append(args, *f.ClassID)
	}
	q += ` ORDER BY student_id`

	var studentIDs []uuid.UUID
	if err := db.WithContext(ctx).Raw(q, args...).Scan(&studentIDs).Error; err != nil {
		return nil, errs.FromDB(err, "students")
	}

	out := make([]FeeSummary, 0, len(studentIDs))
	for _, id := range studentIDs {
		s, err := GetFeeSummary(ctx, db, id, f.AcademicYearID, f.TermID)
		if err != nil {
			if errs.Is(err, errs.KindNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

// ListOutstanding returns every open obligation row for a student in
// a period, oldest due first.
func ListOutstanding(ctx context.Context, db *gorm.DB, studentID, academicYearID, termID uuid.UUID) ([]payModel.FeeStatusModel, error) {
	var rows []payModel.FeeStatusModel
	err := db.WithContext(ctx).
		Where("fee_status_student_id = ?", studentID).
		Where("fee_status_academic_year_id = ?", academicYearID).
		Where("fee_status_term_id = ?", termID).
		Where("fee_status_paid_amount_idr < fee_status_due_amount_idr").
		Order("fee_status_due_date ASC NULLS LAST").
		Find(&rows).Error
	if err != nil {
		return nil, errs.FromDB(err, "fee statuses")
	}
	return rows, nil
}
