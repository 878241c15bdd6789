// file: internals/features/finance/feetemplates/service/resolver_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tplModel "sekolahku_backend/internals/features/finance/feetemplates/model"
	"sekolahku_backend/internals/helpers/errs"
)

/* ===========================================================
   RESOLVER
   Decides which fee templates bind a student in a period.
   A template applies when every NON-EMPTY scope dimension
   matches the student; an empty dimension matches everyone.
=========================================================== */

// StudentAttributes is the slice of the student record the resolver
// matches against. Loaded once per request, then matching is pure.
type StudentAttributes struct {
	StudentID           uuid.UUID
	GradeID             uuid.UUID
	ClassID             uuid.UUID
	CategoryIDs         []uuid.UUID
	SpecialProgrammeIDs []uuid.UUID
}

// LoadStudentAttributes hydrates the matching attributes from the
// students table plus the category / programme join tables.
func LoadStudentAttributes(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (*StudentAttributes, error) {
	// Scan into a slice so an absent row is detectable by count; a
	// student with NULL grade and class is still a found student.
	var rows []struct {
		StudentGradeID *uuid.UUID `gorm:"column:student_grade_id"`
		StudentClassID *uuid.UUID `gorm:"column:student_class_id"`
	}
	err := db.WithContext(ctx).Raw(`
		SELECT student_grade_id, student_class_id
		FROM students
		WHERE student_id = ? AND student_deleted_at IS NULL
	`, studentID).Scan(&rows).Error
	if err != nil {
		return nil, errs.FromDB(err, "student")
	}
	if len(rows) == 0 {
		return nil, errs.NotFound("student not found")
	}

	attrs := &StudentAttributes{StudentID: studentID}
	if rows[0].StudentGradeID != nil {
		attrs.GradeID = *rows[0].StudentGradeID
	}
	if rows[0].StudentClassID != nil {
		attrs.ClassID = *rows[0].StudentClassID
	}

	if err := db.WithContext(ctx).Raw(`
		SELECT student_category_category_id
		FROM student_categories
		WHERE student_category_student_id = ?
	`, studentID).Scan(&attrs.CategoryIDs).Error; err != nil {
		return nil, errs.FromDB(err, "student categories")
	}

	if err := db.WithContext(ctx).Raw(`
		SELECT student_programme_programme_id
		FROM student_programmes
		WHERE student_programme_student_id = ?
	`, studentID).Scan(&attrs.SpecialProgrammeIDs).Error; err != nil {
		return nil, errs.FromDB(err, "student programmes")
	}

	return attrs, nil
}

// TemplateApplies reports whether one template binds the student.
// Pure; no DB access.
func TemplateApplies(tpl *tplModel.FeeTemplateModel, attrs *StudentAttributes) bool {
	if !tpl.FeeTemplateIsActive {
		return false
	}
	if len(tpl.FeeTemplateGradeIDs) > 0 && !containsID(tpl.FeeTemplateGradeIDs, attrs.GradeID) {
		return false
	}
	if len(tpl.FeeTemplateClassIDs) > 0 && !containsID(tpl.FeeTemplateClassIDs, attrs.ClassID) {
		return false
	}
	if len(tpl.FeeTemplateCategoryIDs) > 0 && !containsAnyID(tpl.FeeTemplateCategoryIDs, attrs.CategoryIDs) {
		return false
	}
	if tpl.FeeTemplateSpecialProgrammeID != nil && !hasID(attrs.SpecialProgrammeIDs, *tpl.FeeTemplateSpecialProgrammeID) {
		return false
	}
	return true
}

// ResolveApplicableFees returns every active template in the period
// that binds the student, optionally restricted to a fee-type subset.
// Layered templates of the same fee type all apply (they stack).
func ResolveApplicableFees(
	ctx context.Context,
	db *gorm.DB,
	attrs *StudentAttributes,
	academicYearID, termID uuid.UUID,
	feeTypeIDs []uuid.UUID,
) ([]tplModel.FeeTemplateModel, error) {
	q := db.WithContext(ctx).
		Where("fee_template_academic_year_id = ?", academicYearID).
		Where("fee_template_term_id = ?", termID).
		Where("fee_template_is_active = TRUE")
	if len(feeTypeIDs) > 0 {
		q = q.Where("fee_template_fee_type_id IN ?", feeTypeIDs)
	}

	var candidates []tplModel.FeeTemplateModel
	if err := q.Order("fee_template_created_at ASC").Find(&candidates).Error; err != nil {
		return nil, errs.FromDB(err, "fee templates")
	}

	out := make([]tplModel.FeeTemplateModel, 0, len(candidates))
	for i := range candidates {
		if TemplateApplies(&candidates[i], attrs) {
			out = append(out, candidates[i])
		}
	}
	return out, nil
}

/* ==============================
   small matchers
============================== */

func containsID(arr []string, id uuid.UUID) bool {
	s := id.String()
	for _, v := range arr {
		if v == s {
			return true
		}
	}
	return false
}

func containsAnyID(arr []string, ids []uuid.UUID) bool {
	for _, id := range ids {
		if containsID(arr, id) {
			return true
		}
	}
	return false
}

func hasID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
