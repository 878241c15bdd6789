// file: internals/features/finance/feetemplates/service/resolver_service_test.go
package service

import (
	"testing"

	"github.com/google/uuid"

	tplModel "sekolahku_backend/internals/features/finance/feetemplates/model"
)

func TestTemplateApplies(t *testing.T) {
	gradeA := uuid.New()
	gradeB := uuid.New()
	classA := uuid.New()
	catBoarder := uuid.New()
	catScholar := uuid.New()
	progRobotics := uuid.New()

	student := &StudentAttributes{
		StudentID:           uuid.New(),
		GradeID:             gradeA,
		ClassID:             classA,
		CategoryIDs:         []uuid.UUID{catBoarder},
		SpecialProgrammeIDs: []uuid.UUID{progRobotics},
	}

	cases := []struct {
		name string
		tpl  tplModel.FeeTemplateModel
		want bool
	}{
		{
			name: "empty scope applies to everyone",
			tpl:  tplModel.FeeTemplateModel{FeeTemplateIsActive: true},
			want: true,
		},
		{
			name: "inactive template never applies",
			tpl:  tplModel.FeeTemplateModel{FeeTemplateIsActive: false},
			want: false,
		},
		{
			name: "grade match",
			tpl: tplModel.FeeTemplateModel{
				FeeTemplateIsActive: true,
				FeeTemplateGradeIDs: []string{gradeA.String()},
			},
			want: true,
		},
		{
			name: "grade mismatch",
			tpl: tplModel.FeeTemplateModel{
				FeeTemplateIsActive: true,
				FeeTemplateGradeIDs: []string{gradeB.String()},
			},
			want: false,
		},
		{
			name: "category any-of match",
			tpl: tplModel.FeeTemplateModel{
				FeeTemplateIsActive:    true,
				FeeTemplateCategoryIDs: []string{catScholar.String(), catBoarder.String()},
			},
			want: true,
		},
		{
			name: "category required but student has none of them",
			tpl: tplModel.FeeTemplateModel{
				FeeTemplateIsActive:    true,
				FeeTemplateCategoryIDs: []string{catScholar.String()},
			},
			want: false,
		},
		{
			name: "all dimensions must match together",
			tpl: tplModel.FeeTemplateModel{
				FeeTemplateIsActive:    true,
				FeeTemplateGradeIDs:    []string{gradeA.String()},
				FeeTemplateClassIDs:    []string{classA.String()},
				FeeTemplateCategoryIDs: []string{catBoarder.String()},
			},
			want: true,
		},
		{
			name: "one mismatching dimension rejects the whole template",
			tpl: tplModel.FeeTemplateModel{
				FeeTemplateIsActive: true,
				FeeTemplateGradeIDs: []string{gradeA.String()},
				FeeTemplateClassIDs: []string{uuid.New().String()},
			},
			want: false,
		},
		{
			name: "special programme required and enrolled",
			tpl: tplModel.FeeTemplateModel{
				FeeTemplateIsActive:           true,
				FeeTemplateSpecialProgrammeID: &progRobotics,
			},
			want: true,
		},
		{
			name: "special programme required and not enrolled",
			tpl: tplModel.FeeTemplateModel{
				FeeTemplateIsActive:           true,
				FeeTemplateSpecialProgrammeID: ptrUUID(uuid.New()),
			},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TemplateApplies(&tc.tpl, student); got != tc.want {
				t.Fatalf("TemplateApplies() = %v, want %v", got, tc.want)
			}
		})
	}
}

// A student whose grade and class are still NULL in the roster resolves
// with zero-value attributes: universal templates bind, scoped ones don't.
func TestTemplateAppliesUnassignedStudent(t *testing.T) {
	student := &StudentAttributes{StudentID: uuid.New()}

	universal := tplModel.FeeTemplateModel{FeeTemplateIsActive: true}
	if !TemplateApplies(&universal, student) {
		t.Fatal("universal template must bind a student without grade/class")
	}

	gradeScoped := tplModel.FeeTemplateModel{
		FeeTemplateIsActive: true,
		FeeTemplateGradeIDs: []string{uuid.New().String()},
	}
	if TemplateApplies(&gradeScoped, student) {
		t.Fatal("grade-scoped template must not bind a student without a grade")
	}
}

func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }
