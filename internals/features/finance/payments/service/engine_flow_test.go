// file: internals/features/finance/payments/service/engine_flow_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	excModel "sekolahku_backend/internals/features/finance/exceptions/model"
	excService "sekolahku_backend/internals/features/finance/exceptions/service"
	tplModel "sekolahku_backend/internals/features/finance/feetemplates/model"
	tplService "sekolahku_backend/internals/features/finance/feetemplates/service"
)

// Resolver + exception + planner chained over in-memory data: a
// Grade 5 boarder with a 10% discount on a grade-scoped 6000 template
// owes 5400 before paying, and a 5400 payment settles it exactly.
func TestResolveAdjustAllocateFlow(t *testing.T) {
	grade5 := uuid.New()
	boarder := uuid.New()
	student := &tplService.StudentAttributes{
		StudentID:   uuid.New(),
		GradeID:     grade5,
		ClassID:     uuid.New(),
		CategoryIDs: []uuid.UUID{boarder},
	}

	tpl := tplModel.FeeTemplateModel{
		FeeTemplateID:            uuid.New(),
		FeeTemplateIsActive:      true,
		FeeTemplateGradeIDs:      []string{grade5.String()},
		FeeTemplateBaseAmountIDR: 6000,
	}
	if !tplService.TemplateApplies(&tpl, student) {
		t.Fatal("grade-scoped template must apply to a grade 5 student")
	}

	pct := 10.0
	discount := &excModel.FeeExceptionModel{
		FeeExceptionType:       excModel.FeeExceptionTypeDiscount,
		FeeExceptionAmountType: excModel.FeeExceptionAmountPercentage,
		FeeExceptionPercentage: &pct,
	}
	due := excService.AdjustedAmountOwedIDR(discount, tpl.FeeTemplateBaseAmountIDR)
	if due != 5400 {
		t.Fatalf("adjusted owed = %d, want 5400", due)
	}

	now := time.Now()
	obligation := Obligation{
		FeeTemplateID: tpl.FeeTemplateID,
		DueDate:       &now,
		DueAmountIDR:  due,
	}

	plan := BuildAllocationPlan([]Obligation{obligation}, 5400, nil)
	if len(plan.Allocations) != 1 || plan.Allocations[0].FreshIDR != 5400 {
		t.Fatalf("plan wrong: %+v", plan)
	}
	if plan.LeftoverIDR != 0 || plan.CreditConsumedIDR != 0 {
		t.Fatalf("settling payment must leave nothing over: %+v", plan)
	}

	paid := obligation.PaidAmountIDR + plan.Allocations[0].FreshIDR
	if got := StateFor(due, paid, &now, now); got != "completed" {
		t.Fatalf("state after full payment = %s, want completed", got)
	}
}
