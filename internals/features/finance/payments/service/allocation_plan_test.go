// file: internals/features/finance/payments/service/allocation_plan_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func planTotals(p AllocationPlan) (fresh, credit int64) {
	for _, a := range p.Allocations {
		fresh += a.FreshIDR
		credit += a.CreditIDR
	}
	return
}

func TestBuildAllocationPlanOldestFirst(t *testing.T) {
	early := uuid.New()
	late := uuid.New()
	undated := uuid.New()

	obligations := []Obligation{
		{FeeTemplateID: undated, DueDate: nil, DueAmountIDR: 1000, PaidAmountIDR: 0},
		{FeeTemplateID: late, DueDate: dayPtr(2026, 9, 1), DueAmountIDR: 1000, PaidAmountIDR: 0},
		{FeeTemplateID: early, DueDate: dayPtr(2026, 8, 1), DueAmountIDR: 1000, PaidAmountIDR: 0},
	}

	plan := BuildAllocationPlan(obligations, 1500, nil)

	if len(plan.Allocations) != 2 {
		t.Fatalf("got %d allocations, want 2", len(plan.Allocations))
	}
	if plan.Allocations[0].FeeTemplateID != early || plan.Allocations[0].FreshIDR != 1000 {
		t.Fatalf("earliest due not funded first: %+v", plan.Allocations[0])
	}
	if plan.Allocations[1].FeeTemplateID != late || plan.Allocations[1].FreshIDR != 500 {
		t.Fatalf("second-due not partially funded: %+v", plan.Allocations[1])
	}
	if plan.LeftoverIDR != 0 {
		t.Fatalf("leftover = %d, want 0", plan.LeftoverIDR)
	}
}

func TestBuildAllocationPlanNilDueDatesLast(t *testing.T) {
	dated := uuid.New()
	undated := uuid.New()

	plan := BuildAllocationPlan([]Obligation{
		{FeeTemplateID: undated, DueDate: nil, DueAmountIDR: 500},
		{FeeTemplateID: dated, DueDate: dayPtr(2026, 8, 1), DueAmountIDR: 500},
	}, 600, nil)

	if plan.Allocations[0].FeeTemplateID != dated {
		t.Fatal("dated obligation should be funded before the undated one")
	}
	if plan.Allocations[1].FeeTemplateID != undated || plan.Allocations[1].FreshIDR != 100 {
		t.Fatalf("undated obligation funding wrong: %+v", plan.Allocations[1])
	}
}

func TestBuildAllocationPlanDeterministicTieBreak(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	due := dayPtr(2026, 8, 1)

	for i := 0; i < 10; i++ {
		plan := BuildAllocationPlan([]Obligation{
			{FeeTemplateID: b, DueDate: due, DueAmountIDR: 100},
			{FeeTemplateID: a, DueDate: due, DueAmountIDR: 100},
		}, 100, nil)
		if plan.Allocations[0].FeeTemplateID != a {
			t.Fatal("tie on due date must break by template id")
		}
	}
}

func TestBuildAllocationPlanConservation(t *testing.T) {
	obligations := []Obligation{
		{FeeTemplateID: uuid.New(), DueDate: dayPtr(2026, 8, 1), DueAmountIDR: 700},
		{FeeTemplateID: uuid.New(), DueDate: dayPtr(2026, 9, 1), DueAmountIDR: 300},
	}

	for _, amount := range []int64{100, 700, 1000, 2500} {
		plan := BuildAllocationPlan(obligations, amount, nil)
		fresh, _ := planTotals(plan)
		if fresh+plan.LeftoverIDR != amount {
			t.Fatalf("amount %d: fresh %d + leftover %d != amount", amount, fresh, plan.LeftoverIDR)
		}
	}
}

func TestBuildAllocationPlanOverpaymentLeftover(t *testing.T) {
	plan := BuildAllocationPlan([]Obligation{
		{FeeTemplateID: uuid.New(), DueDate: dayPtr(2026, 8, 1), DueAmountIDR: 700},
	}, 1000, nil)

	fresh, _ := planTotals(plan)
	if fresh != 700 {
		t.Fatalf("fresh applied = %d, want 700", fresh)
	}
	if plan.LeftoverIDR != 300 {
		t.Fatalf("leftover = %d, want 300", plan.LeftoverIDR)
	}
}

func TestBuildAllocationPlanCreditDraw(t *testing.T) {
	tpl := uuid.New()
	unit := uuid.New()

	// 50 fresh against a 200 balance, 100 credit available: the
	// shortfall takes all the credit and 50 stays unpaid.
	plan := BuildAllocationPlan(
		[]Obligation{{FeeTemplateID: tpl, DueDate: dayPtr(2026, 8, 1), DueAmountIDR: 200}},
		50,
		[]CreditUnit{{ExcessFeeID: unit, AvailableIDR: 100}},
	)

	if len(plan.Allocations) != 1 {
		t.Fatalf("got %d allocations, want 1", len(plan.Allocations))
	}
	a := plan.Allocations[0]
	if a.FreshIDR != 50 || a.CreditIDR != 100 {
		t.Fatalf("fresh=%d credit=%d, want 50/100", a.FreshIDR, a.CreditIDR)
	}
	if len(a.Draws) != 1 || a.Draws[0].ExcessFeeID != unit || a.Draws[0].AmountIDR != 100 {
		t.Fatalf("draws wrong: %+v", a.Draws)
	}
	if plan.CreditConsumedIDR != 100 {
		t.Fatalf("credit consumed = %d, want 100", plan.CreditConsumedIDR)
	}
	if plan.LeftoverIDR != 0 {
		t.Fatalf("leftover = %d, want 0", plan.LeftoverIDR)
	}
}

func TestBuildAllocationPlanCreditFIFOAcrossUnits(t *testing.T) {
	tpl := uuid.New()
	first := uuid.New()
	second := uuid.New()

	plan := BuildAllocationPlan(
		[]Obligation{{FeeTemplateID: tpl, DueDate: dayPtr(2026, 8, 1), DueAmountIDR: 130}},
		0,
		[]CreditUnit{
			{ExcessFeeID: first, AvailableIDR: 100},
			{ExcessFeeID: second, AvailableIDR: 100},
		},
	)

	a := plan.Allocations[0]
	if len(a.Draws) != 2 {
		t.Fatalf("got %d draws, want 2", len(a.Draws))
	}
	if a.Draws[0].ExcessFeeID != first || a.Draws[0].AmountIDR != 100 {
		t.Fatalf("first draw wrong: %+v", a.Draws[0])
	}
	if a.Draws[1].ExcessFeeID != second || a.Draws[1].AmountIDR != 30 {
		t.Fatalf("second draw wrong: %+v", a.Draws[1])
	}
}

func TestBuildAllocationPlanSkipsSettledObligations(t *testing.T) {
	settled := uuid.New()
	open := uuid.New()

	plan := BuildAllocationPlan([]Obligation{
		{FeeTemplateID: settled, DueDate: dayPtr(2026, 7, 1), DueAmountIDR: 500, PaidAmountIDR: 500},
		{FeeTemplateID: open, DueDate: dayPtr(2026, 8, 1), DueAmountIDR: 500, PaidAmountIDR: 200},
	}, 400, nil)

	if len(plan.Allocations) != 1 || plan.Allocations[0].FeeTemplateID != open {
		t.Fatalf("settled obligation must be skipped: %+v", plan.Allocations)
	}
	if plan.Allocations[0].FreshIDR != 300 || plan.LeftoverIDR != 100 {
		t.Fatalf("open balance funding wrong: %+v leftover=%d", plan.Allocations[0], plan.LeftoverIDR)
	}
}

func TestBuildAllocationPlanNoObligations(t *testing.T) {
	plan := BuildAllocationPlan(nil, 1000, nil)
	if len(plan.Allocations) != 0 {
		t.Fatal("no obligations must produce no allocations")
	}
	if plan.LeftoverIDR != 1000 {
		t.Fatalf("leftover = %d, want the full amount", plan.LeftoverIDR)
	}
}
