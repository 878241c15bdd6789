// file: internals/features/finance/payments/service/allocation_plan.go
package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

/* ===========================================================
   ALLOCATION PLANNER (pure)
   Given open obligations, fresh money and available credit,
   decide who gets funded. No DB access here so the ordering
   and conservation rules are testable in isolation.
=========================================================== */

// Obligation is one outstanding fee line for the student, already
// exception-adjusted. BalanceIDR = due - paid, always > 0 on input.
type Obligation struct {
	FeeTemplateID uuid.UUID
	FeeTypeID     uuid.UUID
	DueDate       *time.Time
	DueAmountIDR  int64
	PaidAmountIDR int64
}

func (o Obligation) BalanceIDR() int64 { return o.DueAmountIDR - o.PaidAmountIDR }

// CreditUnit mirrors one excess_fees row the planner may draw from.
type CreditUnit struct {
	ExcessFeeID  uuid.UUID
	AvailableIDR int64
}

// PlannedAllocation is the funding decision for one obligation.
// FreshIDR comes out of the payment amount, CreditIDR out of the
// student's credit units (itemized in Draws).
type PlannedAllocation struct {
	FeeTemplateID uuid.UUID
	FreshIDR      int64
	CreditIDR     int64
	Draws         []PlannedDraw
}

type PlannedDraw struct {
	ExcessFeeID uuid.UUID
	AmountIDR   int64
}

// AllocationPlan is the full outcome of one planning run.
//   - sum(FreshIDR) + LeftoverIDR == payment amount
//   - sum over Draws == sum(CreditIDR) == credit consumed
type AllocationPlan struct {
	Allocations []PlannedAllocation
	// LeftoverIDR is fresh money with nothing left to fund; it is
	// minted as a new credit unit by the caller.
	LeftoverIDR int64
	// CreditConsumedIDR is the total drawn from existing credit.
	CreditConsumedIDR int64
}

// BuildAllocationPlan funds obligations oldest-due-first (nil due date
// last, ties broken by template id for determinism). Fresh money is
// spent before credit; credit units drain FIFO in the order given.
func BuildAllocationPlan(obligations []Obligation, amountIDR int64, credits []CreditUnit) AllocationPlan {
	ordered := make([]Obligation, 0, len(obligations))
	for _, o := range obligations {
		if o.BalanceIDR() > 0 {
			ordered = append(ordered, o)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].DueDate, ordered[j].DueDate
		switch {
		case a == nil && b == nil:
			return ordered[i].FeeTemplateID.String() < ordered[j].FeeTemplateID.String()
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return ordered[i].FeeTemplateID.String() < ordered[j].FeeTemplateID.String()
		default:
			return a.Before(*b)
		}
	})

	pool := make([]CreditUnit, len(credits))
	copy(pool, credits)

	plan := AllocationPlan{}
	fresh := amountIDR

	for _, o := range ordered {
		need := o.BalanceIDR()
		alloc := PlannedAllocation{FeeTemplateID: o.FeeTemplateID}

		if fresh > 0 {
			take := min64(fresh, need)
			alloc.FreshIDR = take
			fresh -= take
			need -= take
		}

		for need > 0 {
			idx := firstNonEmpty(pool)
			if idx < 0 {
				break
			}
			take := min64(pool[idx].AvailableIDR, need)
			pool[idx].AvailableIDR -= take
			need -= take
			alloc.CreditIDR += take
			alloc.Draws = append(alloc.Draws, PlannedDraw{
				ExcessFeeID: pool[idx].ExcessFeeID,
				AmountIDR:   take,
			})
			plan.CreditConsumedIDR += take
		}

		if alloc.FreshIDR > 0 || alloc.CreditIDR > 0 {
			plan.Allocations = append(plan.Allocations, alloc)
		}
	}

	plan.LeftoverIDR = fresh
	return plan
}

func firstNonEmpty(pool []CreditUnit) int {
	for i := range pool {
		if pool[i].AvailableIDR > 0 {
			return i
		}
	}
	return -1
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
