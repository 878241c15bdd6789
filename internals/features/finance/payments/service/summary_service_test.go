// file: internals/features/finance/payments/service/summary_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	payModel "sekolahku_backend/internals/features/finance/payments/model"
)

func TestComputeSummaryLinesMergesByFeeType(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	tuition := uuid.New()
	activity := uuid.New()

	// Two layered tuition templates plus one activity fee.
	inputs := []SummaryInput{
		{FeeTypeID: tuition, FeeTemplateID: uuid.New(), BaseAmountIDR: 5000000, ExemptionIDR: 500000, PaidAmountIDR: 2000000},
		{FeeTypeID: tuition, FeeTemplateID: uuid.New(), BaseAmountIDR: 1000000, ExemptionIDR: 100000, PaidAmountIDR: 0},
		{FeeTypeID: activity, FeeTemplateID: uuid.New(), BaseAmountIDR: 250000, ExemptionIDR: 0, PaidAmountIDR: 250000},
	}

	lines := ComputeSummaryLines(inputs, now)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	byType := map[uuid.UUID]SummaryLine{}
	for _, l := range lines {
		byType[l.FeeTypeID] = l
	}

	tl := byType[tuition]
	if tl.BaseAmountIDR != 6000000 || tl.ExemptionIDR != 600000 {
		t.Fatalf("tuition base/exemption = %d/%d, want 6000000/600000", tl.BaseAmountIDR, tl.ExemptionIDR)
	}
	if tl.DueAmountIDR != 5400000 || tl.PaidAmountIDR != 2000000 || tl.BalanceIDR != 3400000 {
		t.Fatalf("tuition due/paid/balance = %d/%d/%d", tl.DueAmountIDR, tl.PaidAmountIDR, tl.BalanceIDR)
	}
	if tl.State != payModel.FeeStatusPartial {
		t.Fatalf("tuition state = %s, want partial", tl.State)
	}

	al := byType[activity]
	if al.BalanceIDR != 0 || al.State != payModel.FeeStatusCompleted {
		t.Fatalf("activity line should be settled: %+v", al)
	}
}

func TestComputeSummaryLinesOverdue(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	pastDue := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	feeType := uuid.New()

	lines := ComputeSummaryLines([]SummaryInput{
		{FeeTypeID: feeType, FeeTemplateID: uuid.New(), BaseAmountIDR: 1000000, DueDate: &pastDue},
	}, now)

	if lines[0].State != payModel.FeeStatusOverdue {
		t.Fatalf("state = %s, want overdue", lines[0].State)
	}
}

func TestComputeSummaryLinesEarliestDueDateWins(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	early := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	feeType := uuid.New()

	// One layer already past due, the other not: the merged line
	// reports against the earliest deadline.
	lines := ComputeSummaryLines([]SummaryInput{
		{FeeTypeID: feeType, FeeTemplateID: uuid.New(), BaseAmountIDR: 500, DueDate: &late},
		{FeeTypeID: feeType, FeeTemplateID: uuid.New(), BaseAmountIDR: 500, DueDate: &early},
	}, now)

	if lines[0].State != payModel.FeeStatusOverdue {
		t.Fatalf("state = %s, want overdue against earliest due date", lines[0].State)
	}
}

func TestComputeSummaryLinesStableOrder(t *testing.T) {
	now := time.Now()
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")

	lines := ComputeSummaryLines([]SummaryInput{
		{FeeTypeID: b, FeeTemplateID: uuid.New(), BaseAmountIDR: 1},
		{FeeTypeID: a, FeeTemplateID: uuid.New(), BaseAmountIDR: 1},
	}, now)

	if lines[0].FeeTypeID != a || lines[1].FeeTypeID != b {
		t.Fatal("summary lines must sort by fee type id")
	}
}

func TestScopedExtraFeesIDR(t *testing.T) {
	year := uuid.New()
	term := uuid.New()
	otherYear := uuid.New()
	otherTerm := uuid.New()

	units := []payModel.ExcessFeeModel{
		{ExcessFeeAcademicYearID: year, ExcessFeeTermID: term, ExcessFeeAmountIDR: 300},
		{ExcessFeeAcademicYearID: year, ExcessFeeTermID: term, ExcessFeeAmountIDR: 200},
		// Same year, different term: stays out of this period's figure.
		{ExcessFeeAcademicYearID: year, ExcessFeeTermID: otherTerm, ExcessFeeAmountIDR: 1000},
		{ExcessFeeAcademicYearID: otherYear, ExcessFeeTermID: term, ExcessFeeAmountIDR: 1000},
		// Drained unit in scope: already spent, not open credit.
		{ExcessFeeAcademicYearID: year, ExcessFeeTermID: term, ExcessFeeAmountIDR: 400, ExcessFeeIsUsed: true},
	}

	if got := scopedExtraFeesIDR(units, year, term); got != 500 {
		t.Fatalf("scoped extra fees = %d, want 500", got)
	}
	if got := scopedExtraFeesIDR(nil, year, term); got != 0 {
		t.Fatalf("empty unit set must sum to 0, got %d", got)
	}
}
