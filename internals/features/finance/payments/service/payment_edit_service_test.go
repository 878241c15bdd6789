// file: internals/features/finance/payments/service/payment_edit_service_test.go
package service

import (
	"testing"

	"github.com/google/uuid"

	payModel "sekolahku_backend/internals/features/finance/payments/model"
)

func TestDiffAllocations(t *testing.T) {
	kept := uuid.New()
	changed := uuid.New()
	dropped := uuid.New()
	added := uuid.New()

	existing := []payModel.FeeAllocationModel{
		{FeeAllocationFeeTemplateID: kept, FeeAllocationAmountIDR: 100},
		{FeeAllocationFeeTemplateID: changed, FeeAllocationAmountIDR: 200},
		{FeeAllocationFeeTemplateID: dropped, FeeAllocationAmountIDR: 300},
	}
	desired := []EditAllocation{
		{FeeTemplateID: kept, AmountIDR: 100},
		{FeeTemplateID: changed, AmountIDR: 250},
		{FeeTemplateID: added, AmountIDR: 50},
	}

	diff := DiffAllocations(existing, desired)

	if len(diff.Create) != 1 || diff.Create[0].FeeTemplateID != added || diff.Create[0].AmountIDR != 50 {
		t.Fatalf("create bucket wrong: %+v", diff.Create)
	}
	if len(diff.Update) != 1 || diff.Update[0].FeeTemplateID != changed || diff.Update[0].AmountIDR != 250 {
		t.Fatalf("update bucket wrong: %+v", diff.Update)
	}
	if len(diff.Delete) != 1 || diff.Delete[0] != dropped {
		t.Fatalf("delete bucket wrong: %+v", diff.Delete)
	}
}

func TestDiffAllocationsNoChanges(t *testing.T) {
	tpl := uuid.New()
	diff := DiffAllocations(
		[]payModel.FeeAllocationModel{{FeeAllocationFeeTemplateID: tpl, FeeAllocationAmountIDR: 100}},
		[]EditAllocation{{FeeTemplateID: tpl, AmountIDR: 100}},
	)
	if len(diff.Create)+len(diff.Update)+len(diff.Delete) != 0 {
		t.Fatalf("identical sets must diff empty: %+v", diff)
	}
}

func TestDiffAllocationsEmptyDesiredDeletesAll(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	diff := DiffAllocations([]payModel.FeeAllocationModel{
		{FeeAllocationFeeTemplateID: a, FeeAllocationAmountIDR: 100},
		{FeeAllocationFeeTemplateID: b, FeeAllocationAmountIDR: 200},
	}, nil)
	if len(diff.Delete) != 2 {
		t.Fatalf("got %d deletes, want 2", len(diff.Delete))
	}
}

func TestEditOvershootMintIDR(t *testing.T) {
	cases := []struct {
		name        string
		due         int64
		fundedAfter int64
		oldShare    int64
		newShare    int64
		want        int64
	}{
		// Original allocation funded 700 exactly; the edit raises this
		// payment's share to 1000, pushing the obligation 300 over.
		{"first overshooting edit mints the growth", 700, 1000, 700, 1000, 300},
		// Replaying the identical edit: shares match, nothing to mint.
		{"identical replay mints nothing", 700, 1000, 1000, 1000, 0},
		{"third identical replay still mints nothing", 700, 1000, 1000, 1000, 0},
		// The edit lowers the share; the earlier mint is not clawed
		// back, but no new credit appears either.
		{"shrinking overshoot mints nothing", 700, 800, 1000, 800, 0},
		{"no overshoot at all", 700, 500, 300, 500, 0},
		{"edit exactly reaching due mints nothing", 700, 700, 500, 700, 0},
		// Another payment already overshot; this edit adds 100 more.
		{"growth on top of an existing overshoot", 700, 1100, 300, 400, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := editOvershootMintIDR(tc.due, tc.fundedAfter, tc.oldShare, tc.newShare)
			if got != tc.want {
				t.Fatalf("editOvershootMintIDR() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDeletedCreditIDRRefundsRemovedCredit(t *testing.T) {
	creditFunded := uuid.New()
	freshOnly := uuid.New()
	kept := uuid.New()

	existing := []payModel.FeeAllocationModel{
		{FeeAllocationFeeTemplateID: creditFunded, FeeAllocationAmountIDR: 100, FeeAllocationCreditIDR: 400},
		{FeeAllocationFeeTemplateID: freshOnly, FeeAllocationAmountIDR: 250},
		{FeeAllocationFeeTemplateID: kept, FeeAllocationAmountIDR: 50, FeeAllocationCreditIDR: 75},
	}
	diff := DiffAllocations(existing, []EditAllocation{{FeeTemplateID: kept, AmountIDR: 50}})

	refunds := deletedCreditIDR(existing, diff.Delete)

	if got := refunds[creditFunded]; got != 400 {
		t.Fatalf("credit-funded row refund = %d, want 400", got)
	}
	if _, ok := refunds[freshOnly]; ok {
		t.Fatal("fresh-only deletion must not produce a refund entry")
	}
	if _, ok := refunds[kept]; ok {
		t.Fatal("surviving row must not be refunded")
	}
}
