// file: internals/features/finance/exceptions/service/exception_service_test.go
package service

import (
	"testing"
	"time"

	excModel "sekolahku_backend/internals/features/finance/exceptions/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name   string
		aStart time.Time
		aEnd   *time.Time
		bStart time.Time
		bEnd   *time.Time
		want   bool
	}{
		{
			name:   "disjoint, a before b",
			aStart: date(2026, 1, 1), aEnd: datePtr(2026, 3, 31),
			bStart: date(2026, 4, 1), bEnd: datePtr(2026, 6, 30),
			want: false,
		},
		{
			name:   "touching on the boundary day counts as overlap",
			aStart: date(2026, 1, 1), aEnd: datePtr(2026, 3, 31),
			bStart: date(2026, 3, 31), bEnd: datePtr(2026, 6, 30),
			want: true,
		},
		{
			name:   "contained interval",
			aStart: date(2026, 1, 1), aEnd: datePtr(2026, 12, 31),
			bStart: date(2026, 3, 1), bEnd: datePtr(2026, 3, 31),
			want: true,
		},
		{
			name:   "open-ended existing catches any later start",
			aStart: date(2026, 1, 1), aEnd: nil,
			bStart: date(2027, 5, 1), bEnd: datePtr(2027, 6, 30),
			want: true,
		},
		{
			name:   "open-ended new reaches back over existing",
			aStart: date(2026, 1, 1), aEnd: datePtr(2026, 1, 31),
			bStart: date(2025, 12, 1), bEnd: nil,
			want: true,
		},
		{
			name:   "half-year grant blocks a second one starting inside it",
			aStart: date(2024, 1, 1), aEnd: datePtr(2024, 6, 30),
			bStart: date(2024, 5, 1), bEnd: datePtr(2024, 12, 31),
			want: true,
		},
		{
			name:   "open-ended follow-up after the grant ends is allowed",
			aStart: date(2024, 1, 1), aEnd: datePtr(2024, 6, 30),
			bStart: date(2024, 7, 1), bEnd: nil,
			want: false,
		},
		{
			name:   "both open-ended always overlap",
			aStart: date(2026, 1, 1), aEnd: nil,
			bStart: date(2030, 1, 1), bEnd: nil,
			want: true,
		},
		{
			name:   "open-ended new starting after a closed interval ends",
			aStart: date(2026, 1, 1), aEnd: datePtr(2026, 1, 31),
			bStart: date(2026, 2, 1), bEnd: nil,
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("overlaps() = %v, want %v", got, tc.want)
			}
			// symmetry
			if got := overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Fatalf("overlaps() not symmetric for %q", tc.name)
			}
		})
	}
}

func TestExemptionAmountIDR(t *testing.T) {
	pct := func(p float64) *excModel.FeeExceptionModel {
		return &excModel.FeeExceptionModel{
			FeeExceptionAmountType: excModel.FeeExceptionAmountPercentage,
			FeeExceptionPercentage: &p,
		}
	}
	fixed := func(v int64) *excModel.FeeExceptionModel {
		return &excModel.FeeExceptionModel{
			FeeExceptionAmountType: excModel.FeeExceptionAmountFixed,
			FeeExceptionAmountIDR:  &v,
		}
	}

	cases := []struct {
		name string
		exc  *excModel.FeeExceptionModel
		base int64
		want int64
	}{
		{"nil exception", nil, 500000, 0},
		{"twenty percent of 500", pct(20), 500, 100},
		{"twenty percent of 500000", pct(20), 500000, 100000},
		{"ten percent of 6000000", pct(10), 6000000, 600000},
		{"rounding half up", pct(33.335), 1000, 333}, // 333.35 rounds to 333
		{"full waiver", pct(100), 750000, 750000},
		{"fixed below base", fixed(150000), 500000, 150000},
		{"fixed capped at base", fixed(900000), 500000, 500000},
		{"fixed on zero base", fixed(100000), 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExemptionAmountIDR(tc.exc, tc.base); got != tc.want {
				t.Fatalf("ExemptionAmountIDR() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAdjustedAmountOwedIDR(t *testing.T) {
	p := 10.0
	exc := &excModel.FeeExceptionModel{
		FeeExceptionAmountType: excModel.FeeExceptionAmountPercentage,
		FeeExceptionPercentage: &p,
	}
	if got := AdjustedAmountOwedIDR(exc, 6000000); got != 5400000 {
		t.Fatalf("AdjustedAmountOwedIDR() = %d, want 5400000", got)
	}
	if got := AdjustedAmountOwedIDR(nil, 6000000); got != 6000000 {
		t.Fatalf("AdjustedAmountOwedIDR(nil) = %d, want 6000000", got)
	}
}

func TestValidateAmountShape(t *testing.T) {
	neg := int64(-5)
	over := 120.0
	ok := int64(1000)

	if err := validateAmountShape(&excModel.FeeExceptionModel{
		FeeExceptionAmountType: excModel.FeeExceptionAmountFixed,
		FeeExceptionAmountIDR:  &ok,
	}); err != nil {
		t.Fatalf("valid fixed shape rejected: %v", err)
	}
	if err := validateAmountShape(&excModel.FeeExceptionModel{
		FeeExceptionAmountType: excModel.FeeExceptionAmountFixed,
		FeeExceptionAmountIDR:  &neg,
	}); err == nil {
		t.Fatal("negative fixed amount accepted")
	}
	if err := validateAmountShape(&excModel.FeeExceptionModel{
		FeeExceptionAmountType: excModel.FeeExceptionAmountPercentage,
		FeeExceptionPercentage: &over,
	}); err == nil {
		t.Fatal("percentage over 100 accepted")
	}
	if err := validateAmountShape(&excModel.FeeExceptionModel{
		FeeExceptionAmountType: excModel.FeeExceptionAmountPercentage,
	}); err == nil {
		t.Fatal("percentage type without a value accepted")
	}
	if err := validateAmountShape(&excModel.FeeExceptionModel{
		FeeExceptionAmountType: "bogus",
	}); err == nil {
		t.Fatal("unknown amount type accepted")
	}
}
