// file: internals/helpers/errs/errors_test.go
package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestFromDB(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"wrapped record not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), KindNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, KindConflict},
		{"foreign key violation", &pq.Error{Code: "23503"}, KindReference},
		{"serialization failure", &pq.Error{Code: "40001"}, KindConflict},
		{"anything else", errors.New("connection reset"), KindInvariant},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromDB(tc.err, "thing")
			if got.Kind != tc.want {
				t.Fatalf("FromDB() kind = %v, want %v", got.Kind, tc.want)
			}
		})
	}

	if FromDB(nil, "thing") != nil {
		t.Fatal("FromDB(nil) must be nil")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("f", "bad"), fiber.StatusUnprocessableEntity},
		{Conflict("dup"), fiber.StatusConflict},
		{NotFound("gone"), fiber.StatusNotFound},
		{Reference("dangling"), fiber.StatusUnprocessableEntity},
		{Unauthenticated("who"), fiber.StatusUnauthorized},
		{Invariant("broken"), fiber.StatusInternalServerError},
		{errors.New("foreign"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestKindOfUnwraps(t *testing.T) {
	inner := Conflict("taken")
	wrapped := fmt.Errorf("outer: %w", inner)
	if KindOf(wrapped) != KindConflict {
		t.Fatal("KindOf must see through wrapping")
	}
	if !Is(wrapped, KindConflict) {
		t.Fatal("Is must see through wrapping")
	}
}
