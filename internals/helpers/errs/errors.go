// file: internals/helpers/errs/errors.go
package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* =======================================================
   SERVICE ERROR TAXONOMY
   Semua service mengembalikan *Error; controller tinggal
   map ke status HTTP lewat HTTPStatus().
======================================================= */

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindReference
	KindUnauthenticated
	KindInvariant
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindConflict:
		return "CONFLICT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindReference:
		return "REFERENCE_ERROR"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindInvariant:
		return "INVARIANT_VIOLATION"
	}
	return "ERROR"
}

type Error struct {
	Kind  Kind
	Msg   string
	Field string // set for validation errors when one field is at fault
	Err   error  // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Msg: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

func Reference(msg string) *Error { return &Error{Kind: KindReference, Msg: msg} }

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Msg: msg}
}

func Invariant(msg string) *Error { return &Error{Kind: KindInvariant, Msg: msg} }

// KindOf returns the taxonomy kind, or 0 for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func Is(err error, k Kind) bool { return KindOf(err) == k }

/* =======================================================
   STORAGE ERROR MAPPING
   gorm/pq errors → taxonomy. Postgres SQLSTATE:
   23505 unique_violation, 23503 foreign_key_violation,
   40001 serialization_failure (caller should retry).
======================================================= */

func FromDB(err error, what string) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(what + " not found")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return &Error{Kind: KindConflict, Msg: what + " already exists", Err: err}
		case "23503":
			return &Error{Kind: KindReference, Msg: what + " references a missing row", Err: err}
		case "40001":
			return &Error{Kind: KindConflict, Msg: "serialization conflict, retry the operation", Err: err}
		}
	}
	return &Error{Kind: KindInvariant, Msg: "storage failure on " + what, Err: err}
}

// HTTPStatus maps a service error onto the HTTP status the JSON
// helpers expect. Unknown errors are 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindConflict:
		return fiber.StatusConflict
	case KindNotFound:
		return fiber.StatusNotFound
	case KindReference:
		return fiber.StatusUnprocessableEntity
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	case KindInvariant:
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}
