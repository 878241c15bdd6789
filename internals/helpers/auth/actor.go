// file: internals/helpers/auth/actor.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/helpers/errs"
)

// Locals keys hydrated by the JWT middleware.
const (
	LocUserID = "user_id"
	LocRole   = "role"
)

// ActorID returns the acting user id for the current request.
// Every mutating service call requires it; a missing or malformed id
// blocks the mutation with an UNAUTHENTICATED error.
func ActorID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, errs.Unauthenticated("missing user context")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, errs.Unauthenticated("missing user context")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, errs.Unauthenticated("missing user context")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, errs.Unauthenticated("user id in token is not a valid uuid")
		}
		return id, nil
	default:
		return uuid.Nil, errs.Unauthenticated("user id in token is not a valid uuid")
	}
}
