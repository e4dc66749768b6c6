package auth

import (
	"github.com/google/uuid"

	"finmov/internal/errors"
	"finmov/internal/model"
)

// Session is the server-recognized proof of an authenticated identity plus
// its role. It is resolved from a validated access token on every protected
// request; this package only reads it.
type Session struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   model.Role
}

// Authorize is the single authorization decision point shared by every
// protected page and endpoint. A nil session denies with ErrUnauthenticated;
// a session whose role is not in allowed denies with ErrForbidden. The check
// is exact set membership on the role label: ADMIN is not implicitly a
// superset of USER, so callers wanting both roles must list both. On allow
// the session is returned unchanged.
func Authorize(sess *Session, allowed ...model.Role) (*Session, error) {
	if sess == nil {
		return nil, errors.ErrUnauthenticated
	}
	for _, role := range allowed {
		if sess.Role == role {
			return sess, nil
		}
	}
	return nil, errors.ErrForbidden
}
