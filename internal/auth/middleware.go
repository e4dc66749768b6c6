package auth

import (
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "finmov/internal/errors"
	"finmov/internal/model"
)

const (
	// AccessTokenCookie names the cookie that carries the access token for
	// browser page navigation. API clients use the Authorization header.
	AccessTokenCookie = "access_token"

	sessionContextKey = "session"
)

// LoadSession resolves the Session from the JWT the echo-jwt middleware
// parsed (if any) and stores it on the request context. echo-jwt hands over
// a golang-jwt/v5 token with map claims. Blacklisted tokens resolve to no
// session. The middleware never denies by itself; denial is the gate's job.
func LoadSession(store TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwtv5.Token)
			if !ok {
				return next(c)
			}
			claims, ok := token.Claims.(jwtv5.MapClaims)
			if !ok {
				return next(c)
			}
			jti, _ := claims["jti"].(string)
			if blacklisted, _ := store.IsAccessTokenBlacklisted(c.Request().Context(), jti); blacklisted {
				return next(c)
			}
			if sess := sessionFromMapClaims(claims); sess != nil {
				c.Set(sessionContextKey, sess)
			}
			return next(c)
		}
	}
}

func sessionFromMapClaims(claims jwtv5.MapClaims) *Session {
	rawID, _ := claims["user_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return &Session{UserID: id, Name: name, Email: email, Role: model.Role(role)}
}

// SessionFromContext returns the Session loaded for this request, or nil.
func SessionFromContext(c echo.Context) *Session {
	if sess, ok := c.Get(sessionContextKey).(*Session); ok {
		return sess
	}
	return nil
}

// SessionFromCookie resolves a Session from the access-token cookie. Page
// routes use this path; they are reached by plain browser navigation, which
// carries no Authorization header.
func SessionFromCookie(c echo.Context, jwts *JWTService, store TokenStoreInterface) *Session {
	cookie, err := c.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := jwts.ValidateToken(cookie.Value)
	if err != nil {
		return nil
	}
	if blacklisted, _ := store.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID); blacklisted {
		return nil
	}
	sess, err := claims.Session()
	if err != nil {
		return nil
	}
	return sess
}

// RequireRoles gates an API route group on the allowed role set. A missing
// session on a route open to USER yields 401; on an admin-only route it
// yields the same 403 body as an under-privileged session, matching the
// public API contract.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	userAllowed := false
	for _, r := range roles {
		if r == model.RoleUser {
			userAllowed = true
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := Authorize(SessionFromContext(c), roles...); err != nil {
				if err == apperrors.ErrUnauthenticated && userAllowed {
					return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
						Error: apperrors.ErrUnauthenticated.Error(),
						Code:  "UNAUTHENTICATED",
					})
				}
				return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{
					Error: apperrors.ErrForbidden.Error(),
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}
