package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/direct-chat/internal/auth"
	"github.com/iliyamo/direct-chat/internal/repository"
)

// CookieName is the cookie the auth handlers set on signup/login. The
// gate accepts the session token from either this cookie or an
// Authorization bearer header; which carrier the client uses is its own
// choice, the token value is what matters.
const CookieName = "jwt"

// Protect returns an Echo middleware implementing the authorization gate
// for protected routes: extract the session token, verify it against the
// signing secret, load the subject user from the database, and attach the
// user to the request context for handlers to consume via CurrentUser.
// Each failure mode is rejected with 401 and a reason the client can act
// on (re-login for expired tokens, for instance).
func Protect(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)

			uid, err := auth.Verify(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": rejectReason(err)})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			u, err := users.GetByID(ctx, uid)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					// Token is valid but the subject no longer exists.
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
			}

			c.Set(userContextKey, &u)
			return next(c)
		}
	}
}

// extractToken pulls the raw token from the request. The Authorization
// bearer header wins when both carriers are present.
func extractToken(c echo.Context) string {
	if h := c.Request().Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if ck, err := c.Cookie(CookieName); err == nil {
		return ck.Value
	}
	return ""
}

// rejectReason maps a verification error to the message returned to the
// client. Internal error values never leak past this point.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenMissing):
		return "missing token"
	case errors.Is(err, auth.ErrTokenExpired):
		return "token expired"
	default:
		return "invalid token"
	}
}
