package middleware

// identity.go defines helpers shared across middleware files and handlers
// for reading the authenticated identity that Protect stored in the Echo
// context. Handlers always receive the identity through these helpers and
// never re-derive it from the token themselves.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/direct-chat/internal/model"
)

// userContextKey is where Protect stores the loaded *model.User.
const userContextKey = "user"

// CurrentUser returns the authenticated user attached to the request by
// the Protect middleware. The second return is false on unauthenticated
// routes or when the middleware did not run.
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(userContextKey).(*model.User)
	return u, ok
}

// callerKey returns a stable string identifier for the caller, used to
// scope rate-limit buckets and cache entries. Unauthenticated requests
// share the "anon" key (the rate limiter mixes in the client IP).
func callerKey(c echo.Context) string {
	if u, ok := CurrentUser(c); ok {
		return strconv.FormatUint(u.ID, 10)
	}
	return "anon"
}
