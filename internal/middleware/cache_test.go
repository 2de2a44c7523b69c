package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/direct-chat/internal/config"
	"github.com/iliyamo/direct-chat/internal/model"
)

func cacheCtx(u *model.User) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/messages/users", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/messages/users")
	if u != nil {
		c.Set(userContextKey, u)
	}
	return c
}

func TestCacheKey_RouteUser_ScopedPerCaller(t *testing.T) {
	cfg := config.CacheConfig{KeyStrategy: "route_user", Prefix: "cache"}

	alice := cacheKeyFrom(cfg, cacheCtx(&model.User{ID: 1}))
	bob := cacheKeyFrom(cfg, cacheCtx(&model.User{ID: 2}))
	anon := cacheKeyFrom(cfg, cacheCtx(nil))

	// One user's cached sidebar must never be served to another.
	if alice == bob {
		t.Fatalf("different users share a cache key: %q", alice)
	}
	if alice == anon || bob == anon {
		t.Fatalf("authenticated and anonymous requests share a cache key")
	}
}

func TestCacheKey_RouteUser_StablePerCaller(t *testing.T) {
	cfg := config.CacheConfig{KeyStrategy: "route_user", Prefix: "cache"}

	first := cacheKeyFrom(cfg, cacheCtx(&model.User{ID: 1}))
	second := cacheKeyFrom(cfg, cacheCtx(&model.User{ID: 1}))
	if first != second {
		t.Fatalf("same caller produced different keys: %q vs %q", first, second)
	}
}
