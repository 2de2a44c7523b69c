package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // SQL database interactions
	"errors"
	"net/http" // HTTP status codes and primitives
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls and cookie expiry
	"unicode/utf8" // character counting for password validation

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/direct-chat/internal/auth"       // session token issuing
	"github.com/iliyamo/direct-chat/internal/config"     // app configuration
	"github.com/iliyamo/direct-chat/internal/middleware" // authenticated identity helpers
	"github.com/iliyamo/direct-chat/internal/model"      // domain records
	"github.com/iliyamo/direct-chat/internal/repository" // DB repositories
	"github.com/iliyamo/direct-chat/internal/storage"    // media uploads
	"github.com/iliyamo/direct-chat/internal/utils"      // password hashing helpers
)

const minPasswordLen = 6

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Media storage.Uploader
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, m storage.Uploader) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Media: m}
}

// ----- DTOs -----

type signupReq struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type updateProfileReq struct {
	ProfilePic string `json:"profilePic"`
}

// userPart is the user summary returned to clients. It deliberately has
// no field for the password hash.
type userPart struct {
	ID         uint64    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
}
type authResp struct {
	User  userPart `json:"user"`
	Token string   `json:"token"`
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, ProfilePic: u.ProfilePic, CreatedAt: u.CreatedAt}
}

// setSessionCookie attaches the signed token as an HttpOnly cookie so
// browser clients get the cookie carrier for free. API clients may ignore
// it and send the token back as a bearer header instead.
func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.Cfg.TokenTTLDays * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.Cfg.Env == "prod",
	})
}

// Signup: create the user and return a session immediately.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "all fields are required"})
	}
	// Length is measured in characters, not bytes, so a short multibyte
	// password cannot slip past the minimum.
	if utf8.RuneCountInString(req.Password) < minPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.FullName, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	token, err := auth.Issue(h.Cfg.JWTSecret, uid, h.Cfg.TokenTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	h.setSessionCookie(c, token)

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusCreated, authResp{User: toUserPart(u), Token: token})
}

// Login: verify credentials and return a fresh session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid credentials"})
	}

	token, err := auth.Issue(h.Cfg.JWTSecret, u.ID, h.Cfg.TokenTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	h.setSessionCookie(c, token)

	return c.JSON(http.StatusOK, authResp{User: toUserPart(u), Token: token})
}

// Logout: sessions are stateless, so logging out only clears the cookie.
// A bearer-header client simply discards its copy of the token.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.Cfg.Env == "prod",
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// UpdateProfile: upload the new profile picture to media storage and
// persist the hosted URL on the authenticated user (protected).
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	cu, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.ProfilePic) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "profile picture is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	url, err := h.Media.Upload(ctx, "avatars", req.ProfilePic)
	if err != nil {
		if errors.Is(err, storage.ErrBadImage) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}

	u, err := h.Users.UpdateProfilePic(ctx, cu.ID, url)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// Check: return the authenticated user (protected). The gate already
// loaded the record, so this is a pure read of the request identity.
func (h *AuthHandler) Check(c echo.Context) error {
	cu, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, toUserPart(*cu))
}
