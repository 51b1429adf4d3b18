package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/subhashree8125/rental-platform/internal/service"
	"github.com/subhashree8125/rental-platform/internal/session"
	"github.com/subhashree8125/rental-platform/pkg/config"
	"github.com/subhashree8125/rental-platform/pkg/logger"
	"github.com/subhashree8125/rental-platform/prometheus"
)

// AuthHandler exposes signup, login, logout and the session probe.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Store
	cfg      config.SessionConfig
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *session.Store, cfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, cfg: cfg}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SignupCounter.Inc()

	var req struct {
		FullName     string `json:"full_name"`
		Email        string `json:"email"`
		MobileNumber string `json:"mobile_number"`
		Password     string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse signup request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	userID, err := h.auth.Signup(req.FullName, req.Email, req.MobileNumber, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			log.Warn("Signup with existing email", zap.String("email", req.Email))
			prometheus.RecordAuthError("duplicate_email")
		} else {
			prometheus.RecordAuthError("signup_failed")
		}
		return fail(c, err)
	}

	log.Info("User registered", zap.Uint("user_id", userID), zap.String("email", req.Email))
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Signup successful",
		"user_id": userID,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	identity, err := h.auth.Login(req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrMissingPassword) {
			prometheus.RecordAuthError("missing_password")
		} else {
			prometheus.RecordAuthError("invalid_credentials")
		}
		log.Warn("Login failed", zap.String("identifier", req.Identifier))
		return fail(c, err)
	}

	token := h.sessions.Create(identity)
	h.setSessionCookie(c, token, h.cfg.TTL)
	prometheus.ActiveSessionsGauge.Set(float64(h.sessions.Len()))

	log.Info("User logged in", zap.Uint("user_id", identity.UserID), zap.String("email", identity.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"user":    identity,
	})
}

// Logout handles POST /auth/logout. The session is cleared unconditionally.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cfg.CookieName); err == nil && cookie.Value != "" {
		h.sessions.Delete(cookie.Value)
		prometheus.ActiveSessionsGauge.Set(float64(h.sessions.Len()))
	}
	h.setSessionCookie(c, "", -time.Hour)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logged out"})
}

// Session handles GET /session, the login-state probe for the frontend.
func (h *AuthHandler) Session(c echo.Context) error {
	cookie, err := c.Cookie(h.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"loggedIn": false})
	}
	identity, ok := h.sessions.Get(cookie.Value)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"loggedIn": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"loggedIn": true, "user": identity})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
