package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/subhashree8125/rental-platform/internal/middleware"
	"github.com/subhashree8125/rental-platform/internal/service"
	"github.com/subhashree8125/rental-platform/internal/session"
	"github.com/subhashree8125/rental-platform/pkg/logger"
	"github.com/subhashree8125/rental-platform/prometheus"
)

// ProfileHandler exposes self-service account management for the session
// user.
type ProfileHandler struct {
	profiles   *service.ProfileService
	sessions   *session.Store
	cookieName string
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService, sessions *session.Store, cookieName string) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, sessions: sessions, cookieName: cookieName}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return fail(c, service.ErrUnauthorized)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.profiles.Get(identity.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// Update handles PUT /api/profile. Email is immutable; absent fields stay
// unchanged.
func (h *ProfileHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return fail(c, service.ErrUnauthorized)
	}

	var in service.ProfileUpdate
	if err := c.Bind(&in); err != nil {
		log.Error("Failed to parse profile update", zap.Error(err))
		return fail(c, service.ErrValidation)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	user, err := h.profiles.Update(identity.UserID, in)
	if err != nil {
		return fail(c, err)
	}

	log.Info("Profile updated", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// Delete handles DELETE /api/profile. The account and every listing it owns
// are removed and all of the user's sessions are invalidated.
func (h *ProfileHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return fail(c, service.ErrUnauthorized)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.profiles.Delete(identity.UserID); err != nil {
		return fail(c, err)
	}

	h.sessions.DeleteUser(identity.UserID)
	prometheus.ActiveSessionsGauge.Set(float64(h.sessions.Len()))
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("Account deleted", zap.Uint("user_id", identity.UserID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Account deleted"})
}
