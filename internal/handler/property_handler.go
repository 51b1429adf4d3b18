package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/subhashree8125/rental-platform/internal/middleware"
	"github.com/subhashree8125/rental-platform/internal/service"
	"github.com/subhashree8125/rental-platform/internal/store"
	"github.com/subhashree8125/rental-platform/pkg/logger"
	"github.com/subhashree8125/rental-platform/prometheus"
)

// PropertyHandler exposes the listing endpoints.
type PropertyHandler struct {
	listings *service.ListingService
}

// NewPropertyHandler creates a PropertyHandler.
func NewPropertyHandler(listings *service.ListingService) *PropertyHandler {
	return &PropertyHandler{listings: listings}
}

// List handles GET /api/properties, the public feed with optional filters.
// The filters arrive as a JSON object in the "filters" query parameter; a
// payload that fails to parse is logged and ignored, leaving the feed
// unfiltered.
func (h *PropertyHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordListingOperation("list")

	var filter store.ListFilter
	if raw := c.QueryParam("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filter); err != nil {
			log.Warn("Ignoring malformed filters payload",
				zap.String("filters", raw),
				zap.Error(err))
			filter = store.ListFilter{}
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	properties, err := h.listings.List(filter)
	if err != nil {
		return fail(c, err)
	}

	log.Info("Properties listed", zap.Int("count", len(properties)))
	return c.JSON(http.StatusOK, properties)
}

// Create handles POST /api/properties: a multipart form with the listing
// fields plus zero or more "images" files.
func (h *PropertyHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordListingOperation("create")

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return fail(c, service.ErrUnauthorized)
	}

	in := service.ListingInput{
		FullName:     c.FormValue("full_name"),
		MobileNumber: c.FormValue("mobile_number"),
		Address:      c.FormValue("address"),
		City:         c.FormValue("city"),
		Area:         c.FormValue("area"),
		District:     c.FormValue("district"),
		PropertyType: c.FormValue("property_type"),
		HouseType:    c.FormValue("house_type"),
		RentPrice:    c.FormValue("rent_price"),
		CarParking:   c.FormValue("car_parking"),
		Pets:         c.FormValue("pets"),
		Facing:       c.FormValue("facing"),
		Furnishing:   c.FormValue("furnishing"),
		Description:  c.FormValue("description"),
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File["images"]
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	property, err := h.listings.Create(identity.UserID, in, files)
	if err != nil {
		log.Warn("Property creation rejected", zap.Error(err))
		return fail(c, err)
	}

	prometheus.RecordImageUploads(len(property.Images))
	log.Info("Property created",
		zap.Uint("property_id", property.ID),
		zap.Uint("owner_id", identity.UserID),
		zap.Int("images", len(property.Images)))
	return c.JSON(http.StatusCreated, echo.Map{
		"success":  true,
		"message":  "Property posted successfully!",
		"property": property,
	})
}

// MyProperties handles GET /api/myproperties: every listing owned by the
// session user, any status.
func (h *PropertyHandler) MyProperties(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return fail(c, service.ErrUnauthorized)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	properties, err := h.listings.ListByOwner(identity.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"properties": properties})
}

// Update handles PUT /api/properties/:id, a partial owner-only update.
func (h *PropertyHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordListingOperation("update")

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return fail(c, service.ErrUnauthorized)
	}
	id, err := propertyID(c)
	if err != nil {
		return fail(c, err)
	}

	var in service.ListingUpdate
	if err := c.Bind(&in); err != nil {
		log.Error("Failed to parse update request", zap.Error(err))
		return fail(c, service.ErrValidation)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	property, err := h.listings.Update(id, identity.UserID, in)
	if err != nil {
		return fail(c, err)
	}

	log.Info("Property updated", zap.Uint("property_id", property.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Property updated successfully",
		"property": property,
	})
}

// UpdateStatus handles PUT /api/properties/:id/status.
func (h *PropertyHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordListingOperation("status")

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return fail(c, service.ErrUnauthorized)
	}
	id, err := propertyID(c)
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse status request", zap.Error(err))
		return fail(c, service.ErrValidation)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	property, err := h.listings.UpdateStatus(id, identity.UserID, req.Status)
	if err != nil {
		return fail(c, err)
	}

	log.Info("Property status updated",
		zap.Uint("property_id", property.ID),
		zap.String("status", property.Status))
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Status updated",
		"property": property,
	})
}

// Delete handles DELETE /api/properties/:id.
func (h *PropertyHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordListingOperation("delete")

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return fail(c, service.ErrUnauthorized)
	}
	id, err := propertyID(c)
	if err != nil {
		return fail(c, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.listings.Delete(id, identity.UserID); err != nil {
		return fail(c, err)
	}

	log.Info("Property deleted", zap.Uint("property_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Property deleted"})
}

// Contact handles GET /api/properties/:id/contact. Any logged-in user may
// request the owner's number.
func (h *PropertyHandler) Contact(c echo.Context) error {
	prometheus.RecordListingOperation("contact")

	if _, ok := middleware.IdentityFromContext(c); !ok {
		return fail(c, service.ErrUnauthorized)
	}
	id, err := propertyID(c)
	if err != nil {
		return fail(c, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	mobile, err := h.listings.GetContact(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "mobile_number": mobile})
}

func propertyID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, service.ErrNotFound
	}
	return uint(id), nil
}
