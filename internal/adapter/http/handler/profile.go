package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/saferide-app/saferide-go/internal/adapter/http/handler/dto"
	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/uuid"
	"github.com/saferide-app/saferide-go/pkg/validator"
)

// defaultBindingTTL applies when the client does not say when the
// subscription expires.
const defaultBindingTTL = 365 * 24 * time.Hour

type ProfileService interface {
	Settings(ctx context.Context, userID uuid.UUID) (*models.AlertSettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, contacts []string, alertDistanceKm float64) (*models.AlertSettings, error)
	UpdateLocation(ctx context.Context, userID uuid.UUID, latitude, longitude float64) (*models.UserLocation, error)
	BindDevice(ctx context.Context, binding *models.DeviceBinding) error
	CheckDevice(ctx context.Context, userID uuid.UUID, deviceID string) (*models.DeviceBinding, error)
}

type Profile struct {
	service ProfileService
	l       logger.Logger
}

func NewProfile(service ProfileService, l logger.Logger) *Profile {
	return &Profile{
		service: service,
		l:       l,
	}
}

func (h *Profile) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_alert_settings")
	user := models.UserFromContext(ctx)

	settings, err := h.service.Settings(ctx, user.ID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to get alert settings", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"settings": settings,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Profile) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_alert_settings")
	user := models.UserFromContext(ctx)

	var req dto.UpdateSettingsRequest
	if err := readJSON(w, r, &req); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to read request JSON data", err)
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		h.l.Warn(ctx, "invalid request data")
		failedValidationResponse(w, v.Errors)
		return
	}

	settings, err := h.service.UpdateSettings(ctx, user.ID, req.EmergencyContacts, *req.AlertDistanceKm)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update alert settings", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"settings": settings,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Profile) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_location")
	user := models.UserFromContext(ctx)

	var req dto.UpdateLocationRequest
	if err := readJSON(w, r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	location, err := h.service.UpdateLocation(ctx, user.ID, *req.Latitude, *req.Longitude)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update location", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"location": location,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Profile) BindDevice(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "bind_device")
	user := models.UserFromContext(ctx)

	var req dto.BindDeviceRequest
	if err := readJSON(w, r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	expiresAt := time.Now().Add(defaultBindingTTL)
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	binding := &models.DeviceBinding{
		UserID:           user.ID,
		DeviceID:         req.DeviceID,
		DeviceName:       req.DeviceName,
		DeviceBrand:      req.DeviceBrand,
		SubscriptionType: req.SubscriptionType,
		ExpiresAt:        expiresAt,
	}

	if err := h.service.BindDevice(ctx, binding); err != nil {
		h.l.Warn(ctx, "device binding rejected", "reason", err.Error())
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"binding": binding,
		"message": "Device bound",
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Profile) CheckDevice(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "check_device")
	user := models.UserFromContext(ctx)

	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		errorResponse(w, http.StatusBadRequest, "query parameter \"device_id\" must be provided")
		return
	}

	binding, err := h.service.CheckDevice(ctx, user.ID, deviceID)
	if err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"binding": binding,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}
