package handler

import (
	"context"
	"net/http"

	"github.com/saferide-app/saferide-go/internal/adapter/http/handler/dto"
	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/uuid"
	"github.com/saferide-app/saferide-go/pkg/validator"
)

type EmergencyService interface {
	Raise(ctx context.Context, user *models.User, latitude, longitude float64) (*models.Emergency, error)
	Cancel(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	Deactivate(ctx context.Context, userID, emergencyID uuid.UUID) error
	Active(ctx context.Context, userID uuid.UUID) (*models.Emergency, error)
	Nearby(ctx context.Context, userID uuid.UUID, latitude, longitude float64) ([]models.NearbyEmergency, error)
}

type Emergency struct {
	service EmergencyService
	l       logger.Logger
}

func NewEmergency(service EmergencyService, l logger.Logger) *Emergency {
	return &Emergency{
		service: service,
		l:       l,
	}
}

func (h *Emergency) Raise(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "raise_emergency")
	user := models.UserFromContext(ctx)

	var req dto.RaiseEmergencyRequest
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

	emergency, err := h.service.Raise(ctx, user, *req.Latitude, *req.Longitude)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to raise emergency", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"emergency": emergency,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Emergency) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "cancel_emergency")
	user := models.UserFromContext(ctx)

	emergencyID, err := h.service.Cancel(ctx, user.ID)
	if err != nil {
		h.l.Warn(ctx, "cancel rejected", "reason", err.Error())
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"emergency_id": emergencyID,
		"status":       "resolved",
		"message":      "Emergency cancelled",
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Emergency) Deactivate(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "deactivate_emergency")
	user := models.UserFromContext(ctx)

	emergencyID, err := uuid.Parse(r.PathValue("emergency_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid emergency uuid format")
		errorResponse(w, http.StatusBadRequest, "invalid emergency uuid format")
		return
	}

	if err := h.service.Deactivate(ctx, user.ID, emergencyID); err != nil {
		h.l.Warn(ctx, "deactivate rejected", "reason", err.Error())
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"emergency_id": emergencyID,
		"status":       "resolved",
		"message":      "Emergency deactivated",
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Emergency) Active(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_active_emergency")
	user := models.UserFromContext(ctx)

	emergency, err := h.service.Active(ctx, user.ID)
	if err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"emergency": emergency,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Emergency) Nearby(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "nearby_emergencies")
	user := models.UserFromContext(ctx)

	latitude, err := readFloatQuery(r, "latitude")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	longitude, err := readFloatQuery(r, "longitude")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateCoordinate(v, &latitude, &longitude)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	nearby, err := h.service.Nearby(ctx, user.ID, latitude, longitude)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list nearby emergencies", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"emergencies": nearby,
		"count":       len(nearby),
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}
