package handler

import (
	"context"
	"net/http"

	"github.com/saferide-app/saferide-go/internal/adapter/http/handler/dto"
	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/uuid"
	"github.com/saferide-app/saferide-go/pkg/validator"
)

const maxNearbyLimit = 200

type ChatService interface {
	Send(ctx context.Context, user *models.User, text string, latitude, longitude float64, kind types.MessageKind) (*models.ChatMessage, error)
	Nearby(ctx context.Context, userID uuid.UUID, latitude, longitude float64, limit int) ([]models.NearbyChatMessage, error)
	Delete(ctx context.Context, userID, messageID uuid.UUID) error
}

type Chat struct {
	service ChatService
	l       logger.Logger
}

func NewChat(service ChatService, l logger.Logger) *Chat {
	return &Chat{
		service: service,
		l:       l,
	}
}

func (h *Chat) Send(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "send_chat_message")
	user := models.UserFromContext(ctx)

	var req dto.SendMessageRequest
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

	message, err := h.service.Send(ctx, user, req.Message, *req.Latitude, *req.Longitude, req.Kind())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to send chat message", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"chat_message": message,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Chat) Nearby(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "nearby_chat_messages")
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
	limit, err := readIntQuery(r, "limit", 50)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateCoordinate(v, &latitude, &longitude)
	v.Check(limit > 0, "limit", "must be positive")
	v.Check(limit <= maxNearbyLimit, "limit", "must not be more than 200")
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	messages, err := h.service.Nearby(ctx, user.ID, latitude, longitude, limit)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list nearby chat messages", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"chat_messages": messages,
		"count":         len(messages),
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Chat) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "delete_chat_message")
	user := models.UserFromContext(ctx)

	messageID, err := uuid.Parse(r.PathValue("message_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid message uuid format")
		errorResponse(w, http.StatusBadRequest, "invalid message uuid format")
		return
	}

	if err := h.service.Delete(ctx, user.ID, messageID); err != nil {
		h.l.Warn(ctx, "delete rejected", "reason", err.Error())
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"message": "Chat message deleted",
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}
