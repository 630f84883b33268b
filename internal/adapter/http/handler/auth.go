package handler

import (
	"context"
	"net/http"

	"github.com/saferide-app/saferide-go/internal/adapter/http/handler/dto"
	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/validator"
)

type AuthService interface {
	Register(ctx context.Context, name, email, vehiclePlate, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

type Auth struct {
	service AuthService
	l       logger.Logger
}

func NewAuth(service AuthService, l logger.Logger) *Auth {
	return &Auth{
		service: service,
		l:       l,
	}
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "register")

	var req dto.RegisterRequest
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

	user, token, err := h.service.Register(ctx, req.Name, req.Email, req.VehiclePlate, req.Password)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register user", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"user":         user,
		"access_token": token,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "login")

	var req dto.LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to read request JSON data", err)
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	user, token, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.l.Warn(ctx, "login failed", "email", req.Email)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"user":         user,
		"access_token": token,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "forgot_password")

	var req dto.ForgotPasswordRequest
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

	if err := h.service.ForgotPassword(ctx, req.Email); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to issue reset token", err)
		internalErrorResponse(w, "could not process request")
		return
	}

	// Same answer whether or not the account exists.
	response := envelope{
		"message": "if the account exists, a reset token has been issued",
	}

	if err := writeJSON(w, http.StatusAccepted, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "reset_password")

	var req dto.ResetPasswordRequest
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

	if err := h.service.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		h.l.Warn(ctx, "password reset rejected")
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"message": "password updated",
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}
