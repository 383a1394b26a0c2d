package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dreamforge-ai/dreamforge/internal/ctxkeys"
	"github.com/dreamforge-ai/dreamforge/internal/model"
	"github.com/dreamforge-ai/dreamforge/internal/service"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	User        userPayload `json:"user"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decodeJSON(r, &req)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrUsernameRequired),
			errors.Is(err, service.ErrPasswordRequired):
			RespondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("registration failed", "error", err)
			RespondError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	h.respondWithToken(w, user, http.StatusOK)
	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(r, &req)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		slog.Error("login failed", "error", err)
		RespondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.respondWithToken(w, user, http.StatusOK)
}

func (h *authHandler) Credits(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"credits": user.Credits,
		"user": userPayload{
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *authHandler) respondWithToken(w http.ResponseWriter, user *model.User, status int) {
	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		RespondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	RespondJSON(w, status, tokenResponse{
		AccessToken: token,
		User: userPayload{
			Username: user.Username,
			Email:    user.Email,
		},
	})
}
