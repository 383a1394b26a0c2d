package handler

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dreamforge-ai/dreamforge/internal/ctxkeys"
	"github.com/dreamforge-ai/dreamforge/internal/service"
)

type imageHandler struct {
	imageService *service.ImageService
}

func NewImageHandler(imageService *service.ImageService) *imageHandler {
	return &imageHandler{
		imageService: imageService,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type galleryItemPayload struct {
	ID          string `json:"id"`
	Prompt      string `json:"prompt"`
	ImageBase64 string `json:"image_base64"`
	Type        string `json:"type"`
}

func (h *imageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req generateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		RespondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	image, err := h.imageService.Generate(r.Context(), user, req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientCredits):
			RespondError(w, http.StatusPaymentRequired, "you are out of credits")
		case errors.Is(err, service.ErrModelUnavailable):
			slog.Error("image generation failed", "error", err, "user_id", user.ID)
			RespondError(w, http.StatusInternalServerError, "image model unavailable")
		default:
			slog.Error("image generation failed", "error", err, "user_id", user.ID)
			RespondError(w, http.StatusInternalServerError, "image generation failed")
		}
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      "Image generated and stored.",
		"image_base64": base64.StdEncoding.EncodeToString(image.Original),
		"image_id":     image.ID,
	})
}

func (h *imageHandler) ApplyStyle(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	imageID := r.URL.Query().Get("image_id")
	style := r.URL.Query().Get("style")
	if style == "" {
		style = "cartoon"
	}

	styled, err := h.imageService.ApplyStyle(r.Context(), user, imageID, style)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageNotFound):
			RespondError(w, http.StatusNotFound, "image not found or unauthorized")
		case errors.Is(err, service.ErrInvalidStyle):
			RespondError(w, http.StatusBadRequest, "invalid style selected")
		default:
			slog.Error("style application failed", "error", err, "user_id", user.ID, "image_id", imageID)
			RespondError(w, http.StatusInternalServerError, "style application failed")
		}
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"styled_base64": base64.StdEncoding.EncodeToString(styled),
	})
}

func (h *imageHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	items, err := h.imageService.Gallery(r.Context(), user)
	if err != nil {
		slog.Error("gallery listing failed", "error", err, "user_id", user.ID)
		RespondError(w, http.StatusInternalServerError, "failed to list images")
		return
	}

	payload := make([]galleryItemPayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, galleryItemPayload{
			ID:          item.ID,
			Prompt:      item.Prompt,
			ImageBase64: base64.StdEncoding.EncodeToString(item.Data),
			Type:        item.Type,
		})
	}

	RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"images":  payload,
	})
}

func (h *imageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	imageID := r.PathValue("id")

	err := h.imageService.Delete(r.Context(), user, imageID)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			RespondError(w, http.StatusNotFound, "image not found or unauthorized")
			return
		}
		slog.Error("image deletion failed", "error", err, "user_id", user.ID, "image_id", imageID)
		RespondError(w, http.StatusInternalServerError, "failed to delete image")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Image deleted successfully",
	})
}

func (h *imageHandler) Download(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	imageID := r.PathValue("id")

	data, err := h.imageService.Download(r.Context(), user, imageID)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			RespondError(w, http.StatusNotFound, "image not found or unauthorized")
			return
		}
		slog.Error("image download failed", "error", err, "user_id", user.ID, "image_id", imageID)
		RespondError(w, http.StatusInternalServerError, "failed to download image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeContent(w, r, imageID+".png", time.Time{}, bytes.NewReader(data))
}
