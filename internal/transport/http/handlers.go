package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/internal/service/content"
	"github.com/sandevgo/mentoria/internal/service/conversation"
	"github.com/sandevgo/mentoria/pkg/log"
)

const maxBodyBytes = 1 << 20

type handlers struct {
	deps Deps
}

type chatRequest struct {
	UserID         string            `json:"user_id"`
	ConversationID string            `json:"conversation_id,omitempty"`
	Message        *string           `json:"message,omitempty"`
	UserData       []core.FieldInput `json:"user_data,omitempty"`
}

// validate requires a user and exactly one kind of input.
func (c chatRequest) validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id is required")
	}
	hasMessage := c.Message != nil && strings.TrimSpace(*c.Message) != ""
	hasData := len(c.UserData) > 0
	if hasMessage == hasData {
		return errors.New("exactly one of message or user_data is required")
	}
	for _, f := range c.UserData {
		if strings.TrimSpace(f.Field) == "" {
			return errors.New("user_data entries need a field")
		}
	}
	return nil
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": core.MentorName,
		"version": core.MentorVersion,
	})
}

func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	turn := core.TurnRequest{
		UserID:         req.UserID,
		ConversationID: req.ConversationID,
		UserData:       req.UserData,
	}
	if req.Message != nil {
		turn.Message = *req.Message
	}

	resp, err := h.deps.Turns.HandleTurn(r.Context(), turn)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) messages(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := queryInt(r, "size", conversation.DefaultPageSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.deps.Conversations.Messages(r.Context(), chi.URLParam(r, "conversationID"), page, size)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handlers) conversationInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.deps.Conversations.Info(r.Context(), chi.URLParam(r, "conversationID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (h *handlers) latestConversation(w http.ResponseWriter, r *http.Request) {
	id, err := h.deps.Conversations.Latest(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"conversation_id": id})
}

func (h *handlers) requireContent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.deps.Content == nil {
			respondError(w, http.StatusServiceUnavailable, "content catalog is not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handlers) listContent(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := queryInt(r, "size", content.DefaultPageSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.deps.Content.List(r.Context(), chi.URLParam(r, "contentType"), page, size)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handlers) createContent(w http.ResponseWriter, r *http.Request) {
	h.storeContent(w, r, "", http.StatusCreated)
}

func (h *handlers) updateContent(w http.ResponseWriter, r *http.Request) {
	h.storeContent(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (h *handlers) storeContent(w http.ResponseWriter, r *http.Request, id string, status int) {
	var item core.ContentItem
	if err := decodeBody(w, r, &item); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if id != "" {
		item.ID = id
	}

	stored, err := h.deps.Content.Upsert(r.Context(), chi.URLParam(r, "contentType"), item)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, status, stored)
}

func (h *handlers) deleteContent(w http.ResponseWriter, r *http.Request) {
	err := h.deps.Content.Delete(r.Context(), chi.URLParam(r, "contentType"), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput), errors.Is(err, core.ErrInvalidPagination):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	default:
		log.FromCtx(r.Context()).Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
