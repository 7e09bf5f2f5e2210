package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/lifeos/internal/agent"
	"github.com/xonecas/lifeos/internal/constants"
)

// RegisterChatRoutes mounts the chat endpoints on the router.
func (h *Handler) RegisterChatRoutes(r chi.Router) {
	r.Post("/chat", h.PostChat)
	r.Get("/chat", h.GetChat)
}

type chatRequest struct {
	Message string `json:"message"`
}

// PostChat handles one conversational turn.
func (h *Handler) PostChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusUnprocessableEntity, "Validation error", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		Error(w, http.StatusUnprocessableEntity, "Validation error", "message cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.LLMRequestTimeout)
	defer cancel()

	reply, err := h.responder.Respond(ctx, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, agent.ErrUpstreamModel):
			log.Error().Err(err).Msg("Upstream model failed")
			Error(w, http.StatusBadGateway, "Error processing request", err.Error())
		case errors.Is(err, agent.ErrStorage):
			log.Error().Err(err).Msg("Storage failed")
			Error(w, http.StatusInternalServerError, "Internal Server Error")
		default:
			log.Error().Err(err).Msg("Chat turn failed")
			Error(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	Success(w, http.StatusCreated, "Message sent", reply)
}

// GetChat returns one page of the transcript, oldest first.
func (h *Handler) GetChat(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePageParams(r)
	if err != nil {
		Error(w, http.StatusUnprocessableEntity, "Validation error", err.Error())
		return
	}

	messages, total, err := h.store.ListMessages(page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list messages")
		Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	JSON(w, http.StatusOK, BaseResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Messages retrieved",
		Data:    messages,
		Metadata: map[string]any{
			"pagination": NewPagination(page, limit, len(messages), total),
		},
	})
}

func parsePageParams(r *http.Request) (page, limit int, err error) {
	page, limit = 1, constants.DefaultPageLimit

	if v := r.URL.Query().Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
	}

	if limit > constants.MaxPageLimit {
		limit = constants.MaxPageLimit
	}

	return page, limit, nil
}
