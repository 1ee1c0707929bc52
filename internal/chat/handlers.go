// internal/chat/handlers.go

package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ShouArchie/UofT-Hacks/internal/auth"
	"github.com/ShouArchie/UofT-Hacks/internal/common/utils"
	"github.com/ShouArchie/UofT-Hacks/internal/profile"
)

// ChatRequest asks for an in-character reply from the given match
type ChatRequest struct {
	Message     string `json:"message" validate:"required,min=1,max=2000"`
	MatchUserID int64  `json:"matchUserId" validate:"required"`
}

// ChatResponse carries the generated reply
type ChatResponse struct {
	Response string `json:"response"`
}

// Handler handles chat HTTP requests
type Handler struct {
	service  Service
	profiles profile.Service
}

// NewHandler creates a new chat handler
func NewHandler(service Service, profiles profile.Service) *Handler {
	return &Handler{service: service, profiles: profiles}
}

// RegisterRoutes registers chat routes on the router
func (h *Handler) RegisterRoutes(router *mux.Router, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/chat", h.Chat).Methods("POST")
}

// Chat handles POST /api/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.GetUserIDFromContext(r.Context()); !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message must not be empty")
		return
	}

	match, err := h.profiles.GetProfileByUserID(r.Context(), req.MatchUserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load match profile")
		return
	}

	reply, err := h.service.Reply(r.Context(), req.Message, match)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate response")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ChatResponse{Response: reply})
}
