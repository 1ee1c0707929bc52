// internal/match/handlers.go

package match

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ShouArchie/UofT-Hacks/internal/auth"
	"github.com/ShouArchie/UofT-Hacks/internal/common/utils"
)

// Handler handles match HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new match handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers match routes on the router
func (h *Handler) RegisterRoutes(router *mux.Router, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/matches", h.GetMatches).Methods("GET")
}

// GetMatches handles GET /api/matches
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		matchRequestsTotal.WithLabelValues("unauthorized").Inc()
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matches, err := h.service.GetMatches(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			matchRequestsTotal.WithLabelValues("no_profile").Inc()
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		matchRequestsTotal.WithLabelValues("error").Inc()
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	matchRequestsTotal.WithLabelValues("ok").Inc()
	utils.RespondWithJSON(w, http.StatusOK, matches)
}
