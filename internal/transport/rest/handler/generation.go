package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"spicysweet/internal/model"
	"spicysweet/internal/service"
	"spicysweet/internal/transport/rest/middleware"
)

// GenerationHandler handles lock-gated content generation endpoints
type GenerationHandler struct {
	generatorSvc *service.GeneratorService
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(generatorSvc *service.GeneratorService) *GenerationHandler {
	return &GenerationHandler{generatorSvc: generatorSvc}
}

// Generate handles POST /v1/sessions/{code}/generate. Exactly one of
// several racing callers wins the lock and runs generation; the rest
// get 409 and wait for isGenerating to clear on the feed.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req model.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch req.Phase {
	case model.Phase1, model.Phase2, model.Phase3, model.Phase4, model.Phase5:
	default:
		writeError(w, http.StatusBadRequest, "unknown phase")
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}
	if req.Language == "" {
		req.Language = "en"
	}

	sess, err := h.generatorSvc.GenerateForSession(r.Context(), code, middleware.PlayerID(r), &req)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Extend handles POST /v1/sessions/{code}/generate/extend
func (h *GenerationHandler) Extend(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	sess, err := h.generatorSvc.ExtendForSession(r.Context(), code, middleware.PlayerID(r))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
