package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"spicysweet/internal/game"
	"spicysweet/internal/model"
	"spicysweet/internal/service"
	"spicysweet/internal/store"
	"spicysweet/internal/transport/rest/middleware"
	"spicysweet/internal/transport/ws"
)

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
	hub        *ws.Hub
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, hub: hub}
}

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	resp, err := h.sessionSvc.CreateSession(r.Context(), req.Name, req.Avatar)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/sessions/{code}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	sess, err := h.sessionSvc.Get(r.Context(), code)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// JoinRequest is the request body for joining a session
type JoinRequest struct {
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	PlayerID string `json:"playerId,omitempty"` // set on rejoin
}

// Join handles POST /v1/sessions/{code}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.PlayerID != "" {
		resp, err := h.sessionSvc.Rejoin(r.Context(), code, req.PlayerID)
		if err != nil {
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	resp, err := h.sessionSvc.Join(r.Context(), code, req.Name, req.Avatar)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// History handles GET /v1/sessions/{code}/history: the archived record
// of a finished session, kept after the live record is deleted.
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	doc, err := h.sessionSvc.Archived(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "no archived session")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// SetTeamRequest is the request body for picking a team
type SetTeamRequest struct {
	Team model.Team `json:"team"`
}

// SetTeam handles POST /v1/sessions/{code}/team
func (h *SessionHandler) SetTeam(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req SetTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessionSvc.SetTeam(r.Context(), code, middleware.PlayerID(r), req.Team)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// UpdateProfileRequest is the request body for profile changes
type UpdateProfileRequest struct {
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// UpdateProfile handles PUT /v1/sessions/{code}/profile
func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessionSvc.UpdateProfile(r.Context(), code, middleware.PlayerID(r), req.Name, req.Avatar)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Start handles POST /v1/sessions/{code}/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	sess, err := h.sessionSvc.StartGame(r.Context(), code, middleware.PlayerID(r))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Advance handles POST /v1/sessions/{code}/advance, the host's escape
// hatch for a stuck phase.
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	sess, err := h.sessionSvc.ForceAdvance(r.Context(), code, middleware.PlayerID(r))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Teardown handles DELETE /v1/sessions/{code}. The deleted record no
// longer produces change-feed snapshots, so connected clients learn of
// the teardown from an explicit session_gone broadcast.
func (h *SessionHandler) Teardown(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if err := h.sessionSvc.Teardown(r.Context(), code, middleware.PlayerID(r)); err != nil {
		writeGameError(w, err)
		return
	}
	if h.hub != nil {
		h.hub.BroadcastToSession(code, ws.MsgSessionGone, map[string]string{"code": code})
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeGameError maps core errors onto HTTP statuses. Precondition
// violations are 409s: the action was understood but the record no
// longer permits it.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, game.ErrUnknownPlayer):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrNotHost):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, game.ErrLockHeld):
		writeError(w, http.StatusConflict, "generation already in progress")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusServiceUnavailable, "too much contention, try again")
	case errors.Is(err, game.ErrWrongPhase),
		errors.Is(err, game.ErrWrongStep),
		errors.Is(err, game.ErrNoTeam),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrGameStarted),
		errors.Is(err, game.ErrPlayerExists),
		errors.Is(err, game.ErrAlreadyAnswered),
		errors.Is(err, game.ErrTeamBlocked),
		errors.Is(err, game.ErrRoundIncomplete),
		errors.Is(err, game.ErrRoundResolved),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrMenuTaken),
		errors.Is(err, game.ErrAlreadyBuzzed),
		errors.Is(err, game.ErrNotRepresentative),
		errors.Is(err, game.ErrTimerRunning),
		errors.Is(err, game.ErrNoContent),
		errors.Is(err, game.ErrNotLockOwner):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
