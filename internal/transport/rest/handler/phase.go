package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"spicysweet/internal/model"
	"spicysweet/internal/service"
	"spicysweet/internal/transport/rest/middleware"
)

// PhaseHandler handles the per-phase game operations. Every endpoint
// issues one store transaction and returns the committed snapshot;
// clients still re-render from the subscription feed.
type PhaseHandler struct {
	sessionSvc   *service.SessionService
	generatorSvc *service.GeneratorService
}

// NewPhaseHandler creates a new phase handler
func NewPhaseHandler(sessionSvc *service.SessionService, generatorSvc *service.GeneratorService) *PhaseHandler {
	return &PhaseHandler{sessionSvc: sessionSvc, generatorSvc: generatorSvc}
}

type sessionOp func(code, playerID string) (*model.Session, error)

func (h *PhaseHandler) run(w http.ResponseWriter, r *http.Request, op sessionOp) {
	code := mux.Vars(r)["code"]
	sess, err := op(code, middleware.PlayerID(r))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// RapidReading handles POST /v1/sessions/{code}/phase1/reading
func (h *PhaseHandler) RapidReading(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.BeginRapidReading(r.Context(), code, playerID)
	})
}

// RapidAnswering handles POST /v1/sessions/{code}/phase1/answering
func (h *PhaseHandler) RapidAnswering(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.BeginRapidAnswering(r.Context(), code, playerID)
	})
}

// RapidAnswer handles POST /v1/sessions/{code}/phase1/answer
func (h *PhaseHandler) RapidAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice int `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.SubmitRapidAnswer(r.Context(), code, playerID, req.Choice)
	})
}

// RapidResolve handles POST /v1/sessions/{code}/phase1/resolve
func (h *PhaseHandler) RapidResolve(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.ResolveRapidRound(r.Context(), code, playerID)
	})
}

// RapidNext handles POST /v1/sessions/{code}/phase1/next
func (h *PhaseHandler) RapidNext(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.NextRapidQuestion(r.Context(), code, playerID)
	})
}

// SortReading handles POST /v1/sessions/{code}/phase2/reading
func (h *PhaseHandler) SortReading(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.BeginSortReading(r.Context(), code, playerID)
	})
}

// SortAnswer handles POST /v1/sessions/{code}/phase2/answer
func (h *PhaseHandler) SortAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer model.SortAnswer `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.SubmitSortAnswer(r.Context(), code, playerID, req.Answer)
	})
}

// SortCheck handles POST /v1/sessions/{code}/phase2/check
func (h *PhaseHandler) SortCheck(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.CheckSortCompletion(r.Context(), code, playerID)
	})
}

// SortNext handles POST /v1/sessions/{code}/phase2/next
func (h *PhaseHandler) SortNext(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.NextSortItem(r.Context(), code, playerID)
	})
}

// MenuSelect handles POST /v1/sessions/{code}/phase3/select
func (h *PhaseHandler) MenuSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MenuID string `json:"menuId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.SelectMenu(r.Context(), code, playerID, req.MenuID)
	})
}

// MenuAdvance handles POST /v1/sessions/{code}/phase3/advance
func (h *PhaseHandler) MenuAdvance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correct bool `json:"correct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.AdvanceMenuQuestion(r.Context(), code, playerID, req.Correct)
	})
}

// MenuFinish handles POST /v1/sessions/{code}/phase3/finish
func (h *PhaseHandler) MenuFinish(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.FinishMenus(r.Context(), code, playerID)
	})
}

// Buzz handles POST /v1/sessions/{code}/phase4/buzz
func (h *PhaseHandler) Buzz(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.Buzz(r.Context(), code, playerID)
	})
}

// BuzzResolve handles POST /v1/sessions/{code}/phase4/resolve
func (h *PhaseHandler) BuzzResolve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correct bool `json:"correct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.ResolveBuzz(r.Context(), code, playerID, req.Correct)
	})
}

// BuzzTimeout handles POST /v1/sessions/{code}/phase4/timeout
func (h *PhaseHandler) BuzzTimeout(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.TimeoutBuzzer(r.Context(), code, playerID)
	})
}

// BuzzNext handles POST /v1/sessions/{code}/phase4/next
func (h *PhaseHandler) BuzzNext(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.NextBuzzerQuestion(r.Context(), code, playerID)
	})
}

// MemorySelection handles POST /v1/sessions/{code}/phase5/selection
func (h *PhaseHandler) MemorySelection(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.BeginMemorySelection(r.Context(), code, playerID)
	})
}

// MemoryClaim handles POST /v1/sessions/{code}/phase5/claim
func (h *PhaseHandler) MemoryClaim(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.ClaimRepresentative(r.Context(), code, playerID)
	})
}

// MemoryStart handles POST /v1/sessions/{code}/phase5/memorize
func (h *PhaseHandler) MemoryStart(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.StartMemorizing(r.Context(), code, playerID)
	})
}

// MemoryAdvance handles POST /v1/sessions/{code}/phase5/memorize/next
func (h *PhaseHandler) MemoryAdvance(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.AdvanceMemorizePair(r.Context(), code, playerID)
	})
}

// MemoryAnswer handles POST /v1/sessions/{code}/phase5/answer
func (h *PhaseHandler) MemoryAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.SubmitMemoryAnswer(r.Context(), code, playerID, req.Answer)
	})
}

// MemoryValidate handles POST /v1/sessions/{code}/phase5/validate.
// Grading runs semantically when the AI is configured, fuzzy otherwise.
func (h *PhaseHandler) MemoryValidate(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.generatorSvc.ValidateMemoryForSession(r.Context(), code, playerID)
	})
}

// MemoryFinish handles POST /v1/sessions/{code}/phase5/finish
func (h *PhaseHandler) MemoryFinish(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(code, playerID string) (*model.Session, error) {
		return h.sessionSvc.FinishMemoryDuel(r.Context(), code, playerID)
	})
}
