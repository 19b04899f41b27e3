package game

import (
	"time"

	"spicysweet/internal/model"
)

// phaseOrder is the strictly linear session lifecycle. No skipping, no
// going back.
var phaseOrder = []model.Phase{
	model.PhaseLobby,
	model.Phase1,
	model.Phase2,
	model.Phase3,
	model.Phase4,
	model.Phase5,
	model.PhaseVictory,
}

// NextPhase returns the phase following p, or p itself at the end.
func NextPhase(p model.Phase) model.Phase {
	for i, cur := range phaseOrder {
		if cur == p && i+1 < len(phaseOrder) {
			return phaseOrder[i+1]
		}
	}
	return p
}

// enterPhase replaces phase and sub-state together. Clearing every
// pointer before setting the new one is what keeps the record's phase
// and sub-state consistent under any interleaving: the whole swap
// happens inside one transaction.
func enterPhase(s *model.Session, p model.Phase, now time.Time) {
	s.Phase = p
	s.Lobby = nil
	s.Rapid = nil
	s.Sort = nil
	s.Menus = nil
	s.Buzzer = nil
	s.Memory = nil
	s.Victory = nil

	switch p {
	case model.PhaseLobby:
		s.Lobby = &model.LobbyState{CreatedAt: now}
	case model.Phase1:
		s.Rapid = newRapidState(0)
	case model.Phase2:
		s.Sort = newSortState(0)
	case model.Phase3:
		s.Menus = newMenuState()
	case model.Phase4:
		s.Buzzer = newBuzzerState(0, now)
	case model.Phase5:
		s.Memory = newMemoryState()
	case model.PhaseVictory:
		s.Victory = newVictoryState(s, now)
	}
}

// StartGame moves lobby to phase1. The lobby gate: at least two players
// and neither team empty. Content falls back to the built-in set when
// generation never ran, so no content check beyond non-emptiness.
func StartGame(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	if s.Phase != model.PhaseLobby {
		return ErrWrongPhase
	}
	if len(s.Players) < 2 || s.TeamCount(model.TeamSpicy) == 0 || s.TeamCount(model.TeamSweet) == 0 {
		return ErrNotEnoughPlayers
	}
	if len(s.RapidQuestions()) == 0 {
		return ErrNoContent
	}
	enterPhase(s, model.Phase1, now)
	return nil
}

// ForceAdvance is the host's escape hatch for a stuck phase: it drops
// whatever sub-state the current phase is in and enters the next phase.
// Scored rounds already resolved keep their points; an unresolved round
// is simply abandoned.
func ForceAdvance(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	if s.Phase == model.PhaseLobby {
		return StartGame(s, callerID, now)
	}
	if s.Phase == model.PhaseVictory {
		return ErrWrongPhase
	}
	enterPhase(s, NextPhase(s.Phase), now)
	return nil
}

func newVictoryState(s *model.Session, now time.Time) *model.VictoryState {
	scores := make(map[model.Team]int, len(model.Teams))
	for _, t := range model.Teams {
		scores[t] = s.TeamScores[t]
	}
	v := &model.VictoryState{Scores: scores, FinishedAt: now}
	switch {
	case scores[model.TeamSpicy] > scores[model.TeamSweet]:
		v.WinnerTeam = model.TeamSpicy
	case scores[model.TeamSweet] > scores[model.TeamSpicy]:
		v.WinnerTeam = model.TeamSweet
	default:
		v.Tie = true
	}
	return v
}

// requireHost enforces the host convention. It re-checks against the
// record inside the transaction; the caller's cached view is never
// trusted. In solo mode the sole player is the host by construction.
func requireHost(s *model.Session, callerID string) error {
	if _, ok := s.Players[callerID]; !ok {
		return ErrUnknownPlayer
	}
	if callerID != s.HostID {
		return ErrNotHost
	}
	return nil
}

func requirePlayer(s *model.Session, playerID string) (*model.Player, error) {
	p, ok := s.Players[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	return p, nil
}

func requireTeamPlayer(s *model.Session, playerID string) (*model.Player, error) {
	p, err := requirePlayer(s, playerID)
	if err != nil {
		return nil, err
	}
	if !p.Team.Playable() {
		return nil, ErrNoTeam
	}
	return p, nil
}
