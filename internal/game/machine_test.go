package game

import (
	"testing"

	"spicysweet/internal/model"
)

func TestStartGameRequiresBothTeams(t *testing.T) {
	host := &model.Player{ID: "host", Name: "Ana"}
	s := NewSession("SOLO01", host, DefaultContent(), t0)

	if err := StartGame(s, "host", t0); err != ErrNotEnoughPlayers {
		t.Fatalf("expected ErrNotEnoughPlayers with one player, got %v", err)
	}

	p2 := &model.Player{ID: "p2", Name: "Ben"}
	if err := Join(s, p2, t0); err != nil {
		t.Fatalf("join: %v", err)
	}
	SetTeam(s, "host", model.TeamSpicy)
	SetTeam(s, "p2", model.TeamSpicy)

	if err := StartGame(s, "host", t0); err != ErrNotEnoughPlayers {
		t.Fatalf("expected ErrNotEnoughPlayers with an empty team, got %v", err)
	}

	SetTeam(s, "p2", model.TeamSweet)
	if err := StartGame(s, "host", t0); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	if s.Phase != model.Phase1 {
		t.Fatalf("expected phase1, got %s", s.Phase)
	}
}

func TestStartGameRejectsNonHost(t *testing.T) {
	s := newTestSession(t)
	if err := StartGame(s, "p2", t0); err != ErrNotHost {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if s.Phase != model.PhaseLobby {
		t.Fatalf("phase changed on rejected start: %s", s.Phase)
	}
}

func TestStartGameOnlyFromLobby(t *testing.T) {
	s := startedSession(t)
	if err := StartGame(s, "host", t0); err != ErrWrongPhase {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
}

func TestPhaseAndSubStateStayConsistent(t *testing.T) {
	s := newTestSession(t)
	checkSubStateInvariant(t, s)

	want := []model.Phase{
		model.Phase1, model.Phase2, model.Phase3,
		model.Phase4, model.Phase5, model.PhaseVictory,
	}
	for _, phase := range want {
		if err := ForceAdvance(s, "host", t0); err != nil {
			t.Fatalf("advance to %s: %v", phase, err)
		}
		if s.Phase != phase {
			t.Fatalf("expected %s, got %s", phase, s.Phase)
		}
		checkSubStateInvariant(t, s)
	}

	// Victory is terminal.
	if err := ForceAdvance(s, "host", t0); err != ErrWrongPhase {
		t.Fatalf("expected ErrWrongPhase past victory, got %v", err)
	}
}

func TestVictoryStandings(t *testing.T) {
	s := startedSession(t)
	s.TeamScores[model.TeamSpicy] = 45
	s.TeamScores[model.TeamSweet] = 80
	mustAdvance(t, s, model.PhaseVictory)

	if s.Victory.WinnerTeam != model.TeamSweet {
		t.Fatalf("expected sweet to win, got %q", s.Victory.WinnerTeam)
	}
	if s.Victory.Scores[model.TeamSpicy] != 45 || s.Victory.Scores[model.TeamSweet] != 80 {
		t.Fatalf("standings not carried over: %v", s.Victory.Scores)
	}
}

func TestVictoryTie(t *testing.T) {
	s := startedSession(t)
	s.TeamScores[model.TeamSpicy] = 30
	s.TeamScores[model.TeamSweet] = 30
	mustAdvance(t, s, model.PhaseVictory)

	if !s.Victory.Tie || s.Victory.WinnerTeam != "" {
		t.Fatalf("expected a tie, got winner %q tie=%v", s.Victory.WinnerTeam, s.Victory.Tie)
	}
}
