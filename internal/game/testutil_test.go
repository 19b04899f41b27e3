package game

import (
	"testing"
	"time"

	"spicysweet/internal/model"
)

var t0 = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

// newTestSession builds a 4-player lobby: host and p3 on spicy, p2 and
// p4 on sweet, everyone online, built-in content.
func newTestSession(t *testing.T) *model.Session {
	t.Helper()
	host := &model.Player{ID: "host", Name: "Ana"}
	s := NewSession("GAME42", host, DefaultContent(), t0)

	for _, p := range []*model.Player{
		{ID: "p2", Name: "Ben"},
		{ID: "p3", Name: "Caro"},
		{ID: "p4", Name: "Dee"},
	} {
		if err := Join(s, p, t0); err != nil {
			t.Fatalf("join %s: %v", p.ID, err)
		}
	}
	for id, team := range map[string]model.Team{
		"host": model.TeamSpicy,
		"p2":   model.TeamSweet,
		"p3":   model.TeamSpicy,
		"p4":   model.TeamSweet,
	} {
		if err := SetTeam(s, id, team); err != nil {
			t.Fatalf("set team %s: %v", id, err)
		}
	}
	return s
}

// startedSession is a test session already advanced into phase1.
func startedSession(t *testing.T) *model.Session {
	t.Helper()
	s := newTestSession(t)
	if err := StartGame(s, "host", t0); err != nil {
		t.Fatalf("start game: %v", err)
	}
	return s
}

// mustAdvance walks the session to the target phase using the host's
// forced transition.
func mustAdvance(t *testing.T, s *model.Session, target model.Phase) {
	t.Helper()
	for i := 0; i < len(phaseOrder) && s.Phase != target; i++ {
		if err := ForceAdvance(s, "host", t0); err != nil {
			t.Fatalf("advance from %s: %v", s.Phase, err)
		}
	}
	if s.Phase != target {
		t.Fatalf("could not reach %s, stuck at %s", target, s.Phase)
	}
}

// checkSubStateInvariant fails unless exactly one sub-state pointer is
// set and it matches the phase.
func checkSubStateInvariant(t *testing.T, s *model.Session) {
	t.Helper()
	set := map[model.Phase]bool{
		model.PhaseLobby:   s.Lobby != nil,
		model.Phase1:       s.Rapid != nil,
		model.Phase2:       s.Sort != nil,
		model.Phase3:       s.Menus != nil,
		model.Phase4:       s.Buzzer != nil,
		model.Phase5:       s.Memory != nil,
		model.PhaseVictory: s.Victory != nil,
	}
	for phase, present := range set {
		if phase == s.Phase && !present {
			t.Fatalf("phase %s has no matching sub-state", s.Phase)
		}
		if phase != s.Phase && present {
			t.Fatalf("phase %s but stale %s sub-state present", s.Phase, phase)
		}
	}
}
