package game

import (
	"testing"
	"time"

	"spicysweet/internal/model"
)

func TestJoinOnlyInLobby(t *testing.T) {
	s := startedSession(t)
	err := Join(s, &model.Player{ID: "late", Name: "Eve"}, t0)
	if err != ErrGameStarted {
		t.Fatalf("late join: got %v, want ErrGameStarted", err)
	}
}

func TestJoinRejectsDuplicateID(t *testing.T) {
	s := newTestSession(t)
	if err := Join(s, &model.Player{ID: "p2", Name: "Impostor"}, t0); err != ErrPlayerExists {
		t.Fatalf("duplicate join: got %v", err)
	}
	if s.Players["p2"].Name != "Ben" {
		t.Fatal("duplicate join overwrote the existing player")
	}
}

func TestRejoinKeepsTeamAndScore(t *testing.T) {
	s := startedSession(t)
	s.Players["p2"].Score = 30

	later := t0.Add(5 * time.Minute)
	if err := SetOnline(s, "p2", false, later); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if s.Players["p2"].IsOnline {
		t.Fatal("player still online after disconnect")
	}

	if err := Rejoin(s, "p2", later.Add(time.Minute)); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	p := s.Players["p2"]
	if !p.IsOnline || p.Team != model.TeamSweet || p.Score != 30 {
		t.Fatalf("rejoin lost state: online=%v team=%s score=%d", p.IsOnline, p.Team, p.Score)
	}
}

func TestRejoinUnknownPlayer(t *testing.T) {
	s := startedSession(t)
	if err := Rejoin(s, "ghost", t0); err != ErrUnknownPlayer {
		t.Fatalf("unknown rejoin: got %v", err)
	}
}

// The host seat never moves on its own: a disconnected host keeps the
// role and resumes it on return.
func TestHostSeatSurvivesDisconnect(t *testing.T) {
	s := startedSession(t)
	SetOnline(s, "host", false, t0)
	if s.HostID != "host" {
		t.Fatalf("host re-elected to %s", s.HostID)
	}
	// Host-only operations from others still abort.
	if err := BeginRapidReading(s, "p2", t0); err != ErrNotHost {
		t.Fatalf("non-host drive: got %v", err)
	}
	Rejoin(s, "host", t0.Add(time.Minute))
	if err := BeginRapidReading(s, "host", t0.Add(time.Minute)); err != nil {
		t.Fatalf("returning host blocked: %v", err)
	}
}

func TestSetTeamLockedAfterStart(t *testing.T) {
	s := startedSession(t)
	if err := SetTeam(s, "p2", model.TeamSpicy); err != ErrGameStarted {
		t.Fatalf("team change after start: got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	s := newTestSession(t)
	if err := UpdateProfile(s, "p3", "Carolina", "pepper"); err != nil {
		t.Fatalf("update: %v", err)
	}
	p := s.Players["p3"]
	if p.Name != "Carolina" || p.Avatar != "pepper" {
		t.Fatalf("profile not applied: %+v", p)
	}
	// Empty fields leave the current values alone.
	if err := UpdateProfile(s, "p3", "", ""); err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if p.Name != "Carolina" {
		t.Fatal("empty update cleared the name")
	}
}
