package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"spicysweet/internal/game"
	"spicysweet/internal/model"
	"spicysweet/internal/repository"
	"spicysweet/internal/store"
)

func newTestService() *SessionService {
	return NewSessionService(store.NewMemoryStore(), nil, nil, NewAuthService("test-secret"))
}

// memArchive is an in-memory stand-in for the Mongo archive repo.
type memArchive struct {
	docs map[string]*repository.ArchivedSession
}

func newMemArchive() *memArchive {
	return &memArchive{docs: make(map[string]*repository.ArchivedSession)}
}

func (a *memArchive) Archive(ctx context.Context, s *model.Session) error {
	a.docs[s.Code] = &repository.ArchivedSession{
		Code:       s.Code,
		Phase:      s.Phase,
		Players:    s.Players,
		TeamScores: s.TeamScores,
		Rounds:     s.Rounds,
		CreatedAt:  s.CreatedAt,
		ArchivedAt: time.Now().UTC(),
	}
	return nil
}

func (a *memArchive) GetByCode(ctx context.Context, code string) (*repository.ArchivedSession, error) {
	return a.docs[code], nil
}

func TestGenerateSessionCode(t *testing.T) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := generateSessionCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		for _, c := range code {
			if !strings.ContainsRune(chars, c) {
				t.Fatalf("code %q contains %q outside the alphabet", code, c)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("codes are not random")
	}
}

func TestPlayerTokenRoundtrip(t *testing.T) {
	auth := NewAuthService("test-secret")
	token, err := auth.GeneratePlayerToken("GAME42", "player-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := auth.ValidatePlayerToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.SessionCode != "GAME42" || claims.PlayerID != "player-1" {
		t.Fatalf("claims = %+v", claims)
	}

	// A token signed under a different secret never validates.
	other := NewAuthService("other-secret")
	if _, err := other.ValidatePlayerToken(token); err != ErrInvalidToken {
		t.Fatalf("foreign token: got %v", err)
	}
	if _, err := auth.ValidatePlayerToken("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("garbage token: got %v", err)
	}
}

func TestSessionFlowThroughService(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, "Ana", "pepper")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	code := created.Session.Code
	if created.Session.HostID != created.PlayerID {
		t.Fatal("creator is not the host")
	}
	if created.Session.Content == nil {
		t.Fatal("no content resolved for the session")
	}

	joined, err := svc.Join(ctx, code, "Ben", "")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := svc.SetTeam(ctx, code, created.PlayerID, model.TeamSpicy); err != nil {
		t.Fatalf("set host team: %v", err)
	}
	if _, err := svc.SetTeam(ctx, code, joined.PlayerID, model.TeamSweet); err != nil {
		t.Fatalf("set player team: %v", err)
	}

	sess, err := svc.StartGame(ctx, code, created.PlayerID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.Phase != model.Phase1 {
		t.Fatalf("expected phase1, got %s", sess.Phase)
	}

	// A failed precondition surfaces the game sentinel unchanged and
	// leaves the record alone.
	if _, err := svc.StartGame(ctx, code, created.PlayerID); err != game.ErrWrongPhase {
		t.Fatalf("double start: got %v", err)
	}
}

func TestRejoinUnknownIDFailsClosed(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, "Ana", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Rejoin(ctx, created.Session.Code, "stale-id"); err != game.ErrUnknownPlayer {
		t.Fatalf("stale rejoin: got %v", err)
	}
}

func TestTeardown(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, "Ana", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	code := created.Session.Code

	if err := svc.Teardown(ctx, code, "not-the-host"); err != game.ErrNotHost {
		t.Fatalf("non-host teardown: got %v", err)
	}
	if err := svc.Teardown(ctx, code, created.PlayerID); err != nil {
		t.Fatalf("teardown: %v", err)
	}
	if _, err := svc.Get(ctx, code); err != store.ErrNotFound {
		t.Fatalf("session survived teardown: %v", err)
	}
}

func TestTeardownArchivesAndHistoryReads(t *testing.T) {
	archive := newMemArchive()
	svc := NewSessionService(store.NewMemoryStore(), nil, archive, NewAuthService("test-secret"))
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, "Ana", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	code := created.Session.Code

	// Nothing archived while the session is live.
	if doc, err := svc.Archived(ctx, code); err != nil || doc != nil {
		t.Fatalf("premature archive: doc=%v err=%v", doc, err)
	}

	if err := svc.Teardown(ctx, code, created.PlayerID); err != nil {
		t.Fatalf("teardown: %v", err)
	}
	doc, err := svc.Archived(ctx, code)
	if err != nil {
		t.Fatalf("archived: %v", err)
	}
	if doc == nil || doc.Code != code {
		t.Fatalf("archive not written: %+v", doc)
	}
	if _, ok := doc.Players[created.PlayerID]; !ok {
		t.Fatal("archived record lost the roster")
	}
}
