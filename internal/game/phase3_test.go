package game

import (
	"testing"

	"spicysweet/internal/model"
)

func menuIDs(s *model.Session) []string {
	ids := make([]string, 0, len(s.ThemeMenus()))
	for _, m := range s.ThemeMenus() {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestMenuSelectionOrderAndConflicts(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase3)
	ids := menuIDs(s)

	// Sweet is not on turn first.
	if err := SelectMenu(s, "p2", ids[0], t0); err != ErrNotYourTurn {
		t.Fatalf("out-of-turn pick: got %v", err)
	}
	if err := SelectMenu(s, "p3", ids[0], t0); err != nil {
		t.Fatalf("spicy pick: %v", err)
	}
	if s.Menus.Step != model.MenuSelecting {
		t.Fatal("phase started playing before both teams picked")
	}
	// The taken menu is off the table for sweet.
	if err := SelectMenu(s, "p2", ids[0], t0); err != ErrMenuTaken {
		t.Fatalf("taken menu: got %v", err)
	}
	if err := SelectMenu(s, "p2", "no-such-menu", t0); err != ErrNoContent {
		t.Fatalf("unknown menu: got %v", err)
	}
	if err := SelectMenu(s, "p2", ids[1], t0); err != nil {
		t.Fatalf("sweet pick: %v", err)
	}
	if s.Menus.Step != model.MenuPlaying {
		t.Fatalf("both picks made but step=%s", s.Menus.Step)
	}
}

// Teams progress through their menus independently; the phase finishes
// whichever order they wrap up in, and each tally resolves exactly once.
func TestMenuIndependentProgress(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase3)
	ids := menuIDs(s)
	SelectMenu(s, "p3", ids[0], t0)
	SelectMenu(s, "p2", ids[1], t0)

	spicyLen := len(findMenu(s, ids[0]).Questions)
	sweetLen := len(findMenu(s, ids[1]).Questions)

	// Sweet races ahead and finishes first, all correct.
	for i := 0; i < sweetLen; i++ {
		if err := AdvanceMenuQuestion(s, "p2", true, t0); err != nil {
			t.Fatalf("sweet q%d: %v", i, err)
		}
	}
	if !s.Menus.Progress[model.TeamSweet].Done {
		t.Fatal("sweet not done after exhausting its menu")
	}
	if s.Menus.Step == model.MenuFinished {
		t.Fatal("phase finished with spicy still playing")
	}
	if got := s.TeamScores[model.TeamSweet]; got != sweetLen*MenuPoints {
		t.Fatalf("sweet score = %d, want %d", got, sweetLen*MenuPoints)
	}
	// Advancing past the end aborts instead of double counting.
	if err := AdvanceMenuQuestion(s, "p2", true, t0); err != ErrRoundResolved {
		t.Fatalf("advance past end: got %v", err)
	}

	// Spicy gets one right, rest wrong.
	for i := 0; i < spicyLen; i++ {
		if err := AdvanceMenuQuestion(s, "p3", i == 0, t0); err != nil {
			t.Fatalf("spicy q%d: %v", i, err)
		}
	}
	if s.Menus.Step != model.MenuFinished {
		t.Fatalf("expected finished, step=%s", s.Menus.Step)
	}
	if got := s.TeamScores[model.TeamSpicy]; got != MenuPoints {
		t.Fatalf("spicy score = %d, want %d", got, MenuPoints)
	}

	if err := FinishMenus(s, "host", t0); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if s.Phase != model.Phase4 {
		t.Fatalf("expected phase4, got %s", s.Phase)
	}
	checkSubStateInvariant(t, s)
}

func TestFinishMenusRequiresBothDone(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase3)
	ids := menuIDs(s)
	SelectMenu(s, "p3", ids[0], t0)
	SelectMenu(s, "p2", ids[1], t0)

	if err := FinishMenus(s, "host", t0); err != ErrWrongStep {
		t.Fatalf("early finish: got %v", err)
	}
}
