package game

import (
	"testing"

	"spicysweet/internal/model"
)

// playFullGame drives a session through every phase with a fixed
// script and returns it at victory.
func playFullGame(t *testing.T, s *model.Session) {
	t.Helper()

	// phase1: p3 wins the first question, the rest time out.
	for i := 0; i < len(s.RapidQuestions()); i++ {
		rapidToAnswering(t, s)
		if i == 0 {
			if err := SubmitRapidAnswer(s, "p3", s.RapidQuestions()[0].CorrectIndex, t0); err != nil {
				t.Fatalf("rapid: %v", err)
			}
		} else if err := ResolveRapidRound(s, "host", t0); err != nil {
			t.Fatalf("rapid resolve %d: %v", i, err)
		}
		if err := NextRapidQuestion(s, "host", t0); err != nil {
			t.Fatalf("rapid next %d: %v", i, err)
		}
	}

	// phase2: everyone always classifies correctly.
	for i := 0; i < len(s.SortItems()); i++ {
		sortToReading(t, s)
		answer := s.SortItems()[i].Answer
		for _, id := range []string{"p2", "p3", "p4"} {
			if err := SubmitSortAnswer(s, id, answer, t0); err != nil {
				t.Fatalf("sort %d %s: %v", i, id, err)
			}
		}
		if err := NextSortItem(s, "host", t0); err != nil {
			t.Fatalf("sort next %d: %v", i, err)
		}
	}

	// phase3: spicy all correct, sweet all wrong.
	ids := menuIDs(s)
	SelectMenu(s, "p3", ids[0], t0)
	SelectMenu(s, "p2", ids[1], t0)
	for range findMenu(s, ids[0]).Questions {
		AdvanceMenuQuestion(s, "p3", true, t0)
	}
	for range findMenu(s, ids[1]).Questions {
		AdvanceMenuQuestion(s, "p2", false, t0)
	}
	if err := FinishMenus(s, "host", t0); err != nil {
		t.Fatalf("menus finish: %v", err)
	}

	// phase4: sweet buzzes every question and is right once.
	for i := 0; i < len(s.BuzzerQuestions()); i++ {
		Buzz(s, "p4", t0)
		if err := ResolveBuzz(s, "host", i == 0, t0); err != nil {
			t.Fatalf("buzz resolve %d: %v", i, err)
		}
		if err := NextBuzzerQuestion(s, "host", t0); err != nil {
			t.Fatalf("buzz next %d: %v", i, err)
		}
	}

	// phase5: both representatives answer everything correctly.
	memoryToAnswering(t, s)
	for _, pair := range s.MemoryPairs() {
		SubmitMemoryAnswer(s, "p3", pair.Answer, t0)
		SubmitMemoryAnswer(s, "p2", pair.Answer, t0)
	}
	if err := ValidateMemoryAnswers(s, "host", nil, t0); err != nil {
		t.Fatalf("memory validate: %v", err)
	}
	if err := FinishMemoryDuel(s, "host", t0); err != nil {
		t.Fatalf("memory finish: %v", err)
	}
}

// Replaying the round history must reproduce the incrementally
// maintained team totals exactly.
func TestReplayMatchesIncrementalScores(t *testing.T) {
	s := startedSession(t)
	playFullGame(t, s)

	if s.Phase != model.PhaseVictory {
		t.Fatalf("expected victory, got %s", s.Phase)
	}
	replayed := ReplayScores(s.Rounds)
	for _, team := range model.Teams {
		if replayed[team] != s.TeamScores[team] {
			t.Fatalf("%s: replay %d != incremental %d", team, replayed[team], s.TeamScores[team])
		}
	}
	if s.TeamScores[model.TeamSpicy] == 0 || s.TeamScores[model.TeamSweet] == 0 {
		t.Fatalf("script should score both teams: %v", s.TeamScores)
	}
}

func TestExpectedTotalsFromScript(t *testing.T) {
	s := startedSession(t)
	playFullGame(t, s)

	pairs := len(s.MemoryPairs())
	menuQ := len(findMenu(s, menuIDs(s)[0]).Questions)

	wantSpicy := RapidPoints + // one rapid win by p3
		len(s.SortItems())*SortPoints + // p3 correct each item
		menuQ*MenuPoints + // full menu
		pairs*MemoryPoints
	wantSweet := 2*len(s.SortItems())*SortPoints + // p2 and p4
		BuzzerPoints + // one correct buzz
		pairs*MemoryPoints

	if got := s.TeamScores[model.TeamSpicy]; got != wantSpicy {
		t.Fatalf("spicy = %d, want %d", got, wantSpicy)
	}
	if got := s.TeamScores[model.TeamSweet]; got != wantSweet {
		t.Fatalf("sweet = %d, want %d", got, wantSweet)
	}
}
