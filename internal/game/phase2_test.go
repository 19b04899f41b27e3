package game

import (
	"testing"

	"spicysweet/internal/model"
)

func sortToReading(t *testing.T, s *model.Session) {
	t.Helper()
	if err := BeginSortReading(s, "host", t0); err != nil {
		t.Fatalf("sort reading: %v", err)
	}
}

func TestSortResolvesWhenLastAnswerLands(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase2)
	sortToReading(t, s)
	item := s.SortItems()[0]

	if err := SubmitSortAnswer(s, "p2", item.Answer, t0); err != nil {
		t.Fatalf("p2: %v", err)
	}
	if err := SubmitSortAnswer(s, "p3", item.Answer, t0); err != nil {
		t.Fatalf("p3: %v", err)
	}
	if s.Sort.Step != model.SortReading {
		t.Fatal("round resolved before all players answered")
	}
	if err := SubmitSortAnswer(s, "p4", model.SortAnswerBoth, t0); err != nil {
		t.Fatalf("p4: %v", err)
	}
	if s.Sort.Step != model.SortResult {
		t.Fatalf("last answer did not resolve the item: step=%s", s.Sort.Step)
	}

	// p2 (sweet) and p3 (spicy) were correct; p4 (sweet) only if Both is
	// the right answer for item 0.
	wantSweet := SortPoints
	if item.Answer == model.SortAnswerBoth {
		wantSweet += SortPoints
	}
	if got := s.TeamScores[model.TeamSweet]; got != wantSweet {
		t.Fatalf("sweet score = %d, want %d", got, wantSweet)
	}
	if got := s.TeamScores[model.TeamSpicy]; got != SortPoints {
		t.Fatalf("spicy score = %d, want %d", got, SortPoints)
	}
	if s.Players["p3"].Score != SortPoints {
		t.Fatalf("p3 personal score = %d", s.Players["p3"].Score)
	}
}

func TestSortCompletionProbe(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase2)
	sortToReading(t, s)
	item := s.SortItems()[0]

	if err := CheckSortCompletion(s, "host", t0); err != ErrRoundIncomplete {
		t.Fatalf("incomplete round: got %v, want ErrRoundIncomplete", err)
	}

	// A player going offline shrinks the cover set.
	SetOnline(s, "p4", false, t0)
	SubmitSortAnswer(s, "p2", item.Answer, t0)
	SubmitSortAnswer(s, "p3", item.Answer, t0)
	if s.Sort.Step != model.SortResult {
		t.Fatal("offline player still counted toward completion")
	}
	rounds := len(s.Rounds)

	// A completion check after resolution is a committed no-op.
	if err := CheckSortCompletion(s, "host", t0); err != nil {
		t.Fatalf("check after result: %v", err)
	}
	if len(s.Rounds) != rounds {
		t.Fatal("check after result appended a round")
	}
}

func TestSortRejectsDuplicateAndBogusAnswers(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase2)
	sortToReading(t, s)

	if err := SubmitSortAnswer(s, "p2", model.SortAnswer("maybe"), t0); err != ErrWrongStep {
		t.Fatalf("bogus answer: got %v", err)
	}
	if err := SubmitSortAnswer(s, "p2", model.SortAnswerA, t0); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if err := SubmitSortAnswer(s, "p2", model.SortAnswerB, t0); err != ErrAlreadyAnswered {
		t.Fatalf("duplicate answer: got %v", err)
	}
}

func TestSortSoloMode(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase2)
	for _, id := range []string{"p2", "p3", "p4"} {
		SetOnline(s, id, false, t0)
	}
	if !s.SoloMode() {
		t.Fatal("expected solo mode with only the host online")
	}
	sortToReading(t, s)
	item := s.SortItems()[0]
	if err := SubmitSortAnswer(s, "host", item.Answer, t0); err != nil {
		t.Fatalf("host answer: %v", err)
	}
	if s.Sort.Step != model.SortResult {
		t.Fatal("host answer should complete the round in solo mode")
	}
}

func TestSortItemAdvanceAndPhaseExit(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase2)
	total := len(s.SortItems())

	for i := 0; i < total; i++ {
		sortToReading(t, s)
		for _, id := range []string{"p2", "p3", "p4"} {
			if err := SubmitSortAnswer(s, id, model.SortAnswerA, t0); err != nil {
				t.Fatalf("item %d, %s: %v", i, id, err)
			}
		}
		if err := NextSortItem(s, "host", t0); err != nil {
			t.Fatalf("next after item %d: %v", i, err)
		}
	}
	if s.Phase != model.Phase3 {
		t.Fatalf("expected phase3 after last item, got %s", s.Phase)
	}
	checkSubStateInvariant(t, s)
}
