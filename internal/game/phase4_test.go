package game

import (
	"testing"
	"time"

	"spicysweet/internal/model"
)

func TestBuzzerLockout(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase4)

	if err := Buzz(s, "p2", t0); err != nil {
		t.Fatalf("first buzz: %v", err)
	}
	if s.Buzzer.BuzzedTeam != model.TeamSweet || s.Buzzer.BuzzedBy != "p2" {
		t.Fatalf("buzz recorded wrong: team=%s by=%s", s.Buzzer.BuzzedTeam, s.Buzzer.BuzzedBy)
	}
	// Anyone else, either team, is locked out.
	if err := Buzz(s, "p3", t0); err != ErrAlreadyBuzzed {
		t.Fatalf("second buzz: got %v", err)
	}
	if err := Buzz(s, "p4", t0); err != ErrAlreadyBuzzed {
		t.Fatalf("teammate buzz: got %v", err)
	}
}

func TestBuzzerResolveIdempotent(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase4)
	Buzz(s, "p2", t0)

	if err := ResolveBuzz(s, "host", true, t0); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := s.TeamScores[model.TeamSweet]; got != BuzzerPoints {
		t.Fatalf("sweet score = %d, want %d", got, BuzzerPoints)
	}
	// A retried resolution must not award again.
	if err := ResolveBuzz(s, "host", true, t0); err != ErrRoundResolved {
		t.Fatalf("double resolve: got %v", err)
	}
	if got := s.TeamScores[model.TeamSweet]; got != BuzzerPoints {
		t.Fatalf("double resolve changed score: %d", got)
	}
	if len(s.Rounds) != 1 {
		t.Fatalf("round recorded %d times", len(s.Rounds))
	}
}

func TestBuzzerIncorrectWithholdsPoints(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase4)
	Buzz(s, "p3", t0)

	if err := ResolveBuzz(s, "host", false, t0); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.TeamScores[model.TeamSpicy] != 0 || s.TeamScores[model.TeamSweet] != 0 {
		t.Fatalf("incorrect answer scored: %v", s.TeamScores)
	}
	if s.Buzzer.WinnerTeam != "" {
		t.Fatalf("incorrect answer set a winner: %s", s.Buzzer.WinnerTeam)
	}
}

func TestBuzzerTimeout(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase4)

	early := s.Buzzer.StartedAt.Add(BuzzerQuestionTime - time.Second)
	if err := TimeoutBuzzer(s, "host", early); err != ErrTimerRunning {
		t.Fatalf("timeout before countdown: got %v", err)
	}
	late := s.Buzzer.StartedAt.Add(BuzzerQuestionTime)
	if err := TimeoutBuzzer(s, "host", late); err != nil {
		t.Fatalf("timeout after countdown: %v", err)
	}
	if s.Buzzer.Step != model.BuzzerResult {
		t.Fatalf("timeout did not resolve: step=%s", s.Buzzer.Step)
	}
	// Timing out a buzzed question is never valid.
	if err := TimeoutBuzzer(s, "host", late); err != ErrRoundResolved {
		t.Fatalf("re-timeout: got %v", err)
	}
}

func TestBuzzerQuestionAdvanceAndPhaseExit(t *testing.T) {
	s := startedSession(t)
	mustAdvance(t, s, model.Phase4)
	total := len(s.BuzzerQuestions())

	for i := 0; i < total; i++ {
		if err := Buzz(s, "p2", t0); err != nil {
			t.Fatalf("buzz q%d: %v", i, err)
		}
		if err := ResolveBuzz(s, "host", false, t0); err != nil {
			t.Fatalf("resolve q%d: %v", i, err)
		}
		if err := NextBuzzerQuestion(s, "host", t0); err != nil {
			t.Fatalf("next after q%d: %v", i, err)
		}
		if i+1 < total && s.Buzzer.QuestionIndex != i+1 {
			t.Fatalf("expected question %d, got %d", i+1, s.Buzzer.QuestionIndex)
		}
	}
	if s.Phase != model.Phase5 {
		t.Fatalf("expected phase5 after last question, got %s", s.Phase)
	}
	checkSubStateInvariant(t, s)
}
