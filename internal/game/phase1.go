package game

import (
	"time"

	"spicysweet/internal/model"
)

func newRapidState(questionIndex int) *model.RapidState {
	return &model.RapidState{
		Step:          model.RapidIdle,
		QuestionIndex: questionIndex,
		Answers:       make(map[string]int),
		BlockedTeams:  make(map[model.Team]bool),
	}
}

// BeginRapidReading shows the current question. Host-driven.
func BeginRapidReading(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := rapidState(s)
	if err != nil {
		return err
	}
	if st.Step != model.RapidIdle {
		return ErrWrongStep
	}
	st.Step = model.RapidReading
	return nil
}

// BeginRapidAnswering opens the current question for submissions and
// stamps the shared countdown start.
func BeginRapidAnswering(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := rapidState(s)
	if err != nil {
		return err
	}
	if st.Step != model.RapidReading {
		return ErrWrongStep
	}
	st.Step = model.RapidAnswering
	st.StartedAt = now
	return nil
}

// SubmitRapidAnswer records one submission for the current question.
// "First correct wins" is decided by the order in which submissions
// commit against the record, which is a total order per session; client
// clocks play no part. An incorrect submission blocks the player's team
// for the rest of the round without ending it.
func SubmitRapidAnswer(s *model.Session, playerID string, choice int, now time.Time) error {
	p, err := requireTeamPlayer(s, playerID)
	if err != nil {
		return err
	}
	st, err := rapidState(s)
	if err != nil {
		return err
	}
	if st.Step != model.RapidAnswering {
		return ErrWrongStep
	}
	if _, dup := st.Answers[playerID]; dup {
		return ErrAlreadyAnswered
	}
	if st.BlockedTeams[p.Team] {
		return ErrTeamBlocked
	}

	questions := s.RapidQuestions()
	if st.QuestionIndex >= len(questions) {
		return ErrNoContent
	}
	q := questions[st.QuestionIndex]
	st.Answers[playerID] = choice

	if choice == q.CorrectIndex {
		st.WinnerID = playerID
		st.WinnerTeam = p.Team
		st.Step = model.RapidResult
		st.Resolved = true
		applyRound(s, rapidRound(st.QuestionIndex, playerID, p.Team, now))
		return nil
	}

	st.BlockedTeams[p.Team] = true
	if st.BlockedTeams[model.TeamSpicy] && st.BlockedTeams[model.TeamSweet] {
		st.Step = model.RapidResult
		st.Resolved = true
		applyRound(s, rapidRound(st.QuestionIndex, "", model.TeamUnassigned, now))
	}
	return nil
}

// ResolveRapidRound is the host's force-resolution when no correct
// answer arrives: the round ends with no winner. Re-resolving an
// already resolved round aborts so points are never double counted.
func ResolveRapidRound(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := rapidState(s)
	if err != nil {
		return err
	}
	if st.Resolved {
		return ErrRoundResolved
	}
	if st.Step != model.RapidAnswering {
		return ErrWrongStep
	}
	st.Step = model.RapidResult
	st.Resolved = true
	applyRound(s, rapidRound(st.QuestionIndex, "", model.TeamUnassigned, now))
	return nil
}

// NextRapidQuestion advances to the next question, or into phase2 when
// the question list is exhausted.
func NextRapidQuestion(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := rapidState(s)
	if err != nil {
		return err
	}
	if st.Step != model.RapidResult {
		return ErrWrongStep
	}
	if st.QuestionIndex+1 < len(s.RapidQuestions()) {
		s.Rapid = newRapidState(st.QuestionIndex + 1)
		return nil
	}
	enterPhase(s, model.Phase2, now)
	return nil
}

func rapidState(s *model.Session) (*model.RapidState, error) {
	if s.Phase != model.Phase1 || s.Rapid == nil {
		return nil, ErrWrongPhase
	}
	return s.Rapid, nil
}
