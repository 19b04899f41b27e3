package game

import (
	"time"

	"spicysweet/internal/model"
)

// BuzzerQuestionTime is the fixed per-question countdown, measured from
// the StartedAt stamp written when the question opens. All clients
// derive remaining time from that shared stamp, not their own clocks.
const BuzzerQuestionTime = 30 * time.Second

func newBuzzerState(questionIndex int, now time.Time) *model.BuzzerState {
	return &model.BuzzerState{
		Step:          model.BuzzerQuestioning,
		QuestionIndex: questionIndex,
		StartedAt:     now,
	}
}

// Buzz claims the current question for the caller's team. Exactly one
// team may hold the buzz: a second attempt while another team is buzzed
// aborts. Ties between near-simultaneous buzzes are settled by commit
// order against the record.
func Buzz(s *model.Session, playerID string, now time.Time) error {
	p, err := requireTeamPlayer(s, playerID)
	if err != nil {
		return err
	}
	st, err := buzzerState(s)
	if err != nil {
		return err
	}
	if st.Step == model.BuzzerBuzzed {
		return ErrAlreadyBuzzed
	}
	if st.Step != model.BuzzerQuestioning {
		return ErrWrongStep
	}
	st.Step = model.BuzzerBuzzed
	st.BuzzedTeam = p.Team
	st.BuzzedBy = playerID
	return nil
}

// ResolveBuzz is the host's verdict on the buzzed team's answer.
// Correct awards the question's points; incorrect withholds them. A
// retried resolution finds the round already resolved and aborts, so
// points are never awarded twice.
func ResolveBuzz(s *model.Session, callerID string, correct bool, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := buzzerState(s)
	if err != nil {
		return err
	}
	if st.Resolved {
		return ErrRoundResolved
	}
	if st.Step != model.BuzzerBuzzed {
		return ErrWrongStep
	}
	st.Step = model.BuzzerResult
	st.Resolved = true
	if correct {
		st.WinnerTeam = st.BuzzedTeam
		applyRound(s, buzzerRound(st.QuestionIndex, st.BuzzedTeam, now))
	} else {
		applyRound(s, buzzerRound(st.QuestionIndex, model.TeamUnassigned, now))
	}
	return nil
}

// TimeoutBuzzer force-resolves a question nobody buzzed on. It only
// goes through once the shared countdown has actually elapsed.
func TimeoutBuzzer(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := buzzerState(s)
	if err != nil {
		return err
	}
	if st.Resolved {
		return ErrRoundResolved
	}
	if st.Step != model.BuzzerQuestioning {
		return ErrWrongStep
	}
	if now.Before(st.StartedAt.Add(BuzzerQuestionTime)) {
		return ErrTimerRunning
	}
	st.Step = model.BuzzerResult
	st.Resolved = true
	applyRound(s, buzzerRound(st.QuestionIndex, model.TeamUnassigned, now))
	return nil
}

// NextBuzzerQuestion advances to the next question, or into phase5 when
// the list is exhausted.
func NextBuzzerQuestion(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := buzzerState(s)
	if err != nil {
		return err
	}
	if st.Step != model.BuzzerResult {
		return ErrWrongStep
	}
	if st.QuestionIndex+1 < len(s.BuzzerQuestions()) {
		s.Buzzer = newBuzzerState(st.QuestionIndex+1, now)
		return nil
	}
	enterPhase(s, model.Phase5, now)
	return nil
}

func buzzerState(s *model.Session) (*model.BuzzerState, error) {
	if s.Phase != model.Phase4 || s.Buzzer == nil {
		return nil, ErrWrongPhase
	}
	return s.Buzzer, nil
}
