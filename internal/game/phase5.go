package game

import (
	"time"

	"spicysweet/internal/model"
)

// MemorizeDwell is how long each Q/A pair stays on screen during the
// memorizing step, measured from the shared MemorizeStarted stamp.
const MemorizeDwell = 10 * time.Second

func newMemoryState() *model.MemoryState {
	return &model.MemoryState{
		Step:            model.MemoryIdle,
		Representatives: make(map[model.Team]string),
		Answers:         make(map[model.Team][]string),
	}
}

// BeginMemorySelection opens representative election.
func BeginMemorySelection(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := memoryState(s)
	if err != nil {
		return err
	}
	if st.Step != model.MemoryIdle {
		return ErrWrongStep
	}
	st.Step = model.MemorySelecting
	return nil
}

// ClaimRepresentative elects the caller as their team's representative.
// Exactly one per team; the first claim to commit wins and later claims
// from the same team abort. Everyone else spectates for the phase.
func ClaimRepresentative(s *model.Session, playerID string, now time.Time) error {
	p, err := requireTeamPlayer(s, playerID)
	if err != nil {
		return err
	}
	st, err := memoryState(s)
	if err != nil {
		return err
	}
	if st.Step != model.MemorySelecting {
		return ErrWrongStep
	}
	if _, taken := st.Representatives[p.Team]; taken {
		return ErrNotYourTurn
	}
	st.Representatives[p.Team] = playerID
	return nil
}

// StartMemorizing begins the dwell sequence once both teams have a
// representative.
func StartMemorizing(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := memoryState(s)
	if err != nil {
		return err
	}
	if st.Step != model.MemorySelecting {
		return ErrWrongStep
	}
	if len(st.Representatives) < len(model.Teams) {
		return ErrRoundIncomplete
	}
	if len(s.MemoryPairs()) == 0 {
		return ErrNoContent
	}
	st.Step = model.MemoryMemorizing
	st.PairIndex = 0
	st.MemorizeStarted = now
	return nil
}

// AdvanceMemorizePair shows the next pair, or moves into blind
// answering when the list is exhausted. Host or timer driven.
func AdvanceMemorizePair(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := memoryState(s)
	if err != nil {
		return err
	}
	if st.Step != model.MemoryMemorizing {
		return ErrWrongStep
	}
	if st.PairIndex+1 < len(s.MemoryPairs()) {
		st.PairIndex++
		st.MemorizeStarted = now
		return nil
	}
	st.Step = model.MemoryAnswering
	st.PairIndex = 0
	return nil
}

// SubmitMemoryAnswer appends the representative's next blind answer, in
// order, without the questions being shown again. When both teams have
// answered every pair the phase moves to validating.
func SubmitMemoryAnswer(s *model.Session, playerID, answer string, now time.Time) error {
	p, err := requireTeamPlayer(s, playerID)
	if err != nil {
		return err
	}
	st, err := memoryState(s)
	if err != nil {
		return err
	}
	if st.Step != model.MemoryAnswering {
		return ErrWrongStep
	}
	if st.Representatives[p.Team] != playerID {
		return ErrNotRepresentative
	}
	total := len(s.MemoryPairs())
	if len(st.Answers[p.Team]) >= total {
		return ErrAlreadyAnswered
	}
	st.Answers[p.Team] = append(st.Answers[p.Team], answer)

	for _, team := range model.Teams {
		if len(st.Answers[team]) < total {
			return nil
		}
	}
	st.Step = model.MemoryValidating
	return nil
}

// ValidateMemoryAnswers grades both teams' answers and converts them to
// scores. When grades is nil the built-in fuzzy matcher grades each
// answer against its pair; a caller that graded semantically outside
// the transaction passes the result in instead. Idempotent via the
// Resolved flag.
func ValidateMemoryAnswers(s *model.Session, callerID string, grades map[model.Team][]bool, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := memoryState(s)
	if err != nil {
		return err
	}
	if st.Resolved {
		return ErrRoundResolved
	}
	if st.Step != model.MemoryValidating {
		return ErrWrongStep
	}

	pairs := s.MemoryPairs()
	if grades == nil {
		grades = make(map[model.Team][]bool, len(model.Teams))
		for _, team := range model.Teams {
			results := make([]bool, len(pairs))
			for i, answer := range st.Answers[team] {
				if i < len(pairs) {
					results[i] = AnswerMatches(answer, pairs[i].Answer)
				}
			}
			grades[team] = results
		}
	}

	st.Grades = grades
	st.Step = model.MemoryResult
	st.Resolved = true
	applyRound(s, memoryRound(grades, now))
	return nil
}

// FinishMemoryDuel closes phase5 and enters victory with the final
// standings.
func FinishMemoryDuel(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := memoryState(s)
	if err != nil {
		return err
	}
	if st.Step != model.MemoryResult {
		return ErrWrongStep
	}
	enterPhase(s, model.PhaseVictory, now)
	return nil
}

func memoryState(s *model.Session) (*model.MemoryState, error) {
	if s.Phase != model.Phase5 || s.Memory == nil {
		return nil, ErrWrongPhase
	}
	return s.Memory, nil
}
