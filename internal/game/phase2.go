package game

import (
	"time"

	"spicysweet/internal/model"
)

func newSortState(itemIndex int) *model.SortState {
	return &model.SortState{
		Step:      model.SortIdle,
		ItemIndex: itemIndex,
		Answers:   make(map[string]model.SortAnswer),
	}
}

// BeginSortReading shows the current item and opens it for answers.
func BeginSortReading(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := sortState(s)
	if err != nil {
		return err
	}
	if st.Step != model.SortIdle {
		return ErrWrongStep
	}
	st.Step = model.SortReading
	st.StartedAt = now
	return nil
}

// SubmitSortAnswer records one classification for the current item.
// Every online non-host player submits exactly once; completion is
// evaluated inside this same transaction so the record advances the
// moment the last answer commits.
func SubmitSortAnswer(s *model.Session, playerID string, answer model.SortAnswer, now time.Time) error {
	if _, err := requireTeamPlayer(s, playerID); err != nil {
		return err
	}
	st, err := sortState(s)
	if err != nil {
		return err
	}
	if st.Step != model.SortReading {
		return ErrWrongStep
	}
	if _, dup := st.Answers[playerID]; dup {
		return ErrAlreadyAnswered
	}
	switch answer {
	case model.SortAnswerA, model.SortAnswerB, model.SortAnswerBoth:
	default:
		return ErrWrongStep
	}
	st.Answers[playerID] = answer

	if sortRoundComplete(s, st) {
		resolveSortItem(s, st, now)
	}
	return nil
}

// CheckSortCompletion is the host-side completion probe. It is
// idempotent: re-evaluating after the round already advanced is a no-op,
// and an incomplete round aborts without changes.
func CheckSortCompletion(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := sortState(s)
	if err != nil {
		return err
	}
	if st.Step == model.SortResult {
		return nil
	}
	if st.Step != model.SortReading {
		return ErrWrongStep
	}
	if !sortRoundComplete(s, st) {
		return ErrRoundIncomplete
	}
	resolveSortItem(s, st, now)
	return nil
}

// NextSortItem advances to the next item, or into phase3 when the item
// list is exhausted.
func NextSortItem(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := sortState(s)
	if err != nil {
		return err
	}
	if st.Step != model.SortResult {
		return ErrWrongStep
	}
	if st.ItemIndex+1 < len(s.SortItems()) {
		s.Sort = newSortState(st.ItemIndex + 1)
		return nil
	}
	enterPhase(s, model.Phase3, now)
	return nil
}

// sortRoundComplete reports whether submissions cover every online
// non-host player; in solo mode the host's own answer completes the
// round.
func sortRoundComplete(s *model.Session, st *model.SortState) bool {
	if s.SoloMode() {
		_, ok := st.Answers[s.HostID]
		return ok
	}
	for id, p := range s.Players {
		if id == s.HostID || !p.IsOnline || !p.Team.Playable() {
			continue
		}
		if _, ok := st.Answers[id]; !ok {
			return false
		}
	}
	return true
}

func resolveSortItem(s *model.Session, st *model.SortState, now time.Time) {
	if st.Resolved {
		return
	}
	items := s.SortItems()
	if st.ItemIndex >= len(items) {
		return
	}
	st.Step = model.SortResult
	st.Resolved = true
	applyRound(s, sortRound(s, st, items[st.ItemIndex], now))
}

func sortState(s *model.Session) (*model.SortState, error) {
	if s.Phase != model.Phase2 || s.Sort == nil {
		return nil, ErrWrongPhase
	}
	return s.Sort, nil
}
