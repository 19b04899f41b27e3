package game

import (
	"time"

	"spicysweet/internal/model"
)

func newMenuState() *model.MenuState {
	return &model.MenuState{
		Step:           model.MenuSelecting,
		SelectionOrder: []model.Team{model.TeamSpicy, model.TeamSweet},
		TakenMenus:     make(map[string]model.Team),
		Progress:       make(map[model.Team]*model.MenuProgress),
		Resolved:       make(map[model.Team]bool),
	}
}

// SelectMenu claims a theme for the caller's team. Teams pick in the
// fixed selection order; a menu already taken by either team aborts.
// Once both teams hold a menu the phase moves to playing.
func SelectMenu(s *model.Session, playerID, menuID string, now time.Time) error {
	p, err := requireTeamPlayer(s, playerID)
	if err != nil {
		return err
	}
	st, err := menuState(s)
	if err != nil {
		return err
	}
	if st.Step != model.MenuSelecting {
		return ErrWrongStep
	}
	turn := st.SelectionOrder[st.PickTurn%len(st.SelectionOrder)]
	if p.Team != turn {
		return ErrNotYourTurn
	}
	menu := findMenu(s, menuID)
	if menu == nil {
		return ErrNoContent
	}
	if _, taken := st.TakenMenus[menuID]; taken {
		return ErrMenuTaken
	}

	st.TakenMenus[menuID] = p.Team
	st.Progress[p.Team] = &model.MenuProgress{MenuID: menuID}
	st.PickTurn++

	if st.Progress[model.TeamSpicy] != nil && st.Progress[model.TeamSweet] != nil {
		st.Step = model.MenuPlaying
	}
	return nil
}

// AdvanceMenuQuestion moves the caller's team one question forward in
// its own menu, independent of the other team's progress. When the menu
// runs out the team's tally resolves once; the phase finishes only when
// both teams are done, whichever order they get there in.
func AdvanceMenuQuestion(s *model.Session, playerID string, correct bool, now time.Time) error {
	p, err := requireTeamPlayer(s, playerID)
	if err != nil {
		return err
	}
	st, err := menuState(s)
	if err != nil {
		return err
	}
	if st.Step != model.MenuPlaying {
		return ErrWrongStep
	}
	progress := st.Progress[p.Team]
	if progress == nil || progress.Done {
		return ErrRoundResolved
	}
	menu := findMenu(s, progress.MenuID)
	if menu == nil {
		return ErrNoContent
	}

	if correct {
		progress.Correct++
	}
	progress.QuestionIndex++

	if progress.QuestionIndex >= len(menu.Questions) {
		progress.Done = true
		if !st.Resolved[p.Team] {
			st.Resolved[p.Team] = true
			applyRound(s, menuRound(p.Team, progress, now))
		}
	}

	if bothMenusDone(st) {
		st.Step = model.MenuFinished
	}
	return nil
}

// FinishMenus moves a finished phase3 into phase4. Host-driven.
func FinishMenus(s *model.Session, callerID string, now time.Time) error {
	if err := requireHost(s, callerID); err != nil {
		return err
	}
	st, err := menuState(s)
	if err != nil {
		return err
	}
	if st.Step != model.MenuFinished {
		return ErrWrongStep
	}
	enterPhase(s, model.Phase4, now)
	return nil
}

func bothMenusDone(st *model.MenuState) bool {
	for _, team := range []model.Team{model.TeamSpicy, model.TeamSweet} {
		p := st.Progress[team]
		if p == nil || !p.Done {
			return false
		}
	}
	return true
}

func findMenu(s *model.Session, menuID string) *model.ThemeMenu {
	for i := range s.ThemeMenus() {
		if s.ThemeMenus()[i].ID == menuID {
			m := s.ThemeMenus()[i]
			return &m
		}
	}
	return nil
}

func menuState(s *model.Session) (*model.MenuState, error) {
	if s.Phase != model.Phase3 || s.Menus == nil {
		return nil, ErrWrongPhase
	}
	return s.Menus, nil
}
