package game

import (
	"time"

	"spicysweet/internal/model"
)

// Fixed point values per phase.
const (
	RapidPoints  = 10
	SortPoints   = 10
	MenuPoints   = 15
	BuzzerPoints = 15
	MemoryPoints = 20
)

// applyRound appends a resolved round to the session history and applies
// its team deltas incrementally. Callers guarantee idempotence by
// checking the sub-state's Resolved flag before calling; applyRound
// itself never decides whether a round may resolve.
func applyRound(s *model.Session, r model.RoundResult) {
	if s.TeamScores == nil {
		s.TeamScores = make(map[model.Team]int)
	}
	for team, pts := range r.Points {
		s.TeamScores[team] += pts
	}
	if r.WinnerID != "" {
		if p, ok := s.Players[r.WinnerID]; ok {
			p.Score += r.Points[p.Team]
		}
	}
	s.Rounds = append(s.Rounds, r)
}

// ReplayScores recomputes team totals from the round history. For any
// session, the result must equal the incrementally maintained
// TeamScores.
func ReplayScores(rounds []model.RoundResult) map[model.Team]int {
	totals := make(map[model.Team]int)
	for _, r := range rounds {
		for team, pts := range r.Points {
			totals[team] += pts
		}
	}
	return totals
}

func rapidRound(index int, winnerID string, winnerTeam model.Team, now time.Time) model.RoundResult {
	r := model.RoundResult{
		Phase:      model.Phase1,
		Index:      index,
		ResolvedAt: now,
		Points:     map[model.Team]int{},
	}
	if winnerTeam.Playable() {
		r.WinnerID = winnerID
		r.WinnerTeam = winnerTeam
		r.Points[winnerTeam] = RapidPoints
	}
	return r
}

// sortRound awards each team the per-item points once per correct
// submission by one of its players.
func sortRound(s *model.Session, st *model.SortState, item model.SortItem, now time.Time) model.RoundResult {
	r := model.RoundResult{
		Phase:      model.Phase2,
		Index:      st.ItemIndex,
		ResolvedAt: now,
		Points:     map[model.Team]int{},
	}
	for playerID, answer := range st.Answers {
		p, ok := s.Players[playerID]
		if !ok || !p.Team.Playable() {
			continue
		}
		if answer == item.Answer {
			r.Points[p.Team] += SortPoints
			p.Score += SortPoints
		}
	}
	return r
}

func menuRound(team model.Team, progress *model.MenuProgress, now time.Time) model.RoundResult {
	return model.RoundResult{
		Phase:      model.Phase3,
		Index:      progress.QuestionIndex,
		WinnerTeam: team,
		ResolvedAt: now,
		Points:     map[model.Team]int{team: progress.Correct * MenuPoints},
	}
}

func buzzerRound(index int, winner model.Team, now time.Time) model.RoundResult {
	r := model.RoundResult{
		Phase:      model.Phase4,
		Index:      index,
		ResolvedAt: now,
		Points:     map[model.Team]int{},
	}
	if winner.Playable() {
		r.WinnerTeam = winner
		r.Points[winner] = BuzzerPoints
	}
	return r
}

func memoryRound(grades map[model.Team][]bool, now time.Time) model.RoundResult {
	r := model.RoundResult{
		Phase:      model.Phase5,
		ResolvedAt: now,
		Points:     map[model.Team]int{},
	}
	for team, results := range grades {
		correct := 0
		for _, ok := range results {
			if ok {
				correct++
			}
		}
		r.Points[team] = correct * MemoryPoints
	}
	return r
}
