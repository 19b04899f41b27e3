package model

import "time"

// Phase is the top-level lifecycle stage of a session.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	Phase1       Phase = "phase1"
	Phase2       Phase = "phase2"
	Phase3       Phase = "phase3"
	Phase4       Phase = "phase4"
	Phase5       Phase = "phase5"
	PhaseVictory Phase = "victory"
)

// Session is the single shared record for one game, keyed by code.
// Exactly one of the sub-state pointers is non-nil and it always matches
// Phase; every transition replaces both in the same transaction.
type Session struct {
	Code    string             `json:"code" bson:"code"`
	HostID  string             `json:"hostId" bson:"hostId"`
	Players map[string]*Player `json:"players" bson:"players"`
	Phase   Phase              `json:"phase" bson:"phase"`

	Lobby   *LobbyState   `json:"lobby,omitempty" bson:"lobby,omitempty"`
	Rapid   *RapidState   `json:"phase1State,omitempty" bson:"phase1State,omitempty"`
	Sort    *SortState    `json:"phase2State,omitempty" bson:"phase2State,omitempty"`
	Menus   *MenuState    `json:"phase3State,omitempty" bson:"phase3State,omitempty"`
	Buzzer  *BuzzerState  `json:"phase4State,omitempty" bson:"phase4State,omitempty"`
	Memory  *MemoryState  `json:"phase5State,omitempty" bson:"phase5State,omitempty"`
	Victory *VictoryState `json:"victoryState,omitempty" bson:"victoryState,omitempty"`

	// Content is the built-in question material resolved at creation time.
	// CustomContent holds AI-generated per-phase overrides; a phase absent
	// from it falls back to Content.
	Content       *ContentSet `json:"content" bson:"content"`
	CustomContent *ContentSet `json:"customContent,omitempty" bson:"customContent,omitempty"`

	GenerationLock *Lock `json:"generationLock,omitempty" bson:"generationLock,omitempty"`
	IsGenerating   bool  `json:"isGenerating" bson:"isGenerating"`

	TeamScores map[Team]int  `json:"teamScores" bson:"teamScores"`
	Rounds     []RoundResult `json:"rounds" bson:"rounds"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// OnlineCount returns how many players are currently connected.
func (s *Session) OnlineCount() int {
	n := 0
	for _, p := range s.Players {
		if p.IsOnline {
			n++
		}
	}
	return n
}

// TeamCount returns how many players are assigned to the given team.
func (s *Session) TeamCount(team Team) int {
	n := 0
	for _, p := range s.Players {
		if p.Team == team {
			n++
		}
	}
	return n
}

// SoloMode reports whether the host is the only player online.
func (s *Session) SoloMode() bool {
	for id, p := range s.Players {
		if id != s.HostID && p.IsOnline {
			return false
		}
	}
	return true
}

// RapidQuestions returns phase1 material, preferring generated content.
func (s *Session) RapidQuestions() []ChoiceQuestion {
	if s.CustomContent != nil && len(s.CustomContent.Rapid) > 0 {
		return s.CustomContent.Rapid
	}
	if s.Content == nil {
		return nil
	}
	return s.Content.Rapid
}

func (s *Session) SortItems() []SortItem {
	if s.CustomContent != nil && len(s.CustomContent.Sort) > 0 {
		return s.CustomContent.Sort
	}
	if s.Content == nil {
		return nil
	}
	return s.Content.Sort
}

func (s *Session) ThemeMenus() []ThemeMenu {
	if s.CustomContent != nil && len(s.CustomContent.Menus) > 0 {
		return s.CustomContent.Menus
	}
	if s.Content == nil {
		return nil
	}
	return s.Content.Menus
}

func (s *Session) BuzzerQuestions() []OpenQuestion {
	if s.CustomContent != nil && len(s.CustomContent.Buzzer) > 0 {
		return s.CustomContent.Buzzer
	}
	if s.Content == nil {
		return nil
	}
	return s.Content.Buzzer
}

func (s *Session) MemoryPairs() []MemoryPair {
	if s.CustomContent != nil && len(s.CustomContent.Memory) > 0 {
		return s.CustomContent.Memory
	}
	if s.Content == nil {
		return nil
	}
	return s.Content.Memory
}
