package model

import "time"

// LobbyState is the sub-state while players join and pick teams.
type LobbyState struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// RapidStep is the sub-state of a phase1 round.
type RapidStep string

const (
	RapidIdle      RapidStep = "idle"
	RapidReading   RapidStep = "reading"
	RapidAnswering RapidStep = "answering"
	RapidResult    RapidStep = "result"
)

// RapidState drives phase1: rapid multiple choice, first correct
// submission wins the round for its team. Answers holds the current
// question's submissions only and is cleared on advance.
type RapidState struct {
	Step          RapidStep      `json:"step" bson:"step"`
	QuestionIndex int            `json:"questionIndex" bson:"questionIndex"`
	Answers       map[string]int `json:"answers" bson:"answers"`
	BlockedTeams  map[Team]bool  `json:"blockedTeams" bson:"blockedTeams"`
	WinnerID      string         `json:"winnerId,omitempty" bson:"winnerId,omitempty"`
	WinnerTeam    Team           `json:"winnerTeam,omitempty" bson:"winnerTeam,omitempty"`
	Resolved      bool           `json:"resolved" bson:"resolved"`
	StartedAt     time.Time      `json:"startedAt" bson:"startedAt"`
}

// SortAnswer is a phase2 classification choice.
type SortAnswer string

const (
	SortAnswerA    SortAnswer = "A"
	SortAnswerB    SortAnswer = "B"
	SortAnswerBoth SortAnswer = "both"
)

// SortStep is the sub-state of a phase2 item.
type SortStep string

const (
	SortIdle    SortStep = "idle"
	SortReading SortStep = "reading"
	SortResult  SortStep = "result"
)

// SortState drives phase2: every online non-host player classifies the
// current item; the round completes when submissions cover all of them.
type SortState struct {
	Step      SortStep              `json:"step" bson:"step"`
	ItemIndex int                   `json:"itemIndex" bson:"itemIndex"`
	Answers   map[string]SortAnswer `json:"answers" bson:"answers"`
	Resolved  bool                  `json:"resolved" bson:"resolved"`
	StartedAt time.Time             `json:"startedAt" bson:"startedAt"`
}

// MenuStep is the sub-state of phase3.
type MenuStep string

const (
	MenuSelecting MenuStep = "selecting"
	MenuPlaying   MenuStep = "playing"
	MenuFinished  MenuStep = "finished"
)

// MenuProgress tracks one team's run through its chosen theme menu.
type MenuProgress struct {
	MenuID        string `json:"menuId" bson:"menuId"`
	QuestionIndex int    `json:"questionIndex" bson:"questionIndex"`
	Correct       int    `json:"correct" bson:"correct"`
	Done          bool   `json:"done" bson:"done"`
}

// MenuState drives phase3: teams alternately pick a theme, then answer
// their own menu's questions independently. Finished is reached only
// when both progress records report Done.
type MenuState struct {
	Step           MenuStep               `json:"step" bson:"step"`
	SelectionOrder []Team                 `json:"selectionOrder" bson:"selectionOrder"`
	PickTurn       int                    `json:"pickTurn" bson:"pickTurn"`
	TakenMenus     map[string]Team        `json:"takenMenus" bson:"takenMenus"`
	Progress       map[Team]*MenuProgress `json:"progress" bson:"progress"`
	Resolved       map[Team]bool          `json:"resolvedTeams" bson:"resolvedTeams"`
}

// BuzzerStep is the sub-state of a phase4 question.
type BuzzerStep string

const (
	BuzzerQuestioning BuzzerStep = "questioning"
	BuzzerBuzzed      BuzzerStep = "buzzed"
	BuzzerResult      BuzzerStep = "result"
)

// BuzzerState drives phase4: first team to buzz locks out the other;
// the host resolves correct/incorrect. At most one team holds the buzz.
type BuzzerState struct {
	Step          BuzzerStep `json:"step" bson:"step"`
	QuestionIndex int        `json:"questionIndex" bson:"questionIndex"`
	BuzzedTeam    Team       `json:"buzzedTeam,omitempty" bson:"buzzedTeam,omitempty"`
	BuzzedBy      string     `json:"buzzedBy,omitempty" bson:"buzzedBy,omitempty"`
	WinnerTeam    Team       `json:"winnerTeam,omitempty" bson:"winnerTeam,omitempty"`
	Resolved      bool       `json:"resolved" bson:"resolved"`
	StartedAt     time.Time  `json:"startedAt" bson:"startedAt"`
}

// MemoryStep is the sub-state of phase5.
type MemoryStep string

const (
	MemoryIdle       MemoryStep = "idle"
	MemorySelecting  MemoryStep = "selecting"
	MemoryMemorizing MemoryStep = "memorizing"
	MemoryAnswering  MemoryStep = "answering"
	MemoryValidating MemoryStep = "validating"
	MemoryResult     MemoryStep = "result"
)

// MemoryState drives phase5: each team elects one representative, both
// view the Q/A pairs for a fixed dwell each, then answer blind in order.
// Non-representatives are read-only spectators.
type MemoryState struct {
	Step            MemoryStep        `json:"step" bson:"step"`
	Representatives map[Team]string   `json:"representatives" bson:"representatives"`
	PairIndex       int               `json:"pairIndex" bson:"pairIndex"`
	MemorizeStarted time.Time         `json:"memorizeStartedAt" bson:"memorizeStartedAt"`
	Answers         map[Team][]string `json:"answers" bson:"answers"`
	Grades          map[Team][]bool   `json:"grades,omitempty" bson:"grades,omitempty"`
	Resolved        bool              `json:"resolved" bson:"resolved"`
}

// VictoryState is the terminal sub-state with final standings.
type VictoryState struct {
	WinnerTeam Team         `json:"winnerTeam" bson:"winnerTeam"`
	Tie        bool         `json:"tie" bson:"tie"`
	Scores     map[Team]int `json:"scores" bson:"scores"`
	FinishedAt time.Time    `json:"finishedAt" bson:"finishedAt"`
}
