package model

import "time"

// RoundResult is one resolved round, appended to the session history.
// Team totals must be derivable either incrementally (applied as each
// round resolves) or by replaying this history; the two must agree.
type RoundResult struct {
	Phase      Phase        `json:"phase" bson:"phase"`
	Index      int          `json:"index" bson:"index"`
	WinnerTeam Team         `json:"winnerTeam,omitempty" bson:"winnerTeam,omitempty"`
	WinnerID   string       `json:"winnerId,omitempty" bson:"winnerId,omitempty"`
	Points     map[Team]int `json:"points" bson:"points"`
	ResolvedAt time.Time    `json:"resolvedAt" bson:"resolvedAt"`
}
