package model

import "time"

// Team is one of the two sides of a session.
type Team string

const (
	TeamSpicy      Team = "spicy"
	TeamSweet      Team = "sweet"
	TeamUnassigned Team = "unassigned"
)

// Teams lists the two playable teams in a fixed order.
var Teams = []Team{TeamSpicy, TeamSweet}

// Opponent returns the other playable team.
func (t Team) Opponent() Team {
	switch t {
	case TeamSpicy:
		return TeamSweet
	case TeamSweet:
		return TeamSpicy
	}
	return TeamUnassigned
}

// Playable reports whether the team is one of the two real sides.
func (t Team) Playable() bool {
	return t == TeamSpicy || t == TeamSweet
}

// Player is a participant in a session. Players are never deleted on
// disconnect; IsOnline is flipped instead so team and score survive a
// reconnection.
type Player struct {
	ID         string    `json:"id" bson:"id"`
	Name       string    `json:"name" bson:"name"`
	Avatar     string    `json:"avatar" bson:"avatar"`
	Team       Team      `json:"team" bson:"team"`
	IsOnline   bool      `json:"isOnline" bson:"isOnline"`
	Score      int       `json:"score" bson:"score"`
	JoinedAt   time.Time `json:"joinedAt" bson:"joinedAt"`
	LastSeenAt time.Time `json:"lastSeenAt" bson:"lastSeenAt"`
}

// PlayerJoinResponse is returned when a player joins or rejoins a session.
type PlayerJoinResponse struct {
	PlayerID string   `json:"playerId"`
	Token    string   `json:"token"`
	Session  *Session `json:"session"`
}
