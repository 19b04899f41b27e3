package game

import (
	"time"

	"spicysweet/internal/model"
)

// NewSession builds a fresh session record in lobby with its host
// already joined. Content is the built-in set resolved by the caller.
func NewSession(code string, host *model.Player, content *model.ContentSet, now time.Time) *model.Session {
	host.IsOnline = true
	host.JoinedAt = now
	host.LastSeenAt = now
	if host.Team == "" {
		host.Team = model.TeamUnassigned
	}
	return &model.Session{
		Code:       code,
		HostID:     host.ID,
		Players:    map[string]*model.Player{host.ID: host},
		Phase:      model.PhaseLobby,
		Lobby:      &model.LobbyState{CreatedAt: now},
		Content:    content,
		TeamScores: map[model.Team]int{model.TeamSpicy: 0, model.TeamSweet: 0},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Join adds a new player. Fresh joins only happen in the lobby; anyone
// arriving later without a cached id becomes a spectator at the
// transport layer and never writes.
func Join(s *model.Session, p *model.Player, now time.Time) error {
	if s.Phase != model.PhaseLobby {
		return ErrGameStarted
	}
	if _, ok := s.Players[p.ID]; ok {
		return ErrPlayerExists
	}
	p.IsOnline = true
	p.JoinedAt = now
	p.LastSeenAt = now
	if p.Team == "" {
		p.Team = model.TeamUnassigned
	}
	s.Players[p.ID] = p
	return nil
}

// Rejoin marks a returning player online again. A rejoining client whose
// id still equals HostID resumes as host; there is no automatic
// promotion of anyone else.
func Rejoin(s *model.Session, playerID string, now time.Time) error {
	p, err := requirePlayer(s, playerID)
	if err != nil {
		return err
	}
	p.IsOnline = true
	p.LastSeenAt = now
	return nil
}

// SetOnline flips the presence flag. The disconnect path runs through
// here when the player's connection drops; the player record itself is
// never deleted so team and score survive reconnection.
func SetOnline(s *model.Session, playerID string, online bool, now time.Time) error {
	p, err := requirePlayer(s, playerID)
	if err != nil {
		return err
	}
	p.IsOnline = online
	p.LastSeenAt = now
	return nil
}

// SetTeam assigns a player to a team while still in the lobby.
func SetTeam(s *model.Session, playerID string, team model.Team) error {
	if s.Phase != model.PhaseLobby {
		return ErrGameStarted
	}
	p, err := requirePlayer(s, playerID)
	if err != nil {
		return err
	}
	if !team.Playable() && team != model.TeamUnassigned {
		return ErrNoTeam
	}
	p.Team = team
	return nil
}

// UpdateProfile changes display attributes. Only the owning player may
// do this, by convention enforced here.
func UpdateProfile(s *model.Session, playerID, name, avatar string) error {
	p, err := requirePlayer(s, playerID)
	if err != nil {
		return err
	}
	if name != "" {
		p.Name = name
	}
	if avatar != "" {
		p.Avatar = avatar
	}
	return nil
}
