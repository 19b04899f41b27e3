package model

import "github.com/golang-jwt/jwt/v5"

// PlayerClaims is the JWT payload binding a player to one session.
type PlayerClaims struct {
	SessionCode string `json:"sessionCode"`
	PlayerID    string `json:"playerId"`
	jwt.RegisteredClaims
}
