package game

import "errors"

// Precondition violations. Each one aborts the enclosing store
// transaction: nothing is written and the caller observes a rejection.
var (
	ErrWrongPhase        = errors.New("action not valid in current phase")
	ErrWrongStep         = errors.New("action not valid in current step")
	ErrNotHost           = errors.New("caller is not the session host")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrNoTeam            = errors.New("player has no team")
	ErrNotEnoughPlayers  = errors.New("need at least two players with both teams filled")
	ErrGameStarted       = errors.New("session already past lobby")
	ErrPlayerExists      = errors.New("player id already in session")
	ErrAlreadyAnswered   = errors.New("player already answered this round")
	ErrTeamBlocked       = errors.New("team is blocked for this round")
	ErrRoundIncomplete   = errors.New("round is not complete yet")
	ErrRoundResolved     = errors.New("round already resolved")
	ErrNotYourTurn       = errors.New("not this team's selection turn")
	ErrMenuTaken         = errors.New("menu already taken")
	ErrAlreadyBuzzed     = errors.New("another team holds the buzz")
	ErrNotRepresentative = errors.New("player is not the team representative")
	ErrTimerRunning      = errors.New("question timer has not expired")
	ErrNoContent         = errors.New("no content for this phase")
)

// Lock outcomes. ErrLockHeld is the expected result for every loser of
// an acquire race, not a failure; callers wait on the change feed
// instead of retrying.
var (
	ErrLockHeld     = errors.New("generation lock held by another owner")
	ErrNotLockOwner = errors.New("caller does not own the generation lock")
)
