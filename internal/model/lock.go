package model

import "time"

// LockTTL is how long a generation lock is valid before any other
// acquirer may reclaim it. Expired locks are not swept; they are lazily
// taken over by the next acquire transaction.
const LockTTL = 2 * time.Minute

// Lock is the generation mutex stored alongside the session record.
type Lock struct {
	OwnerID    string    `json:"ownerId" bson:"ownerId"`
	AcquiredAt time.Time `json:"acquiredAt" bson:"acquiredAt"`
	ExpiresAt  time.Time `json:"expiresAt" bson:"expiresAt"`
	Purpose    string    `json:"purpose" bson:"purpose"`
}

// Held reports whether the lock is still valid at the given instant.
func (l *Lock) Held(now time.Time) bool {
	return l != nil && now.Before(l.ExpiresAt)
}
