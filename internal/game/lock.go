package game

import (
	"time"

	"spicysweet/internal/model"
)

// AcquireLock takes the generation lock inside a transaction. A lock
// that is absent or past its expiry is free; a stale lock is reclaimed
// here by the next acquirer rather than swept. A held, unexpired lock
// owned by someone else aborts with ErrLockHeld, the expected outcome
// for every loser of the race, to be answered by waiting on the
// IsGenerating broadcast, not by retrying.
func AcquireLock(s *model.Session, ownerID, purpose string, now time.Time) error {
	if _, err := requirePlayer(s, ownerID); err != nil {
		return err
	}
	if s.GenerationLock.Held(now) && s.GenerationLock.OwnerID != ownerID {
		return ErrLockHeld
	}
	s.GenerationLock = &model.Lock{
		OwnerID:    ownerID,
		AcquiredAt: now,
		ExpiresAt:  now.Add(model.LockTTL),
		Purpose:    purpose,
	}
	s.IsGenerating = true
	return nil
}

// ReleaseLock clears the lock if the caller owns it. Releasing a lock
// held by a newer owner aborts, so a straggler whose lock expired and
// was taken over cannot release on the new owner's behalf.
func ReleaseLock(s *model.Session, ownerID string) error {
	if s.GenerationLock == nil {
		return nil
	}
	if s.GenerationLock.OwnerID != ownerID {
		return ErrNotLockOwner
	}
	s.GenerationLock = nil
	s.IsGenerating = false
	return nil
}

// ExtendLock pushes the expiry forward for long generation jobs.
// Owner-only; an expired lock can no longer be extended.
func ExtendLock(s *model.Session, ownerID string, now time.Time) error {
	if !s.GenerationLock.Held(now) || s.GenerationLock.OwnerID != ownerID {
		return ErrNotLockOwner
	}
	s.GenerationLock.ExpiresAt = now.Add(model.LockTTL)
	return nil
}

// ForceClearLock unconditionally drops the lock. Session teardown only;
// it bypasses ownership on purpose.
func ForceClearLock(s *model.Session) {
	s.GenerationLock = nil
	s.IsGenerating = false
}
