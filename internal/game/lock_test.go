package game

import (
	"testing"
	"time"

	"spicysweet/internal/model"
)

func TestAcquireLockBlocksWhileHeld(t *testing.T) {
	s := newTestSession(t)

	if err := AcquireLock(s, "host", "phase1", t0); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !s.IsGenerating {
		t.Fatal("IsGenerating not set")
	}
	if s.GenerationLock.ExpiresAt != t0.Add(model.LockTTL) {
		t.Fatalf("wrong expiry: %v", s.GenerationLock.ExpiresAt)
	}
	if err := AcquireLock(s, "p2", "phase2", t0.Add(time.Minute)); err != ErrLockHeld {
		t.Fatalf("second acquire: got %v", err)
	}
	// The owner may re-acquire its own lock.
	if err := AcquireLock(s, "host", "phase2", t0.Add(time.Minute)); err != nil {
		t.Fatalf("owner re-acquire: %v", err)
	}
}

func TestAcquireLockReclaimsExpired(t *testing.T) {
	s := newTestSession(t)
	AcquireLock(s, "host", "phase1", t0)

	// Nothing sweeps the lock; the next acquirer past the TTL takes it.
	later := t0.Add(model.LockTTL)
	if err := AcquireLock(s, "p2", "phase3", later); err != nil {
		t.Fatalf("reclaim after expiry: %v", err)
	}
	if s.GenerationLock.OwnerID != "p2" {
		t.Fatalf("lock not transferred, owner=%s", s.GenerationLock.OwnerID)
	}

	// The original owner's release now aborts instead of clearing p2's
	// lock.
	if err := ReleaseLock(s, "host"); err != ErrNotLockOwner {
		t.Fatalf("stale release: got %v", err)
	}
	if s.GenerationLock == nil {
		t.Fatal("stale release cleared the new owner's lock")
	}
}

func TestReleaseLock(t *testing.T) {
	s := newTestSession(t)

	// Releasing an absent lock commits as a no-op.
	if err := ReleaseLock(s, "host"); err != nil {
		t.Fatalf("release unheld: %v", err)
	}

	AcquireLock(s, "host", "phase1", t0)
	if err := ReleaseLock(s, "p2"); err != ErrNotLockOwner {
		t.Fatalf("non-owner release: got %v", err)
	}
	if err := ReleaseLock(s, "host"); err != nil {
		t.Fatalf("owner release: %v", err)
	}
	if s.GenerationLock != nil || s.IsGenerating {
		t.Fatal("release left lock state behind")
	}
}

func TestExtendLock(t *testing.T) {
	s := newTestSession(t)
	AcquireLock(s, "host", "phase5", t0)

	mid := t0.Add(time.Minute)
	if err := ExtendLock(s, "p2", mid); err != ErrNotLockOwner {
		t.Fatalf("non-owner extend: got %v", err)
	}
	if err := ExtendLock(s, "host", mid); err != nil {
		t.Fatalf("owner extend: %v", err)
	}
	if s.GenerationLock.ExpiresAt != mid.Add(model.LockTTL) {
		t.Fatalf("expiry not pushed: %v", s.GenerationLock.ExpiresAt)
	}
	// An expired lock cannot be extended, only re-acquired.
	past := mid.Add(model.LockTTL)
	if err := ExtendLock(s, "host", past); err != ErrNotLockOwner {
		t.Fatalf("expired extend: got %v", err)
	}
}

func TestForceClearLock(t *testing.T) {
	s := newTestSession(t)
	AcquireLock(s, "host", "phase1", t0)
	ForceClearLock(s)
	if s.GenerationLock != nil || s.IsGenerating {
		t.Fatal("force clear left lock state behind")
	}
}
