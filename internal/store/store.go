package store

import (
	"context"
	"errors"

	"spicysweet/internal/model"
)

var (
	// ErrNotFound means no session record exists for the code.
	ErrNotFound = errors.New("session not found")
	// ErrExists means Create was called for a code already in use.
	ErrExists = errors.New("session already exists")
	// ErrConflict means a transaction kept losing races past the retry
	// budget. The store retries conflicting writes itself; callers only
	// see this under pathological contention.
	ErrConflict = errors.New("transaction conflict")
)

// TxFunc mutates the session in place. Returning a non-nil error aborts
// the transaction: nothing is written and the error is handed back to
// the caller unchanged. The function may run more than once when a
// concurrent commit invalidates its read, so it must derive everything
// from the session it is given, never from caller-held state.
type TxFunc func(s *model.Session) error

// OnChange receives the committed session snapshot after every write.
type OnChange func(s *model.Session)

// SessionStore is the shared state store contract: point reads,
// optimistic read-modify-write transactions serialized per record, and
// push subscriptions notified on every committed change.
type SessionStore interface {
	Create(ctx context.Context, s *model.Session) error
	Read(ctx context.Context, code string) (*model.Session, error)
	Transact(ctx context.Context, code string, fn TxFunc) (*model.Session, error)
	Subscribe(ctx context.Context, code string, onChange OnChange) (func(), error)
	Delete(ctx context.Context, code string) error
}
