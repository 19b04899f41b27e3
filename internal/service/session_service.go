package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"spicysweet/internal/game"
	"spicysweet/internal/model"
	"spicysweet/internal/repository"
	"spicysweet/internal/store"
)

// SessionService exposes every named game operation as a store
// transaction. Each method validates against the record as it exists at
// commit time, never against the caller's cached view, and returns the
// committed snapshot. Observers learn of changes through the store's
// subscription, not through these return values.
type SessionService struct {
	store       store.SessionStore
	contentRepo repository.ContentRepo
	archiveRepo repository.ArchiveRepo
	authSvc     *AuthService
}

// NewSessionService creates a new session service
func NewSessionService(
	st store.SessionStore,
	contentRepo repository.ContentRepo,
	archiveRepo repository.ArchiveRepo,
	authSvc *AuthService,
) *SessionService {
	return &SessionService{
		store:       st,
		contentRepo: contentRepo,
		archiveRepo: archiveRepo,
		authSvc:     authSvc,
	}
}

// CreateSession allocates a code, builds the lobby record with the
// creator as host, and persists it.
func (s *SessionService) CreateSession(ctx context.Context, hostName, avatar string) (*model.PlayerJoinResponse, error) {
	content := s.resolveContent(ctx)

	host := &model.Player{
		ID:     uuid.New().String(),
		Name:   hostName,
		Avatar: avatar,
		Team:   model.TeamUnassigned,
	}

	for attempts := 0; attempts < 10; attempts++ {
		code, err := generateSessionCode()
		if err != nil {
			return nil, err
		}
		sess := game.NewSession(code, host, content, time.Now().UTC())
		err = s.store.Create(ctx, sess)
		if err == store.ErrExists {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		token, err := s.authSvc.GeneratePlayerToken(code, host.ID)
		if err != nil {
			return nil, err
		}
		return &model.PlayerJoinResponse{PlayerID: host.ID, Token: token, Session: sess}, nil
	}
	return nil, fmt.Errorf("failed to generate unique session code")
}

// Get returns the current session record.
func (s *SessionService) Get(ctx context.Context, code string) (*model.Session, error) {
	return s.store.Read(ctx, code)
}

// Archived returns the permanent record of a torn-down session, or nil
// when nothing was archived under the code.
func (s *SessionService) Archived(ctx context.Context, code string) (*repository.ArchivedSession, error) {
	if s.archiveRepo == nil {
		return nil, nil
	}
	return s.archiveRepo.GetByCode(ctx, code)
}

// Join adds a new player to a lobby and hands back their token.
func (s *SessionService) Join(ctx context.Context, code, name, avatar string) (*model.PlayerJoinResponse, error) {
	p := &model.Player{
		ID:     uuid.New().String(),
		Name:   name,
		Avatar: avatar,
		Team:   model.TeamUnassigned,
	}
	sess, err := s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.Join(sess, p, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	token, err := s.authSvc.GeneratePlayerToken(code, p.ID)
	if err != nil {
		return nil, err
	}
	return &model.PlayerJoinResponse{PlayerID: p.ID, Token: token, Session: sess}, nil
}

// Rejoin resumes a player with a cached id; if the id still equals the
// record's hostId the client resumes as host. A client whose id cannot
// be resolved gets nothing back and falls to a read-only spectator view.
func (s *SessionService) Rejoin(ctx context.Context, code, playerID string) (*model.PlayerJoinResponse, error) {
	sess, err := s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.Rejoin(sess, playerID, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	token, err := s.authSvc.GeneratePlayerToken(code, playerID)
	if err != nil {
		return nil, err
	}
	return &model.PlayerJoinResponse{PlayerID: playerID, Token: token, Session: sess}, nil
}

func (s *SessionService) SetOnline(ctx context.Context, code, playerID string, online bool) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.SetOnline(sess, playerID, online, time.Now().UTC())
	})
}

func (s *SessionService) SetTeam(ctx context.Context, code, playerID string, team model.Team) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.SetTeam(sess, playerID, team)
	})
}

func (s *SessionService) UpdateProfile(ctx context.Context, code, playerID, name, avatar string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.UpdateProfile(sess, playerID, name, avatar)
	})
}

func (s *SessionService) StartGame(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.StartGame(sess, callerID, time.Now().UTC())
	})
}

func (s *SessionService) ForceAdvance(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.ForceAdvance(sess, callerID, time.Now().UTC())
	})
}

// Phase 1 operations.

func (s *SessionService) BeginRapidReading(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.BeginRapidReading(sess, callerID, time.Now().UTC())
	})
}

func (s *SessionService) BeginRapidAnswering(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.BeginRapidAnswering(sess, callerID, time.Now().UTC())
	})
}

func (s *SessionService) SubmitRapidAnswer(ctx context.Context, code, playerID string, choice int) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.SubmitRapidAnswer(sess, playerID, choice, time.Now().UTC())
	})
}

func (s *SessionService) ResolveRapidRound(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.ResolveRapidRound(sess, callerID, time.Now().UTC())
	})
}

func (s *SessionService) NextRapidQuestion(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.NextRapidQuestion(sess, callerID, time.Now().UTC())
	})
}

// Phase 2 operations.

func (s *SessionService) BeginSortReading(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.BeginSortReading(sess, callerID, time.Now().UTC())
	})
}

func (s *SessionService) SubmitSortAnswer(ctx context.Context, code, playerID string, answer model.SortAnswer) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.SubmitSortAnswer(sess, playerID, answer, time.Now().UTC())
	})
}

func (s *SessionService) CheckSortCompletion(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.CheckSortCompletion(sess, callerID, time.Now().UTC())
	})
}

func (s *SessionService) NextSortItem(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.NextSortItem(sess, callerID, time.Now().UTC())
	})
}

// Phase 3 operations.

func (s *SessionService) SelectMenu(ctx context.Context, code, playerID, menuID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.SelectMenu(sess, playerID, menuID, time.Now().UTC())
	})
}

func (s *SessionService) AdvanceMenuQuestion(ctx context.Context, code, playerID string, correct bool) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.AdvanceMenuQuestion(sess, playerID, correct, time.Now().UTC())
	})
}

func (s *SessionService) FinishMenus(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.FinishMenus(sess, callerID, time.Now().UTC())
	})
}

// Phase 4 operations.

func (s *SessionService) Buzz(ctx context.Context, code, playerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.Buzz(sess, playerID, time.Now().UTC())
	})
}

func (s *SessionService) ResolveBuzz(ctx context.Context, code, callerID string, correct bool) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.ResolveBuzz(sess, callerID, correct, time.Now().UTC())
	})
}

func (s *SessionService) TimeoutBuzzer(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.TimeoutBuzzer(sess, callerID, time.Now().UTC())
	})
}

func (s *SessionService) NextBuzzerQuestion(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.NextBuzzerQuestion(sess, callerID, time.Now().UTC())
	})
}

// Phase 5 operations.

func (s *SessionService) BeginMemorySelection(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.BeginMemorySelection(sess, callerID, time.Now().UTC())
	})
}

func (s *SessionService) ClaimRepresentative(ctx context.Context, code, playerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.ClaimRepresentative(sess, playerID, time.Now().UTC())
	})
}

func (s *SessionService) StartMemorizing(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.StartMemorizing(sess, callerID, time.Now().UTC())
	})
}

func (s *SessionService) AdvanceMemorizePair(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.AdvanceMemorizePair(sess, callerID, time.Now().UTC())
	})
}

func (s *SessionService) SubmitMemoryAnswer(ctx context.Context, code, playerID, answer string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.SubmitMemoryAnswer(sess, playerID, answer, time.Now().UTC())
	})
}

func (s *SessionService) ValidateMemoryAnswers(ctx context.Context, code, callerID string, grades map[model.Team][]bool) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.ValidateMemoryAnswers(sess, callerID, grades, time.Now().UTC())
	})
}

func (s *SessionService) FinishMemoryDuel(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.FinishMemoryDuel(sess, callerID, time.Now().UTC())
	})
}

// Subscribe proxies the store's change feed.
func (s *SessionService) Subscribe(ctx context.Context, code string, onChange store.OnChange) (func(), error) {
	return s.store.Subscribe(ctx, code, onChange)
}

// Teardown archives a session and deletes the live record. The lock is
// force-cleared first so a crashed generator cannot block cleanup.
func (s *SessionService) Teardown(ctx context.Context, code, callerID string) error {
	sess, err := s.store.Transact(ctx, code, func(sess *model.Session) error {
		if callerID != sess.HostID {
			return game.ErrNotHost
		}
		game.ForceClearLock(sess)
		return nil
	})
	if err != nil {
		return err
	}
	if s.archiveRepo != nil {
		if err := s.archiveRepo.Archive(ctx, sess); err != nil {
			log.Printf("[session] failed to archive %s: %v", code, err)
		}
	}
	return s.store.Delete(ctx, code)
}

// resolveContent prefers the seeded builtin set from Mongo and falls
// back to the embedded defaults when the database has none.
func (s *SessionService) resolveContent(ctx context.Context) *model.ContentSet {
	if s.contentRepo != nil {
		set, err := s.contentRepo.GetByName(ctx, "builtin")
		if err != nil {
			log.Printf("[session] content lookup failed, using embedded defaults: %v", err)
		} else if set != nil {
			return set
		}
	}
	return game.DefaultContent()
}

// generateSessionCode creates a 6-char alphanumeric code
func generateSessionCode() (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLen = 6

	b := make([]byte, codeLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	code := make([]byte, codeLen)
	for i := range code {
		code[i] = chars[int(b[i])%len(chars)]
	}
	return string(code), nil
}
