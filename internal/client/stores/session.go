// Package stores holds the two pieces of client-owned mutable state: the
// authentication session and the shopping cart. Both are singletons scoped to
// the running client, rehydrated from the on-device database at startup and
// written back on every mutation. All mutation entry points go through these
// types; nothing else touches the persisted state.
package stores

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pantrypal/pantrypal/internal/client/api"
	"github.com/pantrypal/pantrypal/internal/client/repositories/metadata"
	"github.com/pantrypal/pantrypal/internal/common"
	"github.com/pantrypal/pantrypal/internal/dbx"
	"github.com/pantrypal/pantrypal/internal/logging"
)

// AccountAPI is the slice of the backend gateway the session store needs.
// *api.Client satisfies it.
type AccountAPI interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	Register(ctx context.Context, email, password, username string) error
	UpdateProfile(ctx context.Context, userID int64, update api.ProfileUpdate) error
}

// SessionState is a snapshot of the session.
//
// IsAuthenticated is true whenever a token is held and not past its expiry,
// even if UserID is unknown: some backend versions omit user_id from the
// login response and the client has always treated such sessions as logged
// in. Operations that must address a user-scoped endpoint fail separately
// when UserID is nil.
type SessionState struct {
	IsAuthenticated bool
	UserID          *int64
	Token           string
	TokenExpiration *time.Time
}

// SessionStore owns the authentication state: login, logout, registration,
// profile updates, and the expiry watchdog that forces a logout the moment
// the token's lifetime runs out.
type SessionStore struct {
	api    AccountAPI
	db     *sql.DB
	tokens *api.TokenHolder
	log    logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	token    string
	userID   *int64
	tokenExp *time.Time
	watchdog *time.Timer
}

type SessionOption func(*SessionStore)

func WithSessionLogger(l logging.Logger) SessionOption {
	return func(s *SessionStore) { s.log = l }
}

// WithSessionClock overrides the time source (tests).
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) { s.now = now }
}

// NewSessionStore builds the session store. tokens is the holder the HTTP
// gateway reads bearer tokens from; the store publishes every token change
// into it. It may be nil in tests that do not exercise the gateway.
func NewSessionStore(accountAPI AccountAPI, db *sql.DB, tokens *api.TokenHolder, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		api:    accountAPI,
		db:     db,
		tokens: tokens,
		log:    logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore rehydrates the session from local storage. A persisted session
// whose expiry has already passed is discarded immediately; otherwise the
// watchdog is armed for the remaining lifetime.
func (s *SessionStore) Restore(ctx context.Context) error {
	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, metadata.KeyAuthToken)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if len(token) == 0 {
		return nil
	}

	var userID *int64
	if raw, err := repo.Get(ctx, metadata.KeyAuthUserID); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	} else if len(raw) > 0 {
		if id, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			userID = &id
		}
	}

	var tokenExp *time.Time
	if raw, err := repo.Get(ctx, metadata.KeyTokenExpiration); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	} else if len(raw) > 0 {
		if millis, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			t := time.UnixMilli(millis)
			tokenExp = &t
		}
	}

	if tokenExp != nil && !s.now().Before(*tokenExp) {
		s.log.Info(ctx, "persisted session already expired, logging out")
		return s.Logout(ctx)
	}

	s.mu.Lock()
	s.token = string(token)
	s.userID = userID
	s.tokenExp = tokenExp
	s.armWatchdogLocked()
	s.mu.Unlock()

	s.publishToken(string(token))
	s.log.Info(ctx, "session restored", "has_user_id", userID != nil, "expires", tokenExp != nil)
	return nil
}

// Login authenticates against the backend and persists the new session. The
// token's expiry is read from its JWT exp claim when present; a token
// without a decodable claim is treated as non-expiring and no watchdog is
// armed. Concurrent logins are not deduplicated; the last response wins.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	tokenExp := decodeTokenExpiration(result.Token)
	if err := s.persist(ctx, result.Token, result.UserID, tokenExp); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = result.Token
	s.userID = result.UserID
	s.tokenExp = tokenExp
	s.armWatchdogLocked()
	s.mu.Unlock()

	s.publishToken(result.Token)
	s.log.Info(ctx, "logged in", "has_user_id", result.UserID != nil, "expires", tokenExp != nil)
	return nil
}

// Logout clears the persisted session and resets the state to anonymous.
// Idempotent: logging out an anonymous session is a no-op.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.watchdog != nil {
		s.watchdog.Stop()
		s.watchdog = nil
	}
	s.token = ""
	s.userID = nil
	s.tokenExp = nil
	s.mu.Unlock()

	s.publishToken("")

	repo := metadata.NewSQLiteRepository(s.db)
	if err := repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

// Register creates an account. It does not log the new user in; the caller
// follows up with Login.
func (s *SessionStore) Register(ctx context.Context, email, password, username string) error {
	return s.api.Register(ctx, email, password, username)
}

// UpdateProfile patches a subset of {username, email, password}. Requires an
// authenticated session with a known user id, since the endpoint is
// addressed by ?user_id=.
func (s *SessionStore) UpdateProfile(ctx context.Context, update api.ProfileUpdate) error {
	s.mu.Lock()
	token, userID := s.token, s.userID
	s.mu.Unlock()

	if token == "" || userID == nil {
		return common.ErrNotAuthenticated
	}
	return s.api.UpdateProfile(ctx, *userID, update)
}

// State returns a snapshot of the session.
func (s *SessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SessionState{Token: s.token}
	if s.userID != nil {
		id := *s.userID
		state.UserID = &id
	}
	if s.tokenExp != nil {
		t := *s.tokenExp
		state.TokenExpiration = &t
	}
	state.IsAuthenticated = s.token != "" && (s.tokenExp == nil || s.now().Before(*s.tokenExp))
	return state
}

// IsAuthenticated reports whether a live token is held.
func (s *SessionStore) IsAuthenticated() bool {
	return s.State().IsAuthenticated
}

// UserID returns the authenticated user's id, or false when unknown.
func (s *SessionStore) UserID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == nil {
		return 0, false
	}
	return *s.userID, true
}

// Close stops the watchdog without touching persisted state.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watchdog != nil {
		s.watchdog.Stop()
		s.watchdog = nil
	}
}

// persist writes the session fields to local storage in one transaction
// (write-through; the in-memory state only changes after this succeeds).
func (s *SessionStore) persist(ctx context.Context, token string, userID *int64, tokenExp *time.Time) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyAuthToken, []byte(token)); err != nil {
			return err
		}
		if userID != nil {
			if err := repo.Set(ctx, metadata.KeyAuthUserID, []byte(strconv.FormatInt(*userID, 10))); err != nil {
				return err
			}
		} else if err := repo.Delete(ctx, metadata.KeyAuthUserID); err != nil {
			return err
		}
		if tokenExp != nil {
			return repo.Set(ctx, metadata.KeyTokenExpiration, []byte(strconv.FormatInt(tokenExp.UnixMilli(), 10)))
		}
		return repo.Delete(ctx, metadata.KeyTokenExpiration)
	})
	if err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// armWatchdogLocked (re)arms the expiry timer for the current token. Any
// previous timer is stopped first so a stale timer can never log out a newer
// session. Callers hold s.mu.
func (s *SessionStore) armWatchdogLocked() {
	if s.watchdog != nil {
		s.watchdog.Stop()
		s.watchdog = nil
	}
	if s.tokenExp == nil {
		return
	}
	delay := s.tokenExp.Sub(s.now())
	if delay < 0 {
		delay = 0
	}
	s.watchdog = time.AfterFunc(delay, s.expire)
}

// expire runs when the watchdog fires: the token's lifetime is over, so the
// session is forcibly logged out.
func (s *SessionStore) expire() {
	ctx := context.Background()
	s.log.Info(ctx, "session token expired, logging out")
	if err := s.Logout(ctx); err != nil {
		s.log.Error(ctx, "failed to clear expired session", "err", err)
	}
}

func (s *SessionStore) publishToken(token string) {
	if s.tokens != nil {
		s.tokens.Set(token)
	}
}

// decodeTokenExpiration extracts the exp claim from a JWT without verifying
// its signature (the client has no key material; expiry is advisory for UX).
// Returns nil when the token is not a JWT or carries no exp claim.
func decodeTokenExpiration(token string) *time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time
	return &t
}
