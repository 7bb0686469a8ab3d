package session

import (
	"context"
	"encoding/json"
	"sync"

	"yalah/internal/models"
	"yalah/internal/observability"
)

// Session is the current identity plus credential pair. The zero value is
// logged out. User, AccessToken and RefreshToken are either all set or all
// empty; partial states are never exposed.
type Session struct {
	User         *models.UserProfile
	AccessToken  string
	RefreshToken string
}

// LoggedIn reports whether the session carries an identity.
func (s Session) LoggedIn() bool {
	return s.User != nil
}

// Store owns the session and mirrors every mutation to a Vault. Construct
// one per process with NewStore; everything else observes it.
type Store struct {
	mu          sync.RWMutex
	current     Session
	vault       Vault
	subscribers []func(Session)
	logger      *observability.SessionLogger
}

// NewStore creates a Store and restores any persisted session. Restore runs
// exactly once, here; a missing or corrupt vault entry leaves the store
// logged out, never partially populated.
func NewStore(ctx context.Context, vault Vault) *Store {
	s := &Store{
		vault:  vault,
		logger: observability.NewSessionLogger(),
	}
	s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) {
	userJSON, err := s.vault.Get(ctx, KeyUser)
	if err != nil {
		s.logger.LogRestoreSkipped("no stored user")
		return
	}
	access, err := s.vault.Get(ctx, KeyAccessToken)
	if err != nil {
		s.logger.LogRestoreSkipped("no stored access token")
		return
	}
	refresh, err := s.vault.Get(ctx, KeyRefreshToken)
	if err != nil {
		s.logger.LogRestoreSkipped("no stored refresh token")
		return
	}

	var user models.UserProfile
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		// Corrupt identity invalidates the whole persisted session.
		s.clearVault(ctx)
		s.logger.LogRestoreSkipped("stored user is not valid JSON")
		return
	}

	s.current = Session{User: &user, AccessToken: access, RefreshToken: refresh}
	s.logger.LogLogin(user.ID, user.Username, "restore")

	// There is no refresh flow. An expired token stays in place and requests
	// made with it fail with UNAUTHORIZED until the user logs in again.
	if TokenExpired(access) {
		s.logger.LogTokenExpired(user.ID)
	}
}

// Login replaces the session with the given identity and tokens and persists
// all three entries. The caller is trusted; token shape is not validated.
func (s *Store) Login(ctx context.Context, user models.UserProfile, tokens models.Tokens) error {
	s.mu.Lock()
	s.current = Session{
		User:         &user,
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
	}
	snapshot := s.current
	s.mu.Unlock()

	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.vault.Set(ctx, KeyUser, string(userJSON)); err != nil {
		return err
	}
	if err := s.vault.Set(ctx, KeyAccessToken, tokens.Access); err != nil {
		return err
	}
	if err := s.vault.Set(ctx, KeyRefreshToken, tokens.Refresh); err != nil {
		return err
	}

	s.logger.LogLogin(user.ID, user.Username, "login")
	s.notify(snapshot)
	return nil
}

// Logout clears the session and removes the persisted entries. Calling it
// while logged out is a no-op side-effect-wise.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	wasLoggedIn := s.current.LoggedIn()
	var userID uint
	if wasLoggedIn {
		userID = s.current.User.ID
	}
	s.current = Session{}
	s.mu.Unlock()

	s.clearVault(ctx)

	if wasLoggedIn {
		s.logger.LogLogout(userID)
		s.notify(Session{})
	}
	return nil
}

func (s *Store) clearVault(ctx context.Context) {
	_ = s.vault.Delete(ctx, KeyUser)
	_ = s.vault.Delete(ctx, KeyAccessToken)
	_ = s.vault.Delete(ctx, KeyRefreshToken)
}

// Current returns a snapshot of the session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// AccessToken returns the bearer credential, or "" when logged out.
// Satisfies api.TokenSource.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.AccessToken
}

// UserID returns the viewer id and whether a session exists.
func (s *Store) UserID() (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.current.LoggedIn() {
		return 0, false
	}
	return s.current.User.ID, true
}

// Subscribe registers a callback invoked after every login and logout.
// Callbacks run synchronously on the mutating goroutine.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(snapshot Session) {
	s.mu.RLock()
	subs := make([]func(Session), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}
