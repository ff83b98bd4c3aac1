package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Status is the session state.
type Status int

const (
	StatusAnonymous Status = iota
	StatusAuthenticating
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// AuthClient is the part of the API client the session needs.
type AuthClient interface {
	SetToken(token string)
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password, name string) error
	Me(ctx context.Context) (*models.User, error)
}

// CredentialStore persists the bearer credential between runs.
type CredentialStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type SessionOption func(*SessionService)

// WithRollbackOnProfileFailure controls what Login does when the credential
// exchange succeeds but the profile cannot be resolved. When enabled (the
// default) the previous credential and profile are restored, in memory and in
// storage. When disabled the new credential stays live and persisted with no
// profile.
func WithRollbackOnProfileFailure(enabled bool) SessionOption {
	return func(s *SessionService) { s.rollback = enabled }
}

// WithClock sets the time source used to check credential expiry.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionService) { s.now = now }
}

// SessionService owns the bearer credential and the current user profile.
type SessionService struct {
	client AuthClient
	creds  CredentialStore
	logger logging.Logger

	rollback bool
	now      func() time.Time

	mu      sync.RWMutex
	token   string
	user    *models.User
	pending int
	errMsg  string

	// applying is the credential a login is still resolving; rejections of
	// it are handled by the login itself.
	applying string
}

func NewSessionService(c AuthClient, creds CredentialStore, logger logging.Logger, opts ...SessionOption) *SessionService {
	s := &SessionService{
		client:   c,
		creds:    creds,
		logger:   logger.With("module", "session"),
		rollback: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsAuthenticated reports whether a credential is present.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current profile, or nil.
func (s *SessionService) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionService) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.pending > 0:
		return StatusAuthenticating
	case s.token != "":
		return StatusAuthenticated
	default:
		return StatusAnonymous
	}
}

func (s *SessionService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

// Error returns the display message of the last failed login, registration
// or profile fetch.
func (s *SessionService) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *SessionService) begin() {
	s.mu.Lock()
	s.pending++
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *SessionService) end() {
	s.mu.Lock()
	s.pending--
	s.mu.Unlock()
}

func (s *SessionService) fail(err error, fallback string) {
	s.mu.Lock()
	s.errMsg = ErrorMessage(err, fallback)
	s.mu.Unlock()
}

// Restore re-establishes the session persisted by a previous run. Any
// failure leaves the session anonymous with no persisted credential; Restore
// itself never fails.
func (s *SessionService) Restore(ctx context.Context) {
	token, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "cannot read persisted credential", "error", err)
		return
	}
	if token == "" {
		return
	}

	if expired, at := tokenExpiry(token, s.now()); expired {
		s.logger.Info(ctx, "persisted credential expired, discarding", "expired_at", at)
		s.discard(ctx, token, true)
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = nil
	s.pending++
	s.mu.Unlock()
	s.client.SetToken(token)

	user, err := s.client.Me(ctx)
	s.end()
	if err != nil {
		s.logger.Info(ctx, "persisted credential rejected, discarding", "error", err)
		s.discard(ctx, token, false)
		return
	}

	s.mu.Lock()
	if s.token == token {
		s.user = user
	}
	s.mu.Unlock()
	s.logger.Info(ctx, "session restored", "user_id", user.ID)
}

// discard clears the session if token is still the live credential. force
// also clears storage when no credential was ever applied in memory.
func (s *SessionService) discard(ctx context.Context, token string, force bool) {
	s.mu.Lock()
	live := s.token == token
	if live {
		s.token = ""
		s.user = nil
	}
	s.mu.Unlock()

	if !live && !force {
		return
	}
	if live {
		s.client.SetToken("")
	}
	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Warn(ctx, "cannot clear persisted credential", "error", err)
	}
}

// Login exchanges email and password for a credential, persists it and
// resolves the profile.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	s.begin()
	defer s.end()

	if err := s.login(ctx, email, password); err != nil {
		s.fail(err, MsgLoginFailed)
		return err
	}
	return nil
}

// Register creates an account and then logs in with the same credentials.
// Both steps report under one error; a registration that succeeded is not
// undone when the login fails.
func (s *SessionService) Register(ctx context.Context, email, password, name string) error {
	s.begin()
	defer s.end()

	if err := s.client.Register(ctx, email, password, name); err != nil {
		s.fail(err, MsgRegisterFailed)
		return fmt.Errorf("register: %w", err)
	}

	if err := s.login(ctx, email, password); err != nil {
		s.fail(err, MsgRegisterFailed)
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (s *SessionService) login(ctx context.Context, email, password string) error {
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	prevToken, prevUser := s.token, s.user
	s.token = token
	s.user = nil
	s.applying = token
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		if s.applying == token {
			s.applying = ""
		}
		s.mu.Unlock()
	}()

	s.client.SetToken(token)
	if err := s.creds.Save(ctx, token); err != nil {
		s.logger.Warn(ctx, "cannot persist credential", "error", err)
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		if s.rollback {
			s.revert(ctx, token, prevToken, prevUser)
		}
		return fmt.Errorf("login: fetch profile: %w", err)
	}

	s.mu.Lock()
	if s.token == token {
		s.user = user
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "logged in", "user_id", user.ID)
	return nil
}

// revert puts back the session that was live before token was applied,
// unless something else has replaced token in the meantime.
func (s *SessionService) revert(ctx context.Context, token, prevToken string, prevUser *models.User) {
	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return
	}
	s.token = prevToken
	s.user = prevUser
	s.mu.Unlock()

	s.client.SetToken(prevToken)
	if err := s.creds.Save(ctx, prevToken); err != nil {
		s.logger.Warn(ctx, "cannot restore persisted credential", "error", err)
	}
	s.logger.Info(ctx, "profile unavailable, previous session restored")
}

// FetchProfile re-resolves the profile of the live credential. On failure
// the profile is cleared and the error returned.
func (s *SessionService) FetchProfile(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	s.begin()
	defer s.end()

	user, err := s.client.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if s.token == token {
			s.user = nil
		}
		s.errMsg = ErrorMessage(err, MsgProfileFailed)
		return fmt.Errorf("fetch profile: %w", err)
	}
	if s.token == token {
		s.user = user
	}
	return nil
}

// Logout ends the session: credential, profile, persisted credential and
// transport header are all cleared. It makes no network call and never
// fails.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.client.SetToken("")
	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Warn(ctx, "cannot clear persisted credential", "error", err)
	}
}

// Invalidate logs out after the server rejected token. A rejection of a
// credential that is no longer live, or that a login is still resolving, is
// ignored.
func (s *SessionService) Invalidate(ctx context.Context, token string) {
	s.mu.RLock()
	live := token != "" && s.token == token && s.applying != token
	s.mu.RUnlock()
	if !live {
		return
	}

	s.logger.Info(ctx, "credential rejected by server, logging out")
	s.discard(ctx, token, false)
}

// tokenExpiry peeks at the exp claim of a JWT credential without verifying
// it. Opaque credentials are never considered expired.
func tokenExpiry(token string, now time.Time) (bool, time.Time) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false, time.Time{}
	}
	if claims.ExpiresAt == nil {
		return false, time.Time{}
	}
	return !claims.ExpiresAt.After(now), claims.ExpiresAt.Time
}
