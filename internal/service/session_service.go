package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"medidesk/internal/audit"
	"medidesk/internal/auth"
	apperrors "medidesk/internal/errors"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

const (
	msgLoginFailed    = "Login failed"
	msgAuthFailed     = "Authentication failed"
	msgSessionExpired = "Session expired, please log in again"
)

// SessionService owns the single authenticated session of the portal.
type SessionService interface {
	// Initialize resolves the persisted session. Until it returns, State
	// reports Loading.
	Initialize(ctx context.Context)
	Login(ctx context.Context, username, password string) bool
	// Logout is a no-op when nobody is signed in.
	Logout(ctx context.Context)
	State() model.AuthState
	// HandleUnauthorized clears the session after the backend rejected the
	// token. It arms a single redirect to the login page when a user was
	// signed in.
	HandleUnauthorized(ctx context.Context)
	// ConsumeRedirect reports whether a forced redirect to the login page is
	// pending and disarms it.
	ConsumeRedirect() bool
	// Ready is closed once Initialize has finished.
	Ready() <-chan struct{}
}

type sessionService struct {
	api   AuthGateway
	store auth.CredentialStore
	notes *notify.Queue
	audit audit.Recorder
	log   zerolog.Logger
	now   func() time.Time

	mu       sync.RWMutex
	state    model.AuthState
	redirect bool

	ready     chan struct{}
	readyOnce sync.Once
}

// NewSessionService creates a session service in the loading state.
func NewSessionService(api AuthGateway, store auth.CredentialStore, notes *notify.Queue, recorder audit.Recorder, log zerolog.Logger) SessionService {
	return &sessionService{
		api:   api,
		store: store,
		notes: notes,
		audit: recorder,
		log:   log.With().Str("component", "session").Logger(),
		now:   time.Now,
		state: model.AuthState{Loading: true},
		ready: make(chan struct{}),
	}
}

func (s *sessionService) setState(st model.AuthState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// settle replaces the state and disarms any pending forced redirect. Used
// when the user signs in or out on purpose.
func (s *sessionService) settle(st model.AuthState) {
	s.mu.Lock()
	s.state = st
	s.redirect = false
	s.mu.Unlock()
}

func (s *sessionService) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

func (s *sessionService) Ready() <-chan struct{} {
	return s.ready
}

func (s *sessionService) clearStore(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("clear persisted credentials")
	}
}

func (s *sessionService) Initialize(ctx context.Context) {
	defer s.markReady()

	token, cached, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("load persisted credentials")
		s.clearStore(ctx)
		s.setState(model.AuthState{Error: msgAuthFailed})
		return
	}
	if token == "" {
		s.setState(model.AuthState{})
		return
	}
	if auth.TokenExpired(token, s.now()) {
		s.log.Info().Msg("persisted token expired")
		s.clearStore(ctx)
		s.setState(model.AuthState{Error: msgSessionExpired})
		return
	}

	res := s.api.CurrentUser(ctx)
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = msgAuthFailed
		}
		s.log.Warn().Str("error", msg).Msg("persisted session rejected")
		s.clearStore(ctx)
		s.setState(model.AuthState{Error: msg})
		return
	}

	user := res.Data
	if cached == nil || *cached != user {
		if err := s.store.Save(ctx, token, user); err != nil {
			s.log.Warn().Err(err).Msg("refresh cached user profile")
		}
	}
	s.log.Info().Str("user", user.Username).Str("role", string(user.Role)).Msg("session restored")
	s.setState(model.AuthState{IsAuthenticated: true, User: &user})
}

func (s *sessionService) Login(ctx context.Context, username, password string) bool {
	s.mu.Lock()
	prev := s.state
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	res := s.api.Login(ctx, username, password)
	if !res.Success || res.Data.Token == "" {
		msg := res.Error
		if msg == "" {
			msg = msgLoginFailed
		}
		prev.Loading = false
		prev.Error = msg
		s.setState(prev)
		s.notes.Error(msg)
		s.audit.Record(ctx, audit.Entry(&model.User{Username: username}, model.ActionLogin, username, apperrors.NewAPIError(res.Status, msg)))
		return false
	}

	user := res.Data.User
	if err := s.store.Save(ctx, res.Data.Token, user); err != nil {
		s.log.Error().Err(err).Msg("persist credentials")
	}
	s.settle(model.AuthState{IsAuthenticated: true, User: &user})
	s.markReady()
	s.notes.Success("Login successful")
	s.audit.Record(ctx, audit.Entry(&user, model.ActionLogin, user.Username, nil))
	s.log.Info().Str("user", user.Username).Str("role", string(user.Role)).Msg("signed in")
	return true
}

func (s *sessionService) Logout(ctx context.Context) {
	s.mu.RLock()
	st := s.state
	s.mu.RUnlock()
	if !st.IsAuthenticated {
		return
	}

	var remoteErr error
	if res := s.api.Logout(ctx); !res.Success {
		remoteErr = fmt.Errorf("remote logout: %w", res.Err())
		s.log.Warn().Err(remoteErr).Msg("logout")
	}
	s.clearStore(ctx)
	s.settle(model.AuthState{})
	s.notes.Info("Logged out")
	s.audit.Record(ctx, audit.Entry(st.User, model.ActionLogout, "", remoteErr))
}

func (s *sessionService) State() model.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func (s *sessionService) HandleUnauthorized(ctx context.Context) {
	s.mu.Lock()
	wasAuthenticated := s.state.IsAuthenticated
	if wasAuthenticated {
		s.state = model.AuthState{Error: msgSessionExpired}
		s.redirect = true
	}
	s.mu.Unlock()

	s.clearStore(ctx)
	if wasAuthenticated {
		s.log.Warn().Msg("session invalidated by backend")
		s.notes.Error(msgSessionExpired)
	}
}

func (s *sessionService) ConsumeRedirect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.redirect
	s.redirect = false
	return r
}
