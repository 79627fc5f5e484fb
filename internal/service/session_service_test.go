package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medidesk/internal/apiclient"
	"medidesk/internal/auth"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

func newSession(api *MockGateway, store auth.CredentialStore, notes *notify.Queue) SessionService {
	return NewSessionService(api, store, notes, newRecorder(), zerolog.Nop())
}

func expiredToken(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func TestSessionService_StartsLoading(t *testing.T) {
	s := newSession(new(MockGateway), auth.NewMemoryStore(), newQueue())
	assert.True(t, s.State().Loading)

	select {
	case <-s.Ready():
		t.Fatal("ready before Initialize")
	default:
	}
}

func TestSessionService_Initialize(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		setupMock  func(*MockGateway)
		wantAuth   bool
		wantError  string
		wantStored bool
	}{
		{
			name:      "no persisted token",
			setupMock: func(m *MockGateway) {},
		},
		{
			name:  "valid token",
			token: "opaque-token",
			setupMock: func(m *MockGateway) {
				m.On("CurrentUser", mock.Anything).Return(ok(*doctor))
			},
			wantAuth:   true,
			wantStored: true,
		},
		{
			name:  "backend rejects token",
			token: "opaque-token",
			setupMock: func(m *MockGateway) {
				m.On("CurrentUser", mock.Anything).Return(fail[model.User](http.StatusUnauthorized, "Invalid token"))
			},
			wantError: "Invalid token",
		},
		{
			name:  "transport error",
			token: "opaque-token",
			setupMock: func(m *MockGateway) {
				m.On("CurrentUser", mock.Anything).Return(fail[model.User](0, ""))
			},
			wantError: msgAuthFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			api := new(MockGateway)
			tt.setupMock(api)
			store := auth.NewMemoryStore()
			if tt.token != "" {
				require.NoError(t, store.Save(ctx, tt.token, *doctor))
			}

			s := newSession(api, store, newQueue())
			s.Initialize(ctx)

			st := s.State()
			assert.False(t, st.Loading)
			assert.Equal(t, tt.wantAuth, st.IsAuthenticated)
			assert.Equal(t, tt.wantError, st.Error)
			assert.Equal(t, tt.wantStored, store.Token(ctx) != "")
			<-s.Ready()
			api.AssertExpectations(t)
		})
	}
}

func TestSessionService_InitializeSkipsExpiredToken(t *testing.T) {
	ctx := context.Background()
	api := new(MockGateway)
	store := auth.NewMemoryStore()
	require.NoError(t, store.Save(ctx, expiredToken(t), *doctor))

	s := newSession(api, store, newQueue())
	s.Initialize(ctx)

	assert.False(t, s.State().IsAuthenticated)
	assert.Equal(t, msgSessionExpired, s.State().Error)
	assert.Empty(t, store.Token(ctx))
	api.AssertNotCalled(t, "CurrentUser", mock.Anything)
}

func TestSessionService_LoginPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryStore()
	notes := newQueue()

	api := new(MockGateway)
	api.On("Login", mock.Anything, "drgrey", "secret1").Return(ok(apiclient.LoginData{Token: "tok-1", User: *doctor}))

	s := newSession(api, store, notes)
	s.Initialize(ctx)
	require.True(t, s.Login(ctx, "drgrey", "secret1"))

	assert.True(t, s.State().IsAuthenticated)
	assert.Equal(t, "tok-1", store.Token(ctx))
	assert.Equal(t, []notify.Kind{notify.Success}, kinds(notes.Drain()))

	restarted := new(MockGateway)
	restarted.On("CurrentUser", mock.Anything).Return(ok(*doctor))
	s2 := newSession(restarted, store, newQueue())
	s2.Initialize(ctx)

	st := s2.State()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, model.RoleDoctor, st.User.Role)
}

func TestSessionService_LoginFailure(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryStore()
	notes := newQueue()
	api := new(MockGateway)
	api.On("Login", mock.Anything, "drgrey", "wrong").Return(fail[apiclient.LoginData](http.StatusUnauthorized, "Invalid credentials"))

	s := newSession(api, store, notes)
	s.Initialize(ctx)

	assert.False(t, s.Login(ctx, "drgrey", "wrong"))
	st := s.State()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.Loading)
	assert.Equal(t, "Invalid credentials", st.Error)
	assert.Empty(t, store.Token(ctx))
	got := notes.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, notify.Error, got[0].Kind)
}

func TestSessionService_LogoutWhenAnonymousIsNoop(t *testing.T) {
	ctx := context.Background()
	api := new(MockGateway)
	notes := newQueue()
	s := newSession(api, auth.NewMemoryStore(), notes)
	s.Initialize(ctx)
	before := s.State()

	assert.NotPanics(t, func() {
		s.Logout(ctx)
		s.Logout(ctx)
	})

	assert.Equal(t, before, s.State())
	assert.Zero(t, notes.Len())
	api.AssertNotCalled(t, "Logout", mock.Anything)
}

func TestSessionService_LogoutClearsEvenWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryStore()
	api := new(MockGateway)
	api.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(ok(apiclient.LoginData{Token: "tok", User: *admin}))
	api.On("Logout", mock.Anything).Return(fail[apiclient.Empty](http.StatusInternalServerError, "boom"))

	s := newSession(api, store, newQueue())
	s.Initialize(ctx)
	require.True(t, s.Login(ctx, "admin", "secret1"))

	s.Logout(ctx)

	assert.False(t, s.State().IsAuthenticated)
	assert.Empty(t, store.Token(ctx))
	api.AssertNumberOfCalls(t, "Logout", 1)
}

func TestSessionService_LogoutWithExpiredTokenLeavesNoRedirect(t *testing.T) {
	ctx := context.Background()
	api := new(MockGateway)
	api.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(ok(apiclient.LoginData{Token: "tok", User: *labTech}))

	var s SessionService
	api.On("Logout", mock.Anything).
		Run(func(mock.Arguments) { s.HandleUnauthorized(ctx) }).
		Return(fail[apiclient.Empty](http.StatusUnauthorized, "Token expired"))

	s = newSession(api, auth.NewMemoryStore(), newQueue())
	s.Initialize(ctx)
	require.True(t, s.Login(ctx, "lab1", "secret1"))

	s.Logout(ctx)

	assert.False(t, s.State().IsAuthenticated)
	assert.False(t, s.ConsumeRedirect())
}

func TestSessionService_LoginDisarmsPendingRedirect(t *testing.T) {
	ctx := context.Background()
	api := new(MockGateway)
	api.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(ok(apiclient.LoginData{Token: "tok", User: *labTech}))

	s := newSession(api, auth.NewMemoryStore(), newQueue())
	s.Initialize(ctx)
	require.True(t, s.Login(ctx, "lab1", "secret1"))
	s.HandleUnauthorized(ctx)

	require.True(t, s.Login(ctx, "lab1", "secret1"))

	assert.True(t, s.State().IsAuthenticated)
	assert.False(t, s.ConsumeRedirect())
}

func TestSessionService_UnauthorizedRedirectsOnce(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryStore()
	api := new(MockGateway)
	api.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(ok(apiclient.LoginData{Token: "tok", User: *labTech}))

	s := newSession(api, store, newQueue())
	s.Initialize(ctx)
	require.True(t, s.Login(ctx, "lab1", "secret1"))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.HandleUnauthorized(ctx)
		}()
	}
	wg.Wait()

	assert.False(t, s.State().IsAuthenticated)
	assert.Empty(t, store.Token(ctx))
	assert.True(t, s.ConsumeRedirect())
	assert.False(t, s.ConsumeRedirect())
}

func TestSessionService_UnauthorizedWhileAnonymous(t *testing.T) {
	ctx := context.Background()
	s := newSession(new(MockGateway), auth.NewMemoryStore(), newQueue())
	s.Initialize(ctx)

	s.HandleUnauthorized(ctx)

	assert.False(t, s.ConsumeRedirect())
}
