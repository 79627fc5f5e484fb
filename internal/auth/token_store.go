package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"medidesk/internal/model"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// CredentialStore persists the bearer token and the cached user profile of
// the single workstation session.
type CredentialStore interface {
	Save(ctx context.Context, token string, user model.User) error
	// Load returns an empty token and nil user when nothing is stored.
	Load(ctx context.Context) (token string, user *model.User, err error)
	// Token returns the stored token or "" when absent or unreadable.
	Token(ctx context.Context) string
	Clear(ctx context.Context) error
}

// KV is the key-value surface the Redis store needs. cache.Client
// implements it.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisStore keeps credentials in Redis so a session survives a portal
// restart.
type RedisStore struct {
	kv  KV
	now func() time.Time
}

// Ensure RedisStore implements CredentialStore
var _ CredentialStore = (*RedisStore)(nil)

// NewRedisStore creates a new Redis-backed credential store.
func NewRedisStore(kv KV) *RedisStore {
	return &RedisStore{kv: kv, now: time.Now}
}

// Save stores token and user. Both keys expire with the token when its
// expiry is known.
func (s *RedisStore) Save(ctx context.Context, token string, user model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	ttl := TokenTTL(token, s.now())
	if err := s.kv.Set(ctx, tokenKey, []byte(token), ttl); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := s.kv.Set(ctx, userKey, payload, ttl); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Load retrieves token and user.
func (s *RedisStore) Load(ctx context.Context) (string, *model.User, error) {
	token, err := s.kv.Get(ctx, tokenKey)
	if err != nil {
		return "", nil, fmt.Errorf("load token: %w", err)
	}
	if token == nil {
		return "", nil, nil
	}
	data, err := s.kv.Get(ctx, userKey)
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if data == nil {
		return string(token), nil, nil
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return "", nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return string(token), &user, nil
}

// Token returns the stored token. Read failures behave like a missing token.
func (s *RedisStore) Token(ctx context.Context) string {
	token, err := s.kv.Get(ctx, tokenKey)
	if err != nil {
		return ""
	}
	return string(token)
}

// Clear removes token and user.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, tokenKey, userKey); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// MemoryStore keeps credentials in process memory. Used when no Redis is
// configured and in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *model.User
}

// Ensure MemoryStore implements CredentialStore
var _ CredentialStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, token string, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (string, *model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return s.token, nil, nil
	}
	u := *s.user
	return s.token, &u, nil
}

func (s *MemoryStore) Token(_ context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}
