package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"medidesk/internal/model"
)

// MockActionLogRepository is a mock implementation of ActionLogRepository.
type MockActionLogRepository struct {
	mock.Mock
	mu      sync.Mutex
	written []model.ActionLog
}

func (m *MockActionLogRepository) Create(ctx context.Context, log *model.ActionLog) error {
	args := m.Called(ctx, log)
	m.mu.Lock()
	m.written = append(m.written, *log)
	m.mu.Unlock()
	return args.Error(0)
}

func (m *MockActionLogRepository) CreateBatch(ctx context.Context, logs []model.ActionLog) error {
	args := m.Called(ctx, logs)
	m.mu.Lock()
	m.written = append(m.written, logs...)
	m.mu.Unlock()
	return args.Error(0)
}

func (m *MockActionLogRepository) ListRecent(ctx context.Context, limit int) ([]model.ActionLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ActionLog), args.Error(1)
}

func (m *MockActionLogRepository) Written() []model.ActionLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ActionLog(nil), m.written...)
}

func TestEntry(t *testing.T) {
	actor := &model.User{Username: "pharm1", Role: model.RolePharmacyStaff}

	ok := Entry(actor, model.ActionDispenseMedicine, "rx-1/m-1", nil)
	assert.True(t, ok.Success)
	assert.Equal(t, "pharm1", ok.Actor)
	assert.Equal(t, model.RolePharmacyStaff, ok.Role)

	failed := Entry(nil, model.ActionLogin, "drx", errors.New("Invalid credentials"))
	assert.False(t, failed.Success)
	assert.Empty(t, failed.Actor)
	assert.Equal(t, "Invalid credentials", failed.ErrorMessage)
}

func TestWorker_FlushesOnClose(t *testing.T) {
	repo := new(MockActionLogRepository)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := NewWorker(repo, zerolog.Nop())
	for i := 0; i < 25; i++ {
		w.Record(context.Background(), model.ActionLog{Action: model.ActionUploadLabReport})
	}
	w.Close()

	written := repo.Written()
	assert.Len(t, written, 25)
	for _, e := range written {
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestWorker_RecordAfterCloseIsDropped(t *testing.T) {
	repo := new(MockActionLogRepository)
	w := NewWorker(repo, zerolog.Nop())
	w.Close()

	assert.NotPanics(t, func() {
		w.Record(context.Background(), model.ActionLog{Action: model.ActionLogout})
	})
	assert.Empty(t, repo.Written())
	w.Close()
}

func TestWorker_BatchErrorIsSwallowed(t *testing.T) {
	repo := new(MockActionLogRepository)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("db down"))

	w := NewWorker(repo, zerolog.Nop())
	w.Record(context.Background(), model.ActionLog{Action: model.ActionDeleteUser})
	w.Close()

	repo.AssertCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestWorker_Recent(t *testing.T) {
	repo := new(MockActionLogRepository)
	repo.On("ListRecent", mock.Anything, 20).Return([]model.ActionLog{{Action: model.ActionLogin}}, nil)

	w := NewWorker(repo, zerolog.Nop())
	defer w.Close()

	logs, err := w.Recent(context.Background(), 20)
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
}
