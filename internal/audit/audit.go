// Package audit records workstation actions to the audit database.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"medidesk/internal/model"
	"medidesk/internal/repository"
)

const (
	batchSize     = 10
	flushInterval = time.Second
)

// Recorder accepts audit entries. Record never blocks on the database and
// never fails the calling workflow.
type Recorder interface {
	Record(ctx context.Context, entry model.ActionLog)
	Recent(ctx context.Context, limit int) ([]model.ActionLog, error)
}

// Entry builds an audit entry for actor. A nil err marks the attempt as
// successful.
func Entry(actor *model.User, action model.AuditAction, target string, err error) model.ActionLog {
	e := model.ActionLog{Action: action, Target: target, Success: err == nil}
	if actor != nil {
		e.Actor = actor.Username
		e.Role = actor.Role
	}
	if err != nil {
		e.ErrorMessage = err.Error()
	}
	return e
}

// Worker batches entries and writes them asynchronously.
type Worker struct {
	repo repository.ActionLogRepository
	log  zerolog.Logger

	mu     sync.RWMutex
	closed bool
	ch     chan model.ActionLog
	done   chan struct{}
}

// NewWorker starts the background writer. Call Close to flush pending
// entries.
func NewWorker(repo repository.ActionLogRepository, log zerolog.Logger) *Worker {
	w := &Worker{
		repo: repo,
		log:  log.With().Str("component", "audit").Logger(),
		ch:   make(chan model.ActionLog, 100),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.done)
	batch := make([]model.ActionLog, 0, batchSize)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := w.repo.CreateBatch(context.Background(), batch); err != nil {
			w.log.Error().Err(err).Int("entries", len(batch)).Msg("write audit batch")
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry, ok := <-w.ch:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// Record queues entry. When the queue is full the entry is written
// synchronously.
func (w *Worker) Record(ctx context.Context, entry model.ActionLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.log.Warn().Str("action", string(entry.Action)).Msg("audit worker closed, entry dropped")
		return
	}
	select {
	case w.ch <- entry:
	default:
		if err := w.repo.Create(ctx, &entry); err != nil {
			w.log.Error().Err(err).Str("action", string(entry.Action)).Msg("write audit entry")
		}
	}
}

// Recent returns the newest entries first.
func (w *Worker) Recent(ctx context.Context, limit int) ([]model.ActionLog, error) {
	return w.repo.ListRecent(ctx, limit)
}

// Close stops accepting entries and waits until pending ones are written.
func (w *Worker) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.ch)
	}
	w.mu.Unlock()
	<-w.done
}

type nop struct{}

// Nop returns a Recorder that discards entries. Used when no audit
// database is configured.
func Nop() Recorder { return nop{} }

func (nop) Record(context.Context, model.ActionLog) {}

func (nop) Recent(context.Context, int) ([]model.ActionLog, error) { return nil, nil }
