// Package notify holds the transient notifications shown to the signed-in
// user. Each view response drains the queue.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Kind is the severity of a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Notification is one transient message.
type Notification struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Queue is a thread-safe FIFO of notifications. The zero value is not
// usable; call New.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	limit int
	log   zerolog.Logger
}

// New creates a queue keeping at most limit undrained notifications. Older
// entries are dropped first.
func New(limit int, log zerolog.Logger) *Queue {
	if limit <= 0 {
		limit = 50
	}
	return &Queue{limit: limit, log: log.With().Str("component", "notify").Logger()}
}

func (q *Queue) push(kind Kind, msg string) {
	evt := q.log.Info()
	if kind == Error {
		evt = q.log.Warn()
	}
	evt.Str("kind", string(kind)).Msg(msg)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, Notification{Kind: kind, Message: msg, At: time.Now()})
	if over := len(q.items) - q.limit; over > 0 {
		q.items = append(q.items[:0:0], q.items[over:]...)
	}
}

// Success queues a success notification.
func (q *Queue) Success(msg string) { q.push(Success, msg) }

// Error queues an error notification.
func (q *Queue) Error(msg string) { q.push(Error, msg) }

// Info queues an informational notification.
func (q *Queue) Info(msg string) { q.push(Info, msg) }

// Drain returns all queued notifications in order and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
