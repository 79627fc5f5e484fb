package service

import (
	"sync/atomic"
	"time"

	apperrors "medidesk/internal/errors"
)

// inflight rejects a submit while a previous one on the same form is
// pending.
type inflight struct {
	busy atomic.Bool
}

func (f *inflight) start() error {
	if !f.busy.CompareAndSwap(false, true) {
		return apperrors.ErrSubmitInFlight
	}
	return nil
}

func (f *inflight) done() { f.busy.Store(false) }

func (f *inflight) active() bool { return f.busy.Load() }

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
