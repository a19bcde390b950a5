// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/mkoehler/immo-inspect/models"
)

// Reference durations. QuietPeriod is the debounce window after the last
// edit; SavedVisible and ErrorVisible bound how long the transient "saved"
// and "error" indicators stay up before auto-reverting to idle.
const (
	DefaultQuietPeriod  = 500 * time.Millisecond
	DefaultSavedVisible = 2 * time.Second
	DefaultErrorVisible = 5 * time.Second
)

// SaveFunc is the injected persistence call. It runs off the scheduling
// goroutine once the quiet period elapses.
type SaveFunc func(ctx context.Context, rec models.AnswerRecord) error

// Options tune the controller timers; zero values take the defaults above.
type Options struct {
	QuietPeriod  time.Duration
	SavedVisible time.Duration
	ErrorVisible time.Duration
}

func (o *Options) fillDefaults() {
	if o.QuietPeriod <= 0 {
		o.QuietPeriod = DefaultQuietPeriod
	}
	if o.SavedVisible <= 0 {
		o.SavedVisible = DefaultSavedVisible
	}
	if o.ErrorVisible <= 0 {
		o.ErrorVisible = DefaultErrorVisible
	}
}

// Controller coalesces bursts of edits into a single persisted write after
// a quiet period, tracking the visible save status. One controller belongs
// to one editing session and must be Closed when the session ends.
//
// Superseding Schedule calls is the only cancellation mechanism: a new call
// discards the pending timer entirely, so only the last payload of a burst
// is ever written. A save already in flight runs to completion, but a
// completion whose generation was superseded never overwrites the status
// set by a newer call.
type Controller struct {
	mu     sync.Mutex
	save   SaveFunc
	opts   Options
	status models.SaveStatus
	errMsg string

	pending *time.Timer // armed quiet-period timer
	reset   *time.Timer // armed status auto-revert timer
	gen     uint64      // bumped on every Schedule and on Close
	closed  bool
}

// New creates an idle controller around the given persistence function.
func New(save SaveFunc, opts Options) *Controller {
	opts.fillDefaults()
	return &Controller{
		save:   save,
		opts:   opts,
		status: models.StatusIdle,
	}
}

// Schedule registers the latest payload for persistence. The status flips
// to "saving" immediately so unsaved changes are visible without delay;
// the actual write happens only after the quiet period passes without
// another Schedule call.
func (c *Controller) Schedule(rec models.AnswerRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.stopTimersLocked()
	c.gen++
	gen := c.gen

	c.status = models.StatusSaving
	c.errMsg = ""

	c.pending = time.AfterFunc(c.opts.QuietPeriod, func() {
		c.fire(gen, rec)
	})
}

// Status returns the current save status and, in the error state, a short
// human-readable reason.
func (c *Controller) Status() (models.SaveStatus, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, c.errMsg
}

// Close tears the controller down, discarding any pending write. No write
// fires after Close returns; a save already in flight completes but can no
// longer change the status.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.gen++
	c.stopTimersLocked()
}

func (c *Controller) fire(gen uint64, rec models.AnswerRecord) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	err := c.save(context.Background(), rec)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Superseded while in flight: the newer Schedule owns the status now.
	if c.closed || gen != c.gen {
		return
	}

	if err != nil {
		c.status = models.StatusError
		c.errMsg = err.Error()
		c.reset = time.AfterFunc(c.opts.ErrorVisible, func() {
			c.toIdle(gen)
		})
		return
	}

	c.status = models.StatusSaved
	c.errMsg = ""
	c.reset = time.AfterFunc(c.opts.SavedVisible, func() {
		c.toIdle(gen)
	})
}

func (c *Controller) toIdle(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.gen {
		return
	}
	c.status = models.StatusIdle
	c.errMsg = ""
}

// stopTimersLocked cancels both timers. Callers hold c.mu.
func (c *Controller) stopTimersLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	if c.reset != nil {
		c.reset.Stop()
		c.reset = nil
	}
}
