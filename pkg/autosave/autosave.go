package autosave

import (
	"context"
	"sync"
	"time"

	"go-dashboard/internal/features/preferences"

	"go.uber.org/zap"
)

const (
	DefaultDebounce         = 1 * time.Second
	DefaultUserActionWindow = 500 * time.Millisecond
	saveTimeout             = 10 * time.Second
)

// SaveFunc persists a layout. It is called off the caller's goroutine
// once a debounce window elapses.
type SaveFunc func(ctx context.Context, layout preferences.Layout) error

// Controller debounces layout saves. Change notifications arriving
// within the debounce window collapse into a single save carrying the
// most recent layout. Structural edits (add/remove widget) mark a user
// action first, which suppresses the reactive grid reflow events they
// trigger; plain drag and resize mutations flow straight into the
// debounce. A layout whose geometry matches the last saved state is
// skipped either way.
type Controller struct {
	Debounce         time.Duration
	UserActionWindow time.Duration

	save   SaveFunc
	logger *zap.Logger

	mu              sync.Mutex
	timer           *time.Timer
	userActionTimer *time.Timer
	pending         *preferences.Layout
	lastFingerprint string
	userAction      bool
	saving          bool
	closed          bool
}

func NewController(save SaveFunc, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		Debounce:         DefaultDebounce,
		UserActionWindow: DefaultUserActionWindow,
		save:             save,
		logger:           logger,
	}
}

// BeginUserAction marks the start of a structural edit such as adding
// or removing a widget. Layout change events arriving while the mark
// is active are suppressed, since they are grid reflows caused by the
// edit itself rather than the user moving widgets. The mark expires
// after UserActionWindow.
func (c *Controller) BeginUserAction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.userAction = true
	if c.userActionTimer != nil {
		c.userActionTimer.Stop()
	}
	c.userActionTimer = time.AfterFunc(c.UserActionWindow, func() {
		c.mu.Lock()
		c.userAction = false
		c.mu.Unlock()
	})
}

// Schedule records a changed layout and arms the debounce timer.
// Layouts whose geometry matches the last saved state are skipped, as
// are changes arriving inside a structural-edit window.
func (c *Controller) Schedule(layout preferences.Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.userAction {
		return
	}
	fp := Fingerprint(layout)
	if fp == c.lastFingerprint {
		return
	}
	snapshot := layout
	c.pending = &snapshot
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.Debounce, c.flush)
}

// SaveNow persists a layout immediately, bypassing the debounce and
// the structural-edit suppression. Explicit saves from a save button
// go here.
func (c *Controller) SaveNow(ctx context.Context, layout preferences.Layout) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = nil
	c.saving = true
	c.mu.Unlock()

	err := c.save(ctx, layout)

	c.mu.Lock()
	c.saving = false
	if err == nil {
		c.lastFingerprint = Fingerprint(layout)
	}
	c.mu.Unlock()
	return err
}

// Saving reports whether a save is currently in flight.
func (c *Controller) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// Close cancels any pending save. Layouts scheduled but not yet
// flushed are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.userActionTimer != nil {
		c.userActionTimer.Stop()
		c.userActionTimer = nil
	}
	c.pending = nil
}

func (c *Controller) flush() {
	c.mu.Lock()
	if c.closed || c.pending == nil {
		c.mu.Unlock()
		return
	}
	layout := *c.pending
	c.pending = nil
	c.saving = true
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	err := c.save(ctx, layout)

	c.mu.Lock()
	c.saving = false
	if err == nil {
		c.lastFingerprint = Fingerprint(layout)
	} else {
		c.logger.Warn("autosave failed", zap.String("layout", layout.Name), zap.Error(err))
	}
	c.mu.Unlock()
}
