package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-dashboard/internal/features/preferences"
)

type saveRecorder struct {
	mu      sync.Mutex
	layouts []preferences.Layout
	err     error
}

func (r *saveRecorder) save(ctx context.Context, layout preferences.Layout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layouts = append(r.layouts, layout)
	return r.err
}

func (r *saveRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.layouts)
}

func (r *saveRecorder) last() preferences.Layout {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layouts[len(r.layouts)-1]
}

func newFastController(rec *saveRecorder) *Controller {
	c := NewController(rec.save, nil)
	c.Debounce = 30 * time.Millisecond
	c.UserActionWindow = 100 * time.Millisecond
	return c
}

func layoutWithWidth(w int) preferences.Layout {
	return preferences.Layout{
		Name: "Work",
		Widgets: []preferences.Widget{
			{ID: "w1", Type: preferences.WidgetTypeCard, X: 0, Y: 0, W: w, H: 2},
		},
	}
}

func TestDebounceCollapsesBursts(t *testing.T) {
	rec := &saveRecorder{}
	c := newFastController(rec)
	defer c.Close()

	for w := 1; w <= 5; w++ {
		c.Schedule(layoutWithWidth(w))
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Fatalf("saves = %d, want 1", got)
	}
	if got := rec.last().Widgets[0].W; got != 5 {
		t.Errorf("saved width = %d, want the last scheduled value 5", got)
	}
}

func TestStructuralEditSuppressesReflow(t *testing.T) {
	rec := &saveRecorder{}
	c := newFastController(rec)
	defer c.Close()

	// The reflow fired by an add/remove must not autosave.
	c.BeginUserAction()
	c.Schedule(layoutWithWidth(3))
	time.Sleep(80 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Errorf("saves = %d, want 0 during a structural edit", got)
	}
}

func TestUserActionWindowExpires(t *testing.T) {
	rec := &saveRecorder{}
	c := newFastController(rec)
	defer c.Close()

	c.BeginUserAction()
	time.Sleep(150 * time.Millisecond)

	// The window is over; a drag mutation saves normally again.
	c.Schedule(layoutWithWidth(3))
	time.Sleep(80 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Errorf("saves = %d, want 1 after the window expired", got)
	}
}

func TestFingerprintSkipsUnchangedGeometry(t *testing.T) {
	rec := &saveRecorder{}
	c := newFastController(rec)
	defer c.Close()

	if err := c.SaveNow(context.Background(), layoutWithWidth(4)); err != nil {
		t.Fatalf("SaveNow() error = %v", err)
	}

	// Same geometry again: nothing to do.
	c.Schedule(layoutWithWidth(4))
	time.Sleep(80 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Errorf("saves = %d, want 1 (unchanged geometry skipped)", got)
	}

	// Moved widget saves again.
	c.Schedule(layoutWithWidth(8))
	time.Sleep(80 * time.Millisecond)

	if got := rec.count(); got != 2 {
		t.Errorf("saves = %d, want 2", got)
	}
}

func TestFailedSaveDoesNotAdvanceFingerprint(t *testing.T) {
	rec := &saveRecorder{err: errors.New("boom")}
	c := newFastController(rec)
	defer c.Close()

	c.Schedule(layoutWithWidth(4))
	time.Sleep(80 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Fatalf("saves = %d, want 1", got)
	}

	// The failed layout is still dirty; the same geometry schedules again.
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()

	c.Schedule(layoutWithWidth(4))
	time.Sleep(80 * time.Millisecond)

	if got := rec.count(); got != 2 {
		t.Errorf("saves = %d, want retry after failure", got)
	}
}

func TestCloseCancelsPendingSave(t *testing.T) {
	rec := &saveRecorder{}
	c := newFastController(rec)

	c.Schedule(layoutWithWidth(4))
	c.Close()

	time.Sleep(80 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Errorf("saves = %d, want 0 after Close", got)
	}

	// Scheduling after Close is a no-op.
	c.Schedule(layoutWithWidth(5))
	time.Sleep(50 * time.Millisecond)
	if got := rec.count(); got != 0 {
		t.Errorf("saves = %d, want 0", got)
	}
}

func TestSaveNowBypassesDebounce(t *testing.T) {
	rec := &saveRecorder{}
	c := newFastController(rec)
	defer c.Close()

	if err := c.SaveNow(context.Background(), layoutWithWidth(4)); err != nil {
		t.Fatalf("SaveNow() error = %v", err)
	}
	if got := rec.count(); got != 1 {
		t.Errorf("saves = %d, want immediate save", got)
	}
}

func TestFingerprintIgnoresConfig(t *testing.T) {
	a := layoutWithWidth(4)
	b := layoutWithWidth(4)
	b.Widgets[0].Config = map[string]interface{}{"message": "changed"}
	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("config change altered the geometry fingerprint")
	}

	b.Widgets[0].X = 2
	if Fingerprint(a) == Fingerprint(b) {
		t.Errorf("moved widget kept the same fingerprint")
	}
}
