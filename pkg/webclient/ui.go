package webclient

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

const (
	defaultToastDuration   = 5 * time.Second
	defaultCounterDuration = time.Second
	counterTick            = 16 * time.Millisecond
)

// Toast is one transient notification. Each gets its own id and dismiss
// timer; toasts stack independently.
type Toast struct {
	ID       string
	Message  string
	Severity Severity
	Duration time.Duration
}

// Decision is the single awaitable outcome of a confirmation dialog.
type Decision int

const (
	DecisionCancelled Decision = iota
	DecisionConfirmed
)

// Surface is the rendering capability the feedback layer draws on. A browser
// frontend binds these to the DOM; tests supply an in-memory implementation.
type Surface interface {
	ShowToast(t Toast)
	RemoveToast(id string)
	ShowOverlay()
	HideOverlay()
	// Prompt blocks for the user's choice on a confirmation dialog. The
	// surface tears the dialog down whichever way it closes.
	Prompt(title, message string) bool
	Counter(key string) int
	SetCounter(key string, value int)
}

// UI is the feedback layer: toasts, the loading overlay, confirmations and
// counter animation. Surface mutations are serialized under one mutex since
// dismiss timers fire on their own goroutines.
type UI struct {
	surface Surface
	logger  *log.Logger

	mu             sync.Mutex
	overlayVisible bool
	timers         map[string]*time.Timer
}

func newUI(surface Surface, logger *log.Logger) *UI {
	if surface == nil {
		surface = noopSurface{}
	}
	return &UI{
		surface: surface,
		logger:  logger,
		timers:  make(map[string]*time.Timer),
	}
}

// noopSurface stands in when no renderer is bound. Prompts answer false, so
// unconfirmed destructive actions never proceed.
type noopSurface struct{}

func (noopSurface) ShowToast(Toast)            {}
func (noopSurface) RemoveToast(string)         {}
func (noopSurface) ShowOverlay()               {}
func (noopSurface) HideOverlay()               {}
func (noopSurface) Prompt(string, string) bool { return false }
func (noopSurface) Counter(string) int         { return 0 }
func (noopSurface) SetCounter(string, int)     {}

// ShowLoading makes the overlay visible. Idempotent: no reference counting,
// a second call changes nothing.
func (ui *UI) ShowLoading() {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	if ui.overlayVisible {
		return
	}
	ui.overlayVisible = true
	ui.surface.ShowOverlay()
}

func (ui *UI) HideLoading() {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	if !ui.overlayVisible {
		return
	}
	ui.overlayVisible = false
	ui.surface.HideOverlay()
}

// ShowToast displays a uniquely-identified toast that auto-dismisses after
// duration (default 5s). The returned id can be used to dismiss it early.
func (ui *UI) ShowToast(message string, severity Severity, duration time.Duration) string {
	if severity == "" {
		severity = SeverityInfo
	}
	if duration <= 0 {
		duration = defaultToastDuration
	}

	t := Toast{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
		Duration: duration,
	}
	ui.surface.ShowToast(t)

	ui.mu.Lock()
	ui.timers[t.ID] = time.AfterFunc(duration, func() { ui.DismissToast(t.ID) })
	ui.mu.Unlock()

	return t.ID
}

// DismissToast removes a toast and stops its timer. Safe to call for a toast
// that already went away.
func (ui *UI) DismissToast(id string) {
	ui.mu.Lock()
	timer, ok := ui.timers[id]
	if ok {
		timer.Stop()
		delete(ui.timers, id)
	}
	ui.mu.Unlock()

	if ok {
		ui.surface.RemoveToast(id)
	}
}

// Confirm presents a transient confirmation dialog and resolves to exactly
// one decision. Context cancellation counts as a cancel.
func (ui *UI) Confirm(ctx context.Context, title, message string) Decision {
	answered := make(chan bool, 1)
	go func() {
		answered <- ui.surface.Prompt(title, message)
	}()

	select {
	case ok := <-answered:
		if ok {
			return DecisionConfirmed
		}
		return DecisionCancelled
	case <-ctx.Done():
		return DecisionCancelled
	}
}

// AnimateCounter steps the displayed value linearly from its current reading
// to target over duration, updating roughly every 16ms. It lands exactly on
// target and never oversteps it along the way. Blocks until done; run it on
// its own goroutine when the caller must not wait.
func (ui *UI) AnimateCounter(key string, target int, duration time.Duration) {
	if duration <= 0 {
		duration = defaultCounterDuration
	}

	current := ui.surface.Counter(key)
	if current == target {
		return
	}

	steps := int(duration / counterTick)
	if steps < 1 {
		steps = 1
	}
	increment := float64(target-current) / float64(steps)

	ticker := time.NewTicker(counterTick)
	defer ticker.Stop()

	value := float64(current)
	for range ticker.C {
		value += increment
		next := int(math.Round(value))
		if (increment > 0 && next >= target) || (increment < 0 && next <= target) {
			ui.surface.SetCounter(key, target)
			return
		}
		ui.surface.SetCounter(key, next)
	}
}
