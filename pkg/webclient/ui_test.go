package webclient

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"
)

// fakeSurface records what the feedback layer asked it to draw.
type fakeSurface struct {
	mu           sync.Mutex
	toasts       map[string]Toast
	order        []string
	overlayShows int
	overlayHides int
	promptAnswer bool
	counters     map[string]int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		toasts:   make(map[string]Toast),
		counters: make(map[string]int),
	}
}

func (s *fakeSurface) ShowToast(t Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts[t.ID] = t
	s.order = append(s.order, t.ID)
}

func (s *fakeSurface) RemoveToast(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.toasts, id)
}

func (s *fakeSurface) ShowOverlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlayShows++
}

func (s *fakeSurface) HideOverlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlayHides++
}

func (s *fakeSurface) Prompt(title, message string) bool {
	return s.promptAnswer
}

func (s *fakeSurface) Counter(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key]
}

func (s *fakeSurface) SetCounter(key string, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] = value
}

func (s *fakeSurface) toastCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

func newTestUI(s Surface) *UI {
	return newUI(s, log.Default())
}

func TestShowToastStacksIndependently(t *testing.T) {
	surface := newFakeSurface()
	ui := newTestUI(surface)

	first := ui.ShowToast("saved", SeveritySuccess, time.Minute)
	second := ui.ShowToast("synced", SeverityInfo, time.Minute)

	if first == second {
		t.Fatal("toast ids must be unique")
	}
	if surface.toastCount() != 2 {
		t.Fatalf("expected 2 stacked toasts, got %d", surface.toastCount())
	}

	ui.DismissToast(first)
	if surface.toastCount() != 1 {
		t.Errorf("dismissing one toast must not touch the other, got %d", surface.toastCount())
	}
}

func TestShowToastAutoDismiss(t *testing.T) {
	surface := newFakeSurface()
	ui := newTestUI(surface)

	ui.ShowToast("bye", SeverityInfo, 20*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for surface.toastCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("toast was not removed after its duration elapsed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestShowToastDefaults(t *testing.T) {
	surface := newFakeSurface()
	ui := newTestUI(surface)

	id := ui.ShowToast("hello", "", 0)

	surface.mu.Lock()
	toast := surface.toasts[id]
	surface.mu.Unlock()

	if toast.Severity != SeverityInfo {
		t.Errorf("expected info severity default, got %s", toast.Severity)
	}
	if toast.Duration != defaultToastDuration {
		t.Errorf("expected 5s default duration, got %s", toast.Duration)
	}
}

func TestShowLoadingIdempotent(t *testing.T) {
	surface := newFakeSurface()
	ui := newTestUI(surface)

	ui.ShowLoading()
	ui.ShowLoading()
	if surface.overlayShows != 1 {
		t.Errorf("expected one overlay show, got %d", surface.overlayShows)
	}

	ui.HideLoading()
	ui.HideLoading()
	if surface.overlayHides != 1 {
		t.Errorf("expected one overlay hide, got %d", surface.overlayHides)
	}
}

func TestConfirmDecisions(t *testing.T) {
	surface := newFakeSurface()
	ui := newTestUI(surface)

	surface.promptAnswer = true
	if got := ui.Confirm(context.Background(), "Delete item", "Sure?"); got != DecisionConfirmed {
		t.Errorf("expected confirmed, got %v", got)
	}

	surface.promptAnswer = false
	if got := ui.Confirm(context.Background(), "Delete item", "Sure?"); got != DecisionCancelled {
		t.Errorf("expected cancelled, got %v", got)
	}
}

func TestAnimateCounterLandsOnTarget(t *testing.T) {
	surface := newFakeSurface()
	ui := newTestUI(surface)

	surface.SetCounter("items", 0)
	ui.AnimateCounter("items", 100, 100*time.Millisecond)

	if got := surface.Counter("items"); got != 100 {
		t.Errorf("expected counter to end at 100, got %d", got)
	}
}

func TestAnimateCounterNeverOvershoots(t *testing.T) {
	surface := newFakeSurface()

	var mu sync.Mutex
	maxSeen := 0
	watcher := &watchSurface{fakeSurface: surface, onSet: func(v int) {
		mu.Lock()
		if v > maxSeen {
			maxSeen = v
		}
		mu.Unlock()
	}}

	watched := newTestUI(watcher)
	surface.SetCounter("items", 0)
	watched.AnimateCounter("items", 37, 80*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if maxSeen > 37 {
		t.Errorf("counter exceeded target mid-animation: %d", maxSeen)
	}
	if got := surface.Counter("items"); got != 37 {
		t.Errorf("expected 37 at the end, got %d", got)
	}
}

// watchSurface taps SetCounter so tests can observe intermediate values.
type watchSurface struct {
	*fakeSurface
	onSet func(v int)
}

func (w *watchSurface) SetCounter(key string, value int) {
	w.onSet(value)
	w.fakeSurface.SetCounter(key, value)
}
