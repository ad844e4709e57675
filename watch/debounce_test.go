package watch

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	fires := make(chan struct{}, 8)
	db := newDebouncer(50*time.Millisecond, func(string) { fires <- struct{}{} })
	defer db.stop()

	// A burst of triggers inside the quiet window collapses to one fire.
	for range 5 {
		db.trigger("a.png")
	}

	select {
	case <-fires:
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}
	select {
	case <-fires:
		t.Fatal("debouncer fired more than once")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDebouncerTracksPathsIndependently(t *testing.T) {
	fires := make(chan string, 4)
	db := newDebouncer(20*time.Millisecond, func(path string) { fires <- path })
	defer db.stop()

	db.trigger("a.png")
	db.trigger("b.toml")

	got := map[string]bool{}
	for range 2 {
		select {
		case p := <-fires:
			got[p] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, got %v", got)
		}
	}
	if !got["a.png"] || !got["b.toml"] {
		t.Errorf("fired for %v, want both paths", got)
	}
}

func TestDebouncerStopPreventsFire(t *testing.T) {
	var fired atomic.Int64
	db := newDebouncer(30*time.Millisecond, func(string) { fired.Add(1) })

	db.trigger("a.png")
	db.stop()

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("fired %d times after stop, want 0", got)
	}
}
