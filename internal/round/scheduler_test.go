package round

import (
	"testing"
	"time"
)

func TestSchedulerAfterRunsOnce(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.After(2*time.Second, func() { calls++ })

	s.Advance(time.Second)
	if calls != 0 {
		t.Fatalf("Task ran early: %d calls", calls)
	}
	s.Advance(time.Second)
	if calls != 1 {
		t.Fatalf("Expected 1 call at 2s, got %d", calls)
	}
	s.Advance(10 * time.Second)
	if calls != 1 {
		t.Errorf("One-shot task ran again: %d calls", calls)
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending tasks, got %d", s.Pending())
	}
}

func TestSchedulerEveryRepeats(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.Every(time.Second, func() { at = append(at, s.Now()) })

	s.Advance(3500 * time.Millisecond)

	if len(at) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(at))
	}
	for i, got := range at {
		want := time.Duration(i+1) * time.Second
		if got != want {
			t.Errorf("Run %d at %v, want %v", i, got, want)
		}
	}
	if s.Now() != 3500*time.Millisecond {
		t.Errorf("Now() = %v after advance", s.Now())
	}
}

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(2*time.Second, func() { order = append(order, "b") })
	s.After(time.Second, func() { order = append(order, "a") })
	s.After(2*time.Second, func() { order = append(order, "c") })

	s.Advance(5 * time.Second)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	calls := 0
	h := s.Every(time.Second, func() { calls++ })

	s.Advance(2 * time.Second)
	h.Cancel()
	h.Cancel()
	s.Advance(5 * time.Second)

	if calls != 2 {
		t.Errorf("Expected 2 calls before cancel, got %d", calls)
	}
	if h.Active() {
		t.Error("Cancelled handle should be inactive")
	}

	var zero Handle
	zero.Cancel()
	if zero.Active() {
		t.Error("Zero handle should be inactive")
	}
}

func TestSchedulerBumpDropsStaleTasks(t *testing.T) {
	s := NewScheduler()
	stale := 0
	s.After(time.Second, func() { stale++ })
	s.Every(time.Second, func() { stale++ })

	gen := s.Bump()
	if gen != 1 || s.Generation() != 1 {
		t.Errorf("Expected generation 1, got %d", gen)
	}

	fresh := 0
	s.After(time.Second, func() { fresh++ })
	s.Advance(3 * time.Second)

	if stale != 0 {
		t.Errorf("Stale tasks ran %d times after Bump", stale)
	}
	if fresh != 1 {
		t.Errorf("Fresh task ran %d times, want 1", fresh)
	}
}

func TestSchedulerTasksScheduledDuringAdvance(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.After(time.Second, func() {
		at = append(at, s.Now())
		s.After(time.Second, func() { at = append(at, s.Now()) })
	})

	s.Advance(3 * time.Second)

	if len(at) != 2 || at[0] != time.Second || at[1] != 2*time.Second {
		t.Errorf("Expected runs at [1s 2s], got %v", at)
	}
}

func TestSchedulerEveryNonPositivePeriod(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.Every(0, func() { calls++ })
	s.Advance(time.Second)
	s.Advance(time.Second)
	if calls != 1 {
		t.Errorf("Non-positive period should run once, got %d", calls)
	}
}
