package store

import (
	"testing"
	"time"

	"github.com/quietloop/praktika/internal/program"
)

func newTestProgress(t *testing.T) *ProgressStore {
	t.Helper()
	return NewProgressStore(newTestStore(t), nil)
}

// testDays builds a small program: day 1 with two practices, day 2 with
// one, day 3 with two.
func testDays() []program.Day {
	day := func(n int, practices ...string) program.Day {
		d := program.Day{Number: n, Title: "Day"}
		for _, id := range practices {
			d.Practices = append(d.Practices, program.Practice{ID: id, Title: id, FromProgram: true})
		}
		return d
	}
	return []program.Day{
		day(1, "day-1-practice-1", "day-1-practice-2"),
		day(2, "day-2-practice-1"),
		day(3, "day-3-practice-1", "day-3-practice-2"),
	}
}

// ============================================================
// Toggle
// ============================================================

func TestToggleFirstTimeCompletes(t *testing.T) {
	p := newTestProgress(t)

	if !p.Toggle("day-1", "day-1-practice-1") {
		t.Fatal("first toggle should mark complete")
	}
	if !p.IsCompleted("day-1", "day-1-practice-1") {
		t.Fatal("practice should be complete after toggle")
	}
}

func TestToggleTwiceRestoresOriginal(t *testing.T) {
	p := newTestProgress(t)

	p.Toggle("day-1", "day-1-practice-1")
	if p.Toggle("day-1", "day-1-practice-1") {
		t.Fatal("second toggle should mark incomplete")
	}
	if p.IsCompleted("day-1", "day-1-practice-1") {
		t.Fatal("practice should be incomplete after double toggle")
	}
}

func TestToggleIsolatedPerDay(t *testing.T) {
	p := newTestProgress(t)

	p.Toggle("day-1", "shared-id")
	if p.IsCompleted("day-2", "shared-id") {
		t.Fatal("same practice id on another day should be untouched")
	}
}

func TestIsCompletedUntracked(t *testing.T) {
	p := newTestProgress(t)

	if p.IsCompleted("day-1", "never-seen") {
		t.Fatal("untracked practice should be incomplete")
	}
}

// ============================================================
// DayProgress
// ============================================================

func TestDayProgressCounts(t *testing.T) {
	p := newTestProgress(t)

	p.Toggle("day-1", "day-1-practice-1")

	dp := p.DayProgress("day-1", 2)
	if dp.Completed != 1 || dp.Total != 2 || dp.Complete {
		t.Fatalf("unexpected progress: %+v", dp)
	}

	p.Toggle("day-1", "day-1-practice-2")
	dp = p.DayProgress("day-1", 2)
	if dp.Completed != 2 || !dp.Complete {
		t.Fatalf("expected complete day, got %+v", dp)
	}
}

func TestDayProgressZeroTotalNeverComplete(t *testing.T) {
	p := newTestProgress(t)

	dp := p.DayProgress("day-9", 0)
	if dp.Complete {
		t.Fatal("a day with no practices must not be complete")
	}
}

func TestDayProgressIgnoresStaleKeys(t *testing.T) {
	p := newTestProgress(t)

	// Mark three ids complete but the day only has two real practices.
	// Total must follow the authoritative count.
	p.Toggle("day-1", "a")
	p.Toggle("day-1", "b")
	p.Toggle("day-1", "c")

	dp := p.DayProgress("day-1", 2)
	if dp.Total != 2 {
		t.Fatalf("total must come from the day, got %d", dp.Total)
	}
}

func TestDayProgressExplicitFalseNotCounted(t *testing.T) {
	p := newTestProgress(t)

	p.Toggle("day-1", "day-1-practice-1")
	p.Toggle("day-1", "day-1-practice-1") // back to false, key remains

	dp := p.DayProgress("day-1", 2)
	if dp.Completed != 0 {
		t.Fatalf("explicit false must not count, got %d", dp.Completed)
	}
}

// ============================================================
// MaxAvailableDay
// ============================================================

func TestMaxAvailableDayFresh(t *testing.T) {
	p := newTestProgress(t)

	if got := p.MaxAvailableDay(testDays()); got != 1 {
		t.Fatalf("fresh state should unlock day 1, got %d", got)
	}
}

func TestMaxAvailableDayAdvances(t *testing.T) {
	p := newTestProgress(t)
	days := testDays()

	p.Toggle("day-1", "day-1-practice-1")
	if got := p.MaxAvailableDay(days); got != 1 {
		t.Fatalf("partial day 1 should stay on day 1, got %d", got)
	}

	p.Toggle("day-1", "day-1-practice-2")
	if got := p.MaxAvailableDay(days); got != 2 {
		t.Fatalf("complete day 1 should unlock day 2, got %d", got)
	}
}

func TestMaxAvailableDayAllComplete(t *testing.T) {
	p := newTestProgress(t)
	days := testDays()

	for _, d := range days {
		for _, pr := range d.Practices {
			p.Toggle(d.ID(), pr.ID)
		}
	}

	if got := p.MaxAvailableDay(days); got != len(days) {
		t.Fatalf("finished program should stay on last day, got %d", got)
	}
}

func TestMaxAvailableDayRelocksOnUncheck(t *testing.T) {
	p := newTestProgress(t)
	days := testDays()

	p.Toggle("day-1", "day-1-practice-1")
	p.Toggle("day-1", "day-1-practice-2")
	p.Toggle("day-2", "day-2-practice-1")
	if got := p.MaxAvailableDay(days); got != 3 {
		t.Fatalf("expected day 3, got %d", got)
	}

	// Un-complete an earlier day: the walk stops there again.
	p.Toggle("day-1", "day-1-practice-1")
	if got := p.MaxAvailableDay(days); got != 1 {
		t.Fatalf("expected day 1 after uncheck, got %d", got)
	}
}

// ============================================================
// Start date
// ============================================================

func TestStartDateUnset(t *testing.T) {
	p := newTestProgress(t)

	if _, ok := p.StartDate(); ok {
		t.Fatal("fresh state should have no start date")
	}
}

func TestSetAndGetStartDate(t *testing.T) {
	p := newTestProgress(t)

	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	p.SetStartDate(want)

	got, ok := p.StartDate()
	if !ok {
		t.Fatal("start date should be set")
	}
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSetStartDatePreservesProgress(t *testing.T) {
	p := newTestProgress(t)

	p.Toggle("day-1", "day-1-practice-1")
	p.SetStartDate(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	if !p.IsCompleted("day-1", "day-1-practice-1") {
		t.Fatal("setting start date must not clobber progress")
	}
}

// ============================================================
// Degradation
// ============================================================

func TestCorruptStateStartsFresh(t *testing.T) {
	kv := newTestStore(t)
	p := NewProgressStore(kv, nil)

	if err := kv.Set(progressKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	if p.IsCompleted("day-1", "x") {
		t.Fatal("corrupt state should read as empty")
	}

	// Writing through the store replaces the corrupt document.
	p.Toggle("day-1", "x")
	if !p.IsCompleted("day-1", "x") {
		t.Fatal("store should recover after a write")
	}
}
