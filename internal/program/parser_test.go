package program

import (
	"os"
	"path/filepath"
	"testing"
)

// ============================================================
// Embedded program
// ============================================================

func TestDefaultProgram(t *testing.T) {
	days := Default()
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}

	for i, d := range days {
		if d.Number != i+1 {
			t.Fatalf("days out of order: position %d holds day %d", i, d.Number)
		}
		if d.Title == "" {
			t.Fatalf("day %d has no title", d.Number)
		}
		if d.Goal == "" {
			t.Fatalf("day %d has no goal", d.Number)
		}
		if len(d.Practices) == 0 {
			t.Fatalf("day %d has no practices", d.Number)
		}
	}
}

func TestDefaultProgramFirstDay(t *testing.T) {
	day := Default()[0]

	if day.Title != "Arriving" {
		t.Fatalf("unexpected title %q", day.Title)
	}
	if len(day.Practices) != 2 {
		t.Fatalf("expected 2 practices, got %d", len(day.Practices))
	}

	p := day.Practices[0]
	if p.ID != "day-1-practice-1" {
		t.Fatalf("unexpected id %q", p.ID)
	}
	if p.Title != "Counting the Breath" {
		t.Fatalf("unexpected practice title %q", p.Title)
	}
	if p.Duration != 3 {
		t.Fatalf("expected 3 minutes, got %d", p.Duration)
	}
	if !p.Main {
		t.Fatal("first practice is the main practice")
	}
	if !p.FromProgram {
		t.Fatal("program practices must be marked as such")
	}
	if day.Practices[1].Main {
		t.Fatal("second practice is not the main practice")
	}
}

func TestDefaultProgramMainPracticePerDay(t *testing.T) {
	for _, d := range Default() {
		mains := 0
		for _, p := range d.Practices {
			if p.Main {
				mains++
			}
		}
		if mains != 1 {
			t.Fatalf("day %d has %d main practices", d.Number, mains)
		}
	}
}

func TestRepeatedDurationIsTotal(t *testing.T) {
	// Day 6 practice 1 reads "(2 x 5 minutes)": two repetitions of five.
	days := Default()
	p := days[5].Practices[0]
	if p.Duration != 10 {
		t.Fatalf("expected total 10 minutes, got %d", p.Duration)
	}
	if p.Title != "One Mindful Task" {
		t.Fatalf("duration suffix must not leak into title, got %q", p.Title)
	}
}

func TestInstructionsParsed(t *testing.T) {
	p := Default()[0].Practices[0]

	if p.Instructions.WhatToDo == "" {
		t.Fatal("missing what-to-do block")
	}
	if p.Instructions.FocusOn == "" {
		t.Fatal("missing focus-on block")
	}
	if p.Instructions.DontFocusOn == "" {
		t.Fatal("missing don't-focus-on block")
	}
}

// ============================================================
// Parse
// ============================================================

func TestParseSortsDays(t *testing.T) {
	md := `
## Day 2: Second

### Practice 1: B (2 minutes)

**What to do:** b.

## Day 1: First

### Practice 1: A (1 minute)

**What to do:** a.
`
	days := Parse(md)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Number != 1 || days[1].Number != 2 {
		t.Fatalf("days not sorted: %d, %d", days[0].Number, days[1].Number)
	}
}

func TestParseDropsEmptyDays(t *testing.T) {
	md := `
## Day 1: Has Practices

### Practice 1: A (1 minute)

**What to do:** a.

## Day 2: Prose Only

Nothing to do here.
`
	days := Parse(md)
	if len(days) != 1 {
		t.Fatalf("practice-less day should be dropped, got %d days", len(days))
	}
}

func TestParseMissingDuration(t *testing.T) {
	md := `
## Day 1: Open

### Practice 1: Untimed Sit

**What to do:** sit.
`
	days := Parse(md)
	if days[0].Practices[0].Duration != 0 {
		t.Fatalf("missing duration should read 0, got %d", days[0].Practices[0].Duration)
	}
}

func TestParseStripsSourceRefs(t *testing.T) {
	md := `
## Day 1: Refs

**Goal:** A goal with a citation [3] in it.

### Practice 1: A (1 minute)

**What to do:** Do the thing [12] carefully.
`
	days := Parse(md)
	d := days[0]
	if want := "A goal with a citation  in it."; d.Goal != want {
		t.Fatalf("goal %q", d.Goal)
	}
	if got := d.Practices[0].Instructions.WhatToDo; got != "Do the thing  carefully." {
		t.Fatalf("what-to-do %q", got)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if days := Parse(""); days != nil {
		t.Fatalf("expected nil, got %+v", days)
	}
}

// ============================================================
// LoadFile
// ============================================================

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.md")
	md := "## Day 1: Custom\n\n### Practice 1: Own Thing (4 minutes)\n\n**What to do:** x.\n"
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		t.Fatal(err)
	}

	days, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0].Title != "Custom" {
		t.Fatalf("unexpected days: %+v", days)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFileNoDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.md")
	if err := os.WriteFile(path, []byte("just prose"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for a program without days")
	}
}

// ============================================================
// IDs
// ============================================================

func TestDayID(t *testing.T) {
	if got := DayID(3); got != "day-3" {
		t.Fatalf("unexpected id %q", got)
	}
	d := Day{Number: 5}
	if d.ID() != "day-5" {
		t.Fatalf("unexpected id %q", d.ID())
	}
}
