package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quietloop/praktika/internal/picker"
	"github.com/quietloop/praktika/internal/pool"
	"github.com/quietloop/praktika/internal/program"
	"github.com/quietloop/praktika/internal/store"
)

const testPoolJSON = `{
	"meta": {"version": "test"},
	"practices": {
		"2": [
			{"id": "alt-a", "title": "Alt A", "category": "breathing"},
			{"id": "alt-b", "title": "Alt B", "category": "grounding"}
		]
	},
	"categories": {}
}`

type fixture struct {
	days     []program.Day
	progress *store.ProgressStore
	extras   *store.ExtrasStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	kv, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { kv.Close() })

	pl, err := pool.Parse([]byte(testPoolJSON))
	if err != nil {
		t.Fatal(err)
	}
	pk := picker.NewWithIndexFn(pl, func(n int) int { return 0 })

	days := []program.Day{
		{
			Number: 1,
			Title:  "Arriving",
			Practices: []program.Practice{
				{ID: "day-1-practice-1", Title: "Counting", Duration: 3, FromProgram: true},
				{ID: "day-1-practice-2", Title: "Anchors", Duration: 2, FromProgram: true},
			},
		},
		{
			Number: 2,
			Title:  "Weight",
			Practices: []program.Practice{
				{ID: "day-2-practice-1", Title: "Sweep", Duration: 5, FromProgram: true},
			},
		},
	}

	return fixture{
		days:     days,
		progress: store.NewProgressStore(kv, nil),
		extras:   store.NewExtrasStore(kv, pk, nil),
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	f := newFixture(t)
	f.progress.Toggle("day-1", "day-1-practice-1")

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(f.days, f.progress, f.extras, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if len(records) != 4 { // header + 3 program practices
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	header := records[0]
	if header[0] != "Day" || header[5] != "Completed" {
		t.Fatalf("unexpected header: %v", header)
	}

	first := records[1]
	if first[0] != "1" || first[1] != "day-1-practice-1" || first[4] != "program" || first[5] != "true" {
		t.Fatalf("unexpected first row: %v", first)
	}
	second := records[2]
	if second[5] != "false" {
		t.Fatalf("untouched practice should export incomplete: %v", second)
	}
}

func TestToCSVWithReplacementAndBonus(t *testing.T) {
	f := newFixture(t)

	original := f.days[0].Practices[1] // 2 minutes, matches the pool bucket
	replacement, ok := f.extras.SetReplacementFor("day-1", original)
	if !ok {
		t.Fatal("expected a replacement")
	}
	f.progress.Toggle("day-1", replacement.ID)

	bonus, ok := f.extras.AddBonus("day-1", 2)
	if !ok {
		t.Fatal("expected a bonus draw")
	}
	f.extras.ToggleBonus("day-1", bonus.ID)

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(f.days, f.progress, f.extras, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	// header + day1: 2 program slots + 1 bonus, day2: 1 program
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}

	replaced := records[2]
	if replaced[1] != replacement.ID || replaced[4] != "replacement" || replaced[5] != "true" {
		t.Fatalf("replacement row wrong: %v", replaced)
	}

	bonusRow := records[3]
	if bonusRow[1] != bonus.ID || bonusRow[4] != "bonus" || bonusRow[5] != "true" {
		t.Fatalf("bonus row wrong: %v", bonusRow)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	fh, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	records, err := csv.NewReader(fh).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	f := newFixture(t)
	f.progress.SetStartDate(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	f.progress.Toggle("day-1", "day-1-practice-1")
	f.progress.Toggle("day-1", "day-1-practice-2")

	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(f.days, f.progress, f.extras, path); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		ExportedAt string `json:"exported_at"`
		StartDate  string `json:"start_date"`
		Days       []struct {
			Number    int  `json:"number"`
			Completed int  `json:"completed"`
			Total     int  `json:"total"`
			Complete  bool `json:"complete"`
			Practices []struct {
				ID        string `json:"id"`
				Kind      string `json:"kind"`
				Replaces  string `json:"replaces"`
				Completed bool   `json:"completed"`
			} `json:"practices"`
		} `json:"days"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if out.ExportedAt == "" {
		t.Fatal("missing exported_at")
	}
	if out.StartDate != "2026-08-01" {
		t.Fatalf("unexpected start date %q", out.StartDate)
	}
	if len(out.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(out.Days))
	}

	d1 := out.Days[0]
	if d1.Completed != 2 || d1.Total != 2 || !d1.Complete {
		t.Fatalf("day 1 summary wrong: %+v", d1)
	}
	if len(d1.Practices) != 2 || d1.Practices[0].Kind != "program" {
		t.Fatalf("day 1 practices wrong: %+v", d1.Practices)
	}

	d2 := out.Days[1]
	if d2.Complete || d2.Completed != 0 {
		t.Fatalf("day 2 should be untouched: %+v", d2)
	}
}

func TestToJSONReplacementCarriesOriginalID(t *testing.T) {
	f := newFixture(t)

	original := f.days[0].Practices[1]
	replacement, ok := f.extras.SetReplacementFor("day-1", original)
	if !ok {
		t.Fatal("expected a replacement")
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(f.days, f.progress, f.extras, path); err != nil {
		t.Fatal(err)
	}

	raw, _ := os.ReadFile(path)
	var out struct {
		Days []struct {
			Practices []struct {
				ID       string `json:"id"`
				Kind     string `json:"kind"`
				Replaces string `json:"replaces"`
			} `json:"practices"`
		} `json:"days"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}

	p := out.Days[0].Practices[1]
	if p.ID != replacement.ID || p.Kind != "replacement" || p.Replaces != original.ID {
		t.Fatalf("replacement export wrong: %+v", p)
	}
}

func TestExportBadPath(t *testing.T) {
	f := newFixture(t)
	bad := filepath.Join(t.TempDir(), "missing-dir", "out.csv")

	if err := ToCSV(f.days, f.progress, f.extras, bad); err == nil {
		t.Fatal("expected error writing to missing directory")
	}
	if err := ToJSON(f.days, f.progress, f.extras, bad); err == nil {
		t.Fatal("expected error writing to missing directory")
	}
}
