package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/quietloop/praktika/internal/program"
	"github.com/quietloop/praktika/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	StartDate  string    `json:"start_date,omitempty"`
	Days       []jsonDay `json:"days"`
}

type jsonDay struct {
	Number    int            `json:"number"`
	Title     string         `json:"title"`
	Completed int            `json:"completed"`
	Total     int            `json:"total"`
	Complete  bool           `json:"complete"`
	Practices []jsonPractice `json:"practices"`
}

type jsonPractice struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DurationMin int    `json:"duration_minutes"`
	Kind        string `json:"kind"` // program, replacement, bonus
	Replaces    string `json:"replaces,omitempty"`
	Completed   bool   `json:"completed"`
}

// ToJSON writes the full program state — every day's practices with
// replacements applied, plus bonus practices — to path.
func ToJSON(days []program.Day, progress *store.ProgressStore, extras *store.ExtrasStore, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if start, ok := progress.StartDate(); ok {
		out.StartDate = start.Format("2006-01-02")
	}

	for _, day := range days {
		dayID := day.ID()
		dp := progress.DayProgress(dayID, len(day.Practices))

		jd := jsonDay{
			Number:    day.Number,
			Title:     day.Title,
			Completed: dp.Completed,
			Total:     dp.Total,
			Complete:  dp.Complete,
		}

		for _, row := range practiceRows(day, progress, extras) {
			jd.Practices = append(jd.Practices, jsonPractice{
				ID:          row.practice.ID,
				Title:       row.practice.Title,
				DurationMin: row.practice.Duration,
				Kind:        row.kind,
				Replaces:    row.replaces,
				Completed:   row.completed,
			})
		}

		out.Days = append(out.Days, jd)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
