package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/quietloop/praktika/internal/program"
	"github.com/quietloop/praktika/internal/store"
)

// ToCSV writes one row per practice — program, replacement and bonus —
// for every day of the program.
func ToCSV(days []program.Day, progress *store.ProgressStore, extras *store.ExtrasStore, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Day", "Practice ID", "Title", "Duration (min)", "Kind", "Completed"}); err != nil {
		return err
	}

	for _, day := range days {
		for _, row := range practiceRows(day, progress, extras) {
			record := []string{
				fmt.Sprintf("%d", day.Number),
				row.practice.ID,
				row.practice.Title,
				fmt.Sprintf("%d", row.practice.Duration),
				row.kind,
				fmt.Sprintf("%t", row.completed),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

type practiceRow struct {
	practice  program.Practice
	kind      string
	replaces  string
	completed bool
}

// practiceRows flattens a day into export rows: program practices with
// any replacement standing in, then bonus practices in insertion order.
func practiceRows(day program.Day, progress *store.ProgressStore, extras *store.ExtrasStore) []practiceRow {
	dayID := day.ID()
	rows := make([]practiceRow, 0, len(day.Practices))

	for _, p := range day.Practices {
		row := practiceRow{practice: p, kind: "program"}
		if r, ok := extras.ReplacementFor(dayID, p.ID); ok {
			row.practice = r
			row.kind = "replacement"
			row.replaces = p.ID
		}
		row.completed = progress.IsCompleted(dayID, row.practice.ID)
		rows = append(rows, row)
	}

	for _, p := range extras.BonusPractices(dayID) {
		rows = append(rows, practiceRow{
			practice:  p,
			kind:      "bonus",
			completed: extras.IsBonusCompleted(dayID, p.ID),
		})
	}

	return rows
}
