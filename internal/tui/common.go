package tui

import (
	"fmt"

	"github.com/quietloop/praktika/internal/program"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewProgram
	viewBonus
	viewStats
	viewSettings
)

var viewNames = []string{"Today", "Program", "Bonus", "Stats", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type practiceToggledMsg struct {
	practiceID string
	completed  bool
}

type bonusAddedMsg struct {
	practice program.Practice
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatMinutes(min int) string {
	if min <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min", min)
}

func checkbox(done bool) string {
	if done {
		return doneMarkStyle.Render("[✓]")
	}
	return mutedStyle.Render("[ ]")
}
