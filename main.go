package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quietloop/praktika/internal/picker"
	"github.com/quietloop/praktika/internal/pool"
	"github.com/quietloop/praktika/internal/program"
	"github.com/quietloop/praktika/internal/store"
	"github.com/quietloop/praktika/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	logger := openLogger(dbPath)

	days := loadProgram(logger)

	pl, err := pool.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading practice pool: %v\n", err)
		os.Exit(1)
	}

	pk := picker.New(pl)
	progress := store.NewProgressStore(s, logger)
	extras := store.NewExtrasStore(s, pk, logger)

	app := tui.NewApp(days, pl, progress, extras, dbPath)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadProgram prefers a user-supplied program.md next to the database,
// falling back to the embedded one.
func loadProgram(logger *slog.Logger) []program.Day {
	path, err := store.DefaultProgramPath()
	if err == nil {
		if days, err := program.LoadFile(path); err == nil && len(days) > 0 {
			return days
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("could not read program override, using built-in", "path", path, "error", err)
		}
	}
	return program.Default()
}

// openLogger writes structured logs next to the database. The TUI owns
// the terminal, so stderr is not an option while it runs.
func openLogger(dbPath string) *slog.Logger {
	logPath := filepath.Join(filepath.Dir(dbPath), "praktika.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(f, nil))
}
