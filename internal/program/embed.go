package program

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed program.md
var defaultProgram string

// Default parses the program document shipped with the binary.
func Default() []Day {
	return Parse(defaultProgram)
}

// LoadFile parses a program document from disk. Callers fall back to
// Default when the file does not exist.
func LoadFile(path string) ([]Day, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program file: %w", err)
	}
	days := Parse(string(raw))
	if len(days) == 0 {
		return nil, fmt.Errorf("no days found in %s", path)
	}
	return days, nil
}
