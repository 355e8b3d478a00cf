package program

import "fmt"

// Category groups practices by the faculty they train.
type Category string

const (
	CategoryBreathing     Category = "breathing"
	CategoryGrounding     Category = "grounding"
	CategoryBody          Category = "body"
	CategoryMindfulness   Category = "mindfulness"
	CategoryCompassion    Category = "compassion"
	CategoryConcentration Category = "concentration"
	CategoryGratitude     Category = "gratitude"
	CategoryVisualization Category = "visualization"
	CategorySensory       Category = "sensory"
	CategoryProgram       Category = "program" // practices parsed from the program document
)

// Instructions is the three-part guidance attached to every practice.
type Instructions struct {
	WhatToDo    string `json:"what_to_do"`
	FocusOn     string `json:"focus_on"`
	DontFocusOn string `json:"dont_focus_on"`
}

// Practice is a single instructable activity. It comes either from the
// program document (FromProgram=true, id day-N-practice-M) or from the
// content pool (FromProgram=false, id of the pool entry).
type Practice struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Duration     int          `json:"duration"` // minutes
	Category     Category     `json:"category"`
	Purpose      string       `json:"purpose,omitempty"`
	Instructions Instructions `json:"instructions"`
	Main         bool         `json:"main,omitempty"`
	FromProgram  bool         `json:"from_program,omitempty"`
}

// Day is one unit of the fixed-length program.
type Day struct {
	Number    int
	Title     string
	Goal      string
	Practices []Practice
}

// ID returns the day's storage key.
func (d Day) ID() string {
	return DayID(d.Number)
}

// DayID builds the storage key for a day number.
func DayID(n int) string {
	return fmt.Sprintf("day-%d", n)
}
