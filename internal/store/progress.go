package store

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/quietloop/praktika/internal/program"
)

const progressKey = "progress-state"

const startDateLayout = "2006-01-02"

// trackerState is the JSON document persisted under progressKey.
type trackerState struct {
	StartDate string                     `json:"start_date,omitempty"`
	Progress  map[string]map[string]bool `json:"progress"`
}

// DayProgress summarizes completion for one day. Total always comes from
// the day's authoritative practice count, never from the number of
// tracked keys.
type DayProgress struct {
	Completed int
	Total     int
	Complete  bool
}

// ProgressStore tracks per-practice completion for program days. A
// failing or corrupt underlying store degrades to empty state; no method
// returns an error.
type ProgressStore struct {
	kv  *Store
	log *slog.Logger
}

func NewProgressStore(kv *Store, logger *slog.Logger) *ProgressStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProgressStore{kv: kv, log: logger}
}

func (p *ProgressStore) load() trackerState {
	empty := trackerState{Progress: map[string]map[string]bool{}}

	raw, err := p.kv.Get(progressKey)
	if err != nil {
		p.log.Error("read progress state", "error", err)
		return empty
	}
	if raw == "" {
		return empty
	}

	var st trackerState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		p.log.Warn("corrupt progress state, starting fresh", "error", err)
		return empty
	}
	if st.Progress == nil {
		st.Progress = map[string]map[string]bool{}
	}
	return st
}

func (p *ProgressStore) save(st trackerState) {
	raw, err := json.Marshal(st)
	if err != nil {
		p.log.Error("encode progress state", "error", err)
		return
	}
	if err := p.kv.Set(progressKey, string(raw)); err != nil {
		p.log.Error("write progress state", "error", err)
	}
}

// Toggle flips the completion flag for a practice and returns the new
// value. An untracked practice counts as incomplete, so its first toggle
// yields true.
func (p *ProgressStore) Toggle(dayID, practiceID string) bool {
	st := p.load()

	if st.Progress[dayID] == nil {
		st.Progress[dayID] = map[string]bool{}
	}
	newValue := !st.Progress[dayID][practiceID]
	st.Progress[dayID][practiceID] = newValue

	p.save(st)
	return newValue
}

// IsCompleted reports whether a practice is marked complete. Untracked
// practices are incomplete.
func (p *ProgressStore) IsCompleted(dayID, practiceID string) bool {
	st := p.load()
	return st.Progress[dayID][practiceID]
}

// DayProgress returns completion counts for a day. totalPractices must be
// the day's real practice count; a day with fewer tracked keys than
// practices is not complete, and a day with zero practices is never
// complete.
func (p *ProgressStore) DayProgress(dayID string, totalPractices int) DayProgress {
	st := p.load()
	completed := countTrue(st.Progress[dayID])
	return DayProgress{
		Completed: completed,
		Total:     totalPractices,
		Complete:  completed == totalPractices && totalPractices > 0,
	}
}

// MaxAvailableDay walks days in order and returns the number of the first
// day whose practices are not all complete. When every day is complete
// the last day stays available.
func (p *ProgressStore) MaxAvailableDay(days []program.Day) int {
	st := p.load()

	for _, day := range days {
		completed := countTrue(st.Progress[day.ID()])
		if completed < len(day.Practices) {
			return day.Number
		}
	}
	return len(days)
}

// StartDate returns the persisted program start date, if one was set.
func (p *ProgressStore) StartDate() (time.Time, bool) {
	st := p.load()
	if st.StartDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(startDateLayout, st.StartDate)
	if err != nil {
		p.log.Warn("bad start date in progress state", "value", st.StartDate)
		return time.Time{}, false
	}
	return t, true
}

// SetStartDate persists the program start date.
func (p *ProgressStore) SetStartDate(t time.Time) {
	st := p.load()
	st.StartDate = t.Format(startDateLayout)
	p.save(st)
}

// countTrue counts completed entries; explicit false and missing keys
// both count as incomplete.
func countTrue(m map[string]bool) int {
	n := 0
	for _, done := range m {
		if done {
			n++
		}
	}
	return n
}
