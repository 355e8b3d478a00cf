package store

import (
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/quietloop/praktika/internal/picker"
	"github.com/quietloop/praktika/internal/program"
)

const extrasKey = "extra-practices"

// MaxBonusPerDay caps user-added practices per day.
const MaxBonusPerDay = 5

// DayExtras is the per-day record of user-added content: bonus practices,
// replacements for program practices, their completion flags, and the
// history of every id ever offered for this day. ShownIDs only grows;
// removing a practice does not forget it, which keeps a just-removed item
// from being offered again immediately.
type DayExtras struct {
	BonusPractices []program.Practice          `json:"bonus_practices"`
	Replacements   map[string]program.Practice `json:"replacements"`
	Progress       map[string]bool             `json:"progress"`
	ShownIDs       []string                    `json:"shown_ids"`
}

type extrasState map[string]*DayExtras

// ExtrasStore manages bonus practices and replacements. Draws go through
// the picker with the day's shown history as the exclusion set. Like
// ProgressStore, it absorbs persistence failures: reads degrade to empty
// state, writes are best-effort.
type ExtrasStore struct {
	kv     *Store
	picker *picker.Picker
	log    *slog.Logger
}

func NewExtrasStore(kv *Store, pk *picker.Picker, logger *slog.Logger) *ExtrasStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExtrasStore{kv: kv, picker: pk, log: logger}
}

func (e *ExtrasStore) load() extrasState {
	raw, err := e.kv.Get(extrasKey)
	if err != nil {
		e.log.Error("read extra practices", "error", err)
		return extrasState{}
	}
	if raw == "" {
		return extrasState{}
	}

	var st extrasState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		e.log.Warn("corrupt extra practices, starting fresh", "error", err)
		return extrasState{}
	}
	return st
}

func (e *ExtrasStore) save(st extrasState) {
	raw, err := json.Marshal(st)
	if err != nil {
		e.log.Error("encode extra practices", "error", err)
		return
	}
	if err := e.kv.Set(extrasKey, string(raw)); err != nil {
		e.log.Error("write extra practices", "error", err)
	}
}

// day returns the record for dayID, creating it in st when absent.
func (st extrasState) day(dayID string) *DayExtras {
	d, ok := st[dayID]
	if !ok {
		d = &DayExtras{
			Replacements: map[string]program.Practice{},
			Progress:     map[string]bool{},
		}
		st[dayID] = d
	}
	if d.Replacements == nil {
		d.Replacements = map[string]program.Practice{}
	}
	if d.Progress == nil {
		d.Progress = map[string]bool{}
	}
	return d
}

func (d *DayExtras) markShown(id string) {
	if !slices.Contains(d.ShownIDs, id) {
		d.ShownIDs = append(d.ShownIDs, id)
	}
}

// AddBonus draws a random practice for the day and appends it to the
// bonus list. duration 0 draws across all buckets. Returns false when the
// day is already at MaxBonusPerDay or the pool has nothing left to offer.
func (e *ExtrasStore) AddBonus(dayID string, duration int) (program.Practice, bool) {
	st := e.load()
	d := st.day(dayID)

	if len(d.BonusPractices) >= MaxBonusPerDay {
		return program.Practice{}, false
	}

	p, ok := e.picker.Random(picker.Options{
		Duration:   duration,
		ExcludeIDs: d.ShownIDs,
	})
	if !ok {
		return program.Practice{}, false
	}

	d.BonusPractices = append(d.BonusPractices, p)
	d.Progress[p.ID] = false
	d.markShown(p.ID)

	e.save(st)
	return p, true
}

// RemoveBonus deletes a bonus practice and its progress entry. The id
// stays in the shown history.
func (e *ExtrasStore) RemoveBonus(dayID, practiceID string) {
	st := e.load()
	d, ok := st[dayID]
	if !ok {
		return
	}

	d.BonusPractices = slices.DeleteFunc(d.BonusPractices, func(p program.Practice) bool {
		return p.ID == practiceID
	})
	delete(d.Progress, practiceID)

	e.save(st)
}

// ReplaceBonus swaps an uncompleted bonus practice for a fresh draw,
// keeping its position in the list. Completed practices are left alone.
func (e *ExtrasStore) ReplaceBonus(dayID, practiceID string) (program.Practice, bool) {
	st := e.load()
	d, ok := st[dayID]
	if !ok {
		return program.Practice{}, false
	}

	idx := slices.IndexFunc(d.BonusPractices, func(p program.Practice) bool {
		return p.ID == practiceID
	})
	if idx < 0 {
		return program.Practice{}, false
	}
	if d.Progress[practiceID] {
		return program.Practice{}, false
	}

	replacement, ok := e.picker.Replacement(d.BonusPractices[idx], d.ShownIDs)
	if !ok {
		return program.Practice{}, false
	}

	d.BonusPractices[idx] = replacement
	delete(d.Progress, practiceID)
	d.Progress[replacement.ID] = false
	d.markShown(replacement.ID)

	e.save(st)
	return replacement, true
}

// ToggleBonus flips completion for a bonus practice and returns the new
// value.
func (e *ExtrasStore) ToggleBonus(dayID, practiceID string) bool {
	st := e.load()
	d := st.day(dayID)

	newValue := !d.Progress[practiceID]
	d.Progress[practiceID] = newValue

	e.save(st)
	return newValue
}

// IsBonusCompleted reports completion of a bonus practice.
func (e *ExtrasStore) IsBonusCompleted(dayID, practiceID string) bool {
	st := e.load()
	d, ok := st[dayID]
	if !ok {
		return false
	}
	return d.Progress[practiceID]
}

// BonusPractices returns the day's bonus list in insertion order.
func (e *ExtrasStore) BonusPractices(dayID string) []program.Practice {
	st := e.load()
	d, ok := st[dayID]
	if !ok {
		return nil
	}
	return d.BonusPractices
}

// BonusProgress returns completed and total counts for the day's bonus
// practices.
func (e *ExtrasStore) BonusProgress(dayID string) (completed, total int) {
	st := e.load()
	d, ok := st[dayID]
	if !ok {
		return 0, 0
	}
	return countTrue(d.Progress), len(d.BonusPractices)
}

// SetReplacementFor draws a substitute for a program practice and stores
// it under the original's id, overwriting any earlier replacement. The
// prior replacement's id joins the exclusion set so a re-replace never
// hands back the practice it is replacing away.
func (e *ExtrasStore) SetReplacementFor(dayID string, original program.Practice) (program.Practice, bool) {
	st := e.load()
	d := st.day(dayID)

	exclude := d.ShownIDs
	if prior, ok := d.Replacements[original.ID]; ok {
		exclude = append(slices.Clone(exclude), prior.ID)
	}

	replacement, ok := e.picker.Replacement(original, exclude)
	if !ok {
		return program.Practice{}, false
	}

	d.Replacements[original.ID] = replacement
	d.markShown(replacement.ID)

	e.save(st)
	return replacement, true
}

// ReplacementFor returns the stored replacement for a program practice.
func (e *ExtrasStore) ReplacementFor(dayID, practiceID string) (program.Practice, bool) {
	st := e.load()
	d, ok := st[dayID]
	if !ok {
		return program.Practice{}, false
	}
	r, ok := d.Replacements[practiceID]
	return r, ok
}

// RemoveReplacement restores the original program practice.
func (e *ExtrasStore) RemoveReplacement(dayID, practiceID string) {
	st := e.load()
	d, ok := st[dayID]
	if !ok {
		return
	}
	delete(d.Replacements, practiceID)
	e.save(st)
}

// CanAddMore reports whether the day has room for another bonus practice.
func (e *ExtrasStore) CanAddMore(dayID string) bool {
	st := e.load()
	d, ok := st[dayID]
	if !ok {
		return true
	}
	return len(d.BonusPractices) < MaxBonusPerDay
}

// ShownIDs returns every id ever offered for the day.
func (e *ExtrasStore) ShownIDs(dayID string) []string {
	st := e.load()
	d, ok := st[dayID]
	if !ok {
		return nil
	}
	return d.ShownIDs
}
