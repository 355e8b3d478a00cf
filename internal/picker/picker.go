// Package picker draws random practices from the content pool under
// duration, category and exclusion constraints.
package picker

import (
	"math/rand/v2"

	"github.com/quietloop/praktika/internal/pool"
	"github.com/quietloop/praktika/internal/program"
)

// Options constrains a random draw. Zero values mean unconstrained:
// Duration 0 considers every bucket, empty Category matches all.
type Options struct {
	Duration   int
	ExcludeIDs []string
	Category   program.Category
}

// Picker selects practices from a pool. The index function decides which
// candidate wins; tests inject a deterministic one.
type Picker struct {
	pool *pool.Pool
	intn func(n int) int
}

// New returns a picker backed by the process RNG.
func New(p *pool.Pool) *Picker {
	return &Picker{pool: p, intn: rand.IntN}
}

// NewWithIndexFn returns a picker whose winning index is chosen by fn,
// called with the candidate count. fn must return a value in [0, n).
func NewWithIndexFn(p *pool.Pool, fn func(n int) int) *Picker {
	return &Picker{pool: p, intn: fn}
}

// Random picks one practice uniformly from all pool entries that satisfy
// opts. Every candidate is equally likely regardless of its bucket. The
// second result is false when no entry qualifies.
func (pk *Picker) Random(opts Options) (program.Practice, bool) {
	excluded := make(map[string]struct{}, len(opts.ExcludeIDs))
	for _, id := range opts.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	durations := pool.DurationOrder
	if opts.Duration > 0 {
		durations = []int{opts.Duration}
	}

	var candidates []program.Practice
	for _, d := range durations {
		for _, entry := range pk.pool.Entries(d) {
			if _, skip := excluded[entry.ID]; skip {
				continue
			}
			if opts.Category != "" && entry.Category != opts.Category {
				continue
			}
			candidates = append(candidates, entry.Practice(d))
		}
	}

	if len(candidates) == 0 {
		return program.Practice{}, false
	}
	return candidates[pk.intn(len(candidates))], true
}

// Replacement picks a substitute for current, never current itself.
// The exact duration bucket is tried first, then the nearby buckets in
// the pool's fallback order (below before above).
func (pk *Picker) Replacement(current program.Practice, excludeIDs []string) (program.Practice, bool) {
	exclude := make([]string, 0, len(excludeIDs)+1)
	exclude = append(exclude, excludeIDs...)
	exclude = append(exclude, current.ID)

	if p, ok := pk.Random(Options{Duration: current.Duration, ExcludeIDs: exclude}); ok {
		return p, true
	}

	for _, d := range pk.pool.NearbyDurations(current.Duration) {
		if p, ok := pk.Random(Options{Duration: d, ExcludeIDs: exclude}); ok {
			return p, true
		}
	}

	return program.Practice{}, false
}
