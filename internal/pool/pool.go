// Package pool holds the static catalog of standalone practices used for
// bonus draws and replacements. Entries are bucketed by duration and never
// change at runtime.
package pool

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/quietloop/praktika/internal/program"
)

//go:embed pool.json
var rawPool []byte

// DurationOrder is the fixed ascending set of bucket durations in minutes.
var DurationOrder = []int{1, 2, 3, 5, 7, 10}

// Entry is one selectable practice as stored in the pool. Duration is
// carried by the bucket, not the entry.
type Entry struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Category     program.Category     `json:"category"`
	Purpose      string               `json:"purpose"`
	Instructions program.Instructions `json:"instructions"`
}

// CategoryInfo describes a practice category for display.
type CategoryInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Meta carries pool provenance fields.
type Meta struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	LastUpdated string `json:"last_updated"`
}

// Pool is a read-only view over the practice catalog.
type Pool struct {
	meta       Meta
	buckets    map[int][]Entry
	categories map[string]CategoryInfo
}

type poolFile struct {
	Meta       Meta                    `json:"meta"`
	Practices  map[string][]Entry      `json:"practices"`
	Categories map[string]CategoryInfo `json:"categories"`
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
	defaultErr  error
)

// Default returns the pool shipped with the binary, parsed once.
func Default() (*Pool, error) {
	defaultOnce.Do(func() {
		defaultPool, defaultErr = Parse(rawPool)
	})
	return defaultPool, defaultErr
}

// Parse builds a Pool from its JSON representation.
func Parse(raw []byte) (*Pool, error) {
	var f poolFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse pool: %w", err)
	}

	buckets := make(map[int][]Entry, len(f.Practices))
	for key, entries := range f.Practices {
		d, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("parse pool: bad duration key %q", key)
		}
		buckets[d] = entries
	}

	return &Pool{
		meta:       f.Meta,
		buckets:    buckets,
		categories: f.Categories,
	}, nil
}

func (p *Pool) Meta() Meta { return p.meta }

// AvailableDurations returns the durations from the fixed order that have
// at least one entry, ascending.
func (p *Pool) AvailableDurations() []int {
	var out []int
	for _, d := range DurationOrder {
		if len(p.buckets[d]) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// NearbyDurations returns at most two fallback durations for d: the
// closest bucket below it, then the closest above it.
func (p *Pool) NearbyDurations(d int) []int {
	var out []int
	for i := len(DurationOrder) - 1; i >= 0; i-- {
		if DurationOrder[i] < d {
			out = append(out, DurationOrder[i])
			break
		}
	}
	for _, dur := range DurationOrder {
		if dur > d {
			out = append(out, dur)
			break
		}
	}
	return out
}

// CountForDuration returns the number of entries in a bucket.
func (p *Pool) CountForDuration(d int) int {
	return len(p.buckets[d])
}

// Entries returns the bucket for a duration in stored order.
func (p *Pool) Entries(d int) []Entry {
	return p.buckets[d]
}

// CategoryInfo looks up display info for a category key.
func (p *Pool) CategoryInfo(key string) (CategoryInfo, bool) {
	info, ok := p.categories[key]
	return info, ok
}

// Categories returns all category keys, sorted.
func (p *Pool) Categories() []string {
	keys := make([]string, 0, len(p.categories))
	for k := range p.categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Practice materializes an entry as a practice with the bucket duration
// attached.
func (e Entry) Practice(duration int) program.Practice {
	return program.Practice{
		ID:           e.ID,
		Title:        e.Title,
		Duration:     duration,
		Category:     e.Category,
		Purpose:      e.Purpose,
		Instructions: e.Instructions,
		FromProgram:  false,
	}
}
