package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPoolLoads(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	durations := p.AvailableDurations()
	assert.Equal(t, []int{1, 2, 3, 5, 7, 10}, durations)

	total := 0
	for _, d := range durations {
		assert.Positive(t, p.CountForDuration(d), "bucket %d should not be empty", d)
		total += p.CountForDuration(d)
	}
	assert.GreaterOrEqual(t, total, 15)
}

func TestDefaultPoolEntriesWellFormed(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, d := range p.AvailableDurations() {
		for _, e := range p.Entries(d) {
			require.NotEmpty(t, e.ID)
			require.NotEmpty(t, e.Title)
			assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
			seen[e.ID] = true

			_, ok := p.CategoryInfo(string(e.Category))
			assert.True(t, ok, "entry %s has unknown category %s", e.ID, e.Category)
		}
	}
}

func TestParseRejectsBadJSON(t *testing.T) {
	_, err := Parse([]byte("{nope"))
	assert.Error(t, err)
}

func TestParseRejectsBadDurationKey(t *testing.T) {
	_, err := Parse([]byte(`{"practices": {"short": []}}`))
	assert.Error(t, err)
}

func TestNearbyDurations(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	tests := []struct {
		duration int
		want     []int
	}{
		{1, []int{2}},           // nothing below the shortest
		{2, []int{1, 3}},        // below first, then above
		{5, []int{3, 7}},
		{10, []int{7}},          // nothing above the longest
		{4, []int{3, 5}},        // off-catalog durations still get neighbors
		{15, []int{10}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.NearbyDurations(tt.duration), "duration %d", tt.duration)
	}
}

func TestEntryPracticeCarriesBucketDuration(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	e := p.Entries(3)[0]
	pr := e.Practice(3)
	assert.Equal(t, e.ID, pr.ID)
	assert.Equal(t, 3, pr.Duration)
	assert.False(t, pr.FromProgram)
}

func TestCategoriesSorted(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	cats := p.Categories()
	require.NotEmpty(t, cats)
	assert.IsIncreasing(t, cats)
}
