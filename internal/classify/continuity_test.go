package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_ClassifiedActivityWins(t *testing.T) {
	r := NewResolver(10, false)
	assert.Equal(t, "A", r.Next(ActivityFrame{Activity: "A", Timestamp: 1000}))
	assert.Equal(t, "B", r.Next(ActivityFrame{Activity: "B", Timestamp: 1010}))
}

func TestResolver_InheritsUnderGap(t *testing.T) {
	r := NewResolver(10, false)
	r.Next(ActivityFrame{Activity: "A", Timestamp: 1000})

	got := r.Next(ActivityFrame{Timestamp: 1000 + 9*60})
	assert.Equal(t, "A", got)
}

func TestResolver_GapBoundaryIsStrict(t *testing.T) {
	r := NewResolver(10, false)
	r.Next(ActivityFrame{Activity: "A", Timestamp: 1000})

	// Exactly at the threshold a new segment begins.
	got := r.Next(ActivityFrame{Timestamp: 1000 + 10*60})
	assert.Equal(t, Unclassified, got)
}

func TestResolver_NoPreviousFrame(t *testing.T) {
	r := NewResolver(10, false)
	assert.Equal(t, Unclassified, r.Next(ActivityFrame{Timestamp: 1000}))
}

func TestResolver_InheritanceChains(t *testing.T) {
	r := NewResolver(10, false)
	r.Next(ActivityFrame{Activity: "A", Timestamp: 1000})

	// Each inherited frame renews the window.
	assert.Equal(t, "A", r.Next(ActivityFrame{Timestamp: 1000 + 9*60}))
	assert.Equal(t, "A", r.Next(ActivityFrame{Timestamp: 1000 + 18*60}))
}

func TestResolver_BlockNames(t *testing.T) {
	r := NewResolver(10, true)
	got := r.Next(ActivityFrame{Timestamp: 1000})
	assert.Equal(t, BlockName(1000), got)

	// The block label carries forward like any other activity.
	assert.Equal(t, BlockName(1000), r.Next(ActivityFrame{Timestamp: 1000 + 60}))
}

func TestResolver_IdenticalTimestamps(t *testing.T) {
	r := NewResolver(10, false)
	r.Next(ActivityFrame{Activity: "A", Timestamp: 1000})
	assert.Equal(t, "A", r.Next(ActivityFrame{Timestamp: 1000}))
}
