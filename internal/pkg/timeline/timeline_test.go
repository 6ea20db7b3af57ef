package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectMarksCompletedSteps(t *testing.T) {
	placed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	assigned := placed.Add(2 * time.Hour)

	entries := Project(DonationSteps, []Event{
		{Code: "created", Timestamp: placed},
		{Code: "assigned", Note: "Assigned to dealer #4", Timestamp: assigned},
	})

	require.Len(t, entries, len(DonationSteps))

	assert.True(t, entries[0].Done)
	require.NotNil(t, entries[0].Timestamp)
	assert.Equal(t, placed, *entries[0].Timestamp)

	assert.True(t, entries[1].Done)
	assert.Equal(t, "Assigned to dealer #4", entries[1].Note)

	// Everything after the last logged step stays pending
	for _, entry := range entries[2:] {
		assert.False(t, entry.Done)
		assert.Nil(t, entry.Timestamp)
	}
}

func TestProjectFirstOccurrenceWins(t *testing.T) {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	// A donation can bounce back to pending and be assigned again; the
	// timeline keeps the first assignment.
	entries := Project(DonationSteps, []Event{
		{Code: "assigned", Note: "first", Timestamp: first},
		{Code: "assigned", Note: "second", Timestamp: second},
	})

	assert.Equal(t, "first", entries[1].Note)
	assert.Equal(t, first, *entries[1].Timestamp)
}

func TestProjectIgnoresUnknownCodes(t *testing.T) {
	entries := Project(GaudaanSteps, []Event{
		{Code: "rejected", Timestamp: time.Now()},
	})

	for _, entry := range entries {
		assert.False(t, entry.Done)
	}
}

func TestProjectEmptyLog(t *testing.T) {
	entries := Project(GaudaanSteps, nil)
	require.Len(t, entries, len(GaudaanSteps))
	for i, entry := range entries {
		assert.Equal(t, GaudaanSteps[i].Code, entry.Code)
		assert.False(t, entry.Done)
	}
}
