package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  DueDate
		err   bool
	}{
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"tbd", "TBD", DueDateTBD, false},
		{"tbd lowercase", "tbd", DueDateTBD, false},
		{"calendar date", "2025-03-14", "2025-03-14", false},
		{"rfc3339", "2025-03-14T23:59:59Z", "2025-03-14", false},
		{"free text", "next week", "", true},
		{"invalid day", "2025-02-30", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDueDate(tc.input)
			if tc.err {
				assert.ErrorIs(t, err, ErrInvalidDueDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDueDateTime(t *testing.T) {
	d, ok := DueDate("2025-03-14").Time()
	require.True(t, ok)
	assert.Equal(t, 14, d.Day())

	_, ok = DueDateTBD.Time()
	assert.False(t, ok)
}

func TestPriorityNormalize(t *testing.T) {
	assert.Equal(t, PriorityHigh, Priority("high").Normalize())
	assert.Equal(t, PriorityLow, Priority(" LOW ").Normalize())
	assert.Equal(t, PriorityMedium, PriorityTBD.Normalize())
	assert.Equal(t, PriorityMedium, Priority("").Normalize())
	assert.Equal(t, PriorityMedium, Priority("urgent").Normalize())
	assert.False(t, PriorityTBD.IsCanonical())
}

func TestParseStatusFilter(t *testing.T) {
	f, err := ParseStatusFilter("")
	require.NoError(t, err)
	assert.Equal(t, StatusAll, f)

	f, err = ParseStatusFilter("Pending")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, f)

	_, err = ParseStatusFilter("archived")
	assert.ErrorIs(t, err, ErrInvalidStatusFilter)
}

func TestStatusFilterMatches(t *testing.T) {
	done := Task{IsCompleted: true}
	open := Task{}

	assert.True(t, StatusAll.Matches(done))
	assert.True(t, StatusAll.Matches(open))
	assert.True(t, StatusCompleted.Matches(done))
	assert.False(t, StatusCompleted.Matches(open))
	assert.True(t, StatusPending.Matches(open))
	assert.False(t, StatusPending.Matches(done))
}

func TestSubTaskSuggestionToDraft(t *testing.T) {
	s := SubTaskSuggestion{
		Title:       "Book venue",
		Description: "Call three venues",
		DueDate:     "2025-06-01",
		Priority:    PriorityHigh,
		Selected:    true,
	}
	assert.Equal(t, TaskDraft{
		Title:       "Book venue",
		Description: "Call three venues",
		DueDate:     "2025-06-01",
		Priority:    PriorityHigh,
	}, s.ToDraft())

	s.Priority = PriorityTBD
	s.DueDate = "sometime soon"
	draft := s.ToDraft()
	assert.Equal(t, PriorityMedium, draft.Priority)
	assert.Equal(t, DueDateTBD, draft.DueDate)
}
