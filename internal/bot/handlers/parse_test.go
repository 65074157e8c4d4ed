package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

func TestParseWhen(t *testing.T) {
	got, err := parseWhen("2024-05-06 14:30")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, time.May, 6, 14, 30, 0, 0, time.Local), *got)

	got, err = parseWhen("2024-05-06")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, time.May, 6, 0, 0, 0, 0, time.Local), *got)

	got, err = parseWhen("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseWhen("tomorrow")
	assert.Error(t, err)
}

func TestParseRecurrenceSpec(t *testing.T) {
	cases := []struct {
		spec string
		want *models.RecurrenceRule
	}{
		{"", nil},
		{"none", nil},
		{"daily", &models.RecurrenceRule{Kind: models.RecurrenceDaily, Interval: 1}},
		{"weekly:2", &models.RecurrenceRule{Kind: models.RecurrenceWeekly, Interval: 2}},
		{"weekly@1,3,5", &models.RecurrenceRule{Kind: models.RecurrenceWeekly, Interval: 1, DaysOfWeek: []int{1, 3, 5}}},
		{"monthly:1:31", &models.RecurrenceRule{Kind: models.RecurrenceMonthly, Interval: 1, DayOfMonth: 31}},
	}

	for _, tc := range cases {
		t.Run(tc.spec, func(t *testing.T) {
			got, err := parseRecurrenceSpec(tc.spec)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRecurrenceSpecRejectsGarbage(t *testing.T) {
	for _, spec := range []string{"hourly", "daily:0", "daily:x", "monthly:1:32", "weekly@7", "weekly@mon"} {
		t.Run(spec, func(t *testing.T) {
			_, err := parseRecurrenceSpec(spec)
			assert.Error(t, err)
		})
	}
}
