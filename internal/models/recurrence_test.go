package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecurrenceRuleIsRecurring(t *testing.T) {
	cases := []struct {
		rule *RecurrenceRule
		want bool
	}{
		{nil, false},
		{&RecurrenceRule{Kind: RecurrenceNone}, false},
		{&RecurrenceRule{Kind: RecurrenceDaily}, true},
		{&RecurrenceRule{Kind: RecurrenceWeekly}, true},
		{&RecurrenceRule{Kind: RecurrenceMonthly}, true},
		{&RecurrenceRule{Kind: RecurrenceYearly}, true},
		{&RecurrenceRule{Kind: RecurrenceCustom}, false},
		{&RecurrenceRule{Kind: RecurrenceKind("lunar")}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.rule.IsRecurring())
	}
}

func TestRecurrenceRuleStepCoercion(t *testing.T) {
	assert.Equal(t, 1, (&RecurrenceRule{Interval: 0}).Step())
	assert.Equal(t, 1, (&RecurrenceRule{Interval: -3}).Step())
	assert.Equal(t, 4, (&RecurrenceRule{Interval: 4}).Step())
	var nilRule *RecurrenceRule
	assert.Equal(t, 1, nilRule.Step())
}

func TestRecurrenceRuleExceptsDateMatchesCalendarDay(t *testing.T) {
	ex := time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)
	rule := &RecurrenceRule{Kind: RecurrenceDaily, Exceptions: []time.Time{ex}}

	assert.True(t, rule.ExceptsDate(time.Date(2024, time.March, 8, 17, 45, 0, 0, time.UTC)))
	assert.False(t, rule.ExceptsDate(time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)))
}
