package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", "2024-06-01 "+hhmm, time.Local)
	require.NoError(t, err)
	return ts
}

func TestEvaluateHalfOpenInterval(t *testing.T) {
	rules := []Rule{{
		ID:              "r1",
		Name:            "day",
		StartTime:       "09:00",
		EndTime:         "17:00",
		Active:          true,
		ConfigOverrides: map[string]any{"title": "LUNCH"},
	}}

	cases := []struct {
		hhmm  string
		match bool
	}{
		{"08:59", false},
		{"09:00", true},
		{"16:59", true},
		{"17:00", false},
	}
	for _, tc := range cases {
		ov, ok := Evaluate(rules, at(t, tc.hhmm))
		assert.Equal(t, tc.match, ok, "at %s", tc.hhmm)
		if tc.match {
			assert.Equal(t, "LUNCH", ov["title"])
		}
	}
}

func TestEvaluateFirstMatchWins(t *testing.T) {
	rules := []Rule{
		{ID: "a", StartTime: "08:00", EndTime: "20:00", Active: true,
			ConfigOverrides: map[string]any{"title": "FIRST"}},
		{ID: "b", StartTime: "09:00", EndTime: "12:00", Active: true,
			ConfigOverrides: map[string]any{"title": "SECOND", "theme": "noir"}},
	}

	ov, ok := Evaluate(rules, at(t, "10:30"))
	require.True(t, ok)
	assert.Equal(t, "FIRST", ov["title"])
	// оверрайды не сливаются
	assert.NotContains(t, ov, "theme")
}

func TestEvaluateInactiveRuleIgnored(t *testing.T) {
	rules := []Rule{{
		ID: "r1", StartTime: "00:00", EndTime: "23:59", Active: false,
		ConfigOverrides: map[string]any{"title": "NEVER"},
	}}

	_, ok := Evaluate(rules, at(t, "12:00"))
	assert.False(t, ok)
}

func TestEvaluateEmptySchedule(t *testing.T) {
	_, ok := Evaluate(nil, time.Now())
	assert.False(t, ok)

	_, ok = Evaluate([]Rule{}, time.Now())
	assert.False(t, ok)
}

func TestEvaluateEmptyInterval(t *testing.T) {
	rules := []Rule{{
		ID: "r1", StartTime: "12:00", EndTime: "12:00", Active: true,
		ConfigOverrides: map[string]any{"title": "X"},
	}}

	_, ok := Evaluate(rules, at(t, "12:00"))
	assert.False(t, ok)
}

func TestEvaluateSkipsToLaterMatch(t *testing.T) {
	rules := []Rule{
		{ID: "a", StartTime: "06:00", EndTime: "09:00", Active: true,
			ConfigOverrides: map[string]any{"title": "MORNING"}},
		{ID: "b", StartTime: "09:00", EndTime: "12:00", Active: false,
			ConfigOverrides: map[string]any{"title": "OFF"}},
		{ID: "c", StartTime: "09:00", EndTime: "18:00", Active: true,
			ConfigOverrides: map[string]any{"title": "DAY"}},
	}

	ov, ok := Evaluate(rules, at(t, "10:00"))
	require.True(t, ok)
	assert.Equal(t, "DAY", ov["title"])
}
