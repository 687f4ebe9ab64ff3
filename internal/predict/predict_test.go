package predict_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"arogya/queue-service/internal/predict"
)

func at(hour int) *time.Time {
	ts := time.Date(2025, 3, 10, hour, 30, 0, 0, time.UTC)
	return &ts
}

func TestWait_NoTimeOfDay(t *testing.T) {
	assert.InDelta(t, 30.0, predict.Wait(3, 10, nil), 0.001)
	assert.InDelta(t, 0.0, predict.Wait(0, 10, nil), 0.001)
}

func TestWait_FlooredAtZeroForOvertakenTokens(t *testing.T) {
	// a token behind the serving point has nobody ahead of it
	assert.InDelta(t, 0.0, predict.Wait(-1, 10, nil), 0.001)
	assert.InDelta(t, 0.0, predict.Wait(-5, 10, at(10)), 0.001)
}

func TestWait_RushHourBands(t *testing.T) {
	cases := []struct {
		name string
		hour int
		want float64
	}{
		{"morning peak", 10, 39.0},
		{"peak start", 9, 39.0},
		{"peak end", 11, 39.0},
		{"lunch", 12, 36.0},
		{"lunch end", 13, 36.0},
		{"afternoon peak", 15, 39.0},
		{"afternoon peak end", 16, 39.0},
		{"quiet evening", 20, 30.0},
		{"early morning", 8, 30.0},
		{"after peak", 17, 30.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, predict.Wait(3, 10, at(tc.hour)), 0.001)
		})
	}
}

func TestWait_RoundsToTwoDecimals(t *testing.T) {
	// 7 * 4.505 * 1.3 = 40.9955 -> 41.0
	assert.InDelta(t, 41.0, predict.Wait(7, 4.505, at(10)), 0.0001)
}

func TestCompletion(t *testing.T) {
	issued := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	got := predict.Completion(issued, 4, 5)
	assert.Equal(t, issued.Add(20*time.Minute), got)

	// fractional averages produce sub-minute precision
	got = predict.Completion(issued, 3, 2.5)
	assert.Equal(t, issued.Add(7*time.Minute+30*time.Second), got)
}
