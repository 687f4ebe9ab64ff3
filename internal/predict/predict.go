// Package predict estimates waiting and completion times from queue depth.
// Both functions are pure and do no I/O.
package predict

import (
	"math"
	"time"
)

// Rush-hour multipliers. Bands are disjoint, so at most one applies.
const (
	peakFactor  = 1.3 // 09:00-11:59 and 14:00-16:59
	lunchFactor = 1.2 // 12:00-13:59
)

// Wait returns the estimated wait in minutes for a token with
// patientsBefore people still ahead of it, rounded to 2 decimals.
// timeOfDay is optional; when set, the hour adjusts the base estimate for
// rush-hour load. A negative patientsBefore counts as zero: a token at or
// behind the serving point waits no time at all, which happens to waiting
// tokens overtaken by an out-of-order doctor call.
func Wait(patientsBefore int, avgServiceMinutes float64, timeOfDay *time.Time) float64 {
	if patientsBefore < 0 {
		patientsBefore = 0
	}

	base := float64(patientsBefore) * avgServiceMinutes

	if timeOfDay != nil {
		hour := timeOfDay.Hour()
		if (hour >= 9 && hour <= 11) || (hour >= 14 && hour <= 16) {
			base *= peakFactor
		} else if hour == 12 || hour == 13 {
			base *= lunchFactor
		}
	}

	return math.Round(base*100) / 100
}

// Completion returns when a token issued at issuedAt and sitting at
// position is expected to finish.
func Completion(issuedAt time.Time, position int, avgServiceMinutes float64) time.Time {
	estimated := time.Duration(float64(position) * avgServiceMinutes * float64(time.Minute))
	return issuedAt.Add(estimated)
}
