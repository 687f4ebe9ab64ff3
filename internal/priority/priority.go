// Package priority computes the serving priority score for a token.
// Scoring is a pure function: no state, safe for concurrent use.
package priority

const (
	// MaxScore caps the final score so a long wait cannot overflow past
	// everything else forever.
	MaxScore = 200

	emergencyBonus = 100
	seniorBonus    = 30
	midlifeBonus   = 15
	childBonus     = 25
	vipBonus       = 50

	waitingFactor = 3
)

const TokenTypeVIP = "vip"

// Score sums the independent rule bonuses and clamps the result to
// [0, MaxScore]. Age bands: >=65 and >=50 are mutually exclusive (higher
// band wins); <=10 stacks with whatever else matched. Waiting time counts
// waitingFactor points per minute, unbounded before the clamp. Unrecognized
// token types score the same as "regular".
func Score(age int, emergency bool, waitingMinutes float64, tokenType string) int {
	score := 0.0

	if emergency {
		score += emergencyBonus
	}

	if age >= 65 {
		score += seniorBonus
	} else if age >= 50 {
		score += midlifeBonus
	}

	if age <= 10 {
		score += childBonus
	}

	score += waitingMinutes * waitingFactor

	if tokenType == TokenTypeVIP {
		score += vipBonus
	}

	if score > MaxScore {
		return MaxScore
	}
	if score < 0 {
		return 0
	}
	return int(score)
}
