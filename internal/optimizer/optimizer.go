// Package optimizer produces a suggested serving order for a batch of
// waiting tokens. The suggestion is advisory: the ledger's own
// lowest-number-first rule stays authoritative until staff acts on it.
package optimizer

import (
	"sort"

	"arogya/queue-service/internal/priority"
)

// Candidate carries the priority inputs for one waiting token.
type Candidate struct {
	TokenID        int64   `json:"token_id"`
	Age            int     `json:"age"`
	Emergency      bool    `json:"emergency"`
	WaitingMinutes float64 `json:"waiting_minutes"`
	TokenType      string  `json:"token_type"`
}

// Ranked is a candidate with its computed score.
type Ranked struct {
	Candidate
	Score int `json:"priority_score"`
}

// Optimize scores each candidate and returns them in descending score
// order. The sort is stable: equal scores keep their input order, so
// equal-priority tokens are never reshuffled.
func Optimize(candidates []Candidate) []Ranked {
	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		ranked[i] = Ranked{
			Candidate: c,
			Score:     priority.Score(c.Age, c.Emergency, c.WaitingMinutes, c.TokenType),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
