package optimizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"arogya/queue-service/internal/optimizer"
)

func TestOptimize_DescendingByScore(t *testing.T) {
	ranked := optimizer.Optimize([]optimizer.Candidate{
		{TokenID: 1, Age: 30, WaitingMinutes: 5, TokenType: "regular"},
		{TokenID: 2, Age: 40, Emergency: true, TokenType: "regular"},
		{TokenID: 3, Age: 70, WaitingMinutes: 10, TokenType: "regular"},
	})

	assert.Len(t, ranked, 3)
	assert.Equal(t, int64(2), ranked[0].TokenID)
	assert.Equal(t, int64(3), ranked[1].TokenID)
	assert.Equal(t, int64(1), ranked[2].TokenID)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestOptimize_EqualScoresKeepInputOrder(t *testing.T) {
	ranked := optimizer.Optimize([]optimizer.Candidate{
		{TokenID: 10, Age: 30, WaitingMinutes: 5},
		{TokenID: 11, Age: 30, WaitingMinutes: 5},
		{TokenID: 12, Age: 30, WaitingMinutes: 5},
	})

	assert.Equal(t, int64(10), ranked[0].TokenID)
	assert.Equal(t, int64(11), ranked[1].TokenID)
	assert.Equal(t, int64(12), ranked[2].TokenID)
}

func TestOptimize_Empty(t *testing.T) {
	assert.Empty(t, optimizer.Optimize(nil))
}
