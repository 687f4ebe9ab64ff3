// Package insights exposes the pure computations (priority scoring, wait
// and completion prediction, queue optimization) as endpoints for staff
// tooling. None of them touch ledger state.
package insights

type InsightsHandler struct{}

func New() *InsightsHandler {
	return &InsightsHandler{}
}
