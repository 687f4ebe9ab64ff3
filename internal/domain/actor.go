package domain

type Role string

const (
	RoleUser   Role = "user"
	RoleDoctor Role = "doctor"
	RoleAdmin  Role = "admin"
)

// Actor is the verified identity the gateway attaches to every request.
// The ledger re-checks it on each mutating operation instead of trusting
// ambient session state.
type Actor struct {
	UserID int
	Role   Role
}

func (a Actor) Is(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
