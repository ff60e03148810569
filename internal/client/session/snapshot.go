package session

import "github.com/dmitrijs2005/together/internal/client/models"

// ResolutionState tells whether an identity resolution is in flight.
type ResolutionState int

const (
	Resolving ResolutionState = iota
	Resolved
)

func (s ResolutionState) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session at one point in time.
type Snapshot struct {
	Identity *models.Identity
	Role     models.Role
	State    ResolutionState
}

func (s Snapshot) IsLoading() bool {
	return s.State == Resolving
}

// IsGuest reports whether no identity is attached.
func (s Snapshot) IsGuest() bool {
	return s.Identity == nil
}

func guest() Snapshot {
	return Snapshot{Role: models.RoleGuestVolunteer, State: Resolved}
}

func resolved(id *models.Identity) Snapshot {
	return Snapshot{Identity: id, Role: id.Role, State: Resolved}
}
