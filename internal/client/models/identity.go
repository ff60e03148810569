// Package models holds the client-side domain types shared by the session,
// credential store and access policy packages.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the access role of the current user.
type Role string

const (
	RoleVolunteer      Role = "volunteer"
	RoleAssociation    Role = "association"
	RoleAdmin          Role = "admin"
	RoleGuestVolunteer Role = "guest_volunteer"
)

// ErrInconsistentIdentity reports an identity whose role-specific ids do not
// match its role.
var ErrInconsistentIdentity = errors.New("inconsistent identity")

// ParseRole maps a backend user_type to a Role. Guests are never reported by
// the backend, so "guest_volunteer" is not accepted here.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleVolunteer:
		return RoleVolunteer, true
	case RoleAssociation:
		return RoleAssociation, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Identity is the normalized view of the authenticated user.
// Exactly one of VolunteerID, AssociationID, AdminID is set, matching Role.
type Identity struct {
	UserID   int64  `json:"id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Role     Role   `json:"role"`

	VolunteerID *int64 `json:"id_volunteer,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	City        string `json:"city,omitempty"`

	AssociationID    *int64 `json:"id_asso,omitempty"`
	OrganizationName string `json:"name,omitempty"`
	RNACode          string `json:"rna_code,omitempty"`

	AdminID *int64 `json:"id_admin,omitempty"`
}

// Validate checks the role/id-set invariant.
func (i *Identity) Validate() error {
	if i == nil {
		return fmt.Errorf("%w: nil", ErrInconsistentIdentity)
	}

	set := map[Role]bool{
		RoleVolunteer:   i.VolunteerID != nil,
		RoleAssociation: i.AssociationID != nil,
		RoleAdmin:       i.AdminID != nil,
	}
	own, known := set[i.Role]
	if !known {
		return fmt.Errorf("%w: role %q", ErrInconsistentIdentity, i.Role)
	}
	if !own {
		return fmt.Errorf("%w: %s id missing", ErrInconsistentIdentity, i.Role)
	}
	for r, ok := range set {
		if r != i.Role && ok {
			return fmt.Errorf("%w: %s id set on %s", ErrInconsistentIdentity, r, i.Role)
		}
	}
	return nil
}

// DisplayName picks the name shown for the user: "first last" when both are
// present, then the username, then fallback. A nil identity yields fallback.
func (i *Identity) DisplayName(fallback string) string {
	if i == nil {
		return fallback
	}
	first := strings.TrimSpace(i.FirstName)
	last := strings.TrimSpace(i.LastName)
	if first != "" && last != "" {
		return first + " " + last
	}
	if u := strings.TrimSpace(i.Username); u != "" {
		return u
	}
	return fallback
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}
