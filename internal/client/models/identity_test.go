package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"volunteer", RoleVolunteer, true},
		{" Association ", RoleAssociation, true},
		{"ADMIN", RoleAdmin, true},
		{"guest_volunteer", "", false},
		{"", "", false},
		{"superuser", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName_Precedence(t *testing.T) {
	tests := []struct {
		name string
		id   *Identity
		want string
	}{
		{"full name", &Identity{FirstName: "Jean", LastName: "Luc", Username: "jluc"}, "Jean Luc"},
		{"username only", &Identity{Username: "jluc"}, "jluc"},
		{"first name without last falls to username", &Identity{FirstName: "Jean", Username: "jluc"}, "jluc"},
		{"blank names ignored", &Identity{FirstName: " ", LastName: "Luc"}, "Guest"},
		{"neither", &Identity{}, "Guest"},
		{"nil identity", nil, "Guest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.DisplayName("Guest"))
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, (&Identity{Role: RoleVolunteer, VolunteerID: Int64(7)}).Validate())
	require.NoError(t, (&Identity{Role: RoleAdmin, AdminID: Int64(0)}).Validate())

	bad := []*Identity{
		nil,
		{Role: RoleVolunteer},
		{Role: RoleAssociation, AssociationID: Int64(1), AdminID: Int64(2)},
		{Role: RoleGuestVolunteer},
		{Role: "ghost", AdminID: Int64(1)},
	}
	for _, id := range bad {
		require.ErrorIs(t, id.Validate(), ErrInconsistentIdentity)
	}
}
