package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/together/internal/client/models"
)

// ErrUnrecognizedPayload is returned by Normalize when the current-user
// payload matches neither known shape.
var ErrUnrecognizedPayload = errors.New("unrecognized identity payload")

// userRecord is the nested "user" object of volunteer and association payloads.
type userRecord struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	UserType string `json:"user_type"`
}

// payload is the union of every field the backend sends for the current user.
type payload struct {
	User *userRecord `json:"user"`

	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`

	IDVolunteer *int64 `json:"id_volunteer"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	City        string `json:"city"`

	IDAsso  *int64 `json:"id_asso"`
	Name    string `json:"name"`
	RNACode string `json:"rna_code"`

	IDAdmin *int64 `json:"id_admin"`
}

// Normalize turns a raw current-user payload into an Identity.
//
// Two shapes are recognized, tried in order:
//   - nested: a "user" object carries the role (user_type) and account
//     fields; role-specific ids and profile fields sit at the root;
//   - admin: no "user" object, but id_admin or email at the root. A missing
//     id_admin defaults to 0.
//
// Anything else fails with ErrUnrecognizedPayload.
func Normalize(raw []byte) (*models.Identity, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnrecognizedPayload, err)
	}

	if p.User != nil {
		return fromNested(&p)
	}
	if p.IDAdmin != nil || p.Email != "" {
		return fromAdmin(&p), nil
	}
	return nil, ErrUnrecognizedPayload
}

func fromNested(p *payload) (*models.Identity, error) {
	role, ok := models.ParseRole(p.User.UserType)
	if !ok {
		return nil, fmt.Errorf("%w: user_type %q", ErrUnrecognizedPayload, p.User.UserType)
	}

	id := &models.Identity{
		UserID:   p.User.ID,
		Email:    p.User.Email,
		Username: p.User.Username,
		Role:     role,
	}

	switch role {
	case models.RoleVolunteer:
		if p.IDVolunteer == nil {
			return nil, fmt.Errorf("%w: volunteer without id_volunteer", ErrUnrecognizedPayload)
		}
		id.VolunteerID = p.IDVolunteer
		id.FirstName = p.FirstName
		id.LastName = p.LastName
		id.Phone = p.Phone
		id.City = p.City
	case models.RoleAssociation:
		if p.IDAsso == nil {
			return nil, fmt.Errorf("%w: association without id_asso", ErrUnrecognizedPayload)
		}
		id.AssociationID = p.IDAsso
		id.OrganizationName = p.Name
		id.RNACode = p.RNACode
		id.Phone = p.Phone
		id.City = p.City
	case models.RoleAdmin:
		id.AdminID = adminID(p)
	}
	return id, nil
}

func fromAdmin(p *payload) *models.Identity {
	return &models.Identity{
		UserID:   p.ID,
		Email:    p.Email,
		Username: p.Username,
		Role:     models.RoleAdmin,
		AdminID:  adminID(p),
	}
}

func adminID(p *payload) *int64 {
	if p.IDAdmin == nil {
		return models.Int64(0)
	}
	return models.Int64(*p.IDAdmin)
}
