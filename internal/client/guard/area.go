package guard

import (
	"strings"

	"github.com/dmitrijs2005/together/internal/client/models"
	"github.com/dmitrijs2005/together/internal/client/nav"
)

// Area is a top-level navigational section. Restricted areas require
// RequiredRole and send everyone else to Fallback.
type Area struct {
	Name         string
	Route        string
	RequiredRole models.Role
	Restricted   bool
	WebOnly      bool
	Fallback     string
}

var (
	AdminArea = Area{
		Name:         "admin",
		Route:        nav.RouteAdmin,
		RequiredRole: models.RoleAdmin,
		Restricted:   true,
		WebOnly:      true,
		Fallback:     nav.RouteLogin,
	}
	AssociationArea = Area{
		Name:         "association",
		Route:        nav.RouteAssociation,
		RequiredRole: models.RoleAssociation,
		Restricted:   true,
		WebOnly:      true,
		Fallback:     nav.RouteLogin,
	}
	VolunteerArea = Area{
		Name:         "volunteer",
		Route:        nav.RouteVolunteer,
		RequiredRole: models.RoleVolunteer,
		Restricted:   true,
		Fallback:     nav.RouteGuestHome,
	}
	GuestArea = Area{
		Name:  "guest",
		Route: nav.RouteGuestHome,
	}
)

func Areas() []Area {
	return []Area{AdminArea, AssociationArea, VolunteerArea, GuestArea}
}

// Lookup finds an area by name, case-insensitively.
func Lookup(name string) (Area, bool) {
	for _, a := range Areas() {
		if strings.EqualFold(a.Name, strings.TrimSpace(name)) {
			return a, true
		}
	}
	return Area{}, false
}

// HomeArea is where a user with role r lands after login.
func HomeArea(r models.Role) Area {
	switch r {
	case models.RoleAdmin:
		return AdminArea
	case models.RoleAssociation:
		return AssociationArea
	case models.RoleVolunteer:
		return VolunteerArea
	default:
		return GuestArea
	}
}
