package guard

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/together/internal/client/models"
	"github.com/dmitrijs2005/together/internal/client/nav"
	"github.com/dmitrijs2005/together/internal/client/session"
	"github.com/dmitrijs2005/together/internal/i18n"
	"github.com/dmitrijs2005/together/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allRoles = []models.Role{
	models.RoleVolunteer,
	models.RoleAssociation,
	models.RoleAdmin,
	models.RoleGuestVolunteer,
}

func snap(r models.Role, st session.ResolutionState) session.Snapshot {
	return session.Snapshot{Role: r, State: st}
}

func TestEvaluate_Table(t *testing.T) {
	web := PlatformCapabilities{IsWeb: true}
	mobile := PlatformCapabilities{IsWeb: false}

	tests := []struct {
		name     string
		snap     session.Snapshot
		area     Area
		platform PlatformCapabilities
		want     Decision
	}{
		{"volunteer on admin web", snap(models.RoleVolunteer, session.Resolved), AdminArea, web, Decision{RedirectTo, nav.RouteLogin}},
		{"admin on admin mobile", snap(models.RoleAdmin, session.Resolved), AdminArea, mobile, Decision{Outcome: ShowUnavailableOnMobile}},
		{"admin on admin web", snap(models.RoleAdmin, session.Resolved), AdminArea, web, Decision{Outcome: RenderArea}},
		{"guest on admin mobile", snap(models.RoleGuestVolunteer, session.Resolved), AdminArea, mobile, Decision{Outcome: ShowUnavailableOnMobile}},
		{"resolving on admin mobile", snap(models.RoleAdmin, session.Resolving), AdminArea, mobile, Decision{Outcome: ShowLoading}},
		{"association on association web", snap(models.RoleAssociation, session.Resolved), AssociationArea, web, Decision{Outcome: RenderArea}},
		{"admin on association web", snap(models.RoleAdmin, session.Resolved), AssociationArea, web, Decision{RedirectTo, nav.RouteLogin}},
		{"volunteer on volunteer mobile", snap(models.RoleVolunteer, session.Resolved), VolunteerArea, mobile, Decision{Outcome: RenderArea}},
		{"guest on volunteer mobile", snap(models.RoleGuestVolunteer, session.Resolved), VolunteerArea, mobile, Decision{RedirectTo, nav.RouteGuestHome}},
		{"association on volunteer web", snap(models.RoleAssociation, session.Resolved), VolunteerArea, web, Decision{RedirectTo, nav.RouteGuestHome}},
		{"resolving on volunteer", snap(models.RoleVolunteer, session.Resolving), VolunteerArea, web, Decision{Outcome: ShowLoading}},
		{"admin on guest mobile", snap(models.RoleAdmin, session.Resolved), GuestArea, mobile, Decision{Outcome: RenderArea}},
		{"resolving on guest", snap(models.RoleGuestVolunteer, session.Resolving), GuestArea, mobile, Decision{Outcome: ShowLoading}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.snap, tt.area, tt.platform))
		})
	}
}

func TestEvaluate_AllCombinations(t *testing.T) {
	for _, area := range Areas() {
		for _, role := range allRoles {
			for _, isWeb := range []bool{true, false} {
				for _, st := range []session.ResolutionState{session.Resolving, session.Resolved} {
					name := fmt.Sprintf("%s/%s/web=%v/%s", area.Name, role, isWeb, st)
					t.Run(name, func(t *testing.T) {
						d := Evaluate(snap(role, st), area, PlatformCapabilities{IsWeb: isWeb})

						switch {
						case st == session.Resolving:
							require.Equal(t, Decision{Outcome: ShowLoading}, d)
						case area.WebOnly && !isWeb:
							require.Equal(t, Decision{Outcome: ShowUnavailableOnMobile}, d)
						case area.Restricted && role != area.RequiredRole:
							require.Equal(t, Decision{Outcome: RedirectTo, Target: area.Fallback}, d)
						default:
							require.Equal(t, Decision{Outcome: RenderArea}, d)
						}
					})
				}
			}
		}
	}
}

func TestAreas_Parameters(t *testing.T) {
	assert.Equal(t, models.RoleAdmin, AdminArea.RequiredRole)
	assert.True(t, AdminArea.WebOnly)
	assert.Equal(t, nav.RouteLogin, AdminArea.Fallback)

	assert.Equal(t, models.RoleAssociation, AssociationArea.RequiredRole)
	assert.True(t, AssociationArea.WebOnly)
	assert.Equal(t, nav.RouteLogin, AssociationArea.Fallback)

	assert.Equal(t, models.RoleVolunteer, VolunteerArea.RequiredRole)
	assert.False(t, VolunteerArea.WebOnly)
	assert.Equal(t, nav.RouteGuestHome, VolunteerArea.Fallback)

	assert.False(t, GuestArea.Restricted)
	assert.False(t, GuestArea.WebOnly)
}

func TestLookupAndHomeArea(t *testing.T) {
	a, ok := Lookup(" Admin ")
	require.True(t, ok)
	require.Equal(t, AdminArea, a)

	_, ok = Lookup("moderation")
	require.False(t, ok)

	require.Equal(t, VolunteerArea, HomeArea(models.RoleVolunteer))
	require.Equal(t, GuestArea, HomeArea(models.RoleGuestVolunteer))
	require.Equal(t, AssociationArea, HomeArea(models.RoleAssociation))
	require.Equal(t, AdminArea, HomeArea(models.RoleAdmin))
}

func TestGuard_Enter_RedirectReplacesRouteAndLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	h := nav.NewHistory(nav.RouteGuestHome)
	h.Push(nav.RouteAdmin)

	g := New(PlatformCapabilities{IsWeb: true}, h, i18n.New("fr"), logger)
	d := g.Enter(context.Background(), snap(models.RoleVolunteer, session.Resolved), AdminArea)

	require.Equal(t, RedirectTo, d.Outcome)
	require.Equal(t, []string{nav.RouteGuestHome, nav.RouteLogin}, h.Entries())
	require.Contains(t, buf.String(), "level=DEBUG")
	require.NotContains(t, buf.String(), "level=ERROR")
}

func TestGuard_Enter_RenderLeavesHistory(t *testing.T) {
	h := nav.NewHistory(nav.RouteVolunteer)
	g := New(PlatformCapabilities{}, h, i18n.New("fr"), logging.Discard())

	d := g.Enter(context.Background(), snap(models.RoleVolunteer, session.Resolved), VolunteerArea)

	require.Equal(t, RenderArea, d.Outcome)
	require.Equal(t, []string{nav.RouteVolunteer}, h.Entries())
}

func TestGuard_CurrentUserName(t *testing.T) {
	g := New(PlatformCapabilities{}, nav.NewHistory("/"), i18n.New("fr"), logging.Discard())

	full := session.Snapshot{Identity: &models.Identity{FirstName: "Jean", LastName: "Luc", Username: "jluc"}}
	user := session.Snapshot{Identity: &models.Identity{Username: "jluc"}}
	empty := session.Snapshot{Identity: &models.Identity{}}

	assert.Equal(t, "Jean Luc", g.CurrentUserName(full))
	assert.Equal(t, "jluc", g.CurrentUserName(user))
	assert.Equal(t, "Bénévole", g.CurrentUserName(empty))
	assert.Equal(t, "Bénévole", g.CurrentUserName(session.Snapshot{}))

	assert.Equal(t, "Volunteer", DisplayName(nil, i18n.New("en")))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "show_loading", ShowLoading.String())
	assert.Equal(t, "show_unavailable_on_mobile", ShowUnavailableOnMobile.String())
	assert.Equal(t, "redirect", RedirectTo.String())
	assert.Equal(t, "render", RenderArea.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
