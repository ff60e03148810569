// Package guard decides what each navigational area shows for the current
// session: its content, a loading placeholder, a web-only notice, or a
// redirect.
package guard

import (
	"context"

	"github.com/dmitrijs2005/together/internal/client/models"
	"github.com/dmitrijs2005/together/internal/client/nav"
	"github.com/dmitrijs2005/together/internal/client/session"
	"github.com/dmitrijs2005/together/internal/i18n"
	"github.com/dmitrijs2005/together/internal/logging"
)

type Outcome int

const (
	ShowLoading Outcome = iota
	ShowUnavailableOnMobile
	RedirectTo
	RenderArea
)

func (o Outcome) String() string {
	switch o {
	case ShowLoading:
		return "show_loading"
	case ShowUnavailableOnMobile:
		return "show_unavailable_on_mobile"
	case RedirectTo:
		return "redirect"
	case RenderArea:
		return "render"
	default:
		return "unknown"
	}
}

// Decision is the result of evaluating an area. Target is set only for
// RedirectTo.
type Decision struct {
	Outcome Outcome
	Target  string
}

// PlatformCapabilities describes the platform the client runs on.
type PlatformCapabilities struct {
	IsWeb bool
}

// Evaluate applies the access policy of area a to session s:
//
//  1. resolution in flight      → ShowLoading
//  2. web-only area off the web → ShowUnavailableOnMobile
//  3. role mismatch             → RedirectTo(a.Fallback)
//  4. otherwise                 → RenderArea
//
// Step 3 is skipped for open areas.
func Evaluate(s session.Snapshot, a Area, p PlatformCapabilities) Decision {
	if s.IsLoading() {
		return Decision{Outcome: ShowLoading}
	}
	if a.WebOnly && !p.IsWeb {
		return Decision{Outcome: ShowUnavailableOnMobile}
	}
	if a.Restricted && s.Role != a.RequiredRole {
		return Decision{Outcome: RedirectTo, Target: a.Fallback}
	}
	return Decision{Outcome: RenderArea}
}

// Guard evaluates areas and performs the resulting redirects.
type Guard struct {
	platform  PlatformCapabilities
	navigator nav.Navigator
	localizer *i18n.Localizer
	logger    logging.Logger
}

func New(platform PlatformCapabilities, navigator nav.Navigator, localizer *i18n.Localizer, logger logging.Logger) *Guard {
	return &Guard{platform: platform, navigator: navigator, localizer: localizer, logger: logger}
}

func (g *Guard) Platform() PlatformCapabilities {
	return g.platform
}

// Enter evaluates area a for s. A redirect replaces the current route so it
// leaves no history entry.
func (g *Guard) Enter(ctx context.Context, s session.Snapshot, a Area) Decision {
	d := Evaluate(s, a, g.platform)
	if d.Outcome == RedirectTo {
		g.logger.Debug(ctx, "area access redirected",
			"area", a.Name, "role", s.Role, "required", a.RequiredRole, "to", d.Target)
		g.navigator.Replace(d.Target)
	}
	return d
}

// CurrentUserName is the name every area shows for the current user.
func (g *Guard) CurrentUserName(s session.Snapshot) string {
	return DisplayName(s.Identity, g.localizer)
}

// DisplayName applies the display-name precedence with the localized
// default placeholder.
func DisplayName(id *models.Identity, l *i18n.Localizer) string {
	return id.DisplayName(l.T(i18n.KeyDefaultUserName))
}
