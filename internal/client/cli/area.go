package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/together/internal/client/guard"
	"github.com/dmitrijs2005/together/internal/client/session"
	"github.com/dmitrijs2005/together/internal/i18n"
)

// Open navigates to the named area and applies its access policy.
func (a *App) Open(ctx context.Context, name string) error {
	area, ok := guard.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown area %q (known: %s)", name, areaNames())
	}

	a.navigate(func() {
		a.history.Push(area.Route)
		a.enter(ctx, area)
	})
	return nil
}

// Back returns to the previous route and re-enters its area, if any.
func (a *App) Back(ctx context.Context) error {
	a.navigate(func() {
		if !a.history.Back() {
			a.println("Nothing to go back to")
			return
		}
		if area, ok := areaByRoute(a.history.Current()); ok {
			a.enter(ctx, area)
			return
		}
		a.setCurrentArea(nil)
		a.println(a.history.Current())
	})
	return nil
}

// enter evaluates area against the current snapshot and prints the result.
// Callers hold navMu.
func (a *App) enter(ctx context.Context, area guard.Area) guard.Decision {
	snap := a.session.Snapshot()
	a.entered = snap
	return a.enterWith(ctx, snap, area)
}

// enterWith follows a redirect into the target area, which is never
// restricted for the role that was just turned away.
func (a *App) enterWith(ctx context.Context, snap session.Snapshot, area guard.Area) guard.Decision {
	d := a.guard.Enter(ctx, snap, area)

	switch d.Outcome {
	case guard.ShowLoading:
		a.setCurrentArea(&area)
		a.notice(color.FgCyan, a.localizer.T(i18n.KeyLoading))
	case guard.ShowUnavailableOnMobile:
		a.setCurrentArea(&area)
		a.notice(color.FgYellow, a.localizer.T(i18n.KeyUnavailableMobile))
	case guard.RedirectTo:
		a.notice(color.FgYellow, a.localizer.T(i18n.KeyRedirected, d.Target))
		if target, ok := areaByRoute(d.Target); ok {
			a.enterWith(ctx, snap, target)
		} else {
			a.setCurrentArea(nil)
		}
	case guard.RenderArea:
		a.setCurrentArea(&area)
		a.println(fmt.Sprintf("[%s] %s", area.Name,
			a.localizer.T(i18n.KeyGreeting, a.guard.CurrentUserName(snap))))
	}
	return d
}

func areaByRoute(route string) (guard.Area, bool) {
	for _, area := range guard.Areas() {
		if area.Route == route {
			return area, true
		}
	}
	return guard.Area{}, false
}

func areaNames() string {
	names := make([]string, 0, len(guard.Areas()))
	for _, area := range guard.Areas() {
		names = append(names, area.Name)
	}
	return strings.Join(names, ", ")
}
