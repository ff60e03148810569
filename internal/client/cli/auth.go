package cli

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/together/internal/client/guard"
	"github.com/dmitrijs2005/together/internal/common"
	"github.com/dmitrijs2005/together/internal/i18n"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errEmptyUsername = errors.New("username is empty")

// Login prompts for credentials and signs in. On success the user lands in
// the home area of their role.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	if username == "" {
		return errEmptyUsername
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, username, string(password)); err != nil {
		a.notice(color.FgRed, a.localizer.T(i18n.KeyLoginFailed, err))
		return err
	}

	s := a.session.Snapshot()
	a.notice(color.FgGreen, a.localizer.T(i18n.KeyGreeting, a.guard.CurrentUserName(s)))

	home := guard.HomeArea(s.Role)
	a.navigate(func() {
		a.history.Push(home.Route)
		a.enter(ctx, home)
	})
	return nil
}

// Logout clears the session. In the shell the session watcher then
// re-evaluates the open area.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.println(a.localizer.T(i18n.KeyLoggedOut))
	return nil
}

// Refetch re-resolves the identity from stored credentials and prints it.
func (a *App) Refetch(ctx context.Context) error {
	a.session.Refetch(ctx)
	return a.WhoAmI(ctx)
}

// WhoAmI prints the current identity and session state.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Snapshot()
	a.println(a.guard.CurrentUserName(s), "role="+string(s.Role), "state="+s.State.String())
	if id := s.Identity; id != nil {
		a.println("email="+id.Email, "username="+id.Username)
	}
	return nil
}
