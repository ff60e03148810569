package cli

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

func (a *App) getStatus() string {
	s := a.session.Snapshot()
	status := a.guard.CurrentUserName(s)
	if s.IsLoading() {
		status += " …"
	}
	if mode := a.Mode(); mode != "" {
		status += " " + string(mode)
	}
	if area := a.currentArea(); area != nil {
		status += " @" + area.Name
	}
	return fmt.Sprintf("(%s)", status)
}

// Shell resolves the session, starts the connectivity and session watchers
// and runs the REPL on stdin until the user exits.
func (a *App) Shell(ctx context.Context) error {
	a.println("Welcome to Together CLI (type 'help' for commands)")

	a.session.Refetch(ctx)

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.StartOnlineStatusWatcher(gctx, a.config.OnlineCheckInterval)
	})
	g.Go(func() error {
		return a.WatchSession(gctx)
	})

	runREPL(gctx, a, a.getStatus, a.reader)

	cancel()
	return g.Wait()
}
