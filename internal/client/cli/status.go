package cli

import (
	"context"
	"time"
)

const pingTimeout = 3 * time.Second

// StartOnlineStatusWatcher probes the backend every interval and tracks the
// connectivity mode. Coming back online triggers a session refetch so an
// identity resolved from cache is replaced by the server's view.
// It returns nil when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.pinger.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}

	wasOffline := a.Mode() == ModeOffline
	if a.setMode(ctx, ModeOnline) && wasOffline {
		a.session.Refetch(ctx)
	}
}

// WatchSession re-evaluates the open area on every committed session
// change, so leaving a role (logout, rejected credentials) redirects away
// from an area the user may no longer see. A snapshot the open area was
// already entered with is skipped. It returns nil when ctx is done.
func (a *App) WatchSession(ctx context.Context) error {
	updates, unsubscribe := a.session.Subscribe()
	defer unsubscribe()

	for {
		select {
		case s, ok := <-updates:
			if !ok {
				return nil
			}
			if s.IsLoading() {
				continue
			}
			a.navigate(func() {
				if s == a.entered {
					return
				}
				if area := a.currentArea(); area != nil {
					a.enter(ctx, *area)
				}
			})
		case <-ctx.Done():
			return nil
		}
	}
}
