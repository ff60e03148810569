// Package nav is the client's navigation primitive: an in-memory route
// history with push and replace semantics.
package nav

import "sync"

// Routes known to the client.
const (
	RouteLogin       = "/login"
	RouteGuestHome   = "/guest/home"
	RouteAdmin       = "/admin"
	RouteAssociation = "/association"
	RouteVolunteer   = "/volunteer"
)

// Navigator moves between routes. Push adds a history entry (user-driven
// moves); Replace swaps the current one (access-control redirects).
type Navigator interface {
	Push(route string)
	Replace(route string)
	Current() string
}

// History is a Navigator backed by a stack of routes. It is safe for
// concurrent use.
type History struct {
	mu    sync.Mutex
	stack []string
}

func NewHistory(initial string) *History {
	return &History{stack: []string{initial}}
}

func (h *History) Push(route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = append(h.stack, route)
}

func (h *History) Replace(route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		h.stack = append(h.stack, route)
		return
	}
	h.stack[len(h.stack)-1] = route
}

// Back pops the current route. The last remaining entry is never popped.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) <= 1 {
		return false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return true
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		return ""
	}
	return h.stack[len(h.stack)-1]
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.stack...)
}
