package session

import (
	"fmt"
	"io"
	"sync"
)

// RouteLogin mirrors client.RouteLogin; the client package cannot be imported here.
const RouteLogin = "/login"

// Navigator tracks the current screen route and gates protected ones.
type Navigator struct {
	mu      sync.Mutex
	current string
	store   *Store
	out     io.Writer
}

func NewNavigator(store *Store, out io.Writer) *Navigator {
	return &Navigator{store: store, out: out, current: "/"}
}

// Navigate switches to route. Landing on the login route prints a hint.
func (n *Navigator) Navigate(route string) {
	n.mu.Lock()
	n.current = route
	n.mu.Unlock()
	if route == RouteLogin && n.out != nil {
		fmt.Fprintln(n.out, "Session expired or missing. Run `wbs login` to sign in.")
	}
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Require gates a protected route: unauthenticated sessions are sent to login.
func (n *Navigator) Require(route string) error {
	if route != RouteLogin && (n.store == nil || !n.store.Authenticated()) {
		n.Navigate(RouteLogin)
		return ErrNotAuthenticated
	}
	n.Navigate(route)
	return nil
}
