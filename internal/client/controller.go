package client

import (
	"context"
	"sync"

	"github.com/krpeacock/mo-lsp/internal/resolve"
)

// StartFunc launches a server process from a launch specification. It
// exists so the controller can be exercised without real processes.
type StartFunc func(ctx context.Context, spec resolve.LaunchSpec, opts Options) (*Session, error)

// Controller owns the single live session for a workspace. Every session is
// an explicit handle: starting hands one out, restarting stops the old
// handle before a new one exists, and nothing else ever swaps the current
// session.
type Controller struct {
	start StartFunc

	// mu protects current.
	mu      sync.Mutex
	current *Session
}

// NewController creates a controller launching real server processes.
func NewController() *Controller {
	return &Controller{start: Start}
}

// Start launches spec and makes it the current session. A previous session
// is stopped first, so one workspace never runs two servers; this makes
// Start double as restart.
func (c *Controller) Start(ctx context.Context, spec resolve.LaunchSpec, opts Options) (*Session, error) {
	c.mu.Lock()
	prev := c.current
	c.current = nil
	c.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}

	sess, err := c.start(ctx, spec, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.current = sess
	c.mu.Unlock()

	return sess, nil
}

// Stop terminates the current session, if any, and waits for it to exit.
// Idempotent: stopping with no session active does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	sess := c.current
	c.current = nil
	c.mu.Unlock()

	if sess != nil {
		sess.Stop()
	}
}

// Session returns the current session handle, or nil when none is active.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}
