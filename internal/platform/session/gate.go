package session

import (
	"context"
	"sync"
	"time"
)

// GateState is the navigation gate's current position
type GateState int

const (
	// GateLoading is the initial state, held only while the first identity
	// lookup is in flight.
	GateLoading GateState = iota
	// GateUnauthenticated exposes sign-in and sign-up only
	GateUnauthenticated
	// GateAuthenticated exposes the ledger surface
	GateAuthenticated
)

// String returns the state name
func (s GateState) String() string {
	switch s {
	case GateLoading:
		return "loading"
	case GateUnauthenticated:
		return "unauthenticated"
	case GateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// DefaultGateTimeout bounds the initial identity lookup
const DefaultGateTimeout = 10 * time.Second

// Gate decides which part of the application is reachable from the session
// state. It starts in GateLoading, settles to GateAuthenticated or
// GateUnauthenticated after the first identity lookup, and follows every
// later sign-in and sign-out through the provider's change subscription.
//
// On every entry into GateAuthenticated the reload hook fires exactly once,
// so the caller refreshes transactions, totals and profile rather than
// trusting stale data.
type Gate struct {
	provider Provider
	timeout  time.Duration
	reload   func(Identity)

	mu       sync.Mutex
	state    GateState
	identity *Identity
	cancel   func()
	closed   bool
}

// GateOption configures a Gate
type GateOption func(*Gate)

// WithGateTimeout bounds how long the initial identity lookup may take
// before the gate gives up and settles to GateUnauthenticated.
func WithGateTimeout(d time.Duration) GateOption {
	return func(g *Gate) { g.timeout = d }
}

// WithReload sets the hook fired on every entry into GateAuthenticated
func WithReload(fn func(Identity)) GateOption {
	return func(g *Gate) { g.reload = fn }
}

// NewGate creates a gate over the session provider. Call Start to resolve
// the initial state and Close to tear the gate down.
func NewGate(provider Provider, opts ...GateOption) *Gate {
	g := &Gate{
		provider: provider,
		timeout:  DefaultGateTimeout,
		state:    GateLoading,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start subscribes to session changes and resolves the initial state. It
// blocks until the gate has settled; a failed or timed-out lookup settles
// to GateUnauthenticated rather than hanging in GateLoading.
func (g *Gate) Start(ctx context.Context) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.cancel = g.provider.OnChange(g.apply)
	g.mu.Unlock()

	lookupCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	id, err := g.provider.CurrentIdentity(lookupCtx)
	if err != nil || id == nil {
		g.settle()
		return
	}
	g.apply(id)
}

// State returns the gate's current state
func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Identity returns the signed-in identity, or nil outside GateAuthenticated
func (g *Gate) Identity() *Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.identity == nil {
		return nil
	}
	cp := *g.identity
	return &cp
}

// Close deregisters the change subscription. A closed gate ignores every
// later notification, so no callback ever runs against torn-down state.
func (g *Gate) Close() {
	g.mu.Lock()
	cancel := g.cancel
	g.cancel = nil
	g.closed = true
	g.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// apply moves the gate to match the reported identity
func (g *Gate) apply(id *Identity) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}

	var reload func(Identity)
	var entered Identity

	if id == nil {
		g.state = GateUnauthenticated
		g.identity = nil
	} else {
		entering := g.state != GateAuthenticated || g.identity == nil || g.identity.ID != id.ID
		cp := *id
		g.state = GateAuthenticated
		g.identity = &cp
		if entering && g.reload != nil {
			reload = g.reload
			entered = cp
		}
	}
	g.mu.Unlock()

	if reload != nil {
		reload(entered)
	}
}

// settle moves GateLoading to GateUnauthenticated. A gate that already left
// GateLoading (a sign-in raced the initial lookup) is left alone.
func (g *Gate) settle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == GateLoading && !g.closed {
		g.state = GateUnauthenticated
	}
}
