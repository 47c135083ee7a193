package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goldguard-app/backend/internal/platform/user"
)

// Provider is the session surface the navigation gate consumes: a query for
// the current identity and a change subscription.
type Provider interface {
	// CurrentIdentity returns the signed-in identity, or (nil, nil) when
	// nobody is signed in.
	CurrentIdentity(ctx context.Context) (*Identity, error)

	// OnChange registers a callback invoked with the new identity on every
	// sign-in and with nil on sign-out. The returned function deregisters
	// the callback; calling it more than once is safe.
	OnChange(fn func(*Identity)) (cancel func())
}

// TokenSource holds the caller's access token between runs. The zero token
// value ("") means no session is stored.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Store(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthProvider is the full session provider: it signs users in and out via
// the user service, persists the resulting token through a TokenSource, and
// notifies subscribers of every change.
type AuthProvider struct {
	users  *user.Service
	tokens *TokenService
	source TokenSource

	// initProfile, when set, records the display name chosen at sign-up
	initProfile func(ctx context.Context, userID uuid.UUID, name string) error

	mu     sync.Mutex
	subs   map[int]func(*Identity)
	nextID int
}

// AuthProviderOption configures an AuthProvider
type AuthProviderOption func(*AuthProvider)

// WithProfileInit sets the hook that stores the sign-up display name
func WithProfileInit(fn func(ctx context.Context, userID uuid.UUID, name string) error) AuthProviderOption {
	return func(p *AuthProvider) { p.initProfile = fn }
}

// NewAuthProvider creates a session provider over the user service
func NewAuthProvider(users *user.Service, tokens *TokenService, source TokenSource, opts ...AuthProviderOption) *AuthProvider {
	p := &AuthProvider{
		users:  users,
		tokens: tokens,
		source: source,
		subs:   make(map[int]func(*Identity)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignIn authenticates the credentials, stores a fresh token and notifies
// subscribers.
func (p *AuthProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	u, err := p.users.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return p.establish(ctx, u)
}

// SignUp registers a new account, records the display name when one was
// given, and signs the new account in.
func (p *AuthProvider) SignUp(ctx context.Context, email, password, displayName string) (*Identity, error) {
	u, err := p.users.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if displayName != "" && p.initProfile != nil {
		if err := p.initProfile(ctx, u.ID, displayName); err != nil {
			return nil, fmt.Errorf("failed to store display name: %w", err)
		}
	}

	return p.establish(ctx, u)
}

// SignOut clears the stored token and notifies subscribers
func (p *AuthProvider) SignOut(ctx context.Context) error {
	if err := p.source.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	p.notify(nil)
	return nil
}

// CurrentIdentity resolves the stored token to an identity. An absent or
// expired token yields (nil, nil).
func (p *AuthProvider) CurrentIdentity(ctx context.Context) (*Identity, error) {
	token, err := p.source.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session token: %w", err)
	}
	if token == "" {
		return nil, nil
	}

	id, err := p.tokens.Validate(token)
	if err != nil {
		// Stale tokens are dropped, not reported.
		_ = p.source.Clear(ctx)
		return nil, nil
	}
	return id, nil
}

// OnChange registers a session change callback
func (p *AuthProvider) OnChange(fn func(*Identity)) (cancel func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *AuthProvider) establish(ctx context.Context, u *user.User) (*Identity, error) {
	id := Identity{ID: u.ID, Email: u.Email}

	token, err := p.tokens.Generate(id)
	if err != nil {
		return nil, err
	}
	if err := p.source.Store(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}

	p.notify(&id)
	return &id, nil
}

func (p *AuthProvider) notify(id *Identity) {
	p.mu.Lock()
	fns := make([]func(*Identity), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}
