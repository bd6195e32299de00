package service

import (
	"context"

	"BirthdayKeeper/internal/cli/api"
	"BirthdayKeeper/internal/cli/repo"
	"BirthdayKeeper/internal/config"
)

// IdentityProvider exposes the current owner identity, or empty when
// nobody is logged in.
type IdentityProvider interface {
	CurrentUser() (string, error)
}

// ConnectivityProvider reports whether the device can reach the backend.
type ConnectivityProvider interface {
	IsOnline(ctx context.Context) bool
}

// StoredIdentity reads the identity from the persisted user context.
type StoredIdentity struct {
	Users repo.UserContextStore
}

var _ IdentityProvider = (*StoredIdentity)(nil)

func (p StoredIdentity) CurrentUser() (string, error) {
	return p.Users.LoadLogin()
}

// ProbeConnectivity checks the server health endpoint on every ask.
// No state is cached: the answer is only used to gate a single pass.
type ProbeConnectivity struct {
	Cfg *config.Config
}

var _ ConnectivityProvider = (*ProbeConnectivity)(nil)

func (p ProbeConnectivity) IsOnline(ctx context.Context) bool {
	return api.Ping(ctx, p.Cfg.ServerURL)
}

// StaticConnectivity is a fixed answer, handy for tests and for forcing
// offline mode from the command line.
type StaticConnectivity bool

func (s StaticConnectivity) IsOnline(context.Context) bool { return bool(s) }
