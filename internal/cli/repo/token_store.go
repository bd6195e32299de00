package repo

// TokenStore is the client-side auth token storage abstraction.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// UserContextStore stores the current user context (last login).
// An empty login means no identity is present.
type UserContextStore interface {
	SaveLogin(login string) error
	LoadLogin() (string, error)
	ClearLogin() error
}
