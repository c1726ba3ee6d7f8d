package session

import (
	"context"
)

// Storage is the durable, reload-surviving half of the token replica pair.
// It is the authoritative copy: the cookie is repaired from it, never the
// reverse. Implementations (e.g., Redis) must remain opaque key/value stores.
type Storage interface {
	// Identity returns the cached profile, or nil when none is stored.
	Identity(ctx context.Context) (*Identity, error)
	// AccessToken returns the stored access token, or "" when absent.
	AccessToken(ctx context.Context) (string, error)
	// RefreshToken returns the stored refresh token, or "" when absent.
	RefreshToken(ctx context.Context) (string, error)
	// SaveLogin persists a full login result: profile plus both tokens.
	SaveLogin(ctx context.Context, identity *Identity, accessToken, refreshToken string) error
	// SaveProfile refreshes the profile and access token after a
	// successful verification, leaving the refresh token untouched.
	SaveProfile(ctx context.Context, identity *Identity, accessToken string) error
	// Clear drops profile and both tokens together.
	Clear(ctx context.Context) error
}

// Storage key suffixes. All three are cleared together on logout or
// verification failure.
const (
	keyIdentity     = "user"
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
)
