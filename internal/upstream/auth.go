package upstream

import "context"

// tokenTTLMins mirrors the expiresInMins the upstream expects on login
// and refresh. The cookie lifetime in internal/session matches it.
const tokenTTLMins = 60

// LoginResult is the upstream's login response: profile fields plus the
// token pair. The profile subset kept client-side never includes tokens.
type LoginResult struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Gender       string `json:"gender"`
	Image        string `json:"image"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Profile is the identity returned by the me endpoint.
type Profile struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Image     string `json:"image"`
}

// TokenPair is the refresh response.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ExpiresInMins int    `json:"expiresInMins"`
}

type refreshRequest struct {
	RefreshToken  string `json:"refreshToken"`
	ExpiresInMins int    `json:"expiresInMins"`
}

// CredentialGateway is the identity-facing slice of the upstream API.
// internal/session depends on this interface, not on Client.
type CredentialGateway interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	CurrentIdentity(ctx context.Context, accessToken string) (*Profile, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	req := loginRequest{
		Username:      username,
		Password:      password,
		ExpiresInMins: tokenTTLMins,
	}

	var result LoginResult
	if err := c.postJSON(ctx, "/auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CurrentIdentity(ctx context.Context, accessToken string) (*Profile, error) {
	var result Profile
	if err := c.getJSON(ctx, "/auth/me", accessToken, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Refresh exchanges a refresh token for a fresh pair. No caller is wired
// to it yet; token expiry is handled by re-authenticating.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	req := refreshRequest{
		RefreshToken:  refreshToken,
		ExpiresInMins: tokenTTLMins,
	}

	var result TokenPair
	if err := c.postJSON(ctx, "/auth/refresh", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
