package client

import (
	"context"
	"encoding/json"
)

// TokenPair is what the auth endpoint hands out on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Client is the REST surface of the Together backend used by the session layer.
type Client interface {
	// Login exchanges a username/password for a token pair.
	Login(ctx context.Context, username, password string) (TokenPair, error)
	// CurrentUser returns the raw "current user" payload for the stored access token.
	CurrentUser(ctx context.Context) (json.RawMessage, error)
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// TokenStore is where the HTTP client reads the bearer token from and where
// refreshed tokens go. credstore.Store implements it.
//
// ReplaceTokens must be a compare-and-swap on the refresh token: it stores
// access/refresh only if the stored refresh token still equals used, and
// reports whether it did.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	ReplaceTokens(ctx context.Context, used, access, refresh string) (bool, error)
}
