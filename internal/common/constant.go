// Package common contains small helpers and constants shared by the client
// packages.
package common

const (
	// AuthorizationHeader carries the bearer access token on REST calls.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader correlates a client call with backend logs.
	RequestIDHeader = "X-Request-ID"

	// BearerPrefix precedes the access token in AuthorizationHeader.
	BearerPrefix = "Bearer "
)
