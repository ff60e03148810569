package client

import "errors"

var (
	ErrUnavailable         = errors.New("server unavailable")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnexpectedResponse  = errors.New("unexpected response")
	ErrNoRefreshCredential = errors.New("no refresh token stored")
)
