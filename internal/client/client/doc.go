// Package client contains the transport layer of the Together client.
//
// # Overview
//
//  1. A transport-agnostic contract (Client) for the REST endpoints the
//     session layer needs: Login, CurrentUser, Ping.
//  2. HTTPClient, the net/http implementation. Authenticated calls carry the
//     stored bearer token; expired tokens are refreshed transparently and
//     concurrent refreshes are collapsed into one request.
//  3. Local database bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite file behind the credential store and applies embedded goose
//     migrations.
//
// # Error Handling
//
// HTTP outcomes are mapped to sentinel errors matched with errors.Is:
// ErrUnauthorized (401), ErrUnavailable (transport failures, 5xx, 408, 429),
// ErrInvalidCredentials (rejected login) and ErrUnexpectedResponse.
package client
