// Package common contains constants and helpers shared by the client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"
	// BearerScheme prefixes the token value in the Authorization header.
	BearerScheme = "Bearer "
	// RequestIDHeaderName carries a per-request id for correlating client and server logs.
	RequestIDHeaderName = "X-Request-ID"
)

// Keys under which the session is persisted in local storage.
const (
	SessionTokenKey = "token"
	SessionEmailKey = "email"
)
