// Package session keeps the signed-in state of the client: the bearer token,
// where it is persisted between runs, and what can be read from it.
//
// The token is opaque to the client apart from its payload, which DecodeClaims
// reads without verification to learn who is signed in. Manager is the single
// owner of the token at runtime; the HTTP transport asks it for the token on
// every request and clears it when the server answers 401.
package session
