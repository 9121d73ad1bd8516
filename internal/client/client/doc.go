// Package client is the client-side gateway to the remote todo API.
//
// # Overview
//
// The package provides:
//  1. The Client interface: authentication, the user directory, item CRUD,
//     note appends and the stats snapshot.
//  2. HTTPClient, its JSON-over-HTTP implementation. A round tripper injects
//     the bearer token from a TokenSource and an X-Request-ID on every request.
//     Any 401 response triggers the configured UnauthorizedHandler before the
//     error reaches the caller.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite file holding the session and applies embedded goose migrations.
//
// # Error Handling
//
// Transport failures and timeouts wrap ErrUnavailable. Non-2xx responses are
// *APIError values carrying the server's message; 401 and 404 unwrap to
// ErrUnauthorized and ErrNotFound. UserMessage picks what to show the user.
//
// HTTPClient is safe for concurrent use.
package client
