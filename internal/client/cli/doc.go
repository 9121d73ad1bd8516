// Package cli provides the interactive gophtodo command-line client.
//
// It wires configuration, the local session store, the remote API client,
// the list controller and the terminal renderer into an App, and exposes it
// two ways: an interactive REPL (the root command) and one-shot cobra
// subcommands (list, stats, version).
//
// The REPL offers register/login while logged out and the full set of list,
// item and note commands once a session exists. A 401 from any request drops
// the session and the REPL immediately falls back to the login hint.
package cli
