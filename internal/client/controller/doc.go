// Package controller owns the state of the todo list screen: the current
// filter, sort and page, the loaded items, the stats snapshot, the open
// detail item and the completed-items history.
//
// Every operation talks to the remote API through client.Client and applies
// the outcome to the state in a single locked transition. Failures never
// escape as panics: they are logged, stored as a user-facing message in the
// error slot, and returned so one-shot commands can set an exit code.
//
// Views never hold a reference into the live state; they render the copy
// returned by State.
package controller
