package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/client/view"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	LoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Filter(ctx context.Context, args []string) error
	ClearFilters(ctx context.Context) error
	Sort(ctx context.Context, args []string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Page(ctx context.Context, args []string) error

	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	CloseDetail(ctx context.Context) error
	Note(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error

	Stats(ctx context.Context) error
	History(ctx context.Context) error
	Users(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = `Available commands:
  list | refresh                 show or reload the current page
  filter <field> [value]         priority, tag, mention, completed, search
  clear                          drop all filters
  sort <preset | field order>    newest, oldest, priority-desc, priority-asc
  next | prev | page <n>         paging
  add | edit <id>                create or edit a todo
  show <id> | close              open or close the detail view
  note [text]                    add a note to the open todo
  done <id> | delete <id>        toggle completion, delete
  stats | history | users        stats, recently completed, user directory
  logout | exit`
)

// runREPL starts a simple read–eval–print loop for the todo CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// While logged out only help, register, login and exit are accepted; any
// other known command prints the login hint. The check is made per command,
// so a session dropped by a 401 takes effect on the next line.
//
// Errors returned by command handlers are ignored here; handlers report to
// the user themselves.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprint(w, promptFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.LoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}
			continue

		case "register":
			_ = a.Register(ctx)
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		handler, ok := sessionCommand(a, cmd, args)
		if !ok {
			fmt.Fprintln(w, "Unknown command:", cmd)
			continue
		}
		if !a.LoggedIn() {
			fmt.Fprintln(w, view.LoginHint())
			continue
		}
		_ = handler(ctx)
	}
}

// sessionCommand resolves a command that needs a session.
func sessionCommand(a execIface, cmd string, args []string) (func(context.Context) error, bool) {
	withArgs := func(fn func(context.Context, []string) error) func(context.Context) error {
		return func(ctx context.Context) error { return fn(ctx, args) }
	}

	switch cmd {
	case "logout":
		return a.Logout, true
	case "l", "list":
		return a.List, true
	case "refresh":
		return a.Refresh, true
	case "filter":
		return withArgs(a.Filter), true
	case "clear":
		return a.ClearFilters, true
	case "sort":
		return withArgs(a.Sort), true
	case "next":
		return a.NextPage, true
	case "prev":
		return a.PrevPage, true
	case "page":
		return withArgs(a.Page), true
	case "add":
		return a.Add, true
	case "edit":
		return withArgs(a.Edit), true
	case "show":
		return withArgs(a.Show), true
	case "close":
		return a.CloseDetail, true
	case "note":
		return withArgs(a.Note), true
	case "done":
		return withArgs(a.Done), true
	case "delete":
		return withArgs(a.Delete), true
	case "stats":
		return a.Stats, true
	case "history":
		return a.History, true
	case "users":
		return a.Users, true
	default:
		return nil, false
	}
}
