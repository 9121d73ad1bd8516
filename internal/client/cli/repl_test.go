package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) record(call string, args ...string) error {
	if len(args) > 0 {
		call += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeExec) LoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) List(context.Context) error                 { return f.record("list") }
func (f *fakeExec) Refresh(context.Context) error              { return f.record("refresh") }
func (f *fakeExec) Filter(_ context.Context, a []string) error { return f.record("filter", a...) }
func (f *fakeExec) ClearFilters(context.Context) error         { return f.record("clear") }
func (f *fakeExec) Sort(_ context.Context, a []string) error   { return f.record("sort", a...) }
func (f *fakeExec) NextPage(context.Context) error             { return f.record("next") }
func (f *fakeExec) PrevPage(context.Context) error             { return f.record("prev") }
func (f *fakeExec) Page(_ context.Context, a []string) error   { return f.record("page", a...) }
func (f *fakeExec) Add(context.Context) error                  { return f.record("add") }
func (f *fakeExec) Edit(_ context.Context, a []string) error   { return f.record("edit", a...) }
func (f *fakeExec) Show(_ context.Context, a []string) error   { return f.record("show", a...) }
func (f *fakeExec) CloseDetail(context.Context) error          { return f.record("close") }
func (f *fakeExec) Note(_ context.Context, a []string) error   { return f.record("note", a...) }
func (f *fakeExec) Done(_ context.Context, a []string) error   { return f.record("done", a...) }
func (f *fakeExec) Delete(_ context.Context, a []string) error { return f.record("delete", a...) }
func (f *fakeExec) Stats(context.Context) error                { return f.record("stats") }
func (f *fakeExec) History(context.Context) error              { return f.record("history") }
func (f *fakeExec) Users(context.Context) error                { return f.record("users") }

func TestRunREPL_DispatchesWithArgs(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "> " }, readerFromLines(
		"filter search buy milk",
		"",
		"sort priority desc",
		"page 2",
		"show t1",
		"note looks good",
		"done t1",
		"delete t1",
		"l",
		"exit",
		"list",
	), &out)

	assert.Equal(t, []string{
		"filter search buy milk",
		"sort priority desc",
		"page 2",
		"show t1",
		"note looks good",
		"done t1",
		"delete t1",
		"list",
	}, exec.calls)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_LoggedOutOnlyOffersAuth(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "> " }, readerFromLines(
		"help",
		"list",
		"add",
		"login",
		"list",
		"logout",
		"stats",
		"foobar",
	), &out)

	assert.Equal(t, []string{"login", "list", "logout"}, exec.calls)
	assert.Contains(t, out.String(), helpLoggedOut)
	assert.Equal(t, 3, strings.Count(out.String(), "You are not logged in."))
	assert.Contains(t, out.String(), "Unknown command: foobar")
}

func TestRunREPL_HelpFollowsSession(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "> " }, readerFromLines("help", "quit"), &out)

	assert.Contains(t, out.String(), "filter <field> [value]")
	assert.NotContains(t, out.String(), helpLoggedOut)
}
