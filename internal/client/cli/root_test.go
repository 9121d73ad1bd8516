package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophtodo/internal/logging"
)

func testFactory(t *testing.T, srv *fakeServer, token string, out *bytes.Buffer) AppFactory {
	t.Helper()
	return func(ctx context.Context) (*App, error) {
		app, err := NewApp(ctx, testConfig(srv.URL), logging.Discard(), strings.NewReader(""), out)
		if err != nil {
			return nil, err
		}
		if token != "" {
			require.NoError(t, app.session.Set(ctx, token, "alice@example.com"))
		}
		return app, nil
	}
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCommand(func(context.Context) (*App, error) {
		return nil, errors.New("not needed")
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Build version: N/A")
}

func TestListCommand_QueriesOnce(t *testing.T) {
	srv := newFakeServer(t)
	var out bytes.Buffer
	root := NewRootCommand(testFactory(t, srv, srv.token, &out))
	root.SetArgs([]string{"list", "--priority", "high", "--tag", "work", "--sort", "oldest", "--page", "2"})

	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Equal(t, []string{"limit=10&page=2&priority=high&sortBy=createdAt&sortOrder=asc&tag=work"}, srv.Queries())
	assert.Contains(t, out.String(), "Write report")
	assert.Contains(t, out.String(), "filter priority=high tag=work")
}

func TestListCommand_RejectsBadSort(t *testing.T) {
	srv := newFakeServer(t)
	var out bytes.Buffer
	root := NewRootCommand(testFactory(t, srv, srv.token, &out))
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"list", "--sort", "sideways"})

	assert.Error(t, root.ExecuteContext(context.Background()))
	assert.Empty(t, srv.Calls())
}

func TestListCommand_RequiresSession(t *testing.T) {
	srv := newFakeServer(t)
	var out bytes.Buffer
	root := NewRootCommand(testFactory(t, srv, "", &out))
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"list"})

	err := root.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, errNotLoggedIn)
	assert.Contains(t, out.String(), "You are not logged in.")
	assert.Empty(t, srv.Calls())
}

func TestStatsCommand(t *testing.T) {
	srv := newFakeServer(t)
	var out bytes.Buffer
	root := NewRootCommand(testFactory(t, srv, srv.token, &out))
	root.SetArgs([]string{"stats"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Regexp(t, `Total\s+4`, out.String())
	assert.Equal(t, []string{"GET /api/todos/stats"}, srv.Calls())
}
