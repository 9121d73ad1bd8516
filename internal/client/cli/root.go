package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophtodo/internal/buildinfo"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/view"
)

var errNotLoggedIn = errors.New("not logged in")

// AppFactory opens the App for commands that need it. Commands close the App
// they open.
type AppFactory func(ctx context.Context) (*App, error)

// NewRootCommand builds the command tree. Without a subcommand the
// interactive session starts.
func NewRootCommand(open AppFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "gophtodo",
		Short: "A terminal client for the todo service",
		Long: `gophtodo talks to a remote todo API: list, filter and page through your
todos, create and edit them, mention teammates and keep notes.
Run without arguments for the interactive session.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			app.Run(cmd.Context())
			return nil
		},
	}

	root.AddCommand(newListCommand(open))
	root.AddCommand(newStatsCommand(open))
	root.AddCommand(newVersionCommand())
	return root
}

// withSession opens the App and runs fn only when a session is stored.
func withSession(open AppFactory, fn func(ctx context.Context, app *App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		app, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if !app.LoggedIn() {
			app.println(view.LoginHint())
			return errNotLoggedIn
		}
		return fn(cmd.Context(), app)
	}
}

func newListCommand(open AppFactory) *cobra.Command {
	var (
		filter models.Filter
		sortBy string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of todos",
		Example: `  gophtodo list --priority high
  gophtodo list --tag work --sort oldest --page 2
  gophtodo list --completed false --search invoice`,
		Args: cobra.NoArgs,
		RunE: withSession(open, func(ctx context.Context, app *App) error {
			s, err := models.ParseSort(sortBy)
			if err != nil {
				return err
			}
			if err := app.ctl.Query(ctx, filter, s, page); err != nil {
				if st := app.ctl.State(); st.Error != "" && app.LoggedIn() {
					app.println(view.ErrorBanner(st.Error))
				}
				return err
			}
			app.showBoard()
			return nil
		}),
	}

	cmd.Flags().StringVar(&filter.Priority, "priority", "", "only this priority (low, medium, high)")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "only todos with this tag")
	cmd.Flags().StringVar(&filter.Mention, "mention", "", "only todos mentioning this user")
	cmd.Flags().StringVar(&filter.Completed, "completed", "", "true or false")
	cmd.Flags().StringVar(&filter.Search, "search", "", "text search in title and description")
	cmd.Flags().StringVar(&sortBy, "sort", "newest", "newest, oldest, priority-desc, priority-asc or field-order")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func newStatsCommand(open AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print totals by status and priority",
		Args:  cobra.NoArgs,
		RunE: withSession(open, func(ctx context.Context, app *App) error {
			return app.Stats(ctx)
		}),
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
