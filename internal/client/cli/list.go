package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/client/controller"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/view"
)

var errUsage = errors.New("usage")

func (a *App) usage(text string) error {
	a.println("Usage: " + text)
	return errUsage
}

// List prints the current page without fetching.
func (a *App) List(context.Context) error {
	a.showBoard()
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	err := a.ctl.Refresh(ctx)
	a.showBoard()
	return err
}

// Filter sets one filter field. A missing value clears that field.
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("filter <priority|tag|mention|completed|search> [value]")
	}
	field, err := models.ParseFilterField(args[0])
	if err != nil {
		a.println(view.ErrorBanner(err.Error()))
		return err
	}
	value := strings.Join(args[1:], " ")

	err = a.ctl.ApplyFilter(ctx, field, value)
	if errors.Is(err, controller.ErrInvalidFilter) {
		a.println(view.ErrorBanner(err.Error()))
		return err
	}
	a.showBoard()
	return err
}

func (a *App) ClearFilters(ctx context.Context) error {
	err := a.ctl.ClearFilters(ctx)
	a.showBoard()
	return err
}

func (a *App) Sort(ctx context.Context, args []string) error {
	s, err := models.ParseSort(args...)
	if err != nil {
		a.println(view.ErrorBanner(err.Error()))
		return a.usage("sort <newest|oldest|priority-desc|priority-asc> | sort <field> <asc|desc>")
	}
	err = a.ctl.SetSort(ctx, s)
	a.showBoard()
	return err
}

func (a *App) NextPage(ctx context.Context) error {
	if !a.ctl.State().Pagination.HasNext() {
		a.println("Already on the last page.")
		return nil
	}
	err := a.ctl.NextPage(ctx)
	a.showBoard()
	return err
}

func (a *App) PrevPage(ctx context.Context) error {
	if !a.ctl.State().Pagination.HasPrev() {
		a.println("Already on the first page.")
		return nil
	}
	err := a.ctl.PrevPage(ctx)
	a.showBoard()
	return err
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return a.usage("page <n>, n >= 1")
	}
	err = a.ctl.SetPage(ctx, n)
	a.showBoard()
	return err
}

// Stats fetches a fresh snapshot and prints it.
func (a *App) Stats(ctx context.Context) error {
	err := a.ctl.RefreshStats(ctx)
	if !a.LoggedIn() {
		return err
	}
	st := a.ctl.State()
	if err != nil {
		a.println(view.ErrorBanner(st.Error))
		return err
	}
	a.println(view.StatsPanel(st.Stats))
	return nil
}

// History toggles the recently completed panel.
func (a *App) History(ctx context.Context) error {
	err := a.ctl.ToggleHistory(ctx)
	if !a.LoggedIn() {
		return err
	}
	st := a.ctl.State()
	if !st.HistoryVisible {
		a.println("History hidden.")
		return nil
	}
	a.println(a.render.HistoryPanel(st.History, st.HistoryLoading))
	return err
}

// Users prints the people that can be mentioned.
func (a *App) Users(ctx context.Context) error {
	err := a.ctl.LoadUsers(ctx)
	if !a.LoggedIn() {
		return err
	}
	options := a.mentionOptions()
	if len(options) == 0 {
		a.println("No other users available")
		return err
	}
	a.println(view.Mentions(options))
	return err
}
