package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
)

// Messages stored in the error slot when the server did not explain itself.
const (
	MsgFetchTodos   = "Error fetching todos"
	MsgApplyFilters = "Error applying filters"
	MsgCreateTodo   = "Error creating todo"
	MsgUpdateTodo   = "Error updating todo"
	MsgDeleteTodo   = "Error deleting todo"
	MsgFetchStats   = "Error fetching stats"
	MsgFetchTodo    = "Error fetching todo"
	MsgAddNote      = "Error adding note"
)

var (
	ErrUnknownFilter = models.ErrUnknownFilter
	ErrInvalidFilter = errors.New("invalid filter value")
	ErrInvalidPage   = errors.New("page must be 1 or greater")
	ErrNoDetail      = errors.New("no item is open")
)

type Controller struct {
	api    client.Client
	opts   Options
	logger logging.Logger

	mu sync.Mutex
	st State

	// issued numbers list fetches; applied is the number of the last one
	// whose outcome reached the state.
	issued  uint64
	applied uint64

	// historyIssued numbers history fetches; only the latest may land.
	historyIssued uint64
}

func New(api client.Client, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		api:    api,
		opts:   opts,
		logger: opts.Logger.With("component", "controller"),
		st: State{
			Sort:       models.DefaultSort,
			Pagination: models.Pagination{Page: 1, Limit: opts.PageSize, TotalPages: 1},
		},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.clone()
}

// Mount runs the initial load: the first page, the stats snapshot and the
// user directory, concurrently. Each part updates the state on its own; the
// first error is returned.
func (c *Controller) Mount(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.Refresh(ctx) })
	g.Go(func() error { return c.RefreshStats(ctx) })
	g.Go(func() error { return c.LoadUsers(ctx) })
	return g.Wait()
}

// Refresh re-fetches the current page with the current filter and sort.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetchList(ctx, MsgFetchTodos)
}

func (c *Controller) fetchList(ctx context.Context, fallback string) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	q := models.ListQuery{
		Page:      c.st.Pagination.Page,
		Limit:     c.st.Pagination.Limit,
		SortBy:    c.st.Sort.Field,
		SortOrder: c.st.Sort.Order,
		Filter:    c.st.Filter,
	}
	c.st.Loading = true
	c.mu.Unlock()

	page, err := c.api.ListTodos(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq == c.issued {
		c.st.Loading = false
	}
	if c.opts.DiscardStaleResponses && seq < c.applied {
		c.logger.Debug(ctx, "discarding stale list response", "seq", seq, "applied", c.applied)
		return nil
	}
	c.applied = seq

	if err != nil {
		c.st.Error = client.UserMessage(err, fallback)
		c.logger.Error(ctx, "list fetch failed", "query", q.Values().Encode(), "error", err)
		return err
	}

	p := page.Pagination
	if p.Page == 0 {
		p.Page = q.Page
	}
	if p.Limit == 0 {
		p.Limit = q.Limit
	}
	c.st.Items = page.Items
	c.st.Pagination = p
	c.st.Error = ""
	return nil
}

// RefreshStats replaces the stats snapshot.
func (c *Controller) RefreshStats(ctx context.Context) error {
	stats, err := c.api.GetStats(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.st.Error = client.UserMessage(err, MsgFetchStats)
		c.logger.Error(ctx, "stats fetch failed", "error", err)
		return err
	}
	c.st.Stats = &stats
	return nil
}

// LoadUsers loads the mention directory. Failures are logged only: the
// list stays usable without it.
func (c *Controller) LoadUsers(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)
	if err != nil {
		c.logger.Warn(ctx, "user directory fetch failed", "error", err)
		return err
	}

	c.mu.Lock()
	c.st.Users = users
	c.mu.Unlock()
	return nil
}

// ApplyFilter sets one filter field, moves back to page 1 and fetches
// immediately.
func (c *Controller) ApplyFilter(ctx context.Context, field models.FilterField, value string) error {
	value = strings.TrimSpace(value)
	if err := validateFilter(field, value); err != nil {
		return err
	}

	c.mu.Lock()
	c.st.Filter = c.st.Filter.With(field, value)
	c.st.Pagination.Page = 1
	c.st.Error = ""
	c.mu.Unlock()

	return c.fetchList(ctx, MsgApplyFilters)
}

func validateFilter(field models.FilterField, value string) error {
	switch field {
	case models.FilterPriority:
		if value == "" {
			return nil
		}
		if _, err := models.ParsePriority(value); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
	case models.FilterCompleted:
		if value != "" && value != "true" && value != "false" {
			return fmt.Errorf("%w: completed must be true or false", ErrInvalidFilter)
		}
	case models.FilterTag, models.FilterMention, models.FilterSearch:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilter, field)
	}
	return nil
}

// Query replaces filter, sort and page at once and fetches a single time.
// Used by one-shot commands that know the whole query up front.
func (c *Controller) Query(ctx context.Context, f models.Filter, s models.Sort, page int) error {
	for _, field := range models.FilterFields {
		if err := validateFilter(field, f.Get(field)); err != nil {
			return err
		}
	}
	if page < 1 {
		return ErrInvalidPage
	}

	c.mu.Lock()
	c.st.Filter = f
	c.st.Sort = s
	c.st.Pagination.Page = page
	c.mu.Unlock()

	return c.fetchList(ctx, MsgApplyFilters)
}

// ClearFilters drops every constraint and reloads page 1.
func (c *Controller) ClearFilters(ctx context.Context) error {
	c.mu.Lock()
	c.st.Filter = models.Filter{}
	c.st.Pagination.Page = 1
	c.mu.Unlock()

	return c.fetchList(ctx, MsgApplyFilters)
}

// SetSort replaces the ordering. The page is kept.
func (c *Controller) SetSort(ctx context.Context, s models.Sort) error {
	c.mu.Lock()
	c.st.Sort = s
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// SetPage jumps to page. It is not clamped to the last known page count.
func (c *Controller) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		return ErrInvalidPage
	}

	c.mu.Lock()
	c.st.Pagination.Page = page
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// NextPage is a no-op on the last page.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	if !c.st.Pagination.HasNext() {
		c.mu.Unlock()
		return nil
	}
	c.st.Pagination.Page++
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// PrevPage is a no-op on the first page.
func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	if !c.st.Pagination.HasPrev() {
		c.mu.Unlock()
		return nil
	}
	c.st.Pagination.Page--
	c.mu.Unlock()

	return c.Refresh(ctx)
}

func (c *Controller) fail(ctx context.Context, msg, fallback string, err error, args ...any) error {
	c.mu.Lock()
	c.st.Error = client.UserMessage(err, fallback)
	c.mu.Unlock()

	c.logger.Error(ctx, msg, append(args, "error", err)...)
	return err
}
