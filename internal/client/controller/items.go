package controller

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

// CreateItem creates an item, then reloads the list and the stats, in that
// order. The new item is never inserted locally. Reload failures land in the
// error slot but do not fail the create.
func (c *Controller) CreateItem(ctx context.Context, draft models.ItemDraft) (models.Item, error) {
	item, err := c.api.CreateTodo(ctx, draft)
	if err != nil {
		return models.Item{}, c.fail(ctx, "create failed", MsgCreateTodo, err)
	}

	_ = c.Refresh(ctx)
	_ = c.RefreshStats(ctx)
	return item, nil
}

// UpdateItem applies patch to item id. On success the list and stats are
// reloaded, the history too when it is visible, and the detail view closes if
// it was showing id. On failure the detail view is left as it was.
func (c *Controller) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	item, err := c.api.UpdateTodo(ctx, id, patch)
	if err != nil {
		return models.Item{}, c.fail(ctx, "update failed", MsgUpdateTodo, err, "id", id)
	}

	c.mu.Lock()
	historyVisible := c.st.HistoryVisible
	if c.st.Detail != nil && c.st.Detail.ID == id {
		c.st.Detail = nil
	}
	c.mu.Unlock()

	_ = c.Refresh(ctx)
	_ = c.RefreshStats(ctx)
	if historyVisible {
		_ = c.fetchHistory(ctx)
	}
	return item, nil
}

// ToggleCompleted flips the completed flag of id.
func (c *Controller) ToggleCompleted(ctx context.Context, id string) (models.Item, error) {
	item, err := c.Lookup(ctx, id)
	if err != nil {
		return models.Item{}, err
	}
	return c.UpdateItem(ctx, id, models.CompletedPatch(!item.Completed))
}

// DeleteItem removes id after confirmation. It reports whether the item was
// deleted; a declined confirmation sends nothing.
func (c *Controller) DeleteItem(ctx context.Context, id string) (bool, error) {
	if !c.opts.Confirmer.Confirm(ctx, "Are you sure you want to delete this todo?") {
		return false, nil
	}

	if err := c.api.DeleteTodo(ctx, id); err != nil {
		return false, c.fail(ctx, "delete failed", MsgDeleteTodo, err, "id", id)
	}

	c.mu.Lock()
	if c.st.Detail != nil && c.st.Detail.ID == id {
		c.st.Detail = nil
	}
	c.mu.Unlock()

	_ = c.Refresh(ctx)
	_ = c.RefreshStats(ctx)
	return true, nil
}

// OpenDetail shows id in the detail view. The server copy is preferred; the
// loaded copy is used when the fetch fails.
func (c *Controller) OpenDetail(ctx context.Context, id string) (models.Item, error) {
	item, err := c.api.GetTodo(ctx, id)
	if err != nil {
		c.mu.Lock()
		local, ok := c.loaded(id)
		c.mu.Unlock()
		if !ok {
			return models.Item{}, c.fail(ctx, "detail fetch failed", MsgFetchTodo, err, "id", id)
		}
		c.logger.Warn(ctx, "detail fetch failed, showing loaded copy", "id", id, "error", err)
		item = local
	}

	c.mu.Lock()
	c.st.Detail = &item
	c.mu.Unlock()
	return item, nil
}

func (c *Controller) CloseDetail() {
	c.mu.Lock()
	c.st.Detail = nil
	c.mu.Unlock()
}

// AddNote appends a note to the open item. Blank content is ignored. The
// detail view is replaced by the server's updated item and the list is
// reloaded.
func (c *Controller) AddNote(ctx context.Context, content string) (models.Item, error) {
	content = strings.TrimSpace(content)

	c.mu.Lock()
	detail := c.st.Detail
	c.mu.Unlock()

	if detail == nil {
		return models.Item{}, ErrNoDetail
	}
	if content == "" {
		return *detail, nil
	}

	item, err := c.api.AddNote(ctx, detail.ID, content)
	if err != nil {
		return models.Item{}, c.fail(ctx, "add note failed", MsgAddNote, err, "id", detail.ID)
	}

	c.mu.Lock()
	if c.st.Detail != nil && c.st.Detail.ID == item.ID {
		c.st.Detail = &item
	}
	c.mu.Unlock()

	_ = c.Refresh(ctx)
	return item, nil
}

// ToggleHistory shows or hides the completed-items panel. Showing it always
// re-fetches.
func (c *Controller) ToggleHistory(ctx context.Context) error {
	c.mu.Lock()
	c.st.HistoryVisible = !c.st.HistoryVisible
	visible := c.st.HistoryVisible
	c.mu.Unlock()

	if !visible {
		return nil
	}
	return c.fetchHistory(ctx)
}

func (c *Controller) historyQuery() models.ListQuery {
	return models.ListQuery{
		Page:      1,
		Limit:     c.opts.HistoryLimit,
		SortBy:    models.SortByCompletedAt,
		SortOrder: models.SortDesc,
		Filter:    models.Filter{Completed: "true"},
	}
}

// fetchHistory failures are logged only; the panel keeps its last contents.
// A response is dropped when a newer history fetch was issued or the panel
// was hidden meanwhile.
func (c *Controller) fetchHistory(ctx context.Context) error {
	c.mu.Lock()
	c.historyIssued++
	seq := c.historyIssued
	c.st.HistoryLoading = true
	c.mu.Unlock()

	page, err := c.api.ListTodos(ctx, c.historyQuery())

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.historyIssued {
		c.logger.Debug(ctx, "discarding stale history response", "seq", seq)
		return nil
	}
	c.st.HistoryLoading = false
	if !c.st.HistoryVisible {
		return nil
	}
	if err != nil {
		c.logger.Error(ctx, "history fetch failed", "error", err)
		return err
	}
	c.st.History = page.Items
	return nil
}

// Lookup finds id among the loaded items, asking the server when it is not
// on screen.
func (c *Controller) Lookup(ctx context.Context, id string) (models.Item, error) {
	c.mu.Lock()
	item, ok := c.loaded(id)
	c.mu.Unlock()
	if ok {
		return item, nil
	}

	item, err := c.api.GetTodo(ctx, id)
	if err != nil {
		return models.Item{}, c.fail(ctx, "item lookup failed", MsgFetchTodo, err, "id", id)
	}
	return item, nil
}

// loaded must be called with mu held.
func (c *Controller) loaded(id string) (models.Item, bool) {
	if item, ok := findItem(c.st.Items, id); ok {
		return item, true
	}
	if item, ok := findItem(c.st.History, id); ok {
		return item, true
	}
	if c.st.Detail != nil && c.st.Detail.ID == id {
		return *c.st.Detail, true
	}
	return models.Item{}, false
}
