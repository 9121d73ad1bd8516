package controller

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

// fakeAPI implements client.Client and records every call in order.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	listQueries []models.ListQuery
	listFn      func(n int, q models.ListQuery) (models.Page, error)
	page        models.Page
	history     models.Page
	historyFn   func(n int) (models.Page, error)
	historyN    int
	listErr     error

	stats    models.Stats
	statsErr error

	users    []models.UserRef
	usersErr error

	items  map[string]models.Item
	getErr error

	created   []models.ItemDraft
	createErr error

	patches   map[string]models.ItemPatch
	updateErr error

	deleted   []string
	deleteErr error

	notes   []string
	noteErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		items:   map[string]models.Item{},
		patches: map[string]models.ItemPatch{},
		page:    models.Page{Pagination: models.Pagination{Page: 1, Limit: 10, TotalPages: 1}},
	}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.calls...)
}

func (f *fakeAPI) Queries() []models.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ListQuery{}, f.listQueries...)
}

func (f *fakeAPI) Login(context.Context, models.Credentials) (models.AuthResult, error) {
	f.record("login")
	return models.AuthResult{}, nil
}

func (f *fakeAPI) Register(context.Context, models.Registration) (models.AuthResult, error) {
	f.record("register")
	return models.AuthResult{}, nil
}

func (f *fakeAPI) ListUsers(context.Context) ([]models.UserRef, error) {
	f.record("users")
	return f.users, f.usersErr
}

func (f *fakeAPI) ListTodos(_ context.Context, q models.ListQuery) (models.Page, error) {
	f.mu.Lock()
	f.listQueries = append(f.listQueries, q)
	n := len(f.listQueries)
	if q.Filter.Completed == "true" && q.SortBy == models.SortByCompletedAt {
		f.calls = append(f.calls, "history")
		f.historyN++
		n, fn := f.historyN, f.historyFn
		f.mu.Unlock()
		if fn != nil {
			return fn(n)
		}
		return f.history, f.listErr
	}
	f.calls = append(f.calls, "list")
	fn := f.listFn
	f.mu.Unlock()

	if fn != nil {
		return fn(n, q)
	}
	return f.page, f.listErr
}

func (f *fakeAPI) GetTodo(_ context.Context, id string) (models.Item, error) {
	f.record("get")
	if f.getErr != nil {
		return models.Item{}, f.getErr
	}
	return f.items[id], nil
}

func (f *fakeAPI) CreateTodo(_ context.Context, d models.ItemDraft) (models.Item, error) {
	f.record("create")
	if f.createErr != nil {
		return models.Item{}, f.createErr
	}
	f.created = append(f.created, d)
	return models.Item{ID: "new", Title: d.Title}, nil
}

func (f *fakeAPI) UpdateTodo(_ context.Context, id string, p models.ItemPatch) (models.Item, error) {
	f.record("update")
	if f.updateErr != nil {
		return models.Item{}, f.updateErr
	}
	f.patches[id] = p
	item := f.items[id]
	item.ID = id
	if p.Completed != nil {
		item.Completed = *p.Completed
	}
	return item, nil
}

func (f *fakeAPI) DeleteTodo(_ context.Context, id string) error {
	f.record("delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) AddNote(_ context.Context, id string, content string) (models.Item, error) {
	f.record("note")
	if f.noteErr != nil {
		return models.Item{}, f.noteErr
	}
	f.notes = append(f.notes, content)
	item := f.items[id]
	item.ID = id
	item.Notes = append(item.Notes, models.Note{Content: content})
	return item, nil
}

func (f *fakeAPI) GetStats(context.Context) (models.Stats, error) {
	f.record("stats")
	return f.stats, f.statsErr
}
