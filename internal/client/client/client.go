package client

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

// Client is the contract of the remote todo API.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error)
	Register(ctx context.Context, reg models.Registration) (models.AuthResult, error)
	ListUsers(ctx context.Context) ([]models.UserRef, error)

	ListTodos(ctx context.Context, q models.ListQuery) (models.Page, error)
	GetTodo(ctx context.Context, id string) (models.Item, error)
	CreateTodo(ctx context.Context, draft models.ItemDraft) (models.Item, error)
	UpdateTodo(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error)
	DeleteTodo(ctx context.Context, id string) error
	AddNote(ctx context.Context, id string, content string) (models.Item, error)
	GetStats(ctx context.Context) (models.Stats, error)
}

// TokenSource supplies the bearer token for each outgoing request.
type TokenSource interface {
	Token() string
}

// UnauthorizedHandler is called whenever the server answers 401, before the
// error is returned to the caller.
type UnauthorizedHandler func(ctx context.Context)
