package controller

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/logging"
)

const (
	DefaultPageSize     = 10
	DefaultHistoryLimit = 10
)

// Confirmer asks the user a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// AlwaysConfirm answers yes without asking. Use for non-interactive runs.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) bool { return true })

type Options struct {
	PageSize     int
	HistoryLimit int

	// DiscardStaleResponses drops a list response that arrives after a
	// response to a newer request has already been applied. When false the
	// last response to arrive wins.
	DiscardStaleResponses bool

	// Confirmer gates DeleteItem. Nil means AlwaysConfirm.
	Confirmer Confirmer
	Logger    logging.Logger
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.Confirmer == nil {
		o.Confirmer = AlwaysConfirm
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return o
}
