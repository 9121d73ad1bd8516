package controller

import (
	"slices"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

// State is a snapshot of the list screen.
type State struct {
	Filter     models.Filter
	Sort       models.Sort
	Pagination models.Pagination
	Items      []models.Item
	Stats      *models.Stats
	Loading    bool

	// Error is the message of the last failed operation, "" when the last
	// list fetch succeeded.
	Error string

	// Detail is the item shown in the detail view, nil when closed.
	Detail *models.Item

	HistoryVisible bool
	History        []models.Item
	HistoryLoading bool

	// Users is the directory offered by mention pickers.
	Users []models.UserRef
}

func (s State) clone() State {
	out := s
	out.Items = slices.Clone(s.Items)
	out.History = slices.Clone(s.History)
	out.Users = slices.Clone(s.Users)
	if s.Stats != nil {
		stats := *s.Stats
		out.Stats = &stats
	}
	if s.Detail != nil {
		detail := *s.Detail
		out.Detail = &detail
	}
	return out
}

func findItem(items []models.Item, id string) (models.Item, bool) {
	i := slices.IndexFunc(items, func(it models.Item) bool { return it.ID == id })
	if i < 0 {
		return models.Item{}, false
	}
	return items[i], true
}
