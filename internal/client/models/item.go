// Package models defines the client-side shapes of the remote todo API:
// items, users, list queries and the aggregate stats snapshot.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Priority classifies an item's urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	DefaultPriority = PriorityMedium
)

var ErrInvalidPriority = errors.New("priority must be one of low, medium, high")

// Priorities lists the valid values in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority accepts any casing and surrounding spaces.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

// Note is an append-only annotation on an item.
type Note struct {
	ID        string    `json:"_id,omitempty"`
	Content   string    `json:"content"`
	Author    UserRef   `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Item is a single todo record as returned by the server. ID, CreatedAt and
// UpdatedAt are server-assigned.
type Item struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	Tags        []string   `json:"tags"`
	Mentions    []UserRef  `json:"mentions"`
	Notes       []Note     `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// MentionUsernames returns the usernames of the mentioned users, in order.
func (i Item) MentionUsernames() []string {
	out := make([]string, 0, len(i.Mentions))
	for _, m := range i.Mentions {
		if m.Username != "" {
			out = append(out, m.Username)
		}
	}
	return out
}

// ItemDraft is the body of a create request and of a full edit.
// Mentions are carried by username and resolved server-side.
type ItemDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Tags        []string `json:"tags"`
	Mentions    []string `json:"mentions"`
}

// Patch turns a full draft into an update that sets every editable field.
func (d ItemDraft) Patch() ItemPatch {
	title, description, priority := d.Title, d.Description, d.Priority
	tags := append([]string{}, d.Tags...)
	mentions := append([]string{}, d.Mentions...)
	return ItemPatch{
		Title:       &title,
		Description: &description,
		Priority:    &priority,
		Tags:        &tags,
		Mentions:    &mentions,
	}
}

// ItemPatch is a partial update; nil fields are left untouched by the server.
type ItemPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Mentions    *[]string `json:"mentions,omitempty"`
}

// CompletedPatch flips only the completed flag.
func CompletedPatch(completed bool) ItemPatch {
	return ItemPatch{Completed: &completed}
}

// Stats is the server-computed aggregate over all of the user's items,
// independent of the current filter and page.
type Stats struct {
	TotalTodos     int `json:"totalTodos"`
	CompletedTodos int `json:"completedTodos"`
	PendingTodos   int `json:"pendingTodos"`
	HighPriority   int `json:"highPriority"`
	MediumPriority int `json:"mediumPriority"`
	LowPriority    int `json:"lowPriority"`
}
