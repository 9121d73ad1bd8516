package models

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// FilterField names one constraint of a Filter.
type FilterField string

const (
	FilterPriority  FilterField = "priority"
	FilterTag       FilterField = "tag"
	FilterMention   FilterField = "mention"
	FilterCompleted FilterField = "completed"
	FilterSearch    FilterField = "search"
)

var FilterFields = []FilterField{FilterPriority, FilterTag, FilterMention, FilterCompleted, FilterSearch}

var ErrUnknownFilter = errors.New("unknown filter field")

func ParseFilterField(s string) (FilterField, error) {
	f := FilterField(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FilterFields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Filter is the set of list constraints. Every field is always defined; the
// empty string means "no constraint". Completed is "", "true" or "false".
type Filter struct {
	Priority  string
	Tag       string
	Mention   string
	Completed string
	Search    string
}

// Get returns the value of one field.
func (f Filter) Get(field FilterField) string {
	switch field {
	case FilterPriority:
		return f.Priority
	case FilterTag:
		return f.Tag
	case FilterMention:
		return f.Mention
	case FilterCompleted:
		return f.Completed
	case FilterSearch:
		return f.Search
	default:
		return ""
	}
}

// With returns a copy of f with one field replaced.
func (f Filter) With(field FilterField, value string) Filter {
	switch field {
	case FilterPriority:
		f.Priority = value
	case FilterTag:
		f.Tag = value
	case FilterMention:
		f.Mention = value
	case FilterCompleted:
		f.Completed = value
	case FilterSearch:
		f.Search = value
	}
	return f
}

// IsEmpty reports whether no constraint is set.
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// SortOrder is asc or desc.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

var ErrInvalidSort = errors.New("invalid sort")

// Sort fields understood by the server.
const (
	SortByCreatedAt   = "createdAt"
	SortByPriority    = "priority"
	SortByCompletedAt = "completedAt"
	SortByTitle       = "title"
)

// Sort is the list ordering.
type Sort struct {
	Field string
	Order SortOrder
}

// DefaultSort is newest first.
var DefaultSort = Sort{Field: SortByCreatedAt, Order: SortDesc}

// SortPresets are the named orderings offered by the list view.
var SortPresets = map[string]Sort{
	"newest":        {Field: SortByCreatedAt, Order: SortDesc},
	"oldest":        {Field: SortByCreatedAt, Order: SortAsc},
	"priority-desc": {Field: SortByPriority, Order: SortDesc},
	"priority-asc":  {Field: SortByPriority, Order: SortAsc},
}

// ParseSort accepts a preset name, "field-order" or a field and an order.
func ParseSort(args ...string) (Sort, error) {
	switch len(args) {
	case 1:
		if s, ok := SortPresets[strings.ToLower(args[0])]; ok {
			return s, nil
		}
		field, order, ok := strings.Cut(args[0], "-")
		if !ok {
			return Sort{}, fmt.Errorf("%w: %q", ErrInvalidSort, args[0])
		}
		return ParseSort(field, order)
	case 2:
		order := SortOrder(strings.ToLower(args[1]))
		if order != SortAsc && order != SortDesc {
			return Sort{}, fmt.Errorf("%w: order must be asc or desc", ErrInvalidSort)
		}
		if args[0] == "" {
			return Sort{}, fmt.Errorf("%w: empty field", ErrInvalidSort)
		}
		return Sort{Field: args[0], Order: order}, nil
	default:
		return Sort{}, fmt.Errorf("%w: expected preset or field and order", ErrInvalidSort)
	}
}

func (s Sort) String() string {
	return s.Field + "-" + string(s.Order)
}

// Pagination is the client's view of the server-reported page window.
// Page is 1-based.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// HasPrev reports whether the "previous" control is enabled.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether the "next" control is enabled.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// ListQuery is one request against the collection endpoint.
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
	Filter    Filter
}

// Values encodes the query parameters. Empty filter values are left out.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", string(q.SortOrder))
	}
	for _, field := range FilterFields {
		if value := q.Filter.Get(field); value != "" {
			v.Set(string(field), value)
		}
	}
	return v
}

// Page is one decoded list response.
type Page struct {
	Items      []Item     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
