package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour/styles"
	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

// Renderer carries the terminal settings shared by all components.
type Renderer struct {
	Width         int
	MarkdownStyle string
	Now           func() time.Time
}

func NewRenderer(width int, markdownStyle string) *Renderer {
	if width <= 0 {
		width = 80
	}
	if markdownStyle == "" {
		markdownStyle = styles.DarkStyle
	}
	return &Renderer{Width: width, MarkdownStyle: markdownStyle, Now: time.Now}
}

func (r *Renderer) ago(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.RelTime(t, r.Now(), "ago", "from now")
}

// ItemCard is one list entry.
func (r *Renderer) ItemCard(item models.Item) string {
	var b strings.Builder

	check := "[ ]"
	title := titleStyle.Render(item.Title)
	if item.Completed {
		check = okStyle.Render("[x]")
		title = doneStyle.Render(item.Title)
	}
	fmt.Fprintf(&b, "%s %s %s %s\n", check, title, PriorityBadge(item.Priority), mutedStyle.Render(item.ID))

	if item.Description != "" {
		b.WriteString("    " + firstLine(item.Description) + "\n")
	}

	var meta []string
	if len(item.Tags) > 0 {
		meta = append(meta, Tags(item.Tags))
	}
	if len(item.Mentions) > 0 {
		meta = append(meta, Mentions(item.Mentions))
	}
	meta = append(meta, mutedStyle.Render("created "+r.ago(item.CreatedAt)))
	if n := len(item.Notes); n > 0 {
		meta = append(meta, mutedStyle.Render(humanize.Comma(int64(n))+" "+plural(n, "note", "notes")))
	}
	b.WriteString("    " + strings.Join(meta, "  "))
	return b.String()
}

// ItemList renders the loaded page, or a placeholder.
func (r *Renderer) ItemList(items []models.Item, loading bool) string {
	if loading && len(items) == 0 {
		return mutedStyle.Render("Loading todos...")
	}
	if len(items) == 0 {
		return mutedStyle.Render("No todos found.")
	}
	cards := make([]string, 0, len(items))
	for _, it := range items {
		cards = append(cards, r.ItemCard(it))
	}
	return strings.Join(cards, "\n\n")
}

// Pager shows the position and the enabled controls. It is empty when there
// is a single page, since both controls are disabled then.
func Pager(p models.Pagination) string {
	if p.TotalPages <= 1 {
		return ""
	}
	parts := make([]string, 0, 3)
	if p.HasPrev() {
		parts = append(parts, "‹ prev")
	}
	parts = append(parts, fmt.Sprintf("Page %d of %d", p.Page, p.TotalPages))
	if p.HasNext() {
		parts = append(parts, "next ›")
	}
	return mutedStyle.Render(strings.Join(parts, "   "))
}

// StatsPanel renders the aggregate counters. Empty when stats are not loaded.
func StatsPanel(s *models.Stats) string {
	if s == nil {
		return ""
	}
	rows := []struct {
		label string
		value int
	}{
		{"Total", s.TotalTodos},
		{"Completed", s.CompletedTodos},
		{"Pending", s.PendingTodos},
		{"High priority", s.HighPriority},
		{"Medium priority", s.MediumPriority},
		{"Low priority", s.LowPriority},
	}
	lines := []string{headingStyle.Render("Stats")}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-16s %s", row.label, humanize.Comma(int64(row.value))))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// HistoryPanel lists recently completed items.
func (r *Renderer) HistoryPanel(items []models.Item, loading bool) string {
	lines := []string{headingStyle.Render("Completed history")}
	switch {
	case loading:
		lines = append(lines, mutedStyle.Render("Loading history..."))
	case len(items) == 0:
		lines = append(lines, mutedStyle.Render("No completed todos yet"))
	default:
		for _, it := range items {
			when := "recently"
			if it.CompletedAt != nil {
				when = r.ago(*it.CompletedAt)
			}
			lines = append(lines, fmt.Sprintf("%s %s %s", okStyle.Render("✓"), doneStyle.Render(it.Title), mutedStyle.Render(when)))
		}
	}
	return strings.Join(lines, "\n")
}

// DetailView is the full item with its notes.
func (r *Renderer) DetailView(item models.Item) string {
	var b strings.Builder

	status := "pending"
	if item.Completed {
		status = "completed"
	}
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(item.Title), PriorityBadge(item.Priority))
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf("id %s · %s · created %s", item.ID, status, r.ago(item.CreatedAt))))

	b.WriteString("\n" + headingStyle.Render("Description") + "\n")
	if desc := renderMarkdown(item.Description, r.MarkdownStyle, r.Width); desc != "" {
		b.WriteString(desc + "\n")
	}

	if len(item.Tags) > 0 {
		b.WriteString("\n" + headingStyle.Render("Tags") + "\n" + Tags(item.Tags) + "\n")
	}
	if len(item.Mentions) > 0 {
		b.WriteString("\n" + headingStyle.Render("Mentions") + "\n" + Mentions(item.Mentions) + "\n")
	}

	b.WriteString("\n" + headingStyle.Render(fmt.Sprintf("Notes (%d)", len(item.Notes))) + "\n")
	if len(item.Notes) == 0 {
		b.WriteString(mutedStyle.Render("No notes yet") + "\n")
	}
	notes := append([]models.Note{}, item.Notes...)
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].CreatedAt.Before(notes[j].CreatedAt) })
	for _, n := range notes {
		fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(n.Author.DisplayName()), mutedStyle.Render(r.ago(n.CreatedAt)))
		b.WriteString("  " + strings.ReplaceAll(strings.TrimSpace(n.Content), "\n", "\n  ") + "\n")
	}

	return panelStyle.Width(r.Width).Render(strings.TrimRight(b.String(), "\n"))
}

// Tags renders tags as #chips.
func Tags(tags []string) string {
	chips := make([]string, 0, len(tags))
	for _, t := range tags {
		chips = append(chips, tagStyle.Render("#"+t))
	}
	return strings.Join(chips, " ")
}

// Mentions renders users as @chips.
func Mentions(users []models.UserRef) string {
	chips := make([]string, 0, len(users))
	for _, u := range users {
		name := u.Username
		if name == "" {
			name = u.DisplayName()
		}
		chips = append(chips, tagStyle.Render("@"+name))
	}
	return strings.Join(chips, " ")
}

// ErrorBanner is empty when there is no error.
func ErrorBanner(msg string) string {
	if msg == "" {
		return ""
	}
	return errorStyle.Render("! " + msg)
}

// FieldErrors prints validation messages next to their field names, in a
// stable order.
func FieldErrors(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			lines = append(lines, errorStyle.Render(fields[name]))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", errorStyle.Render(name+":"), fields[name]))
	}
	return strings.Join(lines, "\n")
}

// LoginHint is shown whenever there is no session.
func LoginHint() string {
	return headingStyle.Render("You are not logged in.") + " Use 'login' or 'register' to continue."
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
