package view

import (
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/client/controller"
)

// Board is the main list screen: error banner, active filter, items, pager
// and, when toggled on, the history panel.
func (r *Renderer) Board(st controller.State) string {
	sections := []string{
		ErrorBanner(st.Error),
		FilterLine(st),
		r.ItemList(st.Items, st.Loading),
		Pager(st.Pagination),
	}
	if st.HistoryVisible {
		sections = append(sections, r.HistoryPanel(st.History, st.HistoryLoading))
	}

	out := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}

// FilterLine summarises the active constraints and ordering.
func FilterLine(st controller.State) string {
	var parts []string
	f := st.Filter
	for _, kv := range [][2]string{
		{"priority", f.Priority},
		{"tag", f.Tag},
		{"mention", f.Mention},
		{"completed", f.Completed},
		{"search", f.Search},
	} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	line := "sort " + st.Sort.String()
	if len(parts) > 0 {
		line = "filter " + strings.Join(parts, " ") + " · " + line
	}
	return mutedStyle.Render(line)
}
