package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cobalt-ridge/gleaner/internal/engine/event"
	"github.com/cobalt-ridge/gleaner/internal/engine/registry"
	"github.com/cobalt-ridge/gleaner/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	borderStyle = lipgloss.NewStyle().Faint(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// typeStyle colors a cell with the registry color of an annotation type.
func typeStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex))
}

// RenderResult produces the terminal report for one extraction run: a
// summary line, the entity table, and the event list.
func RenderResult(res model.Result, reg *registry.Registry, width int) string {
	var sections []string

	summary := fmt.Sprintf("Entities: %d  Events: %d",
		res.Statistics.TotalEntities, res.Statistics.TotalEvents)
	sections = append(sections, headerStyle.Render(summary))

	if len(res.Entities) > 0 {
		sections = append(sections, entityTable(res.Entities, reg, width))
	}
	if len(res.Events) > 0 {
		sections = append(sections, renderEvents(res.Events, reg))
	}

	return strings.Join(sections, "\n")
}

func entityTable(entities []model.Annotation, reg *registry.Registry, width int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Width(width).
		Headers("TYPE", "TEXT", "SPAN", "CONF").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 && row >= 0 && row < len(entities) {
				return typeStyle(reg.Color(entities[row].Type))
			}
			return lipgloss.NewStyle()
		})
	for _, e := range entities {
		t.Row(e.Type, e.Text, fmt.Sprintf("%d-%d", e.Start, e.End), fmt.Sprintf("%.2f", e.Confidence))
	}
	return t.String()
}

func renderEvents(events []model.Event, reg *registry.Registry) string {
	now := time.Now()
	var b strings.Builder
	b.WriteString(headerStyle.Render("Events"))
	b.WriteString("\n")
	for _, ev := range events {
		label := typeStyle(reg.Color("EVENT")).Render("[" + ev.Type + "]")
		fmt.Fprintf(&b, "%s %s\n", label, ev.Text)

		keys := make([]string, 0, len(ev.Attributes))
		for k := range ev.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s\n", dimStyle.Render(k+": "+ev.Attributes[k]))
		}
		if marker, ok := ev.Attributes["temporal_marker"]; ok {
			if resolved, ok := event.ResolveTemporal(marker, now); ok {
				fmt.Fprintf(&b, "  %s\n", dimStyle.Render("resolves to "+resolved.Format("2006-01-02")))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
