package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joescharf/issueboard/internal/board"
	"github.com/joescharf/issueboard/internal/detail"
	"github.com/joescharf/issueboard/internal/models"
)

type styles struct {
	header    lipgloss.Style
	title     lipgloss.Style
	box       lipgloss.Style
	boxActive lipgloss.Style
	selected  lipgloss.Style
	carried   lipgloss.Style
	muted     lipgloss.Style
	panel     lipgloss.Style
	label     lipgloss.Style
	status    lipgloss.Style
	priority  map[models.Priority]lipgloss.Style
}

func newStyles() styles {
	return styles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("240")),
		boxActive: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("10")),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		carried:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("214")),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		panel:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("99")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(10),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		priority: map[models.Priority]lipgloss.Style{
			models.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			models.PriorityNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.header.Render("Issue Board"))
	b.WriteString("  ")
	b.WriteString(m.styles.muted.Render(m.filterLine()))
	b.WriteString("\n")

	if m.searching {
		b.WriteString("Search: " + m.search.View() + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.boardView())
	b.WriteString("\n")

	if m.snap.Detail.Open {
		b.WriteString(m.detailView())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.muted.Render(m.helpView()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) filterLine() string {
	f := m.snap.Filter
	dept := board.AllDepartmentsLabel
	if f.Department != board.AllDepartments {
		dept = f.Department
	}
	prio := "All Priorities"
	if f.Priority != board.AllPriorities {
		prio = f.Priority
	}
	line := dept + " • " + prio
	if f.Search != "" {
		line += fmt.Sprintf(" • search %q", f.Search)
	}
	return line
}

func (m Model) boardView() string {
	colWidth := max(18, (m.width-8)/4-4)
	rendered := make([]string, len(m.snap.Columns))
	for i, c := range m.snap.Columns {
		lines := []string{m.styles.title.Render(fmt.Sprintf("%s (%d)", c.Title, c.Count))}
		for r, card := range c.Cards {
			lines = append(lines, m.cardLine(card, i == m.col && r == m.row, colWidth))
		}
		if len(c.Cards) == 0 {
			lines = append(lines, m.styles.muted.Render("(empty)"))
		}
		box := m.styles.box
		if i == m.col {
			box = m.styles.boxActive
		}
		rendered[i] = box.Width(colWidth).Render(strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) cardLine(c board.Card, selected bool, width int) string {
	marker := m.styles.priority[c.Priority].Render("●")
	text := clip(c.ID+" "+c.Subject, width-2)
	switch {
	case c.ID == m.carrying:
		text = m.styles.carried.Render(text)
	case selected:
		text = m.styles.selected.Render(text)
	}
	return marker + " " + text
}

func (m Model) detailView() string {
	d := m.snap.Detail
	i := d.Issue
	row := func(label, value string) string {
		return m.styles.label.Render(label) + value
	}

	assignee := i.Assignee
	if d.Mode != detail.ModeViewing && len(d.AssigneeChoices) > 0 {
		assignee = fmt.Sprintf("%s  (%s)", d.DraftAssignee, strings.Join(d.AssigneeChoices, ", "))
	}

	lines := []string{
		m.styles.title.Render(i.ID + ": " + i.Subject),
		row("Status", i.Status.String()),
		row("Priority", m.styles.priority[i.Priority].Render(i.Priority.String())),
		row("Office", i.Office),
		row("Tracker", i.Tracker),
		row("Author", i.Author),
		row("Assignee", assignee),
		row("Created", d.CreatedDate),
		row("Updated", i.Updated),
	}
	if i.Description != "" {
		lines = append(lines, "", i.Description)
	}
	if d.ReassignOpen {
		dept := d.ReassignDept
		if dept == "" {
			dept = m.styles.muted.Render("press tab to choose")
		}
		lines = append(lines, "",
			m.styles.header.Render("Reassign"),
			row("To", dept),
			row("Reason", m.reason.View()),
		)
		if d.CanConfirm {
			lines = append(lines, m.styles.muted.Render("enter to confirm"))
		}
	}
	return m.styles.panel.Render(strings.Join(lines, "\n"))
}

func (m Model) helpView() string {
	k := m.keys
	switch {
	case m.searching:
		return "enter keep • esc clear"
	case m.snap.Detail.Mode == detail.ModeViewing:
		return helpLine(k.Edit, k.Back)
	case m.snap.Detail.Mode == detail.ModeEditing:
		return helpLine(k.Assignee, k.Save, k.Reassign, k.Back)
	case m.snap.Detail.Mode == detail.ModeReassignPending:
		return helpLine(k.NextDept, k.Confirm, k.Back)
	case m.carrying != "":
		return "space drop here • esc drop on nothing"
	default:
		return helpLine(k.Left, k.Down, k.Grab, k.MoveFirst, k.Open, k.Search, k.Department, k.Priority, k.Quit)
	}
}

func clip(s string, n int) string {
	if n <= 1 || len([]rune(s)) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
