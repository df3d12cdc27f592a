// Package tui is a terminal front end for one board page. Keyboard
// pick-up and drop stands in for pointer drag and drop.
package tui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joescharf/issueboard/internal/board"
	"github.com/joescharf/issueboard/internal/detail"
	"github.com/joescharf/issueboard/internal/dnd"
	"github.com/joescharf/issueboard/internal/models"
	"github.com/joescharf/issueboard/internal/refdata"
	"github.com/joescharf/issueboard/internal/sessions"
)

// Model is the bubbletea model of the board.
type Model struct {
	page   *sessions.Page
	keys   KeyMap
	styles styles
	snap   sessions.Snapshot

	col, row int
	carrying string

	searching bool
	search    textinput.Model
	reason    textinput.Model

	status string
	width  int
	height int
}

// NewModel creates a model over page.
func NewModel(page *sessions.Page) Model {
	search := textinput.New()
	search.Placeholder = "id, subject or office"
	search.CharLimit = 128

	reason := textinput.New()
	reason.Placeholder = "reason for reassignment"
	reason.CharLimit = 512

	m := Model{
		page:   page,
		keys:   DefaultKeyMap,
		styles: newStyles(),
		search: search,
		reason: reason,
		width:  120,
	}
	m.refresh()
	return m
}

// Start runs the TUI until the user quits.
func Start(page *sessions.Page) error {
	p := tea.NewProgram(NewModel(page), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) refresh() {
	m.snap = m.page.Snapshot()
	m.clamp()
}

func (m *Model) clamp() {
	m.col = max(0, min(m.col, len(m.snap.Columns)-1))
	if len(m.snap.Columns) == 0 {
		m.row = 0
		return
	}
	n := len(m.snap.Columns[m.col].Cards)
	m.row = max(0, min(m.row, n-1))
}

// focus moves the cursor onto the card with id, if it is visible.
func (m *Model) focus(id string) {
	for c, col := range m.snap.Columns {
		for r, card := range col.Cards {
			if card.ID == id {
				m.col, m.row = c, r
				return
			}
		}
	}
}

func (m Model) selected() (board.Card, bool) {
	if m.col >= len(m.snap.Columns) {
		return board.Card{}, false
	}
	cards := m.snap.Columns[m.col].Cards
	if m.row >= len(cards) {
		return board.Card{}, false
	}
	return cards[m.row], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.status = ""
		switch {
		case m.searching:
			return m.updateSearch(msg)
		case m.snap.Detail.Open:
			return m.updateDetail(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.row--
	case key.Matches(msg, m.keys.Down):
		m.row++
	case key.Matches(msg, m.keys.Left):
		m.col--
	case key.Matches(msg, m.keys.Right):
		m.col++
	case key.Matches(msg, m.keys.Grab):
		m.grabOrDrop()
	case key.Matches(msg, m.keys.Back):
		if m.carrying != "" {
			m.drop("")
		}
	case key.Matches(msg, m.keys.MoveFirst):
		m.moveTo(0)
	case key.Matches(msg, m.keys.MoveSecond):
		m.moveTo(1)
	case key.Matches(msg, m.keys.MoveThird):
		m.moveTo(2)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.snap.Filter.Search)
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Department):
		m.cycleDepartment()
	case key.Matches(msg, m.keys.Priority):
		m.cyclePriority()
	case key.Matches(msg, m.keys.Open):
		if card, ok := m.selected(); ok {
			m.setErr(m.page.OpenIssue(card.ID))
		}
	}
	m.refresh()
	return m, nil
}

func (m *Model) grabOrDrop() {
	if m.carrying == "" {
		card, ok := m.selected()
		if !ok {
			return
		}
		m.page.DragStart(card.ID)
		m.carrying = card.ID
		m.status = "carrying " + card.ID + ": move to a column and press space"
		return
	}
	target := m.snap.Columns[m.col].ID
	if card, ok := m.selected(); ok && card.ID != m.carrying {
		target = card.ID
	}
	m.drop(target)
}

func (m *Model) drop(target string) {
	id := m.carrying
	m.carrying = ""
	out := m.page.DragEnd(id, target)
	m.refresh()
	switch {
	case out.Moved:
		m.status = fmt.Sprintf("moved %s to %s", id, out.To)
		m.focus(id)
	case out.Abort == dnd.AbortNoTarget:
		m.status = "dropped " + id + " on nothing"
	default:
		m.status = fmt.Sprintf("%s not moved (%s)", id, out.Abort)
	}
}

func (m *Model) moveTo(i int) {
	card, ok := m.selected()
	if !ok || i >= len(card.Transitions) {
		return
	}
	to := card.Transitions[i]
	if _, err := m.page.Move(card.ID, to); err != nil {
		m.setErr(err)
		return
	}
	m.refresh()
	m.status = fmt.Sprintf("moved %s to %s", card.ID, to)
	m.focus(card.ID)
}

func (m *Model) cycleDepartment() {
	opts := m.snap.Departments
	if len(opts) == 0 {
		return
	}
	i := slices.IndexFunc(opts, func(o board.Option) bool { return o.Value == m.snap.Filter.Department })
	m.page.SetDepartment(opts[(i+1)%len(opts)].Value)
}

func (m *Model) cyclePriority() {
	values := []string{board.AllPriorities}
	for _, p := range models.Priorities() {
		values = append(values, p.String())
	}
	i := slices.Index(values, m.snap.Filter.Priority)
	m.page.SetPriority(values[(i+1)%len(values)])
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.page.SetSearch("")
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.page.SetSearch(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.snap.Detail
	switch d.Mode {
	case detail.ModeViewing:
		switch {
		case key.Matches(msg, m.keys.Edit):
			m.setErr(m.page.Edit())
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
			m.page.CloseIssue()
		}
	case detail.ModeEditing:
		switch {
		case key.Matches(msg, m.keys.Assignee):
			m.nextAssignee()
		case key.Matches(msg, m.keys.Save):
			m.setErr(m.page.Save())
		case key.Matches(msg, m.keys.Back):
			m.setErr(m.page.Cancel())
		case key.Matches(msg, m.keys.Reassign):
			if err := m.page.OpenReassign(); err != nil {
				m.setErr(err)
				break
			}
			m.refresh()
			m.reason.SetValue(m.snap.Detail.ReassignReason)
			return m, m.reason.Focus()
		}
	case detail.ModeReassignPending:
		return m.updateReassign(msg)
	}
	m.refresh()
	return m, nil
}

func (m *Model) nextAssignee() {
	choices := m.snap.Detail.AssigneeChoices
	if len(choices) == 0 {
		m.status = "no staff list for " + m.snap.Detail.Issue.Office
		return
	}
	i := slices.Index(choices, m.snap.Detail.DraftAssignee)
	m.setErr(m.page.SelectAssignee(choices[(i+1)%len(choices)]))
}

func (m Model) updateReassign(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.snap.Detail
	switch {
	case key.Matches(msg, m.keys.NextDept):
		depts := refdata.Departments()
		i := slices.Index(depts, d.ReassignDept)
		m.setErr(m.page.UpdateReassign(depts[(i+1)%len(depts)], m.reason.Value()))
	case key.Matches(msg, m.keys.Confirm):
		err := m.page.ConfirmReassign()
		if errors.Is(err, detail.ErrIncompleteReassignment) {
			m.status = "choose a department (tab) and type a reason"
			break
		}
		m.setErr(err)
		if err == nil {
			m.reason.Blur()
			m.reason.SetValue("")
		}
	case key.Matches(msg, m.keys.Back):
		m.setErr(m.page.CancelReassign())
		m.reason.Blur()
	default:
		var cmd tea.Cmd
		m.reason, cmd = m.reason.Update(msg)
		m.setErr(m.page.UpdateReassign(d.ReassignDept, m.reason.Value()))
		m.refresh()
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.status = "error: " + err.Error()
	}
}
