package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/issueboard/internal/detail"
	"github.com/joescharf/issueboard/internal/models"
	"github.com/joescharf/issueboard/internal/refdata"
	"github.com/joescharf/issueboard/internal/sessions"
)

func newTestModel(t *testing.T) (Model, *sessions.Page) {
	t.Helper()
	page := sessions.NewPage(refdata.Seed(), nil)
	return NewModel(page), page
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press feeds keys to the model in order and returns the result.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

// typeText feeds s one rune at a time.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func selectedID(t *testing.T, m Model) string {
	t.Helper()
	card, ok := m.selected()
	require.True(t, ok, "no card under the cursor")
	return card.ID
}

func issue(t *testing.T, page *sessions.Page, id string) *models.Issue {
	t.Helper()
	i, ok := page.Store().Get(id)
	require.True(t, ok)
	return i
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, 0, m.col)
	assert.Equal(t, "ISS-1", selectedID(t, m))
	assert.Len(t, m.snap.Columns, 4)
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "l")
	assert.Equal(t, 1, m.col)

	m = press(t, m, "h", "h", "h")
	assert.Equal(t, 0, m.col, "stays on the first column")

	m = press(t, m, "j")
	assert.Equal(t, 1, m.row)
	m = press(t, m, "k", "k")
	assert.Equal(t, 0, m.row)

	m = press(t, m, "j", "j", "j", "j", "j", "j", "j", "j")
	assert.Equal(t, len(m.snap.Columns[0].Cards)-1, m.row, "clamped to the last card")
}

func TestKeyboardDrag_DropOnCard(t *testing.T) {
	m, page := newTestModel(t)

	m = press(t, m, "space")
	assert.Equal(t, "ISS-1", m.carrying)
	require.NotNil(t, m.snap.Dragging)

	// Column 2 is Review; its first card is ISS-3.
	m = press(t, m, "l", "l")
	assert.Equal(t, "ISS-3", selectedID(t, m))

	m = press(t, m, "space")
	assert.Empty(t, m.carrying)
	assert.Nil(t, m.snap.Dragging)
	assert.Equal(t, models.StatusReview, issue(t, page, "ISS-1").Status)
	assert.Equal(t, "ISS-1", selectedID(t, m), "cursor follows the moved card")
	assert.Contains(t, m.status, "moved ISS-1 to Review")
}

func TestKeyboardDrag_EscDropsOnNothing(t *testing.T) {
	m, page := newTestModel(t)

	m = press(t, m, "space", "l", "esc")
	assert.Empty(t, m.carrying)
	assert.Equal(t, models.StatusBacklog, issue(t, page, "ISS-1").Status)
	assert.Contains(t, m.status, "on nothing")
}

func TestMoveKeys(t *testing.T) {
	m, page := newTestModel(t)

	m = press(t, m, "1")
	assert.Equal(t, models.StatusInProgress, issue(t, page, "ISS-1").Status)
	assert.Equal(t, 1, m.col)

	// From In Progress the third transition is Done.
	m = press(t, m, "3")
	assert.Equal(t, models.StatusDone, issue(t, page, "ISS-1").Status)
	assert.Equal(t, "ISS-1", selectedID(t, m))
}

func TestSearch(t *testing.T) {
	m, page := newTestModel(t)

	m = press(t, m, "/")
	require.True(t, m.searching)
	m = typeText(t, m, "plumb")
	m = press(t, m, "enter")

	assert.False(t, m.searching)
	assert.Equal(t, "plumb", page.Filter().Search)
	for _, c := range m.snap.Columns {
		for _, card := range c.Cards {
			assert.Equal(t, "Plumber", card.Office)
		}
	}

	m = press(t, m, "/", "esc")
	assert.Empty(t, page.Filter().Search)
}

func TestSearch_QuitKeyIsText(t *testing.T) {
	m, page := newTestModel(t)

	m = press(t, m, "/")
	updated, cmd := m.Update(keyMsg("q"))
	m = updated.(Model)
	assert.Equal(t, "q", page.Filter().Search)
	if cmd != nil {
		_, isQuit := cmd().(tea.QuitMsg)
		assert.False(t, isQuit)
	}
}

func TestFilterCycling(t *testing.T) {
	m, page := newTestModel(t)

	m = press(t, m, "d")
	assert.Equal(t, m.snap.Departments[1].Value, page.Filter().Department)

	for range len(m.snap.Departments) - 1 {
		m = press(t, m, "d")
	}
	assert.Equal(t, "all", page.Filter().Department, "wraps back to all")

	m = press(t, m, "p")
	assert.Equal(t, "High", page.Filter().Priority)
	m = press(t, m, "p", "p", "p")
	assert.Equal(t, "all", page.Filter().Priority)
}

func TestDetail_EditAssignee(t *testing.T) {
	m, page := newTestModel(t)

	m = press(t, m, "enter")
	require.True(t, m.snap.Detail.Open)
	assert.Equal(t, detail.ModeViewing, m.snap.Detail.Mode)

	m = press(t, m, "e")
	assert.Equal(t, detail.ModeEditing, m.snap.Detail.Mode)
	assert.Equal(t, "Mukesh", m.snap.Detail.DraftAssignee)

	m = press(t, m, "a")
	assert.Equal(t, "Suresh", m.snap.Detail.DraftAssignee)

	m = press(t, m, "s")
	assert.Equal(t, detail.ModeViewing, m.snap.Detail.Mode)
	assert.Equal(t, "Suresh", issue(t, page, "ISS-1").Assignee)

	m = press(t, m, "esc")
	assert.False(t, m.snap.Detail.Open)
}

func TestDetail_Reassign(t *testing.T) {
	m, page := newTestModel(t)

	m = press(t, m, "enter", "e", "r")
	require.Equal(t, detail.ModeReassignPending, m.snap.Detail.Mode)

	m = press(t, m, "enter")
	assert.Equal(t, detail.ModeReassignPending, m.snap.Detail.Mode, "confirm is inert")
	assert.Contains(t, m.status, "choose a department")

	m = press(t, m, "tab")
	assert.Equal(t, refdata.Departments()[0], m.snap.Detail.ReassignDept)

	m = typeText(t, m, "queued")
	assert.Equal(t, "queued", m.snap.Detail.ReassignReason)
	assert.True(t, m.snap.Detail.CanConfirm)

	m = press(t, m, "enter")
	assert.Equal(t, detail.ModeViewing, m.snap.Detail.Mode)
	assert.Equal(t, refdata.Departments()[0], issue(t, page, "ISS-1").Office)
}

func TestDetail_CancelReassignKeepsEditing(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "enter", "e", "r", "esc")
	assert.Equal(t, detail.ModeEditing, m.snap.Detail.Mode)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	m = updated.(Model)

	out := m.View()
	for _, title := range []string{"Backlog", "In Progress", "Review", "Done"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "ISS-1")

	m = press(t, m, "enter")
	out = m.View()
	assert.Contains(t, out, "Kadamba Hostel - Carpentry")
	assert.True(t, strings.Contains(out, "edit"), "help shows the edit key")
}
