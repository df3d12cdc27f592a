package sessions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/issueboard/internal/board"
	"github.com/joescharf/issueboard/internal/detail"
	"github.com/joescharf/issueboard/internal/dnd"
	"github.com/joescharf/issueboard/internal/models"
	"github.com/joescharf/issueboard/internal/refdata"
)

func newTestPage(t *testing.T) *Page {
	t.Helper()
	return NewPage(refdata.Seed(), nil)
}

func columnIDs(snap Snapshot, status models.Status) []string {
	for _, c := range snap.Columns {
		if c.Status == status {
			out := make([]string, len(c.Cards))
			for i, card := range c.Cards {
				out[i] = card.ID
			}
			return out
		}
	}
	return nil
}

func issueStatus(t *testing.T, p *Page, id string) models.Status {
	t.Helper()
	issue, ok := p.Store().Get(id)
	require.True(t, ok)
	return issue.Status
}

func TestSnapshot_Initial(t *testing.T) {
	p := newTestPage(t)
	snap := p.Snapshot()

	assert.Equal(t, board.DefaultFilter(), snap.Filter)
	require.Len(t, snap.Columns, 4)
	assert.Equal(t, board.AllDepartments, snap.Departments[0].Value)
	assert.Nil(t, snap.Dragging)
	assert.False(t, snap.Detail.Open)
	assert.Contains(t, columnIDs(snap, models.StatusBacklog), "ISS-1")

	total := 0
	for _, c := range snap.Columns {
		total += c.Count
	}
	assert.Equal(t, len(refdata.Seed()), total)
}

func TestDragScenario(t *testing.T) {
	p := newTestPage(t)

	p.DragStart("ISS-1")
	snap := p.Snapshot()
	require.NotNil(t, snap.Dragging)
	assert.Equal(t, "ISS-1", snap.Dragging.ID)

	out := p.DragEnd("ISS-1", "Review")
	assert.True(t, out.Moved)
	assert.Equal(t, models.StatusReview, issueStatus(t, p, "ISS-1"))
	assert.Nil(t, p.Snapshot().Dragging)

	// ISS-4 is Done in the seed.
	p.DragStart("ISS-1")
	p.DragEnd("ISS-1", "ISS-4")
	assert.Equal(t, models.StatusDone, issueStatus(t, p, "ISS-1"))

	p.DragStart("ISS-1")
	out = p.DragEnd("ISS-1", "")
	assert.Equal(t, dnd.AbortNoTarget, out.Abort)
	assert.Equal(t, models.StatusDone, issueStatus(t, p, "ISS-1"))
}

func TestDragOntoEmptySpaceFromBacklog(t *testing.T) {
	p := newTestPage(t)

	p.DragStart("ISS-1")
	p.DragEnd("ISS-1", "")
	assert.Equal(t, models.StatusBacklog, issueStatus(t, p, "ISS-1"))
}

func TestDragEnd_OtherSubjectIsIgnored(t *testing.T) {
	p := newTestPage(t)

	p.DragStart("ISS-1")
	out := p.DragEnd("ISS-2", "Done")
	assert.False(t, out.Moved)
	assert.Equal(t, dnd.AbortNotDragging, out.Abort)
	assert.Equal(t, models.StatusInProgress, issueStatus(t, p, "ISS-2"))
	assert.Equal(t, models.StatusBacklog, issueStatus(t, p, "ISS-1"))
	assert.Nil(t, p.Snapshot().Dragging)
}

func TestMove_ContextMenu(t *testing.T) {
	p := newTestPage(t)

	moved, err := p.Move("ISS-1", models.StatusInProgress)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Contains(t, columnIDs(p.Snapshot(), models.StatusInProgress), "ISS-1")

	_, err = p.Move("ISS-1", models.StatusInProgress)
	assert.ErrorIs(t, err, dnd.ErrNotATransition)
}

func TestFilters(t *testing.T) {
	p := newTestPage(t)

	p.SetSearch("plumb")
	snap := p.Snapshot()
	for _, c := range snap.Columns {
		for _, card := range c.Cards {
			assert.Equal(t, "Plumber", card.Office)
		}
	}

	p.SetSearch("")
	p.SetDepartment("Kadamba Hostel - Carpentry")
	snap = p.Snapshot()
	assert.Equal(t, []string{"ISS-1"}, columnIDs(snap, models.StatusBacklog))
	assert.Equal(t, []string{"ISS-12"}, columnIDs(snap, models.StatusDone))

	p.SetDepartment("")
	assert.Equal(t, board.AllDepartments, p.Filter().Department)

	p.SetPriority("High")
	for _, c := range p.Snapshot().Columns {
		for _, card := range c.Cards {
			assert.Equal(t, models.PriorityHigh, card.Priority)
		}
	}

	p.SetFilter(board.Filter{Search: "ISS-1"})
	f := p.Filter()
	assert.Equal(t, board.AllDepartments, f.Department)
	assert.Equal(t, board.AllPriorities, f.Priority)
}

func TestPriorityFilter_StoredAsDisplayName(t *testing.T) {
	p := newTestPage(t)

	p.SetPriority("low")
	assert.Equal(t, "Low", p.Filter().Priority)

	p.SetFilter(board.Filter{Priority: "HIGH"})
	assert.Equal(t, "High", p.Filter().Priority)
	assert.Equal(t, "High", p.Snapshot().Filter.Priority)

	p.SetPriority("")
	assert.Equal(t, board.AllPriorities, p.Filter().Priority)
}

func TestDepartmentOptions_FollowReassignment(t *testing.T) {
	p := newTestPage(t)

	require.NoError(t, p.OpenIssue("ISS-7"))
	require.NoError(t, p.Edit())
	require.NoError(t, p.OpenReassign())
	require.NoError(t, p.UpdateReassign("Electrical", "not a transport job"))
	require.NoError(t, p.ConfirmReassign())

	var values []string
	for _, o := range p.Snapshot().Departments {
		values = append(values, o.Value)
	}
	assert.NotContains(t, values, "Transport", "no seed issue is in Transport any more")
}

func TestDetailScenario_EditAndReassign(t *testing.T) {
	p := newTestPage(t)

	require.NoError(t, p.OpenIssue("ISS-1"))
	require.NoError(t, p.Edit())
	snap := p.Snapshot()
	assert.Equal(t, []string{"Mukesh", "Suresh", "Ramesh", "Kamlesh"}, snap.Detail.AssigneeChoices)

	require.NoError(t, p.OpenReassign())
	require.NoError(t, p.UpdateReassign("Electrical", ""))
	assert.ErrorIs(t, p.ConfirmReassign(), detail.ErrIncompleteReassignment)
	assert.Equal(t, detail.ModeReassignPending, p.Snapshot().Detail.Mode)

	require.NoError(t, p.UpdateReassign("Electrical", "wrong department"))
	require.NoError(t, p.ConfirmReassign())

	snap = p.Snapshot()
	assert.Equal(t, detail.ModeViewing, snap.Detail.Mode)
	assert.False(t, snap.Detail.ReassignOpen)
	assert.Equal(t, "Electrical", snap.Detail.Issue.Office)
}

func TestSubmitReassign(t *testing.T) {
	p := newTestPage(t)

	require.NoError(t, p.OpenIssue("ISS-1"))
	require.NoError(t, p.Edit())
	require.NoError(t, p.OpenReassign())

	assert.ErrorIs(t, p.SubmitReassign("Plumber", ""), detail.ErrIncompleteReassignment)
	snap := p.Snapshot()
	assert.Equal(t, detail.ModeReassignPending, snap.Detail.Mode)
	assert.Equal(t, "Plumber", snap.Detail.ReassignDept)
	assert.Equal(t, "Kadamba Hostel - Carpentry", snap.Detail.Issue.Office)

	assert.ErrorIs(t, p.SubmitReassign("Mars", "x"), detail.ErrUnknownDepartment)

	require.NoError(t, p.SubmitReassign("Plumber", "water damage"))
	snap = p.Snapshot()
	assert.Equal(t, detail.ModeViewing, snap.Detail.Mode)
	assert.False(t, snap.Detail.ReassignOpen)
	assert.Equal(t, "Plumber", snap.Detail.Issue.Office)
}

func TestDetailScenario_CloseMidEdit(t *testing.T) {
	p := newTestPage(t)

	require.NoError(t, p.OpenIssue("ISS-1"))
	require.NoError(t, p.Edit())
	require.NoError(t, p.SelectAssignee("Suresh"))
	p.CloseIssue()

	require.NoError(t, p.OpenIssue("ISS-2"))
	snap := p.Snapshot().Detail
	assert.Equal(t, "ISS-2", snap.Issue.ID)
	assert.Equal(t, "Rakesh Kumar", snap.Issue.Assignee)
	assert.Equal(t, "Plumber", snap.Issue.Office)
	assert.Empty(t, snap.DraftAssignee)

	require.NoError(t, p.Edit())
	assert.Equal(t, "Rakesh Kumar", p.Snapshot().Detail.DraftAssignee)
}

func TestSaveAndCancel(t *testing.T) {
	p := newTestPage(t)

	require.NoError(t, p.OpenIssue("ISS-2"))
	require.NoError(t, p.Edit())
	require.NoError(t, p.SelectAssignee("Vijay Singh"))
	require.NoError(t, p.Save())

	issue, _ := p.Store().Get("ISS-2")
	assert.Equal(t, "Vijay Singh", issue.Assignee)

	require.NoError(t, p.Edit())
	require.NoError(t, p.SelectAssignee("Thakur Balaji Singh"))
	require.NoError(t, p.Cancel())
	issue, _ = p.Store().Get("ISS-2")
	assert.Equal(t, "Vijay Singh", issue.Assignee)

	require.NoError(t, p.Edit())
	require.NoError(t, p.OpenReassign())
	require.NoError(t, p.CancelReassign())
	assert.Equal(t, detail.ModeEditing, p.Snapshot().Detail.Mode)
}
