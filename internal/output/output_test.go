package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/issueboard/internal/models"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("hello %s", "world")
	assert.Contains(t, out.String(), "hello world")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("done %d", 42)
	assert.Contains(t, out.String(), "done 42")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("careful %s", "now")
	assert.Contains(t, errOut.String(), "careful now")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog_Enabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestVerboseLog_Disabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = false
	u.VerboseLog("detail %d", 1)
	assert.Empty(t, out.String())
}

func TestDryRunMsg_Enabled(t *testing.T) {
	u, _, errOut := newTestUI()
	u.DryRun = true
	u.DryRunMsg("would create %s", "file")
	assert.Contains(t, errOut.String(), "[DRY-RUN]")
	assert.Contains(t, errOut.String(), "would create file")
}

func TestDryRunMsg_Disabled(t *testing.T) {
	u, _, errOut := newTestUI()
	u.DryRun = false
	u.DryRunMsg("would create %s", "file")
	assert.Empty(t, errOut.String())
}

func TestColorHelpers(t *testing.T) {
	// Color helpers should return non-empty strings
	assert.NotEmpty(t, Cyan("test"))
	assert.NotEmpty(t, Green("test"))
	assert.NotEmpty(t, Yellow("test"))
	assert.NotEmpty(t, Red("test"))
}

func TestStatusColor(t *testing.T) {
	for _, st := range models.Statuses() {
		assert.Contains(t, StatusColor(st), st.String())
	}
	assert.Equal(t, "Backlog", StatusColor(models.StatusBacklog))
}

func TestPriorityColor(t *testing.T) {
	for _, p := range models.Priorities() {
		assert.Contains(t, PriorityColor(p), p.String())
	}
	assert.Equal(t, "Low", PriorityColor(models.PriorityLow))
}

func TestTable(t *testing.T) {
	u, out, _ := newTestUI()
	table := u.Table([]string{"Name", "Status"})
	require.NotNil(t, table)

	require.NoError(t, table.Append([]string{"ISS-1", "Backlog"}))
	require.NoError(t, table.Append([]string{"ISS-2", "Done"}))
	require.NoError(t, table.Render())

	result := out.String()
	assert.Contains(t, result, "ISS-1")
	assert.Contains(t, result, "ISS-2")
}

func TestIssues(t *testing.T) {
	u, out, _ := newTestUI()
	issues := []*models.Issue{
		{ID: "ISS-1", Subject: "Door hinge broken", Office: "Carpentry", Assignee: "Mukesh",
			Priority: models.PriorityHigh, Status: models.StatusBacklog, Updated: "2025-01-12 14:20"},
	}
	require.NoError(t, u.Issues(issues))

	result := out.String()
	assert.Contains(t, result, "Door hinge broken")
	assert.Contains(t, result, "2025-01-12")
	assert.NotContains(t, result, "14:20")
	assert.True(t, strings.Contains(result, "SUBJECT") || strings.Contains(result, "Subject"))
}
