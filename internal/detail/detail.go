// Package detail implements the issue detail view and its edit and reassignment flow.
package detail

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/joescharf/issueboard/internal/models"
	"github.com/joescharf/issueboard/internal/refdata"
	"github.com/joescharf/issueboard/internal/store"
)

var (
	ErrUnknownIssue           = errors.New("issue not found")
	ErrNotOpen                = errors.New("no issue is open")
	ErrNotViewing             = errors.New("detail view is not in viewing mode")
	ErrNotEditing             = errors.New("detail view is not in edit mode")
	ErrNotReassigning         = errors.New("reassignment dialog is not open")
	ErrNotStaff               = errors.New("assignee is not on the department's staff list")
	ErrUnknownDepartment      = errors.New("unknown department")
	ErrIncompleteReassignment = errors.New("reassignment needs a department and a reason")
)

// Mode is the state of the detail view.
type Mode int

const (
	ModeClosed Mode = iota
	ModeViewing
	ModeEditing
	ModeReassignPending
)

func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	case ModeReassignPending:
		return "reassign_pending"
	default:
		return "unknown"
	}
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// View is the detail view of one board. It holds only transient drafts; the
// issue itself is always read from the store.
type View struct {
	store store.Store
	log   *slog.Logger

	issueID string
	mode    Mode

	draftAssignee  string
	reassignDept   string
	reassignReason string
}

// NewView creates a closed detail view over s.
func NewView(s store.Store, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	return &View{store: s, log: logger}
}

// Mode returns the current mode.
func (v *View) Mode() Mode { return v.mode }

// IssueID returns the id of the open issue, or "" when closed.
func (v *View) IssueID() string { return v.issueID }

// Open shows issue id. Any drafts from a previously open issue are dropped.
func (v *View) Open(id string) error {
	if _, ok := v.store.Get(id); !ok {
		return ErrUnknownIssue
	}
	v.reset()
	v.issueID = id
	v.mode = ModeViewing
	return nil
}

// Close hides the view and drops every draft.
func (v *View) Close() {
	v.reset()
}

func (v *View) reset() {
	v.issueID = ""
	v.mode = ModeClosed
	v.draftAssignee = ""
	v.reassignDept = ""
	v.reassignReason = ""
}

func (v *View) current() (*models.Issue, error) {
	if v.mode == ModeClosed {
		return nil, ErrNotOpen
	}
	issue, ok := v.store.Get(v.issueID)
	if !ok {
		return nil, ErrUnknownIssue
	}
	return issue, nil
}

// AssigneeChoices returns the staff of the open issue's department. Nil means
// the assignee selector is not offered.
func (v *View) AssigneeChoices() []string {
	issue, err := v.current()
	if err != nil {
		return nil
	}
	return refdata.StaffFor(issue.Office)
}

// Edit enters edit mode, starting the assignee draft from the stored value.
func (v *View) Edit() error {
	issue, err := v.current()
	if err != nil {
		return err
	}
	if v.mode != ModeViewing {
		return ErrNotViewing
	}
	v.draftAssignee = issue.Assignee
	v.mode = ModeEditing
	return nil
}

// SelectAssignee sets the assignee draft.
func (v *View) SelectAssignee(name string) error {
	if v.mode != ModeEditing {
		return ErrNotEditing
	}
	if !slices.Contains(v.AssigneeChoices(), name) {
		return ErrNotStaff
	}
	v.draftAssignee = name
	return nil
}

// Save stores the assignee draft and returns to viewing.
func (v *View) Save() error {
	if v.mode != ModeEditing {
		return ErrNotEditing
	}
	issue, err := v.current()
	if err != nil {
		return err
	}
	draft := v.draftAssignee
	if v.store.ApplyUpdate(issue.ID, models.IssuePatch{Assignee: &draft}) {
		v.log.Info("assignee updated", "issue", issue.ID, "assignee", draft)
	}
	v.draftAssignee = ""
	v.mode = ModeViewing
	return nil
}

// Cancel discards the assignee draft and returns to viewing.
func (v *View) Cancel() error {
	if v.mode != ModeEditing {
		return ErrNotEditing
	}
	v.draftAssignee = ""
	v.mode = ModeViewing
	return nil
}

// OpenReassign opens the reassignment dialog from edit mode.
func (v *View) OpenReassign() error {
	if v.mode != ModeEditing {
		return ErrNotEditing
	}
	v.mode = ModeReassignPending
	return nil
}

// SetReassignDepartment picks the department to reassign to.
func (v *View) SetReassignDepartment(dept string) error {
	if v.mode != ModeReassignPending {
		return ErrNotReassigning
	}
	if dept != "" && !refdata.IsDepartment(dept) {
		return ErrUnknownDepartment
	}
	v.reassignDept = dept
	return nil
}

// SetReassignReason stores the free-text reason verbatim.
func (v *View) SetReassignReason(reason string) error {
	if v.mode != ModeReassignPending {
		return ErrNotReassigning
	}
	v.reassignReason = reason
	return nil
}

// CanConfirm reports whether the reassignment dialog's confirm control is enabled.
func (v *View) CanConfirm() bool {
	return v.mode == ModeReassignPending && v.reassignDept != "" && v.reassignReason != ""
}

// ConfirmReassign moves the issue to the selected department and leaves edit
// mode. The reason is logged and then discarded.
func (v *View) ConfirmReassign() error {
	if v.mode != ModeReassignPending {
		return ErrNotReassigning
	}
	if !v.CanConfirm() {
		return ErrIncompleteReassignment
	}
	issue, err := v.current()
	if err != nil {
		return err
	}

	dept, reason := v.reassignDept, v.reassignReason
	v.store.ApplyUpdate(issue.ID, models.IssuePatch{Office: &dept})
	v.log.Info("issue reassigned", "issue", issue.ID, "from", issue.Office, "department", dept, "reason", reason)

	v.reassignDept = ""
	v.reassignReason = ""
	v.draftAssignee = ""
	v.mode = ModeViewing
	return nil
}

// CancelReassign closes the dialog and returns to edit mode. Drafts are kept
// until the view is closed or switched.
func (v *View) CancelReassign() error {
	if v.mode != ModeReassignPending {
		return ErrNotReassigning
	}
	v.mode = ModeEditing
	return nil
}

// Snapshot is the resolved display state of the view.
type Snapshot struct {
	Open            bool          `json:"open"`
	Mode            Mode          `json:"mode"`
	Issue           *models.Issue `json:"issue,omitempty"`
	CreatedDate     string        `json:"created_date,omitempty"`
	DraftAssignee   string        `json:"draft_assignee,omitempty"`
	AssigneeChoices []string      `json:"assignee_choices,omitempty"`
	ReassignOpen    bool          `json:"reassign_open"`
	ReassignDept    string        `json:"reassign_department,omitempty"`
	ReassignReason  string        `json:"reassign_reason,omitempty"`
	CanConfirm      bool          `json:"can_confirm"`
	Departments     []string      `json:"departments,omitempty"`
}

// Snapshot returns the display state. The issue is read fresh from the store.
func (v *View) Snapshot() Snapshot {
	issue, err := v.current()
	if err != nil {
		return Snapshot{Mode: ModeClosed}
	}
	snap := Snapshot{
		Open:        true,
		Mode:        v.mode,
		Issue:       issue,
		CreatedDate: issue.CreatedDate(),
	}
	if v.mode == ModeEditing || v.mode == ModeReassignPending {
		snap.DraftAssignee = v.draftAssignee
		snap.AssigneeChoices = refdata.StaffFor(issue.Office)
	}
	if v.mode == ModeReassignPending {
		snap.ReassignOpen = true
		snap.ReassignDept = v.reassignDept
		snap.ReassignReason = v.reassignReason
		snap.CanConfirm = v.CanConfirm()
		snap.Departments = refdata.Departments()
	}
	return snap
}
