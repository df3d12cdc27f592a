package sessions

import (
	"log/slog"
	"sync"

	"github.com/joescharf/issueboard/internal/board"
	"github.com/joescharf/issueboard/internal/detail"
	"github.com/joescharf/issueboard/internal/dnd"
	"github.com/joescharf/issueboard/internal/models"
	"github.com/joescharf/issueboard/internal/store"
)

// Page is the board shell of one session. It owns the issue collection and
// all transient UI state; every method is one atomic user event.
type Page struct {
	mu     sync.Mutex
	store  *store.MemoryStore
	filter board.Filter
	drag   *dnd.Coordinator
	detail *detail.View
}

// NewPage creates a page seeded with copies of seed.
func NewPage(seed []models.Issue, logger *slog.Logger) *Page {
	if logger == nil {
		logger = slog.Default()
	}
	s := store.NewMemoryStore(seed)
	return &Page{
		store:  s,
		filter: board.DefaultFilter(),
		drag:   dnd.NewCoordinator(s, logger),
		detail: detail.NewView(s, logger),
	}
}

// Store returns the page's issue store.
func (p *Page) Store() store.Store { return p.store }

// Snapshot is everything needed to draw the page.
type Snapshot struct {
	Filter      board.Filter       `json:"filter"`
	Departments []board.Option     `json:"departments"`
	Priorities  []models.Priority  `json:"priorities"`
	Columns     []board.CardColumn `json:"columns"`
	Dragging    *board.Card        `json:"dragging,omitempty"`
	Detail      detail.Snapshot    `json:"detail"`
}

// Snapshot renders the current state.
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

func (p *Page) snapshot() Snapshot {
	issues := p.store.List()
	snap := Snapshot{
		Filter:      p.filter,
		Departments: board.DepartmentOptions(issues),
		Priorities:  models.Priorities(),
		Columns:     board.Cards(board.Group(issues, p.filter)),
		Detail:      p.detail.Snapshot(),
	}
	if id, ok := p.drag.Active(); ok {
		if issue, ok := p.store.Get(id); ok {
			card := board.NewCard(issue)
			snap.Dragging = &card
		}
	}
	return snap
}

// Filter returns the current filter.
func (p *Page) Filter() board.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// SetSearch replaces the search text.
func (p *Page) SetSearch(q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter.Search = q
}

// SetDepartment replaces the department filter; "" resets to all.
func (p *Page) SetDepartment(dept string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if dept == "" {
		dept = board.AllDepartments
	}
	p.filter.Department = dept
}

// SetPriority replaces the priority filter; "" resets to all. Known
// priorities are stored under their display name.
func (p *Page) SetPriority(priority string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter.Priority = normalizePriority(priority)
}

func normalizePriority(priority string) string {
	if priority == "" {
		return board.AllPriorities
	}
	if pr, err := models.ParsePriority(priority); err == nil {
		return pr.String()
	}
	return priority
}

// SetFilter replaces the whole filter.
func (p *Page) SetFilter(f board.Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f.Department == "" {
		f.Department = board.AllDepartments
	}
	f.Priority = normalizePriority(f.Priority)
	p.filter = f
}

// DragStart begins a drag of subjectID.
func (p *Page) DragStart(subjectID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drag.DragStart(subjectID)
}

// DragEnd resolves a drop of subjectID onto targetID ("" for none).
func (p *Page) DragEnd(subjectID, targetID string) dnd.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.drag.DragEnd(subjectID, targetID)
}

// Move applies a card context-menu status change.
func (p *Page) Move(id string, status models.Status) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return dnd.Move(p.store, id, status)
}

// Detail runs fn against the detail view under the page lock.
func (p *Page) Detail(fn func(v *detail.View) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.detail)
}

// OpenIssue shows the detail view of id.
func (p *Page) OpenIssue(id string) error {
	return p.Detail(func(v *detail.View) error { return v.Open(id) })
}

// CloseIssue closes the detail view and drops its drafts.
func (p *Page) CloseIssue() {
	_ = p.Detail(func(v *detail.View) error { v.Close(); return nil })
}

// Edit enters edit mode on the open issue.
func (p *Page) Edit() error {
	return p.Detail((*detail.View).Edit)
}

// SelectAssignee sets the draft assignee.
func (p *Page) SelectAssignee(name string) error {
	return p.Detail(func(v *detail.View) error { return v.SelectAssignee(name) })
}

// Save stores the draft assignee and leaves edit mode.
func (p *Page) Save() error {
	return p.Detail((*detail.View).Save)
}

// Cancel discards the draft assignee and leaves edit mode.
func (p *Page) Cancel() error {
	return p.Detail((*detail.View).Cancel)
}

// OpenReassign opens the reassignment dialog.
func (p *Page) OpenReassign() error {
	return p.Detail((*detail.View).OpenReassign)
}

// UpdateReassign sets the department and reason drafts of the open dialog.
func (p *Page) UpdateReassign(dept, reason string) error {
	return p.Detail(func(v *detail.View) error {
		if err := v.SetReassignDepartment(dept); err != nil {
			return err
		}
		return v.SetReassignReason(reason)
	})
}

// ConfirmReassign confirms the drafts already in the dialog.
func (p *Page) ConfirmReassign() error {
	return p.Detail((*detail.View).ConfirmReassign)
}

// SubmitReassign sets the dialog's drafts and confirms them as one event, so
// a confirm never races the update that filled the form.
func (p *Page) SubmitReassign(dept, reason string) error {
	return p.Detail(func(v *detail.View) error {
		if err := v.SetReassignDepartment(dept); err != nil {
			return err
		}
		if err := v.SetReassignReason(reason); err != nil {
			return err
		}
		return v.ConfirmReassign()
	})
}

// CancelReassign closes the dialog and returns to edit mode.
func (p *Page) CancelReassign() error {
	return p.Detail((*detail.View).CancelReassign)
}
