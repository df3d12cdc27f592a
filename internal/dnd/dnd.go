// Package dnd turns drag gestures reported by a UI toolkit into status changes.
package dnd

import (
	"errors"
	"log/slog"

	"github.com/joescharf/issueboard/internal/board"
	"github.com/joescharf/issueboard/internal/models"
	"github.com/joescharf/issueboard/internal/store"
)

// ErrNotATransition is returned by Move when the status is not offered by the card menu.
var ErrNotATransition = errors.New("status is not a transition from the current status")

// DragHandler is what a drag facility drives. An empty targetID means the
// card was released over nothing.
type DragHandler interface {
	DragStart(subjectID string)
	DragEnd(subjectID, targetID string) Outcome
}

// State is the coordinator's drag state.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResolving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Abort explains why a drag ended without a status change.
type Abort string

const (
	AbortNone           Abort = ""
	AbortNoTarget       Abort = "no_target"
	AbortUnknownTarget  Abort = "unknown_target"
	AbortUnknownSubject Abort = "unknown_subject"
	AbortSameStatus     Abort = "same_status"
	AbortNotDragging    Abort = "not_dragging"
)

// Outcome is the result of resolving a drop.
type Outcome struct {
	Subject string        `json:"subject"`
	Target  string        `json:"target,omitempty"`
	Moved   bool          `json:"moved"`
	From    models.Status `json:"from,omitempty"`
	To      models.Status `json:"to,omitempty"`
	Abort   Abort         `json:"abort,omitempty"`
}

// Coordinator tracks one drag session at a time. It is not safe for
// concurrent use; the owning page serialises events.
type Coordinator struct {
	store  store.Store
	state  State
	active string
	log    *slog.Logger
}

var _ DragHandler = (*Coordinator)(nil)

// NewCoordinator creates a coordinator that commits moves to s.
func NewCoordinator(s store.Store, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{store: s, log: logger}
}

// State returns the current drag state.
func (c *Coordinator) State() State { return c.state }

// Active returns the id of the issue being dragged.
func (c *Coordinator) Active() (string, bool) {
	return c.active, c.state == StateDragging
}

// DragStart begins a drag session for subjectID.
func (c *Coordinator) DragStart(subjectID string) {
	c.active = subjectID
	c.state = StateDragging
}

// DragEnd resolves the drop and always returns the coordinator to idle.
// A release for anything but the captured subject commits nothing.
func (c *Coordinator) DragEnd(subjectID, targetID string) Outcome {
	if c.state != StateDragging || subjectID != c.active {
		c.log.Debug("drag ended without a matching start", "subject", subjectID, "active", c.active)
		c.active = ""
		c.state = StateIdle
		return Outcome{Subject: subjectID, Target: targetID, Abort: AbortNotDragging}
	}

	c.state = StateResolving
	out := c.resolve(subjectID, targetID)
	c.active = ""
	c.state = StateIdle

	c.log.Debug("drag ended", "subject", out.Subject, "target", out.Target, "moved", out.Moved, "abort", string(out.Abort))
	return out
}

func (c *Coordinator) resolve(subjectID, targetID string) Outcome {
	out := Outcome{Subject: subjectID, Target: targetID}
	if targetID == "" {
		out.Abort = AbortNoTarget
		return out
	}

	subject, ok := c.store.Get(subjectID)
	if !ok {
		out.Abort = AbortUnknownSubject
		return out
	}
	out.From = subject.Status

	target, ok := c.targetStatus(targetID)
	if !ok {
		out.Abort = AbortUnknownTarget
		return out
	}
	out.To = target

	if target == subject.Status {
		// Reordering inside a column is not modelled.
		out.Abort = AbortSameStatus
		return out
	}
	out.Moved = c.store.SetStatus(subjectID, target)
	return out
}

// targetStatus resolves a column id first, then an issue id.
func (c *Coordinator) targetStatus(targetID string) (models.Status, bool) {
	if st, ok := board.StatusForColumn(targetID); ok {
		return st, true
	}
	if issue, ok := c.store.Get(targetID); ok {
		return issue.Status, true
	}
	return 0, false
}

// Move applies a card-menu status change. Only the three non-current
// statuses are accepted; an unknown id is a silent no-op.
func Move(s store.Store, id string, status models.Status) (bool, error) {
	issue, ok := s.Get(id)
	if !ok {
		return false, nil
	}
	if !board.IsTransition(issue.Status, status) {
		return false, ErrNotATransition
	}
	return s.SetStatus(id, status), nil
}
