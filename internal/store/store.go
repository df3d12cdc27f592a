package store

import (
	"github.com/joescharf/issueboard/internal/models"
)

// Store is the authoritative, ordered issue collection of one board.
//
// Issues returned by List and Get are shared snapshots and must not be
// modified; every mutation replaces the changed issue with a new value so
// unrelated issues keep their identity.
type Store interface {
	List() []*models.Issue
	Get(id string) (*models.Issue, bool)

	// SetStatus moves an issue to status. It reports false, and changes
	// nothing, when the id is unknown or the status is already current.
	SetStatus(id string, status models.Status) bool

	// ApplyUpdate merges patch into the issue. It reports false, and changes
	// nothing, when the id is unknown or the patch changes no field.
	ApplyUpdate(id string, patch models.IssuePatch) bool
}
