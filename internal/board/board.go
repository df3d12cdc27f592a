// Package board derives the column layout of the kanban board from an issue collection.
package board

import (
	"slices"
	"sort"
	"strings"

	"github.com/joescharf/issueboard/internal/models"
)

// AllDepartments is the department filter value that matches every office.
const AllDepartments = "all"

// AllPriorities is the priority filter value that matches every priority.
const AllPriorities = "all"

// AllDepartmentsLabel is the display label of the leading filter option.
const AllDepartmentsLabel = "All Departments"

// Filter holds the search and filter criteria of the board.
type Filter struct {
	Search     string `json:"search"`
	Department string `json:"department"`
	Priority   string `json:"priority"`
}

// DefaultFilter matches every issue.
func DefaultFilter() Filter {
	return Filter{Department: AllDepartments, Priority: AllPriorities}
}

// Matches reports whether issue passes both the search and the filters.
func (f Filter) Matches(issue *models.Issue) bool {
	return f.matchesSearch(issue) && f.matchesDepartment(issue) && f.matchesPriority(issue)
}

// matchesSearch checks id, subject and office only. Assignee, author and
// description are never searched.
func (f Filter) matchesSearch(issue *models.Issue) bool {
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(issue.Subject), q) ||
		strings.Contains(strings.ToLower(issue.ID), q) ||
		strings.Contains(strings.ToLower(issue.Office), q)
}

// matchesDepartment compares the full office string, compound offices included.
func (f Filter) matchesDepartment(issue *models.Issue) bool {
	return f.Department == "" || f.Department == AllDepartments || f.Department == issue.Office
}

func (f Filter) matchesPriority(issue *models.Issue) bool {
	if f.Priority == "" || f.Priority == AllPriorities {
		return true
	}
	p, err := models.ParsePriority(f.Priority)
	if err != nil {
		return false
	}
	return issue.Priority == p
}

// Column is one status bucket of the board.
type Column struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Status models.Status   `json:"status"`
	Count  int             `json:"count"`
	Issues []*models.Issue `json:"-"`
}

// ColumnID returns the drop-target identifier of the column for status.
func ColumnID(status models.Status) string {
	return status.String()
}

// StatusForColumn resolves a drop-target identifier to the status of its column.
func StatusForColumn(id string) (models.Status, bool) {
	st, err := models.ParseStatus(id)
	if err != nil {
		return 0, false
	}
	return st, true
}

// Group returns the four columns in status order, each holding the filtered
// issues with that status in collection order.
func Group(issues []*models.Issue, f Filter) []Column {
	columns := make([]Column, 0, 4)
	index := make(map[models.Status]int, 4)
	for _, st := range models.Statuses() {
		index[st] = len(columns)
		columns = append(columns, Column{ID: ColumnID(st), Title: st.String(), Status: st})
	}

	for _, issue := range issues {
		if !f.Matches(issue) {
			continue
		}
		i, ok := index[issue.Status]
		if !ok {
			continue
		}
		columns[i].Issues = append(columns[i].Issues, issue)
	}
	for i := range columns {
		columns[i].Count = len(columns[i].Issues)
	}
	return columns
}

// Departments returns the distinct offices present in issues, sorted ascending.
func Departments(issues []*models.Issue) []string {
	seen := make(map[string]bool)
	var out []string
	for _, issue := range issues {
		if !seen[issue.Office] {
			seen[issue.Office] = true
			out = append(out, issue.Office)
		}
	}
	sort.Strings(out)
	return out
}

// Option is one entry of a filter dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DepartmentOptions returns the department filter choices with the leading "all" option.
func DepartmentOptions(issues []*models.Issue) []Option {
	deps := Departments(issues)
	out := make([]Option, 0, len(deps)+1)
	out = append(out, Option{Value: AllDepartments, Label: AllDepartmentsLabel})
	for _, d := range deps {
		out = append(out, Option{Value: d, Label: d})
	}
	return out
}

// Card is the summary of an issue shown on the board.
type Card struct {
	ID          string          `json:"id"`
	Subject     string          `json:"subject"`
	Office      string          `json:"office"`
	Assignee    string          `json:"assignee"`
	Priority    models.Priority `json:"priority"`
	Status      models.Status   `json:"status"`
	UpdatedDate string          `json:"updated_date"`
	Transitions []models.Status `json:"transitions"`
}

// NewCard builds the card for issue. Transitions lists the context-menu targets.
func NewCard(issue *models.Issue) Card {
	return Card{
		ID:          issue.ID,
		Subject:     issue.Subject,
		Office:      issue.Office,
		Assignee:    issue.Assignee,
		Priority:    issue.Priority,
		Status:      issue.Status,
		UpdatedDate: issue.UpdatedDate(),
		Transitions: issue.Status.Transitions(),
	}
}

// CardColumn is a column with its issues rendered as cards.
type CardColumn struct {
	Column
	Cards []Card `json:"cards"`
}

// Cards renders every column's issues as cards.
func Cards(columns []Column) []CardColumn {
	out := make([]CardColumn, len(columns))
	for i, c := range columns {
		cards := make([]Card, len(c.Issues))
		for j, issue := range c.Issues {
			cards[j] = NewCard(issue)
		}
		out[i] = CardColumn{Column: c, Cards: cards}
	}
	return out
}

// IsTransition reports whether to is offered by the context menu of an issue in from.
func IsTransition(from, to models.Status) bool {
	return slices.Contains(from.Transitions(), to)
}
