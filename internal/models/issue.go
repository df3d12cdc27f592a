package models

import (
	"fmt"
	"strings"
)

// Status is the board column an issue sits in. The zero value is not a valid status.
type Status uint8

const (
	StatusBacklog Status = iota + 1
	StatusInProgress
	StatusReview
	StatusDone
)

var statusNames = map[Status]string{
	StatusBacklog:    "Backlog",
	StatusInProgress: "In Progress",
	StatusReview:     "Review",
	StatusDone:       "Done",
}

// Statuses returns every status in column order.
func Statuses() []Status {
	return []Status{StatusBacklog, StatusInProgress, StatusReview, StatusDone}
}

// ParseStatus converts a display name ("In Progress") into a Status.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if statusNames[st] == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid status %q", s)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Valid reports whether s is one of the four board statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Transitions returns the three statuses an issue in s can be moved to, in column order.
func (s Status) Transitions() []Status {
	out := make([]Status, 0, 3)
	for _, st := range Statuses() {
		if st != s {
			out = append(out, st)
		}
	}
	return out
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Priority represents the urgency of an issue. The zero value is not a valid priority.
type Priority uint8

const (
	PriorityHigh Priority = iota + 1
	PriorityNormal
	PriorityLow
)

var priorityNames = map[Priority]string{
	PriorityHigh:   "High",
	PriorityNormal: "Normal",
	PriorityLow:    "Low",
}

// Priorities returns every priority from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityNormal, PriorityLow}
}

// ParsePriority converts a display name into a Priority. Matching is case-insensitive.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities() {
		if strings.EqualFold(priorityNames[p], s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("invalid priority %q", s)
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", uint8(p))
}

// Valid reports whether p is one of the three priorities.
func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", uint8(p))
	}
	return []byte(priorityNames[p]), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	pr, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = pr
	return nil
}

// Issue is a support ticket on the board.
type Issue struct {
	ID          string   `json:"id" yaml:"id"`
	Subject     string   `json:"subject" yaml:"subject"`
	Office      string   `json:"office" yaml:"office"`
	Tracker     string   `json:"tracker" yaml:"tracker"`
	Author      string   `json:"author" yaml:"author"`
	Assignee    string   `json:"assignee" yaml:"assignee"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Status      Status   `json:"status" yaml:"status"`
	Created     string   `json:"created" yaml:"created"`
	Updated     string   `json:"updated" yaml:"updated"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// CreatedDate returns the date portion of Created.
func (i *Issue) CreatedDate() string { return datePart(i.Created) }

// UpdatedDate returns the date portion of Updated.
func (i *Issue) UpdatedDate() string { return datePart(i.Updated) }

func datePart(ts string) string {
	fields := strings.Fields(ts)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// IssuePatch holds the fields the detail view may change. Nil fields are left alone.
type IssuePatch struct {
	Assignee *string `json:"assignee,omitempty"`
	Office   *string `json:"office,omitempty"`
}

// Apply returns a copy of issue with the patch merged in, and whether anything changed.
func (p IssuePatch) Apply(issue Issue) (Issue, bool) {
	changed := false
	if p.Assignee != nil && *p.Assignee != issue.Assignee {
		issue.Assignee = *p.Assignee
		changed = true
	}
	if p.Office != nil && *p.Office != issue.Office {
		issue.Office = *p.Office
		changed = true
	}
	return issue, changed
}
