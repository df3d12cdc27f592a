// Package refdata holds the static reference tables and seed issues the board starts from.
package refdata

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joescharf/issueboard/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

// officeSeparator splits compound offices such as "Kadamba Hostel - Carpentry".
const officeSeparator = " - "

// departments is the fixed enumeration an issue can be reassigned to.
var departments = []string{
	"Carpentry",
	"Plumber",
	"Electrical",
	"Telephone/Intercom",
	"Quarters Related",
	"Kadamba Hostel - Carpentry",
	"Transport",
	"Civil",
	"Horticulture",
}

// departmentStaff maps a department key to the staff who can be assigned its issues.
var departmentStaff = map[string][]string{
	"Carpentry":          {"Mukesh", "Suresh", "Ramesh", "Kamlesh"},
	"Plumber":            {"Thakur Balaji Singh", "Rakesh Kumar", "Vijay Singh"},
	"Electrical":         {"Bhaskar Prasad M", "Anil Kumar", "Santosh"},
	"Telephone/Intercom": {"Bhaskar Prasad M", "Mohan Lal"},
}

// Departments returns the reassignment enumeration in display order.
func Departments() []string {
	return slices.Clone(departments)
}

// IsDepartment reports whether name is in the reassignment enumeration.
func IsDepartment(name string) bool {
	return slices.Contains(departments, name)
}

// DepartmentKey derives the staff-table key from an office.
// "<A> - <B>" yields B; anything else is used whole.
func DepartmentKey(office string) string {
	parts := strings.Split(office, officeSeparator)
	if len(parts) > 1 {
		return parts[1]
	}
	return office
}

// StaffFor returns the staff for the department of office, or nil when none is known.
func StaffFor(office string) []string {
	staff, ok := departmentStaff[DepartmentKey(office)]
	if !ok {
		return nil
	}
	return slices.Clone(staff)
}

// StaffTable returns a copy of the whole department to staff table.
func StaffTable() map[string][]string {
	out := make(map[string][]string, len(departmentStaff))
	for k, v := range departmentStaff {
		out[k] = slices.Clone(v)
	}
	return out
}

// Seed returns a fresh copy of the embedded seed issues.
func Seed() []models.Issue {
	issues, err := LoadSeed(bytes.NewReader(seedYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded seed data: %v", err))
	}
	return issues
}

// LoadSeed parses a YAML list of issues and validates it.
func LoadSeed(r io.Reader) ([]models.Issue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var issues []models.Issue
	if err := yaml.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	seen := make(map[string]bool, len(issues))
	for i, issue := range issues {
		if issue.ID == "" {
			return nil, fmt.Errorf("seed issue %d: missing id", i)
		}
		if seen[issue.ID] {
			return nil, fmt.Errorf("seed issue %s: duplicate id", issue.ID)
		}
		seen[issue.ID] = true
		if !issue.Status.Valid() {
			return nil, fmt.Errorf("seed issue %s: missing status", issue.ID)
		}
		if !issue.Priority.Valid() {
			return nil, fmt.Errorf("seed issue %s: missing priority", issue.ID)
		}
	}
	return issues, nil
}
