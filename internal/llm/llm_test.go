package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/issueboard/internal/models"
)

var testDepartments = []string{"Carpentry", "Plumber", "Electrical"}

func TestBuildTriagePrompt(t *testing.T) {
	issue := &models.Issue{
		ID:          "ISS-2",
		Subject:     "Leaking tap in washroom",
		Office:      "Carpentry",
		Tracker:     "Bug",
		Description: "Water pooling under the sink.",
	}

	system, user := buildTriagePrompt(issue, testDepartments)

	assert.Contains(t, system, "JSON object")
	assert.Contains(t, system, `"department"`)
	assert.Contains(t, system, `"reason"`)
	for _, d := range testDepartments {
		assert.Contains(t, system, "- "+d+"\n")
	}

	assert.Contains(t, user, "Issue: ISS-2")
	assert.Contains(t, user, "Subject: Leaking tap in washroom")
	assert.Contains(t, user, "Current office: Carpentry")
	assert.Contains(t, user, "Tracker: Bug")
	assert.Contains(t, user, "Water pooling under the sink.")
}

func TestBuildTriagePrompt_OmitsEmptyFields(t *testing.T) {
	_, user := buildTriagePrompt(&models.Issue{ID: "ISS-1", Subject: "x", Office: "Civil"}, testDepartments)

	assert.NotContains(t, user, "Tracker:")
	assert.NotContains(t, user, "Description:")
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("  {\"a\":1}\n"))
}

func TestParseSuggestion(t *testing.T) {
	s, err := parseSuggestion(`{"department":"plumber","reason":"tap leak"}`, testDepartments)
	require.NoError(t, err)
	assert.Equal(t, "Plumber", s.Department, "normalised to the listed spelling")
	assert.Equal(t, "tap leak", s.Reason)

	s, err = parseSuggestion("```json\n{\"department\":\"Electrical\",\"reason\":\"wiring\"}\n```", testDepartments)
	require.NoError(t, err)
	assert.Equal(t, "Electrical", s.Department)

	_, err = parseSuggestion(`{"department":"Masonry","reason":"?"}`, testDepartments)
	assert.ErrorIs(t, err, ErrUnknownDepartment)

	_, err = parseSuggestion(`not json`, testDepartments)
	assert.Error(t, err)
}

func TestNewClient_DefaultModel(t *testing.T) {
	c := NewClient("", "")
	assert.Equal(t, DefaultModel, string(c.model))

	c = NewClient("key", "claude-haiku-4-5")
	assert.Equal(t, "claude-haiku-4-5", string(c.model))
}
