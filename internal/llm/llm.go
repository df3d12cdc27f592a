// Package llm suggests the responsible department for an issue using the Anthropic API.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joescharf/issueboard/internal/models"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5"

// ErrUnknownDepartment is returned when the model names a department outside the enumeration.
var ErrUnknownDepartment = errors.New("suggested department is not in the department list")

// Suggestion is the model's routing decision for one issue.
type Suggestion struct {
	Department string `json:"department"`
	Reason     string `json:"reason"`
}

// Client wraps the Anthropic API for issue triage.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates an LLM client with the given API key and model.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if model == "" {
		model = DefaultModel
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// buildTriagePrompt constructs the system and user prompts for department triage.
func buildTriagePrompt(issue *models.Issue, departments []string) (system string, user string) {
	var sb strings.Builder
	sb.WriteString(`You route campus maintenance issues to the department that should handle them. Return a JSON object with exactly two fields:

- "department": the responsible department, copied exactly from the list below
- "reason": one short sentence explaining the choice

Departments:
`)
	for _, d := range departments {
		sb.WriteString("- ")
		sb.WriteString(d)
		sb.WriteString("\n")
	}
	sb.WriteString(`
Rules:
- Choose exactly one department from the list; never invent a new one
- If the current office is already correct, return it unchanged
- Return valid JSON only, no markdown fencing or explanation`)
	system = sb.String()

	sb.Reset()
	fmt.Fprintf(&sb, "Issue: %s\n", issue.ID)
	fmt.Fprintf(&sb, "Subject: %s\n", issue.Subject)
	fmt.Fprintf(&sb, "Current office: %s\n", issue.Office)
	if issue.Tracker != "" {
		fmt.Fprintf(&sb, "Tracker: %s\n", issue.Tracker)
	}
	if issue.Description != "" {
		sb.WriteString("\nDescription:\n")
		sb.WriteString(issue.Description)
		sb.WriteString("\n")
	}
	user = sb.String()
	return
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) > 1 {
		text = lines[1]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// parseSuggestion decodes the model's reply and checks it against departments.
func parseSuggestion(text string, departments []string) (*Suggestion, error) {
	text = stripFences(text)

	var s Suggestion
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("parse LLM response as JSON: %w\nraw response: %s", err, text)
	}
	for _, d := range departments {
		if strings.EqualFold(strings.TrimSpace(s.Department), d) {
			s.Department = d
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDepartment, s.Department)
}

// Triage asks the model which department should own issue.
func (c *Client) Triage(ctx context.Context, issue *models.Issue, departments []string) (*Suggestion, error) {
	systemPrompt, userPrompt := buildTriagePrompt(issue, departments)

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return parseSuggestion(text, departments)
}

// SuggestDepartment returns only the department of Triage.
func (c *Client) SuggestDepartment(ctx context.Context, issue *models.Issue, departments []string) (string, error) {
	s, err := c.Triage(ctx, issue, departments)
	if err != nil {
		return "", err
	}
	return s.Department, nil
}
