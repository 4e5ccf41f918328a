package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/launchblocks/bpchat/pkg/agent"
	"github.com/launchblocks/bpchat/pkg/models"
)

const editSystemPrompt = `You propose edits to one section of the user's business blueprint.
You receive the section's current data as JSON and the user's requested change.
Respond with a JSON object: {"fieldPath": "...", "newValue": "...", "explanation": "..."}.
"fieldPath" is the dot-separated path of the field to change within the section.
"newValue" is the complete replacement value as a string.
"explanation" is one or two sentences describing the change and why it matches the request.
Never include prose outside the JSON object. You only propose — you never apply changes.`

// EditAgent turns an edit intent into a concrete field-level proposal with a
// diff preview. It never mutates the blueprint.
type EditAgent struct {
	client *Client
}

// NewEditAgent creates an LLM-backed edit-proposal agent.
func NewEditAgent(client *Client) *EditAgent {
	return &EditAgent{client: client}
}

// editWire is the edit model's JSON output shape.
type editWire struct {
	FieldPath   string `json:"fieldPath"`
	NewValue    string `json:"newValue"`
	Explanation string `json:"explanation"`
}

// ProposeEdit asks the model for a field-level change and renders a diff
// preview against the section's current value. Malformed model output is an
// error — the orchestrator converts it to explanatory response text.
func (a *EditAgent) ProposeEdit(ctx context.Context, input *agent.EditInput) (*agent.EditResult, error) {
	sectionJSON, err := json.MarshalIndent(input.Section, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal section data: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Section %q current data:\n%s\n\n", input.Intent.Section, sectionJSON)
	if input.Intent.Field != "" {
		fmt.Fprintf(&b, "The user is targeting the %q field.\n", input.Intent.Field)
	}
	fmt.Fprintf(&b, "Requested change: %s", input.Message)

	result, err := a.client.chat(ctx, editSystemPrompt, b.String(), input.History, true)
	if err != nil {
		return nil, err
	}

	var wire editWire
	if err := json.Unmarshal([]byte(strings.TrimSpace(result.content)), &wire); err != nil {
		return nil, fmt.Errorf("parse edit proposal: %w", err)
	}
	if wire.FieldPath == "" || wire.NewValue == "" || wire.Explanation == "" {
		return nil, fmt.Errorf("incomplete edit proposal: fieldPath=%q newValue=%q", wire.FieldPath, wire.NewValue)
	}

	return &agent.EditResult{
		Proposal: models.EditProposal{
			Section:     input.Intent.Section,
			FieldPath:   wire.FieldPath,
			NewValue:    wire.NewValue,
			Explanation: wire.Explanation,
			DiffPreview: diffPreview(input.Section, wire.FieldPath, wire.NewValue),
		},
		Usage: result.usage,
		Cost:  result.cost,
	}, nil
}

// diffPreview renders a unified-style before/after for the targeted field.
func diffPreview(section map[string]any, fieldPath, newValue string) string {
	oldValue := "(empty)"
	if v, ok := lookupField(section, fieldPath); ok {
		oldValue = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("- %s\n+ %s", oldValue, newValue)
}

// lookupField walks a dot-separated path into the section data.
func lookupField(data map[string]any, fieldPath string) (any, bool) {
	parts := strings.Split(fieldPath, ".")
	var current any = data
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
