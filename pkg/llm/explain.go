package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/launchblocks/bpchat/pkg/agent"
	"github.com/launchblocks/bpchat/pkg/models"
)

const explainSystemPrompt = `You explain why the user's business blueprint says what it says.
You receive the entire blueprint as JSON because reasoning often crosses sections
(e.g. pricing follows from the target audience).
Respond with a JSON object:
{"explanation": "...", "confidence": "high|medium|low",
 "relatedFactors": [{"section": "...", "description": "..."}]}.
"relatedFactors" lists other sections that influenced this content; use [] when none do.
Never include prose outside the JSON object.`

// ExplainAgent explains blueprint content in terms of the whole document.
type ExplainAgent struct {
	client *Client
}

// NewExplainAgent creates an LLM-backed explanation agent.
func NewExplainAgent(client *Client) *ExplainAgent {
	return &ExplainAgent{client: client}
}

// explainWire is the explain model's JSON output shape.
type explainWire struct {
	Explanation    string                 `json:"explanation"`
	Confidence     string                 `json:"confidence"`
	RelatedFactors []models.RelatedFactor `json:"relatedFactors"`
}

// Explain asks the model why the targeted content is what it is.
// RelatedFactors in the result is always non-nil.
func (a *ExplainAgent) Explain(ctx context.Context, input *agent.ExplainInput) (*agent.ExplainResult, error) {
	blueprintJSON, err := json.MarshalIndent(input.Blueprint.Data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal blueprint data: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Blueprint %q full data:\n%s\n\n", input.Blueprint.Title, blueprintJSON)
	fmt.Fprintf(&b, "The user wants an explanation about the %q section", input.Intent.Section)
	switch {
	case input.Intent.WhatToExplain != "":
		fmt.Fprintf(&b, ", specifically: %s", input.Intent.WhatToExplain)
	case input.Intent.Field != "":
		fmt.Fprintf(&b, ", specifically the %q field", input.Intent.Field)
	}
	b.WriteString(".")

	result, err := a.client.chat(ctx, explainSystemPrompt, b.String(), input.History, true)
	if err != nil {
		return nil, err
	}

	var wire explainWire
	if err := json.Unmarshal([]byte(strings.TrimSpace(result.content)), &wire); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	if wire.Explanation == "" {
		return nil, fmt.Errorf("empty explanation from model")
	}
	if wire.RelatedFactors == nil {
		wire.RelatedFactors = []models.RelatedFactor{}
	}

	return &agent.ExplainResult{
		Explanation:    wire.Explanation,
		Confidence:     normalizeConfidence(wire.Confidence),
		RelatedFactors: wire.RelatedFactors,
		Usage:          result.usage,
		Cost:           result.cost,
	}, nil
}

// normalizeConfidence clamps arbitrary model output to the three known levels.
func normalizeConfidence(raw string) models.Confidence {
	switch models.Confidence(strings.ToLower(strings.TrimSpace(raw))) {
	case models.ConfidenceHigh:
		return models.ConfidenceHigh
	case models.ConfidenceMedium:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
