package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/launchblocks/bpchat/pkg/agent"
	"github.com/launchblocks/bpchat/pkg/models"
)

const classifierSystemPrompt = `You classify messages a user sends about their business blueprint.
Respond with a JSON object: {"type": "...", "section": "...", "field": "...", "whatToExplain": "...", "instructions": "..."}.
Valid types:
- "question": the user asks about blueprint content
- "general": conversational chatter not tied to specific content
- "edit": the user wants to change something; set "section" (camelCase section key) and optionally "field"
- "explain": the user wants to know why the blueprint says something; set "section" and one of "whatToExplain"/"field"
- "regenerate": the user wants a section regenerated; set "section" and optionally "instructions"
- "unknown": none of the above
Only include keys that apply. Never include prose outside the JSON object.`

// Classifier determines message intent via one JSON-mode completion.
type Classifier struct {
	client *Client
	logger *slog.Logger
}

// NewClassifier creates an LLM-backed intent classifier.
func NewClassifier(client *Client, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{client: client, logger: logger}
}

// Classify always returns a value: provider or parse failure degrades to an
// unknown intent carrying whatever usage accrued, never an error that aborts
// the turn.
func (c *Classifier) Classify(ctx context.Context, message string) (*agent.Classification, error) {
	result, err := c.client.chat(ctx, classifierSystemPrompt, message, nil, true)
	if err != nil {
		c.logger.Warn("Intent classification call failed", "error", err)
		return &agent.Classification{Intent: models.UnknownIntent{}}, nil
	}

	intent := parseIntent(result.content, message)
	return &agent.Classification{
		Intent: intent,
		Usage:  result.usage,
		Cost:   result.cost,
	}, nil
}

// intentWire is the classifier model's JSON output shape.
type intentWire struct {
	Type          string `json:"type"`
	Section       string `json:"section"`
	Field         string `json:"field"`
	WhatToExplain string `json:"whatToExplain"`
	Instructions  string `json:"instructions"`
}

// parseIntent decodes the model output into an intent variant. Malformed
// output, or a variant missing its required fields, degrades to unknown.
func parseIntent(raw, message string) models.Intent {
	var wire intentWire
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &wire); err != nil {
		return models.UnknownIntent{}
	}

	switch models.IntentType(wire.Type) {
	case models.IntentQuestion:
		return models.QuestionIntent{Query: message}
	case models.IntentGeneral:
		return models.GeneralIntent{Query: message}
	case models.IntentEdit:
		if wire.Section == "" {
			return models.UnknownIntent{}
		}
		return models.EditIntent{Section: wire.Section, Field: wire.Field}
	case models.IntentExplain:
		if wire.Section == "" {
			return models.UnknownIntent{}
		}
		return models.ExplainIntent{
			Section:       wire.Section,
			WhatToExplain: wire.WhatToExplain,
			Field:         wire.Field,
		}
	case models.IntentRegenerate:
		if wire.Section == "" {
			return models.UnknownIntent{}
		}
		return models.RegenerateIntent{Section: wire.Section, Instructions: wire.Instructions}
	default:
		return models.UnknownIntent{}
	}
}
