package models

// IntentType identifies the classified purpose of a user message.
type IntentType string

const (
	IntentQuestion   IntentType = "question"
	IntentGeneral    IntentType = "general"
	IntentEdit       IntentType = "edit"
	IntentExplain    IntentType = "explain"
	IntentRegenerate IntentType = "regenerate"
	IntentUnknown    IntentType = "unknown"
)

// Intent is the interface for all classified intent variants.
// Exactly one intent is produced per turn; the orchestrator's dispatch is a
// total function over the variant type — unrecognized variants route to
// helper text, never to a crash.
type Intent interface {
	IntentType() IntentType
}

// QuestionIntent is a blueprint question that needs retrieval-grounded answering.
type QuestionIntent struct {
	Query string
}

// GeneralIntent is conversational chatter handled the same way as a question.
type GeneralIntent struct {
	Query string
}

// EditIntent is a request to change a field in a blueprint section.
type EditIntent struct {
	Section string
	Field   string // optional
}

// ExplainIntent is a request to explain why the blueprint says what it says.
type ExplainIntent struct {
	Section       string
	WhatToExplain string // one of WhatToExplain/Field is set
	Field         string
}

// RegenerateIntent asks for a section to be regenerated from scratch.
type RegenerateIntent struct {
	Section      string
	Instructions string // optional
}

// UnknownIntent is the fallback when classification fails or the message
// doesn't fit any known purpose.
type UnknownIntent struct{}

func (QuestionIntent) IntentType() IntentType   { return IntentQuestion }
func (GeneralIntent) IntentType() IntentType    { return IntentGeneral }
func (EditIntent) IntentType() IntentType       { return IntentEdit }
func (ExplainIntent) IntentType() IntentType    { return IntentExplain }
func (RegenerateIntent) IntentType() IntentType { return IntentRegenerate }
func (UnknownIntent) IntentType() IntentType    { return IntentUnknown }

// IntentInfo is the serialized form of an Intent in the response envelope.
// Only the fields valid for the variant are populated.
type IntentInfo struct {
	Type          IntentType `json:"type"`
	Section       string     `json:"section,omitempty"`
	Field         string     `json:"field,omitempty"`
	WhatToExplain string     `json:"whatToExplain,omitempty"`
	Instructions  string     `json:"instructions,omitempty"`
}

// NewIntentInfo flattens an Intent variant into its wire representation.
func NewIntentInfo(intent Intent) IntentInfo {
	switch i := intent.(type) {
	case QuestionIntent:
		return IntentInfo{Type: IntentQuestion}
	case GeneralIntent:
		return IntentInfo{Type: IntentGeneral}
	case EditIntent:
		return IntentInfo{Type: IntentEdit, Section: i.Section, Field: i.Field}
	case ExplainIntent:
		return IntentInfo{Type: IntentExplain, Section: i.Section, WhatToExplain: i.WhatToExplain, Field: i.Field}
	case RegenerateIntent:
		return IntentInfo{Type: IntentRegenerate, Section: i.Section, Instructions: i.Instructions}
	case UnknownIntent:
		return IntentInfo{Type: IntentUnknown}
	default:
		// Future variants still serialize with their own tag.
		return IntentInfo{Type: intent.IntentType()}
	}
}
