// Package models contains the shared data types exchanged between the API
// layer, the turn orchestrator, and its collaborators.
package models

// ChatMessage is a single prior message in the conversation history.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatTurnRequest is the HTTP request body for a chat turn.
// ConversationID is opaque to the orchestrator — it is passed through (or
// minted fresh when absent) and no per-conversation state is read or written.
type ChatTurnRequest struct {
	Message        string        `json:"message"`
	ConversationID string        `json:"conversationId,omitempty"`
	ChatHistory    []ChatMessage `json:"chatHistory,omitempty"`
}

// Confidence is a coarse quality signal attached to generated answers and
// explanations.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// SourceRef points at a retrieved chunk that grounded the answer.
type SourceRef struct {
	ChunkID    string  `json:"chunkId"`
	Section    string  `json:"section"`
	FieldPath  string  `json:"fieldPath"`
	Similarity float64 `json:"similarity"`
}

// Usage reports token consumption for a single external call.
type Usage struct {
	TotalTokens int `json:"totalTokens"`
}

// TurnMetadata carries the cost accounting for one turn.
// Cost is the sum over exactly the stages that executed; a skipped stage
// contributes zero. IntentClassificationCost is sunk cost and is always
// present even when the routed branch later failed.
type TurnMetadata struct {
	TokensUsed               int     `json:"tokensUsed"`
	Cost                     float64 `json:"cost"`
	ProcessingTimeMs         int64   `json:"processingTimeMs"`
	IntentClassificationCost float64 `json:"intentClassificationCost"`
}

// EditProposal is a proposed-but-unapplied change to a blueprint field.
// The orchestrator never mutates the blueprint; a separate confirm turn
// applies or discards the proposal.
type EditProposal struct {
	Section     string `json:"section"`
	FieldPath   string `json:"fieldPath"`
	NewValue    string `json:"newValue"`
	Explanation string `json:"explanation"`
	DiffPreview string `json:"diffPreview"`
}

// PendingAction attaches a proposal awaiting user confirmation to a response.
type PendingAction struct {
	Type       string        `json:"type"` // "edit"
	EditResult *EditProposal `json:"editResult"`
}

// RelatedFactor is a cross-section relationship cited by an explanation.
type RelatedFactor struct {
	Section     string `json:"section"`
	Description string `json:"description"`
}

// ConfidenceBreakdown is the structured view behind a coarse confidence level.
type ConfidenceBreakdown struct {
	Level   Confidence `json:"level"`
	Score   float64    `json:"score"` // 0..1
	Factors []string   `json:"factors,omitempty"`
}

// SourceQuality assesses how well the retrieved chunks supported the answer.
type SourceQuality struct {
	ChunksUsed int    `json:"chunksUsed"`
	Coverage   string `json:"coverage"` // "full", "partial", "none"
}

// ChatTurnResponse is the single envelope returned for every successful turn,
// regardless of which branch fired. Branch-specific fields are populated only
// by their branch and omitted otherwise, so a client can infer the branch
// purely from which optional fields are present. Sources is always non-nil.
type ChatTurnResponse struct {
	ConversationID string               `json:"conversationId"`
	Response       string               `json:"response"`
	Intent         IntentInfo           `json:"intent"`
	Sources        []SourceRef          `json:"sources"`
	Confidence     Confidence           `json:"confidence,omitempty"`
	Metadata       TurnMetadata         `json:"metadata"`
	PendingAction  *PendingAction       `json:"pendingAction,omitempty"`
	RelatedFactors []RelatedFactor      `json:"relatedFactors,omitempty"`
	IsExplanation  bool                 `json:"isExplanation,omitempty"`
	ConfidenceInfo *ConfidenceBreakdown `json:"confidenceResult,omitempty"`
	SourceQuality  *SourceQuality       `json:"sourceQuality,omitempty"`
}
