// Package agent defines the collaborator contracts for a chat turn and the
// orchestrator that routes between them.
// Collaborators are injected interfaces so the orchestrator is testable
// without a real data store or LLM provider.
package agent

import (
	"context"

	"github.com/launchblocks/bpchat/pkg/models"
)

// Classification is the result of intent classification for one message.
// Cost is sunk the moment classification runs: it is reported even when the
// routed branch later fails.
type Classification struct {
	Intent models.Intent
	Usage  models.Usage
	Cost   float64
}

// Classifier determines the purpose of a user message.
// Implementations must always return a value — classification failure is
// modeled as an unknown intent, not an error that aborts the turn.
type Classifier interface {
	Classify(ctx context.Context, message string) (*Classification, error)
}

// RetrieveInput parameterizes a chunk similarity search.
type RetrieveInput struct {
	BlueprintID    string
	Query          string
	MatchCount     int
	MatchThreshold float64
}

// RetrieveResult carries the matched chunks and the cost of embedding the query.
type RetrieveResult struct {
	Chunks        []models.RetrievedChunk
	EmbeddingCost float64
}

// Retriever finds the blueprint content most relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, input RetrieveInput) (*RetrieveResult, error)
}

// QAInput is the context slice for the question-answering agent.
type QAInput struct {
	Query   string
	Chunks  []models.RetrievedChunk
	History []models.ChatMessage
}

// QAResult is the question-answering agent's payload plus usage accounting.
type QAResult struct {
	Answer           string
	Confidence       models.Confidence
	ConfidenceResult *models.ConfidenceBreakdown
	SourceQuality    *models.SourceQuality
	Usage            models.Usage
	Cost             float64
}

// QAAgent answers questions grounded in retrieved chunks. When Chunks is
// empty it must still return a best-effort answer with low confidence rather
// than refusing — the orchestrator has no empty-retrieval branch.
type QAAgent interface {
	Answer(ctx context.Context, input *QAInput) (*QAResult, error)
}

// EditInput is the context slice for the edit-proposal agent. Section holds
// the full data of the target section, already fetched by the orchestrator.
// Message is the user's in-flight request; History excludes it.
type EditInput struct {
	Section map[string]any
	Intent  models.EditIntent
	Message string
	History []models.ChatMessage
}

// EditResult is a proposed edit plus usage accounting. The agent never
// mutates the blueprint; it only proposes.
type EditResult struct {
	Proposal models.EditProposal
	Usage    models.Usage
	Cost     float64
}

// EditAgent turns an edit intent into a concrete field-level proposal.
type EditAgent interface {
	ProposeEdit(ctx context.Context, input *EditInput) (*EditResult, error)
}

// ExplainInput is the context slice for the explanation agent. It receives
// the entire blueprint because explanations may cite cross-section factors.
type ExplainInput struct {
	Blueprint *models.Blueprint
	Intent    models.ExplainIntent
	History   []models.ChatMessage
}

// ExplainResult is the explanation agent's payload plus usage accounting.
// RelatedFactors is an empty slice, never nil, when nothing cross-cuts.
type ExplainResult struct {
	Explanation    string
	Confidence     models.Confidence
	RelatedFactors []models.RelatedFactor
	Usage          models.Usage
	Cost           float64
}

// ExplainAgent explains blueprint content in terms of the whole document.
type ExplainAgent interface {
	Explain(ctx context.Context, input *ExplainInput) (*ExplainResult, error)
}

// BlueprintReader fetches blueprint context slices for the orchestrator.
// Both methods return (nil, nil) when the target doesn't exist — absence is
// data, not an error.
type BlueprintReader interface {
	FetchFullSection(ctx context.Context, blueprintID, sectionKey string) (map[string]any, error)
	FetchFullBlueprint(ctx context.Context, blueprintID string) (*models.Blueprint, error)
}
