package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/launchblocks/bpchat/pkg/models"
)

// User-facing response text for branches that make no agent call.
const (
	regenerateStubText = "Regenerating sections isn't supported yet, but it's on the way. " +
		"In the meantime you can ask me questions about the blueprint or request specific edits."
	unknownHelperText = "I'm not sure what you'd like me to do. You can ask me questions about " +
		"your blueprint, request an edit (\"change the headline to...\"), or ask me to explain " +
		"why a section says what it says."
	confirmPromptText = "Reply 'confirm' to apply this change or 'cancel' to discard it."
)

// Options tunes the orchestrator's retrieval and external-call behavior.
type Options struct {
	// MatchCount bounds the number of chunks retrieved per question.
	MatchCount int
	// MatchThreshold is the minimum similarity for a chunk to count as a
	// match. Tuned for recall over precision: a weakly grounded answer beats
	// an ungrounded one.
	MatchThreshold float64
	// CallTimeout bounds each external call (classify, retrieve, agent).
	CallTimeout time.Duration
}

// DefaultOptions returns the observed production tuning.
func DefaultOptions() Options {
	return Options{
		MatchCount:     5,
		MatchThreshold: 0.65,
		CallTimeout:    60 * time.Second,
	}
}

// Orchestrator routes one chat turn: classify the message, dispatch to the
// right agent with the right context slice, fold cost over the stages that
// ran, and assemble a single response envelope. It holds no per-turn state —
// every turn is independent and single-threaded.
type Orchestrator struct {
	classifier Classifier
	retriever  Retriever
	qa         QAAgent
	edit       EditAgent
	explain    ExplainAgent
	blueprints BlueprintReader
	opts       Options
	logger     *slog.Logger
}

// NewOrchestrator wires the orchestrator's collaborators.
// Panics on a nil collaborator (programming error in the caller's wiring).
func NewOrchestrator(
	classifier Classifier,
	retriever Retriever,
	qa QAAgent,
	edit EditAgent,
	explain ExplainAgent,
	blueprints BlueprintReader,
	opts Options,
	logger *slog.Logger,
) *Orchestrator {
	if classifier == nil || retriever == nil || qa == nil || edit == nil || explain == nil || blueprints == nil {
		panic("NewOrchestrator: all collaborators must be non-nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		classifier: classifier,
		retriever:  retriever,
		qa:         qa,
		edit:       edit,
		explain:    explain,
		blueprints: blueprints,
		opts:       opts,
		logger:     logger,
	}
}

// costLedger folds token/dollar spend over the stages that actually executed.
// Value semantics keep the zero-cost-for-skipped-stages invariant mechanical:
// a stage that never runs never touches the ledger.
type costLedger struct {
	tokens int
	cost   float64
}

func (l costLedger) add(usage models.Usage, cost float64) costLedger {
	return costLedger{tokens: l.tokens + usage.TotalTokens, cost: l.cost + cost}
}

// HandleTurn processes one chat turn end to end.
// The returned error is reserved for failures before any routing happened
// (empty message); everything downstream of classification degrades into
// response text so that accumulated cost is never discarded.
func (o *Orchestrator) HandleTurn(ctx context.Context, blueprintID string, req models.ChatTurnRequest) (*models.ChatTurnResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	start := time.Now()

	// Classification cost is sunk: it is charged even when the routed branch
	// later fails or is skipped.
	classification := o.classifyMessage(ctx, message)
	ledger := costLedger{}.add(classification.Usage, classification.Cost)

	resp := &models.ChatTurnResponse{
		ConversationID: conversationID,
		Intent:         models.NewIntentInfo(classification.Intent),
		Sources:        []models.SourceRef{},
	}

	// Total dispatch: every variant, including future ones, resolves to some
	// response text via the default case.
	switch intent := classification.Intent.(type) {
	case models.QuestionIntent:
		ledger = o.runQuestion(ctx, blueprintID, message, req.ChatHistory, resp, ledger)
	case models.GeneralIntent:
		ledger = o.runQuestion(ctx, blueprintID, message, req.ChatHistory, resp, ledger)
	case models.EditIntent:
		ledger = o.runEdit(ctx, blueprintID, intent, message, req.ChatHistory, resp, ledger)
	case models.ExplainIntent:
		ledger = o.runExplain(ctx, blueprintID, intent, req.ChatHistory, resp, ledger)
	case models.RegenerateIntent:
		resp.Response = regenerateStubText
	default:
		resp.Response = unknownHelperText
	}

	resp.Metadata = models.TurnMetadata{
		TokensUsed:               ledger.tokens,
		Cost:                     ledger.cost,
		ProcessingTimeMs:         time.Since(start).Milliseconds(),
		IntentClassificationCost: classification.Cost,
	}
	return resp, nil
}

// classifyMessage invokes the classifier, converting any failure into an
// unknown intent so the turn always proceeds.
func (o *Orchestrator) classifyMessage(ctx context.Context, message string) *Classification {
	callCtx, cancel := context.WithTimeout(ctx, o.opts.CallTimeout)
	defer cancel()

	classification, err := o.classifier.Classify(callCtx, message)
	if err != nil || classification == nil || classification.Intent == nil {
		o.logger.Warn("Intent classification failed, falling back to unknown", "error", err)
		return &Classification{Intent: models.UnknownIntent{}}
	}
	return classification
}

// runQuestion handles the question/general branch: retrieve grounding chunks,
// then ask the QA agent. Retrieval and QA failures each degrade into response
// text while preserving the ledger as of the last completed stage.
func (o *Orchestrator) runQuestion(ctx context.Context, blueprintID, message string, history []models.ChatMessage, resp *models.ChatTurnResponse, ledger costLedger) costLedger {
	retrieveCtx, cancelRetrieve := context.WithTimeout(ctx, o.opts.CallTimeout)
	defer cancelRetrieve()

	retrieved, err := o.retriever.Retrieve(retrieveCtx, RetrieveInput{
		BlueprintID:    blueprintID,
		Query:          message,
		MatchCount:     o.opts.MatchCount,
		MatchThreshold: o.opts.MatchThreshold,
	})
	if err != nil {
		o.logger.Error("Chunk retrieval failed", "blueprint_id", blueprintID, "error", err)
		resp.Response = "I ran into a problem searching this blueprint. Please try asking again."
		return ledger
	}
	ledger = ledger.add(models.Usage{}, retrieved.EmbeddingCost)

	qaCtx, cancelQA := context.WithTimeout(ctx, o.opts.CallTimeout)
	defer cancelQA()

	result, err := o.qa.Answer(qaCtx, &QAInput{Query: message, Chunks: retrieved.Chunks, History: history})
	if err != nil {
		o.logger.Error("QA agent failed", "blueprint_id", blueprintID, "error", err)
		resp.Response = "I found relevant content but couldn't generate an answer. Please try rephrasing your question."
		return ledger
	}
	ledger = ledger.add(result.Usage, result.Cost)

	resp.Response = result.Answer
	resp.Confidence = result.Confidence
	resp.ConfidenceInfo = result.ConfidenceResult
	resp.SourceQuality = result.SourceQuality
	resp.Sources = sourceRefs(retrieved.Chunks)
	return ledger
}

// runEdit handles the edit branch. The section is fetched first; on a miss
// the edit agent is skipped entirely — no LLM call is wasted on an input
// known to be invalid, and no edit cost is charged.
func (o *Orchestrator) runEdit(ctx context.Context, blueprintID string, intent models.EditIntent, message string, history []models.ChatMessage, resp *models.ChatTurnResponse, ledger costLedger) costLedger {
	section, err := o.blueprints.FetchFullSection(ctx, blueprintID, intent.Section)
	if err != nil {
		o.logger.Error("Section fetch failed", "blueprint_id", blueprintID, "section", intent.Section, "error", err)
	}
	if section == nil {
		resp.Response = fmt.Sprintf(
			"I couldn't find the %q section in this blueprint, so there's nothing for me to edit. "+
				"Double-check the section name and try again.", intent.Section)
		return ledger
	}

	editCtx, cancel := context.WithTimeout(ctx, o.opts.CallTimeout)
	defer cancel()

	result, err := o.edit.ProposeEdit(editCtx, &EditInput{Section: section, Intent: intent, Message: message, History: history})
	if err != nil {
		o.logger.Error("Edit agent failed", "blueprint_id", blueprintID, "section", intent.Section, "error", err)
		resp.Response = "I understood that you want to make an edit, but I couldn't put together a " +
			"concrete proposal. Could you describe the change differently?"
		return ledger
	}
	ledger = ledger.add(result.Usage, result.Cost)

	proposal := result.Proposal
	resp.PendingAction = &models.PendingAction{Type: "edit", EditResult: &proposal}
	resp.Response = fmt.Sprintf("%s\n\n%s\n\n%s", proposal.Explanation, proposal.DiffPreview, confirmPromptText)
	return ledger
}

// runExplain handles the explain branch against the whole blueprint, since
// explanations may cite cross-section relationships.
func (o *Orchestrator) runExplain(ctx context.Context, blueprintID string, intent models.ExplainIntent, history []models.ChatMessage, resp *models.ChatTurnResponse, ledger costLedger) costLedger {
	blueprint, err := o.blueprints.FetchFullBlueprint(ctx, blueprintID)
	if err != nil {
		o.logger.Error("Blueprint fetch failed", "blueprint_id", blueprintID, "error", err)
	}
	if blueprint == nil {
		resp.Response = "I couldn't find this blueprint, so I have nothing to explain. " +
			"It may have been deleted."
		return ledger
	}

	explainCtx, cancel := context.WithTimeout(ctx, o.opts.CallTimeout)
	defer cancel()

	result, err := o.explain.Explain(explainCtx, &ExplainInput{Blueprint: blueprint, Intent: intent, History: history})
	if err != nil {
		o.logger.Error("Explain agent failed", "blueprint_id", blueprintID, "section", intent.Section, "error", err)
		resp.Response = "I couldn't put together an explanation for that. Please try asking about " +
			"a specific section or field."
		return ledger
	}
	ledger = ledger.add(result.Usage, result.Cost)

	resp.Response = result.Explanation
	resp.Confidence = result.Confidence
	resp.IsExplanation = true
	resp.RelatedFactors = result.RelatedFactors
	if resp.RelatedFactors == nil {
		resp.RelatedFactors = []models.RelatedFactor{}
	}
	return ledger
}

func sourceRefs(chunks []models.RetrievedChunk) []models.SourceRef {
	refs := make([]models.SourceRef, len(chunks))
	for i, c := range chunks {
		refs[i] = models.SourceRef{
			ChunkID:    c.ID,
			Section:    c.Section,
			FieldPath:  c.FieldPath,
			Similarity: c.Similarity,
		}
	}
	return refs
}
