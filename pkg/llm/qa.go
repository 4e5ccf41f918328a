package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/launchblocks/bpchat/pkg/agent"
	"github.com/launchblocks/bpchat/pkg/models"
)

const qaSystemPrompt = `You answer questions about the user's business blueprint.
Ground your answer in the provided blueprint excerpts when they are relevant.
If the excerpts don't cover the question, say so and give your best general answer.
Be concise and direct. Answer in plain prose, no markdown headers.`

// QAAgent answers questions grounded in retrieved blueprint chunks.
type QAAgent struct {
	client *Client
}

// NewQAAgent creates an LLM-backed question-answering agent.
func NewQAAgent(client *Client) *QAAgent {
	return &QAAgent{client: client}
}

// Answer generates a grounded answer. With no chunks it still answers
// best-effort at low confidence — refusal is not an option here; the
// orchestrator has no empty-retrieval branch.
func (a *QAAgent) Answer(ctx context.Context, input *agent.QAInput) (*agent.QAResult, error) {
	user := input.Query
	if len(input.Chunks) > 0 {
		var b strings.Builder
		b.WriteString("Blueprint excerpts:\n")
		for _, chunk := range input.Chunks {
			fmt.Fprintf(&b, "[%s / %s]\n%s\n\n", chunk.Section, chunk.FieldPath, chunk.Content)
		}
		b.WriteString("Question: ")
		b.WriteString(input.Query)
		user = b.String()
	}

	result, err := a.client.chat(ctx, qaSystemPrompt, user, input.History, false)
	if err != nil {
		return nil, err
	}

	breakdown := assessConfidence(input.Chunks)
	return &agent.QAResult{
		Answer:           result.content,
		Confidence:       breakdown.Level,
		ConfidenceResult: breakdown,
		SourceQuality:    assessSourceQuality(input.Chunks),
		Usage:            result.usage,
		Cost:             result.cost,
	}, nil
}

// assessConfidence derives a coarse confidence level from how well the
// retrieval grounded the answer: how many chunks matched and how similar
// they were.
func assessConfidence(chunks []models.RetrievedChunk) *models.ConfidenceBreakdown {
	if len(chunks) == 0 {
		return &models.ConfidenceBreakdown{
			Level:   models.ConfidenceLow,
			Score:   0.2,
			Factors: []string{"no blueprint content matched the question"},
		}
	}

	var sum float64
	for _, c := range chunks {
		sum += c.Similarity
	}
	avg := sum / float64(len(chunks))

	// Coverage bonus: more independent matches ground the answer better.
	score := avg
	if len(chunks) >= 3 {
		score += 0.05
	}
	if score > 1 {
		score = 1
	}

	level := models.ConfidenceLow
	factors := []string{fmt.Sprintf("%d matching excerpts, average similarity %.2f", len(chunks), avg)}
	switch {
	case score >= 0.8:
		level = models.ConfidenceHigh
	case score >= 0.7:
		level = models.ConfidenceMedium
	default:
		factors = append(factors, "matches were close to the similarity threshold")
	}

	return &models.ConfidenceBreakdown{Level: level, Score: score, Factors: factors}
}

// assessSourceQuality reports how much retrieved content backed the answer.
func assessSourceQuality(chunks []models.RetrievedChunk) *models.SourceQuality {
	coverage := "none"
	switch {
	case len(chunks) >= 3:
		coverage = "full"
	case len(chunks) > 0:
		coverage = "partial"
	}
	return &models.SourceQuality{ChunksUsed: len(chunks), Coverage: coverage}
}
