// Package retrieval finds the blueprint chunks most relevant to a query via
// pgvector similarity search.
package retrieval

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/launchblocks/bpchat/pkg/agent"
	"github.com/launchblocks/bpchat/pkg/models"
)

// Embedder turns a query string into an embedding vector plus its cost.
// Implemented by llm.Client.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, float64, error)
}

// Engine retrieves blueprint chunks by cosine similarity. Results are fresh
// per query — nothing is cached across turns.
type Engine struct {
	pool     *pgxpool.Pool
	embedder Embedder
}

// NewEngine creates a retrieval engine over the given pool and embedder.
func NewEngine(pool *pgxpool.Pool, embedder Embedder) *Engine {
	return &Engine{pool: pool, embedder: embedder}
}

// Retrieve embeds the query and returns the top MatchCount chunks at or
// above MatchThreshold, ordered by descending similarity. Chunks below the
// threshold are excluded, not truncated-and-kept.
func (e *Engine) Retrieve(ctx context.Context, input agent.RetrieveInput) (*agent.RetrieveResult, error) {
	embedding, embeddingCost, err := e.embedder.Embed(ctx, input.Query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := e.pool.Query(ctx, `
		SELECT id, section, field_path, content,
		       1 - (embedding <=> $1::vector) AS similarity
		FROM blueprint_chunks
		WHERE blueprint_id = $2
		  AND 1 - (embedding <=> $1::vector) >= $3
		ORDER BY embedding <=> $1::vector
		LIMIT $4`,
		vectorLiteral(embedding), input.BlueprintID, input.MatchThreshold, input.MatchCount,
	)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	chunks := []models.RetrievedChunk{}
	for rows.Next() {
		var c models.RetrievedChunk
		if err := rows.Scan(&c.ID, &c.Section, &c.FieldPath, &c.Content, &c.Similarity); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}

	return &agent.RetrieveResult{Chunks: chunks, EmbeddingCost: embeddingCost}, nil
}

// vectorLiteral renders an embedding as a pgvector input literal: "[1,2,3]".
func vectorLiteral(embedding []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
