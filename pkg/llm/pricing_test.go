package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatCost(t *testing.T) {
	table := DefaultPriceTable()

	t.Run("known model", func(t *testing.T) {
		// gpt-4o-mini: $0.15/M input, $0.60/M output.
		cost := table.ChatCost("gpt-4o-mini", 1_000_000, 500_000)
		assert.InDelta(t, 0.15+0.30, cost, 1e-12)
	})

	t.Run("zero tokens cost nothing", func(t *testing.T) {
		assert.Zero(t, table.ChatCost("gpt-4o-mini", 0, 0))
	})

	t.Run("unknown model costs zero", func(t *testing.T) {
		assert.Zero(t, table.ChatCost("some-future-model", 100_000, 100_000))
	})
}

func TestEmbeddingCost(t *testing.T) {
	table := DefaultPriceTable()

	cost := table.EmbeddingCost("text-embedding-3-small", 1_000_000)
	assert.InDelta(t, 0.02, cost, 1e-12)

	assert.Zero(t, table.EmbeddingCost("unknown-embedder", 1_000_000))
}
