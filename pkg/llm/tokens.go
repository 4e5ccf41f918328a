package llm

import (
	tiktoken "github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"
)

// estimateTokens counts tokens locally with tiktoken. Used only when the
// provider response omits usage. Falls back to a rough bytes/4 heuristic if
// no encoding is available for the model.
func estimateTokens(model, s string) int {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return len(s) / 4
		}
	}
	return len(enc.Encode(s, nil, nil))
}

// estimateMessageTokens estimates the prompt size of a conversation,
// reserving a small per-message overhead for role metadata.
func estimateMessageTokens(model string, msgs []openai.ChatCompletionMessage) int {
	const roleOverhead = 4
	total := 0
	for _, m := range msgs {
		total += estimateTokens(model, m.Content) + roleOverhead
	}
	return total
}
