// Package llm implements the orchestrator's collaborator contracts on top of
// an OpenAI-compatible provider: intent classification, the three
// specialized agents, and query embedding.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/launchblocks/bpchat/pkg/models"
)

// Config holds the provider settings shared by all LLM-backed collaborators.
type Config struct {
	APIKey         string
	BaseURL        string // optional override for OpenAI-compatible providers
	ChatModel      string
	EmbeddingModel string
}

// Client wraps the OpenAI API with model selection and cost accounting.
// Safe for concurrent use; all per-turn state lives in the callers.
type Client struct {
	api        *openai.Client
	chatModel  string
	embedModel string
	pricing    PriceTable
}

// NewClient creates a provider client. Pricing falls back to the built-in
// table for any model it doesn't know (cost 0 — accounting never fails a turn).
func NewClient(cfg Config) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	embedModel := cfg.EmbeddingModel
	if embedModel == "" {
		embedModel = string(openai.SmallEmbedding3)
	}
	return &Client{
		api:        openai.NewClientWithConfig(apiCfg),
		chatModel:  chatModel,
		embedModel: embedModel,
		pricing:    DefaultPriceTable(),
	}
}

// chatResult carries one completion plus its accounting.
type chatResult struct {
	content string
	usage   models.Usage
	cost    float64
}

// chat sends a system+history+user conversation to the chat model.
// jsonMode forces a JSON object response for calls that get parsed.
func (c *Client) chat(ctx context.Context, system, user string, history []models.ChatMessage, jsonMode bool) (*chatResult, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	req := openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: messages,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: empty choices")
	}

	content := resp.Choices[0].Message.Content
	promptTokens := resp.Usage.PromptTokens
	completionTokens := resp.Usage.CompletionTokens
	if resp.Usage.TotalTokens == 0 {
		// Some OpenAI-compatible providers omit usage; estimate locally so
		// the ledger never silently under-reports.
		promptTokens = estimateMessageTokens(c.chatModel, messages)
		completionTokens = estimateTokens(c.chatModel, content)
	}

	return &chatResult{
		content: content,
		usage:   models.Usage{TotalTokens: promptTokens + completionTokens},
		cost:    c.pricing.ChatCost(c.chatModel, promptTokens, completionTokens),
	}, nil
}

// Embed returns the embedding vector for a query plus its dollar cost.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, float64, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.embedModel),
		Input: []string{text},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, 0, fmt.Errorf("create embedding: empty response")
	}

	tokens := resp.Usage.PromptTokens
	if tokens == 0 {
		tokens = estimateTokens(c.embedModel, text)
	}
	return resp.Data[0].Embedding, c.pricing.EmbeddingCost(c.embedModel, tokens), nil
}
