package llm

// ModelPrice is the USD cost per million tokens for one model.
type ModelPrice struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// PriceTable maps model name to pricing. Models missing from the table cost
// zero — a turn must never fail over accounting.
type PriceTable map[string]ModelPrice

// DefaultPriceTable returns published per-million-token rates for the models
// this service is configured with by default.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		"gpt-4o":                 {InputPerMTok: 2.50, OutputPerMTok: 10.00},
		"gpt-4o-mini":            {InputPerMTok: 0.15, OutputPerMTok: 0.60},
		"gpt-4.1":                {InputPerMTok: 2.00, OutputPerMTok: 8.00},
		"gpt-4.1-mini":           {InputPerMTok: 0.40, OutputPerMTok: 1.60},
		"text-embedding-3-small": {InputPerMTok: 0.02},
		"text-embedding-3-large": {InputPerMTok: 0.13},
	}
}

// ChatCost computes the dollar cost of one completion call.
func (t PriceTable) ChatCost(model string, promptTokens, completionTokens int) float64 {
	price, ok := t[model]
	if !ok {
		return 0
	}
	return float64(promptTokens)/1e6*price.InputPerMTok +
		float64(completionTokens)/1e6*price.OutputPerMTok
}

// EmbeddingCost computes the dollar cost of one embedding call.
func (t PriceTable) EmbeddingCost(model string, tokens int) float64 {
	price, ok := t[model]
	if !ok {
		return 0
	}
	return float64(tokens) / 1e6 * price.InputPerMTok
}
