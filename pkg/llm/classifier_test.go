package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/launchblocks/bpchat/pkg/models"
)

func TestParseIntent(t *testing.T) {
	const message = "change the headline to 'Grow Faster'"

	tests := []struct {
		name string
		raw  string
		want models.Intent
	}{
		{
			name: "question",
			raw:  `{"type": "question"}`,
			want: models.QuestionIntent{Query: message},
		},
		{
			name: "general",
			raw:  `{"type": "general"}`,
			want: models.GeneralIntent{Query: message},
		},
		{
			name: "edit with section and field",
			raw:  `{"type": "edit", "section": "competitorAnalysis", "field": "headline"}`,
			want: models.EditIntent{Section: "competitorAnalysis", Field: "headline"},
		},
		{
			name: "edit without section degrades to unknown",
			raw:  `{"type": "edit"}`,
			want: models.UnknownIntent{},
		},
		{
			name: "explain with whatToExplain",
			raw:  `{"type": "explain", "section": "pricing", "whatToExplain": "why subscription"}`,
			want: models.ExplainIntent{Section: "pricing", WhatToExplain: "why subscription"},
		},
		{
			name: "explain with field",
			raw:  `{"type": "explain", "section": "pricing", "field": "model"}`,
			want: models.ExplainIntent{Section: "pricing", Field: "model"},
		},
		{
			name: "regenerate",
			raw:  `{"type": "regenerate", "section": "pricing", "instructions": "be more aggressive"}`,
			want: models.RegenerateIntent{Section: "pricing", Instructions: "be more aggressive"},
		},
		{
			name: "explicit unknown",
			raw:  `{"type": "unknown"}`,
			want: models.UnknownIntent{},
		},
		{
			name: "unrecognized type",
			raw:  `{"type": "summarize"}`,
			want: models.UnknownIntent{},
		},
		{
			name: "malformed json",
			raw:  `not json at all`,
			want: models.UnknownIntent{},
		},
		{
			name: "surrounding whitespace tolerated",
			raw:  "\n  {\"type\": \"question\"}  \n",
			want: models.QuestionIntent{Query: message},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseIntent(tt.raw, message))
		})
	}
}
