package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorLiteral(t *testing.T) {
	tests := []struct {
		name      string
		embedding []float32
		expected  string
	}{
		{
			name:      "empty embedding",
			embedding: []float32{},
			expected:  "[]",
		},
		{
			name:      "single component",
			embedding: []float32{0.5},
			expected:  "[0.5]",
		},
		{
			name:      "multiple components",
			embedding: []float32{1, -0.25, 2},
			expected:  "[1,-0.25,2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, vectorLiteral(tt.embedding))
		})
	}
}
