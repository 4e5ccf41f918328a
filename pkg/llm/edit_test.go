package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupField(t *testing.T) {
	section := map[string]any{
		"headline": "Grow Fast",
		"metrics": map[string]any{
			"cac": "120",
		},
	}

	t.Run("top-level field", func(t *testing.T) {
		v, ok := lookupField(section, "headline")
		assert.True(t, ok)
		assert.Equal(t, "Grow Fast", v)
	})

	t.Run("nested field", func(t *testing.T) {
		v, ok := lookupField(section, "metrics.cac")
		assert.True(t, ok)
		assert.Equal(t, "120", v)
	})

	t.Run("missing field", func(t *testing.T) {
		_, ok := lookupField(section, "tagline")
		assert.False(t, ok)
	})

	t.Run("path through a scalar", func(t *testing.T) {
		_, ok := lookupField(section, "headline.deeper")
		assert.False(t, ok)
	})
}

func TestDiffPreview(t *testing.T) {
	section := map[string]any{"headline": "Grow Fast"}

	t.Run("existing value", func(t *testing.T) {
		diff := diffPreview(section, "headline", "Grow Faster")
		assert.Equal(t, "- Grow Fast\n+ Grow Faster", diff)
	})

	t.Run("new field shows empty before", func(t *testing.T) {
		diff := diffPreview(section, "tagline", "Ship weekly")
		assert.Equal(t, "- (empty)\n+ Ship weekly", diff)
	})
}

func TestNormalizeConfidence(t *testing.T) {
	assert.Equal(t, "high", string(normalizeConfidence("HIGH")))
	assert.Equal(t, "medium", string(normalizeConfidence(" medium ")))
	assert.Equal(t, "low", string(normalizeConfidence("low")))
	assert.Equal(t, "low", string(normalizeConfidence("very confident")))
	assert.Equal(t, "low", string(normalizeConfidence("")))
}
