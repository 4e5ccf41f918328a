package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchblocks/bpchat/pkg/models"
)

// Validation rejects bad input before any query runs, so a nil pool is safe
// for these tests.

func TestFetchFullBlueprint_Validation(t *testing.T) {
	s := NewBlueprintService(nil)

	_, err := s.FetchFullBlueprint(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestFetchFullSection_Validation(t *testing.T) {
	s := NewBlueprintService(nil)

	t.Run("missing blueprint id", func(t *testing.T) {
		_, err := s.FetchFullSection(context.Background(), "", "pricing")
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("missing section key", func(t *testing.T) {
		_, err := s.FetchFullSection(context.Background(), "bp-1", "")
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})
}

func TestApplyEdit_Validation(t *testing.T) {
	s := NewBlueprintService(nil)
	valid := models.EditProposal{
		Section:     "competitorAnalysis",
		FieldPath:   "headline",
		NewValue:    "Grow Faster",
		Explanation: "Updated headline.",
	}

	tests := []struct {
		name        string
		blueprintID string
		mutate      func(*models.EditProposal)
	}{
		{name: "missing blueprint id", blueprintID: "", mutate: func(*models.EditProposal) {}},
		{name: "missing section", blueprintID: "bp-1", mutate: func(p *models.EditProposal) { p.Section = "" }},
		{name: "missing field path", blueprintID: "bp-1", mutate: func(p *models.EditProposal) { p.FieldPath = "" }},
		{name: "missing new value", blueprintID: "bp-1", mutate: func(p *models.EditProposal) { p.NewValue = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposal := valid
			tt.mutate(&proposal)

			err := s.ApplyEdit(context.Background(), tt.blueprintID, proposal)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestEditPath(t *testing.T) {
	tests := []struct {
		name      string
		section   string
		fieldPath string
		want      []string
	}{
		{name: "top-level field", section: "competitorAnalysis", fieldPath: "headline",
			want: []string{"competitorAnalysis", "headline"}},
		{name: "nested field", section: "marketAnalysis", fieldPath: "metrics.cac",
			want: []string{"marketAnalysis", "metrics", "cac"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, editPath(tt.section, tt.fieldPath))
		})
	}
}
