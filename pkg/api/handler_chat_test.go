package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchblocks/bpchat/pkg/models"
)

// ── Fakes ────────────────────────────────────────────────────

type fakeTurnHandler struct {
	resp       *models.ChatTurnResponse
	err        error
	gotID      string
	gotRequest models.ChatTurnRequest
	calls      int
}

func (f *fakeTurnHandler) HandleTurn(_ context.Context, blueprintID string, req models.ChatTurnRequest) (*models.ChatTurnResponse, error) {
	f.calls++
	f.gotID = blueprintID
	f.gotRequest = req
	return f.resp, f.err
}

type fakeEditApplier struct {
	err         error
	gotID       string
	gotProposal models.EditProposal
	calls       int
}

func (f *fakeEditApplier) ApplyEdit(_ context.Context, blueprintID string, proposal models.EditProposal) error {
	f.calls++
	f.gotID = blueprintID
	f.gotProposal = proposal
	return f.err
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

// ── Tests ────────────────────────────────────────────────────

func TestChatTurnHandler_Success(t *testing.T) {
	turns := &fakeTurnHandler{resp: &models.ChatTurnResponse{
		ConversationID: "conv-1",
		Response:       "Your target audience is small business owners.",
		Intent:         models.IntentInfo{Type: models.IntentQuestion},
		Sources: []models.SourceRef{
			{ChunkID: "c1", Section: "targetAudience", FieldPath: "persona", Similarity: 0.9},
		},
		Confidence: models.ConfidenceHigh,
		Metadata:   models.TurnMetadata{TokensUsed: 250, Cost: 0.0035, IntentClassificationCost: 0.001},
	}}
	s := NewServer(nil, turns, &fakeEditApplier{})

	rec := postJSON(t, s, "/api/v1/blueprints/bp-1/chat",
		`{"message": "What's our target audience?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bp-1", turns.gotID)
	assert.Equal(t, "What's our target audience?", turns.gotRequest.Message)

	var resp models.ChatTurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Equal(t, models.IntentQuestion, resp.Intent.Type)
	require.Len(t, resp.Sources, 1)
	assert.InDelta(t, 0.0035, resp.Metadata.Cost, 1e-12)
}

func TestChatTurnHandler_EmptyMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty string", body: `{"message": ""}`},
		{name: "whitespace only", body: `{"message": "   \n"}`},
		{name: "missing field", body: `{}`},
		{name: "malformed json", body: `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turns := &fakeTurnHandler{}
			s := NewServer(nil, turns, &fakeEditApplier{})

			rec := postJSON(t, s, "/api/v1/blueprints/bp-1/chat", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Message is required", body["error"])

			// Rejected before the orchestrator — no paid call made.
			assert.Zero(t, turns.calls)
		})
	}
}

func TestChatTurnHandler_OrchestratorFailure(t *testing.T) {
	turns := &fakeTurnHandler{err: errors.New("provider exploded")}
	s := NewServer(nil, turns, &fakeEditApplier{})

	rec := postJSON(t, s, "/api/v1/blueprints/bp-1/chat", `{"message": "hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to process chat message", body["error"])
	assert.Equal(t, "provider exploded", body["details"])
}

func TestChatTurnHandler_PendingActionPassthrough(t *testing.T) {
	turns := &fakeTurnHandler{resp: &models.ChatTurnResponse{
		ConversationID: "conv-2",
		Response:       "Here's the change.\n\n- old\n+ new\n\nReply 'confirm' to apply this change or 'cancel' to discard it.",
		Intent:         models.IntentInfo{Type: models.IntentEdit, Section: "competitorAnalysis"},
		Sources:        []models.SourceRef{},
		PendingAction: &models.PendingAction{
			Type: "edit",
			EditResult: &models.EditProposal{
				Section:     "competitorAnalysis",
				FieldPath:   "headline",
				NewValue:    "Grow Faster",
				Explanation: "Updated headline.",
				DiffPreview: "- old\n+ new",
			},
		},
		Metadata: models.TurnMetadata{Cost: 0.0025},
	}}
	s := NewServer(nil, turns, &fakeEditApplier{})

	rec := postJSON(t, s, "/api/v1/blueprints/bp-1/chat",
		`{"message": "change the headline to 'Grow Faster'"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.ChatTurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.PendingAction)
	assert.Equal(t, "edit", resp.PendingAction.Type)
	assert.Contains(t, resp.Response, "confirm")

	// Non-retrieval branch: sources serialize as [], not null.
	assert.Contains(t, rec.Body.String(), `"sources":[]`)
}
