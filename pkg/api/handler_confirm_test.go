package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchblocks/bpchat/pkg/services"
)

const confirmBody = `{
	"conversationId": "conv-1",
	"decision": "confirm",
	"editResult": {
		"section": "competitorAnalysis",
		"fieldPath": "headline",
		"newValue": "Grow Faster",
		"explanation": "Updated headline.",
		"diffPreview": "- old\n+ new"
	}
}`

func TestConfirmEditHandler_Confirm(t *testing.T) {
	edits := &fakeEditApplier{}
	s := NewServer(nil, &fakeTurnHandler{}, edits)

	rec := postJSON(t, s, "/api/v1/blueprints/bp-1/chat/confirm", confirmBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, edits.calls)
	assert.Equal(t, "bp-1", edits.gotID)
	assert.Equal(t, "headline", edits.gotProposal.FieldPath)
	assert.Equal(t, "Grow Faster", edits.gotProposal.NewValue)

	var resp ConfirmEditResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "applied", resp.Status)
	assert.Equal(t, "conv-1", resp.ConversationID)
}

func TestConfirmEditHandler_Cancel(t *testing.T) {
	edits := &fakeEditApplier{}
	s := NewServer(nil, &fakeTurnHandler{}, edits)

	rec := postJSON(t, s, "/api/v1/blueprints/bp-1/chat/confirm",
		`{"conversationId": "conv-1", "decision": "cancel"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, edits.calls, "cancel must not touch the blueprint")

	var resp ConfirmEditResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "discarded", resp.Status)
}

func TestConfirmEditHandler_BadDecision(t *testing.T) {
	s := NewServer(nil, &fakeTurnHandler{}, &fakeEditApplier{})

	rec := postJSON(t, s, "/api/v1/blueprints/bp-1/chat/confirm",
		`{"decision": "maybe"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmEditHandler_ConfirmWithoutProposal(t *testing.T) {
	edits := &fakeEditApplier{}
	s := NewServer(nil, &fakeTurnHandler{}, edits)

	rec := postJSON(t, s, "/api/v1/blueprints/bp-1/chat/confirm",
		`{"decision": "confirm"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, edits.calls)
}

func TestConfirmEditHandler_BlueprintMissing(t *testing.T) {
	edits := &fakeEditApplier{err: services.ErrNotFound}
	s := NewServer(nil, &fakeTurnHandler{}, edits)

	rec := postJSON(t, s, "/api/v1/blueprints/bp-gone/chat/confirm", confirmBody)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirmEditHandler_ValidationError(t *testing.T) {
	edits := &fakeEditApplier{err: services.NewValidationError("editResult.newValue", "required")}
	s := NewServer(nil, &fakeTurnHandler{}, edits)

	rec := postJSON(t, s, "/api/v1/blueprints/bp-1/chat/confirm", confirmBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
