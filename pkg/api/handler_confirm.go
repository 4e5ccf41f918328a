package api

import (
	"net/http"

	echo "github.com/labstack/echo/v5"

	"github.com/launchblocks/bpchat/pkg/models"
)

// ConfirmEditRequest is the HTTP request body for resolving a pending edit.
type ConfirmEditRequest struct {
	ConversationID string               `json:"conversationId"`
	Decision       string               `json:"decision"` // "confirm" or "cancel"
	EditResult     *models.EditProposal `json:"editResult"`
}

// ConfirmEditResponse reports the outcome of a confirm/cancel decision.
type ConfirmEditResponse struct {
	ConversationID string `json:"conversationId,omitempty"`
	Status         string `json:"status"` // "applied" or "discarded"
	Response       string `json:"response"`
}

// confirmEditHandler handles POST /api/v1/blueprints/:id/chat/confirm.
// This is the side collaborator the chat turn only references: it receives a
// previously proposed edit plus the user's decision and either applies the
// mutation or discards the proposal. The chat orchestrator itself never
// mutates the blueprint.
func (s *Server) confirmEditHandler(c *echo.Context) error {
	blueprintID := c.Param("id")
	if blueprintID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "blueprint id is required")
	}

	var req ConfirmEditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	switch req.Decision {
	case "cancel":
		return c.JSON(http.StatusOK, &ConfirmEditResponse{
			ConversationID: req.ConversationID,
			Status:         "discarded",
			Response:       "Okay, I've discarded that change. The blueprint is untouched.",
		})
	case "confirm":
		if req.EditResult == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "editResult is required to confirm")
		}
		if err := s.edits.ApplyEdit(c.Request().Context(), blueprintID, *req.EditResult); err != nil {
			return mapServiceError(err)
		}
		return c.JSON(http.StatusOK, &ConfirmEditResponse{
			ConversationID: req.ConversationID,
			Status:         "applied",
			Response:       "Done — I've applied the change to your blueprint.",
		})
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "decision must be 'confirm' or 'cancel'")
	}
}
