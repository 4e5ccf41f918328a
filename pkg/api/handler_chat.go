package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v5"

	"github.com/launchblocks/bpchat/pkg/agent"
	"github.com/launchblocks/bpchat/pkg/models"
)

// chatTurnHandler handles POST /api/v1/blueprints/:id/chat.
// Validates the request, runs one orchestrated chat turn, and returns the
// response envelope. Error bodies on this endpoint use the chat contract's
// {"error": ...} shape rather than echo's default.
func (s *Server) chatTurnHandler(c *echo.Context) error {
	// 1. Validate blueprint ID
	blueprintID := c.Param("id")
	if blueprintID == "" {
		return c.JSON(http.StatusBadRequest, &ErrorResponse{Error: "Blueprint id is required"})
	}

	// 2. Bind and validate request body. Empty/whitespace messages are
	// rejected here, before any paid call is made.
	var req models.ChatTurnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, &ErrorResponse{Error: "Message is required"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, &ErrorResponse{Error: "Message is required"})
	}

	// 3. Run the turn
	resp, err := s.turns.HandleTurn(c.Request().Context(), blueprintID, req)
	if err != nil {
		if errors.Is(err, agent.ErrEmptyMessage) {
			return c.JSON(http.StatusBadRequest, &ErrorResponse{Error: "Message is required"})
		}
		slog.Error("Failed to process chat message",
			"blueprint_id", blueprintID,
			"message", req.Message,
			"error", err)
		return c.JSON(http.StatusInternalServerError, &ErrorResponse{
			Error:   "Failed to process chat message",
			Details: err.Error(),
		})
	}

	// 4. Return the envelope
	return c.JSON(http.StatusOK, resp)
}
