// Package api exposes the HTTP surface of the blueprint chat service.
package api

import (
	"context"
	"net/http"

	echo "github.com/labstack/echo/v5"

	"github.com/launchblocks/bpchat/pkg/database"
	"github.com/launchblocks/bpchat/pkg/models"
)

// TurnHandler processes one chat turn. Implemented by agent.Orchestrator;
// an interface here so handlers are testable with fakes.
type TurnHandler interface {
	HandleTurn(ctx context.Context, blueprintID string, req models.ChatTurnRequest) (*models.ChatTurnResponse, error)
}

// EditApplier applies or validates a confirmed edit proposal.
// Implemented by services.BlueprintService.
type EditApplier interface {
	ApplyEdit(ctx context.Context, blueprintID string, proposal models.EditProposal) error
}

// Server is the HTTP API server.
type Server struct {
	dbClient *database.Client
	turns    TurnHandler
	edits    EditApplier

	echo *echo.Echo
	http *http.Server
}

// NewServer creates the API server and registers all routes.
func NewServer(dbClient *database.Client, turns TurnHandler, edits EditApplier) *Server {
	s := &Server{
		dbClient: dbClient,
		turns:    turns,
		edits:    edits,
	}

	e := echo.New()
	e.Use(securityHeaders())
	e.Use(requestLogger())

	e.GET("/health", s.healthHandler)

	v1 := e.Group("/api/v1")
	v1.POST("/blueprints/:id/chat", s.chatTurnHandler)
	v1.POST("/blueprints/:id/chat/confirm", s.confirmEditHandler)

	s.echo = e
	return s
}

// Start begins serving on addr. Blocks until Shutdown or failure.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.echo}
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
