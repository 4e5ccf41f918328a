// Package services contains business logic service layer implementations.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/launchblocks/bpchat/pkg/models"
)

// BlueprintService reads blueprint documents and applies confirmed edits.
// It implements the orchestrator's BlueprintReader contract with
// (nil, nil)-on-missing semantics: absence is data, not an error.
type BlueprintService struct {
	pool *pgxpool.Pool
}

// NewBlueprintService creates a new BlueprintService.
func NewBlueprintService(pool *pgxpool.Pool) *BlueprintService {
	return &BlueprintService{pool: pool}
}

// FetchFullBlueprint returns the whole blueprint, or nil if it doesn't exist.
func (s *BlueprintService) FetchFullBlueprint(httpCtx context.Context, blueprintID string) (*models.Blueprint, error) {
	if blueprintID == "" {
		return nil, NewValidationError("blueprint_id", "required")
	}

	ctx, cancel := context.WithTimeout(httpCtx, 5*time.Second)
	defer cancel()

	var (
		bp      models.Blueprint
		rawData []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, data, created_at, updated_at FROM blueprints WHERE id = $1`,
		blueprintID,
	).Scan(&bp.ID, &bp.Title, &rawData, &bp.CreatedAt, &bp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no blueprint — not an error
		}
		return nil, fmt.Errorf("failed to fetch blueprint: %w", err)
	}

	if err := json.Unmarshal(rawData, &bp.Data); err != nil {
		return nil, fmt.Errorf("failed to decode blueprint data: %w", err)
	}
	return &bp, nil
}

// FetchFullSection returns one section's full data, or nil when either the
// blueprint or the section doesn't exist.
func (s *BlueprintService) FetchFullSection(httpCtx context.Context, blueprintID, sectionKey string) (map[string]any, error) {
	if blueprintID == "" {
		return nil, NewValidationError("blueprint_id", "required")
	}
	if sectionKey == "" {
		return nil, NewValidationError("section", "required")
	}

	ctx, cancel := context.WithTimeout(httpCtx, 5*time.Second)
	defer cancel()

	var rawSection []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data -> $2 FROM blueprints WHERE id = $1`,
		blueprintID, sectionKey,
	).Scan(&rawSection)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch section: %w", err)
	}
	if rawSection == nil {
		return nil, nil // blueprint exists but has no such section
	}

	var section map[string]any
	if err := json.Unmarshal(rawSection, &section); err != nil {
		return nil, fmt.Errorf("failed to decode section data: %w", err)
	}
	return section, nil
}

// ApplyEdit applies a previously confirmed edit proposal with a single
// jsonb_set UPDATE. Only the confirm endpoint calls this — the chat turn
// orchestrator never mutates.
func (s *BlueprintService) ApplyEdit(httpCtx context.Context, blueprintID string, proposal models.EditProposal) error {
	if blueprintID == "" {
		return NewValidationError("blueprint_id", "required")
	}
	if proposal.Section == "" {
		return NewValidationError("editResult.section", "required")
	}
	if proposal.FieldPath == "" {
		return NewValidationError("editResult.fieldPath", "required")
	}
	if proposal.NewValue == "" {
		return NewValidationError("editResult.newValue", "required")
	}

	ctx, cancel := context.WithTimeout(httpCtx, 5*time.Second)
	defer cancel()

	tag, err := s.pool.Exec(ctx,
		`UPDATE blueprints
		 SET data = jsonb_set(data, $2, to_jsonb($3::text), true), updated_at = now()
		 WHERE id = $1 AND data ? $4`,
		blueprintID, editPath(proposal.Section, proposal.FieldPath), proposal.NewValue, proposal.Section,
	)
	if err != nil {
		return fmt.Errorf("failed to apply edit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// editPath builds the jsonb_set path for a proposal: the section key followed
// by each dot-separated component of the field path.
func editPath(section, fieldPath string) []string {
	return append([]string{section}, strings.Split(fieldPath, ".")...)
}
