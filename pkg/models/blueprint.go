package models

import "time"

// Blueprint is a generated business document. Data maps section key to the
// section's field/value object.
type Blueprint struct {
	ID        string                    `json:"id"`
	Title     string                    `json:"title"`
	Data      map[string]map[string]any `json:"data"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

// RetrievedChunk is a fragment of blueprint content with its similarity to
// the current query. Produced fresh per turn, never cached across turns.
// Similarity is in [0,1]; result sets are ordered by descending similarity
// and contain only chunks at or above the match threshold.
type RetrievedChunk struct {
	ID         string  `json:"id"`
	Section    string  `json:"section"`
	FieldPath  string  `json:"fieldPath"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}
