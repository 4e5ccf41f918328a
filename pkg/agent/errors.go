package agent

import "errors"

// ErrEmptyMessage is returned when a turn is requested for an empty or
// whitespace-only message. It short-circuits before any paid call is made.
var ErrEmptyMessage = errors.New("message is required")
