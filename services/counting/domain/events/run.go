package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicRunCompleted is the Watermill topic published when an operator marks
// a counting run complete.
const TopicRunCompleted = "run.completed"

// RunCompletedEvent is published after the completion stamp is persisted.
// Completion does not lock the run, so the event may recur for one run id.
type RunCompletedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	RunID       string    `json:"run_id"`
	LocationKey string    `json:"location_key"`
	By          string    `json:"by,omitempty"`
	LineCount   int       `json:"line_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}
