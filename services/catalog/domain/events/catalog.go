package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicCatalogChanged is the Watermill topic published after any catalog
// layer write. The worker invalidates and re-warms the resolved-catalog
// cache on it.
const TopicCatalogChanged = "catalog.changed"

// Catalog change kinds.
const (
	ChangeItemAdded      = "item_added"
	ChangeOverridesSaved = "overrides_saved"
	ChangeItemHidden     = "item_hidden"
	ChangeParsSaved      = "pars_saved"
)

// CatalogChangedEvent is published within the same transaction as the slot
// write that caused it.
type CatalogChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	Change     string    `json:"change"`
	ItemIDs    []string  `json:"item_ids,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCatalogChanged builds an event for the given change kind and items.
func NewCatalogChanged(change string, itemIDs ...string) CatalogChangedEvent {
	return CatalogChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Change:     change,
		ItemIDs:    itemIDs,
		OccurredAt: time.Now().UTC(),
	}
}
