package repositories

import (
	"context"

	"github.com/ghuser/parstock/services/catalog/domain/models"
)

// CatalogRepository persists the mutable catalog layers. The seed layer is
// compiled in; only custom items, overrides, the hidden set, and counting
// unit choices are stored. Each layer is one document, last write wins.
// The domain layer owns this interface; infrastructure implements it and
// publishes catalog.changed alongside every write.
type CatalogRepository interface {
	CustomItems(ctx context.Context) ([]models.Item, error)

	// AddCustomItem appends a user-added item and publishes item_added.
	AddCustomItem(ctx context.Context, item models.Item) error

	Overrides(ctx context.Context) (map[string]models.Override, error)

	// SaveOverrides replaces the override layer and publishes the given
	// change kind for the touched item ids.
	SaveOverrides(ctx context.Context, overrides map[string]models.Override, change string, itemIDs []string) error

	HiddenIDs(ctx context.Context) (map[string]bool, error)

	// Hide adds the item id to the hidden set and publishes item_hidden.
	Hide(ctx context.Context, itemID string) error

	// UnitChoices maps "<locationKey>|<itemID>" to the operator's preferred
	// counting unit. A display preference only; no event is published.
	UnitChoices(ctx context.Context) (map[string]string, error)
	SaveUnitChoices(ctx context.Context, choices map[string]string) error
}
