package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/parstock/pkg/database"
	"github.com/ghuser/parstock/pkg/events"
	domainevents "github.com/ghuser/parstock/services/catalog/domain/events"
	"github.com/ghuser/parstock/services/catalog/domain/models"
)

// Slot names for the catalog layers.
const (
	slotCustomItems = "catalog/custom-items"
	slotOverrides   = "catalog/overrides"
	slotHidden      = "catalog/hidden"
	slotUnitChoices = "catalog/unit-choices"
)

// CatalogRepository implements repositories.CatalogRepository against the
// PostgreSQL slot store. Writes that change the resolved catalog publish
// catalog.changed within the same transaction (outbox pattern).
type CatalogRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewCatalogRepository returns a CatalogRepository backed by the given
// connection pool and event bus.
func NewCatalogRepository(db *database.Database, bus *events.EventBus) *CatalogRepository {
	return &CatalogRepository{db: db, bus: bus}
}

// CustomItems loads the user-added item layer. An empty layer is not an error.
func (r *CatalogRepository) CustomItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := database.GetSlot(ctx, r.db.DB(), slotCustomItems, &items); err != nil {
		if errors.Is(err, database.ErrSlotNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load custom items: %w", err)
	}
	return items, nil
}

// AddCustomItem appends the item to the custom layer and publishes
// item_added, atomically.
func (r *CatalogRepository) AddCustomItem(ctx context.Context, item models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var items []models.Item
		if err := database.GetSlot(ctx, tx, slotCustomItems, &items); err != nil && !errors.Is(err, database.ErrSlotNotFound) {
			return fmt.Errorf("load custom items: %w", err)
		}
		items = append(items, item)
		if err := database.PutSlot(ctx, tx, slotCustomItems, items); err != nil {
			return err
		}
		return r.publishChanged(tx, domainevents.NewCatalogChanged(domainevents.ChangeItemAdded, item.ID))
	})
}

// Overrides loads the override layer.
func (r *CatalogRepository) Overrides(ctx context.Context) (map[string]models.Override, error) {
	overrides := map[string]models.Override{}
	if err := database.GetSlot(ctx, r.db.DB(), slotOverrides, &overrides); err != nil {
		if errors.Is(err, database.ErrSlotNotFound) {
			return map[string]models.Override{}, nil
		}
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	return overrides, nil
}

// SaveOverrides replaces the override layer and publishes the change,
// atomically.
func (r *CatalogRepository) SaveOverrides(ctx context.Context, overrides map[string]models.Override, change string, itemIDs []string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := database.PutSlot(ctx, tx, slotOverrides, overrides); err != nil {
			return err
		}
		return r.publishChanged(tx, domainevents.NewCatalogChanged(change, itemIDs...))
	})
}

// HiddenIDs loads the hidden-item set.
func (r *CatalogRepository) HiddenIDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := database.GetSlot(ctx, r.db.DB(), slotHidden, &ids); err != nil && !errors.Is(err, database.ErrSlotNotFound) {
		return nil, fmt.Errorf("load hidden ids: %w", err)
	}
	hidden := make(map[string]bool, len(ids))
	for _, id := range ids {
		hidden[id] = true
	}
	return hidden, nil
}

// Hide adds the item to the hidden set and publishes item_hidden, atomically.
// Hiding an already-hidden item is a no-op.
func (r *CatalogRepository) Hide(ctx context.Context, itemID string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var ids []string
		if err := database.GetSlot(ctx, tx, slotHidden, &ids); err != nil && !errors.Is(err, database.ErrSlotNotFound) {
			return fmt.Errorf("load hidden ids: %w", err)
		}
		for _, id := range ids {
			if id == itemID {
				return nil
			}
		}
		ids = append(ids, itemID)
		sort.Strings(ids)
		if err := database.PutSlot(ctx, tx, slotHidden, ids); err != nil {
			return err
		}
		return r.publishChanged(tx, domainevents.NewCatalogChanged(domainevents.ChangeItemHidden, itemID))
	})
}

// UnitChoices loads the preferred counting unit map.
func (r *CatalogRepository) UnitChoices(ctx context.Context) (map[string]string, error) {
	choices := map[string]string{}
	if err := database.GetSlot(ctx, r.db.DB(), slotUnitChoices, &choices); err != nil {
		if errors.Is(err, database.ErrSlotNotFound) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("load unit choices: %w", err)
	}
	return choices, nil
}

// SaveUnitChoices replaces the preferred counting unit map.
func (r *CatalogRepository) SaveUnitChoices(ctx context.Context, choices map[string]string) error {
	return database.PutSlot(ctx, r.db.DB(), slotUnitChoices, choices)
}

func (r *CatalogRepository) publishChanged(tx *sql.Tx, event domainevents.CatalogChangedEvent) error {
	if r.bus == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicCatalogChanged, msg)
}
