package repositories

import (
	"context"

	"github.com/ghuser/parstock/services/planning/domain/models"
)

// BomRepository persists recipes, keyed by product key.
// The domain layer owns this interface; infrastructure implements it.
type BomRepository interface {
	// Boms loads the full recipe map.
	Boms(ctx context.Context) (map[string]models.Bom, error)

	// Get loads one recipe. Returns domain.ErrBOMNotFound when absent.
	Get(ctx context.Context, key string) (models.Bom, error)

	// Save upserts the recipe under its product key.
	Save(ctx context.Context, bom models.Bom) error

	// Delete removes the recipe. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
