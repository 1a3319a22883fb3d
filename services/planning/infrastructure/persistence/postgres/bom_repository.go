package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/parstock/pkg/database"
	planningdomain "github.com/ghuser/parstock/services/planning/domain"
	"github.com/ghuser/parstock/services/planning/domain/models"
)

const slotBoms = "planning/boms"

// BomRepository implements repositories.BomRepository against the PostgreSQL
// slot store. The whole recipe map lives in one slot; writes are
// read-modify-write within a transaction.
type BomRepository struct {
	db *database.Database
}

// NewBomRepository returns a BomRepository backed by the given pool.
func NewBomRepository(db *database.Database) *BomRepository {
	return &BomRepository{db: db}
}

// Boms loads the full recipe map. An empty store is not an error.
func (r *BomRepository) Boms(ctx context.Context) (map[string]models.Bom, error) {
	boms := map[string]models.Bom{}
	if err := database.GetSlot(ctx, r.db.DB(), slotBoms, &boms); err != nil {
		if errors.Is(err, database.ErrSlotNotFound) {
			return map[string]models.Bom{}, nil
		}
		return nil, fmt.Errorf("load boms: %w", err)
	}
	return boms, nil
}

// Get loads one recipe by product key.
func (r *BomRepository) Get(ctx context.Context, key string) (models.Bom, error) {
	boms, err := r.Boms(ctx)
	if err != nil {
		return models.Bom{}, err
	}
	bom, ok := boms[key]
	if !ok {
		return models.Bom{}, fmt.Errorf("%w: %s", planningdomain.ErrBOMNotFound, key)
	}
	return bom, nil
}

// Save upserts the recipe under its product key.
func (r *BomRepository) Save(ctx context.Context, bom models.Bom) error {
	return r.mutate(ctx, func(boms map[string]models.Bom) {
		boms[bom.Key] = bom
	})
}

// Delete removes the recipe.
func (r *BomRepository) Delete(ctx context.Context, key string) error {
	return r.mutate(ctx, func(boms map[string]models.Bom) {
		delete(boms, key)
	})
}

func (r *BomRepository) mutate(ctx context.Context, fn func(map[string]models.Bom)) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		boms := map[string]models.Bom{}
		if err := database.GetSlot(ctx, tx, slotBoms, &boms); err != nil && !errors.Is(err, database.ErrSlotNotFound) {
			return fmt.Errorf("load boms: %w", err)
		}
		fn(boms)
		return database.PutSlot(ctx, tx, slotBoms, boms)
	})
}
