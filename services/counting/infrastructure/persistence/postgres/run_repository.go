package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/parstock/pkg/database"
	"github.com/ghuser/parstock/pkg/events"
	countingdomain "github.com/ghuser/parstock/services/counting/domain"
	domainevents "github.com/ghuser/parstock/services/counting/domain/events"
	"github.com/ghuser/parstock/services/counting/domain/models"
)

const slotRuns = "counting/runs"

// RunRepository implements repositories.RunRepository against the
// PostgreSQL slot store. The whole run map lives in one slot; run writes
// are read-modify-write within a transaction.
type RunRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewRunRepository returns a RunRepository backed by the given connection
// pool and event bus.
func NewRunRepository(db *database.Database, bus *events.EventBus) *RunRepository {
	return &RunRepository{db: db, bus: bus}
}

// Get loads one run by id.
func (r *RunRepository) Get(ctx context.Context, runID string) (models.Run, error) {
	runs, err := r.Runs(ctx)
	if err != nil {
		return models.Run{}, err
	}
	run, ok := runs[runID]
	if !ok {
		return models.Run{}, fmt.Errorf("%w: %s", countingdomain.ErrRunNotFound, runID)
	}
	return run, nil
}

// Runs loads the full run map. An empty store is not an error.
func (r *RunRepository) Runs(ctx context.Context) (map[string]models.Run, error) {
	runs := map[string]models.Run{}
	if err := database.GetSlot(ctx, r.db.DB(), slotRuns, &runs); err != nil {
		if errors.Is(err, database.ErrSlotNotFound) {
			return map[string]models.Run{}, nil
		}
		return nil, fmt.Errorf("load runs: %w", err)
	}
	return runs, nil
}

// Save upserts the run into the run map.
func (r *RunRepository) Save(ctx context.Context, run models.Run) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return r.upsert(ctx, tx, run)
	})
}

// SaveCompleted upserts the run and publishes run.completed atomically.
func (r *RunRepository) SaveCompleted(ctx context.Context, run models.Run) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := r.upsert(ctx, tx, run); err != nil {
			return err
		}
		if r.bus == nil {
			return nil
		}
		event := domainevents.RunCompletedEvent{
			EventID:     uuid.New(),
			Version:     1,
			RunID:       run.RunID,
			LocationKey: run.LocationKey,
			By:          run.By,
			LineCount:   len(run.Lines),
		}
		if run.CompletedAt != nil {
			event.OccurredAt = *run.CompletedAt
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
		return p.Publish(domainevents.TopicRunCompleted, msg)
	})
}

func (r *RunRepository) upsert(ctx context.Context, tx *sql.Tx, run models.Run) error {
	runs := map[string]models.Run{}
	if err := database.GetSlot(ctx, tx, slotRuns, &runs); err != nil && !errors.Is(err, database.ErrSlotNotFound) {
		return fmt.Errorf("load runs: %w", err)
	}
	runs[run.RunID] = run
	return database.PutSlot(ctx, tx, slotRuns, runs)
}
