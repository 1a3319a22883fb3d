package repositories

import (
	"context"

	"github.com/ghuser/parstock/services/counting/domain/models"
)

// RunRepository persists counting runs, keyed by run id. Persistence is
// caller-driven: the application layer saves after every state-changing
// transition; the run itself carries no autosave guarantee.
// The domain layer owns this interface; infrastructure implements it.
type RunRepository interface {
	// Get loads one run. Returns domain.ErrRunNotFound when absent.
	Get(ctx context.Context, runID string) (models.Run, error)

	// Runs loads the full run map.
	Runs(ctx context.Context) (map[string]models.Run, error)

	// Save upserts the run into the run map.
	Save(ctx context.Context, run models.Run) error

	// SaveCompleted upserts the run and publishes run.completed in the same
	// transaction.
	SaveCompleted(ctx context.Context, run models.Run) error
}
