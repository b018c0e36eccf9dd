// Package load copies a generated dataset directory into Postgres.
package load

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/orsynth/internal/config"
	"github.com/gyeh/orsynth/internal/dataset"
	"github.com/gyeh/orsynth/internal/db"
	"github.com/gyeh/orsynth/internal/model"
	"github.com/gyeh/orsynth/internal/parquetio"
)

// PhaseError wraps an error with the load phase where it occurred.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Run loads a dataset directory into Postgres: verify the manifest, register
// the dataset, then COPY every table. A dataset id already present is
// skipped unless force re-loading is requested.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.LoadSummary, error) {
	totalStart := time.Now()

	log.Info().Str("dataset", cfg.DatasetDir).Msg("verifying manifest")
	m, err := dataset.ReadManifest(cfg.DatasetDir)
	if err != nil {
		return nil, &PhaseError{Phase: "preflight", Err: err}
	}
	datasetID := uuid.MustParse(m.DatasetID)

	var exists bool
	err = pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM orsynth.datasets WHERE dataset_id = $1)", datasetID,
	).Scan(&exists)
	if err != nil {
		return nil, &PhaseError{Phase: "preflight", Err: err}
	}
	if exists && !cfg.Force {
		log.Info().Str("dataset_id", m.DatasetID).Msg("dataset already loaded, skipping (use --force to re-load)")
		return &model.LoadSummary{
			DatasetDir:    cfg.DatasetDir,
			DatasetID:     m.DatasetID,
			AlreadyLoaded: true,
			DurationTotal: time.Since(totalStart),
		}, nil
	}
	if exists {
		log.Info().Str("dataset_id", m.DatasetID).Msg("force re-load: deleting previous rows")
		if _, err := pool.Exec(ctx, "DELETE FROM orsynth.datasets WHERE dataset_id = $1", datasetID); err != nil {
			return nil, &PhaseError{Phase: "preflight", Err: err}
		}
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO orsynth.datasets
			(dataset_id, seed, created_at, cards, surgeons, rooms, weekdays,
			 waiting_list_size, or_capacity_min, source_dir)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		datasetID, int64(m.Seed), m.CreatedAt, m.Cards, m.Surgeons, m.Rooms,
		m.Weekdays, m.WaitingListSize, m.ORCapacityMin, cfg.DatasetDir,
	)
	if err != nil {
		return nil, &PhaseError{Phase: "register", Err: err}
	}

	rowsLoaded := make(map[string]int64)
	prefix := []any{datasetID}

	for _, t := range m.Tables {
		path := filepath.Join(cfg.DatasetDir, t.File)
		var n int64
		switch t.Name {
		case model.CardsTable:
			n, err = copyTable[model.CardRow](ctx, pool, path, t.Name, model.CardColumns(), prefix)
		case model.FrequencyTbl:
			n, err = copyTable[model.FrequencyRow](ctx, pool, path, t.Name, model.FrequencyColumns(), prefix)
		case model.DurationsTable:
			n, err = copyTable[model.DurationRow](ctx, pool, path, t.Name, model.DurationColumns(), prefix)
		case model.PrioritiesTable:
			n, err = copyTable[model.PriorityRow](ctx, pool, path, t.Name, model.PriorityColumns(), prefix)
		case model.AdmissionsTable:
			n, err = copyTable[model.AdmissionRow](ctx, pool, path, t.Name, model.AdmissionColumns(), prefix)
		case model.ScheduleTable:
			n, err = copyTable[model.ScheduleRow](ctx, pool, path, t.Name, model.ScheduleColumns(), prefix)
		case model.WaitingListTbl:
			n, err = copyTable[model.WaitingListRow](ctx, pool, path, t.Name, model.WaitingListColumns(), prefix)
		default:
			err = fmt.Errorf("unknown table %q in manifest", t.Name)
		}
		if err != nil {
			return nil, &PhaseError{Phase: "copy " + t.Name, Err: err}
		}
		rowsLoaded[t.Name] = n
		log.Info().Str("table", t.Name).Int64("rows", n).Msg("table loaded")
	}

	summary := &model.LoadSummary{
		DatasetDir:    cfg.DatasetDir,
		DatasetID:     m.DatasetID,
		RowsLoaded:    rowsLoaded,
		DurationTotal: time.Since(totalStart),
	}

	log.Info().
		Str("dataset_id", summary.DatasetID).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("load complete")

	return summary, nil
}

// copyTable reads one Parquet table and bulk-copies it, dataset id first.
func copyTable[T db.CopyRow](ctx context.Context, pool *pgxpool.Pool, path, table string, columns []string, prefix []any) (int64, error) {
	rows, err := parquetio.ReadAll[T](path)
	if err != nil {
		return 0, err
	}

	cols := append([]string{"dataset_id"}, columns...)
	return pool.CopyFrom(ctx,
		pgx.Identifier{"orsynth", table},
		cols,
		db.NewSliceSource(prefix, rows),
	)
}
