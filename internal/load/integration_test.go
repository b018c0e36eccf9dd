package load_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/orsynth/internal/config"
	"github.com/gyeh/orsynth/internal/dataset"
	"github.com/gyeh/orsynth/internal/db"
	"github.com/gyeh/orsynth/internal/gen"
	"github.com/gyeh/orsynth/internal/load"
	"github.com/gyeh/orsynth/internal/logging"
	"github.com/gyeh/orsynth/internal/model"
)

const (
	testPort     = 15433
	testDB       = "orsynthtest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN string
	pg      *embeddedpostgres.EmbeddedPostgres
)

func TestMain(m *testing.M) {
	if os.Getenv("ORSYNTH_PG_TEST") == "" {
		fmt.Fprintln(os.Stderr, "SKIP: set ORSYNTH_PG_TEST=1 to run embedded postgres tests")
		os.Exit(0)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB creates a connection pool on a clean schema with migrations applied.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS orsynth CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}

	log := logging.Setup("text")
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

// writeDataset generates a small dataset into a temp dir and returns its
// directory and manifest.
func writeDataset(t *testing.T, seed uint64) (string, *model.Manifest) {
	t.Helper()
	cfg := gen.RunConfig{
		Seed: seed, Cards: 6, Surgeons: 3, Rooms: 2, Weekdays: 5,
		WaitingListSize: 40, ORCapacityMin: 480,
	}
	ds, _, err := gen.Run(zerolog.Nop(), cfg, gen.DefaultParams())
	if err != nil {
		t.Fatalf("gen.Run: %v", err)
	}

	dir := t.TempDir()
	m := &model.Manifest{
		DatasetID:       uuid.NewString(),
		Seed:            cfg.Seed,
		CreatedAt:       time.Now().UTC(),
		Cards:           cfg.Cards,
		Surgeons:        cfg.Surgeons,
		Rooms:           cfg.Rooms,
		Weekdays:        cfg.Weekdays,
		WaitingListSize: cfg.WaitingListSize,
		ORCapacityMin:   cfg.ORCapacityMin,
	}
	if err := dataset.Write(dir, ds, m); err != nil {
		t.Fatalf("dataset.Write: %v", err)
	}
	return dir, m
}

func TestLoadRun(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	dir, m := writeDataset(t, 11)
	cfg := config.Default()
	cfg.DSN = testDSN
	cfg.DatasetDir = dir

	summary, err := load.Run(ctx, pool, log, &cfg)
	if err != nil {
		t.Fatalf("load.Run: %v", err)
	}
	if summary.AlreadyLoaded {
		t.Fatal("fresh dataset reported as already loaded")
	}
	if summary.DatasetID != m.DatasetID {
		t.Errorf("summary dataset id %s, manifest %s", summary.DatasetID, m.DatasetID)
	}

	// Row counts in Postgres must match the manifest.
	for _, tf := range m.Tables {
		var n int64
		err := pool.QueryRow(ctx,
			fmt.Sprintf("SELECT count(*) FROM orsynth.%s WHERE dataset_id = $1", tf.Name),
			m.DatasetID,
		).Scan(&n)
		if err != nil {
			t.Fatalf("count %s: %v", tf.Name, err)
		}
		if n != tf.Rows {
			t.Errorf("table %s: %d rows in db, manifest says %d", tf.Name, n, tf.Rows)
		}
		if summary.RowsLoaded[tf.Name] != tf.Rows {
			t.Errorf("table %s: summary says %d, manifest says %d", tf.Name, summary.RowsLoaded[tf.Name], tf.Rows)
		}
	}

	// Frequency splits must still sum to 1 per card after the roundtrip.
	var off int64
	err = pool.QueryRow(ctx, `
		SELECT count(*) FROM (
			SELECT card, sum(split) AS s
			FROM orsynth.frequency WHERE dataset_id = $1 GROUP BY card
		) t WHERE abs(t.s - 1) > 1e-6`, m.DatasetID).Scan(&off)
	if err != nil {
		t.Fatalf("check splits: %v", err)
	}
	if off != 0 {
		t.Errorf("%d cards have splits not summing to 1", off)
	}
}

func TestLoadRun_SkipAndForce(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	dir, m := writeDataset(t, 12)
	cfg := config.Default()
	cfg.DSN = testDSN
	cfg.DatasetDir = dir

	if _, err := load.Run(ctx, pool, log, &cfg); err != nil {
		t.Fatalf("first load: %v", err)
	}

	// Second load without force is a no-op.
	summary, err := load.Run(ctx, pool, log, &cfg)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !summary.AlreadyLoaded {
		t.Fatal("expected already-loaded skip")
	}

	// Force reloads and leaves exactly one copy of every row.
	cfg.Force = true
	if _, err := load.Run(ctx, pool, log, &cfg); err != nil {
		t.Fatalf("force load: %v", err)
	}
	var n int64
	if err := pool.QueryRow(ctx,
		"SELECT count(*) FROM orsynth.waiting_list WHERE dataset_id = $1", m.DatasetID,
	).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != int64(m.WaitingListSize) {
		t.Errorf("waiting list has %d rows after force reload, want %d", n, m.WaitingListSize)
	}
}

func TestLoadRun_BadManifest(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	dir := t.TempDir()
	if err := os.WriteFile(dir+"/manifest.yaml", []byte("dataset_id: not-a-uuid\n"), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	cfg := config.Default()
	cfg.DSN = testDSN
	cfg.DatasetDir = dir

	_, err := load.Run(ctx, pool, log, &cfg)
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	var pe *load.PhaseError
	if !errors.As(err, &pe) || pe.Phase != "preflight" {
		t.Fatalf("expected preflight phase error, got %v", err)
	}
}
