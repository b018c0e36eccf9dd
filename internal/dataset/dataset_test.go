package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/orsynth/internal/dataset"
	"github.com/gyeh/orsynth/internal/gen"
	"github.com/gyeh/orsynth/internal/model"
	"github.com/gyeh/orsynth/internal/parquetio"
)

func generateSmall(t *testing.T) *model.Dataset {
	t.Helper()
	cfg := gen.RunConfig{
		Seed: 7, Cards: 8, Surgeons: 3, Rooms: 2, Weekdays: 5,
		WaitingListSize: 50, ORCapacityMin: 480,
	}
	ds, _, err := gen.Run(zerolog.Nop(), cfg, gen.DefaultParams())
	if err != nil {
		t.Fatalf("gen.Run: %v", err)
	}
	return ds
}

func testManifest(cards, surgeons int) *model.Manifest {
	return &model.Manifest{
		DatasetID:       uuid.NewString(),
		Seed:            7,
		CreatedAt:       time.Now().UTC(),
		Cards:           cards,
		Surgeons:        surgeons,
		Rooms:           2,
		Weekdays:        5,
		WaitingListSize: 50,
		ORCapacityMin:   480,
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	ds := generateSmall(t)
	dir := t.TempDir()
	m := testManifest(8, 3)

	if err := dataset.Write(dir, ds, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(m.Tables) != len(model.AllTables) {
		t.Fatalf("manifest lists %d tables, want %d", len(m.Tables), len(model.AllTables))
	}

	got, err := dataset.ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if got.DatasetID != m.DatasetID || got.Seed != m.Seed {
		t.Errorf("manifest header changed: %+v", got)
	}

	wl, ok := got.Table(model.WaitingListTbl)
	if !ok {
		t.Fatal("manifest missing waiting_list table")
	}
	if wl.Rows != int64(len(ds.WaitingList)) {
		t.Errorf("manifest records %d waiting list rows, dataset has %d", wl.Rows, len(ds.WaitingList))
	}

	rows, err := parquetio.ReadAll[model.WaitingListRow](filepath.Join(dir, wl.File))
	if err != nil {
		t.Fatalf("read waiting list parquet: %v", err)
	}
	if len(rows) != len(ds.WaitingList) {
		t.Fatalf("parquet has %d rows, dataset has %d", len(rows), len(ds.WaitingList))
	}
	for i, r := range rows {
		if r.ID != ds.WaitingList[i].ID || r.Card != string(ds.WaitingList[i].Card) {
			t.Fatalf("row %d does not match entry: %+v vs %+v", i, r, ds.WaitingList[i])
		}
	}
}

func TestReadManifest_DetectsTamper(t *testing.T) {
	ds := generateSmall(t)
	dir := t.TempDir()
	m := testManifest(8, 3)
	if err := dataset.Write(dir, ds, m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Corrupt one table file after the hashes were recorded.
	path := filepath.Join(dir, model.CardsTable+".parquet")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open table file: %v", err)
	}
	f.WriteString("tampered")
	f.Close()

	_, err = dataset.ReadManifest(dir)
	if err == nil {
		t.Fatal("expected hash mismatch error")
	}
	if !strings.Contains(err.Error(), "does not match manifest") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadManifest_MissingDir(t *testing.T) {
	if _, err := dataset.ReadManifest(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestWriteIdenticalAcrossRuns(t *testing.T) {
	// Two same-seed generations must produce byte-identical table files;
	// only the manifest (dataset id, timestamps) differs.
	dirA, dirB := t.TempDir(), t.TempDir()
	if err := dataset.Write(dirA, generateSmall(t), testManifest(8, 3)); err != nil {
		t.Fatalf("Write A: %v", err)
	}
	if err := dataset.Write(dirB, generateSmall(t), testManifest(8, 3)); err != nil {
		t.Fatalf("Write B: %v", err)
	}

	for _, table := range model.AllTables {
		file := table + ".parquet"
		hashA, err := dataset.FileHash(filepath.Join(dirA, file))
		if err != nil {
			t.Fatalf("hash %s: %v", file, err)
		}
		hashB, err := dataset.FileHash(filepath.Join(dirB, file))
		if err != nil {
			t.Fatalf("hash %s: %v", file, err)
		}
		if hashA != hashB {
			t.Errorf("table %s differs across same-seed runs", table)
		}
	}
}
