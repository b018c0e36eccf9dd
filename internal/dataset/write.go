// Package dataset reads and writes dataset directories: a manifest plus one
// Parquet file per generated table.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/orsynth/internal/model"
	"github.com/gyeh/orsynth/internal/parquetio"
)

// Write writes every table of ds into dir as Parquet and then the manifest.
// The caller fills the manifest header (dataset id, seed, dimensions); Write
// fills the table list with row counts and file hashes.
func Write(dir string, ds *model.Dataset, m *model.Manifest) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	m.Tables = m.Tables[:0]
	if err := writeTable(dir, m, model.CardsTable, ds.CardRows()); err != nil {
		return err
	}
	if err := writeTable(dir, m, model.FrequencyTbl, ds.FrequencyRows()); err != nil {
		return err
	}
	if err := writeTable(dir, m, model.DurationsTable, ds.DurationRows()); err != nil {
		return err
	}
	if err := writeTable(dir, m, model.PrioritiesTable, ds.PriorityRows()); err != nil {
		return err
	}
	if err := writeTable(dir, m, model.AdmissionsTable, ds.AdmissionRows()); err != nil {
		return err
	}
	if err := writeTable(dir, m, model.ScheduleTable, ds.ScheduleRows()); err != nil {
		return err
	}
	if err := writeTable(dir, m, model.WaitingListTbl, ds.WaitingListRows()); err != nil {
		return err
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, model.ManifestFile), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func writeTable[T any](dir string, m *model.Manifest, name string, rows []T) error {
	file := name + ".parquet"
	path := filepath.Join(dir, file)

	n, err := parquetio.WriteTable(path, rows)
	if err != nil {
		return fmt.Errorf("table %s: %w", name, err)
	}
	sha, err := FileHash(path)
	if err != nil {
		return fmt.Errorf("table %s: %w", name, err)
	}
	m.Tables = append(m.Tables, model.TableFile{
		Name: name, File: file, Rows: n, SHA256: sha,
	})
	return nil
}
