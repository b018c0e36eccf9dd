package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/orsynth/internal/model"
)

// ReadManifest parses and verifies the manifest of a dataset directory:
// every listed table file must exist and match its recorded SHA-256.
func ReadManifest(dir string) (*model.Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, model.ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m model.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if _, err := uuid.Parse(m.DatasetID); err != nil {
		return nil, fmt.Errorf("manifest dataset_id: %w", err)
	}

	for _, t := range m.Tables {
		sha, err := FileHash(filepath.Join(dir, t.File))
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.Name, err)
		}
		if sha != t.SHA256 {
			return nil, fmt.Errorf("table %s: file hash %s does not match manifest %s", t.Name, sha, t.SHA256)
		}
	}
	return &m, nil
}
