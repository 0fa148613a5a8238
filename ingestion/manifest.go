package ingestion

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/poiesic/netsec/core"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File roles recorded in the manifest.
const (
	RoleFeatureStore = "feature_store"
	RoleTrain        = "train"
	RoleTest         = "test"
)

// Manifest records what a run of the stage produced.
type Manifest struct {
	CreatedAt  time.Time `yaml:"created_at"`
	Database   string    `yaml:"database"`
	Collection string    `yaml:"collection"`
	SplitRatio float64   `yaml:"train_test_split_ratio"`
	RandomSeed uint64    `yaml:"random_seed"`
	Columns    []string  `yaml:"columns"`

	// DuplicateRows counts feature store rows identical to an earlier row.
	DuplicateRows int            `yaml:"duplicate_rows"`
	Files         []ManifestFile `yaml:"files"`
}

// ManifestFile describes one output file.
type ManifestFile struct {
	Role     string `yaml:"role"`
	Path     string `yaml:"path"`
	Rows     int    `yaml:"rows"`
	Checksum string `yaml:"blake2b"`
}

// File returns the entry for role.
func (m *Manifest) File(role string) (ManifestFile, bool) {
	for _, f := range m.Files {
		if f.Role == role {
			return f, true
		}
	}
	return ManifestFile{}, false
}

func (d *DataIngestion) buildManifest(table, train, test *core.Table) (*Manifest, error) {
	m := &Manifest{
		CreatedAt:  d.now().UTC(),
		Database:   d.cfg.DatabaseName,
		Collection: d.cfg.CollectionName,
		SplitRatio: d.cfg.TrainTestSplitRatio,
		RandomSeed: d.cfg.RandomSeed,
		Columns:    table.Columns,

		DuplicateRows: duplicateRows(table),
	}

	outputs := []struct {
		role  string
		path  string
		table *core.Table
	}{
		{RoleFeatureStore, d.cfg.FeatureStoreFilePath, table},
		{RoleTrain, d.cfg.TrainingFilePath, train},
		{RoleTest, d.cfg.TestingFilePath, test},
	}

	for _, out := range outputs {
		data, err := afero.ReadFile(d.writer.Fs(), out.path)
		if err != nil {
			return nil, fmt.Errorf("checksum %s: %w", out.path, err)
		}
		m.Files = append(m.Files, ManifestFile{
			Role:     out.role,
			Path:     out.path,
			Rows:     out.table.Len(),
			Checksum: core.Checksum(data),
		})
	}
	return m, nil
}

func duplicateRows(table *core.Table) int {
	seen := make(map[core.ID]struct{}, table.Len())
	dups := 0
	for _, row := range table.Rows {
		id := core.Fingerprint(row)
		if _, ok := seen[id]; ok {
			dups++
			continue
		}
		seen[id] = struct{}{}
	}
	return dups
}

func writeManifest(fs afero.Fs, path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0o644)
}

// ReadManifest loads a manifest written by InitiateDataIngestion.
func ReadManifest(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
