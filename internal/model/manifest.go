package model

import "time"

// Table file names inside a dataset directory.
const (
	ManifestFile    = "manifest.yaml"
	CardsTable      = "cards"
	FrequencyTbl    = "frequency"
	DurationsTable  = "durations"
	PrioritiesTable = "priorities"
	AdmissionsTable = "admissions"
	ScheduleTable   = "schedule"
	WaitingListTbl  = "waiting_list"
)

// AllTables lists the dataset tables in write order.
var AllTables = []string{
	CardsTable, FrequencyTbl, DurationsTable,
	PrioritiesTable, AdmissionsTable, ScheduleTable, WaitingListTbl,
}

// TableFile records one written table for the manifest.
type TableFile struct {
	Name   string `yaml:"name"`
	File   string `yaml:"file"`
	Rows   int64  `yaml:"rows"`
	SHA256 string `yaml:"sha256"`
}

// Manifest describes a generated dataset directory. It is the contract
// between `orsynth generate` and `orsynth load`.
type Manifest struct {
	DatasetID       string      `yaml:"dataset_id"`
	Seed            uint64      `yaml:"seed"`
	CreatedAt       time.Time   `yaml:"created_at"`
	Cards           int         `yaml:"cards"`
	Surgeons        int         `yaml:"surgeons"`
	Rooms           int         `yaml:"rooms"`
	Weekdays        int         `yaml:"weekdays"`
	WaitingListSize int         `yaml:"waiting_list_size"`
	ORCapacityMin   float64     `yaml:"or_capacity_min"`
	Tables          []TableFile `yaml:"tables"`
}

// Table returns the manifest entry for the named table, or ok=false.
func (m *Manifest) Table(name string) (TableFile, bool) {
	for _, t := range m.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableFile{}, false
}
