package model

import "time"

// RunSummary captures metrics from a single generation run.
type RunSummary struct {
	DatasetID       string
	Seed            uint64
	Cards           int
	Surgeons        int
	Rooms           int
	ScheduleSlots   int
	WaitingListSize int
	StageDurations  map[string]time.Duration
	DurationTotal   time.Duration
}

// LoadSummary captures metrics from loading a dataset into Postgres.
type LoadSummary struct {
	DatasetDir    string
	DatasetID     string
	AlreadyLoaded bool
	RowsLoaded    map[string]int64
	DurationTotal time.Duration
}
