package gen

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/orsynth/internal/logging"
	"github.com/gyeh/orsynth/internal/model"
)

// RunConfig sizes the generated universe.
type RunConfig struct {
	Seed            uint64  `yaml:"seed"`
	Cards           int     `yaml:"cards"`
	Surgeons        int     `yaml:"surgeons"`
	Rooms           int     `yaml:"rooms"`
	Weekdays        int     `yaml:"weekdays"` // operating days per week, weekday 0 = Monday
	WaitingListSize int     `yaml:"waiting_list_size"`
	ORCapacityMin   float64 `yaml:"or_capacity_min"` // minutes of OR time per room per day
	// Epoch anchors request timestamps; the waiting-list horizon ends here.
	Epoch time.Time `yaml:"epoch"`
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Seed:            42,
		Cards:           100,
		Surgeons:        10,
		Rooms:           5,
		Weekdays:        5,
		WaitingListSize: 1000,
		ORCapacityMin:   480,
	}
}

func (c RunConfig) Validate() error {
	if c.Cards <= 0 || c.Surgeons <= 0 || c.Rooms <= 0 || c.Weekdays <= 0 {
		return configErrorf("cards, surgeons, rooms and weekdays must all be > 0")
	}
	if c.Weekdays > 7 {
		return configErrorf("weekdays must be <= 7, got %d", c.Weekdays)
	}
	if c.WaitingListSize <= 0 {
		return configErrorf("waiting list size must be > 0, got %d", c.WaitingListSize)
	}
	if c.ORCapacityMin <= 0 {
		return configErrorf("OR capacity must be > 0 minutes, got %g", c.ORCapacityMin)
	}
	return nil
}

// Params bundles every stage's tunables.
type Params struct {
	Baseline    BaselineParams    `yaml:"baseline"`
	Frequency   FrequencyParams   `yaml:"frequency"`
	Duration    DurationParams    `yaml:"duration"`
	Priority    PriorityParams    `yaml:"priority"`
	Admission   AdmissionParams   `yaml:"admission"`
	Schedule    ScheduleParams    `yaml:"schedule"`
	WaitingList WaitingListParams `yaml:"waiting_list"`
}

func DefaultParams() Params {
	return Params{
		Baseline:    DefaultBaselineParams(),
		Frequency:   DefaultFrequencyParams(),
		Duration:    DefaultDurationParams(),
		Priority:    DefaultPriorityParams(),
		Admission:   DefaultAdmissionParams(),
		Schedule:    DefaultScheduleParams(),
		WaitingList: DefaultWaitingListParams(),
	}
}

// Validate checks every stage's parameters before any sampling happens.
func (p Params) Validate() error {
	for _, v := range []interface{ Validate() error }{
		p.Baseline, p.Frequency, p.Duration,
		p.Priority, p.Admission, p.Schedule, p.WaitingList,
	} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the full generation pipeline in its fixed dependency order:
// baseline → frequency → duration → schedule → priority → admission →
// waiting list. One seeded stream is consumed in exactly that order, so a
// given (seed, config, params) triple reproduces the dataset bit for bit.
func Run(log zerolog.Logger, cfg RunConfig, params Params) (*model.Dataset, *model.RunSummary, error) {
	totalStart := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, nil, &PipelineError{Stage: "config", Err: err}
	}
	if err := params.Validate(); err != nil {
		return nil, nil, &PipelineError{Stage: "config", Err: err}
	}

	r := NewRand(cfg.Seed)
	ds := &model.Dataset{}
	stageDur := make(map[string]time.Duration)

	run := func(stage string, f func() error) error {
		slog := logging.Stage(log, stage)
		slog.Info().Msg("starting")
		start := time.Now()
		if err := f(); err != nil {
			return &PipelineError{Stage: stage, Err: err}
		}
		stageDur[stage] = time.Since(start)
		slog.Info().Dur("elapsed", stageDur[stage]).Msg("complete")
		return nil
	}

	if err := run("baseline", func() error {
		var err error
		ds.Cards, err = GenerateBaselines(cfg.Cards, cfg.ORCapacityMin, params.Baseline, r)
		return err
	}); err != nil {
		return nil, nil, err
	}

	if err := run("frequency", func() error {
		var err error
		ds.Frequency, err = GenerateFrequencyTable(ds.Cards, cfg.Surgeons, params.Frequency, r)
		return err
	}); err != nil {
		return nil, nil, err
	}

	if err := run("duration", func() error {
		var err error
		ds.Durations, err = GenerateDurationModels(ds.Frequency, ds.Cards, params.Duration, r)
		return err
	}); err != nil {
		return nil, nil, err
	}

	if err := run("schedule", func() error {
		var err error
		ds.Schedule, err = GenerateSchedule(ds.Frequency, cfg.Rooms, cfg.Weekdays, params.Schedule, r)
		return err
	}); err != nil {
		return nil, nil, err
	}

	if err := run("priority", func() error {
		var err error
		ds.Priorities, err = GeneratePriorityTable(ds.Cards, params.Priority, r)
		return err
	}); err != nil {
		return nil, nil, err
	}

	if err := run("admission", func() error {
		var err error
		ds.Admissions, err = GenerateAdmissionTable(ds.Cards, params.Admission, r)
		return err
	}); err != nil {
		return nil, nil, err
	}

	epoch := cfg.Epoch
	if epoch.IsZero() {
		epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if err := run("waiting_list", func() error {
		var err error
		ds.WaitingList, err = GenerateWaitingList(
			cfg.WaitingListSize, ds.Frequency, ds.Durations,
			ds.Priorities, ds.Admissions,
			params.Priority, params.WaitingList, epoch, r,
		)
		return err
	}); err != nil {
		return nil, nil, err
	}

	summary := &model.RunSummary{
		Seed:            cfg.Seed,
		Cards:           cfg.Cards,
		Surgeons:        cfg.Surgeons,
		Rooms:           cfg.Rooms,
		ScheduleSlots:   len(ds.Schedule),
		WaitingListSize: len(ds.WaitingList),
		StageDurations:  stageDur,
		DurationTotal:   time.Since(totalStart),
	}

	log.Info().
		Int("cards", summary.Cards).
		Int("surgeons", summary.Surgeons).
		Int("schedule_slots", summary.ScheduleSlots).
		Int("waiting_list", summary.WaitingListSize).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("generation pipeline complete")

	return ds, summary, nil
}
