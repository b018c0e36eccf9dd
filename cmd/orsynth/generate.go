package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gyeh/orsynth/internal/dataset"
	"github.com/gyeh/orsynth/internal/exitcode"
	"github.com/gyeh/orsynth/internal/gen"
	"github.com/gyeh/orsynth/internal/logging"
	"github.com/gyeh/orsynth/internal/model"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dataset directory (Parquet tables + manifest)",
	RunE:  runGenerate,
}

// Run-level flag values; applied over the config file only when the flag
// was explicitly set, so flags beat the file and the file beats defaults.
var genFlags struct {
	seed            uint64
	cards           int
	surgeons        int
	rooms           int
	weekdays        int
	waitingListSize int
	orCapacity      float64
	epoch           string

	complexityScaling float64
	scheduleConc      float64
	sparsityThreshold float64
	horizonDays       int
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&cfg.OutDir, "out", "", "Output dataset directory (required)")
	f.Uint64Var(&genFlags.seed, "seed", 42, "Random seed")
	f.IntVar(&genFlags.cards, "cards", 100, "Number of operation cards")
	f.IntVar(&genFlags.surgeons, "surgeons", 10, "Number of surgeons")
	f.IntVar(&genFlags.rooms, "rooms", 5, "Number of operating rooms")
	f.IntVar(&genFlags.weekdays, "weekdays", 5, "Operating days per week")
	f.IntVar(&genFlags.waitingListSize, "waiting-list-size", 1000, "Number of waiting list entries")
	f.Float64Var(&genFlags.orCapacity, "or-capacity", 480, "OR minutes per room per day")
	f.StringVar(&genFlags.epoch, "epoch", "", "Request timestamp anchor, YYYY-MM-DD (default 2025-01-01)")
	f.Float64Var(&genFlags.complexityScaling, "complexity-scaling", 0, "Concentration of complex cards on fewer surgeons")
	f.Float64Var(&genFlags.scheduleConc, "schedule-concentration", 1, "Base Dirichlet concentration for schedule slots")
	f.Float64Var(&genFlags.sparsityThreshold, "sparsity-threshold", 0.05, "Schedule slots below this weight are dropped")
	f.IntVar(&genFlags.horizonDays, "horizon-days", 90, "Waiting list request horizon in days")
	_ = generateCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(generateCmd)
}

// applyGenFlags copies explicitly set flag values into cfg.
func applyGenFlags(cmd *cobra.Command) error {
	set := map[string]func(){
		"seed":                   func() { cfg.Run.Seed = genFlags.seed },
		"cards":                  func() { cfg.Run.Cards = genFlags.cards },
		"surgeons":               func() { cfg.Run.Surgeons = genFlags.surgeons },
		"rooms":                  func() { cfg.Run.Rooms = genFlags.rooms },
		"weekdays":               func() { cfg.Run.Weekdays = genFlags.weekdays },
		"waiting-list-size":      func() { cfg.Run.WaitingListSize = genFlags.waitingListSize },
		"or-capacity":            func() { cfg.Run.ORCapacityMin = genFlags.orCapacity },
		"complexity-scaling":     func() { cfg.Params.Frequency.ComplexityScaling = genFlags.complexityScaling },
		"schedule-concentration": func() { cfg.Params.Schedule.BaseConcentration = genFlags.scheduleConc },
		"sparsity-threshold":     func() { cfg.Params.Schedule.SparsityThreshold = genFlags.sparsityThreshold },
		"horizon-days":           func() { cfg.Params.WaitingList.HorizonDays = genFlags.horizonDays },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	if cmd.Flags().Changed("epoch") {
		t, err := time.Parse("2006-01-02", genFlags.epoch)
		if err != nil {
			return fmt.Errorf("parse --epoch: %w", err)
		}
		cfg.Run.Epoch = t
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := loadConfigFile(); err != nil {
		log.Error().Err(err).Msg("config file failed")
		os.Exit(exitcode.ConfigError)
	}
	if err := applyGenFlags(cmd); err != nil {
		log.Error().Err(err).Msg("flag validation failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateGenerate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	ds, summary, err := gen.Run(log, cfg.Run, cfg.Params)
	if err != nil {
		var pe *gen.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("stage", pe.Stage).Msg("generation failed")
		} else {
			log.Error().Err(err).Msg("generation failed")
		}
		if errors.Is(err, gen.ErrConfig) {
			os.Exit(exitcode.ConfigError)
		}
		os.Exit(exitcode.GenerationError)
	}

	m := &model.Manifest{
		DatasetID:       uuid.NewString(),
		Seed:            cfg.Run.Seed,
		CreatedAt:       time.Now().UTC(),
		Cards:           cfg.Run.Cards,
		Surgeons:        cfg.Run.Surgeons,
		Rooms:           cfg.Run.Rooms,
		Weekdays:        cfg.Run.Weekdays,
		WaitingListSize: cfg.Run.WaitingListSize,
		ORCapacityMin:   cfg.Run.ORCapacityMin,
	}
	if err := dataset.Write(cfg.OutDir, ds, m); err != nil {
		log.Error().Err(err).Str("dir", cfg.OutDir).Msg("dataset write failed")
		os.Exit(exitcode.WriteError)
	}

	fmt.Printf("Generated dataset %s: %d cards, %d surgeons, %d schedule slots, %d waiting list entries (%.1fs)\n",
		m.DatasetID, summary.Cards, summary.Surgeons,
		summary.ScheduleSlots, summary.WaitingListSize,
		summary.DurationTotal.Seconds())
	fmt.Printf("Wrote %d tables to %s\n", len(m.Tables), cfg.OutDir)
	return nil
}
