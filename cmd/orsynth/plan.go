package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyeh/orsynth/internal/exitcode"
	"github.com/gyeh/orsynth/internal/gen"
	"github.com/gyeh/orsynth/internal/logging"
	"github.com/gyeh/orsynth/internal/model"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run generation and print dataset stats (no writes)",
	RunE:  runPlan,
}

func init() {
	// Same run-level knobs as generate, minus --out. The flags bind into
	// the shared genFlags values; applyGenFlags reads Changed() per command.
	f := planCmd.Flags()
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
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := loadConfigFile(); err != nil {
		log.Error().Err(err).Msg("config file failed")
		os.Exit(exitcode.ConfigError)
	}
	if err := applyGenFlags(cmd); err != nil {
		log.Error().Err(err).Msg("flag validation failed")
		os.Exit(exitcode.UsageError)
	}

	ds, summary, err := gen.Run(log, cfg.Run, cfg.Params)
	if err != nil {
		log.Error().Err(err).Msg("generation failed")
		if errors.Is(err, gen.ErrConfig) {
			os.Exit(exitcode.ConfigError)
		}
		os.Exit(exitcode.GenerationError)
	}

	// Duration spread across cards.
	var minMean, maxMean float64
	for i, c := range ds.Cards {
		m := model.DurationModel{Mu: c.Mu, Sigma: c.Sigma, Gamma: c.Gamma}.Mean()
		if i == 0 || m < minMean {
			minMean = m
		}
		if i == 0 || m > maxMean {
			maxMean = m
		}
	}

	// Waiting list admission mix.
	admCounts := make(map[model.AdmissionOutcome]int)
	for _, e := range ds.WaitingList {
		admCounts[e.Admission]++
	}
	outcomes := make([]model.AdmissionOutcome, 0, len(admCounts))
	for o := range admCounts {
		outcomes = append(outcomes, o)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i] < outcomes[j] })

	fmt.Println("=== orsynth plan ===")
	fmt.Printf("Seed:            %d\n", cfg.Run.Seed)
	fmt.Printf("Cards:           %d\n", summary.Cards)
	fmt.Printf("Surgeons:        %d\n", summary.Surgeons)
	fmt.Printf("Rooms x days:    %d x %d\n", cfg.Run.Rooms, cfg.Run.Weekdays)
	fmt.Printf("Schedule slots:  %d retained of %d\n",
		summary.ScheduleSlots, summary.Surgeons*cfg.Run.Rooms*cfg.Run.Weekdays)
	fmt.Printf("Waiting list:    %d entries\n", summary.WaitingListSize)
	fmt.Printf("Mean durations:  %.1f .. %.1f min\n", minMean, maxMean)
	fmt.Println()
	fmt.Println("Admission mix:")
	for _, o := range outcomes {
		fmt.Printf("  %-6s %6d (%.1f%%)\n", o, admCounts[o],
			100*float64(admCounts[o])/float64(len(ds.WaitingList)))
	}
	fmt.Printf("\nGeneration time: %.2fs (no files written)\n", summary.DurationTotal.Seconds())
	return nil
}
