package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/orsynth/internal/db"
	"github.com/gyeh/orsynth/internal/exitcode"
	"github.com/gyeh/orsynth/internal/load"
	"github.com/gyeh/orsynth/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a generated dataset directory into Postgres",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.DatasetDir, "dataset", "", "Dataset directory written by generate (required)")
	f.BoolVar(&cfg.Force, "force", false, "Re-load even if the dataset id is already present")
	_ = loadCmd.MarkFlagRequired("dataset")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateLoad(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := load.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *load.PhaseError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
		} else {
			log.Error().Err(err).Msg("load failed")
		}
		os.Exit(exitcode.LoadError)
	}

	if summary.AlreadyLoaded {
		fmt.Printf("Dataset %s already loaded, nothing to do\n", summary.DatasetID)
		return nil
	}

	var total int64
	parts := make([]string, 0, len(summary.RowsLoaded))
	for table, n := range summary.RowsLoaded {
		total += n
		parts = append(parts, fmt.Sprintf("%s=%d", table, n))
	}
	sort.Strings(parts)
	fmt.Printf("Loaded dataset %s: %d rows (%s) in %.1fs\n",
		summary.DatasetID, total, strings.Join(parts, ", "),
		summary.DurationTotal.Seconds())
	return nil
}
