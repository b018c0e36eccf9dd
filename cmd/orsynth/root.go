package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/orsynth/internal/config"
)

var (
	cfg        config.Config
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "orsynth",
	Short: "Synthetic OR scheduling benchmark generator",
	Long: "Generates seeded, reproducible operating-room scheduling datasets " +
		"(operation cards, surgeon frequencies, duration models, master schedule, " +
		"waiting list) as Parquet, and bulk-loads them into Postgres.",
}

func init() {
	cfg = config.Default()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("ORSYNTH_DB_URL"), "Postgres connection string (or set ORSYNTH_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configFile, "config", "", "YAML config file overriding run and stage parameters")
}

// loadConfigFile merges the --config file, if given, over the defaults.
// Commands apply explicitly set flags afterwards, so flags beat the file.
func loadConfigFile() error {
	if configFile == "" {
		return nil
	}
	return cfg.LoadFromFile(configFile)
}
