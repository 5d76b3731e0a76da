package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/personalens/internal/config"
	"github.com/harrison/personalens/internal/logger"
	"github.com/harrison/personalens/internal/pipeline"
)

// NewRunCommand creates the 'personalens run' subcommand
func NewRunCommand() *cobra.Command {
	var (
		configPath  string
		sessionsCSV string
		actionsCSV  string
		usersCSV    string
		outputDir   string
		minClusters int
		maxClusters int
		seed        int64
		logDir      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full persona generation pipeline",
		Long: `Run the batch pipeline: load the three input tables, compute behavioral
metrics, cluster sessions, build personas, aggregate by month, and write
the JSON artifacts.

Every run is a full recomputation. Either all four artifacts are written
from one coherent run, or none are.

Examples:
  personalens run                                  # paths from personalens.yaml or defaults
  personalens run --config etc/pipeline.yaml
  personalens run --sessions data/sessions.csv --out public/data/personas
  personalens run --min-clusters 3 --max-clusters 8 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			// CLI flags override the config file only when set
			cfg.MergeWithFlags(
				changedString(cmd, "sessions", &sessionsCSV),
				changedString(cmd, "actions", &actionsCSV),
				changedString(cmd, "users", &usersCSV),
				changedString(cmd, "out", &outputDir),
				changedInt(cmd, "min-clusters", &minClusters),
				changedInt(cmd, "max-clusters", &maxClusters),
				changedInt64(cmd, "seed", &seed),
			)
			if err := cfg.Validate(); err != nil {
				return err
			}

			var out io.Writer = os.Stdout
			if logDir != "" {
				runLog, err := logger.OpenRunLog(logDir)
				if err != nil {
					return err
				}
				defer runLog.Close()
				out = io.MultiWriter(os.Stdout, runLog)
			}

			log := logger.NewConsoleLogger(out, cfg.LogLevel)
			return pipeline.New(cfg, log).RunAndWrite()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "personalens.yaml", "Path to pipeline config file")
	cmd.Flags().StringVar(&sessionsCSV, "sessions", "", "Path to sessions CSV (overrides config)")
	cmd.Flags().StringVar(&actionsCSV, "actions", "", "Path to actions CSV (overrides config)")
	cmd.Flags().StringVar(&usersCSV, "users", "", "Path to users CSV (overrides config)")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory for JSON artifacts (overrides config)")
	cmd.Flags().IntVar(&minClusters, "min-clusters", 0, "Lowest candidate cluster count (overrides config)")
	cmd.Flags().IntVar(&maxClusters, "max-clusters", 0, "Highest candidate cluster count (overrides config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible clustering (overrides config)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "Directory for run log files (disabled when empty)")

	return cmd
}

// changedString returns the flag's value pointer only when the user set it.
func changedString(cmd *cobra.Command, name string, value *string) *string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return nil
}

func changedInt(cmd *cobra.Command, name string, value *int) *int {
	if cmd.Flags().Changed(name) {
		return value
	}
	return nil
}

func changedInt64(cmd *cobra.Command, name string, value *int64) *int64 {
	if cmd.Flags().Changed(name) {
		return value
	}
	return nil
}
