package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/personalens/internal/config"
	"github.com/harrison/personalens/internal/logger"
)

// NewValidateCommand creates the 'personalens validate' subcommand
func NewValidateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and input files without running",
		Long: `Validate loads the configuration, checks its values, and verifies that
the three input tables exist. It reports problems without running the
pipeline, so a broken setup fails fast instead of mid-run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(os.Stdout, "info")

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log.LogSuccess("Configuration is valid")

			inputs := []struct {
				label string
				path  string
			}{
				{"sessions", cfg.Data.SessionsCSV},
				{"actions", cfg.Data.ActionsCSV},
				{"users", cfg.Data.UsersCSV},
			}

			missing := 0
			for _, input := range inputs {
				if _, err := os.Stat(input.path); err != nil {
					log.LogError(fmt.Sprintf("%s table not found: %s", input.label, input.path))
					missing++
					continue
				}
				log.LogDetail(input.label, input.path)
			}
			if missing > 0 {
				return fmt.Errorf("%d input table(s) missing", missing)
			}

			log.LogSuccess("All input tables present")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "personalens.yaml", "Path to pipeline config file")

	return cmd
}
