package command

import (
	"fmt"

	"mathspring/internal/config"

	"github.com/spf13/cobra"
)

// checkConfigCmd validates the environment without touching the database.
// Secrets are never printed.
var checkConfigCmd = &cobra.Command{
	Use:   "checkconfig",
	Short: "Validate the environment and print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "environment:    %s\n", cfg.GoEnv)
		fmt.Fprintf(out, "http port:      %d\n", cfg.HTTPPort)
		fmt.Fprintf(out, "session ttl:    %s\n", cfg.SessionTTL)
		fmt.Fprintf(out, "database:       %s://%s@%s:%d/%s\n", cfg.DBDriver, cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)
		fmt.Fprintf(out, "token store:    %s\n", tokenStoreName(cfg))
		fmt.Fprintf(out, "login limit:    %d/min, burst %d\n", cfg.LoginRatePerMinute, cfg.LoginBurst)
		fmt.Fprintln(out, "✓ Configuration is valid")
		return nil
	},
}

func tokenStoreName(cfg *config.Config) string {
	if cfg.RedisURL == "" {
		return "memory"
	}
	return "redis"
}

func init() {
	rootCmd.AddCommand(checkConfigCmd)
}
