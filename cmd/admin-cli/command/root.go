package command

import (
	"fmt"
	"os"

	"mathspring/database"
	"mathspring/internal/config"
	"mathspring/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mathspring-admin",
	Short: "mathspring-admin - operator tasks for the admin site",
	Long: `mathspring-admin prepares and maintains the admin site database.
It reads the same environment (.env, DB_*, SECRET_KEY) as the server.

Use "mathspring-admin command -h" to see the flags of a command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect loads the environment and opens the database for commands that need it
func connect() (*gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	return database.Connect(cfg)
}
