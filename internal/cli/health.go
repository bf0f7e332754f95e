package cli

import (
	"context"
	"os"
	"time"

	"OlympicsHub/internal/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var healthTimeout time.Duration

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database connectivity",
	Long: `Check if the database is accessible and responsive.

Examples:
  olympicshub health                 # Check default database connection
  olympicshub health --timeout 10s   # Set custom timeout
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			color.Red("❌ %v", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()

		latency, err := database.Ping(ctx, cfg.Database)
		if err != nil {
			color.Red("❌ Database health check failed: %v", err)
			os.Exit(1)
		}
		color.Green("✅ Database is healthy and accessible (%s, %s)", cfg.Database.Driver, latency.Round(time.Millisecond))
	},
}

func init() {
	healthCmd.Flags().DurationVarP(&healthTimeout, "timeout", "t", 5*time.Second, "Timeout for health check")
}
