package cmd

import (
	"github.com/spf13/cobra"

	"ledgerdesk/internal/config"
)

// configPath is the --config flag shared by every command.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "ledgerdesk",
	Short: "Keyboard driven accounting desk",
	Long: `ledgerdesk - keyboard driven accounting in the terminal
  - browse ledgers, groups, the day book and the trial balance
  - create ledgers and drill into statements without touching the mouse`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.Dir()+"/config.toml)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mockServerCmd)
}

func loadConfig() (*config.Config, error) {
	return config.NewConfigService(configPath).Load()
}
