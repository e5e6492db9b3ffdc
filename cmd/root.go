package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kubeprep",
	Short: "Cloud native certification prep in your terminal",
	Long: `kubeprep runs a practice exam for cloud native certifications, estimates
certification costs and keeps your theme and exam history between runs.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KUBEPREP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/kubeprep/config.yaml)")
	rootCmd.PersistentFlags().String("questions", "", "Question bank: URL, file path or builtin:<name>")

	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(appearanceCmd)
	rootCmd.AddCommand(costCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}
