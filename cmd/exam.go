package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	quiz "github.com/goldenkube/kubeprep/internal/exam"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Start the demo exam right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("mode")
		mode, ok := quiz.ParseMode(raw)
		if !ok {
			return fmt.Errorf("unknown mode %q: use practice or exam", raw)
		}
		return runApp(cmd, mode)
	},
}

func init() {
	examCmd.Flags().String("mode", string(quiz.ModePractice), "practice (explanations shown) or exam")
}
