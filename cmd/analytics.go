package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/goldenkube/kubeprep/internal/analytics"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Inspect or clear the local usage log",
	Long:  `kubeprep records theme sessions and exam attempts in its local database. Nothing is sent anywhere.`,
}

var analyticsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise theme usage and exam attempts",
	RunE:  runAnalyticsStats,
}

var analyticsRawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Print the stored usage log as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		data, err := e.tracker.Raw(ctx)
		if err != nil {
			return err
		}
		attempts, err := e.tracker.Attempts(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"theme":    data,
			"attempts": attempts,
		})
	},
}

var analyticsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the usage log and exam history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			p := promptui.Prompt{
				Label:     "Delete all theme analytics and exam attempts",
				IsConfirm: true,
			}
			if _, err := p.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
					return nil
				}
				return err
			}
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if err := e.tracker.Clear(ctx); err != nil {
			return err
		}
		if err := e.tracker.ClearAttempts(ctx); err != nil {
			return err
		}
		e.log.Info("analytics cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "Analytics data cleared.")
		return nil
	},
}

func init() {
	analyticsClearCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	analyticsCmd.AddCommand(analyticsStatsCmd)
	analyticsCmd.AddCommand(analyticsRawCmd)
	analyticsCmd.AddCommand(analyticsClearCmd)
}

func runAnalyticsStats(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	st, err := e.tracker.Stats(ctx)
	if err != nil {
		return err
	}
	attempts, err := e.tracker.Attempts(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THEME")
	fmt.Fprintf(w, "Sessions\t%d\n", st.TotalSessions)
	fmt.Fprintf(w, "Average session\t%s\n", st.AverageSessionDuration.Round(time.Second))
	fmt.Fprintf(w, "Most used theme\t%s\n", st.MostUsedTheme)
	fmt.Fprintf(w, "Changes per session\t%.2f\n", st.ThemeChangeFrequency)
	fmt.Fprintf(w, "System light / dark\t%d / %d\n", st.SystemPreferenceUsage.Light, st.SystemPreferenceUsage.Dark)

	names := make([]string, 0, len(st.ThemeUsage))
	for name := range st.ThemeUsage {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%d\n", name, st.ThemeUsage[name])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMS")
	fmt.Fprintf(w, "Attempts\t%d\n", len(attempts))
	if len(attempts) > 0 {
		passed := 0
		for _, a := range attempts {
			if a.Passed {
				passed++
			}
		}
		best, _ := analytics.BestAttempt(attempts)
		last := attempts[len(attempts)-1]
		fmt.Fprintf(w, "Passed\t%d\n", passed)
		fmt.Fprintf(w, "Best score\t%d%%\n", best.Percentage)
		fmt.Fprintf(w, "Last score\t%d%% (%s, %s)\n", last.Percentage, last.Mode, last.EndedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
