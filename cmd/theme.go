package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	pref "github.com/goldenkube/kubeprep/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the colour theme",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the saved theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		cur := e.themes.Current()
		fmt.Fprintf(out, "%s (%s)\n", cur.Label(), cur)
		if e.themes.FollowsSystem(cmd.Context()) {
			fmt.Fprintln(out, "(following the terminal background)")
		}
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark>",
	Short:     "Save a theme choice",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"light", "dark"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, ok := pref.Parse(args[0])
		if !ok {
			return fmt.Errorf("unknown theme %q: use light or dark", args[0])
		}
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		e.themes.Set(cmd.Context(), name, pref.TriggerManual)
		fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s mode\n", name.Label())
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip between light and dark",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		name := e.themes.Toggle(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s mode\n", name.Label())
		return nil
	},
}

var themeSystemCmd = &cobra.Command{
	Use:   "system",
	Short: "Toggle following the terminal background",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if e.themes.ToggleSystemPreference(cmd.Context()) {
			fmt.Fprintln(cmd.OutOrStdout(), "Following the system theme")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Stopped following the system theme")
		}
		return nil
	},
}

func init() {
	themeCmd.AddCommand(themeGetCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeToggleCmd)
	themeCmd.AddCommand(themeSystemCmd)
}
