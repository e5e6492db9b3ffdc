package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goldenkube/kubeprep/internal/appearance"
)

var appearanceCmd = &cobra.Command{
	Use:   "appearance",
	Short: "Show or change advanced theme settings",
}

var appearanceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored appearance settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		s := e.appearance.Settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "theme        %s\n", e.themes.Current().Label())
		fmt.Fprintf(out, "variant      %s\n", s.Variant)
		fmt.Fprintf(out, "time-based   %s\n", onOff(s.TimeBased))
		fmt.Fprintf(out, "auto-switch  %s\n", onOff(s.AutoSwitch))
		for _, r := range appearance.Roles {
			c := s.Colors[r]
			if c == "" {
				c = "(palette)"
			}
			fmt.Fprintf(out, "%-12s %s\n", r, c)
		}
		return nil
	},
}

var appearanceVariantCmd = &cobra.Command{
	Use:   "variant <name>",
	Short: "Choose a colour variant (" + variantNames() + ")",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, ok := appearance.ParseVariant(args[0])
		if !ok {
			return fmt.Errorf("unknown variant %q: use one of %s", args[0], variantNames())
		}
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		e.appearance.SetVariant(cmd.Context(), v)
		fmt.Fprintf(cmd.OutOrStdout(), "Variant set to %s\n", v)
		return nil
	},
}

var appearanceColorCmd = &cobra.Command{
	Use:   "color <primary|accent> <#rrggbb>",
	Short: "Override a palette colour",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := appearance.ParseRole(args[0])
		if err != nil {
			return err
		}
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.appearance.SetCustomColor(cmd.Context(), role, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s colour set to %s\n", role, strings.ToLower(args[1]))
		return nil
	},
}

var appearanceTimeBasedCmd = &cobra.Command{
	Use:   "time-based",
	Short: "Toggle switching to dark after 18:00 and light after 06:00",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		fmt.Fprintln(cmd.OutOrStdout(), e.appearance.ToggleTimeBased(cmd.Context(), time.Now()))
		return nil
	},
}

var appearanceAutoSwitchCmd = &cobra.Command{
	Use:   "auto-switch <on|off>",
	Short: "Cycle colour variants every 30 seconds while the TUI runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		fmt.Fprintln(cmd.OutOrStdout(), e.appearance.SetAutoSwitch(cmd.Context(), on))
		return nil
	},
}

var appearanceResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default appearance settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		fmt.Fprintln(cmd.OutOrStdout(), e.appearance.Reset(cmd.Context()))
		return nil
	},
}

func init() {
	appearanceCmd.AddCommand(appearanceShowCmd)
	appearanceCmd.AddCommand(appearanceVariantCmd)
	appearanceCmd.AddCommand(appearanceColorCmd)
	appearanceCmd.AddCommand(appearanceTimeBasedCmd)
	appearanceCmd.AddCommand(appearanceAutoSwitchCmd)
	appearanceCmd.AddCommand(appearanceResetCmd)
}

func variantNames() string {
	names := make([]string, len(appearance.Variants))
	for i, v := range appearance.Variants {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
	return b, nil
}
