package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/goldenkube/kubeprep/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

const updateTimeout = 2 * time.Minute

// checkerOptions point the release checker elsewhere in tests.
var checkerOptions []selfupdate.Option

func newChecker() *selfupdate.Checker {
	return selfupdate.NewChecker(append([]selfupdate.Option{selfupdate.WithTimeout(updateTimeout)}, checkerOptions...)...)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "kubeprep", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()
		res, err := newChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return err
		}
		if !res.UpdateAvailable {
			fmt.Fprintf(out, "Up to date (latest release %s).\n", res.LatestVersion)
			return nil
		}
		fmt.Fprintf(out, "%s is available: %s\nRun `kubeprep update` to install it.\n", res.LatestVersion, res.ReleaseURL)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update kubeprep to the latest or a given release",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		target, _ := cmd.Flags().GetString("to")

		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()

		err := newChecker().Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Fprintln(out, p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintln(out, "Already running that version.")
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo kubeprep update", err)
		}
		return err
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "also check for a newer release")
	updateCmd.Flags().String("to", "", "install this release instead of the latest (e.g. v1.2.0)")
}
