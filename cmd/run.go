package cmd

import (
	"github.com/spf13/cobra"

	"github.com/goldenkube/kubeprep/internal/app"
	quiz "github.com/goldenkube/kubeprep/internal/exam"
)

// runApp builds the services and launches the TUI. A non-empty mode opens
// the exam directly.
func runApp(cmd *cobra.Command, mode quiz.Mode) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info("starting", "version", version, "questions", e.cfg.Questions, "mode", mode)

	return app.Run(app.Options{
		Loader:     e.loader,
		Source:     e.cfg.Questions,
		Themes:     e.themes,
		Appearance: e.appearance,
		Tracker:    e.tracker,
		Log:        e.log,
		ExamMode:   mode,
	})
}
