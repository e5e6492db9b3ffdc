package cmd

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/goldenkube/kubeprep/internal/config"
	quiz "github.com/goldenkube/kubeprep/internal/exam"
	"github.com/goldenkube/kubeprep/internal/ui/markdown"
)

var bankCmd = &cobra.Command{
	Use:   "bank [source]",
	Short: "Validate a question bank and optionally quiz yourself on it",
	Long: `Load a question bank (URL, file or builtin:<name>), validate it against the
bank schema and print its sections. With --quiz, answer questions in the
terminal without recording anything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBank,
}

func init() {
	bankCmd.Flags().Int("quiz", 0, "Ask this many questions after validating")
}

func runBank(cmd *cobra.Command, args []string) error {
	source := ""
	if len(args) == 1 {
		source = args[0]
	}
	timeout := config.DefaultConfig().HTTPTimeout
	if source == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		source, timeout = cfg.Questions, cfg.HTTPTimeout
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	questions, err := quiz.NewLoader(quiz.WithTimeout(timeout)).Load(ctx, source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d questions, ~%d minutes\n\n", source, len(questions), quiz.EstimatedMinutes(len(questions)))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SECTION\tQUESTIONS")
	for _, g := range quiz.GroupBySection(questions) {
		fmt.Fprintf(w, "%s\t%d\n", g.Section, len(g.Indexes))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	n, _ := cmd.Flags().GetInt("quiz")
	if n <= 0 {
		return nil
	}
	if n > len(questions) {
		n = len(questions)
	}
	return runQuiz(cmd, questions[:n])
}

// runQuiz asks each question with a selection prompt and prints the
// explanation after every answer.
func runQuiz(cmd *cobra.Command, questions []quiz.Question) error {
	out := cmd.OutOrStdout()
	answers := make([]int, len(questions))

	for i, q := range questions {
		fmt.Fprintf(out, "\n── Question %d/%d · %s ──\n", i+1, len(questions), q.Section)
		fmt.Fprintln(out, markdown.Render(q.Text))

		items := make([]string, len(q.Choices))
		for j, c := range q.Choices {
			items[j] = markdown.Inline(c)
		}
		sel := promptui.Select{
			Label: "Your answer",
			Items: items,
			Size:  len(items),
		}
		idx, _, err := sel.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			answers = answers[:i]
			questions = questions[:i]
			break
		}
		if err != nil {
			return err
		}
		answers[i] = idx

		if q.IsCorrect(idx) {
			fmt.Fprintln(out, "✓ Correct!")
		} else {
			fmt.Fprintf(out, "✗ Wrong. Answer: %s\n", markdown.Inline(q.CorrectChoice()))
		}
		if q.Explanation != "" {
			fmt.Fprintln(out, markdown.Render(q.Explanation))
		}
	}

	if len(questions) == 0 {
		return nil
	}
	score := quiz.CalculateScore(questions, answers)
	fmt.Fprintf(out, "\nScore: %d/%d (%d%%)\n", score.Correct, score.Total, score.Percentage)
	return nil
}
