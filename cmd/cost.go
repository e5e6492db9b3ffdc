package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goldenkube/kubeprep/internal/costcalc"
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Estimate the cost of a certification plan",
	Long: `Estimate what a set of certifications will cost, including retakes,
training and other expenses. Run with --list to see the catalogue.`,
	Example: `  kubeprep cost --cert CKA --cert CKAD --retakes 1 --training 300`,
	RunE: runCost,
}

func init() {
	costCmd.Flags().StringSlice("cert", nil, "Certification code (repeatable or comma separated)")
	costCmd.Flags().Int("retakes", 0, fmt.Sprintf("Retakes per certification (capped at %d)", costcalc.MaxRetakes))
	costCmd.Flags().Float64("training", 0, "Training course costs in USD")
	costCmd.Flags().Float64("additional", 0, "Other costs in USD")
	costCmd.Flags().Bool("list", false, "List the certification catalogue")
}

func runCost(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if list, _ := cmd.Flags().GetBool("list"); list {
		fmt.Fprintln(w, "CODE\tNAME\tPRICE\tRETAKE\tVALID")
		for _, e := range costcalc.Catalogue() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dy\n", e.Code, e.Name, costcalc.FormatUSD(e.Price), costcalc.FormatUSD(e.RetakePrice), e.ValidityYears)
		}
		return w.Flush()
	}

	certs, _ := cmd.Flags().GetStringSlice("cert")
	retakes, _ := cmd.Flags().GetInt("retakes")
	training, _ := cmd.Flags().GetFloat64("training")
	additional, _ := cmd.Flags().GetFloat64("additional")
	if len(certs) == 0 && training == 0 && additional == 0 {
		return fmt.Errorf("nothing to estimate: pass --cert, --training or --additional (see --list)")
	}

	est := costcalc.Calculate(costcalc.Selection{
		Certs:      certs,
		Retakes:    retakes,
		Training:   training,
		Additional: additional,
	})
	if len(est.Unknown) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipping unknown certifications: %s\n", strings.Join(est.Unknown, ", "))
	}

	fmt.Fprintf(w, "Exams\t%s\n", costcalc.FormatUSD(est.Exams))
	fmt.Fprintf(w, "Training\t%s\n", costcalc.FormatUSD(est.Training))
	fmt.Fprintf(w, "Additional\t%s\n", costcalc.FormatUSD(est.Additional))
	fmt.Fprintf(w, "TOTAL\t%s\n", costcalc.FormatUSD(est.Total))
	if retakes > costcalc.MaxRetakes {
		fmt.Fprintf(w, "\nRetakes capped at %d\n", costcalc.MaxRetakes)
	}
	return w.Flush()
}
