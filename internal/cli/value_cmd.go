package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/valuation"
	"github.com/spf13/cobra"
)

func valuationRequest(policy string, width, maxAge float64) app.ValuationRequest {
	return app.ValuationRequest{
		Perpetuity: valuation.PerpetuityPolicy(policy),
		Width:      width,
		MaxAge:     maxAge,
	}
}

func perpetuityFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().Var(newEnumValue(target, "", "policy",
		[]string{string(valuation.PerpetuityZero), string(valuation.PerpetuityFormula)}),
		"perpetuity", "Perpetuity valuation: zero or formula (default from config)")
}

func newValueCmd(app *App) *cobra.Command {
	var policy string
	var tree bool

	cmd := &cobra.Command{
		Use:   "value",
		Short: "Value every milestone and show the total net present value",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Valuation.Evaluate(context.Background(), valuationRequest(policy, 0, 0))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatValuation(resp))
			if tree && len(resp.Forest) > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatForest(resp))
			}
			return nil
		},
	}

	perpetuityFlag(cmd, &policy)
	cmd.Flags().BoolVar(&tree, "tree", false, "Also show milestones grouped under their parents")

	return cmd
}

func newTimelineCmd(app *App) *cobra.Command {
	var width, maxAge float64

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Draw milestones on an age timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Valuation.Evaluate(context.Background(), valuationRequest("", width, maxAge))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimeline(resp.Scale, resp.Placements))
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "Timeline width in columns (default from config)")
	cmd.Flags().Float64Var(&maxAge, "max-age", 0, "Right edge of the timeline (default from config)")

	return cmd
}

func newCheckCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report dangling links, self references, duplicate names and cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Valuation.Evaluate(context.Background(), valuationRequest("", 0, 0))
			if err != nil {
				return err
			}
			names := make(map[string]string, len(resp.Report.Items))
			for _, it := range resp.Report.Items {
				names[it.MilestoneID] = it.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCheck(resp.Issues, resp.Cycles, names))
			if strict && (len(resp.Issues) > 0 || resp.CycleCount() > 0) {
				return fmt.Errorf("%d data issue(s) found", len(resp.Issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any issue is found")

	return cmd
}
