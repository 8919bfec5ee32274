package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "milestone",
		Aliases: []string{"m"},
		Short:   "Manage milestones",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneListCmd(app),
		newMilestoneShowCmd(app),
		newMilestoneUpdateCmd(app),
		newMilestoneRemoveCmd(app),
	)

	return cmd
}

// milestoneFlags is the flag set shared by add and update. On update only
// flags the user changed are applied.
type milestoneFlags struct {
	name             string
	age              int
	milestoneType    string
	disbursement     string
	amount           decimal.Decimal
	amountValueType  string
	payment          decimal.Decimal
	paymentValueType string
	occurrence       string
	duration         int
	rate             float64
	order            int
	parent           string
	after            string
	until            string
	goals            []string
	scenarios        []string
}

func (f *milestoneFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Milestone name")
	fs.IntVar(&f.age, "age", 0, "Age at occurrence")
	fs.Var(newEnumValue(&f.milestoneType, string(domain.MilestoneExpense), "type", keys(domain.ValidMilestoneTypes)), "type", "Expense, Income, Asset or Liability")
	fs.Var(newEnumValue(&f.disbursement, string(domain.DisbursementFixedDuration), "disbursement", keys(domain.ValidDisbursementTypes)), "disbursement", "None, Fixed Duration or Perpetuity")
	fs.Var(&decimalValue{target: &f.amount}, "amount", "Amount")
	fs.Var(newEnumValue(&f.amountValueType, string(domain.ValuePV), "value-type", keys(domain.ValidValueTypes)), "amount-type", "Whether the amount is stated as PV or FV")
	fs.Var(&decimalValue{target: &f.payment}, "payment", "Periodic payment (assets and liabilities)")
	fs.Var(newEnumValue(&f.paymentValueType, string(domain.ValuePV), "value-type", keys(domain.ValidValueTypes)), "payment-type", "Whether the payment is stated as PV or FV")
	fs.Var(newEnumValue(&f.occurrence, string(domain.OccurrenceYearly), "occurrence", keys(domain.ValidOccurrences)), "occurrence", "Monthly or Yearly")
	fs.IntVar(&f.duration, "duration", 0, "Duration in occurrence periods")
	fs.Float64Var(&f.rate, "rate", 0, "Annual rate of return, e.g. 0.04")
	fs.IntVar(&f.order, "order", 0, "Position within its group")
	fs.StringVar(&f.parent, "parent", "", "Parent milestone (group) name or ID")
	fs.StringVar(&f.after, "after", "", "Start when the named milestone ends")
	fs.StringVar(&f.until, "until", "", "Last until the named milestone starts")
	fs.StringSliceVar(&f.goals, "goal", nil, "Goal parameter field (repeatable)")
	fs.StringArrayVar(&f.scenarios, "scenario", nil, "Scenario values as field=v1,v2 (repeatable)")
}

// apply copies the changed flags onto m. With all set, every flag is copied.
func (f *milestoneFlags) apply(ctx context.Context, app *App, cmd *cobra.Command, m *domain.Milestone, all bool) error {
	changed := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if changed("name") {
		m.Name = f.name
	}
	if changed("age") {
		m.AgeAtOccurrence = f.age
	}
	if changed("type") {
		m.Type = domain.MilestoneType(f.milestoneType)
	}
	if changed("disbursement") {
		m.Disbursement = domain.DisbursementType(f.disbursement)
	}
	if changed("amount") {
		m.Amount = f.amount
	}
	if changed("amount-type") {
		m.AmountValueType = domain.ValueType(f.amountValueType)
	}
	if cmd.Flags().Changed("payment") {
		p := f.payment
		m.Payment = &p
	}
	if changed("payment-type") {
		m.PaymentValueType = domain.ValueType(f.paymentValueType)
	}
	if changed("occurrence") {
		m.Occurrence = domain.Occurrence(f.occurrence)
	}
	if cmd.Flags().Changed("duration") {
		d := f.duration
		m.Duration = &d
	}
	if changed("rate") {
		m.RateOfReturn = f.rate
	}
	if changed("order") {
		m.Order = f.order
	}
	if cmd.Flags().Changed("parent") {
		m.ParentMilestoneID = nil
		if f.parent != "" {
			id, err := resolveParentID(ctx, app, f.parent)
			if err != nil {
				return err
			}
			m.ParentMilestoneID = &id
		}
	}
	if cmd.Flags().Changed("after") {
		after := f.after
		m.StartAfterMilestone = &after
	}
	if cmd.Flags().Changed("until") {
		until := f.until
		m.DurationEndAtMilestone = &until
	}
	if cmd.Flags().Changed("goal") {
		m.GoalParameters = f.goals
	}
	if cmd.Flags().Changed("scenario") {
		m.ScenarioParameterValues = make(map[string][]float64, len(f.scenarios))
		for _, s := range f.scenarios {
			field, vals, err := parseScenario(s)
			if err != nil {
				return err
			}
			m.ScenarioParameterValues[field] = vals
		}
	}
	return nil
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var f milestoneFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a milestone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m := &domain.Milestone{}
			if err := f.apply(ctx, app, cmd, m, true); err != nil {
				return err
			}
			if err := app.Milestones.Create(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created milestone %s [%s]\n", m.Name, formatter.TruncID(m.ID))
			return nil
		},
	}

	f.bind(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newMilestoneListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			milestones, err := app.Milestones.List(ctx)
			if err != nil {
				return err
			}
			if len(milestones) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No milestones found.")
				return nil
			}
			names, err := parentNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMilestoneList(milestones, names))
			return nil
		},
	}
}

func newMilestoneShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show MILESTONE",
		Short: "Show a milestone with its resolved timing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMilestone(ctx, app, args[0])
			if err != nil {
				return err
			}

			var parentName string
			if pid := m.ParentID(); pid != "" {
				names, err := parentNames(ctx, app)
				if err != nil {
					return err
				}
				parentName = names[pid]
			}

			resp, err := app.Valuation.Evaluate(ctx, valuationRequest("", 0, 0))
			if err != nil {
				return err
			}
			res, ok := resp.Resolution(m.ID)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMilestoneDetail(m, nil, parentName))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMilestoneDetail(m, &res, parentName))
			return nil
		},
	}
}

func newMilestoneUpdateCmd(app *App) *cobra.Command {
	var f milestoneFlags

	cmd := &cobra.Command{
		Use:   "update MILESTONE",
		Short: "Change fields of a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMilestone(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := f.apply(ctx, app, cmd, m, false); err != nil {
				return err
			}
			if err := app.Milestones.Update(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated milestone %s\n", m.Name)
			return nil
		},
	}

	f.bind(cmd)

	return cmd
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove MILESTONE",
		Aliases: []string{"rm"},
		Short:   "Delete a milestone",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMilestone(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Milestones.Delete(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed milestone %s\n", m.Name)
			return nil
		},
	}
}
