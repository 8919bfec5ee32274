package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or set current age and inflation rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProfile(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the profile",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showProfile(cmd, app)
			},
		},
		newProfileSetCmd(app),
	)

	return cmd
}

func showProfile(cmd *cobra.Command, app *App) error {
	p, err := app.Profile.Get(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
	return nil
}

func newProfileSetCmd(app *App) *cobra.Command {
	var age int
	var inflation float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("age") && !cmd.Flags().Changed("inflation") {
				return fmt.Errorf("nothing to set: pass --age and/or --inflation")
			}
			ctx := context.Background()
			p, err := app.Profile.Get(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("age") {
				p.CurrentAge = age
			}
			if cmd.Flags().Changed("inflation") {
				p.InflationRate = inflation
			}
			if err := app.Profile.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}

	cmd.Flags().IntVar(&age, "age", 0, "Current age")
	cmd.Flags().Float64Var(&inflation, "inflation", 0, "Annual inflation rate, e.g. 0.02")

	return cmd
}
