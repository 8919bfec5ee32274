package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/spf13/cobra"
)

func newParentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "parent",
		Aliases: []string{"group"},
		Short:   "Manage groups of milestones",
	}

	cmd.AddCommand(
		newParentAddCmd(app),
		newParentListCmd(app),
		newParentRemoveCmd(app),
	)

	return cmd
}

func newParentAddCmd(app *App) *cobra.Command {
	var name string
	var minAge, maxAge int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("max-age") {
				maxAge = minAge
			}
			p := &domain.ParentMilestone{Name: name, MinAge: minAge, MaxAge: maxAge}
			if err := app.Parents.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %s [%s]\n", p.Name, formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Group name")
	cmd.Flags().IntVar(&minAge, "min-age", 0, "Initial lower age bound")
	cmd.Flags().IntVar(&maxAge, "max-age", 0, "Initial upper age bound (defaults to --min-age)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newParentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			parents, err := app.Parents.List(ctx)
			if err != nil {
				return err
			}
			if len(parents) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No groups found.")
				return nil
			}
			milestones, err := app.Milestones.List(ctx)
			if err != nil {
				return err
			}
			children := make(map[string]int, len(parents))
			for _, m := range milestones {
				if pid := m.ParentID(); pid != "" {
					children[pid]++
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatParentList(parents, children))
			return nil
		},
	}
}

func newParentRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove GROUP",
		Aliases: []string{"rm"},
		Short:   "Delete a group; its milestones become ungrouped",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveParentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Parents.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed group %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
