package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/horizon/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all milestones with the contents of a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d milestones and %d groups from %s\n",
				result.MilestoneCount, result.ParentCount, args[0])
			if result.ProfileUpdated {
				fmt.Fprintln(cmd.OutOrStdout(), "Profile updated from document.")
			}
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all milestones as a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Import.Export(context.Background())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return importer.WriteDocument(cmd.OutOrStdout(), doc)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := importer.WriteDocument(f, doc); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d milestones to %s\n", len(doc.Milestones), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}
