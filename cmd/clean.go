package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codex-sync/internal/ui"
	"github.com/mattsolo1/codex-sync/pkg/service"
)

func NewCleanCmd(svc **service.Service) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove files from the notes directory that no note references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := (*svc).Clean(dryRun)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(report.Orphans) == 0 {
				fmt.Fprintln(w, ui.Ok.Render("No unreferenced files."))
				return nil
			}

			if dryRun {
				fmt.Fprintf(w, "%s %d\n", label("would remove"), len(report.Orphans))
				printNames(w, ui.Removed.Render("-"), report.Orphans)
				return nil
			}

			fmt.Fprintf(w, "%s %d\n", label("removed"), len(report.Removed))
			printNames(w, ui.Removed.Render("-"), report.Removed)
			if len(report.Errors) > 0 {
				for name, err := range report.Errors {
					fmt.Fprintf(w, "    %s %s: %v\n", ui.Error.Render("!"), name, err)
				}
				return fmt.Errorf("failed to remove %d file(s)", len(report.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the files without removing them")

	return cmd
}
