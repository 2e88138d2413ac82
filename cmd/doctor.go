package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codex-sync/internal/ui"
	"github.com/mattsolo1/codex-sync/pkg/service"
)

func NewDoctorCmd(svc **service.Service) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the document and notes directory for problems",
		Long: `The doctor command checks for problems that an import does not repair.

Issues it can detect:
- A document that cannot be read or parsed
- Several notes pointing at the same file
- A missing notes directory
- Leftovers from an interrupted save or copy
- Notes whose file is missing from the notes directory
- Files in the notes directory that no note references`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			d := (*svc).Diagnose()

			w := cmd.OutOrStdout()
			if format != formatText {
				return writeStructured(w, format, d)
			}

			failed := 0
			for _, c := range d.Checks {
				var mark string
				switch c.Status {
				case service.CheckOK:
					mark = ui.Ok.Render("ok  ")
				case service.CheckWarn:
					mark = ui.Warn.Render("warn")
				default:
					mark = ui.Error.Render("fail")
					failed++
				}
				line := fmt.Sprintf("%s %s", mark, titleCaser.String(c.Name))
				if c.Detail != "" {
					line += ui.Dim.Render(" - " + c.Detail)
				}
				fmt.Fprintln(w, line)
			}

			if d.Healthy() {
				fmt.Fprintln(w, ui.Ok.Render("No issues found."))
			} else {
				fmt.Fprintf(w, "\nFound %d issue(s)\n", d.Issues())
			}
			if failed > 0 {
				return fmt.Errorf("doctor found %d failing check(s)", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text, json, yaml)")

	return cmd
}
