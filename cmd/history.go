package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/codex-sync/internal/ui"
	"github.com/mattsolo1/codex-sync/pkg/service"
)

func NewHistoryCmd(svc **service.Service) *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous import passes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			entries, err := (*svc).History(limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format != formatText {
				return writeStructured(w, format, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(w, ui.Dim.Render("No passes recorded yet."))
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(ui.Dim).
				Headers("STARTED", "SOURCE", "NEW", "STALE", "COPIED", "FAILED", "NOTEBOOK")
			for _, e := range entries {
				t.Row(
					e.StartedAt.Local().Format("2006-01-02 15:04:05"),
					e.SourceDir,
					strconv.Itoa(e.New),
					strconv.Itoa(e.Stale),
					strconv.Itoa(e.Copied),
					strconv.Itoa(e.CopyFailures),
					e.NotebookID,
				)
			}
			fmt.Fprintln(w, t.String())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of passes to show (0 for all)")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text, json, yaml)")

	return cmd
}
